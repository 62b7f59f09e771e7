package models

import "time"

// Статусы абонемента.
const (
	StatusActive  = "Active"
	StatusExpired = "Expired"
)

// Статусы оплаты.
const (
	PaymentStatusPaid    = "Paid"
	PaymentStatusPending = "Pending"
)

// Client запись об абонементе клиента зала.
// EndDate всегда вычисляется из StartDate и PlanType.
type Client struct {
	ID            string    `json:"id"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	PlanType      string    `json:"plan_type"`
	PlanAmount    float64   `json:"plan_amount"`
	StartDate     Date      `json:"start_date"`
	EndDate       Date      `json:"end_date"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ClientDetail клиент вместе с платежами и историей действий.
type ClientDetail struct {
	Client
	Payments []Payment      `json:"payments"`
	History  []HistoryEntry `json:"history"`
}

// ClientFilter параметры выборки списка клиентов. Пустые поля не фильтруют.
type ClientFilter struct {
	Status   string
	PlanType string
	Search   string
}

// ClientUpdate набор изменяемых колонок клиента. nil означает "не менять".
type ClientUpdate struct {
	FullName      *string
	Email         *string
	Phone         *string
	Address       *string
	PlanType      *string
	PlanAmount    *float64
	StartDate     *Date
	EndDate       *Date
	Status        *string
	PaymentStatus *string
	Notes         *string
}

// IsEmpty сообщает, что в обновлении нет ни одного поля.
func (u ClientUpdate) IsEmpty() bool {
	return u.FullName == nil && u.Email == nil && u.Phone == nil && u.Address == nil &&
		u.PlanType == nil && u.PlanAmount == nil && u.StartDate == nil && u.EndDate == nil &&
		u.Status == nil && u.PaymentStatus == nil && u.Notes == nil
}

// CreateClientRequest тело запроса на создание клиента.
type CreateClientRequest struct {
	FullName      string  `json:"full_name" validate:"required"`
	Email         string  `json:"email" validate:"omitempty,email"`
	Phone         string  `json:"phone" validate:"required"`
	Address       string  `json:"address"`
	PlanType      string  `json:"plan_type" validate:"required,oneof=Monthly Quarterly Yearly"`
	PlanAmount    float64 `json:"plan_amount" validate:"required,gt=0"`
	StartDate     string  `json:"start_date" validate:"required"`
	Status        string  `json:"status" validate:"omitempty,oneof=Active Expired"`
	PaymentStatus string  `json:"payment_status" validate:"omitempty,oneof=Paid Pending"`
	Notes         string  `json:"notes"`
}

// UpdateClientRequest тело запроса на частичное обновление клиента.
// id и created_at не принимаются.
type UpdateClientRequest struct {
	FullName      *string  `json:"full_name" validate:"omitempty,min=1"`
	Email         *string  `json:"email" validate:"omitempty,email"`
	Phone         *string  `json:"phone" validate:"omitempty,min=1"`
	Address       *string  `json:"address"`
	PlanType      *string  `json:"plan_type" validate:"omitempty,oneof=Monthly Quarterly Yearly"`
	PlanAmount    *float64 `json:"plan_amount" validate:"omitempty,gt=0"`
	StartDate     *string  `json:"start_date"`
	Status        *string  `json:"status" validate:"omitempty,oneof=Active Expired"`
	PaymentStatus *string  `json:"payment_status" validate:"omitempty,oneof=Paid Pending"`
	Notes         *string  `json:"notes"`
}

// IsEmpty сообщает, что запрос не содержит ни одного поля.
func (r UpdateClientRequest) IsEmpty() bool {
	return r.FullName == nil && r.Email == nil && r.Phone == nil && r.Address == nil &&
		r.PlanType == nil && r.PlanAmount == nil && r.StartDate == nil && r.Status == nil &&
		r.PaymentStatus == nil && r.Notes == nil
}

// RenewRequest тело запроса на продление абонемента.
type RenewRequest struct {
	PlanType      string  `json:"plan_type" validate:"required,oneof=Monthly Quarterly Yearly"`
	PlanAmount    float64 `json:"plan_amount" validate:"required,gt=0"`
	PaymentMethod string  `json:"payment_method"`
}

// BulkDeleteRequest тело запроса на массовое удаление клиентов.
type BulkDeleteRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,uuid"`
}
