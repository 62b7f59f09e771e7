package models

import "time"

// DefaultPaymentMethod способ оплаты, если он не указан.
const DefaultPaymentMethod = "Cash"

// Payment платёж клиента. После создания не изменяется.
type Payment struct {
	ID            string    `json:"id"`
	ClientID      string    `json:"client_id"`
	Amount        float64   `json:"amount"`
	PaymentDate   Date      `json:"payment_date"`
	PaymentMethod string    `json:"payment_method"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
}

// PaymentRequest тело запроса на регистрацию платежа.
type PaymentRequest struct {
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	PaymentDate   string  `json:"payment_date"`
	PaymentMethod string  `json:"payment_method"`
	Notes         string  `json:"notes"`
}
