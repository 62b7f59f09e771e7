package models

import "time"

// Типы действий в истории клиента.
const (
	ActionCreated = "CREATED"
	ActionUpdated = "UPDATED"
	ActionRenewed = "RENEWED"
	ActionPayment = "PAYMENT"
)

// HistoryEntry запись журнала действий над клиентом. Только добавляется.
type HistoryEntry struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"client_id"`
	ActionType  string    `json:"action_type"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
