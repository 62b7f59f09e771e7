package models

// Типы уведомлений.
const (
	NotificationExpired  = "expired"
	NotificationExpiring = "expiring"
)

// Notification уведомление об истёкшем или истекающем абонементе.
type Notification struct {
	ID       string             `json:"id"`
	Type     string             `json:"type"`
	Title    string             `json:"title"`
	Message  string             `json:"message"`
	Client   NotificationClient `json:"client"`
	Date     Date               `json:"date"`
	DaysAgo  *int               `json:"daysAgo,omitempty"`
	DaysLeft *int               `json:"daysLeft,omitempty"`
	Read     bool               `json:"read"`
}

// NotificationClient контактные данные клиента в уведомлении.
type NotificationClient struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// NotificationList ответ эндпоинта уведомлений.
type NotificationList struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int            `json:"unreadCount"`
}

// ExpiryReminder сообщение в очередь о скором окончании абонемента.
type ExpiryReminder struct {
	ClientID string `json:"client_id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	PlanType string `json:"plan_type"`
	EndDate  Date   `json:"end_date"`
}
