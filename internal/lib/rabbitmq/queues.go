package rabbitmq

// Маршрутизация напоминаний об окончании абонемента.
const (
	ExpiringQueue      = "notification.expiring"
	ExpiringRoutingKey = "expiring"
)

// prefetch ограничивает число неподтверждённых сообщений и параллельных обработчиков.
const prefetch = 10

// QueueConfig очередь и ключ, по которому она привязана к обменнику.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetNotificationQueues возвращает очереди уведомлений.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: ExpiringQueue, RoutingKey: ExpiringRoutingKey},
	}
}
