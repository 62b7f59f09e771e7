// Package metrics объявляет метрики Prometheus сервиса.
// Все метрики регистрируются в реестре по умолчанию при инициализации пакета.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gym_admin"

// HTTPRequestsTotal число обработанных HTTP-запросов.
// Метки: method, route (шаблон маршрута chi), status.
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests handled, by method, route and status code.",
	},
	[]string{"method", "route", "status"},
)

// HTTPRequestDuration длительность обработки HTTP-запросов.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP request handling.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// ClientsCreatedTotal число созданных клиентов по типу тарифа.
var ClientsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "clients_created_total",
		Help:      "Total number of clients created, by plan type.",
	},
	[]string{"plan_type"},
)

// PaymentsRecordedTotal число сохранённых платежей.
// Метка kind: initial, renewal или manual.
var PaymentsRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_recorded_total",
		Help:      "Total number of payments recorded, by kind.",
	},
	[]string{"kind"},
)

// DashboardBuildDuration длительность сборки отчётов дашборда.
// Метка report: stats или notifications.
var DashboardBuildDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "dashboard_build_duration_seconds",
		Help:      "Duration of dashboard report fetch and aggregation.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"report"},
)

// MembershipsExpiredTotal число абонементов, переведённых планировщиком в Expired.
var MembershipsExpiredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "memberships_expired_total",
		Help:      "Total number of memberships transitioned to Expired by the scheduler.",
	},
)

// RemindersTotal число напоминаний об окончании абонемента.
// Метка result: published, publish_failed, sent, skipped, send_failed.
var RemindersTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "expiry_reminders_total",
		Help:      "Total number of membership expiry reminders, by result.",
	},
	[]string{"result"},
)
