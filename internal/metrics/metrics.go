package metrics

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ============================================================
// Prometheus метрики дашборда
// ============================================================
//
// - длительность и ошибки запросов к хранилищу (по таблицам)
// - HTTP запросы по маршрутам
// - доступность хранилища и возраст heartbeat торгового процесса

const namespace = "dashboard"

// ============ Хранилище ============

// QueryDuration - длительность запроса последних строк
var QueryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "datastore",
		Name:      "query_duration_seconds",
		Help:      "Latency of latest-row queries against the datastore",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"table", "backend"},
)

// QueryFailures - запросы, поле которых деградировало в null
var QueryFailures = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "datastore",
		Name:      "query_failures_total",
		Help:      "Latest-row queries that degraded their field to null",
	},
	[]string{"table", "reason"}, // no_rows, timeout, not_configured, error
)

// DatastoreUp - результат последней проверки доступности (1/0)
var DatastoreUp = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "datastore",
		Name:      "up",
		Help:      "Whether the last datastore ping succeeded",
	},
)

// HeartbeatAge - возраст последнего heartbeat торгового процесса
var HeartbeatAge = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "runtime",
		Name:      "heartbeat_age_seconds",
		Help:      "Seconds since runtime_info.last_update as seen by the last status read",
	},
)

// ============ HTTP ============

// HTTPRequests - количество HTTP запросов
var HTTPRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests served, by route and status code",
	},
	[]string{"route", "status"},
)

// HTTPDuration - длительность обработки HTTP запроса
var HTTPDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"route"},
)

// Причины деградации поля
const (
	ReasonNoRows        = "no_rows"
	ReasonTimeout       = "timeout"
	ReasonNotConfigured = "not_configured"
	ReasonError         = "error"
)

// RecordQuery записывает длительность запроса к таблице
func RecordQuery(table, backend string, elapsed time.Duration) {
	QueryDuration.WithLabelValues(table, backend).Observe(elapsed.Seconds())
}

// RecordQueryFailure увеличивает счетчик деградаций поля
func RecordQueryFailure(table, reason string) {
	QueryFailures.WithLabelValues(table, reason).Inc()
}

// ClassifyError сводит ошибку запроса к метке reason.
//
// noRows и notConfigured - sentinel ошибки хранилища; передаются
// снаружи, чтобы пакет метрик не зависел от repository.
func ClassifyError(err, noRows, notConfigured error) string {
	switch {
	case errors.Is(err, noRows):
		return ReasonNoRows
	case errors.Is(err, notConfigured):
		return ReasonNotConfigured
	case errors.Is(err, context.DeadlineExceeded):
		return ReasonTimeout
	default:
		return ReasonError
	}
}

// UpdateDatastoreUp обновляет статус доступности хранилища
func UpdateDatastoreUp(up bool) {
	if up {
		DatastoreUp.Set(1)
	} else {
		DatastoreUp.Set(0)
	}
}

// UpdateHeartbeatAge обновляет возраст heartbeat
func UpdateHeartbeatAge(age time.Duration) {
	if age < 0 {
		age = 0
	}
	HeartbeatAge.Set(age.Seconds())
}

// RecordHTTPRequest записывает обработанный HTTP запрос
func RecordHTTPRequest(route string, status int, elapsed time.Duration) {
	HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}
