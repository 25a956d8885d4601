package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics контейнер prometheus-метрик сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBQueryDuration *prometheus.HistogramVec
	DBConnsOpen     *prometheus.GaugeVec
	DBConnsInUse    *prometheus.GaugeVec
	DBConnsIdle     *prometheus.GaugeVec

	// Планировщик переносов
	RescheduleRunsTotal   *prometheus.CounterVec
	RescheduledTotal      prometheus.Counter
	RescheduleErrorsTotal prometheus.Counter
	RescheduleRunDuration prometheus.Histogram
}

// New создает и регистрирует метрики в default registry
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "path"}),

		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			ConstLabels: constLabels,
		}, []string{"operation"}),

		DBConnsOpen: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_open",
			Help:        "Number of open database connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBConnsInUse: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_in_use",
			Help:        "Number of database connections currently in use",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBConnsIdle: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_idle",
			Help:        "Number of idle database connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		RescheduleRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "reschedule_runs_total",
			Help:        "Total number of auto-reschedule batch runs",
			ConstLabels: constLabels,
		}, []string{"result"}),

		RescheduledTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "rescheduled_bookings_total",
			Help:        "Total number of bookings moved by the auto-rescheduler",
			ConstLabels: constLabels,
		}),

		RescheduleErrorsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "reschedule_booking_errors_total",
			Help:        "Total number of per-booking reschedule failures",
			ConstLabels: constLabels,
		}),

		RescheduleRunDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:        "reschedule_run_duration_seconds",
			Help:        "Duration of auto-reschedule batch runs in seconds",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}),
	}
}
