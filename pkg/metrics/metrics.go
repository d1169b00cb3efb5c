package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор метрик сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec

	// Доступность слотов
	AvailabilityQueriesTotal  *prometheus.CounterVec
	AvailabilitySlotsReturned *prometheus.HistogramVec

	// Записи
	AppointmentsCreatedTotal  *prometheus.CounterVec
	AppointmentConflictsTotal *prometheus.CounterVec
}

// New создает и регистрирует метрики в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики в указанном реестре (в тестах - отдельный реестр)
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		DBOpenConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}, []string{}),

		DBInUseConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{}),

		DBIdleConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, []string{}),

		DBWaitCount: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{}),

		AvailabilityQueriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_queries_total",
			Help:        "Availability engine queries by kind and outcome",
			ConstLabels: constLabels,
		}, []string{"query", "result"}),

		AvailabilitySlotsReturned: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "availability_slots_returned",
			Help:        "Number of slots or stylists returned by availability queries",
			ConstLabels: constLabels,
			Buckets:     []float64{0, 1, 2, 5, 10, 20, 30, 50},
		}, []string{"query"}),

		AppointmentsCreatedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "appointments_created_total",
			Help:        "Appointments created",
			ConstLabels: constLabels,
		}, []string{"stylist_selection"}),

		AppointmentConflictsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "appointment_conflicts_total",
			Help:        "Booking attempts rejected because the slot was taken at commit time",
			ConstLabels: constLabels,
		}, []string{"operation"}),
	}
}

// ObserveAvailability фиксирует результат запроса доступности.
// Безопасно для nil (метрики выключены).
func (m *Metrics) ObserveAvailability(query string, returned int) {
	if m == nil {
		return
	}
	result := "found"
	if returned == 0 {
		result = "empty"
	}
	m.AvailabilityQueriesTotal.WithLabelValues(query, result).Inc()
	m.AvailabilitySlotsReturned.WithLabelValues(query).Observe(float64(returned))
}

// IncAppointmentCreated увеличивает счётчик созданных записей. Безопасно для nil.
func (m *Metrics) IncAppointmentCreated(anyAvailable bool) {
	if m == nil {
		return
	}
	selection := "explicit"
	if anyAvailable {
		selection = "any_available"
	}
	m.AppointmentsCreatedTotal.WithLabelValues(selection).Inc()
}

// IncConflict увеличивает счётчик конфликтов при фиксации записи. Безопасно для nil.
func (m *Metrics) IncConflict(operation string) {
	if m == nil {
		return
	}
	m.AppointmentConflictsTotal.WithLabelValues(operation).Inc()
}
