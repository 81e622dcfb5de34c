package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the shopping list module.
// All methods are nil-safe so services can run without metrics in tests.
type Metrics struct {
	ListsCreated      prometheus.Counter
	ListsDeleted      prometheus.Counter
	Mutations         *prometheus.CounterVec
	Denials           *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
}

// New registers the module's metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ListsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "shoplist_lists_created_total",
			Help: "Total number of shopping lists created",
		}),
		ListsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "shoplist_lists_deleted_total",
			Help: "Total number of shopping lists deleted",
		}),
		Mutations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "shoplist_list_mutations_total",
			Help: "Successful list mutations by action",
		}, []string{"action"}),
		Denials: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "shoplist_authorization_denials_total",
			Help: "Authorization denials by action and reason",
		}, []string{"action", "reason"}),
		OperationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "shoplist_operation_duration_seconds",
			Help:    "Duration of shopping list service operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"action"}),
	}
}

func (m *Metrics) IncrementListsCreated() {
	if m == nil {
		return
	}
	m.ListsCreated.Inc()
}

func (m *Metrics) IncrementListsDeleted() {
	if m == nil {
		return
	}
	m.ListsDeleted.Inc()
}

func (m *Metrics) IncrementMutation(action string) {
	if m == nil {
		return
	}
	m.Mutations.WithLabelValues(action).Inc()
}

func (m *Metrics) IncrementDenial(action, reason string) {
	if m == nil {
		return
	}
	m.Denials.WithLabelValues(action, reason).Inc()
}

// ObserveOperation records the duration of an operation started at start.
func (m *Metrics) ObserveOperation(action string, start time.Time) {
	if m == nil {
		return
	}
	m.OperationDuration.WithLabelValues(action).Observe(time.Since(start).Seconds())
}
