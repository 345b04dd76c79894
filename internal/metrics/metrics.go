package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Contact sources label where a status transition came from.
const (
	SourceLive = "live"
	SourceSync = "sync"
)

// Metrics tracks canvassing activity: contact outcomes, sync reconciliation,
// walklist progress and request latency.
type Metrics struct {
	ContactsRecorded    *prometheus.CounterVec
	SyncEntries         *prometheus.CounterVec
	WalklistTransitions *prometheus.CounterVec
	RequestDuration     *prometheus.HistogramVec
}

// New registers all metrics on reg. Pass prometheus.DefaultRegisterer in the
// server and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ContactsRecorded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "canvass_contacts_recorded_total",
			Help: "Contact status transitions by source (live, sync) and resulting status",
		}, []string{"source", "status"}),
		SyncEntries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "canvass_sync_entries_total",
			Help: "Sync entries processed by outcome (applied, forbidden, invalid, failed)",
		}, []string{"outcome"}),
		WalklistTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "canvass_walklist_transitions_total",
			Help: "Walklist status updates by target status",
		}, []string{"status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "canvass_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route and status code",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"method", "route", "status"}),
	}
}

// IncContactRecorded records a contact transition. Safe on a nil receiver.
func (m *Metrics) IncContactRecorded(source, status string) {
	if m == nil {
		return
	}
	m.ContactsRecorded.WithLabelValues(source, status).Inc()
}

// IncSyncEntry records one processed sync entry. Safe on a nil receiver.
func (m *Metrics) IncSyncEntry(outcome string) {
	if m == nil {
		return
	}
	m.SyncEntries.WithLabelValues(outcome).Inc()
}

// IncWalklistTransition records a walklist status update. Safe on a nil receiver.
func (m *Metrics) IncWalklistTransition(status string) {
	if m == nil {
		return
	}
	m.WalklistTransitions.WithLabelValues(status).Inc()
}

// ObserveRequest records the duration of a request.
// Call with time.Now() at the start of the request.
func (m *Metrics) ObserveRequest(method, route string, status int, start time.Time) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
}

// Middleware times every request against its registered route pattern.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, route, c.Writer.Status(), start)
	}
}
