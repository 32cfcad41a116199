package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "energy_"

	ResultSuccess    = "success"
	ResultIncomplete = "incomplete"
	ResultInvalid    = "invalid"
	ResultError      = "error"
)

var (
	registerOnce sync.Once

	estimatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: metricPrefix + "estimates_total",
			Help: "Estimate requests by result",
		},
		[]string{"result", "source"},
	)
	estimateUnits = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    metricPrefix + "estimate_units",
			Help:    "Estimated monthly consumption in units",
			Buckets: []float64{50, 100, 150, 200, 250, 300, 350, 400, 450},
		},
	)
	validationMissing = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: metricPrefix + "validation_missing_total",
			Help: "Fields missing when an estimate was refused",
		},
		[]string{"field"},
	)
	sessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: metricPrefix + "sessions_active",
			Help: "Live sessions at the last janitor run",
		},
	)
	sessionsPurged = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: metricPrefix + "sessions_purged_total",
			Help: "Expired sessions removed by the janitor",
		},
	)
	liveConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: metricPrefix + "live_form_connections",
			Help: "Open websocket form connections",
		},
	)
)

// Init registers the collectors with reg. Later calls are no-ops.
func Init(reg prometheus.Registerer) {
	registerOnce.Do(func() {
		reg.MustRegister(
			estimatesTotal,
			estimateUnits,
			validationMissing,
			sessionsActive,
			sessionsPurged,
			liveConnections,
		)
	})
}

// ObserveEstimate records a successful estimate.
func ObserveEstimate(source string, total float64) {
	estimatesTotal.WithLabelValues(ResultSuccess, source).Inc()
	estimateUnits.Observe(total)
}

// ObserveRefused records an estimate that was not computed. Missing fields
// are counted only for incomplete profiles.
func ObserveRefused(source, result string, missing []string) {
	estimatesTotal.WithLabelValues(result, source).Inc()
	for _, field := range missing {
		validationMissing.WithLabelValues(field).Inc()
	}
}

func SetActiveSessions(n int64) {
	sessionsActive.Set(float64(n))
}

func AddPurgedSessions(n int64) {
	sessionsPurged.Add(float64(n))
}

func ConnectionOpened() { liveConnections.Inc() }
func ConnectionClosed() { liveConnections.Dec() }
