package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metric instruments
type Metrics struct {
	AnalysesTotal       *prometheus.CounterVec
	RepairFixesTotal    prometheus.Counter
	CapacityErrorsTotal prometheus.Counter
	PlanMonthlyCost     prometheus.Histogram
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewMetrics registers all metrics with the default registry
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsWith registers all metrics with the given registerer
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		AnalysesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "clabops_analyses_total",
			Help: "Total number of analysis operations",
		}, []string{"operation", "status"}),

		RepairFixesTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "clabops_repair_fixes_total",
			Help: "Total number of applied topology fixes",
		}),

		CapacityErrorsTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "clabops_capacity_errors_total",
			Help: "Total number of unsatisfiable capacity requests",
		}),

		PlanMonthlyCost: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "clabops_plan_monthly_cost_usd",
			Help:    "Monthly cost of produced deployment plans in USD",
			Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000},
		}),

		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "clabops_http_requests_total",
			Help: "Total HTTP requests",
		}, []string{"method", "path", "status_code"}),

		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "clabops_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 5.0},
		}, []string{"method", "path"}),
	}
}

// RecordAnalysis records one analysis operation outcome
func (m *Metrics) RecordAnalysis(operation, status string) {
	m.AnalysesTotal.WithLabelValues(operation, status).Inc()
}

// RecordRepairFixes adds the number of fixes applied by one repair pass
func (m *Metrics) RecordRepairFixes(count int) {
	m.RepairFixesTotal.Add(float64(count))
}

// RecordCapacityError counts a demand the catalog could not satisfy
func (m *Metrics) RecordCapacityError() {
	m.CapacityErrorsTotal.Inc()
}

// RecordPlan observes the monthly cost of a produced plan
func (m *Metrics) RecordPlan(monthlyCost float64) {
	m.PlanMonthlyCost.Observe(monthlyCost)
}
