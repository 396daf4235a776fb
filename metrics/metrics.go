// Package metrics provides Prometheus observability metrics for the shift scheduler.
// It includes Critical and Important metrics for business and operational visibility.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"shift-scheduler/models"
)

// Registry is the custom prometheus registry for our application
var Registry = prometheus.NewRegistry()

// factory allows us to register metrics to our custom Registry directly
var factory = promauto.With(Registry)

// =============================================================================
// CRITICAL METRICS - Business Impact Visibility
// =============================================================================

// ViolationsByKind tracks the hard-constraint violations of the latest run.
var ViolationsByKind = factory.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "scheduler",
	Name:      "violations_by_kind",
	Help:      "Hard-constraint violations in the latest generated week, by kind",
}, []string{"kind"})

// ViolationsTotal counts violations across all runs.
var ViolationsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "scheduler",
	Name:      "violations_total",
	Help:      "Total hard-constraint violations reported, by kind",
}, []string{"kind"})

// InfeasibleResultsTotal counts runs that returned a best-effort schedule.
var InfeasibleResultsTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "scheduler",
	Name:      "infeasible_results_total",
	Help:      "Count of generated weeks with at least one violation",
})

// InternalFaultsTotal counts unexplained invariant breaches. Any increase is a bug.
var InternalFaultsTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "scheduler",
	Name:      "internal_faults_total",
	Help:      "Count of runs stopped by an internal computation fault",
})

// StaffingDeficitMinutes tracks person-minutes below minimum staffing in the latest run.
var StaffingDeficitMinutes = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "scheduler",
	Name:      "staffing_deficit_person_minutes",
	Help:      "Person-minutes below the minimum simultaneous staffing in the latest generated week",
})

// ScheduledHours tracks total active hours of the latest run.
var ScheduledHours = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "scheduler",
	Name:      "scheduled_hours",
	Help:      "Total active hours scheduled in the latest generated week",
})

// WarningsTotal counts soft notices by kind.
var WarningsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "scheduler",
	Name:      "warnings_total",
	Help:      "Total soft warnings reported, by kind",
}, []string{"kind"})

// =============================================================================
// IMPORTANT METRICS - Operational Health
// =============================================================================

// ParserErrorsTotal tracks parse errors by error type.
var ParserErrorsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "parser",
	Name:      "errors_total",
	Help:      "Total parse errors by error type",
}, []string{"error_type"})

// ParserRecordsTotal tracks total records successfully parsed.
var ParserRecordsTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "parser",
	Name:      "records_total",
	Help:      "Total roster CSV records successfully parsed",
})

// ParserDurationSeconds tracks time to parse input files.
var ParserDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "parser",
	Name:      "duration_seconds",
	Help:      "Time taken to parse roster CSV input",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
})

// SchedulerDurationSeconds tracks time to generate a week.
var SchedulerDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "scheduler",
	Name:      "duration_seconds",
	Help:      "Time taken to generate the schedule",
	Buckets:   []float64{0.0001, 0.0005, 0.001, 0.002, 0.005, 0.008, 0.01, 0.02, 0.05},
})

// SchedulerEmployeesProcessed tracks roster size per run.
var SchedulerEmployeesProcessed = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "scheduler",
	Name:      "employees_processed",
	Help:      "Number of employees processed per scheduling run",
	Buckets:   []float64{1, 2, 5, 10, 25, 50, 100, 250},
})

// SchedulerCandidatesEvaluated tracks how many candidate weeks were scored per run.
var SchedulerCandidatesEvaluated = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "scheduler",
	Name:      "candidates_evaluated",
	Help:      "Number of candidate weeks fully evaluated per scheduling run",
	Buckets:   []float64{1, 2, 3, 4, 6, 8},
})

// SchedulerBudgetExhaustedTotal counts runs where the time budget cut the search short.
var SchedulerBudgetExhaustedTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "scheduler",
	Name:      "budget_exhausted_total",
	Help:      "Count of runs where the optimizer stopped on its time budget",
})

// HTTPRequestsTotal tracks API requests by route and status.
var HTTPRequestsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "api",
	Name:      "requests_total",
	Help:      "Total HTTP requests by route, method and status code",
}, []string{"route", "method", "status"})

// HTTPRequestDurationSeconds tracks API latency by route.
var HTTPRequestDurationSeconds = factory.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "api",
	Name:      "request_duration_seconds",
	Help:      "HTTP request latency by route",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
}, []string{"route"})

// =============================================================================
// Helper Functions
// =============================================================================

// ResetSchedulerGauges resets all scheduler gauges before a new scheduling run.
func ResetSchedulerGauges() {
	ViolationsByKind.Reset()
	StaffingDeficitMinutes.Set(0)
	ScheduledHours.Set(0)
}

// ObserveResult records one generation run. Gauges describe the latest run,
// counters and histograms accumulate.
func ObserveResult(res *models.GenerationResult) {
	ResetSchedulerGauges()

	SchedulerDurationSeconds.Observe(res.ExecutionTimeMs / 1000)
	SchedulerEmployeesProcessed.Observe(float64(res.Stats.TotalEmployees))
	SchedulerCandidatesEvaluated.Observe(float64(res.Diagnostics.CandidatesEvaluated))
	if res.Diagnostics.BudgetExhausted {
		SchedulerBudgetExhaustedTotal.Inc()
	}

	ScheduledHours.Set(res.Stats.TotalHours)
	StaffingDeficitMinutes.Set(float64(res.Diagnostics.DeficitMinutes))

	for _, v := range res.Violations {
		ViolationsByKind.WithLabelValues(string(v.Kind)).Inc()
		ViolationsTotal.WithLabelValues(string(v.Kind)).Inc()
	}
	if !res.Feasible {
		InfeasibleResultsTotal.Inc()
	}
	for _, w := range res.Warnings {
		WarningsTotal.WithLabelValues(string(w.Kind)).Inc()
	}
}
