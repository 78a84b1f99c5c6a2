package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orgadmin_mutations_total",
		Help: "Total number of entity store mutations",
	}, []string{"entity", "operation"})

	importRowsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orgadmin_import_rows_total",
		Help: "Count of batch import rows by result",
	}, []string{"result"})

	importDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "orgadmin_import_duration_seconds",
		Help:    "Duration of batch import runs",
		Buckets: prometheus.DefBuckets,
	}, []string{"result"})

	searchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "orgadmin_search_duration_seconds",
		Help:    "Duration of search scans over both collections",
		Buckets: prometheus.DefBuckets,
	})

	organizationCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "orgadmin_organizations",
		Help: "Number of organizations currently in the store",
	})

	personnelCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "orgadmin_personnel",
		Help: "Number of personnel records currently in the store",
	})

	operationLogSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "orgadmin_operation_log_entries",
		Help: "Number of entries in the operation log",
	})
)

// ObserveMutation increments the mutation counter for an entity/operation pair.
func ObserveMutation(entity, operation string) {
	mutationsTotal.WithLabelValues(entity, operation).Inc()
}

// ObserveImportRow records one processed import row with a result label.
func ObserveImportRow(result string) {
	importRowsTotal.WithLabelValues(result).Inc()
}

// ObserveImportBatch records the duration of a whole import run.
func ObserveImportBatch(result string, duration time.Duration) {
	importDuration.WithLabelValues(result).Observe(duration.Seconds())
}

// ObserveSearch records the duration of one search scan.
func ObserveSearch(duration time.Duration) {
	searchDuration.Observe(duration.Seconds())
}

// SetEntityCounts sets the store size gauges.
func SetEntityCounts(organizations, personnel, logEntries int) {
	organizationCount.Set(float64(organizations))
	personnelCount.Set(float64(personnel))
	operationLogSize.Set(float64(logEntries))
}
