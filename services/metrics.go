package services

import "github.com/prometheus/client_golang/prometheus"

var (
	rolloverArchives = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hydration_rollovers_total",
		Help: "Number of day rollovers applied (live counter archived and reset)",
	})
	summaryRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summary_computations_total",
			Help: "Number of aggregation summaries computed, by window mode",
		},
		[]string{"mode"},
	)
	nutritionLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nutrition_lookups_total",
			Help: "Nutrition webhook lookups, by decoded result kind",
		},
		[]string{"kind"},
	)
)

// InitMetrics registers the domain metrics. Call this from main.go
func InitMetrics() {
	prometheus.MustRegister(rolloverArchives)
	prometheus.MustRegister(summaryRequests)
	prometheus.MustRegister(nutritionLookups)
}
