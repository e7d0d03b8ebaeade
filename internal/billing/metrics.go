package billing

import "github.com/prometheus/client_golang/prometheus"

var passRuns = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "billing_pass_runs_total",
		Help: "How many billing passes ran, partitioned by pass, collection and result.",
	},
	[]string{"pass", "collection", "result"},
)

var documentsModified = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "billing_documents_modified_total",
		Help: "How many documents billing passes wrote, partitioned by pass and collection.",
	},
	[]string{"pass", "collection"},
)

// Collectors returns the Prometheus collectors of the billing passes.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{passRuns, documentsModified}
}

func observe(pass, collection string, success bool, modified int) {
	result := "success"
	if !success {
		result = "failure"
	}

	passRuns.WithLabelValues(pass, collection, result).Inc()
	documentsModified.WithLabelValues(pass, collection).Add(float64(modified))
}
