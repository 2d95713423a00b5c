package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// QuestionsTotal counts answered questions by outcome (answered, fallback, empty).
	QuestionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "askta",
			Name:      "questions_total",
			Help:      "Total number of questions processed, by outcome",
		},
		[]string{"outcome"},
	)

	// CorpusItems reports the size of each loaded corpus.
	CorpusItems = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "askta",
			Name:      "corpus_items",
			Help:      "Number of items in each loaded corpus",
		},
		[]string{"corpus"},
	)
)

// RegisterEngineMetrics registers engine metrics explicitly (no init()).
func RegisterEngineMetrics() {
	prometheus.MustRegister(QuestionsTotal)
	prometheus.MustRegister(CorpusItems)
}

// ObserveCorpus records the sizes of a freshly published corpus snapshot.
func ObserveCorpus(posts, content int) {
	CorpusItems.WithLabelValues("posts").Set(float64(posts))
	CorpusItems.WithLabelValues("content").Set(float64(content))
}
