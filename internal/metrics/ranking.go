package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Ranking Prometheus metrics.
var (
	RankDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "katalog",
			Name:      "rank_duration_seconds",
			Help:      "TF-IDF ranking duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		},
		[]string{"source"}, // "recommend" / "api"
	)

	RankCorpusSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "katalog",
			Name:      "rank_corpus_documents",
			Help:      "Number of documents scored per ranking call",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
		},
		[]string{"source"},
	)

	RankResultSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "katalog",
			Name:      "rank_result_items",
			Help:      "Number of ids returned per ranking call",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32, 50},
		},
		[]string{"source"},
	)

	RecommendationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "katalog",
			Name:      "recommendations_total",
			Help:      "Recommendation requests by kind and outcome",
		},
		[]string{"kind", "outcome"}, // "served" / "no_tokens" / "empty_catalog" / "error"
	)
)

var rankMetricsRegistered bool

// RegisterRankingMetrics registers Prometheus ranking metrics. Must be called once from main.
func RegisterRankingMetrics() {
	if rankMetricsRegistered {
		return
	}
	prometheus.MustRegister(RankDuration)
	prometheus.MustRegister(RankCorpusSize)
	prometheus.MustRegister(RankResultSize)
	prometheus.MustRegister(RecommendationsTotal)
	rankMetricsRegistered = true
}

// ObserveRank records one ranking call.
func ObserveRank(source string, corpus, results int, d time.Duration) {
	RankDuration.WithLabelValues(source).Observe(d.Seconds())
	RankCorpusSize.WithLabelValues(source).Observe(float64(corpus))
	RankResultSize.WithLabelValues(source).Observe(float64(results))
}
