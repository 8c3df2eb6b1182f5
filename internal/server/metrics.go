package server

import "github.com/prometheus/client_golang/prometheus"

var (
	metricAnalyzed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vidsift_comments_analyzed_total",
		Help: "Total number of comments analyzed",
	})
	metricVerdicts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "vidsift_spam_verdicts_total",
		Help: "Total number of spam verdicts by primary category",
	}, []string{"category"})
	metricCacheHits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "vidsift_verdict_cache_requests_total",
		Help: "Total number of verdict cache lookups",
	}, []string{"result"})
	metricDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "vidsift_request_duration_seconds",
		Help:    "HTTP request duration by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
)

func init() {
	prometheus.MustRegister(metricAnalyzed, metricVerdicts, metricCacheHits, metricDuration)
}
