package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of a single OpenAI chat completion call
	ProviderCallLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "openai_call_latency_seconds",
		Help:    "Latency of OpenAI chat completion calls",
		Buckets: prometheus.DefBuckets,
	})

	// Total provider calls by outcome (success / error)
	ProviderCalls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "openai_calls_total",
		Help: "Total number of OpenAI chat completion calls",
	}, []string{"outcome"})

	// Total recommendation pipeline runs by kind (product / campaign)
	RecommendationRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recommendation_requests_total",
		Help: "Total number of recommendation pipeline runs",
	}, []string{"kind"})

	// Total message generation runs by kind (segment / individual)
	MessageGenerationRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "message_generation_requests_total",
		Help: "Total number of message generation pipeline runs",
	}, []string{"kind"})

	// Candidates dropped during reconciliation, by reason
	ReconcilerDroppedCandidates = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reconciler_dropped_candidates_total",
		Help: "Provider candidates dropped during reconciliation",
	}, []string{"reason"})
)

func Init() {
	prometheus.MustRegister(
		ProviderCallLatency,
		ProviderCalls,
		RecommendationRequests,
		MessageGenerationRequests,
		ReconcilerDroppedCandidates,
	)
}
