package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// 1) AI call volume
	AIRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ai_requests_total",
		Help: "Total number of generative model calls issued.",
	})

	// 2) AI latency
	AIRequestDurationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "ai_request_duration_seconds",
		Help:    "Duration of generative model calls.",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 60},
	})

	// 3) Contract degradation
	AIParseFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ai_parse_failures_total",
		Help: "Model replies that fell back to canned content after a JSON parse failure.",
	})

	// 4) Daily quota denials
	QuotaDeniedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quota_denied_total",
		Help: "Requests denied by the daily usage ledger.",
	})

	// 5) Document store write latency
	StoreWriteDurationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "store_write_duration_seconds",
		Help:    "Duration of document store writes (saves, profile updates).",
		Buckets: []float64{0.005, 0.01, 0.02, 0.05, 0.1, 0.25, 0.5, 1},
	})

	// 6) Rate limiting drops
	RateLimitDroppedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_dropped_total",
		Help: "Requests rejected by the per-user burst rate limiter.",
	})

	// 7) Billing
	OrdersCapturedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_captured_total",
		Help: "Payment orders captured with a COMPLETED status.",
	})
)

func MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(
		AIRequestsTotal,
		AIRequestDurationSeconds,
		AIParseFailuresTotal,
		QuotaDeniedTotal,
		StoreWriteDurationSeconds,
		RateLimitDroppedTotal,
		OrdersCapturedTotal,
	)
}
