package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"service", "method", "path", "status"},
	)

	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)

	AccountsProvisionedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "accounts_provisioned_total",
			Help: "Total number of provisioned accounts.",
		},
		[]string{"role"},
	)

	ChatMessagesSentTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_messages_sent_total",
			Help: "Total number of chat messages sent.",
		},
		[]string{"sender_role"},
	)

	ChatQuotaExhaustedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_quota_exhausted_total",
			Help: "Total number of conversations blocked on the free message quota.",
		},
	)

	PostLikeTogglesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "post_like_toggles_total",
			Help: "Total number of post like toggles.",
		},
		[]string{"direction"},
	)
)

func MustRegister(serviceName string) {
	HTTPRequestsTotal = HTTPRequestsTotal.MustCurryWith(prometheus.Labels{"service": serviceName})
	HTTPRequestDurationSeconds = HTTPRequestDurationSeconds.MustCurryWith(prometheus.Labels{"service": serviceName}).(*prometheus.HistogramVec)

	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDurationSeconds,
		AccountsProvisionedTotal,
		ChatMessagesSentTotal,
		ChatQuotaExhaustedTotal,
		PostLikeTogglesTotal,
	)
}
