package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WebhooksForwarded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "invitepush",
		Name:      "webhooks_forwarded_total",
		Help:      "Webhook deliveries that resulted in an accepted push.",
	})

	WebhooksIgnored = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "invitepush",
		Name:      "webhooks_ignored_total",
		Help:      "Webhook deliveries for other tables or change types.",
	})

	WebhooksFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "invitepush",
		Name:      "webhooks_failed_total",
		Help:      "Webhook deliveries that did not produce a push.",
	}, []string{"reason"})

	RateLimitDenied = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "invitepush",
		Name:      "rate_limit_denied_total",
		Help:      "Requests rejected by the rate limiter.",
	})
)
