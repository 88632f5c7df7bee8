package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	gatewayRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_gateway_requests_total",
			Help: "Backend calls issued by the portal, by method and response status",
		},
		[]string{"method", "status"},
	)

	gatewayDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portal_gateway_request_duration_seconds",
			Help:    "Latency of backend calls issued by the portal",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)
