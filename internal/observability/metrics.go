package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts requests served to the browser
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storeadmin_http_requests_total",
		Help: "Requests served by the admin backend.",
	}, []string{"method", "route", "status"})

	// HTTPRequestDuration observes browser-facing request latency
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storeadmin_http_request_duration_seconds",
		Help:    "Latency of requests served by the admin backend.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// UpstreamRequestsTotal counts calls to the remote REST API
	UpstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storeadmin_upstream_requests_total",
		Help: "Calls issued to the remote REST API.",
	}, []string{"method", "resource", "outcome"})

	// UpstreamRequestDuration observes remote REST API latency
	UpstreamRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storeadmin_upstream_request_duration_seconds",
		Help:    "Latency of calls to the remote REST API.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "resource"})

	// CacheLookupsTotal counts query cache lookups by result (hit, miss, shared)
	CacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storeadmin_cache_lookups_total",
		Help: "Query cache lookups by result.",
	}, []string{"result"})

	// StaleResponsesTotal counts list responses discarded because a newer table state superseded them
	StaleResponsesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storeadmin_stale_responses_total",
		Help: "List responses discarded as superseded.",
	}, []string{"resource"})

	// EventsPublishedTotal counts broadcast signals
	EventsPublishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storeadmin_events_published_total",
		Help: "In-page signals broadcast.",
	}, []string{"type"})
)
