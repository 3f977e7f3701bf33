package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	MessagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petlog_messages_total",
			Help: "Inbound text messages by classified intent",
		},
		[]string{"intent"},
	)

	CareEventsRecordedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petlog_care_events_recorded_total",
			Help: "Care events successfully recorded, by action",
		},
		[]string{"action"},
	)

	StoreErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petlog_store_errors_total",
			Help: "Care event store failures by operation",
		},
		[]string{"op", "kind"},
	)

	ProfileLookupFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "petlog_profile_lookup_failures_total",
			Help: "Display name lookups that fell back to the placeholder",
		},
	)

	ReplyFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "petlog_reply_failures_total",
			Help: "Replies the messaging platform refused or that failed in transit",
		},
	)

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"handler", "method", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"handler", "method"},
	)

	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petlog_upstream_requests_total",
			Help: "Outbound HTTP calls by host and status class",
		},
		[]string{"host", "status"},
	)

	UpstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "petlog_upstream_request_duration_seconds",
			Help:    "Outbound HTTP call duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"host"},
	)
)

var registerOnce sync.Once

// Register registra los collectors en el registry por defecto. Es seguro llamarlo más de una vez.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			MessagesTotal,
			CareEventsRecordedTotal,
			StoreErrorsTotal,
			ProfileLookupFailuresTotal,
			ReplyFailuresTotal,
			HTTPRequestsTotal,
			HTTPRequestDuration,
			UpstreamRequestsTotal,
			UpstreamRequestDuration,
		)
	})
}
