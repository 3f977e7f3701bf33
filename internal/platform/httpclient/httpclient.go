package httpclient

import (
	"net/http"
	"time"

	"pet-care-log/internal/platform/metrics"
)

const (
	DefaultTimeout = 10 * time.Second
)

// New crea el *http.Client para adapters salientes, con timeout y métricas por host.
func New(timeout time.Duration) *http.Client {
	return NewWithTransport(timeout, nil)
}

// NewWithTransport permite inyectar un Transport (p.ej. para tests).
func NewWithTransport(timeout time.Duration, tr http.RoundTripper) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if tr == nil {
		tr = http.DefaultTransport
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: &instrumented{next: tr},
	}
}

// instrumented cuenta las llamadas salientes por host y resultado.
type instrumented struct {
	next http.RoundTripper
}

func (t *instrumented) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)

	status := "error"
	if err == nil {
		status = statusClass(resp.StatusCode)
	}
	metrics.UpstreamRequestsTotal.WithLabelValues(req.URL.Host, status).Inc()
	metrics.UpstreamRequestDuration.WithLabelValues(req.URL.Host).Observe(time.Since(start).Seconds())
	return resp, err
}

func statusClass(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
