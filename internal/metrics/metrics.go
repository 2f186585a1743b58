package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pr_messages"

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Recorder counts and times tool invocations. Each Recorder owns its own
// registry so tests and multiple servers never collide.
type Recorder struct {
	registry *prometheus.Registry
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_calls_total",
			Help:      "Tool invocations by tool and outcome.",
		}, []string{"tool", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tool_call_duration_seconds",
			Help:      "Tool invocation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"tool"}),
	}
	r.registry.MustRegister(
		r.calls,
		r.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Observe records a single invocation.
func (r *Recorder) Observe(tool, status string, elapsed time.Duration) {
	r.calls.WithLabelValues(tool, status).Inc()
	r.duration.WithLabelValues(tool).Observe(elapsed.Seconds())
}

// Instrument wraps a tool handler. Error results count as failures just like
// returned errors.
func (r *Recorder) Instrument(tool string, next server.ToolHandlerFunc) server.ToolHandlerFunc {
	if r == nil {
		return next
	}
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		result, err := next(ctx, req)
		status := StatusOK
		if err != nil || (result != nil && result.IsError) {
			status = StatusError
		}
		r.Observe(tool, status, time.Since(start))
		return result, err
	}
}
