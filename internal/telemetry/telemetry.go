package telemetry

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/careerkit/companion/internal/cache"
)

// Telemetry is a fire-and-forget event and metric sink. Nothing here
// may ever fail the caller: sink trouble is logged locally and
// swallowed. Safe to use with a nil metric backend.
type Telemetry struct {
	metrics *cache.Cache
}

func New(metrics *cache.Cache) *Telemetry {
	return &Telemetry{metrics: metrics}
}

// LogEvent emits one structured log record at the given severity.
func (t *Telemetry) LogEvent(message, severity string) {
	switch severity {
	case "ERROR":
		slog.Error(message)
	case "WARNING":
		slog.Warn(message)
	default:
		slog.Info(message)
	}
}

// RecordMetric bumps a labeled counter in redis.
func (t *Telemetry) RecordMetric(ctx context.Context, name string, value float64, labels map[string]string) {
	if t == nil {
		return
	}
	if err := t.metrics.IncrementBy(ctx, metricKey(name, labels), value); err != nil {
		slog.Warn("failed to record metric", "metric", name, "error", err)
	}
}

func metricKey(name string, labels map[string]string) string {
	if len(labels) == 0 {
		return "metrics:" + name
	}
	pairs := make([]string, 0, len(labels))
	for k, v := range labels {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)
	return "metrics:" + name + ":" + strings.Join(pairs, ",")
}
