package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricKey(t *testing.T) {
	assert.Equal(t, "metrics:skills_analysis_requests", metricKey("skills_analysis_requests", nil))

	// Label order must not change the key.
	key := metricKey("career_plan_requests", map[string]string{
		"status":      "success",
		"environment": "production",
	})
	assert.Equal(t, "metrics:career_plan_requests:environment=production,status=success", key)
}

func TestRecordMetricWithoutBackend(t *testing.T) {
	tel := New(nil)

	assert.NotPanics(t, func() {
		tel.RecordMetric(context.Background(), "mentor_simulation_requests", 1, map[string]string{"status": "success"})
	})
}

func TestLogEventSeverities(t *testing.T) {
	tel := New(nil)

	assert.NotPanics(t, func() {
		tel.LogEvent("analyze_skills_completed", "INFO")
		tel.LogEvent("analyze_skills_failed", "ERROR")
		tel.LogEvent("slow response", "WARNING")
		tel.LogEvent("unknown severity falls through", "TRACE")
	})
}
