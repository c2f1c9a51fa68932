package prompt

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateRender(t *testing.T) {
	tpl := &Template{
		Name: "skill_gap_analysis",
		Body: "Skills: {current_skills}. Target: {target_role}.",
	}

	out, err := tpl.Render(map[string]string{
		"current_skills": "Python",
		"target_role":    "ML Engineer",
	})
	require.NoError(t, err)
	assert.Equal(t, "Skills: Python. Target: ML Engineer.", out)
}

func TestTemplateRenderIgnoresExtraFields(t *testing.T) {
	tpl := &Template{Body: "Hi {name}"}

	out, err := tpl.Render(map[string]string{
		"name":   "Ana",
		"unused": "ignored",
	})
	require.NoError(t, err)
	assert.Equal(t, "Hi Ana", out)
}

func TestTemplateRenderMissingField(t *testing.T) {
	tpl := &Template{Body: "Role: {role}, Period: {period}"}

	_, err := tpl.Render(map[string]string{"period": "H1 2026"})
	require.Error(t, err)

	var missing *MissingFieldError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "role", missing.Field)
}

func TestTemplateRenderReportsFirstMissingInOrder(t *testing.T) {
	tpl := &Template{Body: "{a} {b} {c}"}

	_, err := tpl.Render(map[string]string{"a": "1"})
	var missing *MissingFieldError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "b", missing.Field)
}

func TestTemplateRenderIdempotent(t *testing.T) {
	tpl := &Template{Body: "Skills: {current_skills}."}
	fields := map[string]string{"current_skills": "Go, SQL"}

	first, err := tpl.Render(fields)
	require.NoError(t, err)
	second, err := tpl.Render(fields)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestTemplateRenderNoPlaceholders(t *testing.T) {
	tpl := &Template{Body: "static prompt"}

	out, err := tpl.Render(nil)
	require.NoError(t, err)
	assert.Equal(t, "static prompt", out)
}

func TestTemplateRenderRepeatedPlaceholder(t *testing.T) {
	tpl := &Template{Body: "{role} and again {role}"}

	out, err := tpl.Render(map[string]string{"role": "engineer"})
	require.NoError(t, err)
	assert.Equal(t, "engineer and again engineer", out)
}

func TestTemplateFields(t *testing.T) {
	tpl := &Template{Body: "{question} about {background} as {question}"}

	assert.Equal(t, []string{"question", "background"}, tpl.Fields())
}

func TestTemplateManaged(t *testing.T) {
	assert.True(t, (&Template{Version: 3}).Managed())
	assert.False(t, (&Template{}).Managed())
}
