package guidance

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerkit/companion/internal/llm"
	"github.com/careerkit/companion/internal/prompt"
	"github.com/careerkit/companion/internal/registry"
	"github.com/careerkit/companion/internal/telemetry"
	"github.com/careerkit/companion/internal/track"
)

// The cached registry wrapper is what main wires in; it must carry
// the full Registry surface, listing included.
var _ Registry = (*registry.Cached)(nil)

type stubResolver struct {
	templates map[string]string
	err       error
}

func (r *stubResolver) Resolve(_ context.Context, name, _ string) (*prompt.Template, error) {
	if r.err != nil {
		return nil, r.err
	}
	body, ok := r.templates[name]
	if !ok {
		return nil, prompt.ErrPromptUnavailable
	}
	return &prompt.Template{Name: name, Version: 1, Body: body}, nil
}

func (r *stubResolver) Seed(ctx context.Context, prompts map[string]string) {
	for name, file := range prompts {
		_, _ = r.Resolve(ctx, name, file)
	}
}

type stubModel struct {
	response string
	err      error
	prompts  []string
}

func (m *stubModel) Generate(_ context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *stubModel) Model() string { return "gemini-1.5-flash" }

type captureEnqueuer struct {
	records []track.Record
	err     error
}

func (e *captureEnqueuer) EnqueueInteractionRecord(rec track.Record) error {
	if e.err != nil {
		return e.err
	}
	e.records = append(e.records, rec)
	return nil
}

func newTestService(resolver Resolver, model ModelClient, enq track.Enqueuer) *Service {
	recorder := track.NewRecorder(enq, track.Tags{Environment: "test", Service: "career-companion"})
	return NewService(resolver, model, recorder, telemetry.New(nil), nil)
}

func TestAnalyzeSkills(t *testing.T) {
	resolver := &stubResolver{templates: map[string]string{
		"skill_gap_analysis": "Skills: {current_skills}. Target: {target_role}.",
	}}
	model := &stubModel{response: "learn Kubernetes"}
	enq := &captureEnqueuer{}
	svc := newTestService(resolver, model, enq)

	out, err := svc.AnalyzeSkills(context.Background(), SkillGapRequest{
		CurrentSkills: "Python",
		TargetRole:    "ML Engineer",
	})
	require.NoError(t, err)
	assert.Equal(t, "learn Kubernetes", out)

	require.Len(t, model.prompts, 1)
	assert.Equal(t, "Skills: Python. Target: ML Engineer.", model.prompts[0])

	require.Len(t, enq.records, 1)
	rec := enq.records[0]
	assert.Equal(t, EndpointAnalyzeSkills, rec.Endpoint)
	assert.Equal(t, "gemini-1.5-flash", rec.Model)
	assert.Equal(t, "learn Kubernetes", rec.Response)
}

func TestGenerateSucceedsWhenRecordingFails(t *testing.T) {
	resolver := &stubResolver{templates: map[string]string{
		"mentor_simulation": "Q: {question} B: {background} S: {career_stage}",
	}}
	model := &stubModel{response: "keep going"}
	enq := &captureEnqueuer{err: errors.New("redis down")}
	svc := newTestService(resolver, model, enq)

	out, err := svc.MentorReply(context.Background(), MentorRequest{
		Question:    "should I switch teams?",
		Background:  "3 years backend",
		CareerStage: "mid",
	})
	require.NoError(t, err, "recording failure must not fail the caller")
	assert.Equal(t, "keep going", out)
}

func TestGenerateSurfacesModelError(t *testing.T) {
	resolver := &stubResolver{templates: map[string]string{
		"career_plan_generation": "{current_role} {target_role} {timeline_months} {focus_areas}",
	}}
	model := &stubModel{err: llm.ErrModel}
	svc := newTestService(resolver, model, &captureEnqueuer{})

	_, err := svc.GeneratePlan(context.Background(), CareerPlanRequest{
		CurrentRole:    "SWE",
		TargetRole:     "Staff SWE",
		TimelineMonths: "12",
		FocusAreas:     "architecture",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, llm.ErrModel))
}

func TestGenerateSurfacesMissingField(t *testing.T) {
	resolver := &stubResolver{templates: map[string]string{
		"performance_review": "Role: {role} Period: {period} Extra: {reviewer}",
	}}
	model := &stubModel{response: "unused"}
	enq := &captureEnqueuer{}
	svc := newTestService(resolver, model, enq)

	_, err := svc.DraftReview(context.Background(), ReviewRequest{
		Role:   "engineer",
		Period: "H1 2026",
	})
	require.Error(t, err)

	var missing *prompt.MissingFieldError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "reviewer", missing.Field)
	assert.Empty(t, model.prompts, "model must not be called with an unrendered template")
	assert.Empty(t, enq.records)
}

func TestGenerateSurfacesResolveError(t *testing.T) {
	resolver := &stubResolver{err: prompt.ErrPromptUnavailable}
	svc := newTestService(resolver, &stubModel{}, &captureEnqueuer{})

	_, err := svc.AnalyzeSkills(context.Background(), SkillGapRequest{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, prompt.ErrPromptUnavailable))
}

func TestSeedsCoverAllUseCases(t *testing.T) {
	for endpoint, uc := range useCases {
		file, ok := Seeds[uc.promptName]
		require.True(t, ok, "endpoint %s prompt %s missing from seeds", endpoint, uc.promptName)
		assert.Equal(t, uc.promptFile, file)
	}
}
