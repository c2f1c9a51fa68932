package guidance

import (
	"context"
	"fmt"

	"github.com/careerkit/companion/internal/prompt"
	"github.com/careerkit/companion/internal/registry"
	"github.com/careerkit/companion/internal/telemetry"
	"github.com/careerkit/companion/internal/track"
)

// Endpoint names double as interaction-record keys and metric labels.
const (
	EndpointAnalyzeSkills     = "analyze_skills"
	EndpointGeneratePlan      = "generate_plan"
	EndpointPerformanceReview = "performance_review"
	EndpointMentorSimulation  = "mentor_simulation"
)

// Seeds maps each logical prompt name to its bundled fallback file.
var Seeds = map[string]string{
	"skill_gap_analysis":     "skill_gap_prompt.txt",
	"career_plan_generation": "career_plan_prompt.txt",
	"performance_review":     "review_prompt.txt",
	"mentor_simulation":      "mentor_prompt.txt",
}

type useCase struct {
	promptName string
	promptFile string
	metric     string
}

var useCases = map[string]useCase{
	EndpointAnalyzeSkills:     {"skill_gap_analysis", "skill_gap_prompt.txt", "skills_analysis_requests"},
	EndpointGeneratePlan:      {"career_plan_generation", "career_plan_prompt.txt", "career_plan_requests"},
	EndpointPerformanceReview: {"performance_review", "review_prompt.txt", "performance_review_requests"},
	EndpointMentorSimulation:  {"mentor_simulation", "mentor_prompt.txt", "mentor_simulation_requests"},
}

// Resolver yields a renderable template for a logical prompt name.
type Resolver interface {
	Resolve(ctx context.Context, name, file string) (*prompt.Template, error)
	Seed(ctx context.Context, prompts map[string]string)
}

// ModelClient is the narrow view of the LLM gateway this service
// needs.
type ModelClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Registry is the prompt store plus the listing the API exposes.
type Registry interface {
	prompt.Store
	List(ctx context.Context) ([]registry.Info, error)
}

// Service implements the career-guidance use cases. Each call
// resolves a template, renders it with the request fields, invokes
// the model once, and records the exchange best-effort.
type Service struct {
	resolver Resolver
	model    ModelClient
	recorder *track.Recorder
	tel      *telemetry.Telemetry
	registry Registry
}

func NewService(resolver Resolver, model ModelClient, recorder *track.Recorder, tel *telemetry.Telemetry, reg Registry) *Service {
	return &Service{
		resolver: resolver,
		model:    model,
		recorder: recorder,
		tel:      tel,
		registry: reg,
	}
}

type SkillGapRequest struct {
	CurrentSkills string `json:"current_skills"`
	TargetRole    string `json:"target_role"`
}

func (s *Service) AnalyzeSkills(ctx context.Context, req SkillGapRequest) (string, error) {
	return s.generate(ctx, EndpointAnalyzeSkills, map[string]string{
		"current_skills": req.CurrentSkills,
		"target_role":    req.TargetRole,
	})
}

type CareerPlanRequest struct {
	CurrentRole    string `json:"current_role"`
	TargetRole     string `json:"target_role"`
	TimelineMonths string `json:"timeline_months"`
	FocusAreas     string `json:"focus_areas"`
}

func (s *Service) GeneratePlan(ctx context.Context, req CareerPlanRequest) (string, error) {
	return s.generate(ctx, EndpointGeneratePlan, map[string]string{
		"current_role":    req.CurrentRole,
		"target_role":     req.TargetRole,
		"timeline_months": req.TimelineMonths,
		"focus_areas":     req.FocusAreas,
	})
}

type ReviewRequest struct {
	Role            string `json:"role"`
	Period          string `json:"period"`
	Accomplishments string `json:"accomplishments"`
}

func (s *Service) DraftReview(ctx context.Context, req ReviewRequest) (string, error) {
	return s.generate(ctx, EndpointPerformanceReview, map[string]string{
		"role":            req.Role,
		"period":          req.Period,
		"accomplishments": req.Accomplishments,
	})
}

type MentorRequest struct {
	Question    string `json:"question"`
	Background  string `json:"background"`
	CareerStage string `json:"career_stage"`
}

func (s *Service) MentorReply(ctx context.Context, req MentorRequest) (string, error) {
	return s.generate(ctx, EndpointMentorSimulation, map[string]string{
		"question":     req.Question,
		"background":   req.Background,
		"career_stage": req.CareerStage,
	})
}

func (s *Service) generate(ctx context.Context, endpoint string, fields map[string]string) (string, error) {
	uc := useCases[endpoint]

	tpl, err := s.resolver.Resolve(ctx, uc.promptName, uc.promptFile)
	if err != nil {
		s.fail(ctx, endpoint, uc.metric)
		return "", err
	}

	rendered, err := tpl.Render(fields)
	if err != nil {
		s.fail(ctx, endpoint, uc.metric)
		return "", fmt.Errorf("render %s: %w", uc.promptName, err)
	}

	response, err := s.model.Generate(ctx, rendered)
	if err != nil {
		s.fail(ctx, endpoint, uc.metric)
		return "", err
	}

	s.recorder.Record(ctx, endpoint, rendered, response, s.model.Model())
	s.tel.LogEvent(endpoint+"_completed", "INFO")
	s.tel.RecordMetric(ctx, uc.metric, 1, map[string]string{"status": "success"})

	return response, nil
}

func (s *Service) fail(ctx context.Context, endpoint, metric string) {
	s.tel.LogEvent(endpoint+"_failed", "ERROR")
	s.tel.RecordMetric(ctx, metric, 1, map[string]string{"status": "error"})
}

// SeedPrompts pre-registers the bundled prompts so a fresh registry
// is populated before the first request.
func (s *Service) SeedPrompts(ctx context.Context) {
	s.resolver.Seed(ctx, Seeds)
}

func (s *Service) ListPrompts(ctx context.Context) ([]registry.Info, error) {
	return s.registry.List(ctx)
}

func (s *Service) RegisterPrompt(ctx context.Context, name, content, modelTag string) (*prompt.Template, error) {
	return s.registry.Register(ctx, name, content, modelTag)
}

func (s *Service) PromotePrompt(ctx context.Context, name string, version int, alias string) error {
	return s.registry.Promote(ctx, name, version, alias)
}
