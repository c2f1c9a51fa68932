package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/careerkit/companion/internal/api/handlers"
	"github.com/careerkit/companion/internal/api/middleware"
	"github.com/careerkit/companion/internal/config"
	"github.com/careerkit/companion/internal/guidance"
	"github.com/careerkit/companion/internal/track"
)

// Deps carries the collaborators the transport shell exposes. They
// are constructed in main so startup seeding shares the same wiring.
type Deps struct {
	DB       *pgxpool.Pool
	Redis    *redis.Client
	Cfg      *config.Config
	Guidance *guidance.Service
	Usage    *track.Store
}

type Router struct {
	mux  *chi.Mux
	deps Deps
}

func NewRouter(deps Deps) *Router {
	return &Router{
		mux:  chi.NewRouter(),
		deps: deps,
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))

	rl := middleware.NewRateLimiter(100, 200)
	r.Use(rl.Limit)

	health := handlers.NewHealthHandler(rt.deps.DB, rt.deps.Redis, rt.deps.Cfg.Track.Service)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)
	r.Get("/health", health.Healthz)

	guidanceH := handlers.NewGuidanceHandler(rt.deps.Guidance)
	promptH := handlers.NewPromptHandler(rt.deps.Guidance, rt.deps.Cfg.LLM.DefaultModel)
	adminH := handlers.NewAdminHandler(rt.deps.Usage)

	r.Post("/analyze_skills", guidanceH.AnalyzeSkills)
	r.Post("/generate_plan", guidanceH.GeneratePlan)
	r.Post("/performance_review", guidanceH.PerformanceReview)
	r.Post("/mentor_simulation", guidanceH.MentorSimulation)

	r.Route("/prompts", func(r chi.Router) {
		r.Get("/list", promptH.List)
		r.Post("/register", promptH.Register)
		r.Post("/promote", promptH.Promote)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Get("/usage", adminH.Usage)
	})

	return r
}
