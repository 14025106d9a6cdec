package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"legal-backend/internal/activities"
	"legal-backend/internal/analysis"
	"legal-backend/internal/chat"
	"legal-backend/internal/documents"
	"legal-backend/internal/generator"
	"legal-backend/internal/lawyers"
	"legal-backend/internal/shared/config"
	"legal-backend/internal/shared/metrics"
	"legal-backend/internal/shared/server/middleware"
	"legal-backend/internal/shared/server/respond"
)

const (
	healthPath  = "/api/v1/health"
	metricsPath = "/metrics"

	rateLimitGroupAI = "AI"
)

// RouterDeps carries the handlers mounted under /api/v1. Nil handlers are skipped.
type RouterDeps struct {
	Config            config.Config
	Verifier          middleware.TokenVerifier
	RateLimiter       *middleware.RateLimiter
	AnalysisHandler   *analysis.Handler
	GeneratorHandler  *generator.Handler
	DocumentsHandler  *documents.Handler
	ActivitiesHandler *activities.Handler
	LawyersHandler    *lawyers.Handler
	ChatHandler       *chat.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Verifier, healthPath, metricsPath),
	)

	r.GET(metricsPath, metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	registerMeRoutes(api, deps.Config.RateLimitAIRate, deps.Config.RateLimitAIBurst)

	aiLimit := middleware.RateLimit(middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			rateLimitGroupAI: {Rate: deps.Config.RateLimitAIRate, Burst: deps.Config.RateLimitAIBurst},
		},
		DefaultGroup: rateLimitGroupAI,
		Limiter:      deps.RateLimiter,
	})

	if deps.AnalysisHandler != nil {
		deps.AnalysisHandler.RegisterRoutes(api, aiLimit)
	}
	if deps.GeneratorHandler != nil {
		deps.GeneratorHandler.RegisterRoutes(api, aiLimit)
	}
	if deps.DocumentsHandler != nil {
		deps.DocumentsHandler.RegisterRoutes(api)
	}
	if deps.ActivitiesHandler != nil {
		deps.ActivitiesHandler.RegisterRoutes(api)
	}
	if deps.LawyersHandler != nil {
		deps.LawyersHandler.RegisterRoutes(api)
	}
	if deps.ChatHandler != nil {
		deps.ChatHandler.RegisterRoutes(api, aiLimit)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
