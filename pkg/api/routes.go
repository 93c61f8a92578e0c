package api

import (
	"github.com/gin-gonic/gin"

	"github.com/questline-studio/agency-site/pkg/config"
	"github.com/questline-studio/agency-site/pkg/middleware"
)

const (
	LeadRoute       = "/api/contact"
	AppDetailsRoute = "/api/steam-app"
)

// NewRouter creates the gin engine with middleware and API routes registered
func NewRouter(cfg *config.Config, h *Handlers) *gin.Engine {
	router := NewBaseRouter(cfg)
	RegisterRoutes(router, h)
	return router
}

// NewBaseRouter creates the gin engine with the shared middleware only
func NewBaseRouter(cfg *config.Config) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	return router
}

// RegisterRoutes attaches the API endpoints to any gin route group
func RegisterRoutes(r gin.IRoutes, h *Handlers) {
	r.GET("/health", h.HealthCheck)
	r.POST(LeadRoute, h.HandleLeadSubmission)
	r.GET(AppDetailsRoute, h.HandleAppDetails)
}
