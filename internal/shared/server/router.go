package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"legalassist-backend/internal/analyses"
	"legalassist-backend/internal/documents"
	"legalassist-backend/internal/services/health"
	"legalassist-backend/internal/shared/config"
	"legalassist-backend/internal/shared/metrics"
	"legalassist-backend/internal/shared/server/middleware"
	"legalassist-backend/internal/shared/server/respond"
	"legalassist-backend/internal/users"
)

// RouterDeps carries the handlers the router mounts.
type RouterDeps struct {
	Config          config.Config
	Verifier        middleware.TokenVerifier
	Health          *health.Service
	UserHandler     *users.Handler
	DocumentHandler *documents.Handler
	AnalysisHandler *analyses.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())
	deps.DocumentHandler.RegisterFileRoutes(r)

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		status, ok := deps.Health.Status(c.Request.Context())
		code := http.StatusOK
		if !ok {
			code = http.StatusServiceUnavailable
		}
		respond.JSON(c, code, status)
	})
	deps.UserHandler.RegisterPublicRoutes(api)

	protected := api.Group("")
	protected.Use(middleware.Auth(deps.Verifier))
	deps.UserHandler.RegisterRoutes(protected)
	deps.DocumentHandler.RegisterRoutes(protected)
	deps.AnalysisHandler.RegisterRoutes(protected)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":5000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
