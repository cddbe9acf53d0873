package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Harshmohod/land-verification/internal/documents"
	"github.com/Harshmohod/land-verification/internal/shared/auth"
	"github.com/Harshmohod/land-verification/internal/shared/config"
	"github.com/Harshmohod/land-verification/internal/shared/metrics"
	"github.com/Harshmohod/land-verification/internal/shared/server/middleware"
	"github.com/Harshmohod/land-verification/internal/shared/server/respond"
	"github.com/Harshmohod/land-verification/internal/stats"
	"github.com/Harshmohod/land-verification/internal/users"
)

const authRateGroup = "AUTH"

// RouterDeps carries the wired handlers the router mounts.
type RouterDeps struct {
	Config           config.Config
	Tokens           *auth.TokenService
	Registry         *prometheus.Registry
	UsersHandler     *users.Handler
	DocumentsHandler *documents.Handler
	StatsHandler     *stats.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	if deps.Registry != nil {
		r.GET("/metrics", metrics.Handler(deps.Registry))
	}

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	public := api.Group("")
	public.Use(middleware.RateLimit(middleware.RateLimitConfig{
		DefaultGroup: authRateGroup,
		Rules: map[string]middleware.RateLimitRule{
			authRateGroup: {Rate: deps.Config.AuthRateRPS, Burst: deps.Config.AuthRateBurst},
		},
	}))
	deps.UsersHandler.RegisterPublicRoutes(public)

	protected := api.Group("")
	protected.Use(middleware.Auth(deps.Tokens))
	deps.UsersHandler.RegisterRoutes(protected)
	deps.DocumentsHandler.RegisterRoutes(protected)
	deps.StatsHandler.RegisterRoutes(protected)

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
