package server

import (
	"context"
	"net/http"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/metrics"
	"github.com/fekuna/omnipos-catalog-service/internal/middleware"
	"github.com/fekuna/omnipos-catalog-service/internal/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger reports whether the store is reachable; *sqlx.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RouteRegistrar mounts a feature's endpoints under /api.
type RouteRegistrar func(api *gin.RouterGroup)

type RouterConfig struct {
	Logger         logger.ZapLogger
	Metrics        *metrics.HTTPMetrics
	AllowedOrigins []string
	DB             Pinger
	Routes         []RouteRegistrar
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(cfg.Logger),
		gin.CustomRecovery(func(c *gin.Context, recovered any) {
			cfg.Logger.Error("panic recovered",
				zap.String("request_id", middleware.GetRequestID(c)),
				zap.Any("panic", recovered),
			)
			response.Error(c, http.StatusInternalServerError, "Internal server error")
		}),
		middleware.CORS(cfg.AllowedOrigins),
	)
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	if err := r.SetTrustedProxies(nil); err != nil {
		cfg.Logger.Warn("failed to set trusted proxies", zap.Error(err))
	}

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Route not found")
	})

	api := r.Group("/api")
	api.GET("/health", healthHandler(cfg.DB))
	for _, register := range cfg.Routes {
		register(api)
	}

	return r
}

func healthHandler(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				response.Error(c, http.StatusServiceUnavailable, "Database unavailable")
				return
			}
		}
		response.OK(c, "OK", gin.H{"database": "up"})
	}
}
