// Package server assembles the HTTP surface: middleware, the GraphQL endpoint,
// the inventory export download and the health probe.
package server

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/fekuna/omnipos-warehouse-service/internal/auth"
	"github.com/fekuna/omnipos-warehouse-service/pkg/logger"
	"github.com/fekuna/omnipos-warehouse-service/pkg/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

const healthTimeout = 2 * time.Second

type Config struct {
	ServiceName    string
	AllowedOrigins []string
	Development    bool
}

// Dependencies are the handlers and probes the router mounts.
type Dependencies struct {
	Tokens  *auth.TokenManager
	GraphQL gin.HandlerFunc
	Export  gin.HandlerFunc
	Ping    func(ctx context.Context) error
}

func NewRouter(cfg Config, deps Dependencies, log logger.ZapLogger) *gin.Engine {
	if !cfg.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.AccessLog(log),
		middleware.Recovery(log),
		cors.New(corsConfig(cfg.AllowedOrigins)),
		otelgin.Middleware(cfg.ServiceName),
	)

	r.GET("/health", health(deps.Ping, log))

	authed := r.Group("/", auth.Middleware(deps.Tokens))
	authed.POST("/graphql", deps.GraphQL)
	authed.GET("/graphql", deps.GraphQL)
	authed.GET("/api/export", deps.Export)

	return r
}

// corsConfig allows credentials for the listed origins. An empty list or "*" opens
// the API to any origin without credentials.
func corsConfig(origins []string) cors.Config {
	cc := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Disposition", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cc.AllowAllOrigins = true
		return cc
	}
	cc.AllowOrigins = origins
	cc.AllowCredentials = true
	return cc
}

func health(ping func(ctx context.Context) error, log logger.ZapLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		if ping != nil {
			if err := ping(ctx); err != nil {
				log.Warn("health check failed", zap.Error(err))
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
