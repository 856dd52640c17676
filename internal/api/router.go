// Package api exposes the JSON HTTP endpoints.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/cardstash/internal/middleware"
	"github.com/mmynk/cardstash/internal/service"
	"github.com/mmynk/cardstash/internal/storage"
)

// RouterConfig holds what NewRouter needs beyond the store.
type RouterConfig struct {
	Logger      *slog.Logger
	CORSOrigins []string
}

// NewRouter builds the gin engine with the /api routes, /healthz and /metrics.
func NewRouter(store storage.Store, cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := middleware.NewMetrics(reg)

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logging(logger),
		metrics.Handler(),
		middleware.CORS(cfg.CORSOrigins),
	)

	h := NewHandlers(
		service.NewAccountService(store, logger.With("service", "accounts")),
		service.NewCardService(store, logger.With("service", "cards")),
	)

	api := r.Group("/api")
	api.GET("/hello", h.Hello)
	api.POST("/sign-up", h.SignUp)
	api.POST("/sign-in", h.SignIn)
	api.POST("/cards", h.CreateCard)
	api.GET("/cards", h.SearchCards)
	api.GET("/users", h.ListUsers)

	r.GET("/healthz", health(store))
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	return r
}

func health(store storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
