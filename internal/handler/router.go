package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/kdduha/chat-assistant/internal/config"
	"github.com/kdduha/chat-assistant/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Chat    *ChatHandler
	Upload  *UploadHandler
	Compare *CompareHandler
	Models  *ModelsHandler
}

func NewRouter(cfg config.ServerConfig, h Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use([]func(http.Handler) http.Handler{
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.Throttle(cfg.ThrottleLimit),
		middleware.Timeout(cfg.Timeout),
		metrics.Middleware,
	}...)

	r.Post("/chat", h.Chat.Chat)
	r.Post("/upload", h.Upload.Upload)
	r.Post("/compare", h.Compare.Compare)
	r.Get("/models", h.Models.Models)
	r.Get("/stats", h.Models.Stats)
	r.Get("/healthz", Healthz)

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Handle("/metrics", promhttp.Handler())
	return r
}
