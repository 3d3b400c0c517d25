package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"partmatch-service/internal/config"
	"partmatch-service/internal/middleware"
	"partmatch-service/internal/ocr"
	recHnd "partmatch-service/internal/reconcile/handler"
	recSvc "partmatch-service/internal/reconcile/service"
	"partmatch-service/server/http/handlers"
)

func NewRouter(cfg config.Config, logger zerolog.Logger, m *recSvc.Matcher, engine ocr.Engine) *chi.Mux {
	r := chi.NewRouter()

	// порядок важен: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(cfg.MaxBodyBytes()))
	r.MethodNotAllowed(recHnd.MethodNotAllowed)

	// health-check и служебное
	r.Get("/health", handlers.Health)
	r.Get("/catalog", recHnd.Catalog(m))
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/upload", recHnd.UploadForm)

	// сверка: OCR и текстовый вход
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
		r.Post("/upload", recHnd.Upload(cfg, logger, m, engine))
		r.Post("/reconcile", recHnd.Reconcile(logger, m))
	})

	return r
}
