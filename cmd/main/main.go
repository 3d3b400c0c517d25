package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"partmatch-service/internal/config"
	"partmatch-service/internal/fileio"
	"partmatch-service/internal/metrics"
	"partmatch-service/internal/ocr"
	"partmatch-service/internal/ocr/tesseract"
	"partmatch-service/internal/reconcile/model"
	recSvc "partmatch-service/internal/reconcile/service"
	serverhttp "partmatch-service/server/http"
)

func main() {
	cfg := config.Load()
	logger := config.SetupLogger(cfg)

	opt, err := cfg.MatchOptions()
	if err != nil {
		logger.Fatal().Err(err).Msg("match options")
	}

	// справочник грузим один раз; без него сервис работает, но всё уйдёт в unmatched
	catalog, err := fileio.LoadFile(cfg.CatalogPath)
	if err != nil {
		logger.Error().Err(err).Str("path", cfg.CatalogPath).Msg("catalog load failed")
		catalog = model.Catalog{}
	} else {
		logger.Info().Str("path", cfg.CatalogPath).Int("sheets", len(catalog)).Int("rows", catalog.Rows()).Msg("catalog loaded")
	}
	metrics.RecordCatalog(catalog)

	matcher := recSvc.NewMatcher(catalog, opt)
	engine := ocr.Preprocessed(tesseract.New(cfg.OCRLangs...), uint8(cfg.OCRBinarize))

	r := serverhttp.NewRouter(cfg, logger, matcher, engine)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Info().Str("addr", cfg.Addr()).Str("ocr", engine.Name()).Msg("server starting")

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	logger.Info().Msg("bye")
}
