package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"scan-qa/pkg/handlers"
	"scan-qa/pkg/observability"
	"scan-qa/pkg/services/artifacts"
	"scan-qa/pkg/services/preprocess"
	"scan-qa/pkg/services/scanner"
	"scan-qa/pkg/storage"
	"scan-qa/pkg/structure"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	repo, err := storage.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer repo.Close()

	rec, err := newRecognizer(cfg.OCR)
	if err != nil {
		return err
	}
	st, err := structure.NewStructurer(cfg.Structure)
	if err != nil {
		return err
	}
	scan := scanner.New(preprocess.New(cfg.Preprocess), rec, st, scanner.Options{
		Repository: repo,
		Artifacts:  artifacts.NewStore(cfg.Artifacts.Dir),
	}, logger)

	var asker handlers.Asker
	answerer, answerCache, err := newAnswerer(cfg, logger)
	if err != nil {
		// scanning still works without a model
		logger.Warn().Err(err).Msg("question answering disabled")
	} else {
		asker = answerer
		defer answerCache.Close()
	}

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), observability.RequestLogger(logger))
	router.MaxMultipartMemory = cfg.Server.MaxUploadBytes

	handlers.New(repo, scan, asker, cfg.Server.MaxUploadBytes, logger).Register(router)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.RequestTimeout,
		WriteTimeout: cfg.Server.RequestTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Int("port", cfg.Server.Port).Str("ocr", rec.Name()).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
