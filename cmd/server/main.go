package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/flynnai/extraction/internal/config"
	"github.com/flynnai/extraction/internal/db"
	"github.com/flynnai/extraction/internal/extraction"
	httpapi "github.com/flynnai/extraction/internal/http"
	"github.com/flynnai/extraction/internal/llm"
	"github.com/flynnai/extraction/internal/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "extraction-backend").Logger()

	ctx := context.Background()

	var store *db.Store
	if cfg.DatabaseURL != "" {
		store, err = db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect db")
		}
		defer store.Close()
	} else {
		logger.Info().Msg("no DATABASE_URL set, running without persistence")
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	var gateway llm.Gateway
	if cfg.OpenAIAPIKey == "" && cfg.OpenAIBaseURL == "" {
		gateway = llm.MockGateway{ModelVersion: "mock-v1"}
		logger.Info().Msg("using mock LLM gateway")
	} else {
		gateway = llm.NewOpenAIGateway(llm.Config{
			APIKey:      cfg.OpenAIAPIKey,
			BaseURL:     cfg.OpenAIBaseURL,
			Model:       cfg.OpenAIModel,
			Temperature: float32(cfg.LLMTemperature),
			MaxTokens:   cfg.LLMMaxTokens,
			MaxRetries:  cfg.LLMMaxRetries,
			Timeout:     cfg.LLMTimeout,
		}, logger, m)
	}

	extractor := &extraction.Service{
		Gateway:              gateway,
		Logger:               logger,
		Metrics:              m,
		ReviewThreshold:      cfg.HumanReviewThreshold,
		AutoConfirmThreshold: cfg.AutoConfirmThreshold,
	}

	router := httpapi.Router(cfg, store, extractor, registry, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
}
