package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"twittertext/internal/adapters/cache"
	"twittertext/internal/adapters/configstore"
	"twittertext/internal/adapters/web"
	"twittertext/internal/usecases"
	"twittertext/pkg/log"
	"twittertext/pkg/log/transporters"
	"twittertext/pkg/twittertext"
	"twittertext/pkg/twittertext/scanner"
)

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	level, err := log.ParseLevel(getEnv("LOG_LEVEL", "info"))
	logger := log.New(level, transporters.NewStdout())
	defer logger.Close()
	log.SetDefault(logger)
	if err != nil {
		logger.Warn("invalid LOG_LEVEL, using info", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	presetsPath := getEnv("PRESETS_FILE", "config/presets.yaml")
	configs, err := configstore.Load(presetsPath, logger)
	if err != nil {
		logger.Fatal("failed to load presets", "path", presetsPath, "error", err)
		logger.Close()
		os.Exit(1)
	}
	go configs.Watch(ctx, 10*time.Second)

	backendName := getEnv("SCANNER_BACKEND", "scanner")
	backend, ok := scanner.BackendByName(backendName)
	if !ok {
		logger.Warn("unknown SCANNER_BACKEND, using scanner", "value", backendName, "have", scanner.BackendNames())
		backend = scanner.Scanner{}
	}
	extract := []twittertext.Option{twittertext.WithBackend(backend)}

	maxBytes := getEnvInt(logger, "MAX_TEXT_BYTES", 16384)
	results := cache.NewMemoryCache(getEnvMinutes(logger, "CACHE_TTL_MINUTES", 5), time.Minute)
	defer results.Close()

	rateLimiter := web.NewRateLimiter(getEnvInt(logger, "RATE_LIMIT_PER_MINUTE", 120), time.Minute)
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rateLimiter.Cleanup()
			}
		}
	}()

	metrics := web.NewMetrics()
	handlers := web.NewHandlers(
		usecases.NewAnalyzeTextUseCase(results, configs, maxBytes, logger, extract...),
		usecases.NewExtractEntitiesUseCase(maxBytes, logger, extract...),
		usecases.NewValidateTextUseCase(configs, maxBytes, logger),
		configs,
		metrics,
		logger,
	)
	app := web.NewApp(web.AppConfig{
		Handlers:    handlers,
		RateLimiter: rateLimiter,
		Metrics:     metrics,
		Logger:      logger,
		BodyLimit:   maxBytes * 4,
	})

	go func() {
		<-ctx.Done()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}()

	port := getEnv("PORT", "3000")
	logger.Info("starting twittertext server", "port", port, "presets", configs.Names(), "backend", backendName)
	if err := app.Listen(":" + port); err != nil {
		logger.Error("server stopped", "error", err)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(logger *log.Logger, key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		logger.Warn("invalid value, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func getEnvMinutes(logger *log.Logger, key string, fallback int) time.Duration {
	return time.Duration(getEnvInt(logger, key, fallback)) * time.Minute
}
