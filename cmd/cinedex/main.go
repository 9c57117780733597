package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kinoworks/cinedex/internal/cache"
	"github.com/kinoworks/cinedex/internal/config"
	"github.com/kinoworks/cinedex/internal/domain"
	"github.com/kinoworks/cinedex/internal/es"
	logpkg "github.com/kinoworks/cinedex/internal/logger"
	"github.com/kinoworks/cinedex/internal/metrics"
	moviesrepo "github.com/kinoworks/cinedex/internal/repository/movies"
	"github.com/kinoworks/cinedex/internal/transport/httpapi"
	openaiAdv "github.com/kinoworks/cinedex/internal/transport/openai"
	cataloguc "github.com/kinoworks/cinedex/internal/usecase/catalog"
	filtersuc "github.com/kinoworks/cinedex/internal/usecase/filters"
	healthuc "github.com/kinoworks/cinedex/internal/usecase/health"
	recommenduc "github.com/kinoworks/cinedex/internal/usecase/recommend"
	searchuc "github.com/kinoworks/cinedex/internal/usecase/search"
	suggestuc "github.com/kinoworks/cinedex/internal/usecase/suggest"
	tasteuc "github.com/kinoworks/cinedex/internal/usecase/taste"
	"github.com/kinoworks/cinedex/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting cinedex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("es_addrs", cfg.Elastic.Addrs),
		zap.String("es_index", cfg.Elastic.Index),
	)

	esClient, err := es.New(cfg.Elastic)
	if err != nil {
		logger.Fatal("Failed to create search client", zap.Error(err))
	}

	ctx := context.Background()

	// The search backend may still be warming up; requests degrade per-call,
	// so a failed initial ping is not fatal.
	pingCtx, cancelPing := context.WithTimeout(ctx, 5*time.Second)
	if err := esClient.Ping(pingCtx); err != nil {
		logger.Warn("Search backend not reachable yet", zap.Error(err))
	} else {
		logger.Info("Connected to search backend")
	}
	cancelPing()

	c, err := cache.New(cfg.Cache)
	if err != nil {
		logger.Fatal("Failed to create cache", zap.Error(err))
	}
	if c != nil {
		defer c.Close()
		if err := c.WaitForReady(ctx, time.Duration(cfg.Cache.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Cache not ready", zap.Error(err))
		}
		logger.Info("Connected to cache")
	}

	// Register engine metrics explicitly (no init())
	metrics.RegisterEngineMetrics()

	projector := domain.Projector{PosterBaseURL: cfg.Assets.PosterBaseURL}
	repo := moviesrepo.New(esClient)

	searchSvc := searchuc.New(repo, projector, cfg.Search)
	suggestSvc := suggestuc.New(repo)
	filtersSvc := filtersuc.New(repo, c, time.Duration(cfg.Cache.FilterTTLSec)*time.Second)
	recommendSvc := recommenduc.New(repo, c, projector, cfg.Search,
		time.Duration(cfg.Cache.RecommendTTLSec)*time.Second)
	catalogSvc := cataloguc.New(repo, searchSvc, projector, cfg.Search)

	// Pass nil interface (not typed nil pointer!) if the advisor is not
	// configured, so the taste service takes its fallback path.
	var advisor tasteuc.Advisor
	if cfg.Taste.Enabled {
		advisor = openaiAdv.NewAdvisor(&openaiAdv.Config{
			APIKey:  cfg.Taste.APIKey,
			BaseURL: cfg.Taste.BaseURL,
			Model:   cfg.Taste.Model,
			Logger:  logger,
		})
		logger.Info("Taste advisor enabled", zap.String("model", cfg.Taste.Model))
	}
	tasteSvc := tasteuc.New(advisor)

	var cachePinger healthuc.CachePinger
	if c != nil {
		cachePinger = c
	}
	healthSvc := healthuc.New(esClient, cachePinger)

	server := httpapi.NewServer(
		searchSvc, suggestSvc, filtersSvc, recommendSvc, catalogSvc, tasteSvc, healthSvc,
		httpapi.AgeResolver{TrustHeader: cfg.HTTP.TrustAdultHdr},
		logger,
	)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(httpapi.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)
	r.Handle("/metrics", promhttp.Handler())

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
