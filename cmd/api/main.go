// Package main is the entrypoint for the Platekeep API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/platekeep/platekeep/internal/cache"
	"github.com/platekeep/platekeep/internal/config"
	"github.com/platekeep/platekeep/internal/handler"
	"github.com/platekeep/platekeep/internal/metrics"
	"github.com/platekeep/platekeep/internal/middleware"
	"github.com/platekeep/platekeep/internal/repository"
	"github.com/platekeep/platekeep/internal/server"
	"github.com/platekeep/platekeep/internal/service"
	"github.com/platekeep/platekeep/internal/storage"
)

func main() {
	// Optional .env file for local development.
	_ = godotenv.Load()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	repo, err := waitForDatabase(ctx, cfg, logger)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	logger.Info("connected to database")

	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		repo.Close()
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	logger.Info("connected to Redis")

	mediaStore := storage.NewMediaStore(cfg.MediaRoot)

	metricsRecorder := metrics.NewInMemory()
	userService := service.NewUserService(repo, cacheClient, metricsRecorder)
	tagService := service.NewTagService(repo, metricsRecorder)
	ingredientService := service.NewIngredientService(repo, metricsRecorder)
	recipeService := service.NewRecipeService(repo, mediaStore, metricsRecorder)

	h := handler.New()
	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	metricsHandler := handler.NewMetricsHandler(metricsRecorder)
	userHandler := handler.NewUserHandler(userService, logger)
	tagHandler := handler.NewTagHandler(tagService, logger)
	ingredientHandler := handler.NewIngredientHandler(ingredientService, logger)
	recipeHandler := handler.NewRecipeHandler(recipeService, logger)

	r := setupRouter(routerDeps{
		base:        h,
		health:      healthHandler,
		metrics:     metricsHandler,
		users:       userHandler,
		tags:        tagHandler,
		ingredients: ingredientHandler,
		recipes:     recipeHandler,
		repo:        repo,
		cache:       cacheClient,
		recorder:    metricsRecorder,
		cfg:         cfg,
		logger:      logger,
	})

	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)
	srv.OnShutdown("postgres", func(ctx context.Context) error {
		repo.Close()
		return nil
	})
	srv.OnShutdown("redis", func(ctx context.Context) error {
		return cacheClient.Close()
	})

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"media_root", cfg.MediaRoot,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// waitForDatabase retries the initial database connection until it
// succeeds or the configured wait window elapses. Containerized
// deployments often start the API before PostgreSQL is ready.
func waitForDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*repository.Repository, error) {
	deadline := time.Now().Add(cfg.DBWaitTimeout)

	var lastErr error
	for {
		repo, err := repository.New(ctx, cfg.DatabaseURL)
		if err == nil {
			return repo, nil
		}
		lastErr = err

		if time.Now().After(deadline) {
			return nil, lastErr
		}

		logger.Warn("database not ready, retrying",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.Duration("retry_in", cfg.DBWaitInterval),
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(cfg.DBWaitInterval):
		}
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	level := parseLogLevel(cfg.LogLevel)

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type routerDeps struct {
	base        *handler.Handler
	health      *handler.HealthHandler
	metrics     *handler.MetricsHandler
	users       *handler.UserHandler
	tags        *handler.TagHandler
	ingredients *handler.IngredientHandler
	recipes     *handler.RecipeHandler
	repo        *repository.Repository
	cache       *cache.Cache
	recorder    metrics.Recorder
	cfg         *config.Config
	logger      *slog.Logger
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(deps routerDeps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.logger))
	r.Use(middleware.Recoverer(deps.logger))
	r.Use(middleware.Security(middleware.SecurityConfig{
		IsDevelopment:      deps.cfg.IsDevelopment(),
		MaxRequestBodySize: deps.cfg.MaxRequestBodySize,
	}))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = deps.cfg.GetCORSAllowedOrigins()
	r.Use(middleware.CORS(corsCfg))

	// Operational endpoints (no auth required)
	r.Get("/healthz", deps.health.Healthz)
	r.Get("/readyz", deps.health.Readyz)
	r.Get("/metrics", deps.metrics.Metrics)

	// Root info endpoint
	r.Get("/", deps.base.Hello)

	authCfg := middleware.AuthConfig{
		Logger:     deps.logger,
		Repository: deps.repo,
		Cache:      deps.cache,
		Metrics:    deps.recorder,
	}

	rateLimitCfg := middleware.RateLimitConfig{
		Logger:    deps.logger,
		Cache:     deps.cache,
		Enabled:   deps.cfg.RateLimitEnabled,
		PerMinute: deps.cfg.RateLimitPerMinute,
		Burst:     deps.cfg.RateLimitBurst,
	}

	// JSON bodies are capped tighter than image uploads.
	jsonBody := middleware.MaxBodySize(deps.cfg.MaxRequestBodySize)
	imageBody := middleware.MaxBodySize(deps.cfg.MaxImageBytes)

	// Account endpoints
	r.Route("/user", func(r chi.Router) {
		// Registration and login are unauthenticated
		r.With(jsonBody).Post("/create", deps.users.Create)

		r.Route("/token", func(r chi.Router) {
			r.With(jsonBody).Post("/", deps.users.Token)
			r.With(middleware.Auth(authCfg)).Delete("/", deps.users.RevokeToken)
		})

		r.Route("/me", func(r chi.Router) {
			r.Use(middleware.Auth(authCfg))
			r.Use(middleware.RateLimit(rateLimitCfg))

			r.Get("/", deps.users.Me)
			r.With(jsonBody).Put("/", deps.users.ReplaceMe)
			r.With(jsonBody).Patch("/", deps.users.UpdateMe)
		})
	})

	// Catalog endpoints (require authentication)
	r.Route("/recipe", func(r chi.Router) {
		r.Use(middleware.Auth(authCfg))
		r.Use(middleware.RateLimit(rateLimitCfg))

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", deps.tags.List)
			r.With(jsonBody).Post("/", deps.tags.Create)
		})

		r.Route("/ingredients", func(r chi.Router) {
			r.Get("/", deps.ingredients.List)
			r.With(jsonBody).Post("/", deps.ingredients.Create)
		})

		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", deps.recipes.List)
			r.With(jsonBody).Post("/", deps.recipes.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", deps.recipes.Get)
				r.With(jsonBody).Put("/", deps.recipes.Replace)
				r.With(jsonBody).Patch("/", deps.recipes.Update)
				r.Delete("/", deps.recipes.Delete)
				r.With(imageBody).Post("/upload-image", deps.recipes.UploadImage)
			})
		})
	})

	// 404 and 405 handlers
	r.NotFound(deps.base.NotFound)
	r.MethodNotAllowed(deps.base.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

// redactURL strips credentials from a connection URL for logging.
func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

// sanitizeError removes connection secrets from error messages.
func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
