package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/platekeep/platekeep/internal/auth"
	"github.com/platekeep/platekeep/internal/cache"
	"github.com/platekeep/platekeep/internal/metrics"
	"github.com/platekeep/platekeep/internal/model"
	"github.com/platekeep/platekeep/internal/repository"
)

const (
	// minAuthDuration is the minimum time to spend on auth to prevent timing attacks.
	minAuthDuration = 200 * time.Millisecond
)

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger     *slog.Logger
	Repository *repository.Repository
	Cache      *cache.Cache
	Metrics    metrics.Recorder
}

// Auth returns a middleware that authenticates requests with bearer
// tokens. It verifies the token against stored hashes, checking a
// Redis-backed cache first, and injects the auth context into the
// request. All failures get the same response.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	recorder := cfg.Metrics
	if recorder == nil {
		recorder = metrics.NewNoop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			startTime := time.Now()

			// Ensure consistent timing regardless of outcome
			defer func() {
				elapsed := time.Since(startTime)
				if elapsed < minAuthDuration {
					time.Sleep(minAuthDuration - elapsed)
				}
			}()

			token := extractBearerToken(r)
			if token == "" {
				logAuthFailure(cfg.Logger, r, "missing_token")
				writeAuthError(w)
				return
			}

			prefix, secret, err := auth.ParseToken(token)
			if err != nil {
				logAuthFailure(cfg.Logger, r, "invalid_format")
				writeAuthError(w)
				return
			}

			// Check cache first
			cacheKey := auth.QuickHash(token)
			authCtx, _ := cfg.Cache.GetAuthContext(r.Context(), cacheKey)

			if authCtx != nil {
				recorder.IncAuthCacheHit()
				serveAuthenticated(cfg, next, w, r, authCtx, true)
				return
			}

			recorder.IncAuthCacheMiss()

			// Cache miss - lookup by prefix
			tokens, err := cfg.Repository.GetAuthTokensByPrefix(r.Context(), prefix)
			if err != nil {
				cfg.Logger.Error("database error during auth",
					slog.String("error", err.Error()),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w)
				return
			}

			// Verify against each candidate (handles prefix collisions)
			var matched *model.AuthToken
			for _, candidate := range tokens {
				ok, err := auth.VerifySecret(secret, candidate.TokenHash)
				if err != nil {
					continue
				}
				if ok {
					matched = candidate
					break
				}
			}

			if matched == nil {
				logAuthFailure(cfg.Logger, r, "invalid_token")
				writeAuthError(w)
				return
			}

			user, err := cfg.Repository.GetUserByID(r.Context(), matched.UserID)
			if err != nil || !user.IsActive {
				logAuthFailure(cfg.Logger, r, "inactive_account")
				writeAuthError(w)
				return
			}

			authCtx = &model.AuthContext{
				UserID:  user.ID,
				TokenID: matched.ID,
				IsStaff: user.IsStaff,
			}

			// Cache the result
			_ = cfg.Cache.SetAuthContext(r.Context(), cacheKey, authCtx)

			// Update last_used_at asynchronously
			tokenID := matched.ID
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = cfg.Repository.UpdateAuthTokenLastUsed(ctx, tokenID, time.Now().UTC())
			}()

			serveAuthenticated(cfg, next, w, r, authCtx, false)
		})
	}
}

// serveAuthenticated injects the auth context and hands off to the next handler.
func serveAuthenticated(cfg AuthConfig, next http.Handler, w http.ResponseWriter, r *http.Request, authCtx *model.AuthContext, cacheHit bool) {
	cfg.Logger.Info("authentication successful",
		slog.String("user_id", authCtx.UserID),
		slog.String("token_id", authCtx.TokenID),
		slog.String("endpoint", r.Method+" "+r.URL.Path),
		slog.Bool("cache_hit", cacheHit),
		slog.String("request_id", GetRequestID(r.Context())),
	)

	ctx := auth.ContextWithAuth(r.Context(), authCtx)
	next.ServeHTTP(w, r.WithContext(ctx))
}

func logAuthFailure(logger *slog.Logger, r *http.Request, reason string) {
	logger.Warn("authentication failed",
		slog.String("reason", reason),
		slog.String("ip", r.RemoteAddr),
		slog.String("endpoint", r.Method+" "+r.URL.Path),
		slog.String("request_id", GetRequestID(r.Context())),
	)
}

// extractBearerToken extracts the bearer token from the Authorization header.
func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// writeAuthError writes a 401 Unauthorized response.
// Uses the same message for all auth failures to prevent enumeration.
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Invalid or missing token","code":"UNAUTHORIZED"}`))
}
