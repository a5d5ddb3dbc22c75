package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/vibetank/vibetank/internal/config"
	"github.com/vibetank/vibetank/internal/content"
	"github.com/vibetank/vibetank/internal/llm"
	"github.com/vibetank/vibetank/internal/metrics"
	"github.com/vibetank/vibetank/internal/server/middleware"
	"github.com/vibetank/vibetank/internal/server/ratelimit"
)

// ChatClientFactory builds a chat client per request.
type ChatClientFactory func(ctx context.Context, cfg *llm.Config, apiKey string) (llm.ChatClient, error)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	store       *content.Store
	logger      *zap.Logger
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	authHandler *AuthHandler

	corsOrigin    string
	chatAPIKey    string
	chatConfig    *llm.Config
	newChatClient ChatClientFactory
}

// Config holds server configuration
type Config struct {
	Port       int
	CORSOrigin string
	ChatAPIKey string
	ChatModel  string

	Store      *content.Store
	Passphrase *config.Passphrase
	// JWT is read from the environment when nil.
	JWT *config.JWTConfig
	// RateLimit is read from the environment when nil.
	RateLimit *ratelimit.Config
	Logger    *zap.Logger
	// NewChatClient defaults to llm.NewClient.
	NewChatClient ChatClientFactory
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("content store is required")
	}
	if cfg.Passphrase == nil {
		return nil, fmt.Errorf("passphrase is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	jwtConfig := cfg.JWT
	if jwtConfig == nil {
		var err error
		jwtConfig, err = config.NewJWTConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to create JWT config: %w", err)
		}
		if jwtConfig.Generated {
			logger.Warn("JWT_SECRET not set, admin sessions end with this process")
		}
	}

	rateConfig := cfg.RateLimit
	if rateConfig == nil {
		rateConfig = ratelimit.LoadConfig()
	}

	newChatClient := cfg.NewChatClient
	if newChatClient == nil {
		newChatClient = llm.NewClient
	}

	s := &Server{
		store:         cfg.Store,
		logger:        logger,
		rateLimiter:   ratelimit.NewLimiter(rateConfig),
		jwtService:    NewJWTService(jwtConfig),
		corsOrigin:    cfg.CORSOrigin,
		chatAPIKey:    cfg.ChatAPIKey,
		chatConfig:    llm.DefaultConfig().WithModel(cfg.ChatModel),
		newChatClient: newChatClient,
	}
	if s.corsOrigin == "" {
		s.corsOrigin = "*"
	}
	s.authHandler = NewAuthHandler(cfg.Passphrase, s.jwtService, logger)

	s.handler = middleware.RequestID(s.withLogging(s.withCORS(s.withRateLimit(s.routes()))))

	port := cfg.Port
	if port == 0 {
		port = config.DefaultPort
	}
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      5 * time.Minute, // chat streams
		IdleTimeout:       60 * time.Second,
	}

	return s, nil
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /{$}", s.handleSite)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /api/content", s.handleContent)
	mux.HandleFunc("GET /api/status", s.handleStatus)
	// any method, so the handler answers non-POST with its own 405 body
	mux.HandleFunc("/api/chat", s.handleChat)

	// Admin
	mux.HandleFunc("POST /api/admin/login", s.authHandler.Login)

	admin := func(h http.HandlerFunc) http.Handler {
		return middleware.AuthMiddleware(s.jwtService.AsTokenValidator())(h)
	}
	mux.Handle("PUT /api/admin/password", admin(s.authHandler.UpdatePassword))
	mux.Handle("PUT /api/admin/profile", admin(s.handleSetProfile))
	mux.Handle("PUT /api/admin/projects", admin(s.handleSetProjects))
	mux.Handle("POST /api/admin/projects", admin(s.handleAddProject))
	mux.Handle("PUT /api/admin/projects/{id}", admin(s.handleUpdateProject))
	mux.Handle("DELETE /api/admin/projects/{id}", admin(s.handleDeleteProject))
	mux.Handle("PUT /api/admin/goals", admin(s.handleSetGoals))
	mux.Handle("PUT /api/admin/goals/{id}", admin(s.handleUpdateGoal))
	mux.Handle("POST /api/admin/save", admin(s.handleSave))
	mux.Handle("POST /api/admin/load", admin(s.handleLoad))
	mux.Handle("GET /api/admin/export", admin(s.handleExport))
	mux.Handle("POST /api/admin/import", admin(s.handleImport))
	mux.Handle("POST /api/admin/reset", admin(s.handleReset))

	return mux
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := s.httpServer.Shutdown(shutdownCtx)
	s.rateLimiter.Stop()
	if err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}

// Close releases background resources without serving.
func (s *Server) Close() {
	s.rateLimiter.Stop()
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.corsOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-Request-ID, X-Vercel-AI-Data-Stream")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(extractClientID(r), r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code while keeping streaming working.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		if r.status == 0 {
			r.status = http.StatusOK
		}
		f.Flush()
	}
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// withLogging adds request logging and request metrics
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}
		metrics.HTTPRequest(r.Method, strconv.Itoa(status))
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", middleware.GetRequestID(r.Context())),
		)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier (IP address) from RemoteAddr.
func extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Round(time.Second).Seconds())
		if seconds < 1 {
			seconds = 1
		}
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.logger.Warn("rate limit exceeded",
		zap.String("path", r.URL.Path),
		zap.String("client", extractClientID(r)),
		zap.Int("limit", info.Limit),
	)

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
