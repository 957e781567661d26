// Package server provides the HTTP REST API for the resume builder.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jonathan/resume-builder/internal/autofill"
	"github.com/jonathan/resume-builder/internal/billing"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"github.com/jonathan/resume-builder/internal/store"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          DBClient
	logger      *zap.Logger
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
	uploads     *autofill.Service
	billing     *billing.Client
	refresher   *billing.Refresher
	exporter    export.PDFExporter
	uploadCfg   *config.UploadConfig
	validator   *validator.Validate

	closeDB func()
}

// New creates a server wired from the environment. Upload parsing and
// billing stay disabled when their configuration is absent.
func New(ctx context.Context, cfg *config.ServerConfig, logger *zap.Logger) (*Server, error) {
	database, err := store.Connect(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Server{
		db:        database,
		logger:    logger,
		validator: validator.New(),
		closeDB:   database.Close,
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(database, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	uploadCfg, err := config.NewUploadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create upload config: %w", err)
	}
	s.uploadCfg = uploadCfg
	llmCfg := config.NewLLMConfig()
	if uploadCfg.ParserURL != "" || llmCfg.APIKey != "" {
		uploads, err := autofill.NewService(ctx, *uploadCfg, *llmCfg, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create upload service: %w", err)
		}
		s.uploads = uploads
	}

	billingCfg, err := config.NewBillingConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create billing config: %w", err)
	}
	if billingCfg.Enabled() {
		s.billing = billing.NewClient(billingCfg, logger)
		s.refresher = billing.NewRefresher(ctx, s.billing, billingCfg.RefreshInterval, logger)
	}

	s.exporter = export.NewChromeExporter(export.DefaultTimeout)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // PDF export can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the request mux. Document, render, upload, export,
// billing, and account routes require a bearer token; catalog and wizard
// validation do not.
func (s *Server) routes() http.Handler {
	requireAuth := middleware.RequireAuth(s.jwtService.AsTokenValidator())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)
	mux.Handle("GET /account", requireAuth(http.HandlerFunc(s.handleGetAccount)))

	mux.HandleFunc("GET /catalog/templates", s.handleListTemplates)
	mux.HandleFunc("GET /catalog/colors", s.handleListColors)

	mux.HandleFunc("POST /wizard/validate", s.handleValidateStep)

	mux.Handle("POST /render", requireAuth(http.HandlerFunc(s.handleRender)))
	mux.Handle("POST /render/preview", requireAuth(http.HandlerFunc(s.handleRenderPreview)))
	mux.Handle("POST /export/pdf", requireAuth(http.HandlerFunc(s.handleExportPDF)))

	mux.Handle("POST /documents", requireAuth(http.HandlerFunc(s.handleCreateDocument)))
	mux.Handle("GET /documents", requireAuth(http.HandlerFunc(s.handleListDocuments)))
	mux.Handle("GET /documents/{id}", requireAuth(http.HandlerFunc(s.handleGetDocument)))
	mux.Handle("PUT /documents/{id}", requireAuth(http.HandlerFunc(s.handleUpdateDocument)))
	mux.Handle("DELETE /documents/{id}", requireAuth(http.HandlerFunc(s.handleDeleteDocument)))

	mux.Handle("POST /uploads/resume", requireAuth(http.HandlerFunc(s.handleUploadResume)))

	mux.Handle("POST /billing/orders", requireAuth(http.HandlerFunc(s.handleCreateOrder)))
	mux.Handle("POST /billing/orders/{id}/capture", requireAuth(http.HandlerFunc(s.handleCaptureOrder)))
	mux.Handle("GET /billing/payments", requireAuth(http.HandlerFunc(s.handleListPayments)))

	return mux
}

// Start begins listening for requests
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-stop
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.refresher != nil {
		s.refresher.Stop()
	}
	if s.uploads != nil {
		_ = s.uploads.Close()
	}
	if s.closeDB != nil {
		s.closeDB()
	}

	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleGetAccount returns the authenticated user's account.
func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := s.userService.GetAccount(r.Context(), userID)
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error JSON response
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// extractClientID returns the client IP from RemoteAddr.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	s.logger.Warn("rate limit exceeded",
		zap.Int("limit", info.Limit),
		zap.Int("remaining", info.Remaining),
	)
	writeJSON(w, http.StatusTooManyRequests, response)
}
