// Package server provides the HTTP API for the resume builder: the AI
// provider proxy, the document and editor endpoints, chat and export.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"github.com/jonathan/resume-builder/internal/store"
)

// RequestIDHeader carries the id assigned to each request
const RequestIDHeader = "X-Request-ID"

// ClientFactory creates the provider client for one proxied call
type ClientFactory func(ctx context.Context, p llm.ProviderInfo, apiKey string) (llm.Client, error)

// Server represents the HTTP server
type Server struct {
	httpServer     *http.Server
	handler        http.Handler
	store          *store.Store
	session        *builder.Session
	exporter       *rendering.Exporter
	rateLimiter    *ratelimit.Limiter
	validate       *validator.Validate
	getenv         func(string) string
	newClient      ClientFactory
	allowedOrigins []string
	onShutdown     []func()
}

// Config holds server configuration
type Config struct {
	Port  int
	Store *store.Store
	// Provider is the chat session's initial provider
	Provider string
	// APIKey is the chat session's initial caller key
	APIKey string
	// Asker answers chat prompts; nil proxies them in-process
	Asker          builder.Asker
	Exporter       *rendering.Exporter
	RateLimit      *ratelimit.Config
	AllowedOrigins []string
	// Getenv resolves fallback provider keys; defaults to os.Getenv
	Getenv    func(string) string
	NewClient ClientFactory
	// OnShutdown runs after the listener has stopped
	OnShutdown []func()
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("server requires a document store")
	}
	if cfg.Provider == "" {
		cfg.Provider = llm.ProviderMistral
	}
	if _, ok := llm.Lookup(cfg.Provider); !ok {
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}

	s := &Server{
		store:          cfg.Store,
		exporter:       cfg.Exporter,
		validate:       validator.New(),
		getenv:         cfg.Getenv,
		newClient:      cfg.NewClient,
		allowedOrigins: cfg.AllowedOrigins,
		onShutdown:     cfg.OnShutdown,
	}
	if s.exporter == nil {
		s.exporter = rendering.NewExporter()
	}
	if s.getenv == nil {
		s.getenv = os.Getenv
	}
	if s.newClient == nil {
		s.newClient = func(ctx context.Context, p llm.ProviderInfo, apiKey string) (llm.Client, error) {
			return llm.NewClient(ctx, p, apiKey, llm.Options{})
		}
	}

	rl := cfg.RateLimit
	if rl == nil {
		rl = ratelimit.LoadConfig(s.getenv)
	}
	s.rateLimiter = ratelimit.NewLimiter(rl)

	asker := cfg.Asker
	if asker == nil {
		asker = proxyAsker{s}
	}
	s.session = builder.NewSession(cfg.Store, asker, cfg.Provider)
	if cfg.APIKey != "" {
		s.session.SetAPIKey(cfg.APIKey)
	}

	mux := http.NewServeMux()

	// AI provider proxy
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("POST /ask-ai/{provider}", s.handleAskAI)
	mux.HandleFunc("GET /providers", s.handleProviders)
	mux.HandleFunc("GET /health", s.handleHealth)

	// Document endpoints
	mux.HandleFunc("GET /resume", s.handleGetResume)
	mux.HandleFunc("PUT /resume", s.handleReplaceResume)
	mux.HandleFunc("POST /resume/reset", s.handleResetResume)
	mux.HandleFunc("PUT /resume/fields/{field}", s.handleSetField)
	mux.HandleFunc("POST /resume/sections", s.handleAddSection)
	mux.HandleFunc("DELETE /resume/sections/{id}", s.handleRemoveSection)
	mux.HandleFunc("POST /resume/sections/{id}/move", s.handleMoveSection)
	mux.HandleFunc("PUT /resume/sections/{id}/title", s.handleSetTitle)

	// Section editors
	mux.HandleFunc("POST /resume/sections/{id}/items", s.handleAppendItem)
	mux.HandleFunc("DELETE /resume/sections/{id}/items/{index}", s.handleRemoveItem)
	mux.HandleFunc("PUT /resume/sections/{id}/items/{index}/fields/{field}", s.handleSetItemField)
	mux.HandleFunc("POST /resume/sections/{id}/items/{index}/bullets", s.handleAppendBullet)
	mux.HandleFunc("PUT /resume/sections/{id}/items/{index}/bullets/{bullet}", s.handleSetBullet)
	mux.HandleFunc("DELETE /resume/sections/{id}/items/{index}/bullets/{bullet}", s.handleRemoveBullet)
	mux.HandleFunc("PUT /resume/sections/{id}/skills/{category}", s.handleSetSkillLine)
	mux.HandleFunc("PUT /resume/sections/{id}/text", s.handleSetText)

	// Export
	mux.HandleFunc("GET /resume/export/{format}", s.handleExport)

	// Chat session
	mux.HandleFunc("GET /chat", s.handleListMessages)
	mux.HandleFunc("POST /chat", s.handleChat)
	mux.HandleFunc("POST /chat/stream", s.handleChatStream)
	mux.HandleFunc("GET /settings", s.handleGetSettings)
	mux.HandleFunc("PUT /settings", s.handleUpdateSettings)

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(mux)))
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // PDF export and provider calls
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the routed handler with all middleware applied
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Session returns the chat session served under /chat
func (s *Server) Session() *builder.Session {
	return s.session
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[server] starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-stop:
	case err := <-errCh:
		s.Close()
		return fmt.Errorf("server error: %w", err)
	}
	log.Println("[server] shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.Close()
	log.Println("[server] stopped")
	return nil
}

// Close stops background work and runs the shutdown hooks
func (s *Server) Close() {
	// Stop rate limiter cleanup goroutine
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	for _, fn := range s.onShutdown {
		fn()
	}
	s.onShutdown = nil
}

// withCORS adds CORS headers. An empty origin list allows any origin.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		switch {
		case len(s.allowedOrigins) == 0:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case origin != "" && slices.Contains(s.allowedOrigins, origin):
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+RequestIDHeader)
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, "+RequestIDHeader)

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

// withLogging assigns a request id and logs each request
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)

		log.Printf("[%s] %s %s (%s)", r.Method, r.URL.Path, r.RemoteAddr, id)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v (%s)", r.Method, r.URL.Path, time.Since(start), id)
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
		log.Printf("[server] error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// domainError writes err with the status HTTPStatus assigns to it
func (s *Server) domainError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[server] %v", err)
	}
	s.errorResponse(w, status, err.Error())
}

// decodeJSON decodes the request body into v and runs struct validation
func (s *Server) decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid request body: " + err.Error()}
	}
	if err := s.validate.Struct(v); err != nil {
		return extractValidationError(err)
	}
	return nil
}

// extractValidationError converts validator errors to an ErrValidation
// naming the first failing field
func extractValidationError(err error) error {
	if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
		first := validationErrors[0]
		return &ErrValidation{Field: strings.ToLower(first.Field()), Message: first.Tag()}
	}
	return &ErrValidation{Field: "unknown", Message: err.Error()}
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr.
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
		"detail":    "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
