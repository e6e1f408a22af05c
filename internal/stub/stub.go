// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package stub serves canned replies over the same wire contract as the
// assistant backend: POST {"prompt": "..."} and get {"ans": "..."} back.
// It exists for local development and demos when no model is running.
package stub

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/jeranaias/linkchat-tui/internal/backend"
)

// DefaultAddr matches the host and port of backend.DefaultEndpoint.
const DefaultAddr = "127.0.0.1:8000"

// Config controls the stub server.
type Config struct {
	Addr string

	// Delay is added before every reply so the pending indicator can be seen.
	Delay time.Duration

	// FailStatus, when non-zero, makes every chat request fail with it.
	FailStatus int
}

// Server is a canned-reply endpoint.
type Server struct {
	cfg    Config
	logger zerolog.Logger
	router chi.Router
}

// New builds the router.
func New(cfg Config, logger zerolog.Logger) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	s := &Server{cfg: cfg, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleRoot)
	r.Get("/healthz", s.handleRoot)
	r.Post("/chat_gen", s.handleChat)

	s.router = r
	return s
}

// Handler returns the HTTP handler, for httptest and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr is the listen address.
func (s *Server) Addr() string {
	return s.cfg.Addr
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.cfg.Addr).Msg("stub endpoint listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info().Msg("stub endpoint shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// =============================================================================
// HANDLERS
// =============================================================================

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "linkchat-stub"})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req backend.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		respondError(w, http.StatusUnprocessableEntity, "prompt is required")
		return
	}

	if s.cfg.Delay > 0 {
		select {
		case <-time.After(s.cfg.Delay):
		case <-r.Context().Done():
			return
		}
	}

	if s.cfg.FailStatus != 0 {
		respondError(w, s.cfg.FailStatus, "stub configured to fail")
		return
	}

	ans := Answer(req.Prompt)
	respondJSON(w, http.StatusOK, map[string]string{"ans": ans})
}

// requestLogger logs each request through zerolog.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
