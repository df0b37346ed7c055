package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/felixgeelhaar/antivibe/internal/config"
	"github.com/felixgeelhaar/antivibe/internal/domain"
	"github.com/felixgeelhaar/antivibe/internal/hint"
	"github.com/felixgeelhaar/antivibe/internal/knowledge"
)

// Version is reported by the root endpoint
const Version = "0.1.0"

// HintService produces hints for the HTTP handlers
type HintService interface {
	Hint(ctx context.Context, req domain.HintRequest) (*domain.HintResponse, error)
	ProblemTypes() []domain.ProblemType
	Levels() []domain.HintLevel
}

// Server represents the Antivibe HTTP server
type Server struct {
	cfg     *config.LocalConfig
	server  *http.Server
	router  *http.ServeMux
	service HintService
}

// ServerConfig holds configuration for creating a new server
type ServerConfig struct {
	Config *config.LocalConfig

	// Service defaults to a hint.Service built from Config
	Service HintService
}

// NewServer creates a new daemon server
func NewServer(ctx context.Context, cfg ServerConfig) (*Server, error) {
	if cfg.Config == nil {
		cfg.Config = config.DefaultLocalConfig()
	}

	s := &Server{
		cfg:     cfg.Config,
		router:  http.NewServeMux(),
		service: cfg.Service,
	}

	// Build the hint service from config unless one was injected
	if s.service == nil {
		kb, err := knowledge.Load(cfg.Config.Knowledge.Path)
		if err != nil {
			return nil, fmt.Errorf("load knowledge base: %w", err)
		}
		s.service = hint.NewService(hint.Config{
			Knowledge:     kb,
			MaxConcurrent: cfg.Config.Limits.MaxConcurrent,
			QueueTimeout:  time.Duration(cfg.Config.Limits.QueueTimeoutSeconds) * time.Second,
			Logger:        slog.Default(),
		})
	}

	// Setup routes
	s.setupRoutes()

	// Create HTTP server with middleware chain
	s.server = &http.Server{
		Addr:         cfg.Config.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s, nil
}

// Handler returns the router wrapped in the middleware chain
func (s *Server) Handler() http.Handler {
	return chain(s.router,
		recoveryMiddleware,
		corsMiddleware,
		correlationIDMiddleware,
		loggingMiddleware,
	)
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router.HandleFunc("GET /{$}", s.handleRoot)
	s.router.HandleFunc("GET /api/health", s.handleHealth)
	s.router.HandleFunc("GET /api/problem-types", s.handleProblemTypes)
	s.router.HandleFunc("GET /api/hint-levels", s.handleHintLevels)
	s.router.HandleFunc("POST /api/hint", s.handleHint)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	slog.Info("starting antivibe daemon",
		"addr", s.server.Addr,
		"problem_types", s.service.ProblemTypes(),
	)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("shutting down daemon...")
	return s.server.Shutdown(ctx)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"message": "Antivibe.ai API is running!",
		"version": Version,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"message": "API is working",
	})
}

func (s *Server) handleProblemTypes(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string][]domain.ProblemType{
		"problem_types": s.service.ProblemTypes(),
	})
}

type hintLevelInfo struct {
	Level       int    `json:"level"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) handleHintLevels(w http.ResponseWriter, r *http.Request) {
	levels := s.service.Levels()
	out := make([]hintLevelInfo, 0, len(levels))
	for _, l := range levels {
		out = append(out, hintLevelInfo{Level: int(l), Name: l.String(), Description: l.Description()})
	}
	s.jsonResponse(w, http.StatusOK, map[string][]hintLevelInfo{"hint_levels": out})
}

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	// Read the body under the configured size limit
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.Limits.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.jsonResponse(w, http.StatusRequestEntityTooLarge, errorDetail{
				Detail: fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit),
			})
			return
		}
		s.validationError(w, []FieldError{{Msg: "could not read request body: " + err.Error()}})
		return
	}

	// Validate against the request schema before anything else runs
	fieldErrs, err := validateHintRequest(body)
	if err != nil {
		s.generationError(w, r, err)
		return
	}
	if len(fieldErrs) > 0 {
		s.validationError(w, fieldErrs)
		return
	}

	// Decode into the domain request
	var req domain.HintRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.validationError(w, []FieldError{{Loc: "/hint_level", Msg: err.Error()}})
		return
	}

	// Generate hint
	resp, err := s.service.Hint(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidHintLevel) {
			s.validationError(w, []FieldError{{Loc: "/hint_level", Msg: err.Error()}})
			return
		}
		s.generationError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// Helper methods

type errorDetail struct {
	Detail string `json:"detail"`
}

type validationDetail struct {
	Detail []FieldError `json:"detail"`
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (s *Server) validationError(w http.ResponseWriter, errs []FieldError) {
	s.jsonResponse(w, http.StatusUnprocessableEntity, validationDetail{Detail: errs})
}

func (s *Server) generationError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("hint request failed",
		"correlation_id", GetCorrelationID(r.Context()),
		"error", err,
	)
	s.jsonResponse(w, http.StatusInternalServerError, errorDetail{
		Detail: "Error generating hint: " + err.Error(),
	})
}
