package hint

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/antivibe/internal/classifier"
	"github.com/felixgeelhaar/antivibe/internal/domain"
	"github.com/felixgeelhaar/antivibe/internal/knowledge"
	"github.com/felixgeelhaar/fortify/bulkhead"
)

// ClassifyFunc classifies a problem description
type ClassifyFunc func(description, code string) classifier.Match

// Config holds configuration for creating a Service
type Config struct {
	// Knowledge defaults to the embedded knowledge base
	Knowledge *knowledge.Base

	// Source defaults to DefaultSource
	Source Source

	// Classify defaults to classifier.Explain
	Classify ClassifyFunc

	// MaxConcurrent bounds in-flight hint generations; 0 disables the bulkhead
	MaxConcurrent int

	// QueueTimeout is how long a request may wait for a bulkhead slot (default: 5s)
	QueueTimeout time.Duration

	Logger *slog.Logger
}

// Service runs classification and assembly for a HintRequest
type Service struct {
	kb        *knowledge.Base
	assembler *Assembler
	classify  ClassifyFunc
	bulkhead  bulkhead.Bulkhead[*domain.HintResponse]
	logger    *slog.Logger
}

// NewService creates a hint service
func NewService(cfg Config) *Service {
	kb := cfg.Knowledge
	if kb == nil {
		kb = knowledge.Default()
	}
	classify := cfg.Classify
	if classify == nil {
		classify = classifier.Explain
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Service{
		kb:        kb,
		assembler: NewAssembler(kb, cfg.Source),
		classify:  classify,
		logger:    logger,
	}

	if cfg.MaxConcurrent > 0 {
		queueTimeout := cfg.QueueTimeout
		if queueTimeout <= 0 {
			queueTimeout = 5 * time.Second
		}
		s.bulkhead = bulkhead.New[*domain.HintResponse](bulkhead.Config{
			MaxConcurrent: cfg.MaxConcurrent,
			MaxQueue:      cfg.MaxConcurrent * 2,
			QueueTimeout:  queueTimeout,
		})
	}

	return s
}

// Hint classifies the request and assembles a response
func (s *Service) Hint(ctx context.Context, req domain.HintRequest) (*domain.HintResponse, error) {
	if !req.HintLevel.Valid() {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidHintLevel, req.HintLevel)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.logger.Info("received hint request",
		"problem_description", req.ProblemDescription,
		"hint_level", int(req.HintLevel),
		"code_bytes", len(req.Code),
		"has_error_message", req.ErrorMessage != nil,
	)

	operation := func(ctx context.Context) (*domain.HintResponse, error) {
		return s.generate(req)
	}

	var (
		resp *domain.HintResponse
		err  error
	)
	if s.bulkhead != nil {
		resp, err = s.bulkhead.Execute(ctx, operation)
	} else {
		resp, err = operation(ctx)
	}
	if err != nil {
		s.logger.Error("hint generation failed", "error", err)
		return nil, err
	}

	s.logger.Info("sending hint response",
		"hint", resp.Hint,
		"questions", len(resp.Questions),
		"resources", len(resp.Resources),
		"next_step", resp.NextStep,
	)
	return resp, nil
}

// generate turns a panic in classification or assembly into an error
func (s *Service) generate(req domain.HintRequest) (resp *domain.HintResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			resp = nil
			err = &GenerationError{Message: fmt.Sprint(r)}
		}
	}()

	match := s.classify(req.ProblemDescription, req.Code)
	s.logger.Info("classified problem",
		"problem_type", string(match.ProblemType),
		"keyword", match.Keyword,
		"known", s.kb.Has(match.ProblemType),
	)

	return s.assembler.Assemble(match.ProblemType, req.HintLevel), nil
}

// ProblemTypes returns the problem types present in the knowledge base
func (s *Service) ProblemTypes() []domain.ProblemType {
	return s.kb.ProblemTypes()
}

// Levels returns the supported hint levels
func (s *Service) Levels() []domain.HintLevel {
	return append([]domain.HintLevel(nil), domain.HintLevels...)
}

// GenerationError reports an unexpected failure while building a hint.
// Its message is the raw failure text.
type GenerationError struct {
	Message string
}

func (e *GenerationError) Error() string {
	return e.Message
}

func (e *GenerationError) Unwrap() error {
	return domain.ErrHintGeneration
}
