package mcp

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/antivibe/internal/domain"
	"github.com/felixgeelhaar/antivibe/internal/hint"
	mcp "github.com/felixgeelhaar/mcp-go"
	"github.com/felixgeelhaar/mcp-go/server"
	"github.com/samber/lo"
)

// HintService produces hints for the MCP tools
type HintService interface {
	Hint(ctx context.Context, req domain.HintRequest) (*domain.HintResponse, error)
	ProblemTypes() []domain.ProblemType
}

// Server wraps the MCP server with Antivibe functionality
type Server struct {
	mcpServer *server.Server
	service   HintService
}

// Config contains configuration for the MCP server
type Config struct {
	// Service defaults to a hint.Service over the embedded knowledge base
	Service HintService
	Version string
}

// NewServer creates a new MCP server for Antivibe
func NewServer(cfg Config) *Server {
	s := &Server{service: cfg.Service}
	if s.service == nil {
		s.service = hint.NewService(hint.Config{})
	}

	version := cfg.Version
	if version == "" {
		version = "0.1.0"
	}

	s.mcpServer = server.New(server.Info{
		Name:    "antivibe",
		Version: version,
	}, server.WithInstructions(`
Antivibe gives learning-oriented hints for coding problems instead of solutions.

Available tools:
- antivibe_hint: Get a hint, guiding questions, resources and a next step
- antivibe_problem_types: List the problem types the hint tables cover

Hint levels:
- 1 conceptual: what to think about
- 2 algorithm: which approach fits
- 3 implementation: how to write it
- 4 code_structure: how to organize it
`))

	s.registerTools()

	return s
}

// registerTools registers all Antivibe MCP tools
func (s *Server) registerTools() {
	s.mcpServer.Tool("antivibe_hint").
		Description("Get a learning hint for a coding problem without revealing the solution.").
		Handler(s.handleHint)

	s.mcpServer.Tool("antivibe_problem_types").
		Description("List the problem types with dedicated hints.").
		Handler(s.handleProblemTypes)
}

type HintInput struct {
	Code               string  `json:"code" jsonschema:"description=The code written so far"`
	ProblemDescription string  `json:"problem_description" jsonschema:"description=Description of the problem being solved"`
	ErrorMessage       *string `json:"error_message,omitempty" jsonschema:"description=Error output from the last run, if any"`
	HintLevel          int     `json:"hint_level" jsonschema:"description=1 conceptual / 2 algorithm / 3 implementation / 4 code_structure,enum=1,enum=2,enum=3,enum=4"`
}

type HintOutput struct {
	Hint      string   `json:"hint"`
	Questions []string `json:"questions"`
	Resources []string `json:"resources"`
	NextStep  string   `json:"next_step"`
}

type ProblemTypesInput struct{}

type ProblemTypesOutput struct {
	ProblemTypes []string `json:"problem_types"`
}

func (s *Server) handleHint(ctx context.Context, input HintInput) (HintOutput, error) {
	level, err := domain.ParseHintLevel(input.HintLevel)
	if err != nil {
		return HintOutput{}, err
	}

	resp, err := s.service.Hint(ctx, domain.HintRequest{
		Code:               input.Code,
		ProblemDescription: input.ProblemDescription,
		ErrorMessage:       input.ErrorMessage,
		HintLevel:          level,
	})
	if err != nil {
		return HintOutput{}, fmt.Errorf("generate hint: %w", err)
	}

	return HintOutput{
		Hint:      resp.Hint,
		Questions: resp.Questions,
		Resources: resp.Resources,
		NextStep:  resp.NextStep,
	}, nil
}

func (s *Server) handleProblemTypes(ctx context.Context, input ProblemTypesInput) (ProblemTypesOutput, error) {
	types := lo.Map(s.service.ProblemTypes(), func(pt domain.ProblemType, _ int) string {
		return string(pt)
	})
	return ProblemTypesOutput{ProblemTypes: types}, nil
}

// ServeStdio starts the MCP server on stdio
func (s *Server) ServeStdio(ctx context.Context) error {
	return mcp.ServeStdio(ctx, s.mcpServer)
}

// ServeHTTP starts the MCP server on HTTP
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	return mcp.ServeHTTP(ctx, s.mcpServer, addr)
}

// GetMCPServer returns the underlying MCP server (for testing)
func (s *Server) GetMCPServer() *server.Server {
	return s.mcpServer
}
