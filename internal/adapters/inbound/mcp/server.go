package mcp

import (
	"context"
	"io"

	"github.com/mark3labs/mcp-go/server"

	"github.com/jdepscheck/jdepscheck/internal/application"
	"github.com/jdepscheck/jdepscheck/internal/domain"
)

// Service is the part of application.JDepsService the MCP surface uses.
type Service interface {
	LoadConfig(projectPath string, props []string) (domain.AnalysisConfig, error)
	Resolve(projectPath string, cfg domain.AnalysisConfig) (string, error)
	Run(ctx context.Context, req application.RunRequest) (*domain.Report, error)
	ParseOutput(r io.Reader, failOnWarning bool) (*domain.Report, error)
	History(projectPath string, goal domain.Goal) ([]domain.RunEntry, error)
	LastReport(projectPath string, goal domain.Goal) (*domain.Report, error)
}

// NewJDepsCheckMCPServer creates a new MCP server with all jdepscheck tools
// and resources registered. The projectPath is the root directory of the
// project to analyze.
func NewJDepsCheckMCPServer(projectPath string, svc Service) *server.MCPServer {
	s := server.NewMCPServer(
		"jdepscheck",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath, svc)
	registerResources(s, projectPath, svc)

	return s
}
