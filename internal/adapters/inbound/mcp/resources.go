package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jdepscheck/jdepscheck/internal/domain"
)

const (
	configURI      = "jdepscheck://config"
	reportsURIBase = "jdepscheck://reports/"
)

// registerResources registers all jdepscheck MCP resources on the given server.
func registerResources(s *server.MCPServer, projectPath string, svc Service) {
	// 1. jdepscheck://config - effective configuration
	s.AddResource(
		mcplib.NewResource(
			configURI,
			"Configuration",
			mcplib.WithResourceDescription("Effective analysis configuration: defaults merged with .jdepscheck.yaml"),
			mcplib.WithMIMEType("application/json"),
		),
		handleConfigResource(projectPath, svc),
	)

	// 2. jdepscheck://reports/{goal} - last report per goal (resource template)
	s.AddResourceTemplate(
		mcplib.NewResourceTemplate(
			reportsURIBase+"{goal}",
			"Last Report",
			mcplib.WithTemplateDescription("Report of the last run of a goal (jdkinternals or test-jdkinternals)"),
			mcplib.WithTemplateMIMEType("application/json"),
		),
		handleReportResource(projectPath, svc),
	)
}

func handleConfigResource(projectPath string, svc Service) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		cfg, err := svc.LoadConfig(projectPath, nil)
		if err != nil {
			return nil, err
		}
		return jsonContents(configURI, cfg)
	}
}

func handleReportResource(projectPath string, svc Service) server.ResourceTemplateHandlerFunc {
	return func(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		goal, err := domain.ParseGoal(goalArgument(request))
		if err != nil {
			return nil, err
		}

		report, err := svc.LastReport(projectPath, goal)
		if err != nil {
			return nil, fmt.Errorf("loading report: %w", err)
		}
		if report == nil {
			return nil, fmt.Errorf("no %s report yet", goal)
		}
		return jsonContents(request.Params.URI, report)
	}
}

// goalArgument extracts {goal} from the template match, falling back to
// the URI itself.
func goalArgument(request mcplib.ReadResourceRequest) string {
	switch v := request.Params.Arguments["goal"].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}
	return strings.TrimPrefix(request.Params.URI, reportsURIBase)
}

func jsonContents(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling resource: %w", err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
