package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jdepscheck/jdepscheck/internal/application"
	"github.com/jdepscheck/jdepscheck/internal/domain"
)

// registerTools registers all jdepscheck MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string, svc Service) {
	// 1. jdepscheck_run
	s.AddTool(
		mcplib.NewTool("jdepscheck_run",
			mcplib.WithDescription("Run jdeps over the project's compiled classes and report JDK internal API usage"),
			mcplib.WithString("goal",
				mcplib.Required(),
				mcplib.Description("jdkinternals (main classes) or test-jdkinternals (test classes)"),
			),
			mcplib.WithBoolean("fail_on_warning", mcplib.Description("Override whether offending packages fail the check")),
			mcplib.WithString("properties", mcplib.Description("Comma-separated properties, e.g. jdeps.verbose=class,jdeps.recursive")),
		),
		handleRun(projectPath, svc),
	)

	// 2. jdepscheck_parse_output
	s.AddTool(
		mcplib.NewTool("jdepscheck_parse_output",
			mcplib.WithDescription("Interpret jdeps output text: offending packages, profiles and the verdict"),
			mcplib.WithString("output",
				mcplib.Required(),
				mcplib.Description("Standard output of a jdeps run"),
			),
			mcplib.WithBoolean("fail_on_warning", mcplib.Description("Fail when offending packages are found (default: true)")),
		),
		handleParseOutput(svc),
	)

	// 3. jdepscheck_resolve_executable
	s.AddTool(
		mcplib.NewTool("jdepscheck_resolve_executable",
			mcplib.WithDescription("Return the jdeps executable a run would use (toolchain, then JAVA_HOME, then PATH)"),
		),
		handleResolve(projectPath, svc),
	)

	// 4. jdepscheck_history
	s.AddTool(
		mcplib.NewTool("jdepscheck_history",
			mcplib.WithDescription("Return past runs, oldest first"),
			mcplib.WithString("goal", mcplib.Description("Only runs of this goal")),
		),
		handleHistory(projectPath, svc),
	)
}

// runResult is what jdepscheck_run returns. A failed check is a normal
// result with Passed false, not a tool error.
type runResult struct {
	Passed    bool           `json:"passed"`
	Violation string         `json:"violation,omitempty"`
	Report    *domain.Report `json:"report"`
}

func handleRun(projectPath string, svc Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		goalName, err := request.RequireString("goal")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		goal, err := domain.ParseGoal(goalName)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		args := request.GetArguments()
		var props []string
		if raw, _ := args["properties"].(string); raw != "" {
			for _, p := range strings.Split(raw, ",") {
				if p = strings.TrimSpace(p); p != "" {
					props = append(props, p)
				}
			}
		}

		cfg, err := svc.LoadConfig(projectPath, props)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		if fow, ok := args["fail_on_warning"].(bool); ok {
			if goal == domain.GoalTest {
				cfg.Test.FailOnWarning = domain.BoolPtr(fow)
			} else {
				cfg.FailOnWarning = domain.BoolPtr(fow)
			}
		}

		report, err := svc.Run(ctx, application.RunRequest{
			ProjectPath: projectPath,
			Goal:        goal,
			Config:      cfg,
		})
		switch {
		case err == nil:
			return jsonResult(runResult{Passed: report.Passed, Report: report})
		case application.IsPolicyViolation(err):
			return jsonResult(runResult{Passed: false, Violation: err.Error(), Report: report})
		default:
			return errorResult(fmt.Sprintf("run failed: %v", err)), nil
		}
	}
}

func handleParseOutput(svc Service) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		output, err := request.RequireString("output")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		failOnWarning := true
		if v, ok := request.GetArguments()["fail_on_warning"].(bool); ok {
			failOnWarning = v
		}

		report, err := svc.ParseOutput(strings.NewReader(output), failOnWarning)
		switch {
		case err == nil:
			return jsonResult(runResult{Passed: report.Passed, Report: report})
		case application.IsPolicyViolation(err):
			return jsonResult(runResult{Passed: false, Violation: err.Error(), Report: report})
		default:
			return errorResult(fmt.Sprintf("parse failed: %v", err)), nil
		}
	}
}

func handleResolve(projectPath string, svc Service) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		cfg, err := svc.LoadConfig(projectPath, nil)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		exe, err := svc.Resolve(projectPath, cfg)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return textResult(exe), nil
	}
}

func handleHistory(projectPath string, svc Service) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		var goal domain.Goal
		if name, _ := request.GetArguments()["goal"].(string); name != "" {
			g, err := domain.ParseGoal(name)
			if err != nil {
				return errorResult(err.Error()), nil
			}
			goal = g
		}

		entries, err := svc.History(projectPath, goal)
		if err != nil {
			return errorResult(fmt.Sprintf("history failed: %v", err)), nil
		}
		if entries == nil {
			entries = []domain.RunEntry{}
		}
		return jsonResult(entries)
	}
}

// jsonResult marshals v into an indented JSON text result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
