package mcp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcpadapter "github.com/jdepscheck/jdepscheck/internal/adapters/inbound/mcp"
	"github.com/jdepscheck/jdepscheck/internal/adapters/outbound/classpath"
	"github.com/jdepscheck/jdepscheck/internal/adapters/outbound/config"
	"github.com/jdepscheck/jdepscheck/internal/adapters/outbound/envfile"
	"github.com/jdepscheck/jdepscheck/internal/adapters/outbound/gitinfo"
	"github.com/jdepscheck/jdepscheck/internal/adapters/outbound/history"
	"github.com/jdepscheck/jdepscheck/internal/adapters/outbound/process"
	"github.com/jdepscheck/jdepscheck/internal/adapters/outbound/reports"
	"github.com/jdepscheck/jdepscheck/internal/adapters/outbound/scanner"
	"github.com/jdepscheck/jdepscheck/internal/application"
	"github.com/jdepscheck/jdepscheck/internal/domain/locate"
	"github.com/jdepscheck/jdepscheck/internal/logging"
)

func newService() *application.JDepsService {
	return application.NewJDepsService(
		config.New(),
		envfile.New(),
		locate.New(),
		classpath.New(),
		scanner.New(),
		process.New(),
		history.New(),
		reports.New(),
		gitinfo.New(),
		logging.Discard(),
	)
}

func TestNewJDepsCheckMCPServer(t *testing.T) {
	s := mcpadapter.NewJDepsCheckMCPServer(".", newService())
	require.NotNil(t, s)
}

func TestMCPServerHasTools(t *testing.T) {
	s := mcpadapter.NewJDepsCheckMCPServer(".", newService())
	require.NotNil(t, s)

	tools := s.ListTools()
	require.NotNil(t, tools)

	expectedTools := []string{
		"jdepscheck_run",
		"jdepscheck_parse_output",
		"jdepscheck_resolve_executable",
		"jdepscheck_history",
	}

	for _, name := range expectedTools {
		_, exists := tools[name]
		assert.True(t, exists, "tool %q should be registered", name)
	}

	assert.Len(t, tools, len(expectedTools), "should have exactly %d tools", len(expectedTools))
}
