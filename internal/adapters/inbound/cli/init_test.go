package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jdepscheck/jdepscheck/internal/adapters/inbound/cli"
	"github.com/jdepscheck/jdepscheck/internal/adapters/outbound/config"
	"github.com/jdepscheck/jdepscheck/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCmd_CreatesConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"init", tmpDir})
	require.NoError(t, root.Execute())

	data, err := os.ReadFile(filepath.Join(tmpDir, ".jdepscheck.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "fail_on_warning: true")
	assert.Contains(t, string(data), "classes_dir: target/classes")
}

func TestInitCmd_GeneratedConfigLoads(t *testing.T) {
	tmpDir := t.TempDir()

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"init", tmpDir})
	require.NoError(t, root.Execute())

	cfg, err := config.New().Load(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestInitCmd_GradleLayout(t *testing.T) {
	tmpDir := t.TempDir()

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"init", tmpDir, "--build-tool", "gradle"})
	require.NoError(t, root.Execute())

	cfg, err := config.New().Load(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "build/classes/java/main", cfg.Main.ClassesDir)
	assert.Equal(t, "build/classes/java/test", cfg.Test.ClassesDir)
}

func TestInitCmd_FailsIfExists(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".jdepscheck.yaml"), []byte("existing"), 0644))

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"init", tmpDir})
	err := root.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCmd_ForceOverwrites(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".jdepscheck.yaml"), []byte("old"), 0644))

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"init", tmpDir, "--force"})
	require.NoError(t, root.Execute())

	data, err := os.ReadFile(filepath.Join(tmpDir, ".jdepscheck.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "classes_dir:")
	assert.NotEqual(t, "old", string(data))
}

func TestInitCmd_InvalidBuildTool(t *testing.T) {
	tmpDir := t.TempDir()

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"init", tmpDir, "--build-tool", "ant"})
	err := root.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown build tool")
}
