package scanner_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdepscheck/jdepscheck/internal/adapters/outbound/scanner"
)

const fixtureDir = "../../../../testdata/jdeps-project/target/classes"

func touch(t *testing.T, root string, rel ...string) {
	t.Helper()
	for _, r := range rel {
		p := filepath.Join(root, filepath.FromSlash(r))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte{0xca, 0xfe, 0xba, 0xbe}, 0644))
	}
}

func TestClassScanner_Fixture(t *testing.T) {
	inv, err := scanner.New().Scan(fixtureDir)
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(inv.Root))
	assert.Equal(t, 1, inv.ClassFiles)
	assert.Equal(t, []string{"com.example"}, inv.Packages)
	assert.False(t, inv.Versioned)
}

func TestClassScanner_CollectsSortedPackages(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir,
		"org/acme/util/Strings.class",
		"org/acme/App.class",
		"org/acme/App$Inner.class",
		"Default.class",
		"module-info.class",
	)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "org", "acme", "app.properties"), []byte("x=1"), 0644))

	inv, err := scanner.New().Scan(dir)
	require.NoError(t, err)

	assert.Equal(t, 5, inv.ClassFiles)
	assert.Equal(t, []string{"org.acme", "org.acme.util"}, inv.Packages)
}

func TestClassScanner_MultiReleaseLayout(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir,
		"org/acme/App.class",
		"META-INF/versions/11/org/acme/App.class",
		"META-INF/versions/17/org/acme/spi/Loader.class",
	)

	inv, err := scanner.New().Scan(dir)
	require.NoError(t, err)

	assert.True(t, inv.Versioned)
	assert.Equal(t, 3, inv.ClassFiles)
	assert.Equal(t, []string{"org.acme", "org.acme.spi"}, inv.Packages)
}

func TestClassScanner_EmptyDirectory(t *testing.T) {
	inv, err := scanner.New().Scan(t.TempDir())
	require.NoError(t, err)
	assert.Zero(t, inv.ClassFiles)
	assert.Empty(t, inv.Packages)
}

func TestClassScanner_MissingDirectory(t *testing.T) {
	_, err := scanner.New().Scan(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}
