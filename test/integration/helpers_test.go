//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir    string // HOME; holds .compkit/config.yaml
	PluginDir  string // first plugin search path
	ProjectDir string // working directory
}

// setupTestEnv creates isolated temp directories and points HOME and the
// working directory at them. Viper state is reset before and after.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:    t.TempDir(),
		PluginDir:  t.TempDir(),
		ProjectDir: t.TempDir(),
	}
	t.Setenv("HOME", env.HomeDir)
	t.Chdir(env.ProjectDir)
	viper.Reset()
	t.Cleanup(viper.Reset)

	if err := os.MkdirAll(filepath.Join(env.HomeDir, ".compkit"), 0755); err != nil {
		t.Fatalf("creating config dir: %v", err)
	}
	return env
}

// writeManifest writes <base>/<name>/plugin.yaml.
func writeManifest(t *testing.T, base, name, content string) {
	t.Helper()
	writeFile(t, filepath.Join(base, name, "plugin.yaml"), content)
}

// writeFile creates a file with the given content, creating parent directories.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}
