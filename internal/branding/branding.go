// Package branding provides compile-time identity values for the CLI.
//
// The values come from branding.yaml, embedded at build time, over
// built-in defaults.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	HomeDir     string `yaml:"home_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
	GoModule    string `yaml:"go_module"`
	PluginDir   string `yaml:"plugin_dir"`
}

func load() {
	once.Do(func() {
		defaults = brand{
			CLIName:     "compkit",
			DisplayName: "CompKit",
			Description: "Inspect and extend a runtime component tree",
			HomeDir:     ".compkit",
			EnvPrefix:   "COMPKIT",
			GoModule:    "github.com/compkit/compkit",
			PluginDir:   "plugins",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "compkit").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "CompKit").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".compkit").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "COMPKIT").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path.
func GoModule() string { load(); return defaults.GoModule }

// PluginDir returns the default plugin directory, relative to the working
// directory or the home dot-directory.
func PluginDir() string { load(); return defaults.PluginDir }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("HOME") → "COMPKIT_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
