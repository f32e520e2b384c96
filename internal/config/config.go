package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/compkit/compkit/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Keys.
const (
	KeySearchPaths = "plugins.search_paths"
	KeyPreload     = "plugins.preload"
	KeyLoadTimeout = "plugins.load_timeout"
	KeyRootName    = "root.name"
	KeyLogLevel    = "log.level"
	KeyComponents  = "components"
)

// Settings is the typed view of the configuration.
type Settings struct {
	Plugins    PluginSettings `mapstructure:"plugins"`
	Root       RootSettings   `mapstructure:"root"`
	Log        LogSettings    `mapstructure:"log"`
	Components []Placement    `mapstructure:"components"`
}

// PluginSettings configures the plugin manager.
type PluginSettings struct {
	SearchPaths []string      `mapstructure:"search_paths"`
	Preload     []string      `mapstructure:"preload"`
	LoadTimeout time.Duration `mapstructure:"load_timeout"`
}

// RootSettings configures the root of the component tree.
type RootSettings struct {
	Name string `mapstructure:"name"`
}

// LogSettings configures logging.
type LogSettings struct {
	Level string `mapstructure:"level"`
}

// Placement asks for a component of Type to be created at Path on startup.
type Placement struct {
	Path string `mapstructure:"path"`
	Type string `mapstructure:"type"`
}

// SlogLevel parses Level ("debug", "info", "warn", "error").
func (l LogSettings) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelWarn, fmt.Errorf("parsing log level %q: %w", l.Level, err)
	}
	return lvl, nil
}

// Dir returns the path to the config directory (~/.compkit/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.compkit/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
// Nested keys map to variables with dots replaced, so plugins.preload is
// read from COMPKIT_PLUGINS_PRELOAD.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault(KeySearchPaths, []string{
		filepath.Join(".", branding.PluginDir()),
		filepath.Join(Dir(), branding.PluginDir()),
	})
	viper.SetDefault(KeyPreload, []string{})
	viper.SetDefault(KeyLoadTimeout, 30*time.Second)
	viper.SetDefault(KeyRootName, "Root")
	viper.SetDefault(KeyLogLevel, "warn")

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	v := viper.Get(key)
	switch val := v.(type) {
	case nil:
		return ""
	case []string:
		return strings.Join(val, ",")
	case []any:
		parts := make([]string, len(val))
		for i, p := range val {
			parts[i] = fmt.Sprint(p)
		}
		return strings.Join(parts, ",")
	default:
		return viper.GetString(key)
	}
}

// Current decodes the configuration into a Settings value. Comma
// separated strings decode into lists, so values written by Set work for
// list keys.
func Current() (Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decoding config: %w", err)
	}
	if s.Root.Name == "" {
		return Settings{}, fmt.Errorf("decoding config: %s must not be empty", KeyRootName)
	}
	if s.Plugins.LoadTimeout <= 0 {
		return Settings{}, fmt.Errorf("decoding config: %s must be positive, got %s", KeyLoadTimeout, s.Plugins.LoadTimeout)
	}
	for i, p := range s.Components {
		if p.Path == "" || p.Type == "" {
			return Settings{}, fmt.Errorf("decoding config: %s[%d] needs path and type", KeyComponents, i)
		}
	}
	return s, nil
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
