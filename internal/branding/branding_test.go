package branding

import "testing"

func TestValues(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"CLIName", CLIName(), "compkit"},
		{"DisplayName", DisplayName(), "CompKit"},
		{"HomeDir", HomeDir(), ".compkit"},
		{"EnvPrefix", EnvPrefix(), "COMPKIT"},
		{"PluginDir", PluginDir(), "plugins"},
		{"EnvVar", EnvVar("log_level"), "COMPKIT_LOG_LEVEL"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s() = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}
