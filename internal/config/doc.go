// Package config manages user-level settings stored at ~/.compkit/config.yaml
// and COMPKIT_* environment variables: plugin search paths and preloads,
// the root component name, the startup component layout and the log level.
package config
