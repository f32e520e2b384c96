package manifest

import (
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"
	"go.yaml.in/yaml/v3"
)

// Parse reads a manifest file without schema validation.
func Parse(path string) (*Manifest, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	m, err := ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	m.Path = path
	return m, nil
}

// ParseBytes unmarshals manifest YAML.
func ParseBytes(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Load reads, schema-validates and parses a manifest file. Validation
// failures are returned as a *InvalidError.
func Load(path string) (*Manifest, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	result, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("validating manifest %s: %w", path, err)
	}
	if !result.Valid {
		return nil, &InvalidError{Path: path, Issues: result.Issues}
	}

	m, err := ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	m.Path = path
	return m, nil
}

// SemVersion parses the manifest version.
func (m *Manifest) SemVersion() (*semver.Version, error) {
	v, err := semver.NewVersion(m.Version)
	if err != nil {
		return nil, fmt.Errorf("plugin %s: parsing version %q: %w", m.Name, m.Version, err)
	}
	return v, nil
}

// SupportsAPI reports whether the manifest's api constraint admits
// apiVersion.
func (m *Manifest) SupportsAPI(apiVersion string) (bool, error) {
	c, err := semver.NewConstraint(m.API)
	if err != nil {
		return false, fmt.Errorf("plugin %s: parsing api constraint %q: %w", m.Name, m.API, err)
	}
	v, err := semver.NewVersion(apiVersion)
	if err != nil {
		return false, fmt.Errorf("parsing api version %q: %w", apiVersion, err)
	}
	return c.Check(v), nil
}

// Satisfied reports whether version meets the requirement.
func (r Requirement) Satisfied(version string) (bool, error) {
	if r.Version == "" {
		return true, nil
	}
	c, err := semver.NewConstraint(r.Version)
	if err != nil {
		return false, fmt.Errorf("requirement %s: parsing constraint %q: %w", r.Name, r.Version, err)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return false, fmt.Errorf("requirement %s: parsing version %q: %w", r.Name, version, err)
	}
	return c.Check(v), nil
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
