package manifest

// FileName is the manifest file the loader looks for in a plugin directory.
const FileName = "plugin.yaml"

// Manifest describes one plugin.
type Manifest struct {
	Name        string        `yaml:"name" json:"name"`
	Version     string        `yaml:"version" json:"version"`
	Description string        `yaml:"description,omitempty" json:"description,omitempty"`
	Author      string        `yaml:"author,omitempty" json:"author,omitempty"`
	Tags        []string      `yaml:"tags,omitempty" json:"tags,omitempty"`
	API         string        `yaml:"api" json:"api"`                                 // semver constraint on component.APIVersion
	Library     string        `yaml:"library,omitempty" json:"library,omitempty"`     // shared object, relative to the manifest
	Requires    []Requirement `yaml:"requires,omitempty" json:"requires,omitempty"`   // plugins loaded first
	Provides    []string      `yaml:"provides,omitempty" json:"provides,omitempty"`   // component type names
	Libraries   []string      `yaml:"libraries,omitempty" json:"libraries,omitempty"` // library façade type names

	// Path is the manifest file the manifest was read from.
	Path string `yaml:"-" json:"-"`
}

// Requirement is a dependency on another plugin.
type Requirement struct {
	Name    string `yaml:"name" json:"name"`
	Version string `yaml:"version,omitempty" json:"version,omitempty"` // semver constraint, any version when empty
}
