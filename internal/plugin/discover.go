package plugin

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/compkit/compkit/internal/manifest"
)

// Discovered is a plugin found on disk or provided as a bundle.
type Discovered struct {
	Name         string
	Source       string // search path, or "bundled"
	Dir          string
	ManifestPath string
	Manifest     *manifest.Manifest // nil when Err is set
	Err          error
}

// BundledSource is the Source of plugins that come from Provide.
const BundledSource = "bundled"

// discoverPaths walks the search paths in order and returns every plugin
// directory. Plugins found in earlier paths take priority; later
// duplicates are skipped. Unreadable paths are skipped.
func (m *Manager) discoverPaths(paths []string) []*Discovered {
	seen := make(map[string]bool)
	var result []*Discovered

	for _, base := range paths {
		entries, err := os.ReadDir(base)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if !e.IsDir() || seen[e.Name()] {
				continue
			}
			d, ok := m.inspect(base, e.Name())
			if !ok {
				continue
			}
			seen[d.Name] = true
			result = append(result, d)
		}
	}

	return result
}

// findPath returns the highest-priority plugin directory called name.
func (m *Manager) findPath(paths []string, name string) (*Discovered, bool) {
	for _, base := range paths {
		if d, ok := m.inspect(base, name); ok {
			return d, true
		}
	}
	return nil, false
}

// cachedManifest is a loaded manifest and the file state it was read from.
type cachedManifest struct {
	modTime  time.Time
	size     int64
	manifest *manifest.Manifest
	err      error
}

// inspect reads <base>/<name>/plugin.yaml. It reports false when there is
// no manifest file; an unreadable or invalid manifest is returned with Err
// set. Manifests are reloaded only when the file changed.
func (m *Manager) inspect(base, name string) (*Discovered, bool) {
	dir := filepath.Join(base, name)
	path := filepath.Join(dir, manifest.FileName)
	fi, err := os.Stat(path)
	if err != nil || fi.IsDir() {
		return nil, false
	}

	d := &Discovered{
		Name:         name,
		Source:       base,
		Dir:          dir,
		ManifestPath: path,
	}

	var entry *cachedManifest
	if v, ok := m.manifests.Get(path); ok {
		if c := v.(*cachedManifest); c.modTime.Equal(fi.ModTime()) && c.size == fi.Size() {
			entry = c
		}
	}
	if entry == nil {
		mf, err := manifest.Load(path)
		entry = &cachedManifest{modTime: fi.ModTime(), size: fi.Size(), manifest: mf, err: err}
		m.manifests.Set(path, entry, cache.DefaultExpiration)
	}

	switch {
	case entry.err != nil:
		d.Err = entry.err
	case entry.manifest.Name != name:
		d.Err = fmt.Errorf("manifest %s names plugin %q, directory is %q", path, entry.manifest.Name, name)
	default:
		d.Manifest = entry.manifest
	}
	return d, true
}

// sortDiscovered orders plugins by name.
func sortDiscovered(ds []*Discovered) {
	sort.Slice(ds, func(i, j int) bool { return ds[i].Name < ds[j].Name })
}

// libraryPath resolves the manifest's shared object relative to its
// directory.
func (d *Discovered) libraryPath() (string, error) {
	lib := d.Manifest.Library
	if filepath.IsAbs(lib) {
		return lib, nil
	}
	if d.Dir == "" {
		return "", fmt.Errorf("bundled plugin %q cannot name a relative library %q", d.Name, lib)
	}
	p := filepath.Join(d.Dir, lib)
	if _, err := os.Stat(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("library %s: %w", p, fs.ErrNotExist)
		}
		return "", fmt.Errorf("checking library %s: %w", p, err)
	}
	return p, nil
}
