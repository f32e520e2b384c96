package plugin

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period Watch waits for before rescanning.
const DefaultDebounce = 250 * time.Millisecond

// Watch calls fn with the plugins that appear or change in the search paths
// until ctx ends. Bursts of file events are coalesced: the paths are
// rescanned once no event arrived for debounce. Search paths that do not
// exist when Watch starts are not watched.
func (m *Manager) Watch(ctx context.Context, debounce time.Duration, fn func([]*Discovered)) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	defer fsw.Close()

	watched := 0
	for _, base := range m.SearchPaths() {
		if err := fsw.Add(base); err != nil {
			m.logger.Debug("search path not watched", "path", base, "error", err)
			continue
		}
		watched++
		entries, _ := os.ReadDir(base)
		for _, e := range entries {
			if e.IsDir() {
				_ = fsw.Add(filepath.Join(base, e.Name()))
			}
		}
	}
	if watched == 0 {
		return errors.New("watching plugins: no search path exists")
	}

	known := fingerprints(m.discoverPaths(m.SearchPaths()))

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create != 0 {
				if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
					_ = fsw.Add(event.Name)
				}
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			current := m.discoverPaths(m.SearchPaths())
			var changed []*Discovered
			for _, d := range current {
				fp := fingerprint(d)
				if known[d.Name] != fp {
					changed = append(changed, d)
				}
			}
			known = fingerprints(current)
			if len(changed) > 0 {
				sortDiscovered(changed)
				fn(changed)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			m.logger.Warn("plugin watcher error", "error", err)
		}
	}
}

// fingerprint identifies the state of a discovered plugin.
func fingerprint(d *Discovered) string {
	switch {
	case d.Err != nil:
		return "invalid:" + d.Err.Error()
	case d.Manifest != nil:
		return d.Source + "@" + d.Manifest.Version
	default:
		return d.Source
	}
}

func fingerprints(ds []*Discovered) map[string]string {
	out := make(map[string]string, len(ds))
	for _, d := range ds {
		out[d.Name] = fingerprint(d)
	}
	return out
}
