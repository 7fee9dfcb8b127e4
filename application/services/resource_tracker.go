package services

import (
	"errors"
	"io/fs"
	"os"
	"sync"

	"github.com/tejasg2002/Lisa-podcast-Generator/application/ports/outbound"
	"github.com/tejasg2002/Lisa-podcast-Generator/domain"
)

// ResourceTracker records the temporary artifacts of one run so they can be removed when the
// run ends, whatever the outcome.
type ResourceTracker struct {
	logger   outbound.LoggerPort
	mu       sync.Mutex
	dirs     []string
	files    []string
	seen     map[string]struct{}
	released bool
}

func NewResourceTracker(logger outbound.LoggerPort) *ResourceTracker {
	return &ResourceTracker{
		logger: logger,
		seen:   make(map[string]struct{}),
	}
}

// Track registers a file path. Tracking happens before the file is written so a partially
// written artifact is still removed.
func (t *ResourceTracker) Track(path string) {
	t.add(path, false)
}

// TrackDir registers a directory that is removed after every tracked file.
func (t *ResourceTracker) TrackDir(path string) {
	t.add(path, true)
}

func (t *ResourceTracker) add(path string, dir bool) {
	if path == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.released {
		return
	}
	if _, ok := t.seen[path]; ok {
		return
	}
	t.seen[path] = struct{}{}
	if dir {
		t.dirs = append(t.dirs, path)
	} else {
		t.files = append(t.files, path)
	}
}

// Release deletes every tracked path once. Later calls do nothing. Failures are logged as
// warnings and returned only for inspection; they never fail the run.
func (t *ResourceTracker) Release() []domain.CleanupWarning {
	t.mu.Lock()
	if t.released {
		t.mu.Unlock()
		return nil
	}
	t.released = true
	files, dirs := t.files, t.dirs
	t.files, t.dirs = nil, nil
	t.mu.Unlock()

	var warnings []domain.CleanupWarning
	for _, path := range files {
		if w, ok := t.remove(path, os.Remove); !ok {
			warnings = append(warnings, w)
		}
	}
	for i := len(dirs) - 1; i >= 0; i-- {
		if w, ok := t.remove(dirs[i], os.RemoveAll); !ok {
			warnings = append(warnings, w)
		}
	}
	return warnings
}

func (t *ResourceTracker) remove(path string, removeFn func(string) error) (domain.CleanupWarning, bool) {
	err := removeFn(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return domain.CleanupWarning{}, true
	}
	warning := domain.CleanupWarning{Path: path, Cause: err}
	t.logger.WarnWithFields("Failed to remove temporary artifact", map[string]interface{}{
		"path":  path,
		"error": warning.Error(),
	})
	return warning, false
}
