// Package file provides the file-backed catalog source: a YAML document of
// catalog entries loaded from disk, with optional fsnotify hot reload.
// It is the deployment mode for environments without a database (local
// development, the recctl CLI, small static catalogs).
package file

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/CodingBot000/miracle3day-sub008/internal/domain/catalog"
	"github.com/CodingBot000/miracle3day-sub008/internal/infrastructure/monitoring/logging"
	apperrors "github.com/CodingBot000/miracle3day-sub008/pkg/errors"
)

// document is the YAML file shape.
type document struct {
	Entries []catalog.Entry `yaml:"entries"`
}

// Source implements catalog.Repository over a YAML file.  The parsed
// snapshot is held in memory; LoadSnapshot never touches the disk after the
// initial load unless the watcher replaces the snapshot.
type Source struct {
	path   string
	logger logging.Logger

	mu       sync.RWMutex
	snapshot *catalog.Snapshot

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewSource parses the catalog file at path and validates it.  The file
// must contain at least one entry.
func NewSource(path string, logger logging.Logger) (*Source, error) {
	s := &Source{path: path, logger: logger}
	if err := s.reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadSnapshot implements catalog.Repository.  The returned snapshot is the
// one current at call time; a concurrent reload never mutates a snapshot
// already handed out.
func (s *Source) LoadSnapshot(_ context.Context) (*catalog.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return nil, apperrors.New(apperrors.ErrCodeCatalogUnavailable, "catalog file not loaded")
	}
	return s.snapshot, nil
}

// reload parses and validates the file, then swaps the snapshot.
// On any failure the previous snapshot stays in service.
func (s *Source) reload() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeCatalogUnavailable, "failed to read catalog file")
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeCatalogMalformed, "failed to parse catalog file")
	}

	snap, err := catalog.NewSnapshot(doc.Entries)
	if err != nil {
		return err
	}
	if err := snap.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()

	s.logger.Info("catalog file loaded",
		logging.String("path", s.path),
		logging.Int("entries", snap.Len()))
	return nil
}

// Watch starts an fsnotify watcher that reloads the catalog whenever the
// file changes.  A file that fails to parse or validate is logged and
// skipped; the previous snapshot remains in service.  Stop with Close.
func (s *Source) Watch() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternal, "failed to create file watcher")
	}
	// Watch the directory: editors and deploy tools commonly replace the
	// file by rename, which drops a watch placed on the file itself.
	if err := w.Add(filepath.Dir(s.path)); err != nil {
		_ = w.Close()
		return apperrors.Wrap(err, apperrors.CodeInternal, "failed to watch catalog directory")
	}

	s.watcher = w
	s.done = make(chan struct{})

	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != filepath.Clean(s.path) {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				if err := s.reload(); err != nil {
					s.logger.Warn("catalog reload failed, keeping previous snapshot",
						logging.Err(err))
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				s.logger.Warn("catalog watcher error", logging.Err(err))
			case <-s.done:
				return
			}
		}
	}()
	return nil
}

// Close stops the watcher if one is running.
func (s *Source) Close() error {
	if s.done != nil {
		close(s.done)
		s.done = nil
	}
	if s.watcher != nil {
		err := s.watcher.Close()
		s.watcher = nil
		return err
	}
	return nil
}
