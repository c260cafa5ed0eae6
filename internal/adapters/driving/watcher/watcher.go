// Package watcher keeps the document store in step with a folder.
// Files dropped into the folder are uploaded under their base name, edits
// re-upload them and removals delete them.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/ArmanHov2006/ai-study-assistant/internal/core/domain"
	"github.com/ArmanHov2006/ai-study-assistant/internal/core/ports/driving"
	"github.com/ArmanHov2006/ai-study-assistant/internal/logger"
)

// Action is what the watcher did in response to an event.
type Action int

const (
	// ActionNone means the event was ignored.
	ActionNone Action = iota
	// ActionUpload means the file was (re-)uploaded.
	ActionUpload
	// ActionDelete means the document was removed.
	ActionDelete
)

// String returns a short label for logs.
func (a Action) String() string {
	switch a {
	case ActionUpload:
		return "upload"
	case ActionDelete:
		return "delete"
	default:
		return "none"
	}
}

// Watcher mirrors the supported files of one directory into the store.
// Subdirectories are not followed.
type Watcher struct {
	dir  string
	docs driving.DocumentService
}

// New creates a watcher for dir.
func New(dir string, docs driving.DocumentService) (*Watcher, error) {
	if docs == nil {
		return nil, errors.New("watcher: document service is required")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("watch directory: %w", err)
	}
	if !info.IsDir() {
		return nil, domain.NewError(domain.ErrInvalidInput, "watch path is not a directory").
			WithContext("path", abs)
	}
	return &Watcher{dir: abs, docs: docs}, nil
}

// Dir returns the absolute directory being watched.
func (w *Watcher) Dir() string {
	return w.dir
}

// IngestExisting uploads every supported file already in the directory.
// Files that fail to upload are logged and skipped.
func (w *Watcher) IngestExisting(ctx context.Context) (int, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", w.dir, err)
	}

	uploaded := 0
	for _, entry := range entries {
		if ctx.Err() != nil {
			return uploaded, ctx.Err()
		}
		if entry.IsDir() || !w.wants(entry.Name()) {
			continue
		}
		if w.upload(ctx, filepath.Join(w.dir, entry.Name())) {
			uploaded++
		}
	}
	logger.Info("Watcher: ingested %d existing files from %s", uploaded, w.dir)
	return uploaded, nil
}

// Run ingests existing files, then applies filesystem events until ctx
// is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}
	if _, err := w.IngestExisting(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, event)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher: %v", err)
		}
	}
}

// handleEvent applies one filesystem event and reports what it did.
func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) Action {
	name := filepath.Base(event.Name)
	if !w.wants(name) {
		return ActionNone
	}

	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		err := w.docs.Delete(ctx, name)
		switch {
		case err == nil:
			logger.Info("Watcher: removed %s", name)
			return ActionDelete
		case errors.Is(err, domain.ErrNotFound):
			return ActionNone
		default:
			logger.Warn("Watcher: deleting %s: %v", name, err)
			return ActionNone
		}

	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		info, err := os.Stat(event.Name)
		if err != nil || info.IsDir() {
			return ActionNone
		}
		if w.upload(ctx, event.Name) {
			return ActionUpload
		}
	}
	return ActionNone
}

func (w *Watcher) upload(ctx context.Context, path string) bool {
	name := filepath.Base(path)
	content, err := os.ReadFile(path)
	if err != nil {
		logger.Debug("Watcher: reading %s: %v", path, err)
		return false
	}

	result, err := w.docs.UploadFile(ctx, &domain.RawDocument{Name: name, Content: content})
	if err != nil {
		logger.Warn("Watcher: uploading %s: %v", name, err)
		return false
	}
	logger.Info("Watcher: uploaded %s (%d chunks, %d embedded)", name, result.ChunkCount, result.EmbeddingCount)
	return true
}

// wants reports whether a file name is visible and of a supported type.
func (w *Watcher) wants(name string) bool {
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, "~") {
		return false
	}
	return w.docs.Supports(name, "")
}
