// internal/watch/watcher.go
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"jot/internal/repo"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher stages files automatically as they are written in the working
// tree. It watches every directory under the repository root except
// ignored ones.
type Watcher struct {
    repo       *repo.Repository
    watcher    *fsnotify.Watcher
    ignoreDirs map[string]bool
    logger     *zap.Logger
}

func New(r *repo.Repository, logger *zap.Logger) (*Watcher, error) {
    fsw, err := fsnotify.NewWatcher()
    if err != nil {
        return nil, fmt.Errorf("creating file watcher: %w", err)
    }

    w := &Watcher{
        repo:    r,
        watcher: fsw,
        ignoreDirs: map[string]bool{
            ".git":         true,
            ".jot":         true,
            "node_modules": true,
            "vendor":       true,
            "dist":         true,
            "build":        true,
        },
        logger: logger,
    }

    if err := w.addDirs(); err != nil {
        fsw.Close()
        return nil, fmt.Errorf("registering directories: %w", err)
    }

    return w, nil
}

func (w *Watcher) addDirs() error {
    return filepath.Walk(w.repo.Root, func(path string, info os.FileInfo, err error) error {
        if err != nil {
            return err
        }
        if !info.IsDir() {
            return nil
        }
        if w.shouldIgnore(path) {
            return filepath.SkipDir
        }
        return w.watcher.Add(path)
    })
}

// Run processes events until done is closed.
func (w *Watcher) Run(done <-chan struct{}) {
    for {
        select {
        case event, ok := <-w.watcher.Events:
            if !ok {
                return
            }
            w.handleEvent(event)
        case err, ok := <-w.watcher.Errors:
            if !ok {
                return
            }
            w.logger.Error("watcher error", zap.Error(err))
        case <-done:
            return
        }
    }
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
    relPath, err := filepath.Rel(w.repo.Root, event.Name)
    if err != nil {
        w.logger.Error("getting relative path", zap.Error(err))
        return
    }

    if w.shouldIgnore(relPath) {
        return
    }

    switch {
    case event.Op&fsnotify.Create == fsnotify.Create:
        if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
            if err := w.watcher.Add(event.Name); err != nil {
                w.logger.Error("adding new directory to watcher", zap.Error(err))
            }
            return
        }
        w.stage(relPath)

    case event.Op&fsnotify.Write == fsnotify.Write:
        w.stage(relPath)
    }
}

func (w *Watcher) stage(relPath string) {
    digest, err := w.repo.Add(relPath)
    if err != nil {
        w.logger.Warn("auto-staging failed",
            zap.String("path", relPath),
            zap.Error(err))
        return
    }

    w.logger.Info("auto-staged file",
        zap.String("path", relPath),
        zap.String("digest", digest))
}

func (w *Watcher) shouldIgnore(path string) bool {
    if path == "" || path == "." {
        return true
    }

    parts := strings.Split(path, string(filepath.Separator))
    for _, part := range parts {
        if w.ignoreDirs[part] || strings.HasPrefix(part, ".") {
            return true
        }
    }

    return false
}

// Close cleans up resources
func (w *Watcher) Close() error {
    return w.watcher.Close()
}
