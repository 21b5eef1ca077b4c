// internal/repo/repo.go
package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"jot/internal/commit"
	"jot/internal/config"
	jerrors "jot/internal/errors"
	"jot/internal/index"
	"jot/internal/object"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

const jotDir = ".jot"

// Repository wires the object store, staging index, commit graph, and
// history walker over one repository root.
type Repository struct {
    Root    string
    Config  *config.Config
    Objects *object.Store
    Index   *index.Index
    Graph   *commit.Graph
    Logger  *zap.Logger

    db *badger.DB
}

func jotPath(root string, parts ...string) string {
    return filepath.Join(append([]string{root, jotDir}, parts...)...)
}

// Initialize creates the repository skeleton under root. Safe to call on
// an existing repository: directories are created idempotently, while
// HEAD and index use exclusive-create and are never overwritten. Returns
// an AlreadyInitialized error (informational, not fatal) when both state
// files already existed.
func Initialize(root string) error {
    dirs := []string{
        jotPath(root, "objects"),
        jotPath(root, "db"),
    }
    for _, dir := range dirs {
        if err := os.MkdirAll(dir, 0755); err != nil {
            return jerrors.IO(fmt.Sprintf("creating directory %s", dir), err)
        }
    }

    created := false
    for _, name := range []string{"HEAD", "index"} {
        f, err := os.OpenFile(jotPath(root, name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
        if err != nil {
            if os.IsExist(err) {
                continue
            }
            return jerrors.IO(fmt.Sprintf("creating %s", name), err)
        }
        f.Close()
        created = true
    }

    configPath := jotPath(root, "config.json")
    if _, err := os.Stat(configPath); os.IsNotExist(err) {
        if err := config.Default().Save(configPath); err != nil {
            return jerrors.IO("writing repository config", err)
        }
    }

    if !created {
        return jerrors.AlreadyInitialized(fmt.Sprintf("repository already initialized in %s", root))
    }

    return nil
}

// New opens the repository rooted at path, initializing the layout if
// needed.
func New(path string, logger *zap.Logger) (*Repository, error) {
    absPath, err := filepath.Abs(path)
    if err != nil {
        return nil, fmt.Errorf("getting absolute path for root %s: %w", path, err)
    }

    if err := Initialize(absPath); err != nil && !jerrors.IsType(err, jerrors.ErrorTypeAlreadyInitialized) {
        return nil, fmt.Errorf("initializing repository layout: %w", err)
    }

    cfg, err := config.Load(jotPath(absPath, "config.json"))
    if err != nil {
        return nil, fmt.Errorf("loading repository config: %w", err)
    }

    opts := badger.DefaultOptions(jotPath(absPath, "db"))
    opts.Logger = nil // Disable logging noise

    db, err := badger.Open(opts)
    if err != nil {
        return nil, fmt.Errorf("opening metadata database: %w", err)
    }

    store, err := object.NewStore(jotPath(absPath, "objects"), db)
    if err != nil {
        db.Close()
        return nil, fmt.Errorf("opening object store: %w", err)
    }

    idx := index.New(jotPath(absPath, "index"))
    graph := commit.NewGraph(store, idx, jotPath(absPath, "HEAD"))

    return &Repository{
        Root:    absPath,
        Config:  cfg,
        Objects: store,
        Index:   idx,
        Graph:   graph,
        Logger:  logger,
        db:      db,
    }, nil
}

// Add reads a working-tree file, stores its content, and stages the
// mapping. Returns the content digest.
func (r *Repository) Add(path string) (string, error) {
    absPath := filepath.Join(r.Root, path)
    relPath, err := filepath.Rel(r.Root, absPath)
    if err != nil {
        return "", fmt.Errorf("getting relative path: %w", err)
    }

    content, err := os.ReadFile(absPath)
    if err != nil {
        if os.IsNotExist(err) {
            return "", jerrors.NotFound(fmt.Sprintf("file does not exist: %s", path))
        }
        return "", jerrors.IO(fmt.Sprintf("reading file %s", path), err)
    }

    digest, err := r.Objects.Put(object.KindBlob, content)
    if err != nil {
        return "", fmt.Errorf("storing content: %w", err)
    }

    if err := r.Index.Stage(relPath, digest); err != nil {
        return "", fmt.Errorf("staging %s: %w", relPath, err)
    }

    r.Logger.Debug("staged file",
        zap.String("path", relPath),
        zap.String("digest", digest))

    return digest, nil
}

// Close releases the metadata database.
func (r *Repository) Close() error {
    if r == nil || r.db == nil {
        return nil
    }

    if err := r.db.Close(); err != nil {
        return fmt.Errorf("closing metadata database: %w", err)
    }
    return nil
}
