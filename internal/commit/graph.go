// internal/commit/graph.go
package commit

import (
	"fmt"
	"os"
	"strings"
	"time"

	jerrors "jot/internal/errors"
	"jot/internal/index"
	"jot/internal/object"
)

// Graph manages the linear commit chain and the head reference. The head
// is an explicit persisted value, not a hidden singleton, so multiple
// repositories can coexist in one process.
type Graph struct {
    store    object.Storer
    index    *index.Index
    headPath string
}

func NewGraph(store object.Storer, idx *index.Index, headPath string) *Graph {
    return &Graph{
        store:    store,
        index:    idx,
        headPath: headPath,
    }
}

// Commit snapshots the staging index into a new commit pointing at the
// current head, persists it, advances the head, and clears the index.
//
// The object write and the head update are not atomic across a process
// crash: dying in between leaves a stored but unreachable commit. That
// window is accepted rather than masked.
func (g *Graph) Commit(message string) (string, error) {
    files, err := g.index.Snapshot()
    if err != nil {
        return "", fmt.Errorf("reading staging index: %w", err)
    }

    if len(files) == 0 {
        return "", jerrors.ValidationError("nothing staged to commit")
    }

    parent, err := g.Head()
    if err != nil {
        return "", err
    }

    c := &Commit{
        Timestamp: time.Now(),
        Message:   message,
        Files:     append([]index.Entry(nil), files...), // copy, not reference
        Parent:    parent,
    }

    data, err := c.Encode()
    if err != nil {
        return "", err
    }

    digest, err := g.store.Put(object.KindCommit, data)
    if err != nil {
        return "", fmt.Errorf("storing commit: %w", err)
    }

    if err := g.SetHead(digest); err != nil {
        return "", err
    }

    if err := g.index.Clear(); err != nil {
        return "", fmt.Errorf("clearing staging index: %w", err)
    }

    return digest, nil
}

// Head returns the digest of the most recent commit, or "" if no commit
// exists yet.
func (g *Graph) Head() (string, error) {
    data, err := os.ReadFile(g.headPath)
    if err != nil {
        if os.IsNotExist(err) {
            return "", nil
        }
        return "", jerrors.IO("reading head reference", err)
    }

    return strings.TrimSpace(string(data)), nil
}

// SetHead points the head reference at a commit digest.
func (g *Graph) SetHead(digest string) error {
    if err := os.WriteFile(g.headPath, []byte(digest), 0644); err != nil {
        return jerrors.IO("updating head reference", err)
    }
    return nil
}

// Get fetches and decodes a commit by digest, verifying that the stored
// object was actually written as a commit.
func (g *Graph) Get(digest string) (*Commit, error) {
    meta, err := g.store.Stat(digest)
    if err != nil {
        return nil, err
    }
    if meta.Kind != object.KindCommit {
        return nil, jerrors.ValidationError(fmt.Sprintf("object %s is a %s, not a commit", digest, meta.Kind))
    }

    data, err := g.store.Get(digest)
    if err != nil {
        return nil, err
    }

    return Decode(data)
}
