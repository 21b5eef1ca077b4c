// internal/history/walker.go
package history

import (
	"fmt"
	"time"

	"jot/internal/commit"
	"jot/internal/diff"
	"jot/internal/object"
)

// LogEntry is one commit as reported by Log, newest first.
type LogEntry struct {
    Digest    string
    Timestamp time.Time
    Message   string
}

// FileStatus classifies how a file appears in a commit being shown.
type FileStatus int

const (
    // StatusInitial marks files of a commit with no parent.
    StatusInitial FileStatus = iota
    // StatusNew marks files absent from the parent commit.
    StatusNew
    // StatusModified marks files with a prior revision to diff against.
    StatusModified
)

// FileDiff is the per-file result of showing a commit. Runs is populated
// only for StatusModified.
type FileDiff struct {
    Path    string
    Hash    string
    Status  FileStatus
    Content []byte
    Runs    []diff.Run
}

// Walker traverses the commit graph backwards from head and reconstructs
// prior file revisions for diffing.
type Walker struct {
    store  object.Storer
    graph  *commit.Graph
    engine *diff.Engine
}

func NewWalker(store object.Storer, graph *commit.Graph) *Walker {
    return &Walker{
        store:  store,
        graph:  graph,
        engine: diff.NewEngine(),
    }
}

// Log follows parent pointers from head until the root commit, yielding
// entries in reverse-chronological order. An empty head yields an empty
// log, not an error.
func (w *Walker) Log() ([]LogEntry, error) {
    head, err := w.graph.Head()
    if err != nil {
        return nil, err
    }

    var entries []LogEntry
    for digest := head; digest != ""; {
        c, err := w.graph.Get(digest)
        if err != nil {
            return nil, fmt.Errorf("walking history at %s: %w", digest, err)
        }

        entries = append(entries, LogEntry{
            Digest:    digest,
            Timestamp: c.Timestamp,
            Message:   c.Message,
        })

        digest = c.Parent
    }

    return entries, nil
}

// Show fetches a commit and computes, for each staged file, a line diff
// against that file's revision in the parent commit.
func (w *Walker) Show(digest string) ([]FileDiff, error) {
    c, err := w.graph.Get(digest)
    if err != nil {
        return nil, err
    }

    var parent *commit.Commit
    if c.Parent != "" {
        parent, err = w.graph.Get(c.Parent)
        if err != nil {
            return nil, fmt.Errorf("fetching parent commit: %w", err)
        }
    }

    diffs := make([]FileDiff, 0, len(c.Files))
    for _, f := range c.Files {
        content, err := w.store.Get(f.Hash)
        if err != nil {
            return nil, fmt.Errorf("fetching content for %s: %w", f.Path, err)
        }

        fd := FileDiff{
            Path:    f.Path,
            Hash:    f.Hash,
            Content: content,
        }

        switch {
        case parent == nil:
            fd.Status = StatusInitial
        default:
            prev, ok := parent.FindFile(f.Path)
            if !ok {
                // Not in the parent: a file introduced by this commit.
                fd.Status = StatusNew
                break
            }

            prevContent, err := w.store.Get(prev.Hash)
            if err != nil {
                return nil, fmt.Errorf("fetching prior content for %s: %w", f.Path, err)
            }

            fd.Status = StatusModified
            fd.Runs = w.engine.Diff(prevContent, content).Runs
        }

        diffs = append(diffs, fd)
    }

    return diffs, nil
}
