// internal/index/index.go
package index

import (
	"encoding/json"
	"fmt"
	"os"

	jerrors "jot/internal/errors"
)

// Entry maps a staged path to the digest of its content at add time.
type Entry struct {
    Path string `json:"path"`
    Hash string `json:"hash"`
}

// Index is the staging area: an ordered list of entries awaiting the next
// commit. The file on disk is the sole source of truth between
// invocations; every operation is a full load-mutate-save.
type Index struct {
    path string
}

func New(path string) *Index {
    return &Index{path: path}
}

// Stage appends an entry. Staging the same path twice keeps both entries
// in add order; deduplication is not the index's job.
func (ix *Index) Stage(path, digest string) error {
    entries, err := ix.load()
    if err != nil {
        return err
    }

    entries = append(entries, Entry{Path: path, Hash: digest})
    return ix.save(entries)
}

// Snapshot returns the current ordered contents.
func (ix *Index) Snapshot() ([]Entry, error) {
    return ix.load()
}

// Clear empties the index. Called only as part of a successful commit.
func (ix *Index) Clear() error {
    return ix.save([]Entry{})
}

func (ix *Index) load() ([]Entry, error) {
    data, err := os.ReadFile(ix.path)
    if err != nil {
        if os.IsNotExist(err) {
            return []Entry{}, nil
        }
        return nil, jerrors.IO("reading staging index", err)
    }

    if len(data) == 0 {
        return []Entry{}, nil
    }

    var entries []Entry
    if err := json.Unmarshal(data, &entries); err != nil {
        return nil, jerrors.ValidationError(fmt.Sprintf("parsing staging index: %v", err))
    }

    // Reject malformed entries instead of silently coercing them.
    for i, e := range entries {
        if e.Path == "" || e.Hash == "" {
            return nil, jerrors.ValidationError(fmt.Sprintf("staging index entry %d is missing path or hash", i))
        }
    }

    return entries, nil
}

func (ix *Index) save(entries []Entry) error {
    data, err := json.Marshal(entries)
    if err != nil {
        return fmt.Errorf("marshaling staging index: %w", err)
    }

    if err := os.WriteFile(ix.path, data, 0644); err != nil {
        return jerrors.IO("writing staging index", err)
    }

    return nil
}
