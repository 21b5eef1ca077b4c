// internal/commit/commit.go
package commit

import (
	"encoding/json"
	"fmt"
	"time"

	"jot/internal/index"
)

// Commit is an immutable snapshot of the staging index plus metadata and a
// parent link. Its identity is the digest of its canonical serialized
// form, so any change to message, timestamp, file list, or parent yields a
// new identity.
type Commit struct {
    Timestamp time.Time     `json:"timestamp"`
    Message   string        `json:"message"`
    Files     []index.Entry `json:"files"`
    Parent    string        `json:"parent,omitempty"` // empty for the root commit
}

// Encode produces the canonical serialization used for both storage and
// digest computation.
func (c *Commit) Encode() ([]byte, error) {
    data, err := json.Marshal(c)
    if err != nil {
        return nil, fmt.Errorf("encoding commit: %w", err)
    }
    return data, nil
}

// Decode parses stored bytes as a commit, rejecting records that do not
// have the expected shape.
func Decode(data []byte) (*Commit, error) {
    var c Commit
    if err := json.Unmarshal(data, &c); err != nil {
        return nil, fmt.Errorf("decoding commit: %w", err)
    }

    if c.Timestamp.IsZero() {
        return nil, fmt.Errorf("decoding commit: missing timestamp")
    }
    for i, f := range c.Files {
        if f.Path == "" || f.Hash == "" {
            return nil, fmt.Errorf("decoding commit: file entry %d is missing path or hash", i)
        }
    }

    return &c, nil
}

// FindFile searches the commit's file list for a path. The staging index
// allows duplicate paths; the last entry wins, matching what a checkout of
// the commit would produce.
func (c *Commit) FindFile(path string) (index.Entry, bool) {
    for i := len(c.Files) - 1; i >= 0; i-- {
        if c.Files[i].Path == path {
            return c.Files[i], true
        }
    }
    return index.Entry{}, false
}
