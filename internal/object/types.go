package object

import (
	"time"

	"github.com/dgraph-io/badger/v4"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Kind discriminates how stored bytes should be interpreted. Blobs and
// commits share one digest namespace; the kind is recorded alongside each
// object so readers never have to guess.
type Kind string

const (
    KindBlob   Kind = "blob"
    KindCommit Kind = "commit"
)

// Meta stores metadata about a stored object
type Meta struct {
    Digest    string    `json:"digest"`
    Kind      Kind      `json:"kind"`
    Size      int64     `json:"size"`
    CreatedAt time.Time `json:"created_at"`
}

// Store provides deduplicated content-addressed storage. Object bytes live
// as plain files under root, one per digest; metadata lives in badger.
type Store struct {
    root  string
    db    *badger.DB
    cache *lru.Cache[string, []byte]
}

// Storer is the interface consumed by the commit graph and history walker.
type Storer interface {
    Put(kind Kind, content []byte) (string, error)
    Get(digest string) ([]byte, error)
    Stat(digest string) (Meta, error)
    Exists(digest string) bool
}
