// internal/object/store.go
package object

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	jerrors "jot/internal/errors"

	"github.com/dgraph-io/badger/v4"
	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultCacheSize = 1000

// HashContent returns the hex sha256 digest of content. Pure and
// deterministic: identical bytes always produce the same digest.
func HashContent(content []byte) string {
    h := sha256.Sum256(content)
    return hex.EncodeToString(h[:])
}

func NewStore(root string, db *badger.DB) (*Store, error) {
    if err := os.MkdirAll(root, 0755); err != nil {
        return nil, fmt.Errorf("creating object store directory: %w", err)
    }

    cache, err := lru.New[string, []byte](defaultCacheSize)
    if err != nil {
        return nil, fmt.Errorf("creating cache: %w", err)
    }

    return &Store{
        root:  root,
        db:    db,
        cache: cache,
    }, nil
}

// Put stores content and returns its digest. Writing the same content
// twice is a no-op the second time; the stored kind of an existing object
// is left untouched.
func (s *Store) Put(kind Kind, content []byte) (string, error) {
    // Allow empty content (empty files are valid)
    if content == nil {
        content = []byte{}
    }

    digest := HashContent(content)
    path := s.objectPath(digest)

    if _, err := os.Stat(path); os.IsNotExist(err) {
        if err := os.WriteFile(path, content, 0644); err != nil {
            return "", jerrors.IO(fmt.Sprintf("writing object %s", digest), err)
        }

        meta := Meta{
            Digest:    digest,
            Kind:      kind,
            Size:      int64(len(content)),
            CreatedAt: time.Now(),
        }
        if err := s.putMeta(meta); err != nil {
            // Keep the namespace consistent: no object without metadata.
            os.Remove(path)
            return "", fmt.Errorf("storing object metadata: %w", err)
        }
    }

    s.cache.Add(digest, content)

    return digest, nil
}

// Get retrieves stored bytes by digest.
func (s *Store) Get(digest string) ([]byte, error) {
    if !isValidDigest(digest) {
        return nil, jerrors.ValidationError(fmt.Sprintf("invalid digest: %q", digest))
    }

    if content, ok := s.cache.Get(digest); ok {
        return content, nil
    }

    content, err := os.ReadFile(s.objectPath(digest))
    if err != nil {
        if os.IsNotExist(err) {
            return nil, jerrors.NotFound(fmt.Sprintf("object not found: %s", digest))
        }
        return nil, jerrors.IO(fmt.Sprintf("reading object %s", digest), err)
    }

    s.cache.Add(digest, content)
    return content, nil
}

// Stat returns the recorded metadata for a digest.
func (s *Store) Stat(digest string) (Meta, error) {
    var meta Meta

    err := s.db.View(func(txn *badger.Txn) error {
        item, err := txn.Get(metaKey(digest))
        if err == badger.ErrKeyNotFound {
            return jerrors.NotFound(fmt.Sprintf("object not found: %s", digest))
        }
        if err != nil {
            return err
        }

        return item.Value(func(val []byte) error {
            return json.Unmarshal(val, &meta)
        })
    })

    return meta, err
}

// Exists checks if an object is present.
func (s *Store) Exists(digest string) bool {
    if digest == "" {
        return false
    }

    if s.cache.Contains(digest) {
        return true
    }

    _, err := os.Stat(s.objectPath(digest))
    return err == nil
}

// Verify re-hashes stored bytes and compares against the digest they are
// filed under.
func (s *Store) Verify(digest string) error {
    content, err := s.Get(digest)
    if err != nil {
        return err
    }

    if HashContent(content) != digest {
        return fmt.Errorf("object %s: content digest mismatch", digest)
    }

    return nil
}

func (s *Store) objectPath(digest string) string {
    return filepath.Join(s.root, digest)
}

func (s *Store) putMeta(meta Meta) error {
    data, err := json.Marshal(meta)
    if err != nil {
        return err
    }

    return s.db.Update(func(txn *badger.Txn) error {
        return txn.Set(metaKey(meta.Digest), data)
    })
}

func metaKey(digest string) []byte {
    return []byte(fmt.Sprintf("object:%s", digest))
}

func isValidDigest(digest string) bool {
    if len(digest) != 64 {
        return false
    }
    _, err := hex.DecodeString(digest)
    return err == nil
}
