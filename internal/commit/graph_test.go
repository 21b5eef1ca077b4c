package commit

import (
	"path/filepath"
	"testing"

	jerrors "jot/internal/errors"
	"jot/internal/index"
	"jot/internal/object"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestGraph(t *testing.T) (*Graph, *object.Store, *index.Index) {
    t.Helper()

    opts := badger.DefaultOptions("").WithInMemory(true)
    opts.Logger = nil

    db, err := badger.Open(opts)
    require.NoError(t, err)
    t.Cleanup(func() { db.Close() })

    dir := t.TempDir()
    store, err := object.NewStore(filepath.Join(dir, "objects"), db)
    require.NoError(t, err)

    idx := index.New(filepath.Join(dir, "index"))
    graph := NewGraph(store, idx, filepath.Join(dir, "HEAD"))

    return graph, store, idx
}

func stageBlob(t *testing.T, store *object.Store, idx *index.Index, path, content string) string {
    t.Helper()
    digest, err := store.Put(object.KindBlob, []byte(content))
    require.NoError(t, err)
    require.NoError(t, idx.Stage(path, digest))
    return digest
}

func TestCommitSnapshotsIndex(t *testing.T) {
    graph, store, idx := setupTestGraph(t)

    d1 := stageBlob(t, store, idx, "a.txt", "alpha")
    d2 := stageBlob(t, store, idx, "b.txt", "beta")

    digest, err := graph.Commit("first")
    require.NoError(t, err)

    c, err := graph.Get(digest)
    require.NoError(t, err)
    assert.Equal(t, "first", c.Message)
    assert.Empty(t, c.Parent)
    assert.False(t, c.Timestamp.IsZero())
    assert.Equal(t, []index.Entry{
        {Path: "a.txt", Hash: d1},
        {Path: "b.txt", Hash: d2},
    }, c.Files)

    // Index is cleared by the commit.
    entries, err := idx.Snapshot()
    require.NoError(t, err)
    assert.Empty(t, entries)
}

func TestCommitEmptyIndex(t *testing.T) {
    graph, _, _ := setupTestGraph(t)

    _, err := graph.Commit("nothing")
    require.Error(t, err)
    assert.True(t, jerrors.IsType(err, jerrors.ErrorTypeValidation))
}

func TestCommitLinearChain(t *testing.T) {
    graph, store, idx := setupTestGraph(t)

    var digests []string
    for _, msg := range []string{"c1", "c2", "c3"} {
        stageBlob(t, store, idx, "f.txt", "content for "+msg)
        d, err := graph.Commit(msg)
        require.NoError(t, err)
        digests = append(digests, d)
    }

    head, err := graph.Head()
    require.NoError(t, err)
    assert.Equal(t, digests[2], head)

    c3, err := graph.Get(digests[2])
    require.NoError(t, err)
    assert.Equal(t, digests[1], c3.Parent)

    c2, err := graph.Get(digests[1])
    require.NoError(t, err)
    assert.Equal(t, digests[0], c2.Parent)

    c1, err := graph.Get(digests[0])
    require.NoError(t, err)
    assert.Empty(t, c1.Parent)
}

func TestHeadEmptyBeforeFirstCommit(t *testing.T) {
    graph, _, _ := setupTestGraph(t)

    head, err := graph.Head()
    require.NoError(t, err)
    assert.Empty(t, head)
}

func TestGetRejectsNonCommitObjects(t *testing.T) {
    graph, store, _ := setupTestGraph(t)

    blobDigest, err := store.Put(object.KindBlob, []byte("just a file"))
    require.NoError(t, err)

    _, err = graph.Get(blobDigest)
    require.Error(t, err)
    assert.True(t, jerrors.IsType(err, jerrors.ErrorTypeValidation))
}

func TestGetUnknownCommit(t *testing.T) {
    graph, _, _ := setupTestGraph(t)

    _, err := graph.Get(object.HashContent([]byte("no such commit")))
    require.Error(t, err)
    assert.True(t, jerrors.IsType(err, jerrors.ErrorTypeNotFound))
}

func TestCommitIdentityDependsOnMessage(t *testing.T) {
    graph, store, idx := setupTestGraph(t)

    stageBlob(t, store, idx, "a.txt", "same content")
    first, err := graph.Commit("one message")
    require.NoError(t, err)

    c, err := graph.Get(first)
    require.NoError(t, err)

    changed := *c
    changed.Message = "another message"

    a, err := c.Encode()
    require.NoError(t, err)
    b, err := changed.Encode()
    require.NoError(t, err)
    assert.NotEqual(t, object.HashContent(a), object.HashContent(b))
}

func TestFindFileLastEntryWins(t *testing.T) {
    c := &Commit{
        Files: []index.Entry{
            {Path: "a.txt", Hash: "old"},
            {Path: "b.txt", Hash: "other"},
            {Path: "a.txt", Hash: "new"},
        },
    }

    entry, ok := c.FindFile("a.txt")
    require.True(t, ok)
    assert.Equal(t, "new", entry.Hash)

    _, ok = c.FindFile("missing.txt")
    assert.False(t, ok)
}
