package repo

import (
	"os"
	"path/filepath"
	"testing"

	jerrors "jot/internal/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitializeCreatesLayout(t *testing.T) {
    root := t.TempDir()

    require.NoError(t, Initialize(root))

    assert.DirExists(t, filepath.Join(root, ".jot", "objects"))
    assert.FileExists(t, filepath.Join(root, ".jot", "HEAD"))
    assert.FileExists(t, filepath.Join(root, ".jot", "index"))
    assert.FileExists(t, filepath.Join(root, ".jot", "config.json"))
}

func TestInitializeTwiceIsInformational(t *testing.T) {
    root := t.TempDir()

    require.NoError(t, Initialize(root))

    err := Initialize(root)
    require.Error(t, err)
    assert.True(t, jerrors.IsType(err, jerrors.ErrorTypeAlreadyInitialized))
}

func TestInitializeNeverOverwritesState(t *testing.T) {
    root := t.TempDir()
    require.NoError(t, Initialize(root))

    headPath := filepath.Join(root, ".jot", "HEAD")
    require.NoError(t, os.WriteFile(headPath, []byte("somedigest"), 0644))

    _ = Initialize(root)

    data, err := os.ReadFile(headPath)
    require.NoError(t, err)
    assert.Equal(t, "somedigest", string(data))
}

func TestRepositoryConfigIdentity(t *testing.T) {
    root := t.TempDir()

    r, err := New(root, zap.NewNop())
    require.NoError(t, err)
    defer r.Close()

    _, err = uuid.Parse(r.Config.RepositoryID)
    assert.NoError(t, err, "repository id should be a uuid")
    assert.False(t, r.Config.CreatedAt.IsZero())
}

func TestAddStagesFileContent(t *testing.T) {
    root := t.TempDir()
    require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("hello\n"), 0644))

    r, err := New(root, zap.NewNop())
    require.NoError(t, err)
    defer r.Close()

    digest, err := r.Add("a.txt")
    require.NoError(t, err)

    content, err := r.Objects.Get(digest)
    require.NoError(t, err)
    assert.Equal(t, []byte("hello\n"), content)

    entries, err := r.Index.Snapshot()
    require.NoError(t, err)
    require.Len(t, entries, 1)
    assert.Equal(t, "a.txt", entries[0].Path)
    assert.Equal(t, digest, entries[0].Hash)
}

func TestAddMissingFile(t *testing.T) {
    root := t.TempDir()

    r, err := New(root, zap.NewNop())
    require.NoError(t, err)
    defer r.Close()

    _, err = r.Add("no-such-file.txt")
    require.Error(t, err)
    assert.True(t, jerrors.IsType(err, jerrors.ErrorTypeNotFound))
}

func TestAddCommitRoundTrip(t *testing.T) {
    root := t.TempDir()
    require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("v1\n"), 0644))

    r, err := New(root, zap.NewNop())
    require.NoError(t, err)
    defer r.Close()

    _, err = r.Add("a.txt")
    require.NoError(t, err)

    commitDigest, err := r.Graph.Commit("first")
    require.NoError(t, err)

    head, err := r.Graph.Head()
    require.NoError(t, err)
    assert.Equal(t, commitDigest, head)

    entries, err := r.Index.Snapshot()
    require.NoError(t, err)
    assert.Empty(t, entries)
}
