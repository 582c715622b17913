package internal

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "nested", "auth.json")
}

func TestStoreMissingFile(t *testing.T) {
	t.Parallel()

	s, err := OpenStore(storePath(t))
	require.NoError(t, err)

	_, ok := s.Get("alice")
	assert.False(t, ok)
}

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()

	path := storePath(t)
	s, err := OpenStore(path)
	require.NoError(t, err)

	creds := Credentials{Modhash: "T", Cookie: "C", UserID: "t2_3k9z1"}
	require.NoError(t, s.Put("alice", creds))

	got, ok := s.Get("alice")
	require.True(t, ok)
	assert.Equal(t, creds, got)

	// A fresh store sees what the first one persisted.
	reopened, err := OpenStore(path)
	require.NoError(t, err)
	got, ok = reopened.Get("alice")
	require.True(t, ok)
	assert.Equal(t, creds, got)
}

func TestStoreFileShape(t *testing.T) {
	t.Parallel()

	path := storePath(t)
	s, err := OpenStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Put("alice", Credentials{Modhash: "T", Cookie: "C"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var file struct {
		Auth map[string][]any `json:"auth"`
	}
	require.NoError(t, json.Unmarshal(data, &file))
	require.Contains(t, file.Auth, "alice")

	entry := file.Auth["alice"]
	require.Len(t, entry, 3)
	assert.Equal(t, "T", entry[0])
	assert.Equal(t, "C", entry[1])
	assert.Nil(t, entry[2], "unresolved user id must be stored as null")
}

func TestStoreNullUserID(t *testing.T) {
	t.Parallel()

	path := storePath(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte(`{"auth":{"alice":["T","C",null]}}`), 0o600))

	s, err := OpenStore(path)
	require.NoError(t, err)

	creds, ok := s.Get("alice")
	require.True(t, ok)
	assert.Equal(t, Credentials{Modhash: "T", Cookie: "C"}, creds)
}

func TestStoreDelete(t *testing.T) {
	t.Parallel()

	path := storePath(t)
	s, err := OpenStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Put("alice", Credentials{Modhash: "T", Cookie: "C"}))
	require.NoError(t, s.Delete("alice"))

	reopened, err := OpenStore(path)
	require.NoError(t, err)
	_, ok := reopened.Get("alice")
	assert.False(t, ok)
}

func TestStoreRewriteLeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	path := storePath(t)
	s, err := OpenStore(path)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Put("alice", Credentials{Modhash: "T", Cookie: "C"}))
	}

	leftovers, err := filepath.Glob(filepath.Join(filepath.Dir(path), ".auth-*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)

	// The final file is still well-formed JSON.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}

func TestStoreCorruptFile(t *testing.T) {
	t.Parallel()

	path := storePath(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte(`{"auth": [`), 0o600))

	_, err := OpenStore(path)
	assert.Error(t, err)
}
