package client_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	client "github.com/gpugrid/go-client"
)

func sessionPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "session.json")
}

func TestFileStorageRoundTrip(t *testing.T) {
	storage := client.NewFileStorage(sessionPath(t))

	session := client.NewSession(client.Identity{
		ID:            7,
		Email:         "a@b.com",
		WalletAddress: testWallet,
		IsActive:      true,
	}, "abc123")

	require.NoError(t, storage.Save(session))

	loaded := storage.Load()
	require.NotNil(t, loaded)
	assert.Equal(t, session.Identity, loaded.Identity)
	assert.Equal(t, session.AccessToken, loaded.AccessToken)
}

func TestFileStorageLoadMissingRecord(t *testing.T) {
	storage := client.NewFileStorage(sessionPath(t))
	assert.Nil(t, storage.Load())
}

func TestFileStorageSelfHealsCorruptRecord(t *testing.T) {
	path := sessionPath(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	storage := client.NewFileStorage(path)
	assert.Nil(t, storage.Load())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "corrupt record should be deleted")
}

func TestFileStorageSelfHealsRecordWithoutToken(t *testing.T) {
	path := sessionPath(t)
	require.NoError(t, os.WriteFile(path, []byte(`{"identity":{"id":7}}`), 0o600))

	storage := client.NewFileStorage(path)
	assert.Nil(t, storage.Load())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFileStorageNormalizesTokenOnLoad(t *testing.T) {
	path := sessionPath(t)
	raw := `{"identity":{"id":7,"email":"a@b.com"},"access_token":"Bearer abc123"}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	storage := client.NewFileStorage(path)
	loaded := storage.Load()
	require.NotNil(t, loaded)
	assert.Equal(t, "abc123", loaded.AccessToken)
}

func TestFileStorageSaveNilDeletes(t *testing.T) {
	path := sessionPath(t)
	storage := client.NewFileStorage(path)

	require.NoError(t, storage.Save(client.NewSession(client.Identity{ID: 1}, "tok")))
	require.NoError(t, storage.Save(nil))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFileStorageDeleteIdempotent(t *testing.T) {
	storage := client.NewFileStorage(sessionPath(t))
	assert.NoError(t, storage.Delete())
	assert.NoError(t, storage.Delete())
}

func TestNoopStorage(t *testing.T) {
	storage := client.NoopStorage{}
	assert.Nil(t, storage.Load())
	assert.NoError(t, storage.Save(client.NewSession(client.Identity{ID: 1}, "tok")))
	assert.NoError(t, storage.Delete())
	assert.Nil(t, storage.Load())
}
