package client_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	client "github.com/gpugrid/go-client"
)

func openTestDB(t *testing.T) *bun.DB {
	t.Helper()

	db, err := client.OpenSQLite(filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func TestBunStorageRoundTrip(t *testing.T) {
	storage, err := client.NewBunStorage(openTestDB(t))
	require.NoError(t, err)

	session := client.NewSession(client.Identity{
		ID:       7,
		Email:    "a@b.com",
		IsActive: true,
	}, "abc123")

	require.NoError(t, storage.Save(session))

	loaded := storage.Load()
	require.NotNil(t, loaded)
	assert.Equal(t, session.Identity, loaded.Identity)
	assert.Equal(t, "abc123", loaded.AccessToken)
}

func TestBunStorageSaveOverwrites(t *testing.T) {
	storage, err := client.NewBunStorage(openTestDB(t))
	require.NoError(t, err)

	require.NoError(t, storage.Save(client.NewSession(client.Identity{ID: 1}, "first")))
	require.NoError(t, storage.Save(client.NewSession(client.Identity{ID: 2}, "second")))

	loaded := storage.Load()
	require.NotNil(t, loaded)
	assert.Equal(t, int64(2), loaded.Identity.ID)
	assert.Equal(t, "second", loaded.AccessToken)
}

func TestBunStorageLoadMissingRecord(t *testing.T) {
	storage, err := client.NewBunStorage(openTestDB(t))
	require.NoError(t, err)
	assert.Nil(t, storage.Load())
}

func TestBunStorageSaveNilDeletes(t *testing.T) {
	storage, err := client.NewBunStorage(openTestDB(t))
	require.NoError(t, err)

	require.NoError(t, storage.Save(client.NewSession(client.Identity{ID: 1}, "tok")))
	require.NoError(t, storage.Save(nil))
	assert.Nil(t, storage.Load())
}

func TestBunStorageSelfHealsCorruptRecord(t *testing.T) {
	db := openTestDB(t)
	storage, err := client.NewBunStorage(db)
	require.NoError(t, err)

	require.NoError(t, storage.Save(client.NewSession(client.Identity{ID: 1}, "tok")))

	_, err = db.Exec("UPDATE client_session SET payload = ?", []byte("{not json"))
	require.NoError(t, err)

	assert.Nil(t, storage.Load())
	assert.Nil(t, storage.Load(), "corrupt record should stay gone")
}

func TestBunStorageDeleteIdempotent(t *testing.T) {
	storage, err := client.NewBunStorage(openTestDB(t))
	require.NoError(t, err)
	assert.NoError(t, storage.Delete())
	assert.NoError(t, storage.Delete())
}
