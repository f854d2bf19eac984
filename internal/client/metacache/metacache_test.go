package metacache

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/dkrasnovs/skyvault/internal/common"
	"github.com/dkrasnovs/skyvault/internal/cryptox"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:metacache?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS metadata_cache (
  key        TEXT PRIMARY KEY,
  value      TEXT NOT NULL,
  created_at INTEGER NOT NULL
);
DELETE FROM metadata_cache;
`)
	require.NoError(t, err)
	return db
}

func TestSQLiteStore(t *testing.T) {
	db := setupDB(t)
	store := NewSQLiteStore(db)
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	require.ErrorIs(t, err, common.ErrNotFound)

	require.NoError(t, store.Put(ctx, "k1", "v1"))
	got, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	require.Equal(t, "v1", got)

	// Upsert replaces.
	require.NoError(t, store.Put(ctx, "k1", "v2"))
	got, err = store.Get(ctx, "k1")
	require.NoError(t, err)
	require.Equal(t, "v2", got)
}

// countingStore wraps SQLiteStore to observe persistent-layer reads.
type countingStore struct {
	Store
	gets int
}

func (c *countingStore) Get(ctx context.Context, key string) (string, error) {
	c.gets++
	return c.Store.Get(ctx, key)
}

func TestCache_MemoryLayerShieldsStore(t *testing.T) {
	db := setupDB(t)
	counting := &countingStore{Store: NewSQLiteStore(db)}
	cache := New(counting, time.Minute)
	ctx := context.Background()

	_, ok := cache.Get(ctx, "k")
	require.False(t, ok)
	require.Equal(t, 1, counting.gets)

	cache.Put(ctx, "k", "v")

	for i := 0; i < 3; i++ {
		got, ok := cache.Get(ctx, "k")
		require.True(t, ok)
		require.Equal(t, "v", got)
	}
	// All hits came from memory.
	require.Equal(t, 1, counting.gets)
}

func TestCache_PromotesPersistentHit(t *testing.T) {
	db := setupDB(t)
	store := NewSQLiteStore(db)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "k", "persisted"))

	cache := New(store, time.Minute)
	got, ok := cache.Get(ctx, "k")
	require.True(t, ok)
	require.Equal(t, "persisted", got)
}

func TestKey(t *testing.T) {
	k1 := Key("file", "u1", "ciphertext-a")
	k2 := Key("file", "u1", "ciphertext-b")
	k3 := Key("folder", "u1", "ciphertext-a")

	require.NotEqual(t, k1, k2, "different ciphertext must miss")
	require.NotEqual(t, k1, k3, "different kind must miss")
	require.Equal(t, k1, Key("file", "u1", "ciphertext-a"))
}

func TestBindAccount(t *testing.T) {
	db := setupDB(t)
	store := NewSQLiteStore(db)
	ctx := context.Background()

	cleared, err := BindAccount(ctx, db, "a@example.com")
	require.NoError(t, err)
	require.False(t, cleared)

	require.NoError(t, store.Put(ctx, "k", "v"))

	// Same account keeps entries.
	cleared, err = BindAccount(ctx, db, "a@example.com")
	require.NoError(t, err)
	require.False(t, cleared)
	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "v", got)

	// A different account wipes them.
	cleared, err = BindAccount(ctx, db, "b@example.com")
	require.NoError(t, err)
	require.True(t, cleared)
	_, err = store.Get(ctx, "k")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestDecrypter_CachesSuccessfulDecrypts(t *testing.T) {
	db := setupDB(t)
	store := NewSQLiteStore(db)
	cache := New(store, time.Minute)
	ctx := context.Background()

	md := cryptox.FileMetadata{Name: "pic.jpg", Size: 10, Mime: "image/jpeg", Key: "fk"}
	b, err := json.Marshal(md)
	require.NoError(t, err)
	envelope, err := cryptox.EncryptMetadata(string(b), "mk1")
	require.NoError(t, err)

	dec := NewDecrypter([]string{"mk0", "mk1"}, cache)

	got, err := dec.DecryptFileMetadata(ctx, envelope, "u1")
	require.NoError(t, err)
	require.Equal(t, "pic.jpg", got.Name)

	// Second resolve is served from cache even without any usable key.
	blind := NewDecrypter([]string{"wrong"}, cache)
	got, err = blind.DecryptFileMetadata(ctx, envelope, "u1")
	require.NoError(t, err)
	require.Equal(t, "pic.jpg", got.Name)

	// A different ciphertext still fails for the blind decrypter.
	other, err := cryptox.EncryptMetadata(string(b), "mk2")
	require.NoError(t, err)
	_, err = blind.DecryptFileMetadata(ctx, other, "u1")
	require.ErrorIs(t, err, common.ErrDecryptFailed)
}

func TestDecrypter_FolderNameDefault(t *testing.T) {
	cache := New(NewSQLiteStore(setupDB(t)), time.Minute)
	dec := NewDecrypter(nil, cache)

	name, err := dec.DecryptFolderName(context.Background(), "default", "root")
	require.NoError(t, err)
	require.Equal(t, "Default", name)
}

func TestDecrypter_FolderNameCached(t *testing.T) {
	db := setupDB(t)
	cache := New(NewSQLiteStore(db), time.Minute)
	ctx := context.Background()

	envelope, err := cryptox.EncryptMetadata(`{"name":"Docs"}`, "mk1")
	require.NoError(t, err)

	dec := NewDecrypter([]string{"mk1"}, cache)
	name, err := dec.DecryptFolderName(ctx, envelope, "f1")
	require.NoError(t, err)
	require.Equal(t, "Docs", name)

	blind := NewDecrypter(nil, cache)
	name, err = blind.DecryptFolderName(ctx, envelope, "f1")
	require.NoError(t, err)
	require.Equal(t, "Docs", name)
}
