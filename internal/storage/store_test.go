package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tatianab/absurd-path/internal/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "absurd.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("  ")
	assert.Error(t, err)
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, Migrate(store.db))
	require.NoError(t, Migrate(store.db))

	var version int
	require.NoError(t, store.db.QueryRow(`SELECT MAX(version) FROM schema_migrations`).Scan(&version))
	assert.Equal(t, SchemaVersion, version)
}

func TestSnapshotLifecycle(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	_, ok, err := store.LoadSnapshot(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, ok)

	state := models.NewGameState("camus_start")
	state.Stats[models.Absurdism] = 2
	state.Flags["met_guide"] = true
	state.Visited = append(state.Visited, "camus_start")
	state.Journal = append(state.Journal, "Even the guides are lost.")
	require.NoError(t, store.SaveSnapshot(ctx, "s1", state.Snapshot()))

	snap, ok, err := store.LoadSnapshot(ctx, "s1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, state, models.FromSnapshot(snap))

	state.Current = "camus_sandstorm"
	require.NoError(t, store.SaveSnapshot(ctx, "s1", state.Snapshot()))
	require.NoError(t, store.SaveSnapshot(ctx, "s2", models.NewGameState("x").Snapshot()))

	sessions, err := store.ListSessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	byID := map[string]string{}
	for _, s := range sessions {
		byID[s.ID] = s.Current
	}
	assert.Equal(t, map[string]string{"s1": "camus_sandstorm", "s2": "x"}, byID)

	deleted, err := store.DeleteSnapshot(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = store.DeleteSnapshot(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestSaveSnapshotRequiresID(t *testing.T) {
	store := openTestStore(t)
	assert.Error(t, store.SaveSnapshot(context.Background(), "", models.NewGameState("a").Snapshot()))
}

func TestNilStore(t *testing.T) {
	var store *Store
	assert.NoError(t, store.Close())
	_, _, err := store.LoadSnapshot(context.Background(), "x")
	assert.Error(t, err)
}
