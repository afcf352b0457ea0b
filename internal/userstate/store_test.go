package userstate

import (
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexshelf/lexshelf/internal/catalog"
	"github.com/lexshelf/lexshelf/internal/entities"
	"github.com/lexshelf/lexshelf/internal/storage"
)

// memoryPersister keeps the blob in memory and optionally fails saves.
type memoryPersister struct {
	data    []byte
	saveErr error
	saves   int
}

func (p *memoryPersister) Save(data []byte) error {
	if p.saveErr != nil {
		return p.saveErr
	}
	p.data = append([]byte{}, data...)
	p.saves++
	return nil
}

func (p *memoryPersister) Load() ([]byte, error) {
	return p.data, nil
}

func testIndex(t *testing.T) *catalog.Index {
	t.Helper()
	idx, err := catalog.NewIndex([]entities.Book{
		{ID: "1", Title: "Civil Code", Area: "Civil"},
		{ID: "2", Title: "Criminal Basics", Area: "Criminal"},
		{ID: "3", Title: "Tax Handbook", Area: "Tax"},
	})
	require.NoError(t, err)
	return idx
}

func TestStore_ToggleFavorite(t *testing.T) {
	t.Run("toggling twice restores the original state", func(t *testing.T) {
		store := Load(&memoryPersister{})
		before := store.IsFavorite("1")

		on, err := store.ToggleFavorite("1")
		require.NoError(t, err)
		assert.True(t, on)
		assert.True(t, store.IsFavorite("1"))

		off, err := store.ToggleFavorite("1")
		require.NoError(t, err)
		assert.False(t, off)
		assert.Equal(t, before, store.IsFavorite("1"))
	})

	t.Run("favorites keep insertion order", func(t *testing.T) {
		store := Load(nil)
		for _, id := range []string{"3", "1", "2"} {
			_, err := store.ToggleFavorite(id)
			require.NoError(t, err)
		}

		books := store.ListFavorites(testIndex(t))
		require.Len(t, books, 3)
		assert.Equal(t, "3", books[0].ID)
		assert.Equal(t, "1", books[1].ID)
		assert.Equal(t, "2", books[2].ID)
	})

	t.Run("stale favorite ids are skipped on listing", func(t *testing.T) {
		store := Load(nil)
		_, err := store.ToggleFavorite("2")
		require.NoError(t, err)
		_, err = store.ToggleFavorite("deleted-book")
		require.NoError(t, err)

		books := store.ListFavorites(testIndex(t))
		require.Len(t, books, 1)
		assert.Equal(t, "2", books[0].ID)
	})
}

func TestStore_RecordProgress(t *testing.T) {
	store := Load(nil)

	t.Run("status derivation", func(t *testing.T) {
		require.NoError(t, store.RecordProgress("1", 0, 100))
		assert.Equal(t, entities.StatusNotStarted, store.GetProgress("1").Status)

		require.NoError(t, store.RecordProgress("1", 50, 100))
		assert.Equal(t, entities.StatusInProgress, store.GetProgress("1").Status)

		require.NoError(t, store.RecordProgress("1", 100, 100))
		assert.Equal(t, entities.StatusFinished, store.GetProgress("1").Status)
	})

	t.Run("default progress for unopened books", func(t *testing.T) {
		progress := store.GetProgress("never-opened")
		assert.Equal(t, entities.StatusNotStarted, progress.Status)
		assert.Equal(t, 0, progress.Position)
	})

	t.Run("unknown total with positive position is in progress", func(t *testing.T) {
		require.NoError(t, store.RecordProgress("2", 10, 0))
		assert.Equal(t, entities.StatusInProgress, store.GetProgress("2").Status)
	})

	t.Run("known total is retained when a later call omits it", func(t *testing.T) {
		require.NoError(t, store.RecordProgress("3", 10, 200))
		require.NoError(t, store.RecordProgress("3", 200, 0))
		assert.Equal(t, entities.StatusFinished, store.GetProgress("3").Status)
	})
}

func TestStore_ListInProgress(t *testing.T) {
	store := Load(nil)

	current := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time {
		current = current.Add(time.Minute)
		return current
	}

	require.NoError(t, store.RecordProgress("1", 10, 100))  // in-progress, oldest
	require.NoError(t, store.RecordProgress("2", 100, 100)) // finished
	require.NoError(t, store.RecordProgress("3", 20, 100))  // in-progress, newest
	require.NoError(t, store.RecordProgress("gone", 5, 0))  // not in the catalog

	entries := store.ListInProgress(testIndex(t))
	require.Len(t, entries, 2)
	assert.Equal(t, "3", entries[0].Book.ID)
	assert.Equal(t, "1", entries[1].Book.ID)
}

func TestStore_Annotations(t *testing.T) {
	t.Run("add then list then remove", func(t *testing.T) {
		store := Load(nil)

		annotation, err := store.AddAnnotation("1", 12, "check article 5")
		require.NoError(t, err)
		assert.NotEmpty(t, annotation.ID)

		list := store.ListAnnotations("1")
		require.Len(t, list, 1)
		assert.Equal(t, annotation.ID, list[0].ID)

		require.NoError(t, store.RemoveAnnotation("1", annotation.ID))
		assert.Empty(t, store.ListAnnotations("1"))
	})

	t.Run("listing is sorted by location regardless of insertion order", func(t *testing.T) {
		store := Load(nil)
		for _, location := range []int{50, 10, 30} {
			_, err := store.AddAnnotation("1", location, "")
			require.NoError(t, err)
		}

		list := store.ListAnnotations("1")
		require.Len(t, list, 3)
		assert.Equal(t, 10, list[0].Location)
		assert.Equal(t, 30, list[1].Location)
		assert.Equal(t, 50, list[2].Location)
	})

	t.Run("duplicates at one location stay distinct", func(t *testing.T) {
		store := Load(nil)
		first, err := store.AddAnnotation("1", 7, "first")
		require.NoError(t, err)
		second, err := store.AddAnnotation("1", 7, "second")
		require.NoError(t, err)
		require.NotEqual(t, first.ID, second.ID)

		list := store.ListAnnotations("1")
		require.Len(t, list, 2)
		assert.Equal(t, "first", list[0].Note)
		assert.Equal(t, "second", list[1].Note)
	})

	t.Run("removing an unknown id is a no-op", func(t *testing.T) {
		store := Load(nil)
		_, err := store.AddAnnotation("1", 3, "keep me")
		require.NoError(t, err)

		require.NoError(t, store.RemoveAnnotation("1", "no-such-id"))
		require.NoError(t, store.RemoveAnnotation("other-book", "no-such-id"))
		assert.Len(t, store.ListAnnotations("1"), 1)
	})
}

func TestStore_Persistence(t *testing.T) {
	t.Run("every mutation writes a snapshot", func(t *testing.T) {
		persister := &memoryPersister{}
		store := Load(persister)

		_, err := store.ToggleFavorite("1")
		require.NoError(t, err)
		require.NoError(t, store.RecordProgress("1", 10, 100))
		_, err = store.AddAnnotation("1", 4, "note")
		require.NoError(t, err)

		assert.Equal(t, 3, persister.saves)
	})

	t.Run("state survives a reload", func(t *testing.T) {
		persister := &memoryPersister{}
		store := Load(persister)

		_, err := store.ToggleFavorite("2")
		require.NoError(t, err)
		require.NoError(t, store.RecordProgress("1", 42, 100))
		annotation, err := store.AddAnnotation("1", 9, "remember this")
		require.NoError(t, err)

		reloaded := Load(persister)
		assert.Equal(t, marshalSnapshot(t, store), marshalSnapshot(t, reloaded))
		assert.True(t, reloaded.IsFavorite("2"))
		assert.Equal(t, 42, reloaded.GetProgress("1").Position)

		list := reloaded.ListAnnotations("1")
		require.Len(t, list, 1)
		assert.Equal(t, annotation.ID, list[0].ID)
	})

	t.Run("failed save reports a PersistenceError but keeps the mutation", func(t *testing.T) {
		persister := &memoryPersister{saveErr: errors.New("disk full")}
		store := Load(persister)

		on, err := store.ToggleFavorite("1")
		assert.True(t, on)

		var perr *PersistenceError
		require.ErrorAs(t, err, &perr)
		assert.True(t, store.IsFavorite("1"))
	})

	t.Run("corrupt blob falls back to empty state", func(t *testing.T) {
		persister := &memoryPersister{data: []byte("{not json")}
		store := Load(persister)
		assert.Empty(t, store.Snapshot().Favorites)
	})

	t.Run("nil persister never fails", func(t *testing.T) {
		store := Load(nil)
		_, err := store.ToggleFavorite("1")
		assert.NoError(t, err)
	})
}

func TestStore_SQLiteRoundTrip(t *testing.T) {
	dbPath := "./test_userstate_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	sqlStore, err := storage.NewStore(dbPath)
	require.NoError(t, err)
	defer func() {
		sqlStore.Close()
		os.Remove(dbPath)
	}()

	slot := sqlStore.Slot("library-user-state")
	store := Load(slot)

	_, err = store.ToggleFavorite("2")
	require.NoError(t, err)
	require.NoError(t, store.RecordProgress("2", 30, 60))
	_, err = store.AddAnnotation("2", 15, "cross-reference")
	require.NoError(t, err)

	// The persisted form must round-trip byte for byte.
	reloaded := Load(sqlStore.Slot("library-user-state"))
	assert.Equal(t, marshalSnapshot(t, store), marshalSnapshot(t, reloaded))
}

// marshalSnapshot renders a store's state in its persisted form.
func marshalSnapshot(t *testing.T, store *Store) string {
	t.Helper()
	data, err := json.Marshal(store.Snapshot())
	require.NoError(t, err)
	return string(data)
}
