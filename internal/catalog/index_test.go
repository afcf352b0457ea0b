package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexshelf/lexshelf/internal/entities"
)

func testBooks() []entities.Book {
	return []entities.Book{
		{ID: "1", Title: "Civil Code", Area: "Civil", Description: "Annotated civil code"},
		{ID: "2", Title: "Criminal Basics", Area: "Criminal"},
		{ID: "3", Title: "Civil Procedure", Area: "Civil"},
		{ID: "4", Title: "Constitutional Law", Area: "Constitutional"},
	}
}

func TestNewIndex(t *testing.T) {
	t.Run("resolves every book by id", func(t *testing.T) {
		books := testBooks()
		idx, err := NewIndex(books)
		require.NoError(t, err)

		for _, want := range books {
			got, err := idx.GetByID(want.ID)
			require.NoError(t, err)
			assert.Equal(t, want, *got)
		}
		assert.Equal(t, len(books), idx.Len())
	})

	t.Run("fails on duplicate ids", func(t *testing.T) {
		books := []entities.Book{
			{ID: "1", Title: "Civil Code", Area: "Civil"},
			{ID: "1", Title: "Criminal Basics", Area: "Criminal"},
		}

		idx, err := NewIndex(books)
		assert.Nil(t, idx)

		var dup *DuplicateIDError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "1", dup.ID)
	})

	t.Run("substitutes sentinel for missing area", func(t *testing.T) {
		idx, err := NewIndex([]entities.Book{{ID: "1", Title: "Orphan"}})
		require.NoError(t, err)

		book, err := idx.GetByID("1")
		require.NoError(t, err)
		assert.Equal(t, entities.AreaUncategorized, book.Area)
		assert.Len(t, idx.ListByArea(entities.AreaUncategorized), 1)
	})
}

func TestIndex_GetByID(t *testing.T) {
	idx, err := NewIndex(testBooks())
	require.NoError(t, err)

	t.Run("returns ErrNotFound for unknown id", func(t *testing.T) {
		book, err := idx.GetByID("missing")
		assert.Nil(t, book)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestIndex_ListByArea(t *testing.T) {
	idx, err := NewIndex(testBooks())
	require.NoError(t, err)

	t.Run("preserves catalog order within an area", func(t *testing.T) {
		civil := idx.ListByArea("Civil")
		require.Len(t, civil, 2)
		assert.Equal(t, "Civil Code", civil[0].Title)
		assert.Equal(t, "Civil Procedure", civil[1].Title)
	})

	t.Run("unknown area yields empty slice", func(t *testing.T) {
		assert.Empty(t, idx.ListByArea("Maritime"))
	})
}

func TestIndex_Areas(t *testing.T) {
	idx, err := NewIndex(testBooks())
	require.NoError(t, err)

	areas := idx.Areas()
	require.Len(t, areas, 3)

	// Sorted alphabetically, with counts matching ListByArea.
	assert.Equal(t, []AreaCount{
		{Area: "Civil", Count: 2},
		{Area: "Constitutional", Count: 1},
		{Area: "Criminal", Count: 1},
	}, areas)
	for _, area := range areas {
		assert.Len(t, idx.ListByArea(area.Area), area.Count)
	}
}
