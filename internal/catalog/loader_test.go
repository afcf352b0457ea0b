package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexshelf/lexshelf/internal/entities"
)

func TestParse(t *testing.T) {
	t.Run("decodes a full record", func(t *testing.T) {
		data := `[{"id": "1", "title": "Civil Code", "area": "Civil",
			"description": "Annotated edition", "cover_image": "/covers/1.jpg"}]`

		books, err := Parse(strings.NewReader(data))
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, entities.Book{
			ID:          "1",
			Title:       "Civil Code",
			Area:        "Civil",
			Description: "Annotated edition",
			CoverImage:  "/covers/1.jpg",
		}, books[0])
	})

	t.Run("accepts integer ids", func(t *testing.T) {
		data := `[{"id": 42, "title": "Criminal Basics", "area": "Criminal"}]`

		books, err := Parse(strings.NewReader(data))
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "42", books[0].ID)
	})

	t.Run("substitutes sentinel for missing area", func(t *testing.T) {
		data := `[{"id": "1", "title": "Orphan"}]`

		books, err := Parse(strings.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, entities.AreaUncategorized, books[0].Area)
	})

	t.Run("rejects a record without title", func(t *testing.T) {
		data := `[{"id": "1", "title": "Civil Code", "area": "Civil"}, {"id": "2"}]`

		books, err := Parse(strings.NewReader(data))
		assert.Nil(t, books)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "catalog record 1")
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		_, err := Parse(strings.NewReader(`{"not": "an array"`))
		assert.Error(t, err)
	})
}

func TestLoadFile(t *testing.T) {
	t.Run("loads a dataset from disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.json")
		err := os.WriteFile(path, []byte(`[
			{"id": "1", "title": "Civil Code", "area": "Civil"},
			{"id": "2", "title": "Criminal Basics", "area": "Criminal"}
		]`), 0o644)
		require.NoError(t, err)

		books, err := LoadFile(path)
		require.NoError(t, err)
		assert.Len(t, books, 2)
	})

	t.Run("fails for a missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})
}
