// Package catalog holds the immutable book index built once at startup
// from the supplied dataset. After construction the index is read-only
// for the rest of the process lifetime.
package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/lexshelf/lexshelf/internal/entities"
)

// ErrNotFound is returned when a book ID is not present in the catalog.
// A miss is an expected case (stale favorite references and the like),
// never a fatal condition.
var ErrNotFound = errors.New("book not found")

// DuplicateIDError reports two catalog records sharing an ID. It is
// raised only while building the index and aborts startup.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate book id %q in catalog", e.ID)
}

// AreaCount is a subject area together with its number of books.
type AreaCount struct {
	Area  string `json:"area"`
	Count int    `json:"count"`
}

// Index provides id and area lookups over the catalog. Books keep
// their input order throughout.
type Index struct {
	books  []entities.Book
	byID   map[string]int
	byArea map[string][]int
}

// NewIndex builds the lookup structures from the supplied books.
// Records without an area get the AreaUncategorized sentinel.
func NewIndex(books []entities.Book) (*Index, error) {
	idx := &Index{
		books:  make([]entities.Book, 0, len(books)),
		byID:   make(map[string]int, len(books)),
		byArea: make(map[string][]int),
	}

	for _, book := range books {
		if book.Area == "" {
			book.Area = entities.AreaUncategorized
		}
		if _, exists := idx.byID[book.ID]; exists {
			return nil, &DuplicateIDError{ID: book.ID}
		}
		pos := len(idx.books)
		idx.books = append(idx.books, book)
		idx.byID[book.ID] = pos
		idx.byArea[book.Area] = append(idx.byArea[book.Area], pos)
	}

	return idx, nil
}

// Books returns all books in catalog order. The returned slice is
// shared; callers must not modify it.
func (idx *Index) Books() []entities.Book {
	return idx.books
}

// Len returns the number of books in the catalog.
func (idx *Index) Len() int {
	return len(idx.books)
}

// GetByID returns the book with the given ID or ErrNotFound.
func (idx *Index) GetByID(id string) (*entities.Book, error) {
	pos, ok := idx.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &idx.books[pos], nil
}

// ListByArea returns the books of one area in catalog order. An
// unknown area yields an empty slice.
func (idx *Index) ListByArea(area string) []entities.Book {
	positions := idx.byArea[area]
	books := make([]entities.Book, 0, len(positions))
	for _, pos := range positions {
		books = append(books, idx.books[pos])
	}
	return books
}

// Areas returns every subject area with its book count, sorted
// alphabetically for display.
func (idx *Index) Areas() []AreaCount {
	areas := make([]AreaCount, 0, len(idx.byArea))
	for area, positions := range idx.byArea {
		areas = append(areas, AreaCount{Area: area, Count: len(positions)})
	}
	sort.Slice(areas, func(i, j int) bool {
		return areas[i].Area < areas[j].Area
	})
	return areas
}
