// Package library is the single entry point presentation code depends
// on. It composes the catalog index, the search engine and the user
// state store, and performs no logic of its own beyond delegation and
// the derived area view.
package library

import (
	"sync"

	"github.com/lexshelf/lexshelf/internal/catalog"
	"github.com/lexshelf/lexshelf/internal/entities"
	"github.com/lexshelf/lexshelf/internal/search"
	"github.com/lexshelf/lexshelf/internal/userstate"
)

// Options carries the presentation-tuning knobs: the minimum query
// length before search returns anything and the cap on suggestion
// results. Zero values fall back to the package defaults.
type Options struct {
	MinQueryLength  int
	SuggestionLimit int
}

// DefaultSuggestionLimit caps suggestion dropdown results.
const DefaultSuggestionLimit = 5

type Library struct {
	catalog *catalog.Index
	engine  *search.Engine
	state   *userstate.Store

	suggestionLimit int

	mu           sync.Mutex
	selectedArea string
}

// New wires the façade from an already-built index and user state
// store. The index must outlive the library; it is never mutated.
func New(idx *catalog.Index, state *userstate.Store, opts Options) *Library {
	limit := opts.SuggestionLimit
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}
	return &Library{
		catalog:         idx,
		engine:          search.NewEngine(opts.MinQueryLength),
		state:           state,
		suggestionLimit: limit,
	}
}

// Books returns the full catalog in input order.
func (l *Library) Books() []entities.Book {
	return l.catalog.Books()
}

func (l *Library) GetBook(id string) (*entities.Book, error) {
	return l.catalog.GetByID(id)
}

// Search returns all matches for the query in catalog order.
func (l *Library) Search(query string) []entities.Book {
	return l.engine.Search(query, l.catalog.Books(), 0)
}

// Suggest returns matches truncated to the configured suggestion
// limit, for typeahead views.
func (l *Library) Suggest(query string) []entities.Book {
	return l.engine.Search(query, l.catalog.Books(), l.suggestionLimit)
}

// Areas returns every subject area with its book count. The grouping
// is recomputed on demand; the catalog is small and static, so there
// is nothing worth caching here.
func (l *Library) Areas() []catalog.AreaCount {
	return l.catalog.Areas()
}

func (l *Library) BooksByArea(area string) []entities.Book {
	return l.catalog.ListByArea(area)
}

// SetSelectedArea remembers the area an area-browsing view is focused
// on.
func (l *Library) SetSelectedArea(area string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.selectedArea = area
}

func (l *Library) SelectedArea() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.selectedArea
}

// SelectedAreaBooks returns the books of the currently selected area,
// or nothing when no area is selected.
func (l *Library) SelectedAreaBooks() []entities.Book {
	area := l.SelectedArea()
	if area == "" {
		return []entities.Book{}
	}
	return l.catalog.ListByArea(area)
}

func (l *Library) ToggleFavorite(bookID string) (bool, error) {
	return l.state.ToggleFavorite(bookID)
}

func (l *Library) IsFavorite(bookID string) bool {
	return l.state.IsFavorite(bookID)
}

func (l *Library) Favorites() []entities.Book {
	return l.state.ListFavorites(l.catalog)
}

func (l *Library) RecordProgress(bookID string, position, totalLength int) error {
	return l.state.RecordProgress(bookID, position, totalLength)
}

func (l *Library) Progress(bookID string) entities.ReadingProgress {
	return l.state.GetProgress(bookID)
}

// ContinueReading returns in-progress books, most recently opened
// first.
func (l *Library) ContinueReading() []userstate.BookProgress {
	return l.state.ListInProgress(l.catalog)
}

func (l *Library) AddAnnotation(bookID string, location int, note string) (entities.Annotation, error) {
	return l.state.AddAnnotation(bookID, location, note)
}

func (l *Library) RemoveAnnotation(bookID, annotationID string) error {
	return l.state.RemoveAnnotation(bookID, annotationID)
}

func (l *Library) Annotations(bookID string) []entities.Annotation {
	return l.state.ListAnnotations(bookID)
}
