// Package userstate holds the per-user library state: favorites,
// reading progress and annotations. Every mutation is applied in
// memory and then written back to persistent storage as a full
// snapshot before the call returns, so a crash right after a
// successful call never loses that mutation.
package userstate

import (
	"encoding/json"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lexshelf/lexshelf/internal/catalog"
	"github.com/lexshelf/lexshelf/internal/entities"
)

// Persister reads and writes the serialized state blob. Load returns
// (nil, nil) when no state has ever been stored.
type Persister interface {
	Save(data []byte) error
	Load() ([]byte, error)
}

// BookProgress pairs a catalog book with the user's progress in it.
type BookProgress struct {
	Book     entities.Book            `json:"book"`
	Progress entities.ReadingProgress `json:"progress"`
}

// Store is the mutable per-user state. Its maps are not safe for
// concurrent mutation, so all access goes through the internal mutex;
// HTTP handlers run concurrently.
type Store struct {
	mu        sync.Mutex
	persister Persister

	favoriteIDs []string
	favoriteSet map[string]bool
	progress    map[string]entities.ReadingProgress
	annotations map[string][]entities.Annotation

	now func() time.Time
}

// Load builds a store from previously persisted state. Missing or
// corrupt persisted data never fails initialization: the store falls
// back to an empty state and logs a warning. A nil persister yields an
// in-memory-only store whose mutations never fail.
func Load(p Persister) *Store {
	s := &Store{
		persister:   p,
		favoriteSet: make(map[string]bool),
		progress:    make(map[string]entities.ReadingProgress),
		annotations: make(map[string][]entities.Annotation),
		now:         time.Now,
	}
	if p == nil {
		return s
	}

	data, err := p.Load()
	if err != nil {
		log.Printf("WARNING: failed to load persisted user state, starting empty: %v", err)
		return s
	}
	if len(data) == 0 {
		return s
	}

	var state entities.UserState
	if err := json.Unmarshal(data, &state); err != nil {
		log.Printf("WARNING: persisted user state is corrupt, starting empty: %v", err)
		return s
	}
	s.restore(state)
	return s
}

func (s *Store) restore(state entities.UserState) {
	for _, id := range state.Favorites {
		if !s.favoriteSet[id] {
			s.favoriteIDs = append(s.favoriteIDs, id)
			s.favoriteSet[id] = true
		}
	}
	for id, p := range state.Progress {
		s.progress[id] = p
	}
	for id, list := range state.Annotations {
		s.annotations[id] = list
	}
}

// Snapshot returns a copy of the current state in its persisted form.
func (s *Store) Snapshot() entities.UserState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() entities.UserState {
	state := entities.UserState{
		Favorites:   append([]string{}, s.favoriteIDs...),
		Progress:    make(map[string]entities.ReadingProgress, len(s.progress)),
		Annotations: make(map[string][]entities.Annotation, len(s.annotations)),
	}
	for id, p := range s.progress {
		state.Progress[id] = p
	}
	for id, list := range s.annotations {
		state.Annotations[id] = append([]entities.Annotation{}, list...)
	}
	return state
}

// persistLocked writes the full state snapshot through the persister.
// The in-memory mutation has already been applied when this runs; a
// storage failure is reported but never rolls it back.
func (s *Store) persistLocked() error {
	if s.persister == nil {
		return nil
	}
	data, err := json.Marshal(s.snapshotLocked())
	if err != nil {
		return &PersistenceError{Op: "encode", Err: err}
	}
	if err := s.persister.Save(data); err != nil {
		return &PersistenceError{Op: "save", Err: err}
	}
	return nil
}

// ToggleFavorite flips the favorite flag of a book and returns the new
// state. Favorites keep insertion order for display.
func (s *Store) ToggleFavorite(bookID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.favoriteSet[bookID] {
		delete(s.favoriteSet, bookID)
		for i, id := range s.favoriteIDs {
			if id == bookID {
				s.favoriteIDs = append(s.favoriteIDs[:i], s.favoriteIDs[i+1:]...)
				break
			}
		}
		return false, s.persistLocked()
	}

	s.favoriteSet[bookID] = true
	s.favoriteIDs = append(s.favoriteIDs, bookID)
	return true, s.persistLocked()
}

func (s *Store) IsFavorite(bookID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favoriteSet[bookID]
}

// ListFavorites resolves the favorite ids against the catalog in
// insertion order. Ids no longer present in the catalog are silently
// skipped; a stale favorite is not an error.
func (s *Store) ListFavorites(idx *catalog.Index) []entities.Book {
	s.mu.Lock()
	defer s.mu.Unlock()

	books := []entities.Book{}
	for _, id := range s.favoriteIDs {
		book, err := idx.GetByID(id)
		if err != nil {
			continue
		}
		books = append(books, *book)
	}
	return books
}

// RecordProgress upserts the reading progress of a book. A
// totalLength of zero or less means unknown; a previously known total
// is retained so status derivation keeps its baseline.
func (s *Store) RecordProgress(bookID string, position, totalLength int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if totalLength <= 0 {
		if existing, ok := s.progress[bookID]; ok {
			totalLength = existing.TotalLength
		} else {
			totalLength = 0
		}
	}

	s.progress[bookID] = entities.ReadingProgress{
		BookID:       bookID,
		Position:     position,
		TotalLength:  totalLength,
		Status:       deriveStatus(position, totalLength),
		LastOpenedAt: s.now(),
	}
	return s.persistLocked()
}

// GetProgress returns the recorded progress for a book, or a
// not-started default when the book was never opened.
func (s *Store) GetProgress(bookID string) entities.ReadingProgress {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.progress[bookID]; ok {
		return p
	}
	return entities.ReadingProgress{
		BookID: bookID,
		Status: entities.StatusNotStarted,
	}
}

// ListInProgress returns the books currently being read, most recently
// opened first — the ordering the continue-reading view depends on.
// Progress referencing books missing from the catalog is skipped.
func (s *Store) ListInProgress(idx *catalog.Index) []BookProgress {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := []BookProgress{}
	for id, p := range s.progress {
		if p.Status != entities.StatusInProgress {
			continue
		}
		book, err := idx.GetByID(id)
		if err != nil {
			continue
		}
		entries = append(entries, BookProgress{Book: *book, Progress: p})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Progress.LastOpenedAt.After(entries[j].Progress.LastOpenedAt)
	})
	return entries
}

// AddAnnotation creates an annotation for a book and keeps the book's
// list sorted by location. Annotations at the same location stay
// distinct, in insertion order.
func (s *Store) AddAnnotation(bookID string, location int, note string) (entities.Annotation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	annotation := entities.Annotation{
		ID:        uuid.NewString(),
		Location:  location,
		Note:      note,
		CreatedAt: s.now(),
	}

	list := s.annotations[bookID]
	pos := sort.Search(len(list), func(i int) bool {
		return list[i].Location > location
	})
	list = append(list, entities.Annotation{})
	copy(list[pos+1:], list[pos:])
	list[pos] = annotation
	s.annotations[bookID] = list

	return annotation, s.persistLocked()
}

// RemoveAnnotation deletes an annotation by id. An unknown id is a
// no-op, so a double invocation from the presentation layer is safe.
func (s *Store) RemoveAnnotation(bookID, annotationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.annotations[bookID]
	for i, annotation := range list {
		if annotation.ID == annotationID {
			s.annotations[bookID] = append(list[:i], list[i+1:]...)
			return s.persistLocked()
		}
	}
	return nil
}

// ListAnnotations returns a book's annotations ordered by location.
func (s *Store) ListAnnotations(bookID string) []entities.Annotation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entities.Annotation{}, s.annotations[bookID]...)
}

func deriveStatus(position, totalLength int) entities.ReadingStatus {
	switch {
	case totalLength > 0 && position >= totalLength:
		return entities.StatusFinished
	case position > 0:
		return entities.StatusInProgress
	default:
		return entities.StatusNotStarted
	}
}
