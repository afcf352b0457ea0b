package entities

import "time"

type ReadingStatus string

const (
	StatusNotStarted ReadingStatus = "not-started"
	StatusInProgress ReadingStatus = "in-progress"
	StatusFinished   ReadingStatus = "finished"
)

// ReadingProgress tracks how far the user has read into a single book.
// Position is an opaque marker (page or scroll offset); TotalLength is
// zero when the book's length is unknown.
type ReadingProgress struct {
	BookID       string        `json:"book_id"`
	Position     int           `json:"position"`
	TotalLength  int           `json:"total_length,omitempty"`
	Status       ReadingStatus `json:"status"`
	LastOpenedAt time.Time     `json:"last_opened_at"`
}

// Annotation is a user note anchored to a location inside a book.
// Note may be empty for a pure highlight. IDs are unique within a
// book's annotation list.
type Annotation struct {
	ID        string    `json:"id"`
	Location  int       `json:"location"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// UserState is the full per-user state snapshot written to persistent
// storage after every mutation. Favorites keep insertion order;
// progress and annotations are keyed by book ID.
type UserState struct {
	Favorites   []string                   `json:"favorites"`
	Progress    map[string]ReadingProgress `json:"progress"`
	Annotations map[string][]Annotation    `json:"annotations"`
}

// StateBlob is a durable key-value slot holding one serialized
// UserState snapshot under a fixed namespace key.
type StateBlob struct {
	Key       string    `gorm:"primaryKey;size:128" json:"key"`
	Value     []byte    `gorm:"type:blob" json:"-"`
	UpdatedAt time.Time `json:"updated_at"`
}
