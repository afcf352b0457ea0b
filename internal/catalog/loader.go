package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/lexshelf/lexshelf/internal/entities"
)

// record is the wire form of a catalog entry. IDs may arrive as JSON
// strings or numbers depending on how the dataset was exported.
type record struct {
	ID          json.Number `json:"id"`
	Title       string      `json:"title"`
	Area        string      `json:"area"`
	Description string      `json:"description"`
	CoverImage  string      `json:"cover_image"`
}

func (r record) validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required),
		validation.Field(&r.Title, validation.Required),
	)
}

// Parse decodes a JSON array of catalog records. Records missing an
// area are assigned the AreaUncategorized sentinel; records missing an
// id or title are rejected with the offending index.
func Parse(r io.Reader) ([]entities.Book, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var records []record
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	books := make([]entities.Book, 0, len(records))
	for i, rec := range records {
		if err := rec.validate(); err != nil {
			return nil, fmt.Errorf("catalog record %d: %w", i, err)
		}
		area := rec.Area
		if area == "" {
			area = entities.AreaUncategorized
		}
		books = append(books, entities.Book{
			ID:          rec.ID.String(),
			Title:       rec.Title,
			Area:        area,
			Description: rec.Description,
			CoverImage:  rec.CoverImage,
		})
	}

	return books, nil
}

// LoadFile reads and parses a catalog dataset from disk.
func LoadFile(path string) ([]entities.Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	books, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}
	return books, nil
}
