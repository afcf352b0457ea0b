// Package search implements the catalog search: a case-insensitive
// substring match over title, area and description. No tokenization,
// stemming or relevance ranking — matches keep catalog order so the
// result is a stable filter, predictable for suggestion dropdowns.
package search

import (
	"strings"

	"github.com/lexshelf/lexshelf/internal/entities"
)

// DefaultMinQueryLength is the minimum trimmed query length before the
// engine returns any matches. Shorter queries would match far too
// broadly on single characters.
const DefaultMinQueryLength = 2

type Engine struct {
	minQueryLength int
}

// NewEngine creates an engine. A non-positive minQueryLength falls
// back to DefaultMinQueryLength.
func NewEngine(minQueryLength int) *Engine {
	if minQueryLength <= 0 {
		minQueryLength = DefaultMinQueryLength
	}
	return &Engine{minQueryLength: minQueryLength}
}

// Search returns the books whose title, area or description contains
// the query, ignoring case. Books keep their input order. A limit
// greater than zero truncates the result; queries shorter than the
// configured minimum (after trimming) yield no matches.
func (e *Engine) Search(query string, books []entities.Book, limit int) []entities.Book {
	query = strings.TrimSpace(query)
	matches := []entities.Book{}
	if len(query) < e.minQueryLength {
		return matches
	}

	query = strings.ToLower(query)
	for _, book := range books {
		if !matchesBook(book, query) {
			continue
		}
		matches = append(matches, book)
		if limit > 0 && len(matches) >= limit {
			break
		}
	}
	return matches
}

func matchesBook(book entities.Book, loweredQuery string) bool {
	return strings.Contains(strings.ToLower(book.Title), loweredQuery) ||
		strings.Contains(strings.ToLower(book.Area), loweredQuery) ||
		strings.Contains(strings.ToLower(book.Description), loweredQuery)
}
