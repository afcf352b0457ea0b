package entities

// AreaUncategorized is substituted when a catalog record carries no
// subject area. A book always has exactly one non-empty area.
const AreaUncategorized = "Uncategorized"

// Book is a single catalog entry. The catalog index owns all Book
// values; every other entity refers to a book by its ID only.
type Book struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Area        string `json:"area"`
	Description string `json:"description,omitempty"`
	CoverImage  string `json:"cover_image,omitempty"`
}
