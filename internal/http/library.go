package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lexshelf/lexshelf/internal/catalog"
	"github.com/lexshelf/lexshelf/internal/library"
)

// LibraryController serves the read-only catalog views: the full book
// list, single books, search and the area groupings.
type LibraryController struct {
	lib *library.Library
}

func NewLibraryController(lib *library.Library) *LibraryController {
	return &LibraryController{lib: lib}
}

func (controller *LibraryController) GetAllBooks(c *gin.Context) {
	books := controller.lib.Books()
	c.JSON(http.StatusOK, gin.H{"books": books, "count": len(books)})
}

func (controller *LibraryController) GetBookByID(c *gin.Context) {
	book, err := controller.lib.GetBook(c.Param("id"))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "get book")
		return
	}
	c.JSON(http.StatusOK, book)
}

// SearchBooks handles /api/search?q=...&limit=N. Without a limit it
// returns every match; with one it behaves as the suggestion endpoint.
func (controller *LibraryController) SearchBooks(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		respondBadRequest(c, "q query parameter is required")
		return
	}

	books := controller.lib.Search(query)
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			respondBadRequest(c, "invalid limit")
			return
		}
		if limit > 0 && len(books) > limit {
			books = books[:limit]
		}
	}

	c.JSON(http.StatusOK, gin.H{"books": books, "count": len(books)})
}

// SuggestBooks serves the search typeahead, capped at the configured
// suggestion limit.
func (controller *LibraryController) SuggestBooks(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		respondBadRequest(c, "q query parameter is required")
		return
	}
	books := controller.lib.Suggest(query)
	c.JSON(http.StatusOK, gin.H{"books": books, "count": len(books)})
}

func (controller *LibraryController) GetAreas(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"areas": controller.lib.Areas()})
}

func (controller *LibraryController) GetAreaBooks(c *gin.Context) {
	area := c.Param("area")
	controller.lib.SetSelectedArea(area)
	books := controller.lib.BooksByArea(area)
	c.JSON(http.StatusOK, gin.H{"area": area, "books": books, "count": len(books)})
}
