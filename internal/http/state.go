package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lexshelf/lexshelf/internal/catalog"
	"github.com/lexshelf/lexshelf/internal/library"
	"github.com/lexshelf/lexshelf/internal/userstate"
)

// UserStateController serves the mutable per-user views: favorites,
// reading progress and annotations. A failed state write-back does not
// fail the request — the mutation has been applied in memory — but the
// response carries "persisted": false so the client can warn the user.
type UserStateController struct {
	lib *library.Library
}

func NewUserStateController(lib *library.Library) *UserStateController {
	return &UserStateController{lib: lib}
}

// persisted maps a mutation's error to the persisted flag. Anything
// other than a PersistenceError is a programming error upstream and is
// re-reported as such.
func persisted(c *gin.Context, err error, context string) (bool, bool) {
	if err == nil {
		return true, true
	}
	var perr *userstate.PersistenceError
	if errors.As(err, &perr) {
		log.Printf("WARNING: %s: %v", context, err)
		return false, true
	}
	respondInternalError(c, err, context)
	return false, false
}

// bookExists resolves the book id in the URL, responding 404 for
// unknown books.
func (controller *UserStateController) bookExists(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := controller.lib.GetBook(id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respondNotFound(c, "book")
		} else {
			respondInternalError(c, err, "resolve book")
		}
		return "", false
	}
	return id, true
}

func (controller *UserStateController) ToggleFavorite(c *gin.Context) {
	id, ok := controller.bookExists(c)
	if !ok {
		return
	}

	favorite, err := controller.lib.ToggleFavorite(id)
	stored, ok := persisted(c, err, "toggle favorite")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"book_id": id, "favorite": favorite, "persisted": stored})
}

func (controller *UserStateController) GetFavorites(c *gin.Context) {
	books := controller.lib.Favorites()
	c.JSON(http.StatusOK, gin.H{"books": books, "count": len(books)})
}

type progressRequest struct {
	Position    int `json:"position" binding:"min=0"`
	TotalLength int `json:"total_length"`
}

func (controller *UserStateController) RecordProgress(c *gin.Context) {
	id, ok := controller.bookExists(c)
	if !ok {
		return
	}

	var req progressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid progress payload: "+err.Error())
		return
	}

	err := controller.lib.RecordProgress(id, req.Position, req.TotalLength)
	stored, ok := persisted(c, err, "record progress")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": controller.lib.Progress(id), "persisted": stored})
}

func (controller *UserStateController) GetProgress(c *gin.Context) {
	id, ok := controller.bookExists(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, controller.lib.Progress(id))
}

func (controller *UserStateController) GetContinueReading(c *gin.Context) {
	entries := controller.lib.ContinueReading()
	c.JSON(http.StatusOK, gin.H{"reading": entries, "count": len(entries)})
}

type annotationRequest struct {
	Location int    `json:"location" binding:"min=0"`
	Note     string `json:"note"`
}

func (controller *UserStateController) AddAnnotation(c *gin.Context) {
	id, ok := controller.bookExists(c)
	if !ok {
		return
	}

	var req annotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid annotation payload: "+err.Error())
		return
	}

	annotation, err := controller.lib.AddAnnotation(id, req.Location, req.Note)
	stored, ok := persisted(c, err, "add annotation")
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, gin.H{"annotation": annotation, "persisted": stored})
}

func (controller *UserStateController) GetAnnotations(c *gin.Context) {
	id, ok := controller.bookExists(c)
	if !ok {
		return
	}
	annotations := controller.lib.Annotations(id)
	c.JSON(http.StatusOK, gin.H{"annotations": annotations, "count": len(annotations)})
}

// DeleteAnnotation removes one annotation. Deleting an id that does
// not exist still succeeds, so a double click cannot surface an error.
func (controller *UserStateController) DeleteAnnotation(c *gin.Context) {
	id, ok := controller.bookExists(c)
	if !ok {
		return
	}

	err := controller.lib.RemoveAnnotation(id, c.Param("annotationId"))
	if _, ok := persisted(c, err, "remove annotation"); !ok {
		return
	}
	c.Status(http.StatusNoContent)
}
