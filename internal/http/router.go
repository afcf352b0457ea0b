package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lexshelf/lexshelf/internal/library"
)

// RouterConfig contains the dependencies and configuration needed to
// create the HTTP router.
type RouterConfig struct {
	Library *library.Library

	// Application info
	Version string
}

// NewRouter wires every API route. The controllers are the only
// mutation paths into the library; no other entry points exist.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	libraryController := NewLibraryController(cfg.Library)
	stateController := NewUserStateController(cfg.Library)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": cfg.Version})
	})

	api := router.Group("/api")
	{
		api.GET("/books", libraryController.GetAllBooks)
		api.GET("/books/:id", libraryController.GetBookByID)
		api.GET("/search", libraryController.SearchBooks)
		api.GET("/search/suggestions", libraryController.SuggestBooks)
		api.GET("/areas", libraryController.GetAreas)
		api.GET("/areas/:area/books", libraryController.GetAreaBooks)

		api.POST("/books/:id/favorite", stateController.ToggleFavorite)
		api.GET("/favorites", stateController.GetFavorites)

		api.PUT("/books/:id/progress", stateController.RecordProgress)
		api.GET("/books/:id/progress", stateController.GetProgress)
		api.GET("/reading", stateController.GetContinueReading)

		api.POST("/books/:id/annotations", stateController.AddAnnotation)
		api.GET("/books/:id/annotations", stateController.GetAnnotations)
		api.DELETE("/books/:id/annotations/:annotationId", stateController.DeleteAnnotation)
	}

	return router
}
