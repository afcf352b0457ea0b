package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lexshelf/lexshelf/internal/catalog"
	"github.com/lexshelf/lexshelf/internal/config"
	http_controllers "github.com/lexshelf/lexshelf/internal/http"
	"github.com/lexshelf/lexshelf/internal/library"
	"github.com/lexshelf/lexshelf/internal/storage"
	"github.com/lexshelf/lexshelf/internal/userstate"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting lexshelf v%s", version)

	// Load and index the catalog. A duplicate id is a data integrity
	// violation and aborts startup.
	books, err := catalog.LoadFile(cfg.Catalog.Path)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	index, err := catalog.NewIndex(books)
	if err != nil {
		log.Fatalf("Failed to build catalog index: %v", err)
	}
	log.Printf("Catalog indexed: %d books across %d areas", index.Len(), len(index.Areas()))

	// Open the state database. If storage is unavailable the library
	// still runs on in-memory state only; mutations report persistence
	// errors instead of failing.
	var persister userstate.Persister
	store, err := storage.NewStore(cfg.Database.Path)
	if err != nil {
		log.Printf("WARNING: failed to open state database, user state will not survive restarts: %v", err)
	} else {
		defer func() {
			if err := store.Close(); err != nil {
				log.Printf("Error closing state database: %v", err)
			}
		}()
		persister = store.Slot(cfg.Database.StateKey)
	}

	state := userstate.Load(persister)

	lib := library.New(index, state, library.Options{
		MinQueryLength:  cfg.Search.MinQueryLength,
		SuggestionLimit: cfg.Search.SuggestionLimit,
	})

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Library: lib,
		Version: version,
	})

	Serve(router, cfg, nil)
}
