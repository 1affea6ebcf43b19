package app

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/docsync-io/docsync/internal/api/handlers"
	"github.com/docsync-io/docsync/internal/config"
	"github.com/docsync-io/docsync/internal/core"
	"github.com/docsync-io/docsync/internal/core/index"
	"github.com/docsync-io/docsync/internal/core/pipeline"
)

// Server wraps the HTTP server instance and its handlers.
type Server struct {
	httpServer *http.Server
}

// NewServer builds and wires all routes.
func NewServer(cfg *config.Config, store core.MetadataStore, pipe *pipeline.Pipeline, idx *index.Writer) *Server {
	docHandler := handlers.NewDocumentHandler(store, pipe, idx)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	// Uploads and reprocessing hold the request open for the whole pipeline
	// run, including the 300s fetch window.
	r.Use(middleware.Timeout(10 * time.Minute))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8888"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(api chi.Router) {
		api.Post("/documents/upload", docHandler.UploadDocument)
		api.Get("/documents", docHandler.ListDocuments)
		api.Get("/documents/{document_id}", docHandler.GetDocument)
		api.Put("/documents/{document_id}", docHandler.UpdateDocument)
		api.Delete("/documents/{document_id}", docHandler.DeleteDocument)
		api.Post("/documents/{document_id}/reprocess", docHandler.ReprocessDocument)
		api.Post("/documents/{document_id}/chunks/search", docHandler.SearchChunks)
	})

	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	return &Server{httpServer: httpSrv}
}

// Start runs the HTTP server.
func (s *Server) Start() {
	log.Printf("HTTP server listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down HTTP server...")
	return s.httpServer.Shutdown(ctx)
}
