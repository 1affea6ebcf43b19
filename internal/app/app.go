package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/docsync-io/docsync/internal/config"
	"github.com/docsync-io/docsync/internal/core"
	db "github.com/docsync-io/docsync/internal/core/database"
	"github.com/docsync-io/docsync/internal/core/extract"
	"github.com/docsync-io/docsync/internal/core/fetch"
	"github.com/docsync-io/docsync/internal/core/index"
	"github.com/docsync-io/docsync/internal/core/llm"
	"github.com/docsync-io/docsync/internal/core/objectstore"
	"github.com/docsync-io/docsync/internal/core/pipeline"
)

type App struct {
	Store    core.MetadataStore
	Objects  core.ObjectClient
	Embedder *llm.GeminiEmbedder
	Pipeline *pipeline.Pipeline
	Server   *Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	appCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	store, err := db.NewDatabaseClient(appCtx, cfg)
	if err != nil {
		return nil, err
	}
	log.Println("Database initialized and ready.")

	objects, err := objectstore.NewS3Client(appCtx, cfg)
	if err != nil {
		return nil, err
	}
	log.Println("Object client initialized and ready.")

	embedder, err := llm.NewGeminiEmbedder(appCtx, cfg.AIAPIKey, cfg.EmbedModel)
	if err != nil {
		return nil, fmt.Errorf("couldn't initialize the embedder, %w", err)
	}

	fetcher := fetch.NewFetcher(time.Duration(cfg.FetchTimeoutSec) * time.Second)
	extractor := extract.NewDocconvExtractor()
	writer := index.NewWriter(store, embedder, cfg.EmbedBatchSize)

	pipe := pipeline.New(store, objects, fetcher, extractor, writer, cfg.BucketName, pipeline.Config{
		ChunkSize:    cfg.ChunkSize,
		ChunkOverlap: cfg.ChunkOverlap,
	})

	server := NewServer(cfg, store, pipe, writer)

	return &App{
		Store:    store,
		Objects:  objects,
		Embedder: embedder,
		Pipeline: pipe,
		Server:   server,
	}, nil
}

func (a *App) Close() {
	if a.Embedder != nil {
		_ = a.Embedder.Close()
	}
	if a.Store != nil {
		_ = a.Store.Close()
	}
}
