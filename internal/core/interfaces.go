package core

import (
	"context"

	"github.com/docsync-io/docsync/internal/models"
)

// MetadataStore defines all persistence operations the pipeline and handlers need.
// It abstracts Postgres/pgvector so higher layers never depend on a specific DB.
type MetadataStore interface {
	CreateDocument(ctx context.Context, doc *models.Document) error
	GetDocumentByID(ctx context.Context, id string) (*models.Document, error)
	ListDocumentsByOwner(ctx context.Context, ownerID string) ([]models.Document, error)
	UpdateDocument(ctx context.Context, id string, patch models.DocumentPatch) (*models.Document, error)
	UpdateChunkCount(ctx context.Context, id string, count int) error
	DeleteDocument(ctx context.Context, id string) (bool, error)

	InsertDocumentChunks(ctx context.Context, chunks []models.DocumentChunk) error
	DeleteChunksByDocument(ctx context.Context, documentID string) error
	CountChunksByDocument(ctx context.Context, documentID string) (int, error)
	SearchDocumentChunks(ctx context.Context, documentID string, queryVec []float32, limit int) ([]models.DocumentChunk, error)

	Close() error
}

// EmbeddingProvider turns chunk texts into vectors (Gemini/OpenAI/etc).
type EmbeddingProvider interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Extractor converts a local file into an ordered sequence of text sections.
// Dispatch happens on the normalized file extension; section order (and empty
// sections) must be preserved so chunk positions stay stable on reprocessing.
type Extractor interface {
	Extract(ctx context.Context, path, extension string) ([]string, error)
}

// VectorIndex is the chunk side of the index: purge must be issued before
// upsert within one synchronization so readers never see mixed generations.
type VectorIndex interface {
	Purge(ctx context.Context, documentID string) error
	Upsert(ctx context.Context, doc *models.Document, texts []string) (int, error)
}

// ObjectClient defines interactions with S3 or any object storage.
// It's abstract so you can replace AWS with MinIO, GCP, etc. easily.
type ObjectClient interface {
	UploadFile(ctx context.Context, bucket, key string, data []byte, contentType string) (url string, err error)
	DeleteFile(ctx context.Context, bucket, key string) error
}
