package models

import (
	"time"
)

// Document is the metadata record for an ingested document. The ID is assigned
// once at upload time and is the partition key for every chunk derived from it.
type Document struct {
	ID            string    `db:"id" json:"id"`
	OwnerID       string    `db:"owner_id" json:"owner_id"`
	FileName      string    `db:"file_name" json:"file_name"`
	FileExtension string    `db:"file_extension" json:"file_extension"` // lowercase, no dot
	SourceURL     string    `db:"source_url" json:"source_url"`         // where the original bytes live
	IsPublic      bool      `db:"is_public" json:"is_public"`
	ChunkCount    int       `db:"chunk_count" json:"chunk_count"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// DocumentPatch carries optional metadata edits; nil fields are left unchanged.
type DocumentPatch struct {
	FileName *string `json:"filename"`
	IsPublic *bool   `json:"is_public"`
}

// DocumentChunk is one indexed chunk of extracted text.
// Owner/visibility/filename are denormalized onto the chunk so the search
// path can filter without joining back to the documents table.
type DocumentChunk struct {
	ID         string    `db:"id" json:"id"`
	DocumentID string    `db:"document_id" json:"document_id"`
	Position   int       `db:"position" json:"position"`
	Text       string    `db:"text" json:"text"`
	Embedding  []float32 `db:"embedding" json:"embedding,omitempty"` // pgvector column
	OwnerID    string    `db:"owner_id" json:"owner_id"`
	IsPublic   bool      `db:"is_public" json:"is_public"`
	FileName   string    `db:"file_name" json:"file_name"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// SyncResult is what a synchronization reports upward on success.
type SyncResult struct {
	DocumentID string `json:"document_id"`
	ChunkCount int    `json:"chunk_count"`
}
