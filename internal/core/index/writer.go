package index

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/docsync-io/docsync/internal/core"
	"github.com/docsync-io/docsync/internal/models"
)

// positioned carries one chunk body and its stable position through the
// embed/persist stages.
type positioned struct {
	Pos  int
	Text string
}

// Writer owns the chunk side of the vector index: it embeds chunk texts in
// batches and writes them keyed by (document_id, position), tagged with the
// document's owner/visibility/filename for query-side filtering.
type Writer struct {
	store     core.MetadataStore
	embedder  core.EmbeddingProvider
	batchSize int
}

var _ core.VectorIndex = (*Writer)(nil)

func NewWriter(store core.MetadataStore, embedder core.EmbeddingProvider, batchSize int) *Writer {
	if batchSize <= 0 {
		batchSize = 16
	}
	return &Writer{store: store, embedder: embedder, batchSize: batchSize}
}

// Purge removes every chunk for the document; removing none is a no-op.
func (w *Writer) Purge(ctx context.Context, documentID string) error {
	return w.store.DeleteChunksByDocument(ctx, documentID)
}

// Upsert embeds and persists the chunk sequence, returning how many chunks
// were written. The producer and the embed/persist sink run as errgroup
// stages so a failure in either cancels the other. Any failure here means the
// purge has already happened and the new generation is incomplete, so the
// error is always a PartialWriteError.
func (w *Writer) Upsert(ctx context.Context, doc *models.Document, texts []string) (int, error) {
	if len(texts) == 0 {
		return 0, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	in := make(chan positioned, 8)

	g.Go(func() error {
		defer close(in)
		for i, t := range texts {
			select {
			case in <- positioned{Pos: i, Text: t}:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	var written int
	g.Go(func() error {
		n, err := w.embedAndPersist(gctx, doc, in)
		written = n
		return err
	})

	if err := g.Wait(); err != nil {
		return written, &core.PartialWriteError{
			DocumentID: doc.ID,
			Written:    written,
			Total:      len(texts),
			Err:        err,
		}
	}
	return written, nil
}

// embedAndPersist consumes chunks, embeds them in batches, and writes each
// batch to the store. Batching bounds memory and keeps embedding requests a
// reasonable size.
func (w *Writer) embedAndPersist(ctx context.Context, doc *models.Document, in <-chan positioned) (int, error) {
	var written int

	flush := func(items []positioned) error {
		if len(items) == 0 {
			return nil
		}

		texts := make([]string, len(items))
		for idx := range items {
			texts[idx] = items[idx].Text
		}

		vecs, err := w.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			return fmt.Errorf("embed: %w", err)
		}
		if len(vecs) != len(items) {
			return fmt.Errorf("embed size mismatch: got %d want %d", len(vecs), len(items))
		}

		rows := make([]models.DocumentChunk, len(items))
		for k := range items {
			rows[k] = models.DocumentChunk{
				ID:         uuid.NewString(),
				DocumentID: doc.ID,
				Position:   items[k].Pos,
				Text:       items[k].Text,
				Embedding:  vecs[k],
				OwnerID:    doc.OwnerID,
				IsPublic:   doc.IsPublic,
				FileName:   doc.FileName,
				CreatedAt:  time.Now(),
			}
		}
		if err := w.store.InsertDocumentChunks(ctx, rows); err != nil {
			return fmt.Errorf("insert chunks: %w", err)
		}
		written += len(rows)
		return nil
	}

	batch := make([]positioned, 0, w.batchSize)
	for c := range in {
		batch = append(batch, c)
		if len(batch) == w.batchSize {
			if err := flush(batch); err != nil {
				return written, err
			}
			batch = batch[:0]
		}
	}
	if err := flush(batch); err != nil {
		return written, err
	}
	return written, nil
}

// Search embeds the query text and returns the nearest chunks of a document.
func (w *Writer) Search(ctx context.Context, documentID, query string, limit int) ([]models.DocumentChunk, error) {
	if limit <= 0 {
		limit = 5
	}
	vecs, err := w.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vecs) != 1 {
		return nil, fmt.Errorf("embed query: got %d vectors", len(vecs))
	}
	return w.store.SearchDocumentChunks(ctx, documentID, vecs[0], limit)
}
