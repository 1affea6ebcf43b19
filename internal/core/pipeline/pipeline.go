package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/docsync-io/docsync/internal/core"
	"github.com/docsync-io/docsync/internal/core/chunker"
	"github.com/docsync-io/docsync/internal/core/extract"
	"github.com/docsync-io/docsync/internal/core/fetch"
	"github.com/docsync-io/docsync/internal/core/objectstore"
	"github.com/docsync-io/docsync/internal/models"
)

// ContentFetcher resolves document content to a scoped local file, from inline
// bytes or from a stored URL.
type ContentFetcher interface {
	FromBytes(data []byte, extension string) (*fetch.RawContent, error)
	Fetch(ctx context.Context, documentID, url, extension string) (*fetch.RawContent, error)
}

// Config tunes chunking. Both values are runes; overlap must stay below size.
type Config struct {
	ChunkSize    int
	ChunkOverlap int
}

// Pipeline sequences fetch -> extract -> chunk -> purge -> upsert for one
// document at a time per document ID. It is the only writer of chunk_count
// and the only code path that mutates the vector index.
type Pipeline struct {
	store     core.MetadataStore
	objects   core.ObjectClient
	fetcher   ContentFetcher
	extractor core.Extractor
	index     core.VectorIndex
	bucket    string
	cfg       Config
	locks     *docLocks
}

func New(store core.MetadataStore, objects core.ObjectClient, fetcher ContentFetcher, extractor core.Extractor, index core.VectorIndex, bucket string, cfg Config) *Pipeline {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 1000
	}
	if cfg.ChunkOverlap < 0 || cfg.ChunkOverlap >= cfg.ChunkSize {
		cfg.ChunkOverlap = 0
	}
	return &Pipeline{
		store:     store,
		objects:   objects,
		fetcher:   fetcher,
		extractor: extractor,
		index:     index,
		bucket:    bucket,
		cfg:       cfg,
		locks:     newDocLocks(),
	}
}

// Upload registers a new document from inline bytes: the original file goes
// to object storage, a metadata record is created, then the content is
// synchronized into the index. The format is checked before anything is
// created, so an unsupported upload leaves no trace.
func (p *Pipeline) Upload(ctx context.Context, ownerID, filename string, isPublic bool, data []byte) (*models.Document, error) {
	ext := extract.NormalizeExtension(filepath.Ext(filename))
	if !extract.Supported(ext) {
		return nil, &core.UnsupportedFormatError{Extension: ext}
	}

	docID := uuid.NewString()
	cleanName := filepath.Base(filename)
	key := objectKey(ownerID, docID, cleanName)

	url, err := p.objects.UploadFile(ctx, p.bucket, key, data, contentTypeFor(ext))
	if err != nil {
		return nil, fmt.Errorf("store original: %w", err)
	}

	now := time.Now()
	doc := &models.Document{
		ID:            docID,
		OwnerID:       ownerID,
		FileName:      cleanName,
		FileExtension: ext,
		SourceURL:     url,
		IsPublic:      isPublic,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := p.store.CreateDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("create document metadata: %w", err)
	}

	raw, err := p.fetcher.FromBytes(data, ext)
	if err != nil {
		return doc, &core.StageError{DocumentID: docID, Stage: core.StageFetching, Err: err}
	}
	if _, err := p.sync(ctx, doc, raw); err != nil {
		return doc, err
	}
	return doc, nil
}

// Reprocess re-synchronizes a stored document: metadata is looked up, content
// is fetched back from its stored URL, and the chunk set is rebuilt. With
// unchanged content the resulting chunk sequence is identical.
func (p *Pipeline) Reprocess(ctx context.Context, documentID string) (*models.SyncResult, error) {
	doc, err := p.store.GetDocumentByID(ctx, documentID)
	if err != nil {
		return nil, &core.StageError{DocumentID: documentID, Stage: core.StageFetching, Err: err}
	}
	if doc == nil {
		return nil, &core.NotFoundError{DocumentID: documentID}
	}

	log.Printf("pipeline: fetching document %s from %s", documentID, doc.SourceURL)
	raw, err := p.fetcher.Fetch(ctx, documentID, doc.SourceURL, doc.FileExtension)
	if err != nil {
		return nil, err
	}

	n, err := p.sync(ctx, doc, raw)
	if err != nil {
		return nil, err
	}
	return &models.SyncResult{DocumentID: documentID, ChunkCount: n}, nil
}

// Delete removes the document and its chunks, chunks first: a crash between
// the two steps leaves at most orphaned chunks, never a metadata record
// pointing at a stale index. The stored original is removed best-effort.
func (p *Pipeline) Delete(ctx context.Context, documentID string) error {
	doc, err := p.store.GetDocumentByID(ctx, documentID)
	if err != nil {
		return fmt.Errorf("lookup document: %w", err)
	}
	if doc == nil {
		return &core.NotFoundError{DocumentID: documentID}
	}

	if err := p.index.Purge(ctx, documentID); err != nil {
		return &core.StageError{DocumentID: documentID, Stage: core.StagePurging, Err: err}
	}
	ok, err := p.store.DeleteDocument(ctx, documentID)
	if err != nil {
		return fmt.Errorf("delete document metadata: %w", err)
	}
	if !ok {
		return &core.NotFoundError{DocumentID: documentID}
	}

	if bucket, key, ok := objectstore.ParseURL(doc.SourceURL); ok {
		if err := p.objects.DeleteFile(ctx, bucket, key); err != nil {
			log.Printf("pipeline: delete stored object for %s: %v", documentID, err)
		}
	}
	return nil
}

// sync runs the extract -> chunk -> purge -> upsert sequence under the
// per-document lock. It always closes raw, exactly once, whatever the exit
// path. chunk_count is updated only after the upsert fully succeeds.
func (p *Pipeline) sync(ctx context.Context, doc *models.Document, raw *fetch.RawContent) (int, error) {
	defer raw.Close()

	if !p.locks.tryAcquire(doc.ID) {
		return 0, &core.SyncInProgressError{DocumentID: doc.ID}
	}
	defer p.locks.release(doc.ID)

	sections, err := p.extractor.Extract(ctx, raw.Path, raw.Extension)
	if err != nil {
		var unsupported *core.UnsupportedFormatError
		if errors.As(err, &unsupported) {
			return 0, &core.UnsupportedFormatError{DocumentID: doc.ID, Extension: unsupported.Extension}
		}
		return 0, &core.StageError{DocumentID: doc.ID, Stage: core.StageExtracting, Err: err}
	}

	texts := chunker.Split(chunker.Join(sections), p.cfg.ChunkSize, p.cfg.ChunkOverlap)
	log.Printf("pipeline: document %s produced %d chunks", doc.ID, len(texts))

	if err := p.index.Purge(ctx, doc.ID); err != nil {
		return 0, &core.StageError{DocumentID: doc.ID, Stage: core.StagePurging, Err: err}
	}

	n, err := p.index.Upsert(ctx, doc, texts)
	if err != nil {
		// chunk_count stays stale on purpose: a mismatch with the index is the
		// caller's signal that a retry is needed.
		return n, err
	}

	if err := p.store.UpdateChunkCount(ctx, doc.ID, n); err != nil {
		return n, &core.StageError{DocumentID: doc.ID, Stage: core.StageUpserting, Err: err}
	}
	doc.ChunkCount = n
	return n, nil
}

// objectKey creates a consistent S3 key layout.
func objectKey(ownerID, docID, filename string) string {
	return fmt.Sprintf("owners/%s/documents/%s/%s", ownerID, docID, filename)
}

func contentTypeFor(ext string) string {
	if ct := mime.TypeByExtension("." + ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
