package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsync-io/docsync/internal/core"
	"github.com/docsync-io/docsync/internal/models"
)

// stubStore satisfies core.MetadataStore with canned documents; chunk
// operations are unused by the handlers under test here.
type stubStore struct {
	docs map[string]*models.Document
}

func (s *stubStore) CreateDocument(ctx context.Context, doc *models.Document) error { return nil }

func (s *stubStore) GetDocumentByID(ctx context.Context, id string) (*models.Document, error) {
	return s.docs[id], nil
}

func (s *stubStore) ListDocumentsByOwner(ctx context.Context, ownerID string) ([]models.Document, error) {
	var out []models.Document
	for _, d := range s.docs {
		if d.OwnerID == ownerID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (s *stubStore) UpdateDocument(ctx context.Context, id string, patch models.DocumentPatch) (*models.Document, error) {
	d := s.docs[id]
	if d == nil {
		return nil, nil
	}
	if patch.FileName != nil {
		d.FileName = *patch.FileName
	}
	if patch.IsPublic != nil {
		d.IsPublic = *patch.IsPublic
	}
	return d, nil
}

func (s *stubStore) UpdateChunkCount(ctx context.Context, id string, count int) error { return nil }
func (s *stubStore) DeleteDocument(ctx context.Context, id string) (bool, error)      { return false, nil }
func (s *stubStore) InsertDocumentChunks(ctx context.Context, chunks []models.DocumentChunk) error {
	return nil
}
func (s *stubStore) DeleteChunksByDocument(ctx context.Context, documentID string) error { return nil }
func (s *stubStore) CountChunksByDocument(ctx context.Context, documentID string) (int, error) {
	return 0, nil
}
func (s *stubStore) SearchDocumentChunks(ctx context.Context, documentID string, queryVec []float32, limit int) ([]models.DocumentChunk, error) {
	return nil, nil
}
func (s *stubStore) Close() error { return nil }

func newTestRouter(store core.MetadataStore) http.Handler {
	h := NewDocumentHandler(store, nil, nil)
	r := chi.NewRouter()
	r.Get("/api/documents/{document_id}", h.GetDocument)
	r.Get("/api/documents", h.ListDocuments)
	r.Put("/api/documents/{document_id}", h.UpdateDocument)
	return r
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) response {
	t.Helper()
	var resp response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestGetDocumentSuccessEnvelope(t *testing.T) {
	store := &stubStore{docs: map[string]*models.Document{
		"d1": {ID: "d1", OwnerID: "u1", FileName: "notes.txt", ChunkCount: 3},
	}}
	router := newTestRouter(store)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/documents/d1", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.Equal(t, "success", resp.Status)
	assert.NotEmpty(t, resp.Message)
	assert.NotNil(t, resp.Data)
}

func TestGetDocumentNotFoundEnvelope(t *testing.T) {
	router := newTestRouter(&stubStore{docs: map[string]*models.Document{}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/documents/ghost", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "Document not found", resp.Message)
}

func TestListDocumentsRequiresOwner(t *testing.T) {
	router := newTestRouter(&stubStore{docs: map[string]*models.Document{}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/documents", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "error", decodeEnvelope(t, rec).Status)
}

func TestWritePipelineErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"not found", &core.NotFoundError{DocumentID: "d1"}, http.StatusNotFound},
		{"unsupported", &core.UnsupportedFormatError{Extension: "xyz"}, http.StatusBadRequest},
		{"in progress", &core.SyncInProgressError{DocumentID: "d1"}, http.StatusConflict},
		{"transfer failed", &core.TransferFailedError{DocumentID: "d1"}, http.StatusBadGateway},
		{"partial write", &core.PartialWriteError{DocumentID: "d1"}, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writePipelineError(rec, tt.err)

			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, "error", decodeEnvelope(t, rec).Status)
		})
	}
}
