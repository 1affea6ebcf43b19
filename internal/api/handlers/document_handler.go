package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/docsync-io/docsync/internal/core"
	"github.com/docsync-io/docsync/internal/core/index"
	"github.com/docsync-io/docsync/internal/core/pipeline"
	"github.com/docsync-io/docsync/internal/models"
)

type DocumentHandler struct {
	store    core.MetadataStore
	pipeline *pipeline.Pipeline
	index    *index.Writer
}

func NewDocumentHandler(store core.MetadataStore, pipe *pipeline.Pipeline, idx *index.Writer) *DocumentHandler {
	return &DocumentHandler{store: store, pipeline: pipe, index: idx}
}

// UploadDocument accepts a multipart upload and runs the full ingestion
// pipeline before answering, so the response carries the final chunk count.
func (h *DocumentHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(52 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	ownerID := r.FormValue("owner_id")
	if ownerID == "" {
		writeError(w, http.StatusBadRequest, "owner_id is required")
		return
	}
	isPublic, _ := strconv.ParseBool(r.FormValue("is_public"))

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("read upload: %v", err))
		return
	}

	doc, err := h.pipeline.Upload(r.Context(), ownerID, header.Filename, isPublic, data)
	if err != nil {
		log.Printf("upload failed for %q: %v", header.Filename, err)
		writePipelineError(w, err)
		return
	}

	writeSuccess(w, "File uploaded successfully", doc)
}

func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	documentID := chi.URLParam(r, "document_id")

	doc, err := h.store.GetDocumentByID(r.Context(), documentID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if doc == nil {
		writeError(w, http.StatusNotFound, "Document not found")
		return
	}
	writeSuccess(w, "Document fetched successfully", doc)
}

func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	ownerID := r.URL.Query().Get("owner_id")
	if ownerID == "" {
		writeError(w, http.StatusBadRequest, "owner_id is required")
		return
	}

	docs, err := h.store.ListDocumentsByOwner(r.Context(), ownerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeSuccess(w, "Documents fetched successfully", docs)
}

// UpdateDocument edits filename and/or visibility; absent fields are left as
// they are. Derived fields (chunk_count) are not editable here.
func (h *DocumentHandler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	documentID := chi.URLParam(r, "document_id")

	var patch models.DocumentPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	doc, err := h.store.UpdateDocument(r.Context(), documentID, patch)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if doc == nil {
		writeError(w, http.StatusNotFound, "Document not found")
		return
	}
	writeSuccess(w, "Document updated successfully", doc)
}

func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	documentID := chi.URLParam(r, "document_id")

	if err := h.pipeline.Delete(r.Context(), documentID); err != nil {
		writePipelineError(w, err)
		return
	}
	writeSuccess(w, "Document and its chunks deleted successfully", nil)
}

// ReprocessDocument rebuilds the document's chunk set from its stored source.
func (h *DocumentHandler) ReprocessDocument(w http.ResponseWriter, r *http.Request) {
	documentID := chi.URLParam(r, "document_id")

	res, err := h.pipeline.Reprocess(r.Context(), documentID)
	if err != nil {
		log.Printf("reprocess failed for %s: %v", documentID, err)
		writePipelineError(w, err)
		return
	}
	writeSuccess(w, fmt.Sprintf("Successfully reprocessed %d chunks", res.ChunkCount), res)
}

type searchChunksRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

// SearchChunks embeds the query and returns the nearest chunks of a document.
func (h *DocumentHandler) SearchChunks(w http.ResponseWriter, r *http.Request) {
	documentID := chi.URLParam(r, "document_id")

	var req searchChunksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	chunks, err := h.index.Search(r.Context(), documentID, req.Query, req.Limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeSuccess(w, "Chunks fetched successfully", chunks)
}
