package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/docsync-io/docsync/internal/core"
)

// Every endpoint answers with the same envelope so clients can branch on
// status/message without caring which handler produced it.
type response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func writeSuccess(w http.ResponseWriter, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response{Status: "success", Message: message, Data: data})
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response{Status: "error", Message: message})
}

// writePipelineError maps the pipeline taxonomy onto HTTP codes. Retryable
// conditions land in the 5xx/409 range; permanent ones in 4xx.
func writePipelineError(w http.ResponseWriter, err error) {
	var (
		notFound    *core.NotFoundError
		unsupported *core.UnsupportedFormatError
		inProgress  *core.SyncInProgressError
		transfer    *core.TransferFailedError
		partial     *core.PartialWriteError
	)
	switch {
	case errors.As(err, &notFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &unsupported):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &inProgress):
		writeError(w, http.StatusConflict, err.Error())
	case errors.As(err, &transfer), errors.As(err, &partial):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
