package core

import (
	"errors"
	"fmt"
)

// Stage names the pipeline state a failure happened in.
type Stage string

const (
	StageFetching   Stage = "fetching"
	StageExtracting Stage = "extracting"
	StageChunking   Stage = "chunking"
	StagePurging    Stage = "purging"
	StageUpserting  Stage = "upserting"
)

// NotFoundError: the document metadata record does not exist. Permanent.
type NotFoundError struct {
	DocumentID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("document %s: not found", e.DocumentID)
}

// TransferFailedError: the remote source answered with a non-success status or
// the stream terminated early. Transient; the caller decides on retries.
type TransferFailedError struct {
	DocumentID string
	URL        string
	Err        error
}

func (e *TransferFailedError) Error() string {
	return fmt.Sprintf("document %s: transfer from %s failed: %v", e.DocumentID, e.URL, e.Err)
}

func (e *TransferFailedError) Unwrap() error { return e.Err }

// UnsupportedFormatError: no extractor handles the extension. Permanent.
type UnsupportedFormatError struct {
	DocumentID string
	Extension  string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("document %s: unsupported file type: %s", e.DocumentID, e.Extension)
}

// PartialWriteError: the purge already ran and the upsert did not complete, so
// the index holds fewer chunks than the latest content produced. chunk_count
// is intentionally left stale as the retry signal. Transient.
type PartialWriteError struct {
	DocumentID string
	Written    int
	Total      int
	Err        error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("document %s: partial write, %d of %d chunks indexed: %v",
		e.DocumentID, e.Written, e.Total, e.Err)
}

func (e *PartialWriteError) Unwrap() error { return e.Err }

// SyncInProgressError: another synchronization holds the per-document lock.
// Transient; retry after the in-flight sync finishes.
type SyncInProgressError struct {
	DocumentID string
}

func (e *SyncInProgressError) Error() string {
	return fmt.Sprintf("document %s: synchronization already in progress", e.DocumentID)
}

// StageError wraps an unclassified failure with its document and stage so the
// caller keeps enough context to log and decide.
type StageError struct {
	DocumentID string
	Stage      Stage
	Err        error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("document %s: %s: %v", e.DocumentID, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Retryable reports whether the caller may retry the operation. NotFound and
// UnsupportedFormat are permanent; everything else in the taxonomy is a
// transient condition of one of the external systems.
func Retryable(err error) bool {
	var (
		notFound    *NotFoundError
		unsupported *UnsupportedFormatError
	)
	if errors.As(err, &notFound) || errors.As(err, &unsupported) {
		return false
	}
	var (
		transfer   *TransferFailedError
		partial    *PartialWriteError
		inProgress *SyncInProgressError
	)
	return errors.As(err, &transfer) || errors.As(err, &partial) || errors.As(err, &inProgress)
}
