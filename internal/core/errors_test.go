package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryableClassification(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"not found", &NotFoundError{DocumentID: "d1"}, false},
		{"unsupported format", &UnsupportedFormatError{DocumentID: "d1", Extension: "xyz"}, false},
		{"transfer failed", &TransferFailedError{DocumentID: "d1", URL: "http://x", Err: errors.New("boom")}, true},
		{"partial write", &PartialWriteError{DocumentID: "d1", Written: 2, Total: 5, Err: errors.New("boom")}, true},
		{"sync in progress", &SyncInProgressError{DocumentID: "d1"}, true},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, Retryable(tt.err))
		})
	}
}

func TestRetryableSeesWrappedErrors(t *testing.T) {
	err := fmt.Errorf("sync: %w", &PartialWriteError{DocumentID: "d1", Written: 1, Total: 3, Err: errors.New("embed")})

	assert.True(t, Retryable(err))

	var partial *PartialWriteError
	require.True(t, errors.As(err, &partial))
	assert.Equal(t, 1, partial.Written)
	assert.Equal(t, 3, partial.Total)
}

func TestStageErrorContext(t *testing.T) {
	cause := errors.New("db down")
	err := &StageError{DocumentID: "d1", Stage: StagePurging, Err: cause}

	assert.Contains(t, err.Error(), "d1")
	assert.Contains(t, err.Error(), "purging")
	assert.ErrorIs(t, err, cause)
}
