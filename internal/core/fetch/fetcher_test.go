package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsync-io/docsync/internal/core"
)

func TestFromBytes(t *testing.T) {
	f := NewFetcher(time.Second)

	raw, err := f.FromBytes([]byte("hello"), "txt")
	require.NoError(t, err)
	defer raw.Close()

	assert.Equal(t, "txt", raw.Extension)
	data, err := os.ReadFile(raw.Path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestFetchWritesBodyToTempFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Write([]byte("remote body"))
	}))
	defer srv.Close()

	f := NewFetcher(5 * time.Second)
	raw, err := f.Fetch(context.Background(), "doc-1", srv.URL, "txt")
	require.NoError(t, err)
	defer raw.Close()

	data, err := os.ReadFile(raw.Path)
	require.NoError(t, err)
	assert.Equal(t, "remote body", string(data))
}

func TestFetchNotFoundStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := NewFetcher(5 * time.Second)
	_, err := f.Fetch(context.Background(), "doc-1", srv.URL, "pdf")

	var transfer *core.TransferFailedError
	require.True(t, errors.As(err, &transfer))
	assert.Equal(t, "doc-1", transfer.DocumentID)
	assert.True(t, core.Retryable(err))
}

func TestFetchConnectionRefused(t *testing.T) {
	f := NewFetcher(time.Second)
	_, err := f.Fetch(context.Background(), "doc-1", "http://127.0.0.1:1/missing.pdf", "pdf")

	var transfer *core.TransferFailedError
	require.True(t, errors.As(err, &transfer))
}

func TestCloseRemovesTempFile(t *testing.T) {
	f := NewFetcher(time.Second)
	raw, err := f.FromBytes([]byte("x"), "txt")
	require.NoError(t, err)

	require.NoError(t, raw.Close())
	_, statErr := os.Stat(raw.Path)
	assert.True(t, os.IsNotExist(statErr))

	// Close is idempotent.
	assert.NoError(t, raw.Close())
}

func TestFetchCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := NewFetcher(5 * time.Second)
	_, err := f.Fetch(ctx, "doc-1", srv.URL, "txt")
	require.Error(t, err)
}
