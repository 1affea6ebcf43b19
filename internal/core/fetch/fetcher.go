package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/docsync-io/docsync/internal/core"
)

// Some hosts refuse requests without a browser-looking agent.
const userAgent = "Mozilla/5.0 (Windows NT 6.1; Win64; x64; rv:47.0) Gecko/20100101 Firefox/47.0"

// RawContent is the scoped temporary resource holding fetched bytes. Whoever
// runs the pipeline owns it and must Close it on every exit path; Close is
// safe to call more than once.
type RawContent struct {
	Path      string
	Extension string
	closed    bool
}

func (c *RawContent) Close() error {
	if c == nil || c.closed {
		return nil
	}
	c.closed = true
	if err := os.Remove(c.Path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Fetcher resolves document content to a local temp file, either from inline
// upload bytes or by downloading a stored URL. The HTTP client is constructed
// once and injected here; redirects follow the client default.
type Fetcher struct {
	client *http.Client
}

func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{client: &http.Client{Timeout: timeout}}
}

// FromBytes wraps inline upload bytes into a temp file. No network I/O.
func (f *Fetcher) FromBytes(data []byte, extension string) (*RawContent, error) {
	tmp, err := os.CreateTemp("", "docsync-*."+extension)
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("close temp file: %w", err)
	}
	return &RawContent{Path: tmp.Name(), Extension: extension}, nil
}

// Fetch downloads the stored URL into a temp file, streaming the body rather
// than buffering it in memory. Non-success status or a broken stream yields
// TransferFailedError; the partial temp file is removed before returning.
// No retries here; retry policy belongs to the caller.
func (f *Fetcher) Fetch(ctx context.Context, documentID, url, extension string) (*RawContent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &core.TransferFailedError{DocumentID: documentID, URL: url, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &core.TransferFailedError{DocumentID: documentID, URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &core.TransferFailedError{
			DocumentID: documentID,
			URL:        url,
			Err:        fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	tmp, err := os.CreateTemp("", "docsync-*."+extension)
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, &core.TransferFailedError{DocumentID: documentID, URL: url, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("close temp file: %w", err)
	}
	return &RawContent{Path: tmp.Name(), Extension: extension}, nil
}
