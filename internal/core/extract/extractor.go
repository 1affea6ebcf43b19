package extract

import (
	"context"
	"fmt"
	"os"
	"strings"

	"code.sajari.com/docconv"

	"github.com/docsync-io/docsync/internal/core"
)

var _ core.Extractor = (*DocconvExtractor)(nil)

// DocconvExtractor implements core.Extractor using sajari/docconv for the
// binary formats and a plain read for markdown/text.
type DocconvExtractor struct{}

func NewDocconvExtractor() *DocconvExtractor {
	return &DocconvExtractor{}
}

// Supported reports whether an extension has an extraction strategy. Callers
// check this before creating any state for a new document.
func Supported(extension string) bool {
	switch NormalizeExtension(extension) {
	case "pdf", "docx", "doc", "md", "txt":
		return true
	}
	return false
}

// NormalizeExtension lowercases and strips the leading dot.
func NormalizeExtension(extension string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(extension), "."))
}

// Extract converts the file at path into ordered text sections. PDFs yield one
// section per page; everything else yields a single section. Empty sections
// are kept so positions downstream do not shift when a page is blank.
func (e *DocconvExtractor) Extract(ctx context.Context, path, extension string) ([]string, error) {
	ext := NormalizeExtension(extension)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open content: %w", err)
	}
	defer f.Close()

	var body string
	switch ext {
	case "pdf":
		body, _, err = docconv.ConvertPDF(f)
		if err != nil {
			return nil, fmt.Errorf("pdf extraction: %w", err)
		}
		return splitPages(body), ctx.Err()
	case "docx":
		body, _, err = docconv.ConvertDocx(f)
	case "doc":
		body, _, err = docconv.ConvertDoc(f)
	case "md", "txt":
		data, rerr := os.ReadFile(path)
		if rerr != nil {
			return nil, fmt.Errorf("read text file: %w", rerr)
		}
		return []string{string(data)}, ctx.Err()
	default:
		return nil, &core.UnsupportedFormatError{Extension: ext}
	}
	if err != nil {
		return nil, fmt.Errorf("%s extraction: %w", ext, err)
	}
	return []string{body}, ctx.Err()
}

// splitPages cuts pdftotext output on form feeds, one section per page.
func splitPages(body string) []string {
	pages := strings.Split(body, "\f")
	// pdftotext terminates the last page with a form feed; drop only that
	// trailing artifact, never interior blank pages.
	if n := len(pages); n > 1 && pages[n-1] == "" {
		pages = pages[:n-1]
	}
	return pages
}
