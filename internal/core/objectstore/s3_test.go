package objectstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseURL(t *testing.T) {
	bucket, key, ok := ParseURL("https://docsync-docs.s3.us-east-2.amazonaws.com/owners/u1/documents/d1/report.pdf")

	assert.True(t, ok)
	assert.Equal(t, "docsync-docs", bucket)
	assert.Equal(t, "owners/u1/documents/d1/report.pdf", key)
}

func TestParseURLRejectsForeignURLs(t *testing.T) {
	for _, u := range []string{
		"https://example.com/file.pdf",
		"http://docsync-docs.s3.us-east-2.amazonaws.com/key",
		"https://docsync-docs.s3.us-east-2.amazonaws.com/",
		"",
	} {
		_, _, ok := ParseURL(u)
		assert.False(t, ok, u)
	}
}
