package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/docsync")

	cfg := LoadConfig()

	assert.Equal(t, 1000, cfg.ChunkSize)
	assert.Equal(t, 100, cfg.ChunkOverlap)
	assert.Equal(t, 16, cfg.EmbedBatchSize)
	assert.Equal(t, 300, cfg.FetchTimeoutSec)
	assert.Equal(t, "text-embedding-004", cfg.EmbedModel)
	assert.Equal(t, "8080", cfg.Port)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/docsync")
	t.Setenv("CHUNK_SIZE", "500")
	t.Setenv("CHUNK_OVERLAP", "50")
	t.Setenv("EMBED_BATCH_SIZE", "32")

	cfg := LoadConfig()

	assert.Equal(t, 500, cfg.ChunkSize)
	assert.Equal(t, 50, cfg.ChunkOverlap)
	assert.Equal(t, 32, cfg.EmbedBatchSize)
}

func TestGetEnvIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("CHUNK_SIZE", "not-a-number")

	assert.Equal(t, 1000, getEnvInt("CHUNK_SIZE", 1000))
}
