package papernote

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/emrgen/papernote/internal/config"
	"github.com/emrgen/papernote/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	dir := t.TempDir()
	return &config.Config{
		APIURL:      "http://127.0.0.1:1",
		HTTPTimeout: time.Second,
		Cache:       config.CacheConfig{Backend: "memory", Size: 16, Compression: "lz4"},
		DB:          config.DBConfig{DSN: filepath.Join(dir, "drafts.db")},
		Dir:         dir,
	}
}

func TestNewClient(t *testing.T) {
	client, err := NewClient(testConfig(t), session.Anonymous())
	require.NoError(t, err)
	defer client.Close()

	assert.NotNil(t, client.Comments)
	assert.NotNil(t, client.Summaries)
	assert.NotNil(t, client.Users)
	assert.NotNil(t, client.Tags)
	assert.NotNil(t, client.Auth)
	assert.Equal(t, "http://127.0.0.1:1", client.API.BaseURL())
}

func TestNewClient_UnknownCacheBackend(t *testing.T) {
	cfg := testConfig(t)
	cfg.Cache.Backend = "memcached"

	_, err := NewClient(cfg, session.Anonymous())
	assert.Error(t, err)
}

func TestClient_DraftsOpenedOnce(t *testing.T) {
	client, err := NewClient(testConfig(t), session.Anonymous())
	require.NoError(t, err)

	first, err := client.Drafts()
	require.NoError(t, err)
	second, err := client.Drafts()
	require.NoError(t, err)
	assert.Same(t, first, second)

	drafts, err := first.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, drafts)

	assert.NoError(t, client.Close())
}

func TestClient_DraftsUnknownCompression(t *testing.T) {
	cfg := testConfig(t)
	cfg.Cache.Compression = "zstd"

	client, err := NewClient(cfg, session.Anonymous())
	require.NoError(t, err)
	defer client.Close()

	_, err = client.Drafts()
	assert.Error(t, err)
}
