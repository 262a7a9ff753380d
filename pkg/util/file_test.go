package util

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByteUnitString(t *testing.T) {
	assert.Equal(t, "0 B", ByteUnitString(0))
	assert.Equal(t, "512 B", ByteUnitString(512))
	assert.Equal(t, "1.5 KB", ByteUnitString(1500))
	assert.Equal(t, "2 MB", ByteUnitString(2000000))
}

func TestFileExist(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	full := filepath.Join(dir, "full")
	require.NoError(t, os.WriteFile(full, []byte("x"), 0644))

	assert.False(t, FileExist(filepath.Join(dir, "missing")))
	assert.False(t, FileExist(empty))
	assert.True(t, FileExist(full))
}

func TestFileExt(t *testing.T) {
	assert.Equal(t, ".jpg", FileExt("https://example.org/a/b.jpg"))
	assert.Equal(t, ".png", FileExt("https://example.org/a/b.png?x=1"))
	assert.Equal(t, "", FileExt("https://example-org/a/b"))
}

func TestGetHeaderContentTypeByExtension(t *testing.T) {
	assert.Equal(t, "iiif", GetHeaderContentType("https://x.org/manifest.json", "ua", time.Second))
	assert.Equal(t, "dzi", GetHeaderContentType("https://x.org/page.dzi", "ua", time.Second))
	assert.Equal(t, "dzi", GetHeaderContentType("https://x.org/page.xml?v=2", "ua", time.Second))
}

func TestGetHeaderContentTypeByRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/manifest":
			w.Header().Set("Content-Type", "application/ld+json; charset=utf-8")
		case "/photo":
			w.Header().Set("Content-Type", "image/jpeg")
		default:
			w.Header().Set("Content-Type", "text/html")
		}
	}))
	defer server.Close()

	assert.Equal(t, "iiif", GetHeaderContentType(server.URL+"/manifest", "ua", time.Second))
	assert.Equal(t, "image", GetHeaderContentType(server.URL+"/photo", "ua", time.Second))
	assert.Equal(t, "html", GetHeaderContentType(server.URL+"/viewer", "ua", time.Second))

	// Second lookup hits the cache.
	assert.Equal(t, "iiif", GetHeaderContentType(server.URL+"/manifest", "ua", time.Second))
}
