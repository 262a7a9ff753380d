package downloader

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDziFilesURL(t *testing.T) {
	assert.Equal(t,
		"https://example.org/tiles/page1_files",
		dziFilesURL("https://example.org/tiles/page1.dzi"))
	assert.Equal(t,
		"https://example.org/tiles/page1_files",
		dziFilesURL("https://example.org/tiles/page1.xml?key=1"))
}

func TestStitchDZI(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	// 96x64 with 64px tiles and a 1px shared border: level 7, two
	// columns, one row.
	mux.HandleFunc("/page.dzi", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<Image TileSize="64" Overlap="1" Format="jpg"><Size Width="96" Height="64"/></Image>`)
	})
	mux.HandleFunc("/page_files/7/0_0.jpg", func(w http.ResponseWriter, r *http.Request) {
		writeTestJPEG(w, 65, 64, color.RGBA{R: 30, G: 200, B: 30, A: 255})
	})
	mux.HandleFunc("/page_files/7/1_0.jpg", func(w http.ResponseWriter, r *http.Request) {
		writeTestJPEG(w, 33, 64, color.RGBA{R: 30, G: 30, B: 200, A: 255})
	})

	dest := filepath.Join(t.TempDir(), "page.jpg")
	err := StitchDZI(context.Background(), server.URL+"/page.dzi", dest, StitchOptions{Concurrency: 2})
	require.NoError(t, err)

	f, err := os.Open(dest)
	require.NoError(t, err)
	defer f.Close()

	img, _, err := image.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 96, img.Bounds().Dx())
	assert.Equal(t, 64, img.Bounds().Dy())

	// Left half green, right half blue.
	_, g, _, _ := img.At(10, 10).RGBA()
	assert.Greater(t, g>>8, uint32(100))
	_, _, b, _ := img.At(90, 10).RGBA()
	assert.Greater(t, b>>8, uint32(100))
}

func TestStitchDZIBadDescriptor(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<Image></Image>`)
	}))
	defer server.Close()

	err := StitchDZI(context.Background(), server.URL+"/page.dzi", filepath.Join(t.TempDir(), "x.jpg"), StitchOptions{})
	assert.Error(t, err)
}
