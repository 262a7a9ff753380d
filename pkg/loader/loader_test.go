package loader

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iiifview/model/iiif"
	"iiifview/pkg/gohttp"
	"iiifview/pkg/tilecache"
	"iiifview/pkg/tiled"
)

func newTileServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		img := image.NewRGBA(image.Rect(0, 0, 64, 64))
		for y := 0; y < 64; y++ {
			for x := 0; x < 64; x++ {
				img.Set(x, y, color.RGBA{R: 200, A: 255})
			}
		}
		w.Header().Set("Content-Type", "image/png")
		png.Encode(w, img)
	}))
	t.Cleanup(server.Close)
	return server
}

func pyramidFor(endpoint string) *tiled.TiledImage {
	levels := []iiif.Size{{Width: 128, Height: 64}}
	return tiled.New(endpoint, iiif.Size{Width: 64, Height: 64}, levels, "png",
		[]iiif.Feature{iiif.FeatureRegionByPx, iiif.FeatureSizeByWh}, levels)
}

func TestLoaderDeliversTiles(t *testing.T) {
	var hits int32
	server := newTileServer(t, &hits)
	img := pyramidFor(server.URL + "/img")

	world := img.WorldMaxRect()
	tiles, _, _ := img.RequiredTiles(0, world.Min, world.Max)
	require.Len(t, tiles, 2)

	l := New(2, nil, gohttp.Options{Retry: 1})
	for _, tile := range tiles {
		l.Load(context.Background(), img, tile, 7)
	}

	for i := 0; i < len(tiles); i++ {
		result := <-l.Results()
		require.NoError(t, result.Err)
		assert.NotNil(t, result.Image)
		assert.Equal(t, uint64(7), result.Gen)
	}
	l.Wait()
}

func TestLoaderReportsFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	img := pyramidFor(server.URL + "/img")
	world := img.WorldMaxRect()
	tiles, _, _ := img.RequiredTiles(0, world.Min, world.Max)

	l := New(1, nil, gohttp.Options{Retry: 1})
	l.Load(context.Background(), img, tiles[0], 0)

	result := <-l.Results()
	assert.Error(t, result.Err)
	assert.Nil(t, result.Image)
}

func TestLoaderUsesDiskCache(t *testing.T) {
	var hits int32
	server := newTileServer(t, &hits)
	img := pyramidFor(server.URL + "/img")
	world := img.WorldMaxRect()
	tiles, _, _ := img.RequiredTiles(0, world.Min, world.Max)

	disk, err := tilecache.NewDisk(t.TempDir())
	require.NoError(t, err)

	l := New(1, disk, gohttp.Options{Retry: 1})
	l.Load(context.Background(), img, tiles[0], 0)
	result := <-l.Results()
	require.NoError(t, result.Err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))

	// Second load of the same tile is served from disk.
	l.Load(context.Background(), img, tiles[0], 0)
	result = <-l.Results()
	require.NoError(t, result.Err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	l.Wait()
}
