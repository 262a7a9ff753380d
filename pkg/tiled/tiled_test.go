package tiled

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iiifview/model/iiif"
	"iiifview/pkg/geom"
)

const testEndpoint = "https://iiif.example.org/uuid"

func testImage(features ...iiif.Feature) *TiledImage {
	levels := []iiif.Size{
		{Width: 678, Height: 478},
		{Width: 1357, Height: 955},
		{Width: 2713, Height: 1910},
	}
	optional := []iiif.Size{
		{Width: 678, Height: 478},
		{Width: 2713, Height: 1910},
	}
	return New(testEndpoint, iiif.Size{Width: 1024, Height: 1024}, levels, "png", features, optional)
}

func TestMaxSize(t *testing.T) {
	img := testImage()
	assert.Equal(t, geom.V(2713, 1910), img.MaxSize())
	assert.Equal(t, 3, img.LevelCount())
}

func TestWorldMaxRect(t *testing.T) {
	r := testImage().WorldMaxRect()
	assert.Equal(t, geom.V(0, -1910), r.Min)
	assert.Equal(t, geom.V(2713, 0), r.Max)
}

func TestWorldImageConversion(t *testing.T) {
	img := testImage()
	assert.Equal(t, geom.V(100, -200), img.ImageToWorld(geom.V(100, 200)))
	assert.Equal(t, geom.V(100, 200), img.WorldToImage(geom.V(100, -200)))
}

func TestLevelAt(t *testing.T) {
	img := testImage()
	// Scale 1 needs the full resolution, larger scales step down.
	assert.Equal(t, 2, img.LevelAt(1))
	assert.Equal(t, 1, img.LevelAt(2))
	assert.Equal(t, 0, img.LevelAt(4))
	assert.Equal(t, 0, img.LevelAt(100))
}

func TestTileURLAt(t *testing.T) {
	img := testImage()
	rect := geom.FromCorners(geom.V(10.3, 20.5), geom.V(200.5, 300.1))
	assert.Equal(t, testEndpoint+"/10,21,191,279/1024,1024/0/default.png", img.TileURLAt(rect))
}

func TestTileURLAtFullImage(t *testing.T) {
	img := testImage()
	rect := geom.FromCorners(geom.V(0, 0), geom.V(2713, 1910))
	assert.Equal(t, testEndpoint+"/full/1024,1024/0/default.png", img.TileURLAt(rect))
}

func TestRequiredTilesFullView(t *testing.T) {
	img := testImage()
	tiles, rx, ry := img.RequiredTiles(2, geom.V(0, 0), geom.V(2713, -1910))

	require.Len(t, tiles, 6)
	assert.Equal(t, Range{Min: 0, Max: 2}, rx)
	assert.Equal(t, Range{Min: 0, Max: 1}, ry)

	first := tiles[0]
	assert.Equal(t, TileIndex{X: 0, Y: 0, Level: 2}, first.Index)
	assert.Equal(t, geom.V(0, 0), first.ImagePosition.Min)
	assert.Equal(t, geom.V(1024, 1024), first.ImagePosition.Max)
	assert.Equal(t, geom.V(0, -1024), first.WorldPosition.Min)
	assert.Equal(t, geom.V(1024, 0), first.WorldPosition.Max)

	// The last column and row are clipped to the image bounds.
	last := tiles[len(tiles)-1]
	assert.Equal(t, TileIndex{X: 2, Y: 1, Level: 2}, last.Index)
	assert.Equal(t, geom.V(2713, 1910), last.ImagePosition.Max)
}

func TestRequiredTilesPartialView(t *testing.T) {
	img := testImage()
	tiles, rx, ry := img.RequiredTiles(2, geom.V(1200, -900), geom.V(2000, -1500))

	require.Len(t, tiles, 2)
	assert.Equal(t, Range{Min: 1, Max: 1}, rx)
	assert.Equal(t, Range{Min: 0, Max: 1}, ry)
	assert.Equal(t, TileIndex{X: 1, Y: 0, Level: 2}, tiles[0].Index)
	assert.Equal(t, TileIndex{X: 1, Y: 1, Level: 2}, tiles[1].Index)
}

func TestRequiredTilesSmallestLevel(t *testing.T) {
	img := testImage()
	tiles, rx, ry := img.RequiredTiles(0, geom.V(0, 0), geom.V(2713, -1910))

	require.Len(t, tiles, 1)
	assert.Equal(t, Range{Min: 0, Max: 0}, rx)
	assert.Equal(t, Range{Min: 0, Max: 0}, ry)
	assert.Equal(t, geom.V(2713, 1910), tiles[0].ImagePosition.Max)
}

func TestRequiredTilesOutOfBoundsClamped(t *testing.T) {
	img := testImage()
	tiles, _, _ := img.RequiredTiles(2, geom.V(-5000, 5000), geom.V(9000, -9000))
	assert.Len(t, tiles, 6)
}

func TestThumbnailSizeByWh(t *testing.T) {
	img := testImage(iiif.FeatureSizeByWh)
	url, size := img.Thumbnail(256)
	assert.Equal(t, testEndpoint+"/full/256,180/0/default.png", url)
	assert.Equal(t, geom.V(256, 180), size)
}

func TestThumbnailDeclaredSizes(t *testing.T) {
	img := testImage()
	url, size := img.Thumbnail(256)
	assert.Equal(t, testEndpoint+"/full/678,478/0/default.png", url)
	assert.Equal(t, geom.V(678, 478), size)
}

func TestRangeContains(t *testing.T) {
	r := Range{Min: 2, Max: 4}
	assert.False(t, r.Contains(1))
	assert.True(t, r.Contains(2))
	assert.True(t, r.Contains(4))
	assert.False(t, r.Contains(5))
}

func TestInfoURL(t *testing.T) {
	assert.Equal(t, testEndpoint+"/info.json", InfoURL(testEndpoint))
}
