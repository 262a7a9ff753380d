package minimap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"iiifview/model/iiif"
	"iiifview/pkg/geom"
	"iiifview/pkg/tiled"
)

func testImage() *tiled.TiledImage {
	levels := []iiif.Size{{Width: 100, Height: 50}}
	return tiled.New("https://iiif.example.org/uuid", iiif.Size{Width: 100, Height: 50}, levels, "jpg", nil, levels)
}

func TestScaleOffsetLandscape(t *testing.T) {
	scale, offset := ScaleOffset(geom.V(100, 50))

	assert.Equal(t, 1.96, scale)
	assert.Equal(t, geom.V(0, 49), offset)
}

func TestScaleOffsetPortrait(t *testing.T) {
	scale, offset := ScaleOffset(geom.V(50, 100))

	assert.Equal(t, 1.96, scale)
	assert.Equal(t, geom.V(49, 0), offset)
}

func TestThumbnailRect(t *testing.T) {
	r := ThumbnailRect(geom.V(100, 50))

	assert.Equal(t, geom.V(0, 49), r.Min)
	assert.Equal(t, geom.V(196, 147), r.Max)
}

func TestViewRectFullImage(t *testing.T) {
	r := ViewRect(testImage(), geom.V(0, 0), geom.V(100, -50))

	assert.Equal(t, geom.V(0, 49), r.Min)
	assert.Equal(t, geom.V(196, 147), r.Max)
}

func TestViewRectClipped(t *testing.T) {
	// Viewport hanging past the top-left corner clips to the square.
	r := ViewRect(testImage(), geom.V(-50, 25), geom.V(50, -25))

	assert.Equal(t, geom.V(0, 0), r.Min)
	assert.Equal(t, geom.V(98, 98), r.Max)
}

func TestClickWorldPos(t *testing.T) {
	img := testImage()

	assert.Equal(t, geom.V(50, -25), ClickWorldPos(img, geom.V(0, 0)))
	assert.Equal(t, geom.V(0, 0), ClickWorldPos(img, geom.V(-0.5, -0.5)))
	assert.Equal(t, geom.V(100, -50), ClickWorldPos(img, geom.V(0.5, 0.5)))
}
