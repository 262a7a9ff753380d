package minimap

import (
	"iiifview/pkg/geom"
	"iiifview/pkg/tiled"
)

// Layout constants in minimap pixels. The thumbnail sits inside the
// minimap border.
const (
	BorderSize    = 2.0
	MinimapSize   = 200.0
	ThumbnailSize = MinimapSize - 2*BorderSize
)

// ThumbnailSuggestedSize is the long-edge size requested from the
// server, a bit above the display size so the thumbnail stays sharp.
const ThumbnailSuggestedSize = 256

// ScaleOffset fits an image size into the thumbnail square: the
// uniform scale plus the offset centring the scaled image.
func ScaleOffset(imageSize geom.Vec2) (float64, geom.Vec2) {
	scale := ThumbnailSize / imageSize.MaxElement()
	offset := geom.V(
		(ThumbnailSize-scale*imageSize.X)/2,
		(ThumbnailSize-scale*imageSize.Y)/2,
	)
	return scale, offset
}

// ThumbnailRect places a thumbnail of the given pixel size inside the
// minimap.
func ThumbnailRect(thumbnailSize geom.Vec2) geom.Rect {
	scale, offset := ScaleOffset(thumbnailSize)
	return geom.FromCorners(offset, thumbnailSize.Mul(scale).Add(offset))
}

// ViewRect maps the camera's world-space viewport onto the minimap,
// clipped to the thumbnail square.
func ViewRect(image *tiled.TiledImage, worldMin, worldMax geom.Vec2) geom.Rect {
	scale, offset := ScaleOffset(image.MaxSize())

	imageMin := image.WorldToImage(worldMin)
	imageMax := image.WorldToImage(worldMax)

	rect := geom.FromCorners(
		imageMin.Mul(scale).Add(offset),
		imageMax.Mul(scale).Add(offset),
	)
	bounds := geom.FromCorners(geom.Vec2{}, geom.V(ThumbnailSize, ThumbnailSize))
	return rect.Intersect(bounds)
}

// ClickWorldPos converts a click on the minimap to the world position
// to centre the camera on. The cursor is normalized to [-0.5, 0.5]
// with (0, 0) at the minimap centre.
func ClickWorldPos(image *tiled.TiledImage, normCursor geom.Vec2) geom.Vec2 {
	imagePos := image.MaxSize().MulVec(normCursor.Add(geom.V(0.5, 0.5)))
	return image.ImageToWorld(imagePos)
}
