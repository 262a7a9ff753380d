package tiled

import (
	"fmt"
	"math"

	"iiifview/model/iiif"
	"iiifview/pkg/geom"
)

// TileIndex addresses one tile within a resolution level. Level 0 is
// the smallest level.
type TileIndex struct {
	X     uint32
	Y     uint32
	Level uint32
}

// Tile is one required tile with its pixel rect in image space and its
// placement in world space.
type Tile struct {
	Index         TileIndex
	ImagePosition geom.Rect
	WorldPosition geom.Rect
}

// Range is an inclusive tile index range along one axis.
type Range struct {
	Min uint32
	Max uint32
}

func (r Range) Contains(v uint32) bool {
	return v >= r.Min && v <= r.Max
}

// TiledImage is a deep-zoom pyramid over one IIIF image endpoint.
//
// Image space is pixels with the origin at the top left and Y growing
// down. World space mirrors it about the X axis so Y grows up, which
// keeps the zoom math uniform with the camera.
type TiledImage struct {
	endpoint      string
	levels        []iiif.Size
	tileSize      iiif.Size
	format        string
	features      map[iiif.Feature]bool
	optionalSizes []iiif.Size
}

// New builds a pyramid from already-expanded parts. Levels must be
// ascending, the last one full size.
func New(endpoint string, tileSize iiif.Size, levels []iiif.Size, format string, features []iiif.Feature, optionalSizes []iiif.Size) *TiledImage {
	set := make(map[iiif.Feature]bool, len(features))
	for _, f := range features {
		set[f] = true
	}
	return &TiledImage{
		endpoint:      endpoint,
		levels:        levels,
		tileSize:      tileSize,
		format:        format,
		features:      set,
		optionalSizes: optionalSizes,
	}
}

// FromInfo builds the pyramid from a parsed info.json. Tiling needs
// both regionByPx and sizeByWh; servers without them serve the full
// image as a single one-tile level.
func FromInfo(info iiif.ImageInfo) (*TiledImage, error) {
	profiles, err := info.Profiles()
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 || len(profiles[0].Formats) == 0 {
		return nil, fmt.Errorf("missing image format in %q", info.Endpoint())
	}

	var features []iiif.Feature
	for _, p := range profiles {
		features = append(features, p.Supports...)
	}

	var tileSize iiif.Size
	var levels []iiif.Size
	if iiif.Supports(info, iiif.FeatureRegionByPx) && iiif.Supports(info, iiif.FeatureSizeByWh) {
		tileSize = info.TileSize()
		levels = info.TileScalingSizes()
	} else {
		tileSize = iiif.Size{Width: info.ImageWidth(), Height: info.ImageHeight()}
		levels = []iiif.Size{tileSize}
	}

	return New(info.Endpoint(), tileSize, levels, profiles[0].Formats[0], features, info.OptionalSizes()), nil
}

// InfoURL is the info.json endpoint for an image base URL.
func InfoURL(endpoint string) string {
	return endpoint + "/info.json"
}

func (t *TiledImage) Endpoint() string {
	return t.endpoint
}

func (t *TiledImage) Format() string {
	return t.format
}

func (t *TiledImage) TileSize() iiif.Size {
	return t.tileSize
}

func (t *TiledImage) LevelCount() int {
	return len(t.levels)
}

// MaxSize is the full image size in pixels.
func (t *TiledImage) MaxSize() geom.Vec2 {
	last := t.levels[len(t.levels)-1]
	return geom.V(float64(last.Width), float64(last.Height))
}

// WorldMaxRect is the full image footprint in world space.
func (t *TiledImage) WorldMaxRect() geom.Rect {
	return geom.FromCorners(t.ImageToWorld(geom.Vec2{}), t.ImageToWorld(t.MaxSize()))
}

// ImageMaxRect is the full image footprint in image space.
func (t *TiledImage) ImageMaxRect() geom.Rect {
	return geom.FromCorners(geom.Vec2{}, t.MaxSize())
}

func (t *TiledImage) WorldToImage(p geom.Vec2) geom.Vec2 {
	return p.ReflectY()
}

func (t *TiledImage) ImageToWorld(p geom.Vec2) geom.Vec2 {
	return p.ReflectY()
}

// LevelAt picks the smallest level whose width still covers the image
// at the given world zoom scale.
func (t *TiledImage) LevelAt(worldZoomScale float64) int {
	maxLevel := len(t.levels) - 1
	width := uint32(math.Abs(t.MaxSize().X / worldZoomScale))
	for level := 0; level <= maxLevel; level++ {
		if width <= uint32(t.levels[level].Width) {
			return level
		}
	}
	return maxLevel
}

// RequiredTiles lists the tiles of a level intersecting the world-space
// view between min and max, with the inclusive index ranges they span.
func (t *TiledImage) RequiredTiles(level int, worldMin, worldMax geom.Vec2) ([]Tile, Range, Range) {
	imageMaxSize := t.MaxSize()
	clampMax := imageMaxSize.Sub(geom.V(1, 1))

	p0 := t.WorldToImage(worldMin).Clamp(geom.Vec2{}, clampMax)
	p1 := t.WorldToImage(worldMax).Clamp(geom.Vec2{}, clampMax)
	imageMin := p0.Min(p1)
	imageMax := p0.Max(p1)

	tileMin := t.imageToTile(level, imageMin)
	tileMax := t.imageToTile(level, imageMax)

	var tiles []Tile
	var rangeX, rangeY Range
	for y := uint32(tileMin.Y); y <= uint32(tileMax.Y); y++ {
		for x := uint32(tileMin.X); x <= uint32(tileMax.X); x++ {
			index := TileIndex{X: x, Y: y, Level: uint32(level)}

			topLeft := t.tileToImage(level, geom.V(float64(x), float64(y)))
			botRight := t.tileToImage(level, geom.V(float64(x+1), float64(y+1))).Min(imageMaxSize)
			imagePosition := geom.FromCorners(topLeft, botRight)

			if imagePosition.Width() <= 0.5 || imagePosition.Height() <= 0.5 {
				continue
			}

			worldPosition := geom.FromCorners(t.ImageToWorld(topLeft), t.ImageToWorld(botRight))
			if len(tiles) == 0 {
				rangeX = Range{Min: x, Max: x}
				rangeY = Range{Min: y, Max: y}
			} else {
				if x < rangeX.Min {
					rangeX.Min = x
				}
				if x > rangeX.Max {
					rangeX.Max = x
				}
				if y < rangeY.Min {
					rangeY.Min = y
				}
				if y > rangeY.Max {
					rangeY.Max = y
				}
			}
			tiles = append(tiles, Tile{Index: index, ImagePosition: imagePosition, WorldPosition: worldPosition})
		}
	}
	return tiles, rangeX, rangeY
}

// TileURLAt is the request URL for the tile covering an image-space
// rect. Fractional edges round to whole source pixels.
func (t *TiledImage) TileURLAt(imagePosition geom.Rect) string {
	left := math.Round(imagePosition.Min.X)
	top := math.Round(imagePosition.Min.Y)
	width := math.Round(imagePosition.Max.X - left)
	height := math.Round(imagePosition.Max.Y - top)
	return t.imageURL(uint32(left), uint32(top), uint32(width), uint32(height), t.tileSize)
}

// Thumbnail returns the URL and pixel size of a thumbnail no larger
// than size on its long edge. Servers without sizeByWh get the
// smallest declared size that still exceeds it.
func (t *TiledImage) Thumbnail(size int) (string, geom.Vec2) {
	maxSize := t.MaxSize()

	var thumbSize iiif.Size
	if t.features[iiif.FeatureSizeByWh] {
		pct := float64(size) / maxSize.MaxElement()
		thumbSize = iiif.Size{Width: int(pct * maxSize.X), Height: int(pct * maxSize.Y)}
	} else {
		thumbSize = t.optionalSizes[0]
		for _, s := range t.optionalSizes {
			if s.Area() > size*size {
				thumbSize = s
				break
			}
		}
	}

	url := t.imageURL(0, 0, uint32(maxSize.X), uint32(maxSize.Y), thumbSize)
	return url, geom.V(float64(thumbSize.Width), float64(thumbSize.Height))
}

func (t *TiledImage) imageToTile(level int, p geom.Vec2) geom.Vec2 {
	scale := t.worldToImageScale(level)
	return p.DivVec(t.tileSizeVec().Mul(scale))
}

func (t *TiledImage) tileToImage(level int, p geom.Vec2) geom.Vec2 {
	scale := t.worldToImageScale(level)
	return p.MulVec(t.tileSizeVec().Mul(scale))
}

func (t *TiledImage) tileSizeVec() geom.Vec2 {
	return geom.V(float64(t.tileSize.Width), float64(t.tileSize.Height))
}

func (t *TiledImage) worldToImageScale(level int) float64 {
	return t.MaxSize().X / float64(t.levels[level].Width)
}

func (t *TiledImage) imageURL(left, top, width, height uint32, size iiif.Size) string {
	maxSize := t.MaxSize()
	region := fmt.Sprintf("%d,%d,%d,%d", left, top, width, height)
	if left == 0 && top == 0 && width == uint32(maxSize.X) && height == uint32(maxSize.Y) {
		region = "full"
	}
	return fmt.Sprintf("%s/%s/%d,%d/0/default.%s", t.endpoint, region, size.Width, size.Height, t.format)
}
