package iiif

import (
	"encoding/json"
	"sort"
	"strings"
)

// defaultTileSize applies when info.json declares no tiles at all.
const defaultTileSize = 512

// ImageInfo is the version-independent view over a v2 or v3 info.json.
type ImageInfo interface {
	Endpoint() string
	ImageWidth() int
	ImageHeight() int
	Profiles() ([]ProfileDetails, error)
	TileSize() Size
	TileScalingSizes() []Size
	OptionalSizes() []Size
}

// ImageVersion detects the Image API version from @context. Anything
// that is not explicitly v3 is treated as v2.
func ImageVersion(data []byte) int {
	var probe contextProbe
	if err := json.Unmarshal(data, &probe); err != nil {
		return 2
	}
	for _, c := range probe.Context {
		if strings.Contains(c, "image/3/") {
			return 3
		}
	}
	return 2
}

// ParseImageInfo decodes a v2 or v3 info.json and verifies that the
// profile expands.
func ParseImageInfo(data []byte) (ImageInfo, error) {
	var info ImageInfo
	switch ImageVersion(data) {
	case 3:
		var v3 ImageInfoV3
		if err := json.Unmarshal(data, &v3); err != nil {
			return nil, err
		}
		info = &v3
	default:
		var v2 ImageInfoV2
		if err := json.Unmarshal(data, &v2); err != nil {
			return nil, err
		}
		info = &v2
	}
	if _, err := info.Profiles(); err != nil {
		return nil, err
	}
	return info, nil
}

// Supports reports whether any expanded profile carries the feature.
func Supports(info ImageInfo, feature Feature) bool {
	profiles, err := info.Profiles()
	if err != nil {
		return false
	}
	for _, p := range profiles {
		for _, f := range p.Supports {
			if f == feature {
				return true
			}
		}
	}
	return false
}

// tileSizeOf picks the first declared tile size. A missing height
// means square tiles.
func tileSizeOf(tiles []TileInfo) Size {
	if len(tiles) == 0 {
		return Size{Width: defaultTileSize, Height: defaultTileSize}
	}
	size := Size{Width: tiles[0].Width, Height: tiles[0].Height}
	if size.Height == 0 {
		size.Height = size.Width
	}
	return size
}

// tileScalingSizesOf lists the full-image sizes reachable through the
// declared scale factors, ascending by area. The unscaled size is
// always included.
func tileScalingSizesOf(tiles []TileInfo, width, height int) []Size {
	full := Size{Width: width, Height: height}
	var out []Size
	if len(tiles) > 0 {
		for _, factor := range tiles[0].ScaleFactors {
			if factor <= 0 {
				continue
			}
			out = append(out, Size{Width: width / factor, Height: height / factor})
		}
	}
	out = ensureSize(out, full)
	sortByArea(out)
	return out
}

// optionalSizesOf lists the declared sizes plus the full size,
// ascending by area.
func optionalSizesOf(sizes []Size, width, height int) []Size {
	full := Size{Width: width, Height: height}
	out := make([]Size, len(sizes))
	copy(out, sizes)
	out = ensureSize(out, full)
	sortByArea(out)
	return out
}

func ensureSize(sizes []Size, want Size) []Size {
	for _, s := range sizes {
		if s == want {
			return sizes
		}
	}
	return append(sizes, want)
}

func sortByArea(sizes []Size) {
	sort.SliceStable(sizes, func(i, j int) bool {
		return sizes[i].Area() < sizes[j].Area()
	})
}
