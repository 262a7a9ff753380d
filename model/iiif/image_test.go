package iiif

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const imageInfoV2Doc = `{
  "@context": "http://iiif.io/api/image/2/context.json",
  "@id": "https://iiif.example.org/image/12345",
  "protocol": "http://iiif.io/api/image",
  "width": 7045,
  "height": 5785,
  "sizes": [
    {"width": 220, "height": 181},
    {"width": 440, "height": 361}
  ],
  "tiles": [
    {"width": 1024, "scaleFactors": [1, 2, 4, 8, 16, 32]}
  ],
  "profile": [
    "http://iiif.io/api/image/2/level2.json",
    {"formats": ["tif"], "qualities": ["color"], "supports": ["regionSquare"]}
  ]
}`

const imageInfoV3Doc = `{
  "@context": ["http://iiif.io/api/image/3/context.json"],
  "id": "https://iiif.example.org/image/abcd",
  "type": "ImageService3",
  "protocol": "http://iiif.io/api/image",
  "width": 6000,
  "height": 4000,
  "profile": "level1",
  "extraFormats": ["png", "gif", "pdf"],
  "extraQualities": ["color", "gray"],
  "extraFeatures": ["canonicalLinkHeader", "rotationArbitrary", "profileLinkHeader"]
}`

func TestImageVersion(t *testing.T) {
	assert.Equal(t, 2, ImageVersion([]byte(imageInfoV2Doc)))
	assert.Equal(t, 3, ImageVersion([]byte(imageInfoV3Doc)))
	assert.Equal(t, 2, ImageVersion([]byte(`{}`)))
}

func TestParseImageInfoV2(t *testing.T) {
	info, err := ParseImageInfo([]byte(imageInfoV2Doc))
	require.NoError(t, err)

	assert.Equal(t, "https://iiif.example.org/image/12345", info.Endpoint())
	assert.Equal(t, 7045, info.ImageWidth())
	assert.Equal(t, 5785, info.ImageHeight())
}

func TestImageInfoV2Profiles(t *testing.T) {
	info, err := ParseImageInfo([]byte(imageInfoV2Doc))
	require.NoError(t, err)

	profiles, err := info.Profiles()
	require.NoError(t, err)
	require.Len(t, profiles, 2)

	// The compliance URL expands to the level2 table.
	assert.Equal(t, []string{"jpg", "png"}, profiles[0].Formats)
	assert.Equal(t, []string{"default", "bitonal"}, profiles[0].Qualities)
	assert.Contains(t, profiles[0].Supports, FeatureRegionByPx)
	assert.Contains(t, profiles[0].Supports, FeatureSizeByWh)

	// The inline details object stays as written.
	assert.Equal(t, []string{"tif"}, profiles[1].Formats)
	assert.Equal(t, []string{"color"}, profiles[1].Qualities)
	assert.Equal(t, []Feature{FeatureRegionSquare}, profiles[1].Supports)
}

func TestImageInfoV2TileSize(t *testing.T) {
	info, err := ParseImageInfo([]byte(imageInfoV2Doc))
	require.NoError(t, err)

	// Height falls back to width for square tiles.
	assert.Equal(t, Size{Width: 1024, Height: 1024}, info.TileSize())
}

func TestImageInfoV2TileScalingSizes(t *testing.T) {
	info, err := ParseImageInfo([]byte(imageInfoV2Doc))
	require.NoError(t, err)

	assert.Equal(t, []Size{
		{Width: 220, Height: 180},
		{Width: 440, Height: 361},
		{Width: 880, Height: 723},
		{Width: 1761, Height: 1446},
		{Width: 3522, Height: 2892},
		{Width: 7045, Height: 5785},
	}, info.TileScalingSizes())
}

func TestImageInfoV2OptionalSizes(t *testing.T) {
	info, err := ParseImageInfo([]byte(imageInfoV2Doc))
	require.NoError(t, err)

	assert.Equal(t, []Size{
		{Width: 220, Height: 181},
		{Width: 440, Height: 361},
		{Width: 7045, Height: 5785},
	}, info.OptionalSizes())
}

func TestParseImageInfoV3(t *testing.T) {
	info, err := ParseImageInfo([]byte(imageInfoV3Doc))
	require.NoError(t, err)

	assert.Equal(t, "https://iiif.example.org/image/abcd", info.Endpoint())
	assert.Equal(t, 6000, info.ImageWidth())
	assert.Equal(t, 4000, info.ImageHeight())
}

func TestImageInfoV3Profiles(t *testing.T) {
	info, err := ParseImageInfo([]byte(imageInfoV3Doc))
	require.NoError(t, err)

	profiles, err := info.Profiles()
	require.NoError(t, err)
	require.Len(t, profiles, 2)

	assert.Equal(t, []string{"jpg"}, profiles[0].Formats)
	assert.Contains(t, profiles[0].Supports, FeatureRegionByPx)
	assert.NotContains(t, profiles[0].Supports, FeatureSizeByWh)

	assert.Equal(t, []string{"png", "gif", "pdf"}, profiles[1].Formats)
	assert.Equal(t, []string{"color", "gray"}, profiles[1].Qualities)
	assert.Equal(t, []Feature{
		FeatureCanonicalLinkHeader,
		FeatureRotationArbitrary,
		FeatureProfileLinkHeader,
	}, profiles[1].Supports)
}

func TestImageInfoV3DefaultTileSize(t *testing.T) {
	info, err := ParseImageInfo([]byte(imageInfoV3Doc))
	require.NoError(t, err)

	assert.Equal(t, Size{Width: 512, Height: 512}, info.TileSize())
	assert.Equal(t, []Size{{Width: 6000, Height: 4000}}, info.TileScalingSizes())
}

func TestSupports(t *testing.T) {
	v2, err := ParseImageInfo([]byte(imageInfoV2Doc))
	require.NoError(t, err)
	assert.True(t, Supports(v2, FeatureSizeByWh))
	assert.True(t, Supports(v2, FeatureRegionSquare))
	assert.False(t, Supports(v2, FeatureMirroring))

	v3, err := ParseImageInfo([]byte(imageInfoV3Doc))
	require.NoError(t, err)
	assert.True(t, Supports(v3, FeatureRotationArbitrary))
	assert.False(t, Supports(v3, FeatureSizeByWh))
}

func TestParseImageInfoMissingProfile(t *testing.T) {
	_, err := ParseImageInfo([]byte(`{"@id": "x", "width": 1, "height": 1}`))
	var missing *MissingInfoError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "profile", missing.What)
}

func TestParseImageInfoUnknownProfile(t *testing.T) {
	_, err := ParseImageInfo([]byte(`{"@id": "x", "profile": ["http://iiif.io/api/image/2/level9.json"]}`))
	var format *FormatError
	assert.ErrorAs(t, err, &format)

	_, err = ParseImageInfo([]byte(`{
	  "@context": "http://iiif.io/api/image/3/context.json",
	  "id": "x", "profile": "level9"
	}`))
	assert.ErrorAs(t, err, &format)
}

func TestTileSizeExplicitHeight(t *testing.T) {
	size := tileSizeOf([]TileInfo{{Width: 100, Height: 110}})
	assert.Equal(t, Size{Width: 100, Height: 110}, size)
}

func TestLevelProfileTables(t *testing.T) {
	l0, ok := levelProfile("level0")
	require.True(t, ok)
	assert.Equal(t, []Feature{FeatureSizeByWhListed}, l0.Supports)

	l1, ok := levelProfile("level1")
	require.True(t, ok)
	assert.Len(t, l1.Supports, 8)

	_, ok = levelProfile("level9")
	assert.False(t, ok)
}
