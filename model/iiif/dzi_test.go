package iiif

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dziDoc = `<?xml version="1.0" encoding="UTF-8"?>
<Image xmlns="http://schemas.microsoft.com/deepzoom/2008"
       TileSize="254" Overlap="1" Format="jpg">
  <Size Width="7026" Height="9221"/>
</Image>`

func TestParseDzi(t *testing.T) {
	dzi, err := ParseDzi([]byte(dziDoc))
	require.NoError(t, err)

	assert.Equal(t, 254, dzi.TileSize)
	assert.Equal(t, 1, dzi.Overlap)
	assert.Equal(t, "jpg", dzi.Format)
	assert.Equal(t, 7026, dzi.Size.Width)
	assert.Equal(t, 9221, dzi.Size.Height)
}

func TestParseDziDefaultsFormat(t *testing.T) {
	dzi, err := ParseDzi([]byte(`<Image TileSize="256"><Size Width="100" Height="100"/></Image>`))
	require.NoError(t, err)
	assert.Equal(t, "jpg", dzi.Format)
}

func TestParseDziRejectsMissingFields(t *testing.T) {
	var format *FormatError

	_, err := ParseDzi([]byte(`<Image><Size Width="100" Height="100"/></Image>`))
	assert.ErrorAs(t, err, &format)

	_, err = ParseDzi([]byte(`<Image TileSize="256"><Size Width="0" Height="100"/></Image>`))
	assert.ErrorAs(t, err, &format)
}

func TestDziMaxLevel(t *testing.T) {
	dzi := &DziImage{TileSize: 254, Size: DziSize{Width: 7026, Height: 9221}}
	// 2^14 = 16384 is the first power of two covering 9221.
	assert.Equal(t, 14, dzi.MaxLevel())

	dzi = &DziImage{TileSize: 256, Size: DziSize{Width: 1024, Height: 512}}
	assert.Equal(t, 10, dzi.MaxLevel())

	dzi = &DziImage{TileSize: 256, Size: DziSize{Width: 1, Height: 1}}
	assert.Equal(t, 0, dzi.MaxLevel())
}
