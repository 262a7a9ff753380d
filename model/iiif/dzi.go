package iiif

import "encoding/xml"

// DeepZoom descriptor, the .dzi/.xml sibling format many servers offer
// next to their IIIF endpoints.
type DziImage struct {
	XMLName  xml.Name `xml:"Image"`
	TileSize int      `xml:"TileSize,attr"`
	Overlap  int      `xml:"Overlap,attr"`
	Format   string   `xml:"Format,attr"`
	Size     DziSize  `xml:"Size"`
}

type DziSize struct {
	Width  int `xml:"Width,attr"`
	Height int `xml:"Height,attr"`
}

// ParseDzi decodes a DeepZoom descriptor and checks the fields the
// tile math cannot live without.
func ParseDzi(data []byte) (*DziImage, error) {
	var dzi DziImage
	if err := xml.Unmarshal(data, &dzi); err != nil {
		return nil, err
	}
	if dzi.TileSize <= 0 || dzi.Size.Width <= 0 || dzi.Size.Height <= 0 {
		return nil, &FormatError{Reason: "deepzoom descriptor missing tile size or image size"}
	}
	if dzi.Format == "" {
		dzi.Format = "jpg"
	}
	return &dzi, nil
}

// MaxLevel is the DeepZoom pyramid depth, ceil(log2(max dimension)).
func (d *DziImage) MaxLevel() int {
	max := d.Size.Width
	if d.Size.Height > max {
		max = d.Size.Height
	}
	level := 0
	for size := 1; size < max; size *= 2 {
		level++
	}
	return level
}
