package iiif

// Image API 3.0 info.json.
// https://iiif.io/api/image/3.0/
type ImageInfoV3 struct {
	Context        OneOrMany[string] `json:"@context"`
	ID             string            `json:"id"`
	Type           string            `json:"type"`
	Protocol       string            `json:"protocol"`
	Width          int               `json:"width"`
	Height         int               `json:"height"`
	MaxWidth       int               `json:"maxWidth"`
	MaxHeight      int               `json:"maxHeight"`
	MaxArea        int               `json:"maxArea"`
	Sizes          []Size            `json:"sizes"`
	Tiles          []TileInfo        `json:"tiles"`
	Profile        string            `json:"profile"`
	ExtraFormats   []string          `json:"extraFormats"`
	ExtraQualities []string          `json:"extraQualities"`
	ExtraFeatures  []Feature         `json:"extraFeatures"`
}

func (info *ImageInfoV3) Endpoint() string {
	return info.ID
}

func (info *ImageInfoV3) ImageWidth() int {
	return info.Width
}

func (info *ImageInfoV3) ImageHeight() int {
	return info.Height
}

// Profiles expands the compliance level plus, when present, a second
// profile carrying the extraFormats/extraQualities/extraFeatures.
func (info *ImageInfoV3) Profiles() ([]ProfileDetails, error) {
	if info.Profile == "" {
		return nil, &MissingInfoError{What: "profile", Index: 0}
	}
	details, ok := levelProfile(info.Profile)
	if !ok {
		return nil, &FormatError{Reason: "unknown compliance profile " + info.Profile}
	}
	out := []ProfileDetails{details}
	if len(info.ExtraFormats) > 0 || len(info.ExtraQualities) > 0 || len(info.ExtraFeatures) > 0 {
		out = append(out, ProfileDetails{
			Formats:   info.ExtraFormats,
			Qualities: info.ExtraQualities,
			Supports:  info.ExtraFeatures,
		})
	}
	return out, nil
}

func (info *ImageInfoV3) TileSize() Size {
	return tileSizeOf(info.Tiles)
}

func (info *ImageInfoV3) TileScalingSizes() []Size {
	return tileScalingSizesOf(info.Tiles, info.Width, info.Height)
}

func (info *ImageInfoV3) OptionalSizes() []Size {
	return optionalSizesOf(info.Sizes, info.Width, info.Height)
}
