package iiif

import (
	"encoding/json"
	"strings"
)

// Image API 2.x info.json.
// https://iiif.io/api/image/2.1/
type ImageInfoV2 struct {
	Context  string                 `json:"@context"`
	ID       string                 `json:"@id"`
	Protocol string                 `json:"protocol"`
	Width    int                    `json:"width"`
	Height   int                    `json:"height"`
	Sizes    []Size                 `json:"sizes"`
	Tiles    []TileInfo             `json:"tiles"`
	Profile  OneOrMany[ProfileItem] `json:"profile"`
}

// ProfileItem is one entry of a v2 profile: either a compliance level
// URL or an inline details object.
type ProfileItem struct {
	Level   string
	Details *ProfileDetails
}

func (p *ProfileItem) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &p.Level)
	}
	p.Details = &ProfileDetails{}
	return json.Unmarshal(data, p.Details)
}

// complianceLevel maps a v2 compliance URL onto its level name.
// http://iiif.io/api/image/2/level2.json and the http/https and
// trailing .json variants all occur in the wild.
func complianceLevel(url string) (string, bool) {
	for _, level := range []string{"level0", "level1", "level2"} {
		if strings.Contains(url, level) {
			return level, true
		}
	}
	return "", false
}

func (info *ImageInfoV2) Endpoint() string {
	return info.ID
}

func (info *ImageInfoV2) ImageWidth() int {
	return info.Width
}

func (info *ImageInfoV2) ImageHeight() int {
	return info.Height
}

// Profiles expands the compliance URLs and keeps any inline details
// objects as written.
func (info *ImageInfoV2) Profiles() ([]ProfileDetails, error) {
	if len(info.Profile) == 0 {
		return nil, &MissingInfoError{What: "profile", Index: 0}
	}
	out := make([]ProfileDetails, 0, len(info.Profile))
	for _, item := range info.Profile {
		if item.Details != nil {
			out = append(out, *item.Details)
			continue
		}
		level, ok := complianceLevel(item.Level)
		if !ok {
			return nil, &FormatError{Reason: "unknown compliance profile " + item.Level}
		}
		details, _ := levelProfile(level)
		out = append(out, details)
	}
	return out, nil
}

func (info *ImageInfoV2) TileSize() Size {
	return tileSizeOf(info.Tiles)
}

func (info *ImageInfoV2) TileScalingSizes() []Size {
	return tileScalingSizesOf(info.Tiles, info.Width, info.Height)
}

func (info *ImageInfoV2) OptionalSizes() []Size {
	return optionalSizesOf(info.Sizes, info.Width, info.Height)
}
