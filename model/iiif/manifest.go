package iiif

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MissingInfoError reports an absent sequence, canvas or image.
type MissingInfoError struct {
	What  string
	Index int
}

func (e *MissingInfoError) Error() string {
	return fmt.Sprintf("missing %s at pos '%d'", e.What, e.Index)
}

// FormatError reports a document we cannot make sense of.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "iiif format error: " + e.Reason
}

// Manifest is the version-independent view over a v2 or v3 manifest.
type Manifest interface {
	Title(lang string) string
	AttributionValues(lang string) []string
	RequiredStatements(lang string) []string
	DescriptionValues(lang string) []string
	LicenseValues() []string
	LogoValues() []string
	SequenceCount() int
	Sequence(index int) (Sequence, error)
}

type Sequence interface {
	LabelValues(lang string) []string
	CanvasCount() int
	Canvas(index int) (Canvas, error)
}

type Canvas interface {
	LabelValues(lang string) []string
	ThumbnailURL(height int) string
	Image(index int) (Image, error)
}

type Image interface {
	ServiceID() string
	ImageID() string
	ImageType() string
}

type contextProbe struct {
	Context OneOrMany[string] `json:"@context"`
}

// ManifestVersion detects the Presentation API version from @context.
// Anything that is not explicitly v3 is treated as v2, which matches
// how the long tail of library servers behaves.
func ManifestVersion(data []byte) int {
	var probe contextProbe
	if err := json.Unmarshal(data, &probe); err != nil {
		return 2
	}
	for _, c := range probe.Context {
		if strings.Contains(c, "presentation/3/") {
			return 3
		}
	}
	return 2
}

// ParseManifest decodes a v2 or v3 manifest and verifies that sequence 0,
// canvas 0 and image 0 are all reachable.
func ParseManifest(data []byte) (Manifest, error) {
	var manifest Manifest
	switch ManifestVersion(data) {
	case 3:
		var m ManifestV3
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, err
		}
		manifest = &m
	default:
		var m ManifestV2
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, err
		}
		manifest = &m
	}

	seq, err := manifest.Sequence(0)
	if err != nil {
		return nil, err
	}
	canvas, err := seq.Canvas(0)
	if err != nil {
		return nil, err
	}
	if _, err = canvas.Image(0); err != nil {
		return nil, err
	}
	return manifest, nil
}

func canvasThumbnailURL(service string, height int) string {
	return fmt.Sprintf("%s/full/,%d/0/default.jpg", service, height)
}

func joinLines(values []string) string {
	return strings.Join(values, "\n")
}
