package iiif

import "fmt"

// Presentation API 3.0 wire structs.
// https://iiif.io/api/presentation/3.0/

type ManifestV3 struct {
	Context           OneOrMany[string]   `json:"@context"`
	ID                string              `json:"id"`
	Type              string              `json:"type"`
	Label             LabelMap            `json:"label"`
	Summary           OneOrMany[LabelMap] `json:"summary"`
	Rights            string              `json:"rights"`
	RequiredStatement *LabelValuePair     `json:"requiredStatement"`
	Provider          []ProviderV3        `json:"provider"`
	Items             []CanvasV3          `json:"items"`
}

type ProviderV3 struct {
	ID    string             `json:"id"`
	Type  string             `json:"type"`
	Label LabelMap           `json:"label"`
	Logo  OneOrMany[URILink] `json:"logo"`
}

type CanvasV3 struct {
	ID        string             `json:"id"`
	Type      string             `json:"type"`
	Label     LabelMap           `json:"label"`
	Width     int                `json:"width"`
	Height    int                `json:"height"`
	Thumbnail OneOrMany[URILink] `json:"thumbnail"`
	Items     []AnnotationPageV3 `json:"items"`
}

type AnnotationPageV3 struct {
	ID    string         `json:"id"`
	Type  string         `json:"type"`
	Items []AnnotationV3 `json:"items"`
}

type AnnotationV3 struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Motivation string `json:"motivation"`
	Body       BodyV3 `json:"body"`
	Target     string `json:"target"`
}

type BodyV3 struct {
	ID      string      `json:"id"`
	Type    string      `json:"type"`
	Format  string      `json:"format"`
	Width   int         `json:"width"`
	Height  int         `json:"height"`
	Service []ServiceV3 `json:"service"`
}

// ServiceV3 may use the v3 id/type keys or the legacy @id/@type keys,
// e.g. https://da.library.pref.osaka.jp/api/items/03-0000183/manifest.json
type ServiceV3 struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	LegacyID   string `json:"@id"`
	LegacyType string `json:"@type"`
	Profile    string `json:"profile"`
}

func (s *ServiceV3) ServiceID() string {
	if s.ID != "" {
		return s.ID
	}
	return s.LegacyID
}

func (m *ManifestV3) Title(lang string) string {
	return joinLines(m.Label.Values(lang))
}

// AttributionValues maps the v3 provider labels onto the v2 notion of
// an attribution line.
func (m *ManifestV3) AttributionValues(lang string) []string {
	var out []string
	for i := range m.Provider {
		out = append(out, m.Provider[i].Label.Values(lang)...)
	}
	return out
}

func (m *ManifestV3) RequiredStatements(lang string) []string {
	if m.RequiredStatement == nil {
		return nil
	}
	labels := m.RequiredStatement.Label.Values(lang)
	values := m.RequiredStatement.Value.Values(lang)
	n := len(labels)
	if len(values) < n {
		n = len(values)
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, fmt.Sprintf("%s: %s", labels[i], values[i]))
	}
	return out
}

func (m *ManifestV3) DescriptionValues(lang string) []string {
	var out []string
	for _, summary := range m.Summary {
		out = append(out, summary.Values(lang)...)
	}
	return out
}

func (m *ManifestV3) LicenseValues() []string {
	if m.Rights == "" {
		return nil
	}
	return []string{m.Rights}
}

func (m *ManifestV3) LogoValues() []string {
	var out []string
	for i := range m.Provider {
		out = append(out, linkIDs(m.Provider[i].Logo)...)
	}
	return out
}

// A v3 manifest is its own single sequence.
func (m *ManifestV3) SequenceCount() int {
	return 1
}

func (m *ManifestV3) Sequence(index int) (Sequence, error) {
	return m, nil
}

func (m *ManifestV3) LabelValues(lang string) []string {
	return nil
}

func (m *ManifestV3) CanvasCount() int {
	return len(m.Items)
}

func (m *ManifestV3) Canvas(index int) (Canvas, error) {
	if index < 0 || index >= len(m.Items) {
		return nil, &MissingInfoError{What: "canvas", Index: index}
	}
	return &m.Items[index], nil
}

func (c *CanvasV3) LabelValues(lang string) []string {
	return c.Label.Values(lang)
}

func (c *CanvasV3) ThumbnailURL(height int) string {
	if link, ok := c.Thumbnail.First(); ok && link.ID != "" {
		return link.ID
	}
	if len(c.Items) > 0 && len(c.Items[0].Items) > 0 {
		if service := c.Items[0].Items[0].ServiceID(); service != "" {
			return canvasThumbnailURL(service, height)
		}
	}
	return ""
}

func (c *CanvasV3) Image(index int) (Image, error) {
	if index < 0 || index >= len(c.Items) {
		return nil, &MissingInfoError{What: "annotation page", Index: index}
	}
	page := &c.Items[index]
	if len(page.Items) == 0 {
		return nil, &MissingInfoError{What: "annotation", Index: index}
	}
	return &page.Items[0], nil
}

func (a *AnnotationV3) ServiceID() string {
	if len(a.Body.Service) == 0 {
		return ""
	}
	return a.Body.Service[0].ServiceID()
}

func (a *AnnotationV3) ImageID() string {
	return a.Body.ID
}

func (a *AnnotationV3) ImageType() string {
	return a.Body.Type
}
