package iiif

// Presentation API 2.x wire structs.
// https://iiif.io/api/presentation/2.1/

type ManifestV2 struct {
	Context     string             `json:"@context"`
	ID          string             `json:"@id"`
	Type        string             `json:"@type"`
	Label       Label              `json:"label"`
	Description Label              `json:"description"`
	Attribution Label              `json:"attribution"`
	License     OneOrMany[URILink] `json:"license"`
	Logo        OneOrMany[URILink] `json:"logo"`
	Sequences   []SequenceV2       `json:"sequences"`
}

type SequenceV2 struct {
	ID       string     `json:"@id"`
	Type     string     `json:"@type"`
	Label    Label      `json:"label"`
	Canvases []CanvasV2 `json:"canvases"`
}

type CanvasV2 struct {
	ID        string             `json:"@id"`
	Type      string             `json:"@type"`
	Label     Label              `json:"label"`
	Width     int                `json:"width"`
	Height    int                `json:"height"`
	Images    []ImageV2          `json:"images"`
	Thumbnail OneOrMany[URILink] `json:"thumbnail"`
}

type ImageV2 struct {
	ID         string     `json:"@id"`
	Type       string     `json:"@type"`
	Motivation string     `json:"motivation"`
	On         string     `json:"on"`
	Resource   ResourceV2 `json:"resource"`
}

type ResourceV2 struct {
	ID      string    `json:"@id"`
	Type    string    `json:"@type"`
	Format  string    `json:"format"`
	Width   int       `json:"width"`
	Height  int       `json:"height"`
	Service ServiceV2 `json:"service"`
}

type ServiceV2 struct {
	Context string `json:"@context"`
	ID      string `json:"@id"`
	Profile string `json:"profile"`
}

func (m *ManifestV2) Title(lang string) string {
	return joinLines(m.Label.Values(lang))
}

func (m *ManifestV2) AttributionValues(lang string) []string {
	return m.Attribution.Values(lang)
}

// RequiredStatements only exists in v3.
func (m *ManifestV2) RequiredStatements(lang string) []string {
	return nil
}

func (m *ManifestV2) DescriptionValues(lang string) []string {
	return m.Description.Values(lang)
}

func (m *ManifestV2) LicenseValues() []string {
	return linkIDs(m.License)
}

func (m *ManifestV2) LogoValues() []string {
	return linkIDs(m.Logo)
}

func (m *ManifestV2) SequenceCount() int {
	return len(m.Sequences)
}

func (m *ManifestV2) Sequence(index int) (Sequence, error) {
	if index < 0 || index >= len(m.Sequences) {
		return nil, &MissingInfoError{What: "sequence", Index: index}
	}
	return &m.Sequences[index], nil
}

func (s *SequenceV2) LabelValues(lang string) []string {
	return s.Label.Values(lang)
}

func (s *SequenceV2) CanvasCount() int {
	return len(s.Canvases)
}

func (s *SequenceV2) Canvas(index int) (Canvas, error) {
	if index < 0 || index >= len(s.Canvases) {
		return nil, &MissingInfoError{What: "canvas", Index: index}
	}
	return &s.Canvases[index], nil
}

func (c *CanvasV2) LabelValues(lang string) []string {
	return c.Label.Values(lang)
}

// Thumbnail prefers the declared link over a derived one so we never
// have to probe the remote image for its size.
func (c *CanvasV2) ThumbnailURL(height int) string {
	if link, ok := c.Thumbnail.First(); ok && link.ID != "" {
		return link.ID
	}
	if len(c.Images) > 0 {
		if service := c.Images[0].ServiceID(); service != "" {
			return canvasThumbnailURL(service, height)
		}
	}
	return ""
}

func (c *CanvasV2) Image(index int) (Image, error) {
	if index < 0 || index >= len(c.Images) {
		return nil, &MissingInfoError{What: "image", Index: index}
	}
	return &c.Images[index], nil
}

func (i *ImageV2) ServiceID() string {
	return i.Resource.Service.ID
}

func (i *ImageV2) ImageID() string {
	return i.Resource.ID
}

func (i *ImageV2) ImageType() string {
	return i.Resource.Type
}

func linkIDs(links OneOrMany[URILink]) []string {
	if len(links) == 0 {
		return nil
	}
	out := make([]string, 0, len(links))
	for _, link := range links {
		out = append(out, link.ID)
	}
	return out
}
