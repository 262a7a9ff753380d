package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectURLType(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://iiif.example.org/image/p1/info.json", "image"},
		{"https://iiif.example.org/image/p1/INFO.JSON", "image"},
		{"https://example.org/tiles/page1.dzi", "dzi"},
		{"https://example.org/tiles/page1.xml", "dzi"},
		{"https://example.org/book/manifest.json", "iiif"},
		{"https://example.org/api/items/123/manifest", "iiif"},
		{"https://example.org/book/collection.json", "iiif"},
		{"https://example.org/image/p1/info.json?foo=bar", "image"},
		{"https://example.org/viewer/12345", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, detectURLType(tt.url), tt.url)
	}
}
