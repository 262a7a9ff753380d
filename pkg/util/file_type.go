package util

import (
	"crypto/tls"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

var (
	contentTypeCache    = sync.Map{}
	contentTypeMappings = map[string]string{
		"application/ld+json": "iiif",
		"application/json":    "iiif",
		"application/xml":     "dzi",
		"text/xml":            "dzi",
		"text/html":           "html",
		"image/jpeg":          "image",
		"image/png":           "image",
		"image/jp2":           "image",
	}
)

// GetHeaderContentType classifies a URL by extension, falling back to
// a ranged request for the Content-Type header. Returns one of "iiif",
// "dzi", "image" or "html".
func GetHeaderContentType(sUrl, userAgent string, timeout time.Duration) string {
	if cached, ok := contentTypeCache.Load(sUrl); ok {
		return cached.(string)
	}

	switch filepath.Ext(strings.Split(sUrl, "?")[0]) {
	case ".json":
		return cacheAndReturn(sUrl, "iiif")
	case ".dzi", ".xml":
		return cacheAndReturn(sUrl, "dzi")
	}

	return determineContentTypeByRequest(sUrl, userAgent, timeout)
}

func determineContentTypeByRequest(url, userAgent string, timeout time.Duration) string {
	client := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			TLSClientConfig:   &tls.Config{InsecureSkipVerify: true},
			DisableKeepAlives: true,
		},
	}

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		log.Printf("create request: %v", err)
		return "image"
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Range", "bytes=0-0")

	resp, err := client.Do(req)
	if err != nil {
		log.Printf("request failed: %v", err)
		return "image"
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		return cacheAndReturn(url, "image")
	}
	contentType = strings.TrimSpace(strings.Split(contentType, ";")[0])

	if result, ok := contentTypeMappings[contentType]; ok {
		return cacheAndReturn(url, result)
	}
	return cacheAndReturn(url, "image")
}

func cacheAndReturn(url, result string) string {
	contentTypeCache.Store(url, result)
	return result
}
