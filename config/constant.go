package config

import (
	"os"
	"path/filepath"
	"time"
)

const (
	Version              = "25.0825"
	defaultUserAgent     = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/135.0.0.0 Safari/537.36"
	defaultFileExtension = ".jpg"

	defaultRetry   = 3
	defaultTimeout = 300 * time.Second
	defaultQuality = 90
	defaultFormat  = "full/full/0/default.jpg"

	// Viewer defaults.
	defaultMaxCacheItems = 4096
	defaultThumbnailSize = 64
	defaultMinZoomScale  = 0.25
	defaultMinImageSize  = 256
	defaultLanguage      = "en"
)

func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "iiifview")
}

func CacheDir() string {
	return filepath.Join(HomeDir(), "cache")
}
