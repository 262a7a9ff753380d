package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configContent = `[paths]
;input = urls.txt
;output =
;cookie = cookie.txt

[download]
;extension = .jpg
;threads = 8
;concurrent = 16
;retries = 3
;timeout = 300s
;quality = 90

[custom]
;sequence =
;user-agent =

[dzi]
;dzi = true
;format = full/full/0/default.jpg

[viewer]
;max-cache-items = 4096
;thumbnail-size = 64
;min-zoom-scale = 0.25
;min-image-size = 256
;language = en
`

// CreateConfigIfNotExists writes a commented-out config template the
// first time the program runs.
func CreateConfigIfNotExists(configPath string) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		dir := filepath.Dir(configPath)
		if dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("create config directory: %w", err)
			}
		}
		if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
			return fmt.Errorf("write config file: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("stat config file: %w", err)
	}
	return nil
}
