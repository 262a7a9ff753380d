package util

import (
	"fmt"
	"os"
)

var byteUnits = []string{"B", "KB", "MB", "GB", "TB", "PB"}

func ByteUnitString(n int64) string {
	var unit string
	size := float64(n)
	for i := 1; i < len(byteUnits); i++ {
		if size < 1000 {
			unit = byteUnits[i-1]
			break
		}
		size = size / 1000
	}
	return fmt.Sprintf("%.3g %s", size, unit)
}

func FileExist(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Size() > 0
}

// FileExt returns the extension of a URL path, ignoring any query
// string.
func FileExt(uri string) string {
	ext := ""
	k := len(uri)
	for i := k - 1; i >= 0; i-- {
		if uri[i] == '?' {
			k = i
			continue
		}
		if uri[i] == '.' {
			ext = uri[i:k]
			break
		}
	}
	return ext
}
