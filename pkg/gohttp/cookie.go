package gohttp

import (
	"os"
	"regexp"
	"strings"
)

// ReadCookiesFromFile flattens a Netscape cookie.txt into a Cookie
// header value. Returns an empty string when the file is unreadable.
func ReadCookiesFromFile(cfile string) (string, error) {
	if cfile == "" {
		return "", nil
	}
	bs, err := os.ReadFile(cfile)
	if err != nil {
		return "", err
	}
	var cookies strings.Builder
	for _, line := range strings.Split(string(bs), "\n") {
		if strings.HasPrefix(line, "#") {
			continue
		}
		text := regexp.MustCompile(`\\"`).ReplaceAllString(line, "\"")
		row := strings.Split(text, "\t")
		if len(row) < 8 {
			continue
		}
		k := strings.ReplaceAll(row[5], "\"", "")
		v := strings.ReplaceAll(row[6], "\"", "")
		cookies.WriteString(k + "=" + v + "; ")
	}
	return cookies.String(), nil
}
