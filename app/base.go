package app

import (
	"iiifview/config"
	"iiifview/pkg/gohttp"
)

// BuildRequestHeader is the header set every outgoing request carries,
// including cookies read from the configured cookie file.
func BuildRequestHeader() map[string]string {
	httpHeaders := map[string]string{"User-Agent": config.Conf.UserAgent}
	cookies, _ := gohttp.ReadCookiesFromFile(config.Conf.CookieFile)
	if cookies != "" {
		httpHeaders["Cookie"] = cookies
	}
	return httpHeaders
}
