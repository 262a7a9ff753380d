package gohttp

import (
	"net/http/cookiejar"
	"time"
)

// Options object
type Options struct {
	Debug       bool
	Concurrency int // chunked download workers
	BaseURI     string
	Timeout     float32 // seconds
	timeout     time.Duration
	Retry       int
	Query       interface{}
	Headers     map[string]interface{}
	Cookies     interface{}
	CookieFile  string // Netscape cookie.txt
	CookieJar   *cookiejar.Jar
	FormParams  map[string]interface{}
	JSON        interface{}
	Body        []byte
	Proxy       string
	DestFile    string // save the response to this file
	Overwrite   bool
}
