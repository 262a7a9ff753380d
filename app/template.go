package app

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strings"

	"github.com/jzelinskie/whirlpool"

	"iiifview/config"
	"iiifview/pkg/gohttp"
)

// DownloadTask carries the state of one in-flight URL.
type DownloadTask struct {
	Index     int
	Url       string
	UrlParsed *url.URL
	SavePath  string
	BookId    string
	Title     string
	Jar       *cookiejar.Jar
}

// getBookId derives a stable directory name from a URL.
func getBookId(sUrl string) string {
	if sUrl == "" {
		return ""
	}
	w := whirlpool.New()
	_, _ = io.WriteString(w, sUrl)
	return hex.EncodeToString(w.Sum(nil))[:16]
}

func getBody(sUrl string, jar *cookiejar.Jar) ([]byte, error) {
	referer := url.QueryEscape(sUrl)
	ctx := context.Background()
	cli := gohttp.NewClient(ctx, gohttp.Options{
		CookieFile: config.Conf.CookieFile,
		CookieJar:  jar,
		Timeout:    float32(config.Conf.Timeout.Seconds()),
		Retry:      config.Conf.Retries,
		Headers: map[string]interface{}{
			"User-Agent": config.Conf.UserAgent,
			"Referer":    referer,
		},
	})
	resp, err := cli.Get(sUrl)
	if err != nil {
		return nil, err
	}
	bs, _ := resp.GetBody()
	if bs == nil {
		return nil, fmt.Errorf("ErrCode:%d, %s", resp.GetStatusCode(), resp.GetReasonPhrase())
	}
	return bs, nil
}

// getJSONBody fetches a JSON document, skipping any junk bytes some
// servers emit before the opening brace.
func getJSONBody(sUrl string, jar *cookiejar.Jar) ([]byte, error) {
	bs, err := getBody(sUrl, jar)
	if err != nil {
		return nil, err
	}
	if len(bs) > 0 && bs[0] != '{' {
		for i := 0; i < len(bs); i++ {
			if bs[i] == '{' {
				bs = bs[i:]
				break
			}
		}
	}
	return bs, nil
}

func CreateDirectory(domain, bookId, volumeId string) string {
	bookIdEncode := getBookId(bookId)
	domainNew := strings.ReplaceAll(domain, ":", "_")
	dirPath := config.Conf.SaveFolder + string(os.PathSeparator) + domainNew + "_" + bookIdEncode + string(os.PathSeparator)
	if volumeId != "" {
		dirPath += "vol." + volumeId + string(os.PathSeparator)
	}
	_ = os.MkdirAll(dirPath, os.ModePerm)
	return dirPath
}
