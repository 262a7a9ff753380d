package app

import (
	"context"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"iiifview/config"
	"iiifview/pkg/downloader"
	"iiifview/pkg/util"
)

// Image downloads a single Image API endpoint, stitching its tiles.
type Image struct {
	dt  *DownloadTask
	ctx context.Context
}

func NewImage() *Image {
	return &Image{
		dt:  new(DownloadTask),
		ctx: context.Background(),
	}
}

func (p *Image) GetRouterInit(sUrl string) (map[string]interface{}, error) {
	msg, err := p.Run(sUrl)
	return map[string]interface{}{
		"type": "image",
		"url":  sUrl,
		"msg":  msg,
	}, err
}

func (p *Image) Run(sUrl string) (msg string, err error) {
	p.dt.UrlParsed, err = url.Parse(sUrl)
	if err != nil {
		return "", err
	}
	p.dt.Url = infoURLOf(sUrl)
	p.dt.Jar, _ = cookiejar.New(nil)
	p.dt.BookId = getBookId(p.dt.Url)
	p.dt.SavePath = CreateDirectory(p.dt.UrlParsed.Host, p.dt.BookId, "")

	dest := p.dt.SavePath + "0001" + config.Conf.FileExt
	if util.FileExist(dest) {
		return "", nil
	}
	err = downloader.StitchIIIF(p.ctx, p.dt.Url, dest, downloader.StitchOptions{
		Headers:     BuildRequestHeader(),
		Concurrency: config.Conf.Threads,
		Retries:     config.Conf.Retries,
		Quality:     config.Conf.Quality,
	})
	return "", err
}

// infoURLOf normalizes an image endpoint to its info.json URL.
func infoURLOf(sUrl string) string {
	if strings.HasSuffix(sUrl, "/info.json") {
		return sUrl
	}
	return strings.TrimSuffix(sUrl, "/") + "/info.json"
}
