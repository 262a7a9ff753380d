package app

import (
	"context"
	"net/http/cookiejar"
	"net/url"

	"iiifview/config"
	"iiifview/pkg/downloader"
	"iiifview/pkg/util"
)

// Dzi downloads a DeepZoom image from its .dzi/.xml descriptor.
type Dzi struct {
	dt  *DownloadTask
	ctx context.Context
}

func NewDzi() *Dzi {
	return &Dzi{
		dt:  new(DownloadTask),
		ctx: context.Background(),
	}
}

func (d *Dzi) GetRouterInit(sUrl string) (map[string]interface{}, error) {
	msg, err := d.Run(sUrl)
	return map[string]interface{}{
		"type": "dzi",
		"url":  sUrl,
		"msg":  msg,
	}, err
}

func (d *Dzi) Run(sUrl string) (msg string, err error) {
	d.dt.UrlParsed, err = url.Parse(sUrl)
	if err != nil {
		return "", err
	}
	d.dt.Url = sUrl
	d.dt.Jar, _ = cookiejar.New(nil)
	d.dt.BookId = getBookId(sUrl)
	d.dt.SavePath = CreateDirectory(d.dt.UrlParsed.Host, d.dt.BookId, "")

	dest := d.dt.SavePath + "0001" + config.Conf.FileExt
	if util.FileExist(dest) {
		return "", nil
	}
	err = downloader.StitchDZI(d.ctx, sUrl, dest, downloader.StitchOptions{
		Headers:     BuildRequestHeader(),
		Concurrency: config.Conf.Threads,
		Retries:     config.Conf.Retries,
		Quality:     config.Conf.Quality,
	})
	return "", err
}
