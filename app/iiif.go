package app

import (
	"context"
	"fmt"
	"log"
	"net/http/cookiejar"
	"net/url"
	"regexp"

	"iiifview/config"
	"iiifview/model/iiif"
	"iiifview/pkg/downloader"
	"iiifview/pkg/gohttp"
	"iiifview/pkg/tiled"
	"iiifview/pkg/util"
)

// IIIF downloads every page of a Presentation API manifest.
type IIIF struct {
	dt       *DownloadTask
	ctx      context.Context
	manifest iiif.Manifest
}

func NewIIIF() *IIIF {
	return &IIIF{
		dt:  new(DownloadTask),
		ctx: context.Background(),
	}
}

func (i *IIIF) GetRouterInit(sUrl string) (map[string]interface{}, error) {
	msg, err := i.Run(sUrl)
	return map[string]interface{}{
		"type": "iiif",
		"url":  sUrl,
		"msg":  msg,
	}, err
}

func (i *IIIF) Run(sUrl string) (msg string, err error) {
	i.dt.UrlParsed, err = url.Parse(sUrl)
	if err != nil {
		return "", err
	}
	i.dt.Url = sUrl
	i.dt.Jar, _ = cookiejar.New(nil)
	i.dt.BookId = i.getBookId(i.dt.Url)
	if i.dt.BookId == "" {
		return "requested URL was not found.", err
	}
	return i.download()
}

func (i *IIIF) getBookId(sUrl string) string {
	m := regexp.MustCompile(`/([^/]+)/manifest.json`).FindStringSubmatch(sUrl)
	if m != nil {
		return m[1]
	}
	return getBookId(sUrl)
}

func (i *IIIF) download() (msg string, err error) {
	body, err := getJSONBody(i.dt.Url, i.dt.Jar)
	if err != nil || body == nil {
		return "requested URL was not found.", err
	}

	i.manifest, err = iiif.ParseManifest(body)
	if err != nil {
		return "", err
	}
	i.printMetadata()

	canvases, err := i.getCanvases()
	if err != nil || canvases == nil {
		return "", err
	}
	i.dt.SavePath = CreateDirectory(i.dt.UrlParsed.Host, i.dt.BookId, "")
	return i.do(canvases)
}

func (i *IIIF) printMetadata() {
	lang := config.Conf.Language
	if title := i.manifest.Title(lang); title != "" {
		i.dt.Title = title
		fmt.Println(title)
	}
	for _, s := range i.manifest.AttributionValues(lang) {
		fmt.Println(s)
	}
	for _, s := range i.manifest.RequiredStatements(lang) {
		fmt.Println(s)
	}
	for _, s := range i.manifest.LicenseValues() {
		fmt.Println(s)
	}
}

// getCanvases walks sequence 0 and collects one URL per page: the
// info.json endpoint when stitching, a direct image URL otherwise.
func (i *IIIF) getCanvases() ([]string, error) {
	seq, err := i.manifest.Sequence(0)
	if err != nil {
		return nil, err
	}

	size := seq.CanvasCount()
	canvases := make([]string, 0, size)
	for k := 0; k < size; k++ {
		canvas, err := seq.Canvas(k)
		if err != nil {
			return nil, err
		}
		img, err := canvas.Image(0)
		if err != nil {
			return nil, err
		}
		id := img.ServiceID()
		if id == "" {
			// No image service, fall back to the static image.
			canvases = append(canvases, img.ImageID())
			continue
		}
		if config.Conf.UseDzi {
			canvases = append(canvases, tiled.InfoURL(id))
		} else {
			canvases = append(canvases, id+"/"+config.Conf.Format)
		}
	}
	return canvases, nil
}

func (i *IIIF) do(imgUrls []string) (msg string, err error) {
	if config.Conf.UseDzi {
		i.doStitch(imgUrls)
	} else {
		i.doNormal(imgUrls)
	}
	return "", nil
}

func (i *IIIF) doStitch(iiifUrls []string) bool {
	if iiifUrls == nil {
		return false
	}
	referer := url.QueryEscape(i.dt.Url)
	headers := BuildRequestHeader()
	headers["Origin"] = referer
	headers["Referer"] = referer

	size := len(iiifUrls)
	for k, uri := range iiifUrls {
		if uri == "" || !config.PageRange(k, size) {
			continue
		}
		sortId := fmt.Sprintf("%04d", k+1)
		dest := i.dt.SavePath + sortId + config.Conf.FileExt
		if util.FileExist(dest) {
			continue
		}
		log.Printf("Get %d/%d  %s\n", k+1, size, uri)
		err := downloader.StitchIIIF(i.ctx, uri, dest, downloader.StitchOptions{
			Headers:     headers,
			Concurrency: config.Conf.Threads,
			Retries:     config.Conf.Retries,
			Quality:     config.Conf.Quality,
		})
		if err != nil {
			fmt.Println(err)
		}
	}
	return true
}

func (i *IIIF) doNormal(imgUrls []string) bool {
	if imgUrls == nil {
		return false
	}
	size := len(imgUrls)
	fmt.Println()
	ctx := context.Background()
	for k, uri := range imgUrls {
		if uri == "" || !config.PageRange(k, size) {
			continue
		}
		ext := util.FileExt(uri)
		sortId := fmt.Sprintf("%04d", k+1)
		dest := i.dt.SavePath + sortId + ext
		if util.FileExist(dest) {
			continue
		}
		log.Printf("Get %d/%d  %s\n", k+1, size, uri)
		opts := gohttp.Options{
			DestFile:    dest,
			Overwrite:   false,
			Concurrency: 1,
			CookieFile:  config.Conf.CookieFile,
			CookieJar:   i.dt.Jar,
			Retry:       config.Conf.Retries,
			Headers: map[string]interface{}{
				"User-Agent": config.Conf.UserAgent,
			},
		}
		_, err := gohttp.FastGet(ctx, uri, opts)
		if err != nil {
			fmt.Println(err)
		}
		fmt.Println()
	}
	return true
}
