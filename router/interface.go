package router

import (
	"errors"
	"strings"
	"sync"

	"iiifview/app"
	"iiifview/config"
	"iiifview/pkg/util"
)

type RouterInit interface {
	GetRouterInit(sUrl string) (map[string]interface{}, error)
}

var (
	Router = make(map[string]RouterInit)
	doInit sync.Once
)

// FactoryRouter picks the handler for a URL: Image API endpoints and
// DeepZoom descriptors are recognized by shape, everything else JSON
// is treated as a manifest, and unknown URLs are classified by their
// Content-Type.
func FactoryRouter(siteID string, sUrl string) (map[string]interface{}, error) {
	doInit.Do(func() {
		Router["iiif"] = app.NewIIIF()
		Router["image"] = app.NewImage()
		Router["dzi"] = app.NewDzi()
	})

	key := detectURLType(sUrl)
	if key == "" {
		switch util.GetHeaderContentType(sUrl, config.Conf.UserAgent, config.Conf.Timeout) {
		case "iiif":
			key = "iiif"
		case "dzi":
			key = "dzi"
		case "image":
			key = "image"
		default:
			return nil, errors.New("unsupported URL: " + sUrl)
		}
	}

	// Site-specific handlers registered by host win over the generic
	// ones.
	if handler, ok := Router[siteID]; ok {
		return handler.GetRouterInit(sUrl)
	}
	if handler, ok := Router[key]; ok {
		return handler.GetRouterInit(sUrl)
	}
	return nil, errors.New("unsupported URL: " + sUrl)
}

// detectURLType classifies a URL by its shape alone. Empty means
// undecided.
func detectURLType(sUrl string) string {
	lower := strings.ToLower(strings.Split(sUrl, "?")[0])
	switch {
	case strings.HasSuffix(lower, "/info.json"):
		return "image"
	case strings.HasSuffix(lower, ".dzi") || strings.HasSuffix(lower, ".xml"):
		return "dzi"
	case strings.HasSuffix(lower, ".json") || strings.Contains(lower, "manifest"):
		return "iiif"
	}
	return ""
}
