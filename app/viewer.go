package app

import (
	"context"
	"fmt"
	"image"
	"net/http/cookiejar"
	"time"

	"iiifview/config"
	"iiifview/model/iiif"
	"iiifview/pkg/camera"
	"iiifview/pkg/geom"
	"iiifview/pkg/gohttp"
	"iiifview/pkg/loader"
	"iiifview/pkg/minimap"
	"iiifview/pkg/tilecache"
	"iiifview/pkg/tiled"
)

// Viewer is a headless pan/zoom session over one manifest. A frontend
// drives it with input deltas and reads back the visible tiles; all
// tile fetching, caching and pruning happens in here.
type Viewer struct {
	ctx      context.Context
	jar      *cookiejar.Jar
	manifest iiif.Manifest
	seq      iiif.Sequence
	page     int

	image    *tiled.TiledImage
	cam      camera.State
	level    int
	viewport geom.Vec2
	gen      uint64

	cache   *tilecache.Cache
	loader  *loader.Loader
	pixels  map[tiled.TileIndex]image.Image
	started time.Time
}

// NewViewer opens a manifest and prepares page 0. The viewport is the
// frontend's drawing area in pixels.
func NewViewer(ctx context.Context, manifestURL string, viewport geom.Vec2) (*Viewer, error) {
	jar, _ := cookiejar.New(nil)
	body, err := getJSONBody(manifestURL, jar)
	if err != nil {
		return nil, err
	}
	manifest, err := iiif.ParseManifest(body)
	if err != nil {
		return nil, err
	}
	seq, err := manifest.Sequence(0)
	if err != nil {
		return nil, err
	}

	disk, err := tilecache.NewDisk(config.CacheDir())
	if err != nil {
		disk = nil
	}
	v := &Viewer{
		ctx:      ctx,
		jar:      jar,
		manifest: manifest,
		seq:      seq,
		viewport: viewport,
		cache:    tilecache.New(config.Conf.MaxCacheItems),
		pixels:   make(map[tiled.TileIndex]image.Image),
		started:  time.Now(),
		loader: loader.New(config.Conf.Threads, disk, gohttp.Options{
			CookieFile: config.Conf.CookieFile,
			CookieJar:  jar,
			Retry:      config.Conf.Retries,
			Timeout:    float32(config.Conf.Timeout.Seconds()),
			Headers: map[string]interface{}{
				"User-Agent": config.Conf.UserAgent,
			},
		}),
	}
	if err := v.GoToPage(0); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *Viewer) Title() string {
	return v.manifest.Title(config.Conf.Language)
}

func (v *Viewer) PageCount() int {
	return v.seq.CanvasCount()
}

func (v *Viewer) Page() int {
	return v.page
}

func (v *Viewer) Image() *tiled.TiledImage {
	return v.image
}

func (v *Viewer) Camera() camera.State {
	return v.cam
}

func (v *Viewer) Level() int {
	return v.level
}

// PageLabel is the canvas label shown in the page list.
func (v *Viewer) PageLabel(index int) string {
	canvas, err := v.seq.Canvas(index)
	if err != nil {
		return ""
	}
	values := canvas.LabelValues(config.Conf.Language)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// PageThumbnailURL is the small preview used in the page list.
func (v *Viewer) PageThumbnailURL(index int) string {
	canvas, err := v.seq.Canvas(index)
	if err != nil {
		return ""
	}
	return canvas.ThumbnailURL(config.Conf.ThumbnailSize)
}

// GoToPage switches the session to another canvas: fetches its
// info.json, rebuilds the pyramid and fits the camera to the page.
func (v *Viewer) GoToPage(index int) error {
	canvas, err := v.seq.Canvas(index)
	if err != nil {
		return err
	}
	img, err := canvas.Image(0)
	if err != nil {
		return err
	}
	id := img.ServiceID()
	if id == "" {
		return fmt.Errorf("canvas %d has no image service", index)
	}

	body, err := getJSONBody(tiled.InfoURL(id), v.jar)
	if err != nil {
		return err
	}
	info, err := iiif.ParseImageInfo(body)
	if err != nil {
		return err
	}
	tiledImage, err := tiled.FromInfo(info)
	if err != nil {
		return err
	}

	v.page = index
	v.image = tiledImage
	v.gen++
	v.cache.Clear()
	v.pixels = make(map[tiled.TileIndex]image.Image)

	v.cam = camera.Fit(tiledImage.WorldMaxRect(), v.viewport)
	v.level = tiledImage.LevelAt(v.cam.Scale)
	return nil
}

// ApplyInput folds a pan/zoom gesture into the camera and adjusts the
// resolution level. Returns what changed.
func (v *Viewer) ApplyInput(mode camera.Mode, cursor geom.Vec2, deltaZoom float64, deltaMove geom.Vec2) camera.Invalidate {
	next, invalidate := v.cam.Apply(mode, cursor, v.viewport.Mul(0.5), deltaZoom, deltaMove, camera.Limits{
		MinZoomScale:      config.Conf.MinZoomScale,
		MinImageSize:      config.Conf.MinImageSize,
		WorldImageMaxSize: v.image.WorldMaxRect().Size(),
	})
	if invalidate != 0 {
		v.cam = next
		v.level = v.image.LevelAt(v.cam.Scale)
	}
	return invalidate
}

// CenterOn recentres the camera, e.g. from a minimap click.
func (v *Viewer) CenterOn(worldPos geom.Vec2) {
	v.cam.Translation = worldPos
}

// MinimapClick maps a click on the minimap to CenterOn.
func (v *Viewer) MinimapClick(normCursor geom.Vec2) {
	v.CenterOn(minimap.ClickWorldPos(v.image, normCursor))
}

// MinimapViewRect is the camera footprint drawn on the minimap.
func (v *Viewer) MinimapViewRect() geom.Rect {
	world := v.cam.ViewportWorldRect(v.viewport)
	return minimap.ViewRect(v.image, world.Min, world.Max)
}

// VisibleTile is one tile the frontend should draw this frame. Pixels
// is nil while the tile is still loading.
type VisibleTile struct {
	Tile   tiled.Tile
	Pixels image.Image
}

// Update advances the session one frame: requests missing tiles,
// collects finished loads, prunes the cache and returns the tiles to
// draw at the current level.
func (v *Viewer) Update() []VisibleTile {
	world := v.cam.ViewportWorldRect(v.viewport)
	required, _, _ := v.image.RequiredTiles(v.level, world.Min, world.Max)

	now := time.Since(v.started).Seconds()
	for _, tile := range v.cache.Update(required, uint32(v.level), now) {
		v.loader.Load(v.ctx, v.image, tile, v.gen)
	}
	v.collectLoads()
	v.prune(world)

	visible := make([]VisibleTile, 0, len(required))
	for _, tile := range required {
		visible = append(visible, VisibleTile{Tile: tile, Pixels: v.pixels[tile.Index]})
	}
	return visible
}

// collectLoads drains finished loads without blocking. Results queued
// before a page switch carry an older generation and are dropped; the
// tile index alone does not identify the page. Failed tiles leave the
// cache so the next update retries them.
func (v *Viewer) collectLoads() {
	for {
		select {
		case result := <-v.loader.Results():
			if result.Gen != v.gen {
				continue
			}
			if result.Err != nil {
				v.cache.Remove(result.Tile.Index)
				continue
			}
			v.pixels[result.Tile.Index] = result.Image
			v.cache.MarkLoaded(result.Tile.Index)
		default:
			return
		}
	}
}

// prune keeps the tiles in view at the current level and below, and
// evicts the rest once over budget.
func (v *Viewer) prune(world geom.Rect) {
	inView := make([]tilecache.RangePair, v.level+1)
	for level := 0; level <= v.level; level++ {
		_, xr, yr := v.image.RequiredTiles(level, world.Min, world.Max)
		inView[level] = tilecache.RangePair{X: xr, Y: yr}
	}
	for _, index := range v.cache.Prune(inView) {
		delete(v.pixels, index)
	}
}
