package downloader

import (
	"context"
	"fmt"
	"image"
	"net/url"
	"path"
	"strings"
	"sync"

	"iiifview/model/iiif"
	"iiifview/pkg/progressbar"
	"iiifview/pkg/queue"
)

// StitchDZI fetches a DeepZoom image at its deepest pyramid level and
// writes the merged result to dest. Tiles live next to the descriptor
// under "<name>_files/<level>/<x>_<y>.<format>".
func StitchDZI(ctx context.Context, dziURL, dest string, opts StitchOptions) error {
	opts.defaults()

	data, err := fetch(ctx, dziURL, opts)
	if err != nil {
		return fmt.Errorf("fetch descriptor: %w", err)
	}
	dzi, err := iiif.ParseDzi(data)
	if err != nil {
		return fmt.Errorf("parse descriptor: %w", err)
	}

	base := dziFilesURL(dziURL)
	level := dzi.MaxLevel()
	tileSize := dzi.TileSize
	cols := (dzi.Size.Width + tileSize - 1) / tileSize
	rows := (dzi.Size.Height + tileSize - 1) / tileSize

	final := image.NewRGBA(image.Rect(0, 0, dzi.Size.Width, dzi.Size.Height))
	bar := progressbar.Default(int64(cols*rows), "DZI")

	q := queue.NewConcurrentQueue(opts.Concurrency)
	var mu sync.Mutex
	errChan := make(chan error, 1)

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			x, y := x, y
			q.Go(func() {
				if ctx.Err() != nil {
					return
				}
				tileURL := fmt.Sprintf("%s/%d/%d_%d.%s", base, level, x, y, dzi.Format)
				decoded, err := fetchImage(ctx, tileURL, opts)
				if err != nil {
					select {
					case errChan <- fmt.Errorf("tile (%d,%d): %w", x, y, err):
					default:
					}
					return
				}
				mu.Lock()
				drawDziTile(final, decoded, x, y, tileSize, dzi.Overlap)
				mu.Unlock()
				bar.Add(1)
			})
		}
	}
	q.Wait()
	bar.Finish()

	select {
	case err := <-errChan:
		return err
	default:
	}
	return saveImage(final, dest, opts.Quality)
}

// drawDziTile places one tile, skipping the overlap border that every
// non-edge tile shares with its neighbours.
func drawDziTile(dst *image.RGBA, src image.Image, x, y, tileSize, overlap int) {
	srcMin := src.Bounds().Min
	offX, offY := 0, 0
	if x > 0 {
		offX = overlap
	}
	if y > 0 {
		offY = overlap
	}
	bounds := src.Bounds()
	width := bounds.Dx() - offX
	height := bounds.Dy() - offY

	rect := image.Rect(x*tileSize, y*tileSize, x*tileSize+width, y*tileSize+height)
	rect = rect.Intersect(dst.Bounds())
	srcPoint := image.Point{X: srcMin.X + offX, Y: srcMin.Y + offY}
	for py := 0; py < rect.Dy(); py++ {
		for px := 0; px < rect.Dx(); px++ {
			dst.Set(rect.Min.X+px, rect.Min.Y+py, src.At(srcPoint.X+px, srcPoint.Y+py))
		}
	}
}

// dziFilesURL maps a descriptor URL onto its tile directory.
func dziFilesURL(dziURL string) string {
	u, err := url.Parse(dziURL)
	if err != nil {
		return strings.TrimSuffix(dziURL, path.Ext(dziURL)) + "_files"
	}
	u.Path = strings.TrimSuffix(u.Path, path.Ext(u.Path)) + "_files"
	u.RawQuery = ""
	return u.String()
}
