package downloader

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"iiifview/model/iiif"
	"iiifview/pkg/geom"
	"iiifview/pkg/gohttp"
	"iiifview/pkg/progressbar"
	"iiifview/pkg/queue"
	"iiifview/pkg/tiled"
)

// StitchOptions configures a tile stitch run.
type StitchOptions struct {
	Headers     map[string]string
	Concurrency int
	Retries     int
	Quality     int // JPEG encode quality for .jpg output
}

func (o *StitchOptions) defaults() {
	if o.Concurrency <= 0 {
		o.Concurrency = 8
	}
	if o.Retries <= 0 {
		o.Retries = 3
	}
	if o.Quality <= 0 {
		o.Quality = 90
	}
}

// StitchIIIF fetches a IIIF image tile by tile at full resolution and
// writes the merged result to dest.
func StitchIIIF(ctx context.Context, infoURL, dest string, opts StitchOptions) error {
	opts.defaults()

	data, err := fetch(ctx, infoURL, opts)
	if err != nil {
		return fmt.Errorf("fetch image info: %w", err)
	}
	info, err := iiif.ParseImageInfo(data)
	if err != nil {
		return fmt.Errorf("parse image info: %w", err)
	}
	img, err := tiled.FromInfo(info)
	if err != nil {
		return err
	}

	// The tiles of the last level cover the image at full resolution.
	level := img.LevelCount() - 1
	world := img.WorldMaxRect()
	tiles, _, _ := img.RequiredTiles(level, world.Min, world.Max)
	if len(tiles) == 0 {
		return fmt.Errorf("no tiles to fetch for %s", infoURL)
	}

	maxSize := img.MaxSize()
	final := image.NewRGBA(image.Rect(0, 0, int(maxSize.X), int(maxSize.Y)))
	bar := progressbar.Default(int64(len(tiles)), "IIIF")

	q := queue.NewConcurrentQueue(opts.Concurrency)
	var mu sync.Mutex
	errChan := make(chan error, 1)

	for _, tile := range tiles {
		tile := tile
		q.Go(func() {
			if ctx.Err() != nil {
				return
			}
			url := img.TileURLAt(tile.ImagePosition)
			decoded, err := fetchImage(ctx, url, opts)
			if err != nil {
				select {
				case errChan <- fmt.Errorf("tile (%d,%d): %w", tile.Index.X, tile.Index.Y, err):
				default:
				}
				return
			}
			mu.Lock()
			drawTile(final, tile.ImagePosition, decoded)
			mu.Unlock()
			bar.Add(1)
		})
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

func drawTile(dst *image.RGBA, imagePosition geom.Rect, src image.Image) {
	rect := image.Rect(
		int(imagePosition.Min.X), int(imagePosition.Min.Y),
		int(imagePosition.Max.X), int(imagePosition.Max.Y),
	)
	draw.Draw(dst, rect, src, src.Bounds().Min, draw.Src)
}

func fetch(ctx context.Context, url string, opts StitchOptions) ([]byte, error) {
	headers := make(map[string]interface{}, len(opts.Headers))
	for k, v := range opts.Headers {
		headers[k] = v
	}
	resp, err := gohttp.Get(ctx, url, gohttp.Options{
		Headers: headers,
		Retry:   opts.Retries,
	})
	if err != nil {
		return nil, err
	}
	if code := resp.GetStatusCode(); code != 200 {
		return nil, fmt.Errorf("status %d for %s", code, url)
	}
	return resp.GetBody()
}

func fetchImage(ctx context.Context, url string, opts StitchOptions) (image.Image, error) {
	data, err := fetch(ctx, url, opts)
	if err != nil {
		return nil, err
	}
	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return decoded, nil
}

func saveImage(img image.Image, path string, quality int) error {
	outFile, err := os.Create(path)
	if err != nil {
		return err
	}
	defer outFile.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".jpg", ".jpeg":
		return jpeg.Encode(outFile, img, &jpeg.Options{Quality: quality})
	case ".png":
		return png.Encode(outFile, img)
	default:
		return fmt.Errorf("unsupported image format: %s", ext)
	}
}
