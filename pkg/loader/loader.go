package loader

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"iiifview/pkg/gohttp"
	"iiifview/pkg/queue"
	"iiifview/pkg/tilecache"
	"iiifview/pkg/tiled"
)

// Result is one finished tile load. Image is nil when Err is set. Gen
// echoes the value passed to Load so the caller can discard results
// that belong to an image it has since replaced.
type Result struct {
	Tile  tiled.Tile
	Gen   uint64
	Image image.Image
	Err   error
}

// Loader fetches and decodes tiles on a bounded worker pool and hands
// the results back over a channel. Fetched bytes are written through
// to the disk cache so a tile is only pulled from the network once.
type Loader struct {
	queue   *queue.ConcurrentQueue
	disk    *tilecache.Disk
	opts    gohttp.Options
	results chan Result
}

// New creates a loader with the given worker count. disk may be nil to
// skip the on-disk byte cache.
func New(concurrency int, disk *tilecache.Disk, opts gohttp.Options) *Loader {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Loader{
		queue:   queue.NewConcurrentQueue(concurrency),
		disk:    disk,
		opts:    opts,
		results: make(chan Result, concurrency*2),
	}
}

// Results delivers finished loads. Failed tiles come back with Err set
// so the caller can evict them for a retry.
func (l *Loader) Results() <-chan Result {
	return l.results
}

// Load queues one tile. It returns immediately.
func (l *Loader) Load(ctx context.Context, img *tiled.TiledImage, tile tiled.Tile, gen uint64) {
	l.queue.Go(func() {
		if ctx.Err() != nil {
			return
		}
		url := img.TileURLAt(tile.ImagePosition)
		decoded, err := l.fetchImage(ctx, url)
		result := Result{Tile: tile, Gen: gen, Image: decoded, Err: err}
		select {
		case l.results <- result:
		case <-ctx.Done():
		}
	})
}

// Wait blocks until every queued load has finished.
func (l *Loader) Wait() {
	l.queue.Wait()
}

func (l *Loader) fetchImage(ctx context.Context, url string) (image.Image, error) {
	data, err := l.fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", url, err)
	}
	return decoded, nil
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	if l.disk != nil {
		if data, ok := l.disk.Get(url); ok {
			return data, nil
		}
	}

	resp, err := gohttp.Get(ctx, url, l.opts)
	if err != nil {
		return nil, err
	}
	if code := resp.GetStatusCode(); code != 200 {
		return nil, fmt.Errorf("fetch %s: status %d", url, code)
	}
	body, err := resp.GetBody()
	if err != nil {
		return nil, err
	}

	if l.disk != nil {
		_ = l.disk.Put(url, body)
	}
	return body, nil
}
