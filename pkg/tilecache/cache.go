package tilecache

import (
	"sort"
	"sync"

	"iiifview/pkg/tiled"
)

// Cache tracks which tiles are resident and when they were last on
// screen, and decides evictions. It holds indices and bookkeeping
// only, the decoded pixels live with the caller.
type Cache struct {
	mu       sync.Mutex
	maxItems int
	items    map[tiled.TileIndex]*entry
}

type entry struct {
	tile        tiled.Tile
	loaded      bool
	lastVisible float64
}

func New(maxItems int) *Cache {
	return &Cache{
		maxItems: maxItems,
		items:    make(map[tiled.TileIndex]*entry),
	}
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[tiled.TileIndex]*entry)
}

// Remove drops a tile so the next update reloads it. Failed loads go
// through here to get their retry.
func (c *Cache) Remove(index tiled.TileIndex) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, index)
}

// MarkLoaded records that a tile's pixels arrived.
func (c *Cache) MarkLoaded(index tiled.TileIndex) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.items[index]; ok {
		e.loaded = true
	}
}

func (c *Cache) Loaded(index tiled.TileIndex) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.items[index]
	return ok && e.loaded
}

// Update admits the required tiles and returns the ones not yet
// resident, which the caller should start loading. Resident tiles at
// the current level get their last-visible time refreshed.
func (c *Cache) Update(required []tiled.Tile, currentLevel uint32, now float64) []tiled.Tile {
	c.mu.Lock()
	defer c.mu.Unlock()

	var missing []tiled.Tile
	for _, tile := range required {
		if _, ok := c.items[tile.Index]; ok {
			continue
		}
		c.items[tile.Index] = &entry{tile: tile}
		missing = append(missing, tile)
	}

	for index, e := range c.items {
		if index.Level == currentLevel {
			e.lastVisible = now
		}
	}
	return missing
}

// Prune evicts out-of-view tiles once the cache outgrows its budget.
// inView[level] holds the index ranges still wanted for that level and
// every lower-resolution one; tiles above the current level or outside
// their ranges are candidates. Unloaded candidates go first, then the
// least recently visible loaded ones until the budget holds again.
// Returns the evicted indices.
func (c *Cache) Prune(inView []RangePair) []tiled.TileIndex {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) <= c.maxItems {
		return nil
	}
	toRemove := len(c.items) - c.maxItems

	var removed []tiled.TileIndex
	type aged struct {
		index       tiled.TileIndex
		lastVisible float64
	}
	var loaded []aged

	for index, e := range c.items {
		level := int(index.Level)
		outOfView := level >= len(inView) ||
			!inView[level].X.Contains(index.X) ||
			!inView[level].Y.Contains(index.Y)
		if !outOfView {
			continue
		}
		if !e.loaded {
			delete(c.items, index)
			removed = append(removed, index)
			if toRemove > 0 {
				toRemove--
			}
			continue
		}
		loaded = append(loaded, aged{index: index, lastVisible: e.lastVisible})
	}

	if toRemove > 0 {
		sort.SliceStable(loaded, func(i, j int) bool {
			return loaded[i].lastVisible < loaded[j].lastVisible
		})
		if toRemove > len(loaded) {
			toRemove = len(loaded)
		}
		for _, a := range loaded[:toRemove] {
			delete(c.items, a.index)
			removed = append(removed, a.index)
		}
	}
	return removed
}

// RangePair is the in-view tile index ranges of one level.
type RangePair struct {
	X tiled.Range
	Y tiled.Range
}
