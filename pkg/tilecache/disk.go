package tilecache

import (
	"encoding/hex"
	"io"
	"os"
	"path/filepath"

	"github.com/jzelinskie/whirlpool"
)

// Disk is an on-disk byte cache for fetched tiles, keyed by URL. It
// survives restarts so revisiting a page does not refetch its tiles.
type Disk struct {
	dir string
}

func NewDisk(dir string) (*Disk, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Disk{dir: dir}, nil
}

func (d *Disk) path(url string) string {
	w := whirlpool.New()
	io.WriteString(w, url)
	return filepath.Join(d.dir, hex.EncodeToString(w.Sum(nil)))
}

func (d *Disk) Get(url string) ([]byte, bool) {
	data, err := os.ReadFile(d.path(url))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Put writes through a temp file so a crash never leaves a truncated
// entry behind.
func (d *Disk) Put(url string, data []byte) error {
	path := d.path(url)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (d *Disk) Delete(url string) error {
	err := os.Remove(d.path(url))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
