package cache

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const entryExt = ".entry"

// FileCache keeps entries on disk, one file per key, sharded by the first
// byte of the key hash. It is what the CLI uses between invocations.
//
// Each file starts with a header line holding the expiry as Unix
// nanoseconds (0 for none), followed by the raw cached bytes.
type FileCache struct {
	dir string
	now func() time.Time
}

// NewFileCache opens (creating if needed) a cache rooted at dir.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &FileCache{dir: dir, now: time.Now}, nil
}

func (c *FileCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	p := c.path(key)
	raw, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	header, body, ok := bytes.Cut(raw, []byte{'\n'})
	expires, perr := strconv.ParseInt(string(header), 10, 64)
	if !ok || perr != nil || (expires > 0 && c.now().UnixNano() > expires) {
		_ = os.Remove(p)
		return nil, false, nil
	}
	return body, true, nil
}

// Set writes the entry to a temporary file in the shard and renames it
// into place, so readers never observe a partial entry.
func (c *FileCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	var expires int64
	if ttl > 0 {
		expires = c.now().Add(ttl).UnixNano()
	}

	p := c.path(key)
	shard := filepath.Dir(p)
	if err := os.MkdirAll(shard, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(shard, ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	w.WriteString(strconv.FormatInt(expires, 10))
	w.WriteByte('\n')
	w.Write(data)
	if err := w.Flush(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), p)
}

func (c *FileCache) Delete(_ context.Context, key string) error {
	if err := os.Remove(c.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Dir returns the cache root.
func (c *FileCache) Dir() string { return c.dir }

// Clear deletes every entry under the root, then any shard left empty, and
// reports how many entries went.
func (c *FileCache) Clear() (int, error) {
	removed := 0
	var shards []string
	err := filepath.WalkDir(c.dir, func(p string, d fs.DirEntry, err error) error {
		switch {
		case err != nil:
			return err
		case d.IsDir():
			if p != c.dir {
				shards = append(shards, p)
			}
		case filepath.Ext(p) == entryExt:
			if os.Remove(p) == nil {
				removed++
			}
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	for _, s := range shards {
		_ = os.Remove(s)
	}
	return removed, err
}

// Usage counts the entries on disk and their total size in bytes. Expired
// entries are included until a Get or Clear removes them.
func (c *FileCache) Usage() (entries int, size int64, err error) {
	err = filepath.WalkDir(c.dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(p) != entryExt {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		entries++
		size += info.Size()
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		err = nil
	}
	return entries, size, err
}

func (c *FileCache) Close() error { return nil }

func (c *FileCache) path(key string) string {
	sum := Hash([]byte(key))
	return filepath.Join(c.dir, sum[:2], sum[2:]+entryExt)
}

var _ Cache = (*FileCache)(nil)
