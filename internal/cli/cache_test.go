package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/socialgraph/pkg/cache"
	"github.com/matzehuels/socialgraph/pkg/config"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	c := New(&bytes.Buffer{}, LogInfo)

	dir, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")
	c := New(&bytes.Buffer{}, LogInfo)

	dir, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join("/tmp/custom-cache", appName); dir != want {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, want)
	}
}

func TestCacheDirFromConfig(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	c.Config.Cache.Dir = "/srv/socialgraph/cache"

	dir, _ := c.cacheDir()
	if dir != "/srv/socialgraph/cache" {
		t.Errorf("cacheDir() = %q, want configured dir", dir)
	}
}

func TestNewCache(t *testing.T) {
	ctx := context.Background()
	c := New(&bytes.Buffer{}, LogInfo)
	c.Config.Cache.Dir = t.TempDir()

	if _, ok := c.newCache(ctx, true).(*cache.NullCache); !ok {
		t.Error("--no-cache should give a NullCache")
	}

	c.Config.Cache.Backend = config.CacheNone
	if _, ok := c.newCache(ctx, false).(*cache.NullCache); !ok {
		t.Error("backend none should give a NullCache")
	}

	c.Config.Cache.Backend = config.CacheFile
	fc := c.newCache(ctx, false)
	if _, ok := fc.(*cache.MeteredCache); !ok {
		t.Fatalf("file backend = %T, want *cache.MeteredCache", fc)
	}
	if err := fc.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if data, ok, _ := fc.Get(ctx, "k"); !ok || string(data) != "v" {
		t.Errorf("Get = %q, %v", data, ok)
	}

	c.Config.Cache.Backend, c.Config.Cache.Size = config.CacheMemory, 8
	mc := c.newCache(ctx, false)
	defer mc.Close()
	if _, ok := mc.(*cache.MeteredCache); !ok {
		t.Fatalf("memory backend = %T, want *cache.MeteredCache", mc)
	}
	_ = mc.Set(ctx, "k", []byte("v"), time.Minute)
	if _, ok, _ := mc.Get(ctx, "k"); !ok {
		t.Error("memory backend lost entry")
	}
}

func TestCacheCommands(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SOCIALGRAPH_CACHE_DIR", dir)

	out, err := runCLI(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != dir {
		t.Errorf("cache path = %q, want %q", out, dir)
	}

	fc, _ := cache.NewFileCache(dir)
	_ = fc.Set(context.Background(), "render:abc", []byte("<svg/>"), time.Hour)
	if _, err := runCLI(t, "cache", "stats"); err != nil {
		t.Fatalf("cache stats: %v", err)
	}
	if _, err := runCLI(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if _, ok, _ := fc.Get(context.Background(), "render:abc"); ok {
		t.Error("entry survived cache clear")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 << 20, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
