package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/socialgraph/pkg/cache"
	"github.com/matzehuels/socialgraph/pkg/config"
	sgio "github.com/matzehuels/socialgraph/pkg/io"
	"github.com/matzehuels/socialgraph/pkg/network"
	"github.com/matzehuels/socialgraph/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "socialgraph"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// errNoSource is returned by commands that need a network when neither
// --input nor --snapshot was given.
var errNoSource = errors.New("no network given: use --input FILE or --snapshot NAME")

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
	input      string // roster file (--input)
	snapshot   string // stored snapshot name (--snapshot)
	selfLoops  bool
	strict     bool
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig reads the config file and environment. Flags set on the
// command line win over both.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	if c.selfLoops {
		c.Config.Engine.AllowSelfLoops = true
	}
	c.Logger.Debug("config loaded", "path", c.configPath, "store", cfg.Store.Backend, "cache", cfg.Cache.Backend)
	return nil
}

// =============================================================================
// Network Sources
// =============================================================================

func (c *CLI) networkOptions() []network.Option {
	return []network.Option{network.WithSelfLoops(c.Config.Engine.AllowSelfLoops)}
}

// loadNetwork builds the network named by --input or --snapshot.
func (c *CLI) loadNetwork(ctx context.Context) (*network.Network, error) {
	switch {
	case c.input != "" && c.snapshot != "":
		return nil, errors.New("--input and --snapshot are mutually exclusive")
	case c.input != "":
		return c.importRoster(c.input)
	case c.snapshot != "":
		st, err := c.openStore(ctx)
		if err != nil {
			return nil, err
		}
		defer st.Close()
		return st.Load(ctx, c.snapshot)
	}
	return nil, errNoSource
}

// importRoster applies a roster file entry by entry. Rejected entries are
// reported as warnings, or fail the command with --strict.
func (c *CLI) importRoster(path string) (*network.Network, error) {
	roster, err := sgio.ImportFile(path)
	if err != nil {
		return nil, err
	}
	n := network.New(c.networkOptions()...)
	rep := sgio.Apply(n, roster)
	for _, f := range rep.Failures {
		printWarning("%s", f.Message())
	}
	c.Logger.Debug("roster applied", "file", path, "people", rep.PeopleAdded, "friendships", rep.FriendshipsAdded, "rejected", len(rep.Failures))
	if c.strict {
		if err := rep.Err(); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// =============================================================================
// Collaborators
// =============================================================================

func (c *CLI) openStore(ctx context.Context) (store.Store, error) {
	if backend := c.Config.Store.Backend; backend != "" && backend != store.BackendFile {
		sp := startSpinner(ctx, statusOut, "Connecting to "+backend)
		defer sp.Stop()
	}
	st, err := store.Open(ctx, c.Config.StoreConfig())
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", c.Config.Store.Backend, err)
	}
	return st, nil
}

// newCache returns the configured render cache. A cache that cannot be
// opened degrades to no caching.
func (c *CLI) newCache(ctx context.Context, noCache bool) cache.Cache {
	cfg := c.Config.Cache
	if noCache || cfg.Backend == config.CacheNone {
		return cache.NewNullCache()
	}
	if cfg.Backend == config.CacheMemory {
		return cache.NewMeteredCache(cache.NewMemoryCache(cfg.Size))
	}
	if cfg.Backend == config.CacheRedis {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: cfg.RedisAddr, Prefix: cfg.Prefix})
		if err != nil {
			c.Logger.Warn("redis cache unavailable, caching disabled", "error", err)
			return cache.NewNullCache()
		}
		return cache.NewMeteredCache(rc)
	}
	dir, err := c.cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("file cache unavailable, caching disabled", "error", err)
		return cache.NewNullCache()
	}
	return cache.NewMeteredCache(fc)
}

func (c *CLI) keyer() cache.Keyer {
	if p := c.Config.Cache.Prefix; p != "" && c.Config.Cache.Backend != config.CacheRedis {
		return cache.NewScopedKeyer(cache.NewDefaultKeyer(), p)
	}
	return cache.NewDefaultKeyer()
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, falling back to the XDG
// standard (~/.cache/socialgraph/).
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
