// Package config loads socialgraph settings from a TOML file and the
// environment.
//
// Settings are resolved in increasing precedence:
//
//  1. Built-in defaults ([Default])
//  2. The config file, $XDG_CONFIG_HOME/socialgraph/config.toml by default
//  3. SOCIALGRAPH_* environment variables
//  4. Command-line flags, applied by the caller
//
// A missing config file is not an error. Unknown keys in the file are, so
// a misspelled setting is reported instead of silently ignored.
//
// Example config.toml:
//
//	[engine]
//	allow_self_loops = false
//
//	[store]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
//	rate = 20
//	burst = 40
//
//	[events]
//	nats_url = "nats://localhost:4222"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	apperrors "github.com/matzehuels/socialgraph/pkg/errors"
	"github.com/matzehuels/socialgraph/pkg/store"
)

const (
	appName   = "socialgraph"
	envPrefix = "SOCIALGRAPH_"
)

// Cache backends.
const (
	CacheFile   = "file"
	CacheRedis  = "redis"
	CacheMemory = "memory"
	CacheNone   = "none"
)

// Config is the complete set of settings.
type Config struct {
	Engine Engine `toml:"engine"`
	Store  Store  `toml:"store"`
	Cache  Cache  `toml:"cache"`
	Server Server `toml:"server"`
	Events Events `toml:"events"`
}

// Engine configures the graph engine.
type Engine struct {
	AllowSelfLoops bool `toml:"allow_self_loops"`
}

// Store selects and configures the snapshot backend.
type Store struct {
	Backend         string `toml:"backend"`
	Dir             string `toml:"dir"`
	RedisAddr       string `toml:"redis_addr"`
	RedisPassword   string `toml:"redis_password"`
	RedisDB         int    `toml:"redis_db"`
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
	Neo4jURI        string `toml:"neo4j_uri"`
	Neo4jUser       string `toml:"neo4j_user"`
	Neo4jPassword   string `toml:"neo4j_password"`
	Neo4jDatabase   string `toml:"neo4j_database"`
}

// Cache configures the render cache.
type Cache struct {
	Backend   string `toml:"backend"`
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"redis_addr"`
	Prefix    string `toml:"prefix"`
	Size      int    `toml:"size"` // entries kept by the memory backend
}

// Server configures the HTTP API.
type Server struct {
	Addr  string  `toml:"addr"`
	Rate  float64 `toml:"rate"`  // requests per second per client, 0 disables limiting
	Burst int     `toml:"burst"` // bucket size
}

// Events configures change notifications. An empty NATSURL disables them.
type Events struct {
	NATSURL       string `toml:"nats_url"`
	SubjectPrefix string `toml:"subject_prefix"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Store:  Store{Backend: store.BackendFile},
		Cache:  Cache{Backend: CacheFile},
		Server: Server{Addr: ":8080", Rate: 20, Burst: 40},
		Events: Events{SubjectPrefix: "socialgraph"},
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the config file at path, or the default location when path is
// empty, and applies environment overrides. An explicitly named file must
// exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err == nil {
			path = p
		}
	}
	if path != "" {
		if err := cfg.decodeFile(path, explicit); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) decodeFile(path string, mustExist bool) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return nil
		}
		return apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// binding maps one environment variable onto a config field.
type binding struct {
	name string
	set  func(string) error
}

func str(p *string) func(string) error {
	return func(v string) error { *p = v; return nil }
}

func integer(p *int) func(string) error {
	return func(v string) error {
		i, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*p = i
		return nil
	}
}

func float(p *float64) func(string) error {
	return func(v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		*p = f
		return nil
	}
}

func boolean(p *bool) func(string) error {
	return func(v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		*p = b
		return nil
	}
}

func (c *Config) bindings() []binding {
	return []binding{
		{"ENGINE_ALLOW_SELF_LOOPS", boolean(&c.Engine.AllowSelfLoops)},
		{"STORE_BACKEND", str(&c.Store.Backend)},
		{"STORE_DIR", str(&c.Store.Dir)},
		{"STORE_REDIS_ADDR", str(&c.Store.RedisAddr)},
		{"STORE_REDIS_PASSWORD", str(&c.Store.RedisPassword)},
		{"STORE_REDIS_DB", integer(&c.Store.RedisDB)},
		{"STORE_MONGO_URI", str(&c.Store.MongoURI)},
		{"STORE_MONGO_DATABASE", str(&c.Store.MongoDatabase)},
		{"STORE_MONGO_COLLECTION", str(&c.Store.MongoCollection)},
		{"STORE_NEO4J_URI", str(&c.Store.Neo4jURI)},
		{"STORE_NEO4J_USER", str(&c.Store.Neo4jUser)},
		{"STORE_NEO4J_PASSWORD", str(&c.Store.Neo4jPassword)},
		{"STORE_NEO4J_DATABASE", str(&c.Store.Neo4jDatabase)},
		{"CACHE_BACKEND", str(&c.Cache.Backend)},
		{"CACHE_DIR", str(&c.Cache.Dir)},
		{"CACHE_REDIS_ADDR", str(&c.Cache.RedisAddr)},
		{"CACHE_PREFIX", str(&c.Cache.Prefix)},
		{"CACHE_SIZE", integer(&c.Cache.Size)},
		{"SERVER_ADDR", str(&c.Server.Addr)},
		{"SERVER_RATE", float(&c.Server.Rate)},
		{"SERVER_BURST", integer(&c.Server.Burst)},
		{"EVENTS_NATS_URL", str(&c.Events.NATSURL)},
		{"EVENTS_SUBJECT_PREFIX", str(&c.Events.SubjectPrefix)},
	}
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	for _, b := range c.bindings() {
		name := envPrefix + b.name
		v, ok := lookup(name)
		if !ok {
			continue
		}
		if err := b.set(v); err != nil {
			return apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "%s=%q", name, v)
		}
	}
	return nil
}

// Validate checks values that would otherwise fail late.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case "", store.BackendFile, store.BackendRedis, store.BackendMongo, store.BackendNeo4j:
	default:
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "unknown store backend %q", c.Store.Backend)
	}
	switch c.Cache.Backend {
	case "", CacheFile, CacheRedis, CacheMemory, CacheNone:
	default:
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.Size < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "cache size must not be negative")
	}
	if c.Server.Rate < 0 || c.Server.Burst < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "server rate and burst must not be negative")
	}
	if c.Server.Rate > 0 && c.Server.Burst == 0 {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "server burst must be positive when rate is set")
	}
	if c.Events.NATSURL != "" {
		if err := apperrors.ValidateURL(c.Events.NATSURL, "nats", "tls"); err != nil {
			return err
		}
	}
	return nil
}

// StoreConfig converts the [store] section for [store.Open].
func (c Config) StoreConfig() store.Config {
	s := c.Store
	return store.Config{
		Backend:         s.Backend,
		Dir:             s.Dir,
		RedisAddr:       s.RedisAddr,
		RedisPassword:   s.RedisPassword,
		RedisDB:         s.RedisDB,
		MongoURI:        s.MongoURI,
		MongoDatabase:   s.MongoDatabase,
		MongoCollection: s.MongoCollection,
		Neo4jURI:        s.Neo4jURI,
		Neo4jUser:       s.Neo4jUser,
		Neo4jPassword:   s.Neo4jPassword,
		Neo4jDatabase:   s.Neo4jDatabase,
	}
}

// String renders the config as TOML with secrets masked.
func (c Config) String() string {
	masked := c
	for _, p := range []*string{&masked.Store.RedisPassword, &masked.Store.Neo4jPassword} {
		if *p != "" {
			*p = "********"
		}
	}
	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(masked); err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	return sb.String()
}
