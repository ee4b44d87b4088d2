package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/matzehuels/socialgraph/pkg/errors"
	"github.com/matzehuels/socialgraph/pkg/store"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingDefaultFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":8080" || cfg.Store.Backend != store.BackendFile || cfg.Events.SubjectPrefix != "socialgraph" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if apperrors.GetCode(err) != apperrors.ErrCodeInvalidConfig {
		t.Errorf("Load(missing) = %v, want invalid config", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[engine]
allow_self_loops = true

[store]
backend = "neo4j"
neo4j_uri = "neo4j://localhost:7687"
neo4j_user = "neo4j"

[server]
addr = ":9090"
rate = 5.5
burst = 10

[events]
nats_url = "nats://localhost:4222"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Engine.AllowSelfLoops {
		t.Error("allow_self_loops not read")
	}
	if cfg.Server.Addr != ":9090" || cfg.Server.Rate != 5.5 || cfg.Server.Burst != 10 {
		t.Errorf("server = %+v", cfg.Server)
	}
	// Unset keys keep their defaults.
	if cfg.Cache.Backend != CacheFile || cfg.Events.SubjectPrefix != "socialgraph" {
		t.Errorf("defaults lost: %+v", cfg)
	}
	sc := cfg.StoreConfig()
	if sc.Backend != store.BackendNeo4j || sc.Neo4jURI != "neo4j://localhost:7687" || sc.Neo4jUser != "neo4j" {
		t.Errorf("StoreConfig() = %+v", sc)
	}
}

func TestLoadUnknownKey(t *testing.T) {
	path := writeConfig(t, "[server]\nadress = \":80\"\n")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "server.adress") {
		t.Errorf("Load() = %v, want unknown key error", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	path := writeConfig(t, "[server]\naddr = \":9090\"\n")
	t.Setenv("SOCIALGRAPH_SERVER_ADDR", ":7070")
	t.Setenv("SOCIALGRAPH_SERVER_BURST", "3")
	t.Setenv("SOCIALGRAPH_ENGINE_ALLOW_SELF_LOOPS", "true")
	t.Setenv("SOCIALGRAPH_STORE_REDIS_DB", "2")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":7070" || cfg.Server.Burst != 3 {
		t.Errorf("server = %+v", cfg.Server)
	}
	if !cfg.Engine.AllowSelfLoops || cfg.Store.RedisDB != 2 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestEnvOverrideInvalid(t *testing.T) {
	cfg := Default()
	env := map[string]string{"SOCIALGRAPH_SERVER_RATE": "fast"}
	err := cfg.applyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})
	if err == nil || !strings.Contains(err.Error(), "SOCIALGRAPH_SERVER_RATE") {
		t.Errorf("applyEnv() = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"unknown store", func(c *Config) { c.Store.Backend = "sqlite" }, true},
		{"unknown cache", func(c *Config) { c.Cache.Backend = "memcached" }, true},
		{"no cache", func(c *Config) { c.Cache.Backend = CacheNone }, false},
		{"memory cache", func(c *Config) { c.Cache.Backend, c.Cache.Size = CacheMemory, 64 }, false},
		{"negative cache size", func(c *Config) { c.Cache.Size = -1 }, true},
		{"negative rate", func(c *Config) { c.Server.Rate = -1 }, true},
		{"rate without burst", func(c *Config) { c.Server.Burst = 0 }, true},
		{"limiter off", func(c *Config) { c.Server.Rate, c.Server.Burst = 0, 0 }, false},
		{"bad nats url", func(c *Config) { c.Events.NATSURL = "http://localhost" }, true},
		{"nats url", func(c *Config) { c.Events.NATSURL = "nats://localhost:4222" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestStringMasksSecrets(t *testing.T) {
	cfg := Default()
	cfg.Store.Neo4jPassword = "hunter2"
	s := cfg.String()
	if strings.Contains(s, "hunter2") || !strings.Contains(s, "********") {
		t.Errorf("String() leaked secret:\n%s", s)
	}
}

func TestPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	p, err := Path()
	if err != nil {
		t.Fatal(err)
	}
	if p != filepath.Join("/tmp/xdg", "socialgraph", "config.toml") {
		t.Errorf("Path() = %q", p)
	}
}

func TestLoadExampleConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "examples", "config.toml"))
	if err != nil {
		t.Fatalf("Load(example) = %v", err)
	}
	if cfg.Server.Addr != ":8080" || cfg.Cache.Prefix != "socialgraph" {
		t.Errorf("example config = %+v", cfg)
	}
}
