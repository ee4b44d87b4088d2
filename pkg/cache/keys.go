package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex SHA-256 of data. Callers hash the canonical JSON
// form of a network to identify its content.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey returns "<kind>:" followed by the hash of parts encoded as JSON.
func hashKey(kind string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return kind + ":" + Hash(data)
}

// Keyer builds cache keys for cached artifacts.
type Keyer interface {
	// RenderKey identifies a rendered diagram of a network.
	RenderKey(networkHash string, opts RenderKeyOpts) string

	// ReportKey identifies a report of a network in the given format.
	ReportKey(networkHash, format string) string
}

// RenderKeyOpts holds the render options that change the output.
type RenderKeyOpts struct {
	Format    string   `json:"format"`
	Layout    string   `json:"layout,omitempty"`
	Detailed  bool     `json:"detailed,omitempty"`
	Cluster   bool     `json:"cluster,omitempty"`
	Highlight []string `json:"highlight,omitempty"`
}

// DefaultKeyer hashes the network hash and options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// RenderKey returns "render:<sha256>".
func (DefaultKeyer) RenderKey(networkHash string, opts RenderKeyOpts) string {
	return hashKey("render", networkHash, opts)
}

// ReportKey returns "report:<sha256>".
func (DefaultKeyer) ReportKey(networkHash, format string) string {
	return hashKey("report", networkHash, format)
}

// ScopedKeyer prefixes every key of an inner Keyer, so servers for
// different networks can share one Redis database.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer returns a Keyer that prepends prefix to the keys of inner,
// or of the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) RenderKey(networkHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(networkHash, opts)
}

func (k *ScopedKeyer) ReportKey(networkHash, format string) string {
	return k.prefix + k.inner.ReportKey(networkHash, format)
}
