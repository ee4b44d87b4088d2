package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	apperrors "github.com/matzehuels/socialgraph/pkg/errors"
	"github.com/matzehuels/socialgraph/pkg/network"
)

// FileStore keeps snapshots as JSON files in a directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based snapshot store.
// If baseDir is empty, defaults to ~/.local/share/socialgraph/snapshots/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		baseDir = dir
	}
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

// DefaultDir returns the default snapshot directory.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".local", "share", "socialgraph", "snapshots"), nil
}

func (s *FileStore) snapshotPath(name string) string {
	return filepath.Join(s.baseDir, name+".json")
}

// Save writes the snapshot atomically, replacing any previous file.
func (s *FileStore) Save(ctx context.Context, name string, n *network.Network) (Snapshot, error) {
	rec, err := newRecord(name, n)
	if err != nil {
		return Snapshot{}, err
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return Snapshot{}, fmt.Errorf("marshal snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.baseDir, ".snapshot-*")
	if err != nil {
		return Snapshot{}, storageError(BackendFile, "create temp file", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return Snapshot{}, storageError(BackendFile, "write snapshot", err)
	}
	if err := tmp.Close(); err != nil {
		return Snapshot{}, storageError(BackendFile, "write snapshot", err)
	}
	if err := os.Rename(tmp.Name(), s.snapshotPath(name)); err != nil {
		return Snapshot{}, storageError(BackendFile, "rename snapshot", err)
	}
	return rec.Snapshot, nil
}

// Load reads and rebuilds a snapshot.
func (s *FileStore) Load(ctx context.Context, name string) (*network.Network, error) {
	rec, err := s.read(name)
	if err != nil {
		return nil, err
	}
	return rec.network()
}

func (s *FileStore) read(name string) (record, error) {
	if err := apperrors.ValidateSnapshotName(name); err != nil {
		return record{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.snapshotPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return record{}, notFound(name)
		}
		return record{}, storageError(BackendFile, "read snapshot", err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return record{}, storageError(BackendFile, "parse snapshot "+name, err)
	}
	return rec, nil
}

// List returns all snapshots ordered by name. Unreadable files are skipped.
func (s *FileStore) List(ctx context.Context) ([]Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, storageError(BackendFile, "read snapshot dir", err)
	}

	out := []Snapshot{}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name()))
		if err != nil {
			continue
		}
		var rec record
		if err := json.Unmarshal(data, &rec); err != nil {
			continue
		}
		out = append(out, rec.Snapshot)
	}
	sortSnapshots(out)
	return out, nil
}

// Delete removes a snapshot file.
func (s *FileStore) Delete(ctx context.Context, name string) error {
	if err := apperrors.ValidateSnapshotName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.snapshotPath(name)); err != nil {
		if os.IsNotExist(err) {
			return notFound(name)
		}
		return storageError(BackendFile, "remove snapshot", err)
	}
	return nil
}

// Close does nothing for the file store.
func (s *FileStore) Close() error { return nil }

// Path returns the snapshot directory.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
