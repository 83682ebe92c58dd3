// Package store persists the session to a structured YAML file. The file is
// the single durable resource of the tool and is meant to stay hand-editable.
// Saves go through a temp-file-then-rename so a failed write never clobbers
// the previous contents.
package store

import (
	"context"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"timetrack/internal/domain"
	"timetrack/internal/errors"
	"timetrack/internal/logging"
)

// Store defines the interface for session persistence.
type Store interface {
	// Load parses the backing file. A missing file yields an empty session.
	Load(ctx context.Context) (*domain.Session, error)

	// Save atomically replaces the backing file with the serialized session.
	Save(ctx context.Context, session *domain.Session) error

	// Path returns the backing file location.
	Path() string
}

// FileStore implements Store on a single YAML file.
type FileStore struct {
	path string
}

// New creates a file store for the given path.
func New(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file location.
func (fs *FileStore) Path() string {
	return fs.path
}

// Load reads and validates the session file. Structural problems, parse
// failures and invariant violations all surface as corrupt-store errors and
// leave no partial in-memory state behind.
func (fs *FileStore) Load(ctx context.Context) (*domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			logging.Debugf("store: no session file at %s, starting empty\n", fs.path)
			return domain.NewSession(), nil
		}
		return nil, errors.NewCorruptStoreError(fs.path, err)
	}

	var doc sessionDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewCorruptStoreError(fs.path, err)
	}
	session, err := fromDoc(doc)
	if err != nil {
		return nil, errors.NewCorruptStoreError(fs.path, err)
	}
	if err := session.Validate(); err != nil {
		return nil, errors.NewCorruptStoreError(fs.path, err)
	}
	return session, nil
}

// Save serializes the session and atomically replaces the backing file. On
// any failure the previous file is left intact.
func (fs *FileStore) Save(ctx context.Context, session *domain.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := yaml.Marshal(toDoc(session))
	if err != nil {
		return errors.NewStoreWriteError(fs.path, err)
	}

	dir := filepath.Dir(fs.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.NewStoreWriteError(fs.path, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(fs.path)+".tmp-*")
	if err != nil {
		return errors.NewStoreWriteError(fs.path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.NewStoreWriteError(fs.path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.NewStoreWriteError(fs.path, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.NewStoreWriteError(fs.path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return errors.NewStoreWriteError(fs.path, err)
	}
	if err := os.Rename(tmpName, fs.path); err != nil {
		return errors.NewStoreWriteError(fs.path, err)
	}
	logging.Debugf("store: saved %d history records to %s\n", len(session.History), fs.path)
	return nil
}
