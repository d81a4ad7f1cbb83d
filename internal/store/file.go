package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/xeipuuv/gojsonschema"

	"github.com/amishk599/medalerts/internal/model"
	"github.com/amishk599/medalerts/internal/seen"
)

// seenFileSchema describes seen_jobs.json. Anything else on disk is corrupt.
const seenFileSchema = `{
	"type": "object",
	"required": ["seen_ids"],
	"properties": {
		"seen_ids": {"type": "array", "items": {"type": "string"}},
		"last_run": {"type": ["string", "null"]}
	}
}`

var seenSchema = gojsonschema.NewStringLoader(seenFileSchema)

// fileState is the on-disk JSON layout.
type fileState struct {
	SeenIDs []string `json:"seen_ids"`
	LastRun *string  `json:"last_run"`
}

// FileStore persists the seen-set as a JSON file. An advisory lock on
// "<path>.lock" is held from open to Close so two runs cannot share the file.
type FileStore struct {
	path string
	lock *flock.Flock
	now  func() time.Time
}

var _ seen.Store = (*FileStore)(nil)

// NewFileStore locks path for this process and returns a store for it. It
// fails with model.ErrStateLocked when another process holds the lock.
func NewFileStore(path string) (*FileStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating seen-set dir: %w", err)
		}
	}

	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("locking seen-set %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, model.ErrStateLocked)
	}

	return &FileStore{
		path: path,
		lock: lock,
		now:  func() time.Time { return time.Now().UTC() },
	}, nil
}

// Load reads the seen-set. A missing file yields an empty set.
func (s *FileStore) Load(_ context.Context) (*seen.Set, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return seen.NewSet(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading seen-set %s: %w", s.path, err)
	}

	result, err := gojsonschema.Validate(seenSchema, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", s.path, model.ErrCorruptState, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("%s: %w: %s", s.path, model.ErrCorruptState, strings.Join(msgs, "; "))
	}

	var st fileState
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", s.path, model.ErrCorruptState, err)
	}

	set := seen.NewSet(st.SeenIDs...)
	if st.LastRun != nil && *st.LastRun != "" {
		t, err := time.Parse(time.RFC3339, *st.LastRun)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: last_run %q: %v", s.path, model.ErrCorruptState, *st.LastRun, err)
		}
		set.LastRun = &t
	}
	return set, nil
}

// Save writes the full set to a temp file in the same directory, syncs it,
// renames it over the old file, and syncs the directory so the rename itself
// survives a crash.
func (s *FileStore) Save(_ context.Context, set *seen.Set) error {
	now := s.now()
	stamp := now.Format(time.RFC3339Nano)
	data, err := json.MarshalIndent(fileState{SeenIDs: set.Fingerprints(), LastRun: &stamp}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding seen-set: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp seen-set: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp seen-set: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing temp seen-set: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp seen-set: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replacing seen-set %s: %w", s.path, err)
	}
	if err := syncDir(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("syncing seen-set dir: %w", err)
	}

	set.LastRun = &now
	return nil
}

// syncDir flushes a directory entry to disk.
func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	if err := d.Sync(); err != nil {
		d.Close()
		return err
	}
	return d.Close()
}

// Close releases the file lock.
func (s *FileStore) Close() error {
	return s.lock.Unlock()
}
