package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileBackend stores the structure as one indented JSON file. Saves write a
// temporary file in the same directory and rename it over the target, so
// readers never observe a half written file.
type FileBackend struct {
	path string
}

// NewFileBackend prepares the parent directory of path.
func NewFileBackend(path string) (*FileBackend, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("docstore: file path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("docstore: ensure directory: %w", err)
	}
	return &FileBackend{path: path}, nil
}

// Path returns the file location.
func (f *FileBackend) Path() string {
	return f.path
}

// Load returns an empty structure when the file does not exist yet. A file
// that exists but does not parse is an error rather than an empty store.
func (f *FileBackend) Load(context.Context) (Data, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return Data{}, nil
	}
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return Data{}, nil
	}

	data, err := decodeData(raw)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.path, err)
	}
	return data, nil
}

func (f *FileBackend) Save(_ context.Context, data Data) error {
	raw, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), "."+filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, f.path)
}
