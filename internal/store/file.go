package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"resumescore/internal/errors"
	"resumescore/internal/resume"
)

// File stores one JSON document per key in a directory. Stored documents
// go through resume.Normalize on load, so older files are migrated.
type File struct {
	dir string
}

func NewFile(dir string) (*File, error) {
	if dir == "" {
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig, "file store requires a path", nil)
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStoreUnavailable,
			fmt.Sprintf("cannot create store directory %s", dir), err)
	}
	return &File{dir: dir}, nil
}

func (f *File) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func (f *File) Load(_ context.Context, key string) (*resume.Document, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, notLoaded(key)
		}
		return nil, errors.NewStorageError(errors.ErrCodeStoreUnavailable,
			fmt.Sprintf("cannot read stored resume %q", key), err)
	}
	return resume.Normalize(raw)
}

// Save writes to a temporary file and renames it into place.
func (f *File) Save(_ context.Context, key string, doc *resume.Document) error {
	if err := checkSave(key, doc); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.NewInternalError("ENCODE_FAILED", "failed to encode resume", err)
	}

	tmp, err := os.CreateTemp(f.dir, "."+key+"-*.tmp")
	if err != nil {
		return errors.NewStorageError(errors.ErrCodeStoreUnavailable, "cannot create temporary file", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // already renamed on success

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return errors.NewStorageError(errors.ErrCodeStoreUnavailable, "cannot write stored resume", err)
	}
	if err := tmp.Close(); err != nil {
		return errors.NewStorageError(errors.ErrCodeStoreUnavailable, "cannot write stored resume", err)
	}
	if err := os.Rename(tmpName, f.path(key)); err != nil {
		return errors.NewStorageError(errors.ErrCodeStoreUnavailable, "cannot replace stored resume", err)
	}
	return nil
}

func (f *File) Delete(_ context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := os.Remove(f.path(key)); err != nil {
		if os.IsNotExist(err) {
			return notFound(key)
		}
		return errors.NewStorageError(errors.ErrCodeStoreUnavailable,
			fmt.Sprintf("cannot delete stored resume %q", key), err)
	}
	return nil
}

func (f *File) Stats() map[string]any {
	matches, _ := filepath.Glob(filepath.Join(f.dir, "*.json"))
	return map[string]any{"documents": len(matches), "path": f.dir}
}
