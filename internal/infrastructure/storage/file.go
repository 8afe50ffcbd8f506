package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileBackend stores each collection as <dir>/<collection>.json.
//
// A single document is replaced through a temp file and rename, so readers
// never observe a torn file. Several documents are written one after another;
// a failure part way leaves the earlier ones already replaced.
type FileBackend struct {
	dir string
}

func NewFileBackend(dir string, collections []string) (*FileBackend, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	b := &FileBackend{dir: dir}
	for _, c := range collections {
		p := b.path(c)
		_, err := os.Stat(p)
		if err == nil {
			continue
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
		if err := writeFileAtomic(p, emptyCollection); err != nil {
			return nil, fmt.Errorf("seed %s: %w", c, err)
		}
	}
	return b, nil
}

func (b *FileBackend) path(collection string) string {
	return filepath.Join(b.dir, collection+".json")
}

func (b *FileBackend) Read(ctx context.Context, collection string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(b.path(collection))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", collection, ErrMissingCollection)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", collection, err)
	}
	return data, nil
}

// Write checks ctx once up front. Once the first file is replaced the rest
// are always written.
func (b *FileBackend) Write(ctx context.Context, docs ...Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, d := range docs {
		if err := writeFileAtomic(b.path(d.Collection), d.Data); err != nil {
			return fmt.Errorf("write %s: %w", d.Collection, err)
		}
	}
	return nil
}

func (b *FileBackend) Close() error { return nil }

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
