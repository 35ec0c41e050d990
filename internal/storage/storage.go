package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
)

// AferoStore is a Store backed by any afero file system: the OS in production,
// an in-memory one in tests.
type AferoStore struct {
	fs afero.Fs
}

// NewAferoStore creates a new AferoStore.
func NewAferoStore(fs afero.Fs) *AferoStore {
	return &AferoStore{fs: fs}
}

// NewDirStore returns a store rooted at dir on the local disk, creating dir if
// needed.
func NewDirStore(dir string) (*AferoStore, error) {
	// BasePathFs needs an absolute base: a base of "." matches no path.
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve output directory %q: %w", dir, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %q: %w", dir, err)
	}
	return NewAferoStore(afero.NewBasePathFs(afero.NewOsFs(), abs)), nil
}

// Save writes the content of the reader to path. The file is written next to
// its destination and renamed into place so readers never see a partial file.
func (s *AferoStore) Save(ctx context.Context, path string, reader io.Reader) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := s.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, err
	}

	tmp := path + ".tmp"
	f, err := s.fs.Create(tmp)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(f, reader)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = s.fs.Remove(tmp)
		return n, err
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)
		return n, err
	}
	return n, nil
}

// Delete removes a file.
func (s *AferoStore) Delete(ctx context.Context, path string) error {
	return s.fs.Remove(path)
}

// Open opens a file for reading.
func (s *AferoStore) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	return s.fs.OpenFile(path, os.O_RDONLY, 0)
}

// List returns every regular file in the store, slash-separated and sorted.
func (s *AferoStore) List(ctx context.Context) ([]string, error) {
	var files []string
	err := afero.Walk(s.fs, ".", func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			files = append(files, filepath.ToSlash(p))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
