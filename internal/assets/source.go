// Package assets exposes the page's stylesheet and images as a read-only
// file system, either from the binary or from a directory on disk.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nfrund/petshop/internal/domain"
	"github.com/nfrund/petshop/web"
	"github.com/spf13/afero"
)

// Paths inside an asset source.
const (
	StylesheetPath = "css/home.css"
	ImagesDir      = "images"
)

// Source is a read-only view over the asset tree.
type Source struct {
	fs     afero.Fs
	origin string
}

// NewSource wraps an arbitrary afero file system. origin is only used in
// logs and errors.
func NewSource(fsys afero.Fs, origin string) *Source {
	return &Source{fs: afero.NewReadOnlyFs(fsys), origin: origin}
}

// Embedded returns the assets compiled into the binary.
func Embedded() (*Source, error) {
	sub, err := fs.Sub(web.FS, "static")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded assets: %w", err)
	}
	return NewSource(afero.FromIOFS{FS: sub}, "embedded"), nil
}

// Dir returns the assets rooted at dir on the local disk.
func Dir(dir string) (*Source, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("asset directory %q: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("asset directory %q is not a directory", dir)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("asset directory %q: %w", dir, err)
	}
	return NewSource(afero.NewBasePathFs(afero.NewOsFs(), abs), dir), nil
}

// Origin describes where the assets come from.
func (s *Source) Origin() string {
	return s.origin
}

// ImagePath returns the path of an image inside the source.
func ImagePath(name string) string {
	return path.Join(ImagesDir, name)
}

// ReadFile returns the content of the asset at name. A missing asset is
// reported as domain.ErrAssetNotFound.
func (s *Source) ReadFile(name string) ([]byte, error) {
	data, err := afero.ReadFile(s.fs, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s (%s)", domain.ErrAssetNotFound, name, s.origin)
		}
		return nil, fmt.Errorf("failed to read asset %s: %w", name, err)
	}
	return data, nil
}

// Require checks that the stylesheet and every named image exist.
func (s *Source) Require(images []string) error {
	wanted := append([]string{StylesheetPath}, mapImages(images)...)
	var missing []string
	for _, name := range wanted {
		ok, err := afero.Exists(s.fs, name)
		if err != nil {
			return fmt.Errorf("failed to stat asset %s: %w", name, err)
		}
		if !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s (%s)", domain.ErrAssetNotFound, strings.Join(missing, ", "), s.origin)
	}
	return nil
}

// Files lists every publishable asset in lexical order. Images with an
// extension outside domain.AllowedImageExtensions are skipped, as are hidden
// files.
func (s *Source) Files() ([]string, error) {
	var files []string
	err := afero.Walk(s.fs, ".", func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		name := info.Name()
		if info.IsDir() {
			if p != "." && strings.HasPrefix(name, ".") {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") || !publishable(p) {
			return nil
		}
		files = append(files, strings.TrimPrefix(path.Clean(p), "./"))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list assets in %s: %w", s.origin, err)
	}
	sort.Strings(files)
	return files, nil
}

func publishable(p string) bool {
	ext := strings.ToLower(path.Ext(p))
	if ext == ".css" {
		return true
	}
	return domain.AllowedImageExtensions[ext]
}

func mapImages(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, ImagePath(n))
	}
	return out
}
