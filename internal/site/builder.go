// Package site turns the landing page content into a directory of static
// files: index.html plus the stylesheet and images it references.
package site

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/nfrund/petshop/internal/assets"
	"github.com/nfrund/petshop/internal/domain"
	"github.com/nfrund/petshop/internal/logging"
	"github.com/nfrund/petshop/internal/rendering"
	"github.com/nfrund/petshop/internal/storage"
	"github.com/nfrund/petshop/internal/view"
	"github.com/nfrund/petshop/web/src/templates/layouts"
	"github.com/nfrund/petshop/web/src/templates/pages"
)

// IndexFile is the name of the rendered document in the output store.
const IndexFile = "index.html"

// ManifestFile records the paths written by the last build. Only files listed
// there are ever removed from the output.
const ManifestFile = ".petshop-manifest"

// Options controls document-level settings of a build.
type Options struct {
	Title     string // document title; the brand is appended
	AssetBase string // directory (relative to index.html) assets are published under
}

// File describes one file written by a build.
type File struct {
	Path   string
	Size   int64
	SHA256 string
}

// Result lists the files a build wrote, index first and assets in lexical order.
type Result struct {
	Files []File
}

// Paths returns the paths of the written files.
func (r *Result) Paths() []string {
	out := make([]string, 0, len(r.Files))
	for _, f := range r.Files {
		out = append(out, f.Path)
	}
	return out
}

// Builder renders the page and publishes it with its assets.
type Builder struct {
	renderer rendering.Renderer
	assets   *assets.Source
	store    storage.Store
	opts     Options
}

// NewBuilder creates a Builder. A nil renderer selects the universal renderer.
func NewBuilder(renderer rendering.Renderer, src *assets.Source, store storage.Store, opts Options) *Builder {
	if renderer == nil {
		renderer = rendering.NewUniversalRenderer()
	}
	opts.AssetBase = strings.Trim(path.Clean("/"+opts.AssetBase), "/")
	return &Builder{renderer: renderer, assets: src, store: store, opts: opts}
}

// Render validates the page and returns the complete HTML document. It writes
// nothing.
func (b *Builder) Render(ctx context.Context, page domain.HomePage) ([]byte, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	body := view.AdaptGomponentToTempl(pages.Home(page, b.opts.AssetBase))
	doc := layouts.Base(b.opts.Title, b.publishedPath(assets.StylesheetPath), body)
	return b.renderer.RenderComponent(ctx, doc)
}

// Build renders the page and writes every publishable asset, then the
// document, to the store. Files an earlier build wrote that are no longer part
// of the site are removed afterwards. Nothing is written when the content is
// invalid or a referenced asset is missing.
func (b *Builder) Build(ctx context.Context, page domain.HomePage) (*Result, error) {
	logger := logging.FromContext(ctx)
	start := time.Now()

	if err := page.Validate(); err != nil {
		return nil, err
	}
	if err := b.assets.Require(page.Images()); err != nil {
		return nil, err
	}
	html, err := b.Render(ctx, page)
	if err != nil {
		return nil, err
	}
	assetFiles, err := b.assets.Files()
	if err != nil {
		return nil, err
	}
	previous, err := b.readManifest(ctx)
	if err != nil {
		return nil, err
	}

	// Assets go first so the document never points at files not yet written.
	published := make([]File, 0, len(assetFiles))
	for _, name := range assetFiles {
		data, err := b.assets.ReadFile(name)
		if err != nil {
			return nil, err
		}
		written, err := b.save(ctx, b.publishedPath(name), data)
		if err != nil {
			return nil, err
		}
		published = append(published, written)
	}
	index, err := b.save(ctx, IndexFile, html)
	if err != nil {
		return nil, err
	}
	result := &Result{Files: append([]File{index}, published...)}

	if _, err := b.save(ctx, ManifestFile, []byte(strings.Join(result.Paths(), "\n")+"\n")); err != nil {
		return nil, err
	}
	if err := b.prune(ctx, result, previous); err != nil {
		return nil, err
	}

	logger.Info("Site built",
		"files", len(result.Files),
		"assets", b.assets.Origin(),
		"duration", time.Since(start))
	return result, nil
}

// save writes data to name unless the store already holds identical content.
func (b *Builder) save(ctx context.Context, name string, data []byte) (File, error) {
	sum := sha256.Sum256(data)
	file := File{Path: name, Size: int64(len(data)), SHA256: hex.EncodeToString(sum[:])}

	if b.unchanged(ctx, name, sum[:]) {
		logging.FromContext(ctx).Debug("File unchanged", "path", name)
		return file, nil
	}
	n, err := b.store.Save(ctx, name, bytes.NewReader(data))
	if err != nil {
		return File{}, fmt.Errorf("failed to write %s: %w", name, err)
	}
	logging.FromContext(ctx).Debug("Wrote file", "path", name, "bytes", n)
	return file, nil
}

func (b *Builder) unchanged(ctx context.Context, name string, sum []byte) bool {
	rc, err := b.store.Open(ctx, name)
	if err != nil {
		return false
	}
	defer rc.Close()
	h := sha256.New()
	if _, err := io.Copy(h, rc); err != nil {
		return false
	}
	return bytes.Equal(h.Sum(nil), sum)
}

// readManifest returns the paths recorded by the previous build, if any.
func (b *Builder) readManifest(ctx context.Context) (map[string]bool, error) {
	rc, err := b.store.Open(ctx, ManifestFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]bool{}, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", ManifestFile, err)
	}
	defer rc.Close()

	paths := map[string]bool{}
	scanner := bufio.NewScanner(rc)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			paths[line] = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", ManifestFile, err)
	}
	return paths, nil
}

// prune deletes files a previous build wrote that this build did not, and
// temporary files left behind by interrupted writes of either.
func (b *Builder) prune(ctx context.Context, result *Result, previous map[string]bool) error {
	keep := map[string]bool{ManifestFile: true}
	for _, p := range result.Paths() {
		keep[p] = true
	}
	owned := func(p string) bool { return keep[p] || previous[p] }

	existing, err := b.store.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list output: %w", err)
	}
	for _, p := range existing {
		if keep[p] {
			continue
		}
		stale := previous[p] || (strings.HasSuffix(p, ".tmp") && owned(strings.TrimSuffix(p, ".tmp")))
		if !stale {
			continue
		}
		if err := b.store.Delete(ctx, p); err != nil {
			return fmt.Errorf("failed to remove stale file %s: %w", p, err)
		}
		logging.FromContext(ctx).Debug("Removed stale file", "path", p)
	}
	return nil
}

// publishedPath maps an asset path to its location next to index.html.
func (b *Builder) publishedPath(name string) string {
	if b.opts.AssetBase == "" {
		return name
	}
	return path.Join(b.opts.AssetBase, name)
}
