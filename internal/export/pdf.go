// Package export prints the rendered landing page to PDF through a local
// headless Chrome.
package export

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/nfrund/petshop/internal/config"
	"github.com/nfrund/petshop/internal/logging"
)

// ErrUnknownPaper is returned when a paper format is not configured.
var ErrUnknownPaper = errors.New("unknown paper format")

// PDFOptions describes the page setup of an export.
type PDFOptions struct {
	Paper     config.PaperSize
	Landscape bool
	Margin    float64 // inches, applied to all four sides
}

// ResolveOptions picks the paper size for format (the configured default
// when empty) and applies the orientation.
func ResolveOptions(cfg config.Config, format string, landscape bool) (PDFOptions, error) {
	if format == "" {
		format = cfg.PDF.DefaultPaper
	}
	paper, ok := cfg.PDF.PaperSizes[format]
	if !ok {
		return PDFOptions{}, fmt.Errorf("%w: %s", ErrUnknownPaper, format)
	}
	if landscape {
		paper.Width, paper.Height = paper.Height, paper.Width
	}
	return PDFOptions{Paper: paper, Landscape: landscape, Margin: cfg.PDF.Margin}, nil
}

// PDFExporter renders local HTML files to PDF.
type PDFExporter struct {
	ChromePath string
	NoSandbox  bool
	Timeout    time.Duration
}

// NewPDFExporter creates an exporter from the PDF section of cfg.
func NewPDFExporter(cfg config.Config) *PDFExporter {
	return &PDFExporter{
		ChromePath: cfg.PDF.ChromePath,
		NoSandbox:  cfg.PDF.ChromeNoSandbox,
		Timeout:    time.Duration(cfg.PDF.TimeoutSecs) * time.Second,
	}
}

// FileURL returns the file:// URL of a local path.
func FileURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(), nil
}

// Export starts a fresh Chrome, opens the document at indexPath (so relative
// asset links resolve against its directory) and prints it.
func (e *PDFExporter) Export(ctx context.Context, indexPath string, opts PDFOptions) ([]byte, error) {
	logger := logging.FromContext(ctx)

	target, err := FileURL(indexPath)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve %s: %w", indexPath, err)
	}

	tmpDir, err := os.MkdirTemp("", "petshop-chrome-*")
	if err != nil {
		return nil, fmt.Errorf("cannot create temp profile dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	allocatorOptions := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserDataDir(tmpDir),
		// Software rendering keeps minimal container environments working.
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("allow-file-access-from-files", true),
	)
	if e.ChromePath != "" {
		allocatorOptions = append(allocatorOptions, chromedp.ExecPath(e.ChromePath))
	}
	if e.NoSandbox {
		allocatorOptions = append(allocatorOptions, chromedp.Flag("no-sandbox", true))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocatorOptions...)
	defer cancelAlloc()
	chromeCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	if e.Timeout > 0 {
		chromeCtx, cancel = context.WithTimeout(chromeCtx, e.Timeout)
		defer cancel()
	}

	logger.Debug("Printing page to PDF", "url", target, "width", opts.Paper.Width, "height", opts.Paper.Height)
	return printToPDF(chromeCtx, target, opts)
}

// printToPDF navigates the tab in ctx to target and prints it.
func printToPDF(ctx context.Context, target string, opts PDFOptions) ([]byte, error) {
	var pdfBuf []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate(target),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(opts.Paper.Width).
				WithPaperHeight(opts.Paper.Height).
				WithMarginTop(opts.Margin).
				WithMarginBottom(opts.Margin).
				WithMarginLeft(opts.Margin).
				WithMarginRight(opts.Margin).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuf, nil
}
