package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nfrund/petshop/internal/content"
	"github.com/nfrund/petshop/internal/export"
	"github.com/nfrund/petshop/internal/site"
	"github.com/nfrund/petshop/internal/storage"
	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export the landing page to other formats",
	}
	exportCmd.AddCommand(newExportPDFCmd(a))
	return exportCmd
}

func newExportPDFCmd(a *app) *cobra.Command {
	var (
		out       string
		format    string
		landscape bool
	)

	cmd := &cobra.Command{
		Use:   "pdf",
		Short: "Print the landing page to PDF",
		Long: `Render the site into a temporary directory and print it with a local
headless Chrome. Set CHROME_BIN or pdf.chrome_path when Chrome is not on PATH.

Examples:
  petshop export pdf
  petshop export pdf --format letter --landscape --out flyer.pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := export.ResolveOptions(*a.cfg, strings.ToUpper(format), landscape)
			if err != nil {
				return err
			}

			tmp, err := os.MkdirTemp("", "petshop-site-*")
			if err != nil {
				return err
			}
			defer os.RemoveAll(tmp)

			b, err := a.builder(tmp)
			if err != nil {
				return err
			}
			if _, err := b.Build(cmd.Context(), content.Home()); err != nil {
				return fmt.Errorf("render failed: %w", err)
			}

			pdf, err := export.NewPDFExporter(*a.cfg).Export(cmd.Context(), filepath.Join(tmp, site.IndexFile), opts)
			if err != nil {
				return fmt.Errorf("pdf export failed: %w", err)
			}
			if err := writePDF(cmd.Context(), out, pdf); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", out, len(pdf))
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "petshop.pdf", "PDF file to write")
	cmd.Flags().StringVar(&format, "format", "", "paper format, e.g. A4 or LETTER (defaults to pdf.default_paper)")
	cmd.Flags().BoolVar(&landscape, "landscape", false, "landscape orientation")
	return cmd
}

// writePDF stores the document at out through a directory store, so the file
// appears complete or not at all.
func writePDF(ctx context.Context, out string, pdf []byte) error {
	store, err := storage.NewDirStore(filepath.Dir(out))
	if err != nil {
		return err
	}
	if _, err := store.Save(ctx, filepath.Base(out), bytes.NewReader(pdf)); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	return nil
}
