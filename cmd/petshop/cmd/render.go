package cmd

import (
	"fmt"

	"github.com/nfrund/petshop/internal/content"
	"github.com/spf13/cobra"
)

func newRenderCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the landing page into the output directory",
		Long: `Render writes index.html, the stylesheet and the page images into the
output directory and prints every written file.

Examples:
  petshop render                 # writes to the configured out_dir (dist)
  petshop render --out public    # writes to ./public`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := a.outDir(out)
			b, err := a.builder(dir)
			if err != nil {
				return err
			}
			result, err := b.Build(cmd.Context(), content.Home())
			if err != nil {
				return fmt.Errorf("render failed: %w", err)
			}
			w := cmd.OutOrStdout()
			for _, f := range result.Files {
				fmt.Fprintf(w, "%s\t%d\t%s\n", f.Path, f.Size, f.SHA256)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output directory (defaults to site.out_dir)")
	return cmd
}
