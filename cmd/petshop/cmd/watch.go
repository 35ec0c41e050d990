package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/nfrund/petshop/internal/content"
	"github.com/nfrund/petshop/internal/site"
	"github.com/spf13/cobra"
)

// errNoAssetDir is returned by watch when assets come from the binary.
var errNoAssetDir = errors.New("watch needs an on-disk asset directory: set site.asset_dir or PETSHOP_ASSET_DIR")

func newWatchCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the site whenever an asset changes",
		Long: `Watch builds the site once and then rebuilds it every time a file in the
configured asset directory changes. Stop it with Ctrl+C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Site.AssetDir == "" {
				return errNoAssetDir
			}
			dir := a.outDir(out)
			b, err := a.builder(dir)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			rebuild := func(ctx context.Context) error {
				_, err := b.Build(ctx, content.Home())
				return err
			}
			if err := rebuild(ctx); err != nil {
				return err
			}

			return site.NewWatcher(a.cfg.Site.AssetDir, a.cfg.Watch.Debounce, rebuild).
				Ignore(dir).
				Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output directory (defaults to site.out_dir)")
	return cmd
}
