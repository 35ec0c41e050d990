package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/nfrund/petshop/internal/assets"
	"github.com/nfrund/petshop/internal/config"
	"github.com/nfrund/petshop/internal/logging"
	"github.com/nfrund/petshop/internal/site"
	"github.com/nfrund/petshop/internal/storage"
	"github.com/spf13/cobra"
)

// app is the state shared by every subcommand once the root command has
// loaded configuration.
type app struct {
	configPath string
	cfg        *config.Config
	logger     *slog.Logger
}

// NewRootCmd builds the petshop command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "petshop",
		Short: "Pet Shop landing page generator",
		Long: `petshop renders the Pet Shop landing page into a static site.

Available commands:
  render      Write index.html and its assets to the output directory
  watch       Rebuild the site whenever an asset changes
  export pdf  Print the page to PDF with headless Chrome
  validate    Check the page content
  version     Print the version number

Use "petshop [command] --help" for more information about a specific command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file (defaults to $CONFIG_PATH)")

	rootCmd.AddCommand(
		newRenderCmd(a),
		newWatchCmd(a),
		newExportCmd(a),
		newValidateCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute executes the root command
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	opts := logging.Options{
		Format:     cfg.Logger.Format,
		Level:      cfg.Logger.Level,
		File:       cfg.Logger.File,
		MaxSizeMB:  cfg.Logger.MaxSizeMB,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAgeDays: cfg.Logger.MaxAgeDays,
		Compress:   cfg.Logger.Compress,
	}
	if opts.File == "" {
		// stdout is reserved for command output.
		a.logger = logging.NewWithWriter(opts, cmd.ErrOrStderr())
	} else {
		a.logger = logging.New(opts)
	}
	cmd.SetContext(logging.WithLogger(cmd.Context(), a.logger))
	return nil
}

// assetSource returns the on-disk asset directory when one is configured and
// the embedded assets otherwise.
func (a *app) assetSource() (*assets.Source, error) {
	if a.cfg.Site.AssetDir != "" {
		return assets.Dir(a.cfg.Site.AssetDir)
	}
	return assets.Embedded()
}

// builder wires a site builder that writes into outDir.
func (a *app) builder(outDir string) (*site.Builder, error) {
	if err := a.cfg.CheckOutDir(outDir); err != nil {
		return nil, err
	}
	src, err := a.assetSource()
	if err != nil {
		return nil, err
	}
	store, err := storage.NewDirStore(outDir)
	if err != nil {
		return nil, err
	}
	return site.NewBuilder(nil, src, store, site.Options{
		Title:     a.cfg.Site.Title,
		AssetBase: a.cfg.Site.AssetBase,
	}), nil
}

// outDir returns the flag value, falling back to the configured directory.
func (a *app) outDir(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return a.cfg.Site.OutDir
}
