package cmd

import (
	"fmt"

	"github.com/nfrund/petshop/internal/content"
	"github.com/spf13/cobra"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the page content and its assets",
		Long: `Validate checks that the hero and every tile have an image, a title and a
description, that there are exactly three tiles, and that every referenced
image exists in the asset source.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			page := content.Home()
			if err := page.Validate(); err != nil {
				return fmt.Errorf("content validation failed: %w", err)
			}
			src, err := a.assetSource()
			if err != nil {
				return err
			}
			if err := src.Require(page.Images()); err != nil {
				return fmt.Errorf("asset validation failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Page is valid (%d tiles, assets from %s)\n", len(page.Tiles), src.Origin())
			return nil
		},
	}
}
