package cmd

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ironsheep/pixel-tools-mcp/internal/colorspace"
	"github.com/ironsheep/pixel-tools-mcp/internal/logging"
)

// NewColorCmd converts one color or compares two.
func NewColorCmd(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "color <hex> [hex]",
		Short: "Convert a color, or grade the contrast of two",
		Long: "With one color, print it in linear RGB, XYZ, CIELAB, LCH and OkLCH together with its\n" +
			"relative luminance. With two, print the WCAG contrast of the first (foreground)\n" +
			"against the second (background).",
		Example: "  pixel-mcp color '#336699'\n  pixel-mcp color 000 fff",
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			colors := make([]colorspace.RGB, len(args))
			for i, a := range args {
				c, err := colorspace.ParseHex(a)
				if err != nil {
					return err
				}
				colors[i] = c
			}
			logging.With(ctx, slog.Default()).Debug("color", "args", args)

			var out any
			if len(colors) == 1 {
				out = colorspace.Describe(colors[0])
			} else {
				out = colorspace.CompareContrast(colors[0], colors[1])
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
}
