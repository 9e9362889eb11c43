package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/pixel-tools-mcp/internal/graybit7"
	"github.com/ironsheep/pixel-tools-mcp/internal/logging"
)

// NewInspectCmd prints the metadata of a GrayBit-7 file as JSON.
func NewInspectCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <file.gb7>",
		Short: "Show GrayBit-7 header metadata",
		Long: "Validate a GrayBit-7 file and print its width, height, version, mask flag and\n" +
			"average bits per pixel as JSON. With --header-only the pixel records are not checked.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			headerOnly, _ := cmd.Flags().GetBool("header-only")

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to open file: %w", err)
			}

			var meta graybit7.Metadata
			if headerOnly {
				meta, err = graybit7.DecodeMetadata(data)
			} else {
				_, meta, err = graybit7.Decode(data)
			}
			if err != nil {
				return err
			}
			logging.With(ctx, slog.Default()).Debug("inspected", "file", args[0], "bytes", len(data))

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(meta)
		},
	}
	cmd.Flags().Bool("header-only", false, "Only validate the 12-byte header")
	return cmd
}
