package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/pixel-tools-mcp/internal/logging"
	"github.com/ironsheep/pixel-tools-mcp/internal/server"
)

// Environment variables read when the matching flag is not given.
const (
	EnvLogLevel = "PIXEL_MCP_LOG_LEVEL"
	EnvLogFile  = "PIXEL_MCP_LOG_FILE"
)

// BuildInfo is stamped into the binary with ldflags.
type BuildInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

// NewRoot builds the pixel-mcp command tree. Without a subcommand it runs
// the MCP server.
func NewRoot(ctx context.Context, info BuildInfo) *cobra.Command {
	var logCloser io.Closer

	cmd := &cobra.Command{
		Use:   "pixel-mcp",
		Short: "MCP server and CLI for pixel transforms",
		Long: "pixel-mcp serves color conversion, 3x3 convolution, tone curves, resampling and\n" +
			"GrayBit-7 decoding as MCP tools over stdin/stdout, or applies them to files directly.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			levelName := setting(cmd, "log-level", EnvLogLevel)
			level, ok := logging.ParseLevel(levelName)

			// stdout carries MCP traffic and command output
			var w io.Writer = cmd.ErrOrStderr()
			if path := setting(cmd, "log-file", EnvLogFile); path != "" {
				fw := logging.FileWriter(logging.DefaultFileConfig(path))
				logCloser = fw
				w = fw
			}
			jsonLogs, _ := cmd.Flags().GetBool("log-json")
			slog.SetDefault(logging.Logger(w, jsonLogs, level))

			if !ok {
				slog.WarnContext(ctx, "Invalid log level, defaulting to INFO", "level", levelName)
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return closeLog(&logCloser)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(ctx, cmd, info)
		},
	}
	cobra.OnFinalize(func() { _ = closeLog(&logCloser) })

	cmd.AddCommand(
		NewServeCmd(ctx, info),
		NewVersionCmd(info),
		NewInspectCmd(ctx),
		NewConvertCmd(ctx),
		NewColorCmd(ctx),
	)
	pf := cmd.PersistentFlags()
	pf.String("log-level", "INFO", "Log level (DEBUG, INFO, WARN, ERROR); env "+EnvLogLevel)
	pf.String("log-file", "", "Write logs to a rotating file instead of stderr; env "+EnvLogFile)
	pf.Bool("log-json", false, "Emit logs as JSON")
	return cmd
}

// setting returns the flag value when it was set on the command line, then
// the environment variable, then the flag default.
func setting(cmd *cobra.Command, flag, env string) string {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetString(flag)
		return v
	}
	if v, ok := os.LookupEnv(env); ok && v != "" {
		return v
	}
	v, _ := cmd.Flags().GetString(flag)
	return v
}

func closeLog(c *io.Closer) error {
	if *c == nil {
		return nil
	}
	err := (*c).Close()
	*c = nil
	return err
}

// NewServeCmd runs the MCP server on stdin/stdout.
func NewServeCmd(ctx context.Context, info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server over stdin/stdout",
		Long: "Run the MCP server. Requests are read from stdin one JSON-RPC message per line\n" +
			"and responses written to stdout. Configure it in your MCP client.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(ctx, cmd, info)
		},
	}
}

func runServe(ctx context.Context, cmd *cobra.Command, info BuildInfo) error {
	log := logging.With(ctx, slog.Default())
	log.Debug("starting", "build_time", info.BuildTime)

	srv := server.New(server.WithLogger(log), server.WithVersion(info.Version))
	err := srv.Serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
	if errors.Is(err, context.Canceled) {
		log.Info("shutdown requested")
		return nil
	}
	return err
}

// NewVersionCmd prints build information.
func NewVersionCmd(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "pixel-mcp %s\n", info.Version)
			fmt.Fprintf(out, "  Build time: %s\n", info.BuildTime)
			fmt.Fprintf(out, "  Git commit: %s\n", info.GitCommit)
		},
	}
}
