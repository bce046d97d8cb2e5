package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/yoanbernabeu/locmon/config"
	"github.com/yoanbernabeu/locmon/stats"
)

var rootExt string

var rootCmd = &cobra.Command{
	Use:   "locmon [old] [new]",
	Short: "Monitor line counts and token density across a Python codebase",
	Long: `locmon measures how big a Python codebase really is.

With no arguments (or a single directory) it reports per-file line counts
and token density, per-directory subtotals and a grand total, optionally
enforcing a hard line budget via the MAX_LINE_COUNT environment variable.

With two directories (old then new) it diffs the snapshots and reports
which files grew or shrank.`,
	Args:          cobra.MaximumNArgs(2),
	RunE:          runRoot,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().StringVar(&rootExt, "ext", "", "Source file extension to scan (overrides config, default .py)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// GetRootCmd exposes the root command for documentation generation.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

// SetVersion wires the build version into the CLI.
func SetVersion(v string) {
	rootCmd.Version = v
}

func runRoot(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if len(args) == 2 {
		return runDiffReport(ctx, os.Stdout, args[0], args[1])
	}
	base := "."
	if len(args) == 1 {
		base = args[0]
	}
	return runSnapshotReport(ctx, os.Stdout, base)
}

// loadConfig resolves the scan configuration for root, applying the --ext
// flag on top.
func loadConfig(root string) (config.Config, error) {
	cfg, err := config.Load(root)
	if err != nil {
		return config.Config{}, err
	}
	if rootExt != "" {
		cfg.Extension = rootExt
	}
	return cfg, nil
}

func collect(ctx context.Context, root string, cfg config.Config) ([]stats.FileStat, error) {
	return stats.NewCollector(root, cfg.Extension, cfg.RespectGitignore).Collect(ctx)
}
