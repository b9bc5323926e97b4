package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/zoro11031/d3l/internal/cli"
	"github.com/zoro11031/d3l/internal/timing"
	"github.com/zoro11031/d3l/pkg/version"
)

var (
	configPath     string
	logFile        string
	logConsole     bool
	showTiming     bool
	nonInteractive bool

	timer timing.Timer
)

var rootCmd = &cobra.Command{
	Use:   "d3l",
	Short: "Directory, charset and file helpers",
	Long: `d3l bundles small filesystem and text utilities:

- Recursive directory creation with a per-segment report
- Charset transcoding between UTF-8 and a legacy charset (GBK by default)
- Byte dumps, line counts, sizes, access checks and directory listings
- String erase and replace helpers

Failures are written to the log file (d3l.log unless configured otherwise).`,
	SilenceUsage:  true, // We handle errors manually, but silence usage on error
	SilenceErrors: true, // We format errors ourselves for consistent output
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		timer = timing.Start()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if showTiming {
			fmt.Fprintln(cmd.ErrOrStderr(), timer.Report())
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Info())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Configuration file (default $HOME/.d3l.ini)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file (overrides [log] file)")
	rootCmd.PersistentFlags().BoolVar(&logConsole, "log-console", false, "Write log entries to stderr instead of the log file")
	rootCmd.PersistentFlags().BoolVar(&showTiming, "timing", false, "Print the cost time after the command")
	rootCmd.PersistentFlags().BoolVar(&nonInteractive, "non-interactive", false, "Never prompt, assume the default answer")
	rootCmd.AddCommand(versionCmd)
}

// newContext builds the shared command context from the global flags
func newContext(cmd *cobra.Command) (*cli.Context, error) {
	ctx, err := cli.NewContext(cli.Options{
		ConfigPath:     configPath,
		LogFile:        logFile,
		LogConsole:     logConsole,
		Console:        cmd.ErrOrStderr(),
		NonInteractive: nonInteractive,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize context: %w", err)
	}
	return ctx, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
