package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var mkdirMode string

var mkdirCmd = &cobra.Command{
	Use:   "mkdir <path>",
	Short: "Create every missing directory along a path",
	Long: `Create each directory along the path, from the outermost to the innermost.

Segments that already exist are left alone. A segment that cannot be created
is reported and the remaining segments are still attempted; the command then
exits with an error listing every failure.`,
	Args: cobra.ExactArgs(1),
	RunE: runMkdir,
}

func init() {
	mkdirCmd.Flags().StringVarP(&mkdirMode, "mode", "m", "", "Permissions for new directories (default [dir] mode or 0755)")
	rootCmd.AddCommand(mkdirCmd)
}

func runMkdir(cmd *cobra.Command, args []string) error {
	ctx, err := newContext(cmd)
	if err != nil {
		return err
	}
	defer ctx.Close()

	creator, err := ctx.PathCreator(mkdirMode)
	if err != nil {
		return err
	}

	report, err := creator.CreateAll(args[0])
	if report == nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, seg := range report.Segments {
		fmt.Fprintf(out, "%-8s %s\n", seg.Outcome, seg.Path)
	}

	if err != nil {
		ctx.UI.Errorf("%d of %d segments failed", len(report.Failed()), len(report.Segments))
		return err
	}
	return nil
}
