package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/zoro11031/d3l/internal/system"
)

var (
	accessMode string
	lsLong     bool
)

var linesCmd = &cobra.Command{
	Use:   "lines <file>",
	Short: "Count the lines of a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := newContext(cmd)
		if err != nil {
			return err
		}
		defer ctx.Close()

		n, err := ctx.FS.LineCount(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), n)
		return nil
	},
}

var sizeCmd = &cobra.Command{
	Use:   "size <file>",
	Short: "Print the size of a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := newContext(cmd)
		if err != nil {
			return err
		}
		defer ctx.Close()

		n, err := ctx.FS.Size(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d (%s)\n", n, humanize.IBytes(uint64(n)))
		return nil
	},
}

var accessCmd = &cobra.Command{
	Use:   "access <path>",
	Short: "Check that a path is accessible",
	Long: `Check a path with access(2). --mode takes any combination of r, w and x,
or f to only check that the path exists.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := parseAccessMode(accessMode)
		if err != nil {
			return err
		}

		ctx, err := newContext(cmd)
		if err != nil {
			return err
		}
		defer ctx.Close()

		if err := ctx.FS.Access(args[0], mode); err != nil {
			return err
		}
		ctx.UI.Successf("%s is accessible (%s)", args[0], accessMode)
		return nil
	},
}

var countCmd = &cobra.Command{
	Use:   "count <dir>",
	Short: "Count the entries of a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := newContext(cmd)
		if err != nil {
			return err
		}
		defer ctx.Close()

		n, err := ctx.FS.CountEntries(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), n)
		return nil
	},
}

var lsCmd = &cobra.Command{
	Use:   "ls <dir>",
	Short: "List the entries of a directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runLs,
}

var writeCmd = &cobra.Command{
	Use:   "write <file> <text>",
	Short: "Write text to a file, replacing any existing file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := newContext(cmd)
		if err != nil {
			return err
		}
		defer ctx.Close()

		n, err := ctx.FS.WriteFile(args[0], []byte(args[1]), 0777)
		if err != nil {
			return err
		}
		ctx.UI.Successf("Wrote %s to %s", humanize.IBytes(uint64(n)), args[0])
		return nil
	},
}

func init() {
	accessCmd.Flags().StringVarP(&accessMode, "mode", "m", "f", "Access to check: f, or a combination of r, w, x")
	lsCmd.Flags().BoolVarP(&lsLong, "long", "l", false, "Show mode, size and modification time")

	rootCmd.AddCommand(linesCmd)
	rootCmd.AddCommand(sizeCmd)
	rootCmd.AddCommand(accessCmd)
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(writeCmd)
}

func parseAccessMode(s string) (system.AccessMode, error) {
	if s == "f" {
		return system.AccessExists, nil
	}
	if s == "" {
		return 0, fmt.Errorf("access mode cannot be empty")
	}

	var mode system.AccessMode
	for _, c := range strings.ToLower(s) {
		switch c {
		case 'r':
			mode |= system.AccessRead
		case 'w':
			mode |= system.AccessWrite
		case 'x':
			mode |= system.AccessExecute
		default:
			return 0, fmt.Errorf("invalid access mode: %s", s)
		}
	}
	return mode, nil
}

func runLs(cmd *cobra.Command, args []string) error {
	ctx, err := newContext(cmd)
	if err != nil {
		return err
	}
	defer ctx.Close()

	names, err := ctx.FS.ListDirectory(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, name := range names {
		if !lsLong {
			fmt.Fprintln(out, name)
			continue
		}

		info, err := ctx.FS.Stat(filepath.Join(args[0], name))
		if err != nil {
			ctx.UI.Warningf("Cannot stat %s: %v", name, err)
			continue
		}
		fmt.Fprintf(out, "%s %8s %-16s %s\n",
			info.Mode, humanize.IBytes(uint64(info.Size)), humanize.Time(info.Modified), name)
	}
	return nil
}
