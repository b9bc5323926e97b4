package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/zoro11031/d3l/internal/charset"
	"github.com/zoro11031/d3l/internal/common"
)

var (
	convFrom     string
	convTo       string
	convCapacity int
	hexLegacy    bool
)

var convCmd = &cobra.Command{
	Use:   "conv --from <charset> --to <charset> <file|->",
	Short: "Transcode a file between charsets",
	Long: `Transcode the contents of a file (or standard input with "-") and write
the result to standard output.

The output buffer is sized from the worst-case expansion of the two charsets
unless --capacity is given. Conversion stops with an error on invalid input,
on characters the target charset cannot represent, or when the output does not
fit the buffer.`,
	Args: cobra.ExactArgs(1),
	RunE: runConv,
}

var u2gCmd = &cobra.Command{
	Use:   "u2g <text>",
	Short: "Convert UTF-8 text to the legacy charset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := newContext(cmd)
		if err != nil {
			return err
		}
		defer ctx.Close()

		out, err := ctx.Transcoder.ToLegacy(args[0])
		if err != nil {
			return err
		}
		_, err = io.WriteString(cmd.OutOrStdout(), out)
		return err
	},
}

var g2uCmd = &cobra.Command{
	Use:   "g2u <file|->",
	Short: "Convert legacy-charset file contents to UTF-8",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := newContext(cmd)
		if err != nil {
			return err
		}
		defer ctx.Close()

		src, err := readInput(cmd, ctx.FS.ReadFile, args[0])
		if err != nil {
			return err
		}

		out, err := ctx.Transcoder.ToUniversal(string(src))
		if err != nil {
			return err
		}
		_, err = io.WriteString(cmd.OutOrStdout(), out)
		return err
	},
}

var hexCmd = &cobra.Command{
	Use:   "hex <text>",
	Short: "Print the bytes of a string as hex pairs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := args[0]
		if hexLegacy {
			ctx, err := newContext(cmd)
			if err != nil {
				return err
			}
			defer ctx.Close()

			if text, err = ctx.Transcoder.ToLegacy(text); err != nil {
				return err
			}
		}
		return charset.HexDump(cmd.OutOrStdout(), []byte(text))
	},
}

func init() {
	convCmd.Flags().StringVar(&convFrom, "from", charset.Universal, "Source charset")
	convCmd.Flags().StringVar(&convTo, "to", "", "Target charset (default [charset] legacy)")
	convCmd.Flags().IntVar(&convCapacity, "capacity", 0, "Output buffer size in bytes (0 = computed)")
	hexCmd.Flags().BoolVar(&hexLegacy, "legacy", false, "Dump the legacy-charset encoding of the text")

	rootCmd.AddCommand(convCmd)
	rootCmd.AddCommand(u2gCmd)
	rootCmd.AddCommand(g2uCmd)
	rootCmd.AddCommand(hexCmd)
}

// readInput reads a file through read, or standard input for "-"
func readInput(cmd *cobra.Command, read func(string) ([]byte, error), name string) ([]byte, error) {
	if name == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	return read(name)
}

func runConv(cmd *cobra.Command, args []string) error {
	ctx, err := newContext(cmd)
	if err != nil {
		return err
	}
	defer ctx.Close()

	to := convTo
	if to == "" {
		to = ctx.Transcoder.Legacy()
	}
	for _, name := range []string{convFrom, to} {
		if err := common.ValidateCharsetName(name); err != nil {
			return err
		}
	}
	if err := common.ValidateCapacity(convCapacity); err != nil {
		return err
	}

	src, err := readInput(cmd, ctx.FS.ReadFile, args[0])
	if err != nil {
		return err
	}

	capacity := convCapacity
	if capacity == 0 {
		capacity = ctx.Transcoder.CapacityFor(convFrom, to, len(src))
	}

	dst := make([]byte, capacity)
	n, err := ctx.Transcoder.Convert(convFrom, to, src, dst)
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(dst[:n])
	return err
}
