package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zoro11031/d3l/internal/common"
)

var (
	replaceFrom string
	replaceTo   string
	eraseSub    string
)

var replaceCmd = &cobra.Command{
	Use:   "replace --from <old> --to <new> <text>",
	Short: "Replace every occurrence of a substring",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), common.Replace(args[0], replaceFrom, replaceTo))
	},
}

var eraseCmd = &cobra.Command{
	Use:   "erase --sub <text> <text>",
	Short: "Remove every occurrence of a substring",
	Long: `Remove every occurrence of a substring, including occurrences that only
appear once an earlier one has been removed.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), common.Erase(args[0], eraseSub))
	},
}

func init() {
	replaceCmd.Flags().StringVar(&replaceFrom, "from", "", "Substring to replace")
	replaceCmd.Flags().StringVar(&replaceTo, "to", "", "Replacement")
	eraseCmd.Flags().StringVar(&eraseSub, "sub", "", "Substring to remove")

	rootCmd.AddCommand(replaceCmd)
	rootCmd.AddCommand(eraseCmd)
}
