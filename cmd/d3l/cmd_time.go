package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zoro11031/d3l/internal/timing"
)

var timeCmd = &cobra.Command{
	Use:   "time",
	Short: "Print the current local time",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), timing.Now())
	},
}

func init() {
	rootCmd.AddCommand(timeCmd)
}
