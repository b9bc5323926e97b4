package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/zoro11031/d3l/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read and edit the configuration file",
}

var configGetCmd = &cobra.Command{
	Use:   "get <section.key>",
	Short: "Print a configuration value (or its default)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.New(configPath)
		if err := cfg.Load(); err != nil {
			return err
		}

		if !cfg.Exists(args[0]) {
			if _, known := config.Defaults[args[0]]; !known {
				return fmt.Errorf("config key not found: %s", args[0])
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), cfg.GetOrDefault(args[0], ""))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <section.key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.New(configPath)
		if err := cfg.Set(args[0], args[1]); err != nil {
			return fmt.Errorf("failed to set %s: %w", args[0], err)
		}
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print every value, defaults included",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.New(configPath)
		if err := cfg.Load(); err != nil {
			return err
		}

		values := cfg.GetAll()
		for key, def := range config.Defaults {
			if _, set := values[key]; !set {
				values[key] = def
			}
		}

		keys := make([]string, 0, len(values))
		for key := range values {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, values[key])
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)
}
