package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rmForce bool

var rmCmd = &cobra.Command{
	Use:   "rm <file>",
	Short: "Remove a file",
	Long: `Unlink a file. Directories are not removed.

Asks for confirmation unless --force or --non-interactive is given.`,
	Args: cobra.ExactArgs(1),
	RunE: removeFile,
}

func init() {
	rmCmd.Flags().BoolVarP(&rmForce, "force", "f", false, "Skip confirmation prompt")
	rootCmd.AddCommand(rmCmd)
}

func removeFile(cmd *cobra.Command, args []string) error {
	ctx, err := newContext(cmd)
	if err != nil {
		return err
	}
	defer ctx.Close()

	path := args[0]

	if exists, err := ctx.FS.Exists(path); err != nil {
		return err
	} else if !exists {
		return fmt.Errorf("%s does not exist", path)
	}

	if !rmForce && ctx.UI.IsNonInteractive() {
		ctx.UI.Warningf("Not removing %s without --force in non-interactive mode", path)
		return nil
	}

	// Confirmation prompt
	if !rmForce {
		ctx.UI.Header("Remove File")
		ctx.UI.Warningf("This will permanently delete %s", path)

		confirm, err := ctx.UI.PromptYesNo("Are you sure you want to remove it?", false)
		if err != nil {
			return err
		}

		if !confirm {
			ctx.UI.Info("Remove cancelled")
			return nil
		}
	}

	if err := ctx.FS.Remove(path); err != nil {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	ctx.Log.Append(fmt.Sprintf("%s has been removed", path))
	ctx.UI.Successf("Removed %s", path)
	return nil
}
