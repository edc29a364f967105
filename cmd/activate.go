package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var activateCmd = &cobra.Command{
	Use:   "activate <project-id>",
	Short: "Switch the active project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid project id %q: %w", args[0], err)
		}
		if err := svc.ActivateProject(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("✅ Project %d is now active\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(activateCmd)
}
