package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a project or a unit with everything under it",
}

var deleteProjectCmd = &cobra.Command{
	Use:   "project <project-id>",
	Short: "Delete a project with its units and problems",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid project id %q: %w", args[0], err)
		}
		if err := svc.DeleteProject(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("✅ Deleted project %d\n", id)
		return nil
	},
}

var deleteUnitCmd = &cobra.Command{
	Use:   "unit <unit-id>",
	Short: "Delete a unit and its problems",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid unit id %q: %w", args[0], err)
		}
		if err := svc.DeleteUnit(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("✅ Deleted unit %d\n", id)
		return nil
	},
}

func init() {
	deleteCmd.AddCommand(deleteProjectCmd)
	deleteCmd.AddCommand(deleteUnitCmd)
	rootCmd.AddCommand(deleteCmd)
}
