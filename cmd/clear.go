package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all projects, units, problems and activity history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !clearYes {
			return fmt.Errorf("refusing to wipe all data without --yes")
		}
		if err := svc.ClearAllData(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("✅ All data cleared")
		return nil
	},
}

func init() {
	clearCmd.Flags().BoolVar(&clearYes, "yes", false, "confirm wiping all data")
	rootCmd.AddCommand(clearCmd)
}
