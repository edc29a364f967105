package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/studytrack/internal/view"
)

var gridCmd = &cobra.Command{
	Use:   "grid <unit-id>",
	Short: "Show the problem grid for one unit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		unitID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid unit id %q: %w", args[0], err)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()

		state, err := firstSnapshot(ctx, view.WatchGrid(ctx, store, prefs, unitID), func(s view.GridState) bool {
			return s.Phase != view.PhaseLoading
		})
		if err != nil {
			return err
		}

		fmt.Printf("%s\n\n", state.UnitName)
		if len(state.Problems) == 0 {
			fmt.Println("  no problems")
			return nil
		}
		for _, cell := range state.Problems {
			fmt.Printf("  %-10s level %d (%s)  %d✓ %d✗  id=%d\n",
				cell.Label, cell.Problem.Level, cell.LevelLabel,
				cell.Problem.CorrectCount, cell.Problem.WrongCount,
				cell.Problem.ID)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(gridCmd)
}
