package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/example/studytrack/internal/proficiency"
)

var markCmd = &cobra.Command{
	Use:   "mark <problem-id> <correct|wrong>",
	Short: "Record a practice result for a problem",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid problem id %q: %w", args[0], err)
		}

		var isCorrect bool
		switch args[1] {
		case "correct", "c", "right":
			isCorrect = true
		case "wrong", "w", "incorrect":
			isCorrect = false
		default:
			return fmt.Errorf("result must be correct or wrong, got %q", args[1])
		}

		if err := svc.MarkResult(cmd.Context(), id, isCorrect); err != nil {
			return err
		}

		p, err := store.Problems.GetByID(cmd.Context(), store.DB(), id)
		if err != nil {
			return err
		}
		if p == nil {
			fmt.Printf("✅ Recorded result for problem %d\n", id)
			return nil
		}
		fmt.Printf("✅ Problem %d is now %s (%d correct / %d wrong)\n",
			id, proficiency.Label(p.Level), p.CorrectCount, p.WrongCount)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(markCmd)
}
