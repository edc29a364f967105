package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/studytrack/internal/practice"
	"github.com/example/studytrack/internal/proficiency"
	"github.com/example/studytrack/internal/view"
	"github.com/example/studytrack/pkg/models"
)

var practiceLimit int

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Suggest which problems to drill next",
	Long: `List the next problems to work on for the active project: untried
problems first, then the ones you struggle with most, mastered last.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		active, err := store.Projects.GetActive(ctx, store.DB())
		if err != nil {
			return err
		}

		var units []models.StudyUnit
		if active != nil {
			units, err = store.Units.GetForProject(ctx, store.DB(), active.ID)
		} else {
			units, err = store.Units.GetAll(ctx, store.DB())
		}
		if err != nil {
			return err
		}

		var problems []models.Problem
		for _, u := range units {
			ps, err := store.Problems.GetForUnit(ctx, store.DB(), u.ID)
			if err != nil {
				return err
			}
			problems = append(problems, ps...)
		}

		candidates := practice.NextProblems(units, problems, practiceLimit)
		if len(candidates) == 0 {
			fmt.Println("Nothing to practice. Create a project first.")
			return nil
		}

		if active != nil {
			fmt.Printf("Next up in %s:\n", active.Name)
		} else {
			fmt.Println("Next up:")
		}
		format := prefs.LabelFormat()
		for _, c := range candidates {
			unit := c.Unit
			label := view.FormatLabel(format, &unit, c.Problem)
			fmt.Printf("  %-10s %s  (id=%d)\n", label, proficiency.Label(c.Problem.Level), c.Problem.ID)
		}
		return nil
	},
}

func init() {
	practiceCmd.Flags().IntVar(&practiceLimit, "limit", 10, "maximum number of suggestions, 0 for all")
	rootCmd.AddCommand(practiceCmd)
}
