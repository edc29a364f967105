package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/studytrack/internal/stats"
	"github.com/example/studytrack/internal/view"
)

var overviewCmd = &cobra.Command{
	Use:     "overview",
	Aliases: []string{"home", "ls"},
	Short:   "Show the active project, its units and all project rollups",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()

		state, err := firstSnapshot(ctx, view.WatchHome(ctx, store), func(s view.HomeState) bool {
			return s.Phase != view.PhaseLoading
		})
		if err != nil {
			return err
		}
		printHome(state)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(overviewCmd)
}

func printHome(state view.HomeState) {
	if state.Phase == view.PhaseEmpty {
		fmt.Println("No active project. Create one with: studytrack create <name> --units \"U1: 32\"")
		if len(state.Projects) > 0 {
			fmt.Println()
			printProjects(state)
		}
		return
	}

	fmt.Printf("Active project: %s (id %d)\n\n", state.ActiveProject.Name, state.ActiveProject.ID)
	if len(state.Units) == 0 {
		fmt.Println("  no units yet")
	}
	for _, u := range state.Units {
		fmt.Println(unitLine(u))
	}

	if len(state.Projects) > 1 {
		fmt.Println()
		printProjects(state)
	}
}

func printProjects(state view.HomeState) {
	fmt.Println("Projects:")
	for _, p := range state.Projects {
		marker := " "
		if p.Project.IsActive {
			marker = "*"
		}
		fmt.Printf("  %s [%d] %-20s %d units, %d/%d mastered\n",
			marker, p.Project.ID, p.Project.Name,
			p.UnitCount, p.MasteredCount, p.TotalProblems)
	}
}

// unitLine renders one unit rollup row. The rollup carries progress as
// a 0..1 ratio; rendering scales it to percent.
func unitLine(u stats.UnitRollup) string {
	pct := u.ProgressPercentage * 100
	return fmt.Sprintf("  [%d] %-20s %s %3d%%  (%d/%d mastered)",
		u.Unit.ID, u.Unit.Name,
		progressBar(pct), int(pct),
		u.MasteredCount, u.TotalProblems)
}

// progressBar renders a ten-segment bar like [####------].
func progressBar(pct float64) string {
	filled := int(pct / 10)
	if filled > 10 {
		filled = 10
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", 10-filled) + "]"
}
