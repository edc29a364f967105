package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/studytrack/internal/stats"
	"github.com/example/studytrack/internal/view"
)

var (
	statsYear  int
	statsMonth int
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show overall practice statistics and the monthly calendar",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		now := time.Now()
		year, month := statsYear, time.Month(statsMonth)
		if year == 0 {
			year = now.Year()
		}
		if statsMonth == 0 {
			month = now.Month()
		}
		if month < time.January || month > time.December {
			return fmt.Errorf("month must be between 1 and 12, got %d", statsMonth)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()

		sv := view.WatchStats(ctx, store, year, month)
		state, err := firstSnapshot(ctx, sv.States(), func(s view.StatsState) bool {
			return s.Phase != view.PhaseLoading
		})
		if err != nil {
			return err
		}
		printStats(state)
		return nil
	},
}

func init() {
	statsCmd.Flags().IntVar(&statsYear, "year", 0, "calendar year (defaults to current)")
	statsCmd.Flags().IntVar(&statsMonth, "month", 0, "calendar month 1-12 (defaults to current)")
	rootCmd.AddCommand(statsCmd)
}

func printStats(state view.StatsState) {
	fmt.Printf("Total answered: %d\n", state.TotalDone)
	fmt.Printf("Accuracy:       %d%%\n", state.Accuracy)
	if state.LastActiveDate != "" {
		fmt.Printf("Last active:    %s\n", state.LastActiveDate)
	}
	fmt.Printf("\n%s %d\n", state.Month, state.Year)
	fmt.Println("Su Mo Tu We Th Fr Sa")

	for i, day := range state.CalendarDays {
		fmt.Print(calendarCell(day))
		if (i+1)%7 == 0 {
			fmt.Println()
		} else {
			fmt.Print(" ")
		}
	}
	if len(state.CalendarDays)%7 != 0 {
		fmt.Println()
	}
}

// calendarCell renders one two-character day cell. Practiced days show
// as ## so the heatmap reads at a glance; placeholders pad alignment.
func calendarCell(day stats.CalendarDay) string {
	if day.DayOfMonth == 0 {
		return "  "
	}
	if day.Count > 0 {
		return "##"
	}
	return fmt.Sprintf("%2d", day.DayOfMonth)
}
