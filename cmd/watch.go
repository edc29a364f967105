package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/studytrack/internal/scheduler"
	"github.com/example/studytrack/internal/view"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow live progress until interrupted",
	Long: `Stay attached to the store and reprint the overview whenever it
changes, for example while marking results from another terminal. A
daily reminder fires if no practice has been logged by the configured
hour. Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			logger.Info("Shutdown signal received")
			cancel()
		}()

		sched := scheduler.New(store, consoleNotifier{}, cfg.ReminderHour, logger)
		if err := sched.Start(); err != nil {
			return err
		}
		defer sched.Stop()

		logger.Info("Watching for changes",
			zap.String("database", cfg.DatabasePath),
			zap.Int("reminder_hour", cfg.ReminderHour))

		home := view.WatchHome(ctx, store)
		for {
			select {
			case <-ctx.Done():
				fmt.Println("\nStopped.")
				return nil
			case state, ok := <-home:
				if !ok {
					return nil
				}
				if state.Phase == view.PhaseLoading {
					continue
				}
				fmt.Printf("--- %s ---\n", time.Now().Format("15:04:05"))
				printHome(state)
				fmt.Println()
			}
		}
	},
}

// consoleNotifier satisfies scheduler.Notifier by printing the reminder
// to the attached terminal.
type consoleNotifier struct{}

func (consoleNotifier) RemindPractice(openProblems int) error {
	fmt.Printf("🔔 No practice logged today. %d problems are still open.\n", openProblems)
	return nil
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
