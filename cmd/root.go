// Package cmd implements the studytrack command-line interface. The CLI
// is the presentation collaborator: it renders snapshots produced by the
// view layer and forwards commands to the study service, holding no
// domain logic of its own.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/example/studytrack/internal/config"
	"github.com/example/studytrack/internal/database"
	"github.com/example/studytrack/internal/study"
	"github.com/example/studytrack/internal/view"
)

var (
	cfg    config.Config
	logger *zap.Logger
	store  *database.Store
	svc    *study.Service
	prefs  *view.Preferences

	labelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "studytrack",
	Short: "Track mastery of practice problems across units and projects",
	Long: `studytrack keeps score while you work through problem sets: create a
project from unit definitions like "U1: 32", mark problems correct or
wrong, and watch per-unit progress, project rollups and a practice
calendar update as you go.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		teardown()
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		teardown()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&labelFlag, "labels", "unit-dash",
		"problem label format: unit-dash, decimal or hash")
}

func setup() error {
	cfg = config.Load()

	var err error
	logger, err = newLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	store, err = database.Connect(cfg.DatabasePath, logger)
	if err != nil {
		return err
	}

	svc = study.NewService(store, logger)
	prefs = view.NewPreferences()

	format, err := view.ParseLabelFormat(labelFlag)
	if err != nil {
		return err
	}
	prefs.SetLabelFormat(format)
	return nil
}

func teardown() {
	if store != nil {
		store.Close()
		store = nil
	}
	if logger != nil {
		logger.Sync()
		logger = nil
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}
	return zcfg.Build()
}

// firstSnapshot consumes a live stream until a snapshot satisfies ready,
// for one-shot commands that only need the current state.
func firstSnapshot[T any](ctx context.Context, ch <-chan T, ready func(T) bool) (T, error) {
	var zero T
	for {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case v, ok := <-ch:
			if !ok {
				return zero, fmt.Errorf("snapshot stream closed")
			}
			if ready(v) {
				return v, nil
			}
		}
	}
}
