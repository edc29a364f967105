package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	createUnits      string
	createNoActivate bool
)

var createCmd = &cobra.Command{
	Use:   "create <project name>",
	Short: "Create a project from unit definitions",
	Long: `Create a project and provision its units and problems in one step.

Unit definitions are given with --units as name/count pairs separated by
commas, semicolons or newlines, for example:

  studytrack create "Linear Algebra" --units "U1: 32, U2: 28, U3: 40"

Each count provisions that many untried problems for the unit.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.Join(args, " ")
		id, err := svc.CreateProjectWithUnits(cmd.Context(), name, createUnits, !createNoActivate)
		if err != nil {
			return err
		}
		fmt.Printf("✅ Created project %q (id %d)\n", name, id)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createUnits, "units", "", "unit definitions, e.g. \"U1: 32, U2: 28\"")
	createCmd.Flags().BoolVar(&createNoActivate, "no-activate", false, "do not switch the active project to the new one")
	createCmd.MarkFlagRequired("units")
	rootCmd.AddCommand(createCmd)
}
