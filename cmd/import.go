package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/studytrack/internal/excel"
)

var (
	importName       string
	importSheet      string
	importNoActivate bool
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Create a project from an Excel or CSV file of unit definitions",
	Long: `Read unit definitions from a spreadsheet and provision a project from
them. The first column holds the unit name, the second the problem
count; the first row is treated as a header. Both .xlsx and .csv files
are supported.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		importCfg := excel.DefaultImportConfig(path)
		if importSheet != "" {
			importCfg.SheetName = importSheet
		}

		defs, result, err := excel.ImportUnitDefinitions(importCfg)
		if err != nil {
			return err
		}

		name := importName
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}

		id, err := svc.CreateProjectFromDefinitions(cmd.Context(), name, defs, !importNoActivate)
		if err != nil {
			return err
		}

		fmt.Printf("✅ Created project %q (id %d) from %s\n", name, id, path)
		fmt.Printf("   %d rows processed, %d units imported, %d skipped\n",
			result.TotalProcessed, result.Imported, result.Skipped)
		for _, msg := range result.Errors {
			fmt.Printf("   ⚠️  %s\n", msg)
		}
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importName, "name", "", "project name (defaults to the file name)")
	importCmd.Flags().StringVar(&importSheet, "sheet", "", "Excel sheet name (defaults to the first sheet)")
	importCmd.Flags().BoolVar(&importNoActivate, "no-activate", false, "do not switch the active project to the new one")
	rootCmd.AddCommand(importCmd)
}
