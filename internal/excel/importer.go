// Package excel imports bulk unit definitions from spreadsheet files, as
// an alternative to typing them into the setup form. Excel (.xlsx) and
// CSV files are supported.
package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/studytrack/internal/provision"
)

// ImportConfig defines how the spreadsheet is read.
type ImportConfig struct {
	FilePath    string // Path to the Excel or CSV file
	SheetName   string // Sheet to import (Excel only); empty means the first sheet
	NameColumn  int    // 0-based column holding the unit name
	CountColumn int    // 0-based column holding the problem count
	SkipHeader  bool   // Skip the first row
}

// DefaultImportConfig returns the default import configuration: first
// sheet, unit name in column A, problem count in column B, header row
// skipped.
func DefaultImportConfig(path string) ImportConfig {
	return ImportConfig{
		FilePath:    path,
		NameColumn:  0,
		CountColumn: 1,
		SkipHeader:  true,
	}
}

// ImportResult holds the outcome of an import operation.
type ImportResult struct {
	TotalProcessed int
	Imported       int
	Skipped        int
	Errors         []string
}

// ImportUnitDefinitions reads unit definitions from an Excel or CSV
// file. Rows that yield no valid (name, count) pair are counted as
// skipped with a per-row message, matching the setup form's tolerance
// for malformed lines.
func ImportUnitDefinitions(config ImportConfig) ([]provision.UnitDefinition, *ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		return importFromCSV(config)
	}
	return importFromExcel(config)
}

func importFromExcel(config ImportConfig) ([]provision.UnitDefinition, *ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := config.SheetName
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get rows: %w", err)
	}

	return collectDefinitions(rows, config), newResultFrom(rows, config), nil
}

func importFromCSV(config ImportConfig) ([]provision.UnitDefinition, *ImportResult, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		rows = append(rows, record)
	}

	return collectDefinitions(rows, config), newResultFrom(rows, config), nil
}

func collectDefinitions(rows [][]string, config ImportConfig) []provision.UnitDefinition {
	var defs []provision.UnitDefinition
	for i, row := range rows {
		if config.SkipHeader && i == 0 {
			continue
		}
		if def, ok := parseRow(row, config); ok {
			defs = append(defs, def)
		}
	}
	return defs
}

func newResultFrom(rows [][]string, config ImportConfig) *ImportResult {
	result := &ImportResult{}
	for i, row := range rows {
		if config.SkipHeader && i == 0 {
			continue
		}
		result.TotalProcessed++
		if _, ok := parseRow(row, config); ok {
			result.Imported++
		} else {
			result.Skipped++
			result.Errors = append(result.Errors,
				fmt.Sprintf("row %d: no valid unit definition", i+1))
		}
	}
	return result
}

func parseRow(row []string, config ImportConfig) (provision.UnitDefinition, bool) {
	if len(row) <= config.CountColumn || len(row) <= config.NameColumn {
		return provision.UnitDefinition{}, false
	}

	name := strings.TrimSpace(row[config.NameColumn])
	count, err := strconv.Atoi(strings.TrimSpace(row[config.CountColumn]))
	if err != nil || name == "" || count <= 0 {
		return provision.UnitDefinition{}, false
	}

	return provision.UnitDefinition{Name: name, Count: count}, true
}
