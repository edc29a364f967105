package excel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/example/studytrack/internal/provision"
)

func TestImportFromCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "units.csv")
	content := "name,count\nU1,3\nU2,2\ngarbage row\nU3,0\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	defs, result, err := ImportUnitDefinitions(DefaultImportConfig(path))
	require.NoError(t, err)

	assert.Equal(t, []provision.UnitDefinition{
		{Name: "U1", Count: 3},
		{Name: "U2", Count: 2},
	}, defs)

	assert.Equal(t, 4, result.TotalProcessed)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 2, result.Skipped)
	assert.Len(t, result.Errors, 2)
}

func TestImportFromExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "units.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "name"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "count"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "Chapter One"))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", 12))
	require.NoError(t, f.SetCellValue("Sheet1", "A3", "Chapter Two"))
	require.NoError(t, f.SetCellValue("Sheet1", "B3", 8))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	defs, result, err := ImportUnitDefinitions(DefaultImportConfig(path))
	require.NoError(t, err)

	assert.Equal(t, []provision.UnitDefinition{
		{Name: "Chapter One", Count: 12},
		{Name: "Chapter Two", Count: 8},
	}, defs)
	assert.Equal(t, 2, result.Imported)
	assert.Zero(t, result.Skipped)
}

func TestImportDefaultsToFirstSheetWhateverItsName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "units.xlsx")

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", "Kapitel")
	require.NoError(t, f.SetCellValue("Kapitel", "A1", "name"))
	require.NoError(t, f.SetCellValue("Kapitel", "B1", "count"))
	require.NoError(t, f.SetCellValue("Kapitel", "A2", "U1"))
	require.NoError(t, f.SetCellValue("Kapitel", "B2", 5))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	defs, result, err := ImportUnitDefinitions(DefaultImportConfig(path))
	require.NoError(t, err)

	assert.Equal(t, []provision.UnitDefinition{{Name: "U1", Count: 5}}, defs)
	assert.Equal(t, 1, result.Imported)
}

func TestImportMissingFile(t *testing.T) {
	_, _, err := ImportUnitDefinitions(DefaultImportConfig("/nonexistent/units.xlsx"))
	assert.Error(t, err)
}
