package sheet

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/suggestsheet-go/pkg/suggestsheet/models"
	"github.com/xuri/excelize/v2"
)

func TestKeywords(t *testing.T) {
	// Create a temporary Excel file for testing
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	f.SetCellValue(sheetName, "A1", "Keyword")
	f.SetCellValue(sheetName, "B1", "Longest")
	f.SetCellValue(sheetName, "A2", "coffee")
	f.SetCellValue(sheetName, "B3", "stale output")
	f.SetCellValue(sheetName, "A4", "  tea  ")
	f.SetCellValue(sheetName, "A5", 42)

	tmpFile := filepath.Join(t.TempDir(), "test.xlsx")
	require.NoError(t, f.SaveAs(tmpFile))

	f2, err := excelize.OpenFile(tmpFile)
	require.NoError(t, err)
	defer f2.Close()

	rows, err := Keywords(f2, sheetName)
	require.NoError(t, err)

	assert.Equal(t, []models.KeywordRow{
		{R: 2, Keyword: "coffee"},
		{R: 3, Keyword: ""},
		{R: 4, Keyword: "tea"},
		{R: 5, Keyword: "42"},
	}, rows)
	assert.True(t, rows[1].Empty())
}

func TestKeywordsHeaderOnly(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue("Sheet1", "A1", "Keyword")

	rows, err := Keywords(f, "Sheet1")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestKeywordsWhitespaceOnly(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue("Sheet1", "A1", "Keyword")
	f.SetCellValue("Sheet1", "A2", "   ")
	f.SetCellValue("Sheet1", "A3", "\tlatte\n")

	rows, err := Keywords(f, "Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].Empty(), "whitespace-only cell is skipped")
	assert.Equal(t, "latte", rows[1].Keyword)
}

func TestKeywordsMissingSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	_, err := Keywords(f, "Nope")
	assert.Error(t, err)
}

func TestWriteExtremes(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	require.NoError(t, WriteExtremes(f, sheetName, 2, "coffee near me", "coffee shop", true))

	longest, err := f.GetCellValue(sheetName, "B2")
	require.NoError(t, err)
	shortest, err := f.GetCellValue(sheetName, "C2")
	require.NoError(t, err)
	assert.Equal(t, "coffee near me", longest)
	assert.Equal(t, "coffee shop", shortest)

	// Absent extremes clear previous output
	require.NoError(t, WriteExtremes(f, sheetName, 2, "", "", false))
	longest, _ = f.GetCellValue(sheetName, "B2")
	shortest, _ = f.GetCellValue(sheetName, "C2")
	assert.Empty(t, longest)
	assert.Empty(t, shortest)
}

func TestWriteExtremesInvalidRow(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	assert.Error(t, WriteExtremes(f, "Sheet1", 0, "a", "a", true))
}
