// Package sheet reads keyword rows from, and writes suggestion results to,
// the weekday worksheet of a workbook.
package sheet

import (
	"strings"

	"github.com/ukaji3/suggestsheet-go/pkg/suggestsheet/models"
	"github.com/xuri/excelize/v2"
)

const (
	// FirstRow is the first keyword row; row 1 is the header.
	FirstRow = 2

	keywordCol  = 1
	longestCol  = 2
	shortestCol = 3
)

// Keywords returns one KeywordRow per row from FirstRow through the last
// populated row of the sheet. Keywords are trimmed of surrounding
// whitespace, so a cell holding only whitespace yields an empty Keyword and
// is skipped like a blank cell. Rows without a keyword are included so
// callers can account for them.
func Keywords(f *excelize.File, sheetName string) ([]models.KeywordRow, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	var result []models.KeywordRow
	for rowIdx := FirstRow - 1; rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		keyword := ""
		if len(row) >= keywordCol {
			keyword = strings.TrimSpace(row[keywordCol-1])
		}
		result = append(result, models.KeywordRow{
			R:       rowIdx + 1, // 1-based row index
			Keyword: keyword,
		})
	}

	return result, nil
}

// WriteExtremes writes the longest and shortest suggestion into columns 2
// and 3 of the given row. When ok is false both cells are cleared.
func WriteExtremes(f *excelize.File, sheetName string, row int, longest, shortest string, ok bool) error {
	longestCell, err := excelize.CoordinatesToCellName(longestCol, row)
	if err != nil {
		return err
	}
	shortestCell, err := excelize.CoordinatesToCellName(shortestCol, row)
	if err != nil {
		return err
	}

	if !ok {
		if err := f.SetCellValue(sheetName, longestCell, nil); err != nil {
			return err
		}
		return f.SetCellValue(sheetName, shortestCell, nil)
	}

	if err := f.SetCellStr(sheetName, longestCell, longest); err != nil {
		return err
	}
	return f.SetCellStr(sheetName, shortestCell, shortest)
}
