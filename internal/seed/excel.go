package seed

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Spreadsheet seed layout: column A holds the term, column B the
// definition, and an optional column C a group number that applies to the
// following rows until the next one. The first row is a header and skipped.
const excelSheet = "Sheet1"

// ParseExcel reads an .xlsx seed source into the same ParseResult shape the
// text parser produces. Rows with a missing term or definition are skipped
// with a warning.
func ParseExcel(path string) (*ParseResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(excelSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", excelSheet, err)
	}

	result := &ParseResult{}
	groupID := 1
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		rowNo := i + 1

		term := cell(row, 0)
		definition := cell(row, 1)
		if term == "" || definition == "" {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("row %d: missing term or definition", rowNo))
			continue
		}

		if g := cell(row, 2); g != "" {
			id, err := strconv.Atoi(g)
			if err != nil {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("row %d: invalid group number %q", rowNo, g))
				continue
			}
			groupID = id
		}

		result.Entries = append(result.Entries, Entry{
			Term:       term,
			Definition: definition,
			GroupID:    groupID,
		})
	}
	return result, nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
