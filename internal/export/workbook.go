// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes the parsed question/answer records of a run to an
// XLSX workbook, one row per record.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/quizdoc/pkg/types"
)

// SheetName is the worksheet holding the records.
const SheetName = "Questions"

var headers = []string{"Image", "Number", "Question", "Marker", "Answer"}

var columnWidths = map[string]float64{"A": 24, "B": 10, "C": 60, "D": 10, "E": 40}

// Workbook builds the records sheet from the results of a run. Failed
// images contribute no rows.
func Workbook(results []types.ImageResult) (*excelize.File, error) {
	f := excelize.NewFile()
	if index, _ := f.GetSheetIndex(SheetName); index == -1 {
		if _, err := f.NewSheet(SheetName); err != nil {
			return nil, fmt.Errorf("creating sheet: %w", err)
		}
	}
	if index, _ := f.GetSheetIndex(SheetName); index >= 0 {
		f.SetActiveSheet(index)
	}
	// Drop the default sheet so the workbook opens on the records.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("removing default sheet: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return nil, fmt.Errorf("writing header: %w", err)
		}
	}

	row := 2
	for _, res := range results {
		if res.Status != types.StatusFormatted {
			continue
		}
		for _, rec := range res.Records {
			values := []string{res.Name, rec.Number, rec.Question, rec.Marker, rec.Answer}
			for col, v := range values {
				if v == "" {
					continue
				}
				cell, _ := excelize.CoordinatesToCellName(col+1, row)
				if err := f.SetCellValue(SheetName, cell, v); err != nil {
					return nil, fmt.Errorf("writing row %d: %w", row, err)
				}
			}
			row++
		}
	}

	for col, w := range columnWidths {
		if err := f.SetColWidth(SheetName, col, col, w); err != nil {
			return nil, fmt.Errorf("setting column width: %w", err)
		}
	}
	return f, nil
}

// WriteWorkbook saves the records of results to path.
func WriteWorkbook(path string, results []types.ImageResult) error {
	f, err := Workbook(results)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return nil
}
