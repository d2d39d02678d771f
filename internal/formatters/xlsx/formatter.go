// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package xlsx writes extraction records to an Excel workbook.
package xlsx

import (
	"fmt"

	"judgment-extract/internal/formatters"
	"judgment-extract/internal/record"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding one row per judgment.
const SheetName = "Judgments"

// maxCellRunes is the Excel cell limit.
const maxCellRunes = 32767

// column widths by field; unlisted fields use defaultWidth
var columnWidths = map[string]float64{
	record.FieldFileName:       28,
	record.FieldCaseNumber:     18,
	record.FieldTrialDate:      16,
	record.FieldCourtName:      36,
	record.FieldPlaintiff:      36,
	record.FieldDefendant:      36,
	record.FieldJudge:          28,
	record.FieldLawyer:         48,
	record.FieldJudgmentResult: 60,
	record.FieldClaimAmount:    48,
	record.FieldJudgmentAmount: 48,
	record.FieldCorrection:     48,
	record.FieldFilePath:       60,
}

const defaultWidth = 16

// Formatter implements Excel output formatting
type Formatter struct{}

// NewFormatter creates a new xlsx formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "xlsx"
}

func (f *Formatter) Description() string {
	return "Excel workbook with one row per judgment"
}

func (f *Formatter) FileExtension() string {
	return ".xlsx"
}

// Format builds a workbook whose first row holds the column names.
func (f *Formatter) Format(records []*record.Record, options formatters.FormatterOptions) ([]byte, error) {
	columns, err := formatters.Columns(options)
	if err != nil {
		return nil, err
	}

	wb := excelize.NewFile()
	defer wb.Close()

	if err := wb.SetSheetName(wb.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}
	activeIndex, _ := wb.GetSheetIndex(SheetName)
	wb.SetActiveSheet(activeIndex)

	for i, name := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := wb.SetCellValue(SheetName, cell, name); err != nil {
			return nil, fmt.Errorf("write header %s: %w", name, err)
		}
	}

	for r, row := range formatters.Rows(records, columns) {
		for c, value := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := wb.SetCellValue(SheetName, cell, clip(value)); err != nil {
				return nil, fmt.Errorf("write %s: %w", cell, err)
			}
		}
	}

	for i, name := range columns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		width, ok := columnWidths[name]
		if !ok {
			width = defaultWidth
		}
		_ = wb.SetColWidth(SheetName, col, col, width)
	}

	buf, err := wb.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func clip(s string) string {
	runes := []rune(s)
	if len(runes) <= maxCellRunes {
		return s
	}
	return string(runes[:maxCellRunes])
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
