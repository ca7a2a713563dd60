// Package export writes employee records to spreadsheet workbooks.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/spec-kit/employee-directory/internal/domain"
)

// ContentType is the MIME type of the produced workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Translator supplies the header labels.
type Translator interface {
	T(id string, data ...map[string]any) string
	Field(f domain.Field) string
}

// WriteXLSX writes one sheet holding a header row and one row per employee,
// in the given order.
func WriteXLSX(w io.Writer, tr Translator, list []domain.Employee) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := tr.T("Employee.Export.Sheet")
	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), sheet); err != nil {
		return fmt.Errorf("export: name sheet: %w", err)
	}

	header := []any{tr.T("Employee.Export.IDColumn")}
	for _, field := range domain.Fields() {
		header = append(header, tr.Field(field))
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("export: header: %w", err)
	}

	for i, e := range list {
		row := []any{e.ID}
		for _, field := range domain.Fields() {
			row = append(row, e.Value(field))
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("export: row %d: %w", e.ID, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("export: write: %w", err)
	}
	return nil
}

// Select picks the employees to export: the selected ids when any are
// selected, otherwise the whole list.
func Select(list []domain.Employee, selected []int) []domain.Employee {
	if len(selected) == 0 {
		return list
	}
	want := make(map[int]struct{}, len(selected))
	for _, id := range selected {
		want[id] = struct{}{}
	}
	out := make([]domain.Employee, 0, len(selected))
	for _, e := range list {
		if _, ok := want[e.ID]; ok {
			out = append(out, e)
		}
	}
	return out
}
