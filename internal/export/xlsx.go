package export

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/xuri/excelize/v2"
)

// XLSXWriter implements SheetWriter with a local Excel workbook. An existing
// workbook is updated in place so its HISTORY sheet keeps growing.
type XLSXWriter struct {
	path string
}

// NewXLSXWriter creates a writer for the workbook at path.
func NewXLSXWriter(path string) *XLSXWriter {
	return &XLSXWriter{path: path}
}

// Write replaces the NAMESPACES sheet and appends one HISTORY row.
func (w *XLSXWriter) Write(ctx context.Context, report Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := w.open()
	if err != nil {
		return err
	}
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9EAD3"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	if err := writeNamespaces(f, report.Namespaces, headerStyle); err != nil {
		return err
	}
	if err := appendHistory(f, report.History, headerStyle); err != nil {
		return err
	}

	// A new workbook starts with Sheet1, which stays empty.
	if idx, _ := f.GetSheetIndex("Sheet1"); idx >= 0 {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return fmt.Errorf("removing default sheet: %w", err)
		}
	}
	if idx, err := f.GetSheetIndex(NamespacesSheet); err == nil && idx >= 0 {
		f.SetActiveSheet(idx)
	}

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", w.path, err)
	}
	return nil
}

func (w *XLSXWriter) open() (*excelize.File, error) {
	if _, err := os.Stat(w.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return excelize.NewFile(), nil
		}
		return nil, fmt.Errorf("checking workbook %s: %w", w.path, err)
	}
	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", w.path, err)
	}
	return f, nil
}

func writeNamespaces(f *excelize.File, rows [][]any, headerStyle int) error {
	if idx, _ := f.GetSheetIndex(NamespacesSheet); idx >= 0 {
		if err := f.DeleteSheet(NamespacesSheet); err != nil {
			return fmt.Errorf("clearing %s: %w", NamespacesSheet, err)
		}
	}
	if _, err := f.NewSheet(NamespacesSheet); err != nil {
		return fmt.Errorf("creating %s: %w", NamespacesSheet, err)
	}

	for i, row := range rows {
		if err := setRow(f, NamespacesSheet, i+1, row); err != nil {
			return err
		}
	}
	return styleHeader(f, NamespacesSheet, headerStyle)
}

func appendHistory(f *excelize.File, row []any, headerStyle int) error {
	if idx, _ := f.GetSheetIndex(HistorySheet); idx < 0 {
		if _, err := f.NewSheet(HistorySheet); err != nil {
			return fmt.Errorf("creating %s: %w", HistorySheet, err)
		}
	}

	existing, err := f.GetRows(HistorySheet)
	if err != nil {
		return fmt.Errorf("reading %s: %w", HistorySheet, err)
	}
	next := len(existing) + 1
	if len(existing) == 0 {
		if err := setRow(f, HistorySheet, 1, historyHeaders); err != nil {
			return err
		}
		if err := styleHeader(f, HistorySheet, headerStyle); err != nil {
			return err
		}
		next = 2
	}
	return setRow(f, HistorySheet, next, row)
}

func setRow(f *excelize.File, sheet string, rowNum int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing %s row %d: %w", sheet, rowNum, err)
	}
	return nil
}

func styleHeader(f *excelize.File, sheet string, style int) error {
	if err := f.SetRowStyle(sheet, 1, 1, style); err != nil {
		return fmt.Errorf("styling %s header: %w", sheet, err)
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
