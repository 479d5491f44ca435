package output

import (
	"encoding/json"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/schedflow/schedflow/pkg/tabular"
)

// XLSXFormatter renders an Excel workbook with one sheet.
type XLSXFormatter struct {
	Sheet string
}

// Format implements the Formatter interface for Excel output.
func (f *XLSXFormatter) Format(w io.Writer, view *tabular.Table) error {
	sheet := f.Sheet
	if sheet == "" {
		sheet = "Data"
	}

	file := excelize.NewFile()
	defer func() { _ = file.Close() }()

	if err := file.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	for col, name := range view.Columns() {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := file.SetCellValue(sheet, cell, name); err != nil {
			return err
		}
	}

	for i, row := range view.Rows() {
		for col, name := range view.Columns() {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := file.SetCellValue(sheet, cell, cellValue(row[name])); err != nil {
				return err
			}
		}
	}

	return file.Write(w)
}

// cellValue maps a view value to a type excelize stores natively.
// Nested structures flatten to their display string.
func cellValue(v any) any {
	switch value := v.(type) {
	case nil:
		return ""
	case decimal.Decimal:
		f, _ := value.Float64()
		return f
	case time.Time:
		return value
	case json.Number:
		if i, err := value.Int64(); err == nil {
			return i
		}
		if f, err := value.Float64(); err == nil {
			return f
		}
		return value.String()
	case bool, string, int64, float64:
		return value
	default:
		return tabular.Display(v)
	}
}
