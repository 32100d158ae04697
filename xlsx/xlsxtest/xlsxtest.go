// Package xlsxtest builds calibration workbooks in memory for tests.
package xlsxtest

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/unidoc/unioffice/spreadsheet"
)

// Labels is the label row of the standard calibration sheet.
var Labels = []any{"Key ID", "Item length", "Factory Default (N-Value) Hex", "Calibration Name", "Key Name"}

// Workbook returns the bytes of an XLSX file with a single sheet holding
// rows. Cell values may be nil (no cell value), string, int, float64, bool or
// time.Time (a date-formatted number).
func Workbook(tb testing.TB, rows ...[]any) []byte {
	tb.Helper()

	wb := spreadsheet.New()
	sheet := wb.AddSheet()
	sheet.SetName("Calibration")
	for _, values := range rows {
		row := sheet.AddRow()
		for _, v := range values {
			c := row.AddCell()
			switch v := v.(type) {
			case nil:
			case string:
				c.SetString(v)
			case int:
				c.SetNumber(float64(v))
			case float64:
				c.SetNumber(v)
			case bool:
				c.SetBool(v)
			case time.Time:
				c.SetDate(v)
			default:
				tb.Fatalf("unsupported cell value %T", v)
			}
		}
	}

	var buf bytes.Buffer
	if err := wb.Save(&buf); err != nil {
		tb.Fatalf("failed to save workbook: %v", err)
	}
	return buf.Bytes()
}

// Sheet wraps data rows with the title row, the label row and the footer
// row of the standard layout.
func Sheet(tb testing.TB, data ...[]any) []byte {
	tb.Helper()

	rows := [][]any{{"Calibration data"}, Labels}
	rows = append(rows, data...)
	rows = append(rows, []any{fmt.Sprintf("end of %d rows", len(data))})
	return Workbook(tb, rows...)
}
