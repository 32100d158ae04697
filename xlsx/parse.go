package xlsx

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/unidoc/unioffice/schema/soo/sml"
	"github.com/unidoc/unioffice/spreadsheet"
	"github.com/unidoc/unioffice/spreadsheet/reference"

	"github.com/aerissecure/calbin/cell"
)

// Open reads the calibration sheet of the XLSX file at path.
func Open(path string, cfg Config) (Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return Sheet{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return Sheet{}, fmt.Errorf("failed to stat file: %w", err)
	}
	return ReadSheet(f, info.Size(), cfg)
}

// ReadSheet reads an XLSX from r/size and returns the rows of its first
// worksheet.
func ReadSheet(r io.ReaderAt, size int64, cfg Config) (Sheet, error) {
	if cfg.LabelRow < 1 {
		return Sheet{}, fmt.Errorf("invalid label row %d", cfg.LabelRow)
	}
	if cfg.SkipTrailingRows < 0 {
		return Sheet{}, fmt.Errorf("invalid trailing row count %d", cfg.SkipTrailingRows)
	}

	wb, err := spreadsheet.Read(r, size)
	if err != nil {
		return Sheet{}, err
	}
	sheets := wb.Sheets()
	if len(sheets) == 0 {
		return Sheet{}, fmt.Errorf("workbook has no sheets")
	}
	return parseSheet(wb, sheets[0], cfg)
}

func parseSheet(wb *spreadsheet.Workbook, sheet spreadsheet.Sheet, cfg Config) (Sheet, error) {
	epoch := workbookEpoch(wb)

	// ---- index cells by 0-based row and column ----
	grid := make(map[int]map[int]cell.Cell)
	rowCount := 0
	for _, row := range sheet.Rows() {
		rowIdx := int(row.RowNumber()) - 1
		if rowIdx+1 > rowCount {
			rowCount = rowIdx + 1
		}
		cells := make(map[int]cell.Cell)
		for _, c := range row.Cells() {
			colName, err := c.Column()
			if err != nil {
				continue
			}
			cells[int(reference.ColumnToIndex(colName))] = typedCell(c, wb.StyleSheet, epoch)
		}
		grid[rowIdx] = cells
	}
	at := func(row, col int) cell.Cell {
		return grid[row][col]
	}

	// ---- resolve columns from the label row ----
	labelIdx := cfg.LabelRow - 1
	find := func(label string) (int, error) {
		found := -1
		for col, c := range grid[labelIdx] {
			if c.Kind != cell.Text || strings.TrimSpace(c.Text) != label {
				continue
			}
			// leftmost match wins
			if found < 0 || col < found {
				found = col
			}
		}
		if found < 0 {
			return 0, fmt.Errorf("column %q not found in row %d", label, cfg.LabelRow)
		}
		return found, nil
	}
	var (
		cols Columns
		err  error
	)
	for _, role := range []struct {
		label string
		dst   *int
	}{
		{cfg.Labels.Key, &cols.Key},
		{cfg.Labels.Value, &cols.Value},
		{cfg.Labels.Length, &cols.Length},
		{cfg.Labels.Calibration, &cols.Calibration},
		{cfg.Labels.Name, &cols.Name},
	} {
		if *role.dst, err = find(role.label); err != nil {
			return Sheet{}, err
		}
	}

	// ---- build rows ----
	s := Sheet{Name: sheet.Name(), Columns: cols}
	for rowIdx := labelIdx + 1; rowIdx < rowCount-cfg.SkipTrailingRows; rowIdx++ {
		key := at(rowIdx, cols.Key)
		if key.Kind == cell.Empty {
			continue
		}
		s.Rows = append(s.Rows, Row{
			Number:      rowIdx + 1,
			Key:         key,
			Length:      at(rowIdx, cols.Length),
			Value:       at(rowIdx, cols.Value),
			Calibration: at(rowIdx, cols.Calibration),
			Name:        at(rowIdx, cols.Name),
		})
	}
	return s, nil
}

// typedCell maps an OOXML cell onto a typed cell. Cells without a value,
// including empty strings, are Empty. Numbers stored under a date or time
// number format are Date cells.
func typedCell(c spreadsheet.Cell, styles spreadsheet.StyleSheet, epoch time.Time) cell.Cell {
	x := c.X()
	if x.V == nil && x.Is == nil {
		return cell.Cell{}
	}
	raw := ""
	if x.V != nil {
		raw = *x.V
	}

	switch x.TAttr {
	case sml.ST_CellTypeS, sml.ST_CellTypeStr, sml.ST_CellTypeInlineStr:
		s := c.GetString()
		if s == "" {
			return cell.Cell{}
		}
		return cell.NewText(s)
	case sml.ST_CellTypeB:
		return cell.NewBool(raw == "1" || strings.EqualFold(raw, "true"))
	case sml.ST_CellTypeE:
		return cell.NewError(raw)
	default:
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return cell.Cell{}
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return cell.NewError(raw)
		}
		if x.SAttr != nil && isDateFormat(styles, *x.SAttr) {
			return cell.NewDate(serialTime(epoch, v).Format(time.RFC3339))
		}
		return cell.NewNumber(v)
	}
}
