package xlsx

import (
	"fmt"

	"github.com/aerissecure/calbin/cell"
)

// Intermediate representation of a calibration sheet.

// Labels are the header texts that identify each column role.
type Labels struct {
	Key         string `toml:"key"`         // e.g. "Key ID"
	Value       string `toml:"value"`       // e.g. "Factory Default (N-Value) Hex"
	Length      string `toml:"length"`      // e.g. "Item length"
	Calibration string `toml:"calibration"` // e.g. "Calibration Name"
	Name        string `toml:"name"`        // e.g. "Key Name"
}

func (l Labels) String() string {
	return fmt.Sprintf("Key: %s, Value: %s, Length: %s, Calibration: %s, Name: %s", l.Key, l.Value, l.Length, l.Calibration, l.Name)
}

// Config controls how a worksheet is read.
type Config struct {
	Labels Labels `toml:"columns"`

	// LabelRow is the 1-based row holding the column labels. Data starts on
	// the row after it.
	LabelRow int `toml:"label-row"`

	// SkipTrailingRows drops this many rows from the end of the sheet.
	SkipTrailingRows int `toml:"skip-trailing-rows"`
}

// NewConfig returns the layout of the standard calibration sheet.
func NewConfig() Config {
	return Config{
		Labels: Labels{
			Key:         "Key ID",
			Value:       "Factory Default (N-Value) Hex",
			Length:      "Item length",
			Calibration: "Calibration Name",
			Name:        "Key Name",
		},
		LabelRow:         2,
		SkipTrailingRows: 1,
	}
}

// Columns are the resolved 0-based column indexes of each role.
type Columns struct {
	Key         int
	Value       int
	Length      int
	Calibration int
	Name        int
}

func (c Columns) String() string {
	return fmt.Sprintf("Key: %d, Value: %d, Length: %d, Calibration: %d, Name: %d", c.Key, c.Value, c.Length, c.Calibration, c.Name)
}

// Row is one data row with its cells picked by role.
type Row struct {
	Number      int // 1-based sheet row
	Key         cell.Cell
	Length      cell.Cell
	Value       cell.Cell
	Calibration cell.Cell
	Name        cell.Cell
}

func (r Row) String() string {
	return fmt.Sprintf("Row: %d, Key: %s, Length: %s, Value: %s, Calibration: %s, Name: %s", r.Number, r.Key, r.Length, r.Value, r.Calibration, r.Name)
}

// Sheet is the calibration view of a worksheet.
type Sheet struct {
	Name    string
	Columns Columns
	Rows    []Row // in order, rows with an empty Key ID are left out
}

func (s Sheet) String() string {
	return fmt.Sprintf("Name: %s, Columns: %s, Rows: %d", s.Name, s.Columns, len(s.Rows))
}
