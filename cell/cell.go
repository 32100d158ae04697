// Package cell models the typed spreadsheet cells consumed by the encoder.
package cell

import (
	"fmt"
	"strconv"

	"github.com/aerissecure/calbin/calerr"
)

// Kind is the type tag of a cell.
type Kind int

// Cell kinds, numbered like the classic spreadsheet cell type codes.
const (
	Empty Kind = iota
	Text
	Number
	Date
	Boolean
	Error
	Blank
)

var kindNames = [...]string{
	Empty:   "EMPTY",
	Text:    "TEXT",
	Number:  "NUMBER",
	Date:    "DATE",
	Boolean: "BOOLEAN",
	Error:   "ERROR",
	Blank:   "BLANK",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("KIND(%d)", int(k))
	}
	return kindNames[k]
}

// Column roles as reported in type errors.
const (
	RoleKey         = "Key ID"
	RoleLength      = "Length"
	RoleValue       = "Value"
	RoleCalibration = "Calibration Name"
	RoleName        = "Key Name"
)

// Cell is an immutable typed cell value.
type Cell struct {
	Kind   Kind
	Text   string  // Text, Error and Date payload
	Number float64 // Number payload
	Bool   bool    // Boolean payload
}

// NewText returns a Text cell.
func NewText(s string) Cell { return Cell{Kind: Text, Text: s} }

// NewNumber returns a Number cell.
func NewNumber(v float64) Cell { return Cell{Kind: Number, Number: v} }

// NewBool returns a Boolean cell.
func NewBool(b bool) Cell { return Cell{Kind: Boolean, Bool: b} }

// NewError returns an Error cell carrying the spreadsheet error code, e.g. "#N/A".
func NewError(code string) Cell { return Cell{Kind: Error, Text: code} }

// NewDate returns a Date cell carrying the ISO 8601 text of the date.
func NewDate(iso string) Cell { return Cell{Kind: Date, Text: iso} }

func (c Cell) String() string {
	switch c.Kind {
	case Text, Error, Date:
		return fmt.Sprintf("%s(%q)", c.Kind, c.Text)
	case Number:
		return fmt.Sprintf("%s(%s)", c.Kind, strconv.FormatFloat(c.Number, 'g', -1, 64))
	case Boolean:
		return fmt.Sprintf("%s(%t)", c.Kind, c.Bool)
	default:
		return c.Kind.String()
	}
}

// TypeError indicates that a cell's kind does not match its role.
type TypeError struct {
	Role string
	Kind Kind
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("'%s' type should not be %s", e.Role, e.Kind)
}

// Unwrap lets errors.Is match calerr.ErrType.
func (e *TypeError) Unwrap() error {
	return calerr.ErrType
}

// Expect returns a *TypeError unless c has one of the wanted kinds.
func Expect(c Cell, role string, want ...Kind) error {
	for _, k := range want {
		if c.Kind == k {
			return nil
		}
	}
	return &TypeError{Role: role, Kind: c.Kind}
}
