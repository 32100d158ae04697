// Package calerr defines the error categories shared by the calibration
// encoding packages.
//
// Every failure returned by the codec, fragment and header packages wraps
// exactly one of the sentinels below, so callers can classify an error with
// errors.Is regardless of how much context was added on the way up.
package calerr

import (
	"errors"
	"fmt"
)

var (
	// ErrType reports a cell whose kind does not match its column role.
	ErrType = errors.New("type mismatch")

	// ErrValue reports a numeric or bit-length constraint violation.
	ErrValue = errors.New("invalid value")

	// ErrRange reports a value that does not fit its declared bit width.
	ErrRange = errors.New("value out of range")

	// ErrStructure reports a broken merge, bit-pool or union invariant.
	ErrStructure = errors.New("structure violation")
)

// RowError attaches spreadsheet position to an error.
type RowError struct {
	// Row is the 1-based spreadsheet row number
	Row int

	// Err is the underlying error
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
