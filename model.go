package calbin

import "fmt"

// Result holds both outputs of one calibration sheet.
type Result struct {
	Binary []byte // finalized stream, checksum first
	Header string // C struct and union declarations

	Rows      int // data rows read
	Fragments int // fragments after merging
	Merged    int // rows covered by merged key spans
}

func (r Result) String() string {
	return fmt.Sprintf("Binary: %d bytes, Header: %d bytes, Rows: %d, Fragments: %d, Merged: %d",
		len(r.Binary), len(r.Header), r.Rows, r.Fragments, r.Merged)
}
