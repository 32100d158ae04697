// Package calbin converts calibration spreadsheets into a checksummed binary
// image and the C declarations that describe its layout.
package calbin

import (
	"fmt"
	"io"

	"github.com/aerissecure/calbin/calerr"
	"github.com/aerissecure/calbin/fragment"
	"github.com/aerissecure/calbin/header"
	"github.com/aerissecure/calbin/xlsx"
)

// Convert encodes the rows of a calibration sheet.
//
// The binary and the header are built from the same rows; a failure in
// either aborts the sheet. Row errors are *calerr.RowError values.
func Convert(rows []xlsx.Row) (Result, error) {
	res := Result{Rows: len(rows)}

	seq := make([]fragment.Fragment, 0, len(rows))
	tuples := make([]header.Tuple, 0, len(rows))
	for _, row := range rows {
		f, err := fragment.Build(row.Key, row.Length, row.Value)
		if err != nil {
			return Result{}, &calerr.RowError{Row: row.Number, Err: err}
		}
		seq = append(seq, f)

		t, err := header.BuildTuple(row.Calibration, row.Length, row.Name)
		if err != nil {
			return Result{}, &calerr.RowError{Row: row.Number, Err: err}
		}
		tuples = append(tuples, t)
	}

	merged, count, err := fragment.Merge(seq)
	if err != nil {
		return Result{}, fmt.Errorf("failed to merge fragments: %w", err)
	}
	final, err := fragment.Finalize(merged)
	if err != nil {
		return Result{}, fmt.Errorf("failed to finalize: %w", err)
	}
	res.Binary = fragment.Encode(final)
	res.Fragments = len(final)
	res.Merged = count

	if res.Header, err = header.Render(tuples); err != nil {
		return Result{}, fmt.Errorf("failed to render header: %w", err)
	}
	return res, nil
}

// ConvertXlsx reads the calibration sheet from r/size and converts it.
func ConvertXlsx(r io.ReaderAt, size int64, cfg xlsx.Config) (Result, error) {
	sheet, err := xlsx.ReadSheet(r, size, cfg)
	if err != nil {
		return Result{}, err
	}
	return Convert(sheet.Rows)
}

// XlsxToBinary is a convenience wrapper returning only the binary image of a
// sheet in the standard layout.
func XlsxToBinary(r io.ReaderAt, size int64) ([]byte, error) {
	res, err := ConvertXlsx(r, size, xlsx.NewConfig())
	if err != nil {
		return nil, err
	}
	return res.Binary, nil
}

// XlsxToHeader is a convenience wrapper returning only the C declarations of
// a sheet in the standard layout.
func XlsxToHeader(r io.ReaderAt, size int64) (string, error) {
	res, err := ConvertXlsx(r, size, xlsx.NewConfig())
	if err != nil {
		return "", err
	}
	return res.Header, nil
}
