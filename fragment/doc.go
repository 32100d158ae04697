// Package fragment builds, merges and finalizes the binary calibration stream.
//
// # Fragment Format
//
// Each spreadsheet row becomes one fragment:
//
//	[Key(2)][Length(2)][Value(ceil(Length/8))]
//
// Key and Length are big-endian. Length is in bits; 1-bit values occupy a
// whole byte until they are merged.
//
// # Merging
//
// Rows that share a key ID are collapsed into one fragment. Their lengths
// are summed and their values concatenated, with each run of 1-bit values
// packed MSB-first into bytes:
//
//	00 01 | 00 10 | 00 7f       16 bits
//	00 01 | 00 01 | 01          1 bit   \
//	00 01 | 00 01 | 00          1 bit    |  8 x 1 bit -> aa
//	...                                  |
//	00 01 | 00 01 | 00          1 bit   /
//	00 01 | 00 10 | 00 7f       16 bits
//
// merges to
//
//	00 01 | 00 28 | 00 7f aa 00 7f
//
// # Stream Layout
//
// The first fragment is the header record. After finalizing, its key and
// length are gone and the first two bytes of its value carry the checksum:
//
//	[Checksum(2)][rest of header value][Key][Length][Value]...
//
// Usage:
//
//	merged, _, err := fragment.Merge(seq)
//	if err != nil {
//	    return err
//	}
//	final, err := fragment.Finalize(merged)
//	if err != nil {
//	    return err
//	}
//	blob := fragment.Encode(final)
package fragment
