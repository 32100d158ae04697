// Package scalar converts calibration cell values to fixed-width big-endian
// byte strings and back.
//
// # Widths
//
// A field of N bits is stored in ceil(N/8) bytes, never less than one byte:
//
//	bits   bytes   example (value 0x7f)
//	1      1       7f is rejected, only 00/01 fit
//	8      1       7f
//	12     2       00 7f
//	16     2       00 7f
//
// 1-bit fields keep a whole byte each until the fragment merger packs eight
// of them with PackBits.
//
// # Hex digits in numeric cells
//
// The calibration sheet holds hex values. When a value such as 1015 is typed
// into a cell, the spreadsheet stores the number one thousand and fifteen.
// EncodeDigits reads the decimal numeral back as hex digits, so the encoded
// bytes are 10 15. EncodeInt, by contrast, encodes the true integer value and
// is used for bit lengths.
//
// # Errors
//
// All errors wrap one of the calerr sentinels:
//   - calerr.ErrRange when a value does not fit its bit length
//   - calerr.ErrValue for malformed input or misaligned lengths
//   - calerr.ErrType for non-integral numbers
package scalar
