package fragment

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/aerissecure/calbin/calerr"
	"github.com/aerissecure/calbin/cell"
	"github.com/aerissecure/calbin/scalar"
)

const (
	// KeyBits is the width of the key ID field
	KeyBits = 16

	// LengthBits is the width of the length field
	LengthBits = 16

	// ChecksumSize is the number of bytes the checksum occupies at the
	// start of the finalized stream
	ChecksumSize = 2
)

// Fragment is one key/length/value triple of the output stream.
type Fragment struct {
	// Key is the 2-byte key ID
	Key []byte

	// Length is the 2-byte bit length of Value
	Length []byte

	// Value holds ceil(length/8) bytes
	Value []byte
}

// Bits returns the decoded bit length of the fragment.
func (f Fragment) Bits() int {
	return int(scalar.DecodeInt(f.Length))
}

// Bytes returns Key, Length and Value concatenated.
func (f Fragment) Bytes() []byte {
	out := make([]byte, 0, len(f.Key)+len(f.Length)+len(f.Value))
	out = append(out, f.Key...)
	out = append(out, f.Length...)
	return append(out, f.Value...)
}

func (f Fragment) String() string {
	return fmt.Sprintf("Key: % x, Length: % x, Value: % x", f.Key, f.Length, f.Value)
}

// Encode concatenates the bytes of every fragment in order.
func Encode(seq []Fragment) []byte {
	var buf bytes.Buffer
	for _, f := range seq {
		buf.Write(f.Key)
		buf.Write(f.Length)
		buf.Write(f.Value)
	}
	return buf.Bytes()
}

// Build converts the Key ID, length and value cells of one row into a
// fragment.
//
// Numeric key and value cells are read as hex digits (see
// scalar.EncodeDigits), text cells are parsed as hex, and a text value
// starting with a double quote is stored as the raw bytes between the
// quotes, zero-padded to the field width.
func Build(key, length, value cell.Cell) (Fragment, error) {
	var (
		f   Fragment
		err error
	)

	switch key.Kind {
	case cell.Number:
		f.Key, err = scalar.EncodeDigits(key.Number, KeyBits)
	case cell.Text:
		f.Key, err = scalar.EncodeHex(key.Text, KeyBits)
	default:
		return Fragment{}, &cell.TypeError{Role: cell.RoleKey, Kind: key.Kind}
	}
	if err != nil {
		return Fragment{}, fmt.Errorf("%s: %w", cell.RoleKey, err)
	}

	if err := cell.Expect(length, cell.RoleLength, cell.Number); err != nil {
		return Fragment{}, err
	}
	bitLength, err := bitCount(length.Number)
	if err != nil {
		return Fragment{}, fmt.Errorf("%s: %w", cell.RoleLength, err)
	}
	if f.Length, err = scalar.EncodeInt(uint64(bitLength), LengthBits); err != nil {
		return Fragment{}, fmt.Errorf("%s: %w", cell.RoleLength, err)
	}

	switch value.Kind {
	case cell.Number:
		f.Value, err = scalar.EncodeDigits(value.Number, bitLength)
	case cell.Text:
		if strings.HasPrefix(value.Text, `"`) {
			f.Value, err = scalar.PadText(unquote(value.Text), bitLength)
		} else {
			f.Value, err = scalar.EncodeHex(value.Text, bitLength)
		}
	default:
		return Fragment{}, &cell.TypeError{Role: cell.RoleValue, Kind: value.Kind}
	}
	if err != nil {
		return Fragment{}, fmt.Errorf("%s: %w", cell.RoleValue, err)
	}

	return f, nil
}

// bitCount validates a numeric length cell.
func bitCount(v float64) (int, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return 0, fmt.Errorf("%w: bit length %v is not an integer", calerr.ErrType, v)
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: negative bit length %v", calerr.ErrValue, v)
	}
	if v > math.MaxUint16 {
		return 0, fmt.Errorf("%w: bit length %v exceeds %d bits", calerr.ErrRange, v, LengthBits)
	}
	return int(v), nil
}

// unquote drops the opening quote and the last character of a quoted
// literal. A lone quote yields no bytes.
func unquote(s string) []byte {
	if len(s) < 2 {
		return nil
	}
	return []byte(s[1 : len(s)-1])
}
