package scalar

import (
	"fmt"
	"math"
	"math/big"
	"math/bits"
	"strconv"
	"strings"

	"github.com/aerissecure/calbin/calerr"
)

// NoWidth asks the encoders for the minimal number of bytes instead of a
// fixed bit length.
const NoWidth = -1

// MinBits returns the number of bits needed to represent v. Zero needs one bit.
func MinBits(v uint64) int {
	if v == 0 {
		return 1
	}
	return bits.Len64(v)
}

// ByteWidth returns the number of bytes that hold bitLength bits. A field is
// never narrower than one byte, so 1-bit fields occupy a whole byte until
// they are packed.
func ByteWidth(bitLength int) int {
	n := (bitLength + 7) / 8
	if n == 0 {
		return 1
	}
	return n
}

// EncodeInt encodes v big-endian into ByteWidth(bitLength) bytes.
//
// With bitLength == NoWidth the minimal number of bytes is used.
//
// Example:
//
//	b, _ := scalar.EncodeInt(500, 32) // 00 00 01 f4
func EncodeInt(v uint64, bitLength int) ([]byte, error) {
	return encodeBig(new(big.Int).SetUint64(v), bitLength)
}

// EncodeHex parses s as a base-16 integer of any size and encodes it like
// EncodeInt. Surrounding spaces and a 0x prefix are accepted.
func EncodeHex(s string, bitLength int) ([]byte, error) {
	digits := strings.TrimSpace(s)
	digits = strings.TrimPrefix(strings.TrimPrefix(digits, "0x"), "0X")
	if digits == "" {
		return nil, fmt.Errorf("%w: empty hex literal %q", calerr.ErrValue, s)
	}
	n, ok := new(big.Int).SetString(digits, 16)
	if !ok || n.Sign() < 0 {
		return nil, fmt.Errorf("%w: invalid hex literal %q", calerr.ErrValue, s)
	}
	return encodeBig(n, bitLength)
}

// EncodeDigits encodes a spreadsheet number whose decimal digits spell a hex
// value. Spreadsheets store a typed-in 1015 as the number one thousand and
// fifteen; the calibration sheet means 0x1015.
//
// Example:
//
//	b, _ := scalar.EncodeDigits(1015, 32) // 00 00 10 15
func EncodeDigits(v float64, bitLength int) ([]byte, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return nil, fmt.Errorf("%w: %v is not an integer", calerr.ErrType, v)
	}
	if v < 0 {
		return nil, fmt.Errorf("%w: negative value %v", calerr.ErrValue, v)
	}
	return EncodeHex(strconv.FormatFloat(v, 'f', 0, 64), bitLength)
}

func encodeBig(n *big.Int, bitLength int) ([]byte, error) {
	need := n.BitLen()
	if need == 0 {
		need = 1
	}
	if bitLength == NoWidth {
		bitLength = need
	}
	if bitLength < 0 {
		return nil, fmt.Errorf("%w: negative bit length %d", calerr.ErrValue, bitLength)
	}
	if bitLength < need {
		return nil, fmt.Errorf("%w: 0x%s needs %d bits, field has %d",
			calerr.ErrRange, n.Text(16), need, bitLength)
	}
	return n.FillBytes(make([]byte, ByteWidth(bitLength))), nil
}

// DecodeInt interprets b as a big-endian unsigned integer. Only the last
// eight bytes are significant.
func DecodeInt(b []byte) uint64 {
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v
}

// PadText right-pads text with zero bytes to bitLength/8 bytes.
//
// Example:
//
//	b, _ := scalar.PadText([]byte("abc"), 32) // 'a' 'b' 'c' 00
func PadText(text []byte, bitLength int) ([]byte, error) {
	if bitLength < 0 {
		return nil, fmt.Errorf("%w: negative bit length %d", calerr.ErrValue, bitLength)
	}
	if len(text)*8 > bitLength {
		return nil, fmt.Errorf("%w: %d-byte text exceeds %d bits", calerr.ErrRange, len(text), bitLength)
	}
	diff := bitLength - len(text)*8
	if diff%8 != 0 {
		return nil, fmt.Errorf("%w: bit length %d is not a multiple of 8", calerr.ErrValue, bitLength)
	}
	out := make([]byte, bitLength/8)
	copy(out, text)
	return out, nil
}

// TwosComplement returns 2^bitCount - v. No masking is applied, so callers
// reduce v modulo 2^bitCount first. bitCount must be below 64.
func TwosComplement(v uint64, bitCount uint) uint64 {
	return 1<<bitCount - v
}

// PackBits packs single-bit value bytes MSB-first, eight per output byte.
//
// Example:
//
//	b, _ := scalar.PackBits([][]byte{{1}, {0}, {1}, {1}, {0}, {0}, {0}, {1}}) // b1
func PackBits(pool [][]byte) ([]byte, error) {
	if len(pool)%8 != 0 {
		return nil, fmt.Errorf("%w: %d single-bit items is not a multiple of 8", calerr.ErrValue, len(pool))
	}
	out := make([]byte, 0, len(pool)/8)
	for i := 0; i < len(pool); i += 8 {
		var b byte
		for _, bit := range pool[i : i+8] {
			if len(bit) != 1 || bit[0] > 1 {
				return nil, fmt.Errorf("%w: % x is not a single bit", calerr.ErrValue, bit)
			}
			b = b<<1 | bit[0]
		}
		out = append(out, b)
	}
	return out, nil
}
