package fragment

import (
	"encoding/binary"
	"fmt"

	"github.com/aerissecure/calbin/calerr"
	"github.com/aerissecure/calbin/scalar"
)

// Checksum computes the 16-bit checksum of data: the two's complement of
// the sum of all big-endian 16-bit words, modulo 2^16.
//
// data must hold an even number of bytes.
func Checksum(data []byte) ([ChecksumSize]byte, error) {
	var out [ChecksumSize]byte
	if len(data)%2 != 0 {
		return out, fmt.Errorf("%w: checksum payload has odd length %d", calerr.ErrValue, len(data))
	}
	var sum uint64
	for i := 0; i < len(data); i += 2 {
		sum += uint64(binary.BigEndian.Uint16(data[i:]))
	}
	sum = scalar.TwosComplement(sum%(1<<16), 16) & 0xFFFF
	binary.BigEndian.PutUint16(out[:], uint16(sum))
	return out, nil
}

// Finalize turns a merged sequence into its output form.
//
// The lead fragment is the header record: its key and length are dropped and
// only its value is kept. The checksum covers the whole stream except its
// first two bytes and is written over the first two bytes of the lead value,
// so the stream length does not change.
//
// The input slice is left untouched.
func Finalize(seq []Fragment) ([]Fragment, error) {
	if len(seq) == 0 {
		return nil, fmt.Errorf("%w: no fragments to finalize", calerr.ErrValue)
	}
	lead := seq[0].Value
	if len(lead) < ChecksumSize {
		return nil, fmt.Errorf("%w: lead value has %d bytes, need %d for the checksum",
			calerr.ErrValue, len(lead), ChecksumSize)
	}

	out := make([]Fragment, len(seq))
	copy(out, seq)
	out[0] = Fragment{Value: lead}

	sum, err := Checksum(Encode(out)[ChecksumSize:])
	if err != nil {
		return nil, err
	}

	value := make([]byte, 0, len(lead))
	value = append(value, sum[:]...)
	out[0].Value = append(value, lead[ChecksumSize:]...)
	return out, nil
}
