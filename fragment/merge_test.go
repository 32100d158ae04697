package fragment

import (
	"encoding/binary"
	"testing"

	"github.com/aerissecure/calbin/calerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frag(key, length uint16, value ...byte) Fragment {
	k := binary.BigEndian.AppendUint16(nil, key)
	l := binary.BigEndian.AppendUint16(nil, length)
	return Fragment{Key: k, Length: l, Value: value}
}

func TestMerge(t *testing.T) {
	seq := []Fragment{
		frag(1, 16, 0x7f),
		frag(1, 1, 1), frag(1, 1, 0),
		frag(1, 1, 1), frag(1, 1, 0),
		frag(1, 1, 1), frag(1, 1, 0),
		frag(1, 1, 1), frag(1, 1, 0),
		frag(1, 16, 0x7f),
		frag(2, 16, 0x7f),
	}

	got, count, err := Merge(seq)
	require.NoError(t, err)
	assert.Equal(t, []Fragment{
		frag(1, 40, 0x7f, 0xaa, 0x7f),
		frag(2, 16, 0x7f),
	}, got)
	assert.Equal(t, 11, count)
	assert.Len(t, seq, 11, "input must not be modified")
}

func TestMergeValueSize(t *testing.T) {
	seq := []Fragment{frag(1, 16, 0x00, 0x7f)}
	for _, b := range []byte{1, 0, 1, 0, 1, 0, 1, 0} {
		seq = append(seq, frag(1, 1, b))
	}
	seq = append(seq, frag(1, 16, 0x00, 0x7f))

	got, _, err := Merge(seq)
	require.NoError(t, err)
	assert.Equal(t, []Fragment{frag(1, 40, 0x00, 0x7f, 0xaa, 0x00, 0x7f)}, got)
	assert.Len(t, got[0].Value, (got[0].Bits()+7)/8)
}

func TestMergeTrailingBitPool(t *testing.T) {
	seq := []Fragment{frag(1, 16, 0x00, 0x7f)}
	for _, b := range []byte{1, 0, 1, 0, 1, 0, 1, 0} {
		seq = append(seq, frag(1, 1, b))
	}

	got, _, err := Merge(seq)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 24, got[0].Bits())
	assert.Equal(t, []byte{0x00, 0x7f, 0xaa}, got[0].Value)
}

func TestMergePreservesLength(t *testing.T) {
	seq := []Fragment{
		frag(7, 32, 0x01, 0x02, 0x03, 0x04),
		frag(7, 8, 0x05),
	}
	for i := 0; i < 16; i++ {
		seq = append(seq, frag(7, 1, byte(i%2)))
	}
	seq = append(seq, frag(7, 16, 0x06, 0x07))

	var sum int
	for _, f := range seq {
		sum += f.Bits()
	}

	got, _, err := Merge(seq)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, sum, got[0].Bits())
	assert.Len(t, got[0].Value, sum/8)
}

func TestMergeDistinctKeys(t *testing.T) {
	seq := []Fragment{frag(1, 8, 0x11), frag(2, 8, 0x22), frag(3, 8, 0x33)}

	got, count, err := Merge(seq)
	require.NoError(t, err)
	assert.Equal(t, seq, got)
	assert.Equal(t, 3, count)
}

func TestMergePartialBitRun(t *testing.T) {
	seq := []Fragment{
		frag(1, 1, 1), frag(1, 1, 0), frag(1, 1, 1),
		frag(1, 8, 0xff),
	}

	_, _, err := Merge(seq)
	require.Error(t, err)
	assert.ErrorIs(t, err, calerr.ErrValue)
}

func TestMergeBitPoolPerSpan(t *testing.T) {
	var seq []Fragment
	for _, b := range []byte{1, 1, 1, 1, 0, 0, 0, 0} {
		seq = append(seq, frag(1, 1, b))
	}
	for _, b := range []byte{0, 0, 0, 0, 1, 1, 1, 1} {
		seq = append(seq, frag(2, 1, b))
	}

	got, count, err := Merge(seq)
	require.NoError(t, err)
	assert.Equal(t, []Fragment{frag(1, 8, 0xf0), frag(2, 8, 0x0f)}, got)
	assert.Equal(t, 16, count)
}

func TestMergePartialBitRunAtSpanEnd(t *testing.T) {
	seq := []Fragment{
		frag(1, 8, 0x11),
		frag(1, 1, 1), frag(1, 1, 0), frag(1, 1, 1),
		frag(2, 1, 1), frag(2, 1, 1), frag(2, 1, 1), frag(2, 1, 1), frag(2, 1, 1),
	}

	_, _, err := Merge(seq)
	require.Error(t, err)
	assert.ErrorIs(t, err, calerr.ErrValue)
	assert.ErrorContains(t, err, "key 00 01")
}

// Interleaved duplicates are merged over the whole first..last span, so the
// fragments of other keys in between are absorbed.
func TestMergeInterleavedSpan(t *testing.T) {
	seq := []Fragment{
		frag(1, 8, 0x11),
		frag(2, 8, 0x22),
		frag(1, 8, 0x33),
		frag(3, 8, 0x44),
	}

	got, count, err := Merge(seq)
	require.NoError(t, err)
	assert.Equal(t, []Fragment{
		frag(1, 24, 0x11, 0x22, 0x33),
		frag(3, 8, 0x44),
	}, got)
	assert.Equal(t, 4, count)
}

func TestMergeEmpty(t *testing.T) {
	got, count, err := Merge(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, count)
}
