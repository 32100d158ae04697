package fragment

import (
	"bytes"
	"fmt"

	"github.com/aerissecure/calbin/scalar"
)

// merger accumulates the value of one span and its pending 1-bit values.
type merger struct {
	pool  [][]byte
	value []byte
}

func (m *merger) flush() error {
	if len(m.pool) == 0 {
		return nil
	}
	packed, err := scalar.PackBits(m.pool)
	if err != nil {
		return err
	}
	m.value = append(m.value, packed...)
	m.pool = m.pool[:0]
	return nil
}

// Merge collapses all fragments sharing a key ID into one fragment per key.
//
// Keys are visited in order of first occurrence. For each key the span from
// its first to its last occurrence in the current sequence is replaced by a
// single fragment whose length is the sum of the span's lengths and whose
// value is the span's values concatenated, with every run of 1-bit values
// packed eight to a byte. Fragments of other keys that sit inside a span are
// swallowed by it, so a key that no longer occurs when its turn comes is
// skipped.
//
// The input slice is left untouched. The returned count is the number of
// original fragments covered by the merged spans.
func Merge(seq []Fragment) ([]Fragment, int, error) {
	out := make([]Fragment, len(seq))
	copy(out, seq)

	var count int
	for _, key := range keyOrder(seq) {
		first, last := span(out, key)
		if first < 0 {
			continue
		}
		count += last - first + 1

		// the pool never outlives its span
		var m merger
		total := 0
		for _, f := range out[first : last+1] {
			total += f.Bits()
			if f.Bits() == 1 {
				m.pool = append(m.pool, f.Value)
				continue
			}
			if err := m.flush(); err != nil {
				return nil, 0, fmt.Errorf("key % x: %w", key, err)
			}
			m.value = append(m.value, f.Value...)
		}
		if err := m.flush(); err != nil {
			return nil, 0, fmt.Errorf("key % x: %w", key, err)
		}

		length, err := scalar.EncodeInt(uint64(total), LengthBits)
		if err != nil {
			return nil, 0, fmt.Errorf("key % x: merged length: %w", key, err)
		}
		merged := Fragment{Key: []byte(key), Length: length, Value: m.value}

		out = append(out[:first+1], out[last+1:]...)
		out[first] = merged
	}
	return out, count, nil
}

// keyOrder lists the distinct keys of seq in order of first occurrence.
func keyOrder(seq []Fragment) []string {
	seen := make(map[string]bool, len(seq))
	var keys []string
	for _, f := range seq {
		k := string(f.Key)
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	return keys
}

// span returns the first and last index of key in seq, or -1, -1.
func span(seq []Fragment, key string) (int, int) {
	first, last := -1, -1
	for i, f := range seq {
		if bytes.Equal(f.Key, []byte(key)) {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	return first, last
}
