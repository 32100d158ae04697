package fragment

import (
	"errors"
	"testing"

	"github.com/aerissecure/calbin/calerr"
	"github.com/aerissecure/calbin/cell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name   string
		key    cell.Cell
		length cell.Cell
		value  cell.Cell
		want   Fragment
	}{
		{
			name:   "numeric key and value read as hex digits",
			key:    cell.NewNumber(1),
			length: cell.NewNumber(32),
			value:  cell.NewNumber(1015),
			want:   Fragment{Key: []byte{0x00, 0x01}, Length: []byte{0x00, 0x20}, Value: []byte{0x00, 0x00, 0x10, 0x15}},
		},
		{
			name:   "text key and value parsed as hex",
			key:    cell.NewText("1A"),
			length: cell.NewNumber(16),
			value:  cell.NewText("7F"),
			want:   Fragment{Key: []byte{0x00, 0x1a}, Length: []byte{0x00, 0x10}, Value: []byte{0x00, 0x7f}},
		},
		{
			name:   "quoted text stored raw",
			key:    cell.NewNumber(0),
			length: cell.NewNumber(64),
			value:  cell.NewText(`"SGM358"`),
			want:   Fragment{Key: []byte{0x00, 0x00}, Length: []byte{0x00, 0x40}, Value: []byte("SGM358\x00\x00")},
		},
		{
			name:   "single bit",
			key:    cell.NewNumber(2),
			length: cell.NewNumber(1),
			value:  cell.NewNumber(1),
			want:   Fragment{Key: []byte{0x00, 0x02}, Length: []byte{0x00, 0x01}, Value: []byte{0x01}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Build(tt.key, tt.length, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name     string
		key      cell.Cell
		length   cell.Cell
		value    cell.Cell
		wantErr  error
		wantRole string
		errMsg   string
	}{
		{
			name:     "date key",
			key:      cell.NewDate("2015-01-09T00:00:00Z"),
			length:   cell.NewNumber(8),
			value:    cell.NewNumber(1),
			wantErr:  calerr.ErrType,
			wantRole: cell.RoleKey,
			errMsg:   "'Key ID' type should not be DATE",
		},
		{
			name:     "text length",
			key:      cell.NewNumber(1),
			length:   cell.NewText("8"),
			value:    cell.NewNumber(1),
			wantErr:  calerr.ErrType,
			wantRole: cell.RoleLength,
			errMsg:   "'Length' type should not be TEXT",
		},
		{
			name:     "boolean value",
			key:      cell.NewNumber(1),
			length:   cell.NewNumber(8),
			value:    cell.NewBool(true),
			wantErr:  calerr.ErrType,
			wantRole: cell.RoleValue,
			errMsg:   "'Value' type should not be BOOLEAN",
		},
		{
			name:    "fractional length",
			key:     cell.NewNumber(1),
			length:  cell.NewNumber(7.5),
			value:   cell.NewNumber(1),
			wantErr: calerr.ErrType,
			errMsg:  "Length",
		},
		{
			name:    "value too wide",
			key:     cell.NewNumber(1),
			length:  cell.NewNumber(8),
			value:   cell.NewText("1FF"),
			wantErr: calerr.ErrRange,
			errMsg:  "Value",
		},
		{
			name:    "key too wide",
			key:     cell.NewText("12345"),
			length:  cell.NewNumber(8),
			value:   cell.NewNumber(1),
			wantErr: calerr.ErrRange,
			errMsg:  "Key ID",
		},
		{
			name:    "quoted text too long",
			key:     cell.NewNumber(1),
			length:  cell.NewNumber(16),
			value:   cell.NewText(`"abc"`),
			wantErr: calerr.ErrRange,
			errMsg:  "Value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.key, tt.length, tt.value)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.errMsg)

			if tt.wantRole != "" {
				var typeErr *cell.TypeError
				require.True(t, errors.As(err, &typeErr))
				assert.Equal(t, tt.wantRole, typeErr.Role)
			}
		})
	}
}

func TestEncode(t *testing.T) {
	seq := []Fragment{
		{Value: []byte{0xaa, 0xbb}},
		{Key: []byte{0x00, 0x01}, Length: []byte{0x00, 0x08}, Value: []byte{0x7f}},
	}
	assert.Equal(t, []byte{0xaa, 0xbb, 0x00, 0x01, 0x00, 0x08, 0x7f}, Encode(seq))
	assert.Empty(t, Encode(nil))
}
