package cell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aerissecure/calbin/calerr"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{Empty, "EMPTY"},
		{Text, "TEXT"},
		{Number, "NUMBER"},
		{Date, "DATE"},
		{Boolean, "BOOLEAN"},
		{Error, "ERROR"},
		{Blank, "BLANK"},
		{Blank + 1, "KIND(7)"},
		{-1, "KIND(-1)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.String())
		})
	}
}

func TestCellString(t *testing.T) {
	tests := []struct {
		cell Cell
		want string
	}{
		{Cell{}, "EMPTY"},
		{Cell{Kind: Blank}, "BLANK"},
		{NewText("Gain"), `TEXT("Gain")`},
		{NewNumber(1015), "NUMBER(1015)"},
		{NewNumber(0.5), "NUMBER(0.5)"},
		{NewBool(true), "BOOLEAN(true)"},
		{NewError("#N/A"), `ERROR("#N/A")`},
		{NewDate("2015-01-09T00:00:00Z"), `DATE("2015-01-09T00:00:00Z")`},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cell.String())
		})
	}
}

func TestExpect(t *testing.T) {
	tests := []struct {
		name   string
		cell   Cell
		want   []Kind
		errMsg string
	}{
		{"match", NewNumber(8), []Kind{Number}, ""},
		{"second kind", Cell{}, []Kind{Text, Empty}, ""},
		{"mismatch", NewDate("2015-01-09T00:00:00Z"), []Kind{Number}, "'Length' type should not be DATE"},
		{"no kinds", NewText("x"), nil, "'Length' type should not be TEXT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Expect(tt.cell, RoleLength, tt.want...)
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.EqualError(t, err, tt.errMsg)
			assert.ErrorIs(t, err, calerr.ErrType)

			var typeErr *TypeError
			require.True(t, errors.As(err, &typeErr))
			assert.Equal(t, RoleLength, typeErr.Role)
			assert.Equal(t, tt.cell.Kind, typeErr.Kind)
		})
	}
}
