package util

import (
	"database/sql"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundHalfEven(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{3.125, 3.12},
		{3.135, 3.13}, // binary value just below the midpoint
		{0.375 * 100, 37.5},
		{62.5, 62.5},
		{12.5 / 100 * 100, 12.5},
		{2.675, 2.67},
		{-1.005, -1},
		{0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundHalfEven(tt.in, 2), "RoundHalfEven(%v)", tt.in)
	}

	assert.True(t, math.IsNaN(RoundHalfEven(math.NaN(), 2)))
	assert.True(t, math.IsInf(RoundHalfEven(math.Inf(1), 2), 1))
}

func TestNewULID(t *testing.T) {
	a := NewULID()
	b := NewULID()

	assert.Len(t, a, 26)
	assert.True(t, IsULID(a))
	assert.Less(t, a, b)
	assert.False(t, IsULID("not-a-ulid"))
	assert.False(t, IsULID(""))
}

func TestNullStringHelpers(t *testing.T) {
	assert.Equal(t, sql.NullString{}, StringToNullString(""))
	assert.Equal(t, sql.NullString{String: "Go", Valid: true}, StringToNullString("Go"))
	assert.Equal(t, "", NullStringToString(sql.NullString{}))
	assert.Equal(t, "Go", NullStringToString(sql.NullString{String: "Go", Valid: true}))
}

func TestBoolIntHelpers(t *testing.T) {
	assert.Equal(t, 1, BoolToInt(true))
	assert.Equal(t, 0, BoolToInt(false))
	assert.True(t, IntToBool(1))
	assert.False(t, IntToBool(0))
}
