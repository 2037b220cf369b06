package ingest

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuantity(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"5", 5, true},
		{" 12 ", 12, true},
		{"5.0", 5, true},
		{"1,200", 1200, true},
		{"", 0, true},
		{"nan", 0, true},
		{"NaN", 0, true},
		{"-", 0, true},
		{"abc", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseQuantity(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestParseDecimal(t *testing.T) {
	assert.True(t, ParseDecimal("10.50").Equal(decimal.RequireFromString("10.50")))
	assert.True(t, ParseDecimal("1,250.75").Equal(decimal.RequireFromString("1250.75")))
	assert.True(t, ParseDecimal("").IsZero())
	assert.True(t, ParseDecimal("nan").IsZero())
	assert.True(t, ParseDecimal("garbage").IsZero())
}

func TestParseDateLayouts(t *testing.T) {
	got, ok := ParseDate("2025-03-15")
	require.True(t, ok)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), got.UTC())

	got, ok = ParseDate("15/03/2025")
	require.True(t, ok)
	require.NotNil(t, got)
	assert.Equal(t, 15, got.Day())
	assert.Equal(t, time.March, got.Month())
}

func TestParseDateBlankAndInvalid(t *testing.T) {
	got, ok := ParseDate("")
	assert.True(t, ok)
	assert.Nil(t, got)

	got, ok = ParseDate("not a date")
	assert.False(t, ok)
	assert.Nil(t, got)
}
