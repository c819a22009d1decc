package amount

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestScale(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"1000000000000000000", "1.00"},
		{"1234567890000000000", "1.23"},
		{"1235000000000000000", "1.24"},
		{"0", "0.00"},
		{"", "0"},
		{"garbage", "0"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Scale(tc.raw, TokenDecimals, 2), tc.raw)
	}
}

func TestStrTrimsZeros(t *testing.T) {
	assert.Equal(t, "200", Str(decimal.RequireFromString("200.000")))
	assert.Equal(t, "0.5", Str(decimal.RequireFromString("0.50")))
	assert.Equal(t, "0.33333333", Str(decimal.NewFromInt(1).Div(decimal.NewFromInt(3))))
}

func TestDivByZero(t *testing.T) {
	assert.True(t, Div(decimal.NewFromInt(5), decimal.Zero).IsZero())
	assert.Equal(t, "2", Str(Div(decimal.NewFromInt(4), decimal.NewFromInt(2))))
}

func TestParse(t *testing.T) {
	assert.True(t, Parse("").IsZero())
	assert.True(t, Parse("x").IsZero())
	assert.Equal(t, "1.5", Parse(" 1.5 ").String())
}
