package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMinorConversions(t *testing.T) {
	assert.True(t, FromMinorInt(12550).Equal(decimal.RequireFromString("125.5")))
	assert.True(t, FromMinor(decimal.NewFromInt(99)).Equal(decimal.RequireFromString("0.99")))
	assert.True(t, FromMinorInt(0).IsZero())

	assert.Equal(t, int64(12550), ToMinor(decimal.RequireFromString("125.50")))
	assert.Equal(t, int64(1001), ToMinor(decimal.RequireFromString("10.005")))
}

func TestSum(t *testing.T) {
	got := Sum(decimal.RequireFromString("1.10"), decimal.RequireFromString("2.20"))
	assert.True(t, got.Equal(decimal.RequireFromString("3.3")))
	assert.True(t, Sum().IsZero())
}
