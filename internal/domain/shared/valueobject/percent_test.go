package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercent(t *testing.T) {
	t.Run("adds percents", func(t *testing.T) {
		total := NewPercentFromFloat(5).Add(NewPercentFromFloat(10))
		assert.True(t, total.Equals(NewPercentFromFloat(15)))
	})

	t.Run("caps at maximum", func(t *testing.T) {
		capped := NewPercentFromFloat(25).CapAt(NewPercentFromFloat(20))
		assert.True(t, capped.Equals(NewPercentFromFloat(20)))
	})

	t.Run("cap keeps value below maximum", func(t *testing.T) {
		capped := NewPercentFromFloat(15).CapAt(NewPercentFromFloat(20))
		assert.True(t, capped.Equals(NewPercentFromFloat(15)))
	})

	t.Run("floors negative at zero", func(t *testing.T) {
		floored := NewPercentFromFloat(-5).FloorAtZero()
		assert.True(t, floored.IsZero())
	})

	t.Run("parses from string", func(t *testing.T) {
		p, err := NewPercentFromString("12.5")
		require.NoError(t, err)
		assert.True(t, p.Equals(NewPercent(decimal.NewFromFloat(12.5))))
	})

	t.Run("rejects invalid string", func(t *testing.T) {
		_, err := NewPercentFromString("abc")
		assert.Error(t, err)
	})
}

func TestPercentScan(t *testing.T) {
	t.Run("scans numeric value", func(t *testing.T) {
		var p Percent
		require.NoError(t, p.Scan("17.5"))
		assert.True(t, p.Equals(NewPercentFromFloat(17.5)))
	})

	t.Run("scans nil as zero", func(t *testing.T) {
		var p Percent
		require.NoError(t, p.Scan(nil))
		assert.True(t, p.IsZero())
	})
}
