package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scentlab/crm-backend/internal/domain/shared/valueobject"
)

func rub(v float64) valueobject.Money {
	return valueobject.NewMoneyRUBFromFloat(v)
}

func pct(v float64) valueobject.Percent {
	return valueobject.NewPercentFromFloat(v)
}

func TestClientPrice(t *testing.T) {
	t.Run("ten percent markup on 5000 gives 5500", func(t *testing.T) {
		price := ClientPrice(rub(5000), pct(10))
		assert.Equal(t, "5500.00", price.StringFixed(2))
	})

	t.Run("zero markup keeps base", func(t *testing.T) {
		price := ClientPrice(rub(5000), valueobject.ZeroPercent())
		assert.Equal(t, "5000.00", price.StringFixed(2))
	})

	t.Run("fractional markup rounds half up", func(t *testing.T) {
		// 999.99 * 1.125 = 1124.98875 -> 1124.99
		price := ClientPrice(rub(999.99), pct(12.5))
		assert.Equal(t, "1124.99", price.StringFixed(2))
	})
}

func TestQuoteLine(t *testing.T) {
	base := BasePrice{Cost: rub(3000), ClientPrice: rub(5000)}

	t.Run("quantity two at ten percent markup", func(t *testing.T) {
		quote, err := QuoteLine(base, pct(10), 2, rub(0))
		require.NoError(t, err)

		assert.Equal(t, "5500.00", quote.UnitClientPrice.StringFixed(2))
		assert.Equal(t, "11000.00", quote.LineClientAmount.StringFixed(2))
		assert.Equal(t, "6000.00", quote.LineCostAmount.StringFixed(2))
		assert.Equal(t, "5000.00", quote.LineMargin.StringFixed(2))
	})

	t.Run("absolute discount reduces line amount", func(t *testing.T) {
		quote, err := QuoteLine(base, pct(10), 2, rub(1000))
		require.NoError(t, err)

		assert.Equal(t, "10000.00", quote.LineClientAmount.StringFixed(2))
		assert.Equal(t, "4000.00", quote.LineMargin.StringFixed(2))
	})

	t.Run("margin identity holds", func(t *testing.T) {
		quote, err := QuoteLine(base, pct(17.5), 3, rub(250))
		require.NoError(t, err)

		expected := quote.LineClientAmount.MustSubtract(quote.LineCostAmount)
		assert.True(t, quote.LineMargin.Equals(expected))
	})

	t.Run("rejects discount larger than line", func(t *testing.T) {
		_, err := QuoteLine(base, pct(0), 1, rub(6000))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := QuoteLine(base, pct(10), 0, rub(0))
		assert.Error(t, err)
	})

	t.Run("rejects negative discount", func(t *testing.T) {
		_, err := QuoteLine(base, pct(10), 1, rub(-5))
		assert.Error(t, err)
	})

	t.Run("rejects negative base prices", func(t *testing.T) {
		_, err := QuoteLine(BasePrice{Cost: rub(-1), ClientPrice: rub(100)}, pct(0), 1, rub(0))
		assert.Error(t, err)
	})
}
