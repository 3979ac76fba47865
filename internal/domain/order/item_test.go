package order

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scentlab/crm-backend/internal/domain/shared/valueobject"
)

func rub(v float64) valueobject.Money {
	return valueobject.NewMoneyRUBFromFloat(v)
}

func TestItemSourceValidate(t *testing.T) {
	t.Run("accepts exactly one reference", func(t *testing.T) {
		assert.NoError(t, FragranceSource(uuid.New()).Validate())
		assert.NoError(t, PriceProductSource(uuid.New()).Validate())
		assert.NoError(t, CatalogItemSource(uuid.New()).Validate())
	})

	t.Run("rejects empty source", func(t *testing.T) {
		err := ItemSource{}.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must reference a product")
	})

	t.Run("rejects multiple references", func(t *testing.T) {
		fid, pid := uuid.New(), uuid.New()
		err := ItemSource{FragranceID: &fid, PriceProductID: &pid}.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exactly one product")
	})

	t.Run("rejects nil uuid reference", func(t *testing.T) {
		nilID := uuid.Nil
		assert.Error(t, ItemSource{FragranceID: &nilID}.Validate())
	})

	t.Run("reports source kind", func(t *testing.T) {
		assert.Equal(t, SourceFragrance, FragranceSource(uuid.New()).Kind())
		assert.Equal(t, SourcePriceProduct, PriceProductSource(uuid.New()).Kind())
		assert.Equal(t, SourceCatalogItem, CatalogItemSource(uuid.New()).Kind())
	})
}

func TestNewItem(t *testing.T) {
	source := FragranceSource(uuid.New())

	t.Run("computes line amounts", func(t *testing.T) {
		item, err := NewItem(source, "Oud Wood", 2, rub(5500), rub(3000), rub(0))
		require.NoError(t, err)

		assert.Equal(t, "11000.00", item.LineClientAmount.StringFixed(2))
		assert.Equal(t, "6000.00", item.LineCostAmount.StringFixed(2))
		assert.Equal(t, "5000.00", item.LineMargin.StringFixed(2))
	})

	t.Run("discount is absolute per line", func(t *testing.T) {
		item, err := NewItem(source, "Oud Wood", 2, rub(5500), rub(3000), rub(500))
		require.NoError(t, err)

		assert.Equal(t, "10500.00", item.LineClientAmount.StringFixed(2))
		assert.Equal(t, "4500.00", item.LineMargin.StringFixed(2))
	})

	t.Run("rejects discount exceeding line amount", func(t *testing.T) {
		_, err := NewItem(source, "Oud Wood", 1, rub(1000), rub(500), rub(1500))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := NewItem(source, "Oud Wood", 0, rub(1000), rub(500), rub(0))
		assert.Error(t, err)
	})

	t.Run("rejects negative discount", func(t *testing.T) {
		_, err := NewItem(source, "Oud Wood", 1, rub(1000), rub(500), rub(-10))
		assert.Error(t, err)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewItem(source, "  ", 1, rub(1000), rub(500), rub(0))
		assert.Error(t, err)
	})

	t.Run("rejects missing source", func(t *testing.T) {
		_, err := NewItem(ItemSource{}, "Oud Wood", 1, rub(1000), rub(500), rub(0))
		assert.Error(t, err)
	})
}

func TestItemMutations(t *testing.T) {
	item, err := NewItem(FragranceSource(uuid.New()), "Oud Wood", 2, rub(5500), rub(3000), rub(0))
	require.NoError(t, err)

	t.Run("quantity change reprices the line", func(t *testing.T) {
		require.NoError(t, item.ChangeQuantity(3))
		assert.Equal(t, "16500.00", item.LineClientAmount.StringFixed(2))
	})

	t.Run("invalid quantity keeps previous state", func(t *testing.T) {
		require.Error(t, item.ChangeQuantity(0))
		assert.Equal(t, 3, item.Quantity)
	})

	t.Run("discount change reprices the line", func(t *testing.T) {
		require.NoError(t, item.ChangeDiscount(rub(500)))
		assert.Equal(t, "16000.00", item.LineClientAmount.StringFixed(2))
	})

	t.Run("excessive discount is rejected and rolled back", func(t *testing.T) {
		require.Error(t, item.ChangeDiscount(rub(100000)))
		assert.Equal(t, "500.00", item.Discount.StringFixed(2))
		assert.Equal(t, "16000.00", item.LineClientAmount.StringFixed(2))
	})

	t.Run("reprice replaces unit prices", func(t *testing.T) {
		require.NoError(t, item.Reprice(rub(6000), rub(3200)))
		assert.Equal(t, "17500.00", item.LineClientAmount.StringFixed(2))
		assert.Equal(t, "9600.00", item.LineCostAmount.StringFixed(2))
		assert.Equal(t, "7900.00", item.LineMargin.StringFixed(2))
	})
}
