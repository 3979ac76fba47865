// Package pricing computes client prices and per-line margins.
// It is pure: callers resolve base prices from the catalog and pass
// them in, the engine applies markup and discount rules.
package pricing

import (
	"github.com/scentlab/crm-backend/internal/domain/shared"
	"github.com/scentlab/crm-backend/internal/domain/shared/valueobject"
)

// BasePrice carries the resolved cost and client base price for a product.
// For partner sales the cost is what the partner pays; the client base
// price is the pre-markup price shown to the end client.
type BasePrice struct {
	Cost        valueobject.Money
	ClientPrice valueobject.Money
}

// Quote is the priced result for one order line
type Quote struct {
	UnitClientPrice  valueobject.Money
	UnitCost         valueobject.Money
	LineClientAmount valueobject.Money
	LineCostAmount   valueobject.Money
	LineMargin       valueobject.Money
}

// ClientPrice applies a markup percent to a base price,
// rounding half-up to two decimal places
func ClientPrice(base valueobject.Money, markup valueobject.Percent) valueobject.Money {
	return base.ApplyMarkup(markup.Decimal())
}

// QuoteLine prices a single order line.
// The markup is applied to the client base price per unit; the discount is
// an absolute amount subtracted from the whole line. A discount larger
// than the line amount is rejected.
func QuoteLine(base BasePrice, markup valueobject.Percent, quantity int, discount valueobject.Money) (Quote, error) {
	if quantity <= 0 {
		return Quote{}, shared.NewDomainError("INVALID_INPUT", "Quantity must be positive")
	}
	if base.Cost.IsNegative() || base.ClientPrice.IsNegative() {
		return Quote{}, shared.NewDomainError("INVALID_INPUT", "Base prices cannot be negative")
	}
	if discount.IsNegative() {
		return Quote{}, shared.NewDomainError("INVALID_INPUT", "Discount cannot be negative")
	}

	unitClient := ClientPrice(base.ClientPrice, markup)
	gross := unitClient.MultiplyByInt(int64(quantity))

	lineClient, err := gross.Subtract(discount)
	if err != nil {
		return Quote{}, shared.NewDomainError("INVALID_INPUT", "Discount currency does not match the line currency")
	}
	if lineClient.IsNegative() {
		return Quote{}, shared.NewDomainError("INVALID_INPUT", "Discount cannot exceed the line amount")
	}

	lineClient = lineClient.Round(2)
	lineCost := base.Cost.MultiplyByInt(int64(quantity)).Round(2)

	return Quote{
		UnitClientPrice:  unitClient,
		UnitCost:         base.Cost,
		LineClientAmount: lineClient,
		LineCostAmount:   lineCost,
		LineMargin:       lineClient.MustSubtract(lineCost).Round(2),
	}, nil
}
