package order

import (
	"strings"

	"github.com/google/uuid"

	"github.com/scentlab/crm-backend/internal/domain/shared"
	"github.com/scentlab/crm-backend/internal/domain/shared/valueobject"
)

// SourceKind names the catalog table an order line points at
type SourceKind string

const (
	SourceFragrance    SourceKind = "fragrance"
	SourcePriceProduct SourceKind = "price_product"
	SourceCatalogItem  SourceKind = "catalog_item"
)

// ItemSource references exactly one product record.
// A line must point at a fragrance, a price-list product or a catalog
// item - never none and never more than one.
type ItemSource struct {
	FragranceID    *uuid.UUID
	PriceProductID *uuid.UUID
	CatalogItemID  *uuid.UUID
}

// FragranceSource builds a source pointing at a fragrance
func FragranceSource(id uuid.UUID) ItemSource {
	return ItemSource{FragranceID: &id}
}

// PriceProductSource builds a source pointing at a price-list product
func PriceProductSource(id uuid.UUID) ItemSource {
	return ItemSource{PriceProductID: &id}
}

// CatalogItemSource builds a source pointing at a catalog item
func CatalogItemSource(id uuid.UUID) ItemSource {
	return ItemSource{CatalogItemID: &id}
}

// Validate enforces the exactly-one-reference rule
func (s ItemSource) Validate() error {
	count := 0
	if s.FragranceID != nil {
		if *s.FragranceID == uuid.Nil {
			return shared.NewDomainError("INVALID_INPUT", "Fragrance ID cannot be empty")
		}
		count++
	}
	if s.PriceProductID != nil {
		if *s.PriceProductID == uuid.Nil {
			return shared.NewDomainError("INVALID_INPUT", "Price product ID cannot be empty")
		}
		count++
	}
	if s.CatalogItemID != nil {
		if *s.CatalogItemID == uuid.Nil {
			return shared.NewDomainError("INVALID_INPUT", "Catalog item ID cannot be empty")
		}
		count++
	}

	if count == 0 {
		return shared.NewDomainError("INVALID_INPUT", "Order item must reference a product")
	}
	if count > 1 {
		return shared.NewDomainError("INVALID_INPUT", "Order item must reference exactly one product")
	}
	return nil
}

// Kind returns which catalog table the source points at
func (s ItemSource) Kind() SourceKind {
	switch {
	case s.FragranceID != nil:
		return SourceFragrance
	case s.PriceProductID != nil:
		return SourcePriceProduct
	default:
		return SourceCatalogItem
	}
}

// Item is a priced order line.
// Line amounts are computed once at construction and again whenever
// quantity, prices or discount change.
type Item struct {
	shared.BaseEntity
	OrderID          uuid.UUID
	Source           ItemSource
	Name             string
	Quantity         int
	UnitClientPrice  valueobject.Money
	UnitCost         valueobject.Money
	Discount         valueobject.Money
	LineClientAmount valueobject.Money
	LineCostAmount   valueobject.Money
	LineMargin       valueobject.Money
}

// NewItem creates a priced order line.
// The discount is an absolute amount per line; a discount exceeding the
// line total is rejected rather than clamped.
func NewItem(source ItemSource, name string, quantity int, unitClientPrice, unitCost, discount valueobject.Money) (*Item, error) {
	if err := source.Validate(); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Item name cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Quantity must be positive")
	}
	if unitClientPrice.IsNegative() || unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unit prices cannot be negative")
	}
	if discount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Discount cannot be negative")
	}

	item := &Item{
		BaseEntity:      shared.NewBaseEntity(),
		Source:          source,
		Name:            name,
		Quantity:        quantity,
		UnitClientPrice: unitClientPrice,
		UnitCost:        unitCost,
		Discount:        discount,
	}

	if err := item.recalculate(); err != nil {
		return nil, err
	}

	return item, nil
}

// ChangeQuantity updates the quantity and reprices the line
func (i *Item) ChangeQuantity(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Quantity must be positive")
	}

	prev := i.Quantity
	i.Quantity = quantity
	if err := i.recalculate(); err != nil {
		i.Quantity = prev
		return err
	}
	i.Touch()

	return nil
}

// ChangeDiscount updates the absolute discount and reprices the line
func (i *Item) ChangeDiscount(discount valueobject.Money) error {
	if discount.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Discount cannot be negative")
	}

	prev := i.Discount
	i.Discount = discount
	if err := i.recalculate(); err != nil {
		i.Discount = prev
		return err
	}
	i.Touch()

	return nil
}

// Reprice replaces the unit prices and recomputes line amounts
func (i *Item) Reprice(unitClientPrice, unitCost valueobject.Money) error {
	if unitClientPrice.IsNegative() || unitCost.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Unit prices cannot be negative")
	}

	prevClient, prevCost := i.UnitClientPrice, i.UnitCost
	i.UnitClientPrice = unitClientPrice
	i.UnitCost = unitCost
	if err := i.recalculate(); err != nil {
		i.UnitClientPrice, i.UnitCost = prevClient, prevCost
		return err
	}
	i.Touch()

	return nil
}

// recalculate derives line amounts from quantity, unit prices and discount.
// Rounding happens at the line level, never per unit.
func (i *Item) recalculate() error {
	gross := i.UnitClientPrice.MultiplyByInt(int64(i.Quantity))
	lineClient, err := gross.Subtract(i.Discount)
	if err != nil {
		return shared.NewDomainError("INVALID_INPUT", "Discount currency does not match the line currency")
	}
	if lineClient.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Discount cannot exceed the line amount")
	}

	i.LineClientAmount = lineClient.Round(2)
	i.LineCostAmount = i.UnitCost.MultiplyByInt(int64(i.Quantity)).Round(2)
	i.LineMargin = i.LineClientAmount.MustSubtract(i.LineCostAmount).Round(2)

	return nil
}
