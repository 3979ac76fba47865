package order

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/scentlab/crm-backend/internal/domain/shared"
	"github.com/scentlab/crm-backend/internal/domain/shared/valueobject"
)

// PaymentMethod describes how the client pays
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
)

// DeliveryType describes how the order reaches the client
type DeliveryType string

const (
	DeliveryPickup  DeliveryType = "pickup"
	DeliveryCourier DeliveryType = "courier"
	DeliveryPost    DeliveryType = "post"
	DeliveryCDEK    DeliveryType = "cdek"
)

// Order is the aggregate root for a client purchase.
// Totals are derived from the line items and recomputed on every
// item mutation; they are never written directly.
type Order struct {
	shared.BaseAggregateRoot
	Number            string
	ClientID          uuid.UUID
	PartnerID         *uuid.UUID
	CreatedByUserID   *uuid.UUID
	Status            Status
	PaymentMethod     PaymentMethod
	DeliveryType      DeliveryType
	DeliveryTracking  string
	Comment           string
	Currency          valueobject.Currency
	Items             []Item
	TotalClientAmount valueobject.Money
	TotalCostAmount   valueobject.Money
	TotalMargin       valueobject.Money
}

// NewOrder creates an empty order in the NEW status
func NewOrder(number string, clientID uuid.UUID, createdBy uuid.UUID) (*Order, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order number cannot be empty")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Client ID cannot be empty")
	}

	creator := createdBy
	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		ClientID:          clientID,
		CreatedByUserID:   &creator,
		Status:            StatusNew,
		Currency:          valueobject.DefaultCurrency,
		Items:             make([]Item, 0),
	}
	o.recalculateTotals()

	return o, nil
}

// BindToPartner attributes the order to a partner
func (o *Order) BindToPartner(partnerID uuid.UUID) error {
	if partnerID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "Partner ID cannot be empty")
	}

	o.PartnerID = &partnerID
	o.Touch()
	o.IncrementVersion()

	return nil
}

// AddItem appends a priced line and recomputes totals
func (o *Order) AddItem(item *Item) error {
	if !o.Status.AllowsEditing() {
		return shared.NewDomainError("INVALID_STATE", "Order lines cannot be changed in status "+string(o.Status))
	}

	item.OrderID = o.ID
	o.Items = append(o.Items, *item)
	o.recalculateTotals()
	o.Touch()
	o.IncrementVersion()

	return nil
}

// RemoveItem deletes a line by ID and recomputes totals
func (o *Order) RemoveItem(itemID uuid.UUID) error {
	if !o.Status.AllowsEditing() {
		return shared.NewDomainError("INVALID_STATE", "Order lines cannot be changed in status "+string(o.Status))
	}

	for idx, item := range o.Items {
		if item.ID == itemID {
			o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
			o.recalculateTotals()
			o.Touch()
			o.IncrementVersion()
			return nil
		}
	}

	return shared.ErrNotFound
}

// UpdateItem changes quantity and discount of an existing line
func (o *Order) UpdateItem(itemID uuid.UUID, quantity int, discount valueobject.Money) error {
	if !o.Status.AllowsEditing() {
		return shared.NewDomainError("INVALID_STATE", "Order lines cannot be changed in status "+string(o.Status))
	}

	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			if err := o.Items[idx].ChangeQuantity(quantity); err != nil {
				return err
			}
			if err := o.Items[idx].ChangeDiscount(discount); err != nil {
				return err
			}
			o.recalculateTotals()
			o.Touch()
			o.IncrementVersion()
			return nil
		}
	}

	return shared.ErrNotFound
}

// FindItem returns a line by ID
func (o *Order) FindItem(itemID uuid.UUID) (*Item, error) {
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			return &o.Items[idx], nil
		}
	}
	return nil, shared.ErrNotFound
}

// ChangeStatus moves the order through the fulfilment flow
func (o *Order) ChangeStatus(target Status) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "Unknown order status")
	}
	if target == o.Status {
		return nil
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", "Cannot move order from "+string(o.Status)+" to "+string(target))
	}

	o.Status = target
	o.Touch()
	o.IncrementVersion()

	return nil
}

// SetPayment records the payment method
func (o *Order) SetPayment(method PaymentMethod) {
	o.PaymentMethod = method
	o.Touch()
	o.IncrementVersion()
}

// SetDelivery records delivery details
func (o *Order) SetDelivery(deliveryType DeliveryType, tracking string) {
	o.DeliveryType = deliveryType
	o.DeliveryTracking = strings.TrimSpace(tracking)
	o.Touch()
	o.IncrementVersion()
}

// SetComment sets a free-form comment
func (o *Order) SetComment(comment string) {
	o.Comment = comment
	o.Touch()
	o.IncrementVersion()
}

// MarginPercent returns the total margin as a share of the client amount
func (o *Order) MarginPercent() decimal.Decimal {
	if o.TotalClientAmount.IsZero() {
		return decimal.Zero
	}
	return o.TotalMargin.Amount().
		Div(o.TotalClientAmount.Amount()).
		Mul(decimal.NewFromInt(100)).
		Round(2)
}

// IsVisibleTo reports whether the order falls inside the given ownership scope
func (o *Order) IsVisibleTo(scope shared.OwnershipScope) bool {
	if scope.All {
		return true
	}
	if o.CreatedByUserID != nil && *o.CreatedByUserID == scope.UserID {
		return true
	}
	if scope.PartnerID != nil && o.PartnerID != nil && *o.PartnerID == *scope.PartnerID {
		return true
	}
	return false
}

// recalculateTotals sums line amounts into the order totals
func (o *Order) recalculateTotals() {
	totalClient := valueobject.Zero(o.Currency)
	totalCost := valueobject.Zero(o.Currency)

	for _, item := range o.Items {
		totalClient = totalClient.MustAdd(item.LineClientAmount)
		totalCost = totalCost.MustAdd(item.LineCostAmount)
	}

	o.TotalClientAmount = totalClient.Round(2)
	o.TotalCostAmount = totalCost.Round(2)
	o.TotalMargin = totalClient.MustSubtract(totalCost).Round(2)
}
