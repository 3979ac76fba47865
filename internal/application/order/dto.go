package order

import (
	"github.com/google/uuid"

	"github.com/scentlab/crm-backend/internal/domain/order"
	"github.com/scentlab/crm-backend/internal/domain/shared"
	"github.com/scentlab/crm-backend/internal/domain/shared/valueobject"
)

// OrderItemInput is one requested order line. Exactly one of the three
// product references must be set; the line is priced server-side from
// that product in the order's partner context.
type OrderItemInput struct {
	FragranceID    *uuid.UUID
	PriceProductID *uuid.UUID
	CatalogItemID  *uuid.UUID
	Quantity       int
	Discount       valueobject.Money
}

// CreateOrderInput carries data for a new order
type CreateOrderInput struct {
	ClientID      uuid.UUID
	PartnerID     *uuid.UUID
	PaymentMethod order.PaymentMethod
	DeliveryType  order.DeliveryType
	Tracking      string
	Comment       string
	Items         []OrderItemInput
}

// UpdateOrderInput carries partial header changes
type UpdateOrderInput struct {
	PaymentMethod *order.PaymentMethod
	DeliveryType  *order.DeliveryType
	Tracking      *string
	Comment       *string
}

// UpdateItemInput changes quantity and discount of an existing line
type UpdateItemInput struct {
	Quantity int
	Discount valueobject.Money
}

// ListOrdersInput controls order listing
type ListOrdersInput struct {
	Status   order.Status
	ClientID *uuid.UUID
	Search   string
	Filter   shared.Filter
}
