package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	apporder "github.com/scentlab/crm-backend/internal/application/order"
	"github.com/scentlab/crm-backend/internal/domain/order"
	"github.com/scentlab/crm-backend/internal/domain/shared/valueobject"
)

// OrderListRequest carries order listing query parameters
type OrderListRequest struct {
	ListRequest
	Status   string `form:"status"`
	ClientID string `form:"client_id"`
}

// OrderItemRequest is one requested order line.
// Exactly one of the three product references must be set.
type OrderItemRequest struct {
	FragranceID    *uuid.UUID `json:"fragrance_id"`
	PriceProductID *uuid.UUID `json:"price_product_id"`
	CatalogItemID  *uuid.UUID `json:"catalog_item_id"`
	Quantity       int        `json:"quantity" binding:"required,min=1"`
	Discount       float64    `json:"discount"`
}

// ToInput converts the request into an application input
func (r OrderItemRequest) ToInput() apporder.OrderItemInput {
	return apporder.OrderItemInput{
		FragranceID:    r.FragranceID,
		PriceProductID: r.PriceProductID,
		CatalogItemID:  r.CatalogItemID,
		Quantity:       r.Quantity,
		Discount:       valueobject.NewMoneyRUBFromFloat(r.Discount),
	}
}

// CreateOrderRequest is the order creation payload
type CreateOrderRequest struct {
	ClientID      uuid.UUID          `json:"client_id" binding:"required"`
	PartnerID     *uuid.UUID         `json:"partner_id"`
	PaymentMethod string             `json:"payment_method"`
	DeliveryType  string             `json:"delivery_type"`
	Tracking      string             `json:"tracking"`
	Comment       string             `json:"comment"`
	Items         []OrderItemRequest `json:"items" binding:"required,min=1"`
}

// ToInput converts the request into an application input
func (r CreateOrderRequest) ToInput() apporder.CreateOrderInput {
	items := make([]apporder.OrderItemInput, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, item.ToInput())
	}
	return apporder.CreateOrderInput{
		ClientID:      r.ClientID,
		PartnerID:     r.PartnerID,
		PaymentMethod: order.PaymentMethod(r.PaymentMethod),
		DeliveryType:  order.DeliveryType(r.DeliveryType),
		Tracking:      r.Tracking,
		Comment:       r.Comment,
		Items:         items,
	}
}

// UpdateOrderRequest is the partial order header update payload
type UpdateOrderRequest struct {
	PaymentMethod *string `json:"payment_method"`
	DeliveryType  *string `json:"delivery_type"`
	Tracking      *string `json:"tracking"`
	Comment       *string `json:"comment"`
}

// ToInput converts the request into an application input
func (r UpdateOrderRequest) ToInput() apporder.UpdateOrderInput {
	input := apporder.UpdateOrderInput{
		Tracking: r.Tracking,
		Comment:  r.Comment,
	}
	if r.PaymentMethod != nil {
		method := order.PaymentMethod(*r.PaymentMethod)
		input.PaymentMethod = &method
	}
	if r.DeliveryType != nil {
		delivery := order.DeliveryType(*r.DeliveryType)
		input.DeliveryType = &delivery
	}
	return input
}

// UpdateOrderItemRequest changes quantity and discount of a line
type UpdateOrderItemRequest struct {
	Quantity int     `json:"quantity" binding:"required,min=1"`
	Discount float64 `json:"discount"`
}

// ToInput converts the request into an application input
func (r UpdateOrderItemRequest) ToInput() apporder.UpdateItemInput {
	return apporder.UpdateItemInput{
		Quantity: r.Quantity,
		Discount: valueobject.NewMoneyRUBFromFloat(r.Discount),
	}
}

// ChangeOrderStatusRequest moves an order through the fulfilment flow
type ChangeOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderItemResponse is the API representation of an order line
type OrderItemResponse struct {
	ID               uuid.UUID         `json:"id"`
	FragranceID      *uuid.UUID        `json:"fragrance_id,omitempty"`
	PriceProductID   *uuid.UUID        `json:"price_product_id,omitempty"`
	CatalogItemID    *uuid.UUID        `json:"catalog_item_id,omitempty"`
	Name             string            `json:"name"`
	Quantity         int               `json:"quantity"`
	UnitClientPrice  valueobject.Money `json:"unit_client_price"`
	UnitCost         valueobject.Money `json:"unit_cost"`
	Discount         valueobject.Money `json:"discount"`
	LineClientAmount valueobject.Money `json:"line_client_amount"`
	LineCostAmount   valueobject.Money `json:"line_cost_amount"`
	LineMargin       valueobject.Money `json:"line_margin"`
}

// OrderResponse is the API representation of an order
type OrderResponse struct {
	ID                uuid.UUID           `json:"id"`
	Number            string              `json:"number"`
	ClientID          uuid.UUID           `json:"client_id"`
	PartnerID         *uuid.UUID          `json:"partner_id,omitempty"`
	CreatedByUserID   *uuid.UUID          `json:"created_by_user_id,omitempty"`
	Status            string              `json:"status"`
	PaymentMethod     string              `json:"payment_method,omitempty"`
	DeliveryType      string              `json:"delivery_type,omitempty"`
	DeliveryTracking  string              `json:"delivery_tracking,omitempty"`
	Comment           string              `json:"comment,omitempty"`
	Currency          string              `json:"currency"`
	Items             []OrderItemResponse `json:"items"`
	TotalClientAmount valueobject.Money   `json:"total_client_amount"`
	TotalCostAmount   valueobject.Money   `json:"total_cost_amount"`
	TotalMargin       valueobject.Money   `json:"total_margin"`
	MarginPercent     decimal.Decimal     `json:"margin_percent"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
	Version           int                 `json:"version"`
}

// NewOrderItemResponse maps a domain order line
func NewOrderItemResponse(i *order.Item) OrderItemResponse {
	return OrderItemResponse{
		ID:               i.ID,
		FragranceID:      i.Source.FragranceID,
		PriceProductID:   i.Source.PriceProductID,
		CatalogItemID:    i.Source.CatalogItemID,
		Name:             i.Name,
		Quantity:         i.Quantity,
		UnitClientPrice:  i.UnitClientPrice,
		UnitCost:         i.UnitCost,
		Discount:         i.Discount,
		LineClientAmount: i.LineClientAmount,
		LineCostAmount:   i.LineCostAmount,
		LineMargin:       i.LineMargin,
	}
}

// NewOrderResponse maps a domain order with its lines
func NewOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for i := range o.Items {
		items = append(items, NewOrderItemResponse(&o.Items[i]))
	}
	return OrderResponse{
		ID:                o.ID,
		Number:            o.Number,
		ClientID:          o.ClientID,
		PartnerID:         o.PartnerID,
		CreatedByUserID:   o.CreatedByUserID,
		Status:            string(o.Status),
		PaymentMethod:     string(o.PaymentMethod),
		DeliveryType:      string(o.DeliveryType),
		DeliveryTracking:  o.DeliveryTracking,
		Comment:           o.Comment,
		Currency:          string(o.Currency),
		Items:             items,
		TotalClientAmount: o.TotalClientAmount,
		TotalCostAmount:   o.TotalCostAmount,
		TotalMargin:       o.TotalMargin,
		MarginPercent:     o.MarginPercent(),
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
		Version:           o.Version,
	}
}

// NewOrderListResponse maps a slice of domain orders
func NewOrderListResponse(orders []order.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, NewOrderResponse(&orders[i]))
	}
	return out
}
