package models

import (
	"github.com/google/uuid"

	"github.com/scentlab/crm-backend/internal/domain/order"
	"github.com/scentlab/crm-backend/internal/domain/shared/valueobject"
)

// OrderModel is the persistence model for the Order aggregate.
// Items are stored in order_items and loaded together with the order.
type OrderModel struct {
	AggregateModel
	Number            string               `gorm:"type:varchar(50);not null;uniqueIndex"`
	ClientID          uuid.UUID            `gorm:"type:uuid;not null;index"`
	PartnerID         *uuid.UUID           `gorm:"type:uuid;index"`
	CreatedByUserID   *uuid.UUID           `gorm:"type:uuid;index"`
	Status            order.Status         `gorm:"type:varchar(20);not null;default:'NEW';index"`
	PaymentMethod     order.PaymentMethod  `gorm:"type:varchar(20)"`
	DeliveryType      order.DeliveryType   `gorm:"type:varchar(20)"`
	DeliveryTracking  string               `gorm:"type:varchar(100)"`
	Comment           string               `gorm:"type:text"`
	Currency          valueobject.Currency `gorm:"type:varchar(3);not null;default:'RUB'"`
	TotalClientAmount valueobject.Money    `gorm:"type:decimal(15,2);not null;default:0"`
	TotalCostAmount   valueobject.Money    `gorm:"type:decimal(15,2);not null;default:0"`
	TotalMargin       valueobject.Money    `gorm:"type:decimal(15,2);not null;default:0"`
	Items             []OrderItemModel     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order entity.
func (m *OrderModel) ToDomain() *order.Order {
	items := make([]order.Item, len(m.Items))
	for i, im := range m.Items {
		items[i] = *im.ToDomain()
	}
	return &order.Order{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Number:            m.Number,
		ClientID:          m.ClientID,
		PartnerID:         m.PartnerID,
		CreatedByUserID:   m.CreatedByUserID,
		Status:            m.Status,
		PaymentMethod:     m.PaymentMethod,
		DeliveryType:      m.DeliveryType,
		DeliveryTracking:  m.DeliveryTracking,
		Comment:           m.Comment,
		Currency:          m.Currency,
		Items:             items,
		TotalClientAmount: m.TotalClientAmount,
		TotalCostAmount:   m.TotalCostAmount,
		TotalMargin:       m.TotalMargin,
	}
}

// FromDomain populates the persistence model from a domain Order entity.
func (m *OrderModel) FromDomain(o *order.Order) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.Number = o.Number
	m.ClientID = o.ClientID
	m.PartnerID = o.PartnerID
	m.CreatedByUserID = o.CreatedByUserID
	m.Status = o.Status
	m.PaymentMethod = o.PaymentMethod
	m.DeliveryType = o.DeliveryType
	m.DeliveryTracking = o.DeliveryTracking
	m.Comment = o.Comment
	m.Currency = o.Currency
	m.TotalClientAmount = o.TotalClientAmount
	m.TotalCostAmount = o.TotalCostAmount
	m.TotalMargin = o.TotalMargin

	m.Items = make([]OrderItemModel, len(o.Items))
	for i := range o.Items {
		m.Items[i].FromDomain(&o.Items[i])
	}
}

// OrderModelFromDomain creates a new persistence model from a domain Order entity.
func OrderModelFromDomain(o *order.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// OrderItemModel is the persistence model for an order line.
// Exactly one of the three source columns is set.
type OrderItemModel struct {
	BaseModel
	OrderID          uuid.UUID         `gorm:"type:uuid;not null;index"`
	FragranceID      *uuid.UUID        `gorm:"type:uuid;index"`
	PriceProductID   *uuid.UUID        `gorm:"type:uuid;index"`
	CatalogItemID    *uuid.UUID        `gorm:"type:uuid;index"`
	Name             string            `gorm:"type:varchar(300);not null"`
	Quantity         int               `gorm:"not null;default:1"`
	UnitClientPrice  valueobject.Money `gorm:"type:decimal(15,2);not null;default:0"`
	UnitCost         valueobject.Money `gorm:"type:decimal(15,2);not null;default:0"`
	Discount         valueobject.Money `gorm:"type:decimal(15,2);not null;default:0"`
	LineClientAmount valueobject.Money `gorm:"type:decimal(15,2);not null;default:0"`
	LineCostAmount   valueobject.Money `gorm:"type:decimal(15,2);not null;default:0"`
	LineMargin       valueobject.Money `gorm:"type:decimal(15,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain Item.
func (m *OrderItemModel) ToDomain() *order.Item {
	return &order.Item{
		BaseEntity: m.BaseModel.ToDomain(),
		OrderID:    m.OrderID,
		Source: order.ItemSource{
			FragranceID:    m.FragranceID,
			PriceProductID: m.PriceProductID,
			CatalogItemID:  m.CatalogItemID,
		},
		Name:             m.Name,
		Quantity:         m.Quantity,
		UnitClientPrice:  m.UnitClientPrice,
		UnitCost:         m.UnitCost,
		Discount:         m.Discount,
		LineClientAmount: m.LineClientAmount,
		LineCostAmount:   m.LineCostAmount,
		LineMargin:       m.LineMargin,
	}
}

// FromDomain populates the persistence model from a domain Item.
func (m *OrderItemModel) FromDomain(i *order.Item) {
	m.FromDomainBaseEntity(i.BaseEntity)
	m.OrderID = i.OrderID
	m.FragranceID = i.Source.FragranceID
	m.PriceProductID = i.Source.PriceProductID
	m.CatalogItemID = i.Source.CatalogItemID
	m.Name = i.Name
	m.Quantity = i.Quantity
	m.UnitClientPrice = i.UnitClientPrice
	m.UnitCost = i.UnitCost
	m.Discount = i.Discount
	m.LineClientAmount = i.LineClientAmount
	m.LineCostAmount = i.LineCostAmount
	m.LineMargin = i.LineMargin
}
