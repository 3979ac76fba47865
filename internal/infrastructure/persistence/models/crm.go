package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/scentlab/crm-backend/internal/domain/crm"
	"github.com/scentlab/crm-backend/internal/domain/shared/valueobject"
)

// ClientModel is the persistence model for the Client aggregate.
type ClientModel struct {
	AggregateModel
	Name             string           `gorm:"type:varchar(200);not null"`
	LastName         string           `gorm:"type:varchar(200)"`
	Phone            string           `gorm:"type:varchar(50);index"`
	Email            string           `gorm:"type:varchar(200);index"`
	Telegram         string           `gorm:"type:varchar(100)"`
	Instagram        string           `gorm:"type:varchar(100)"`
	City             string           `gorm:"type:varchar(100)"`
	Notes            string           `gorm:"type:text"`
	Source           crm.ClientSource `gorm:"type:varchar(20);not null;default:'manual'"`
	OwnerUserID      *uuid.UUID       `gorm:"type:uuid;index"`
	OwnerPartnerID   *uuid.UUID       `gorm:"type:uuid;index"`
	CreatedByUserID  *uuid.UUID       `gorm:"type:uuid;index"`
	CanAccessCatalog bool             `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the persistence model to a domain Client entity.
func (m *ClientModel) ToDomain() *crm.Client {
	return &crm.Client{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		LastName:          m.LastName,
		Phone:             m.Phone,
		Email:             m.Email,
		Telegram:          m.Telegram,
		Instagram:         m.Instagram,
		City:              m.City,
		Notes:             m.Notes,
		Source:            m.Source,
		OwnerUserID:       m.OwnerUserID,
		OwnerPartnerID:    m.OwnerPartnerID,
		CreatedByUserID:   m.CreatedByUserID,
		CanAccessCatalog:  m.CanAccessCatalog,
	}
}

// FromDomain populates the persistence model from a domain Client entity.
func (m *ClientModel) FromDomain(c *crm.Client) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Name = c.Name
	m.LastName = c.LastName
	m.Phone = c.Phone
	m.Email = c.Email
	m.Telegram = c.Telegram
	m.Instagram = c.Instagram
	m.City = c.City
	m.Notes = c.Notes
	m.Source = c.Source
	m.OwnerUserID = c.OwnerUserID
	m.OwnerPartnerID = c.OwnerPartnerID
	m.CreatedByUserID = c.CreatedByUserID
	m.CanAccessCatalog = c.CanAccessCatalog
}

// ClientModelFromDomain creates a new persistence model from a domain Client entity.
func ClientModelFromDomain(c *crm.Client) *ClientModel {
	m := &ClientModel{}
	m.FromDomain(c)
	return m
}

// PartnerModel is the persistence model for the Partner aggregate.
type PartnerModel struct {
	AggregateModel
	Name             string              `gorm:"type:varchar(200);not null;uniqueIndex"`
	Type             crm.PartnerType     `gorm:"type:varchar(20);not null;default:'reseller'"`
	ContactName      string              `gorm:"type:varchar(200)"`
	Phone            string              `gorm:"type:varchar(50)"`
	Email            string              `gorm:"type:varchar(200)"`
	Telegram         string              `gorm:"type:varchar(100)"`
	Status           crm.PartnerStatus   `gorm:"type:varchar(20);not null;default:'active'"`
	AdminMarkup      valueobject.Percent `gorm:"type:decimal(8,2);not null;default:0"`
	DefaultMarkup    valueobject.Percent `gorm:"type:decimal(8,2);not null;default:0"`
	MaxMarkup        valueobject.Percent `gorm:"type:decimal(8,2);not null;default:100"`
	CanAccessCatalog bool                `gorm:"not null;default:false"`
	Notes            string              `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PartnerModel) TableName() string {
	return "partners"
}

// ToDomain converts the persistence model to a domain Partner entity.
func (m *PartnerModel) ToDomain() *crm.Partner {
	return &crm.Partner{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Type:              m.Type,
		ContactName:       m.ContactName,
		Phone:             m.Phone,
		Email:             m.Email,
		Telegram:          m.Telegram,
		Status:            m.Status,
		AdminMarkup:       m.AdminMarkup,
		DefaultMarkup:     m.DefaultMarkup,
		MaxMarkup:         m.MaxMarkup,
		CanAccessCatalog:  m.CanAccessCatalog,
		Notes:             m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Partner entity.
func (m *PartnerModel) FromDomain(p *crm.Partner) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Name = p.Name
	m.Type = p.Type
	m.ContactName = p.ContactName
	m.Phone = p.Phone
	m.Email = p.Email
	m.Telegram = p.Telegram
	m.Status = p.Status
	m.AdminMarkup = p.AdminMarkup
	m.DefaultMarkup = p.DefaultMarkup
	m.MaxMarkup = p.MaxMarkup
	m.CanAccessCatalog = p.CanAccessCatalog
	m.Notes = p.Notes
}

// PartnerModelFromDomain creates a new persistence model from a domain Partner entity.
func PartnerModelFromDomain(p *crm.Partner) *PartnerModel {
	m := &PartnerModel{}
	m.FromDomain(p)
	return m
}

// PartnerClientMarkupModel is the persistence model for a per-client markup override.
type PartnerClientMarkupModel struct {
	ID        uuid.UUID           `gorm:"type:uuid;primary_key"`
	PartnerID uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_partner_client_markup"`
	ClientID  uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_partner_client_markup"`
	Markup    valueobject.Percent `gorm:"type:decimal(8,2);not null;default:0"`
	CreatedAt time.Time           `gorm:"not null"`
	UpdatedAt time.Time           `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PartnerClientMarkupModel) TableName() string {
	return "partner_client_markups"
}

// ToDomain converts the persistence model to a domain override.
func (m *PartnerClientMarkupModel) ToDomain() *crm.PartnerClientMarkup {
	return &crm.PartnerClientMarkup{
		ID:        m.ID,
		PartnerID: m.PartnerID,
		ClientID:  m.ClientID,
		Markup:    m.Markup,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain override.
func (m *PartnerClientMarkupModel) FromDomain(o *crm.PartnerClientMarkup) {
	m.ID = o.ID
	m.PartnerID = o.PartnerID
	m.ClientID = o.ClientID
	m.Markup = o.Markup
	m.CreatedAt = o.CreatedAt
	m.UpdatedAt = o.UpdatedAt
}

// PartnerClientMarkupModelFromDomain creates a new persistence model from a domain override.
func PartnerClientMarkupModelFromDomain(o *crm.PartnerClientMarkup) *PartnerClientMarkupModel {
	m := &PartnerClientMarkupModel{}
	m.FromDomain(o)
	return m
}
