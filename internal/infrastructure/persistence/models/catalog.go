package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/scentlab/crm-backend/internal/domain/catalog"
	"github.com/scentlab/crm-backend/internal/domain/shared/valueobject"
)

// FragranceModel is the persistence model for the Fragrance aggregate.
type FragranceModel struct {
	AggregateModel
	Brand       string            `gorm:"type:varchar(200);not null;index"`
	Name        string            `gorm:"type:varchar(200);not null;index"`
	Description string            `gorm:"type:text"`
	VolumeML    int               `gorm:"not null;default:0"`
	BaseCost    valueobject.Money `gorm:"type:decimal(15,2);not null;default:0"`
	RetailPrice valueobject.Money `gorm:"type:decimal(15,2);not null;default:0"`
	IsActive    bool              `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (FragranceModel) TableName() string {
	return "fragrances"
}

// ToDomain converts the persistence model to a domain Fragrance entity.
func (m *FragranceModel) ToDomain() *catalog.Fragrance {
	return &catalog.Fragrance{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Brand:             m.Brand,
		Name:              m.Name,
		Description:       m.Description,
		VolumeML:          m.VolumeML,
		BaseCost:          m.BaseCost,
		RetailPrice:       m.RetailPrice,
		IsActive:          m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain Fragrance entity.
func (m *FragranceModel) FromDomain(f *catalog.Fragrance) {
	m.FromDomainAggregateRoot(f.BaseAggregateRoot)
	m.Brand = f.Brand
	m.Name = f.Name
	m.Description = f.Description
	m.VolumeML = f.VolumeML
	m.BaseCost = f.BaseCost
	m.RetailPrice = f.RetailPrice
	m.IsActive = f.IsActive
}

// FragranceModelFromDomain creates a new persistence model from a domain Fragrance entity.
func FragranceModelFromDomain(f *catalog.Fragrance) *FragranceModel {
	m := &FragranceModel{}
	m.FromDomain(f)
	return m
}

// PriceProductModel is the persistence model for a supplier price-list row.
type PriceProductModel struct {
	AggregateModel
	ExternalArticle string            `gorm:"type:varchar(100);not null;uniqueIndex"`
	Brand           string            `gorm:"type:varchar(200);index"`
	Name            string            `gorm:"type:varchar(200);not null;index"`
	VolumeML        int               `gorm:"not null;default:0"`
	PurchasePrice   valueobject.Money `gorm:"type:decimal(15,2);not null;default:0"`
	PartnerPrice    valueobject.Money `gorm:"type:decimal(15,2);not null;default:0"`
	IsActive        bool              `gorm:"not null;default:true;index"`
	InStock         bool              `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (PriceProductModel) TableName() string {
	return "price_products"
}

// ToDomain converts the persistence model to a domain PriceProduct entity.
func (m *PriceProductModel) ToDomain() *catalog.PriceProduct {
	return &catalog.PriceProduct{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		ExternalArticle:   m.ExternalArticle,
		Brand:             m.Brand,
		Name:              m.Name,
		VolumeML:          m.VolumeML,
		PurchasePrice:     m.PurchasePrice,
		PartnerPrice:      m.PartnerPrice,
		IsActive:          m.IsActive,
		InStock:           m.InStock,
	}
}

// FromDomain populates the persistence model from a domain PriceProduct entity.
func (m *PriceProductModel) FromDomain(p *catalog.PriceProduct) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.ExternalArticle = p.ExternalArticle
	m.Brand = p.Brand
	m.Name = p.Name
	m.VolumeML = p.VolumeML
	m.PurchasePrice = p.PurchasePrice
	m.PartnerPrice = p.PartnerPrice
	m.IsActive = p.IsActive
	m.InStock = p.InStock
}

// PriceProductModelFromDomain creates a new persistence model from a domain PriceProduct entity.
func PriceProductModelFromDomain(p *catalog.PriceProduct) *PriceProductModel {
	m := &PriceProductModel{}
	m.FromDomain(p)
	return m
}

// CatalogItemModel is the persistence model for a storefront entry.
type CatalogItemModel struct {
	AggregateModel
	Brand          string     `gorm:"type:varchar(200);not null;index"`
	Name           string     `gorm:"type:varchar(200);not null;index"`
	Description    string     `gorm:"type:text"`
	ImageURL       string     `gorm:"type:varchar(500)"`
	PriceProductID *uuid.UUID `gorm:"type:uuid;index"`
	IsVisible      bool       `gorm:"not null;default:true;index"`
	InStock        bool       `gorm:"not null;default:true"`
	SortOrder      int        `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (CatalogItemModel) TableName() string {
	return "catalog_items"
}

// ToDomain converts the persistence model to a domain CatalogItem entity.
func (m *CatalogItemModel) ToDomain() *catalog.CatalogItem {
	return &catalog.CatalogItem{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Brand:             m.Brand,
		Name:              m.Name,
		Description:       m.Description,
		ImageURL:          m.ImageURL,
		PriceProductID:    m.PriceProductID,
		IsVisible:         m.IsVisible,
		InStock:           m.InStock,
		SortOrder:         m.SortOrder,
	}
}

// FromDomain populates the persistence model from a domain CatalogItem entity.
func (m *CatalogItemModel) FromDomain(i *catalog.CatalogItem) {
	m.FromDomainAggregateRoot(i.BaseAggregateRoot)
	m.Brand = i.Brand
	m.Name = i.Name
	m.Description = i.Description
	m.ImageURL = i.ImageURL
	m.PriceProductID = i.PriceProductID
	m.IsVisible = i.IsVisible
	m.InStock = i.InStock
	m.SortOrder = i.SortOrder
}

// CatalogItemModelFromDomain creates a new persistence model from a domain CatalogItem entity.
func CatalogItemModelFromDomain(i *catalog.CatalogItem) *CatalogItemModel {
	m := &CatalogItemModel{}
	m.FromDomain(i)
	return m
}

// PartnerPriceModel is the persistence model for a per-partner price agreement.
type PartnerPriceModel struct {
	ID                     uuid.UUID         `gorm:"type:uuid;primary_key"`
	PartnerID              uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_partner_fragrance_price"`
	FragranceID            uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_partner_fragrance_price"`
	PurchasePrice          valueobject.Money `gorm:"type:decimal(15,2);not null;default:0"`
	RecommendedClientPrice valueobject.Money `gorm:"type:decimal(15,2);not null;default:0"`
	CreatedAt              time.Time         `gorm:"not null"`
	UpdatedAt              time.Time         `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PartnerPriceModel) TableName() string {
	return "partner_prices"
}

// ToDomain converts the persistence model to a domain PartnerPrice.
func (m *PartnerPriceModel) ToDomain() *catalog.PartnerPrice {
	return &catalog.PartnerPrice{
		ID:                     m.ID,
		PartnerID:              m.PartnerID,
		FragranceID:            m.FragranceID,
		PurchasePrice:          m.PurchasePrice,
		RecommendedClientPrice: m.RecommendedClientPrice,
		CreatedAt:              m.CreatedAt,
		UpdatedAt:              m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain PartnerPrice.
func (m *PartnerPriceModel) FromDomain(p *catalog.PartnerPrice) {
	m.ID = p.ID
	m.PartnerID = p.PartnerID
	m.FragranceID = p.FragranceID
	m.PurchasePrice = p.PurchasePrice
	m.RecommendedClientPrice = p.RecommendedClientPrice
	m.CreatedAt = p.CreatedAt
	m.UpdatedAt = p.UpdatedAt
}

// PartnerPriceModelFromDomain creates a new persistence model from a domain PartnerPrice.
func PartnerPriceModelFromDomain(p *catalog.PartnerPrice) *PartnerPriceModel {
	m := &PartnerPriceModel{}
	m.FromDomain(p)
	return m
}

// ReleaseNoteModel is the persistence model for the ReleaseNote aggregate.
type ReleaseNoteModel struct {
	AggregateModel
	ReleaseVersion        string     `gorm:"column:release_version;type:varchar(50);not null;uniqueIndex"`
	Title                 string     `gorm:"type:varchar(200);not null"`
	Description           string     `gorm:"type:text"`
	Changes               string     `gorm:"type:text"`
	IsPublished           bool       `gorm:"not null;default:false;index"`
	IsPublishedToPartners bool       `gorm:"not null;default:false"`
	MaxPartnerViews       *int       `gorm:""`
	PartnerViewCount      int        `gorm:"not null;default:0"`
	CreatedByUserID       *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (ReleaseNoteModel) TableName() string {
	return "release_notes"
}

// ToDomain converts the persistence model to a domain ReleaseNote entity.
func (m *ReleaseNoteModel) ToDomain() *catalog.ReleaseNote {
	return &catalog.ReleaseNote{
		BaseAggregateRoot:     m.ToDomainAggregateRoot(),
		Version:               m.ReleaseVersion,
		Title:                 m.Title,
		Description:           m.Description,
		Changes:               m.Changes,
		IsPublished:           m.IsPublished,
		IsPublishedToPartners: m.IsPublishedToPartners,
		MaxPartnerViews:       m.MaxPartnerViews,
		PartnerViewCount:      m.PartnerViewCount,
		CreatedByUserID:       m.CreatedByUserID,
	}
}

// FromDomain populates the persistence model from a domain ReleaseNote entity.
func (m *ReleaseNoteModel) FromDomain(r *catalog.ReleaseNote) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.ReleaseVersion = r.Version
	m.Title = r.Title
	m.Description = r.Description
	m.Changes = r.Changes
	m.IsPublished = r.IsPublished
	m.IsPublishedToPartners = r.IsPublishedToPartners
	m.MaxPartnerViews = r.MaxPartnerViews
	m.PartnerViewCount = r.PartnerViewCount
	m.CreatedByUserID = r.CreatedByUserID
}

// ReleaseNoteModelFromDomain creates a new persistence model from a domain ReleaseNote entity.
func ReleaseNoteModelFromDomain(r *catalog.ReleaseNote) *ReleaseNoteModel {
	m := &ReleaseNoteModel{}
	m.FromDomain(r)
	return m
}

// PriceImportModel is the persistence model for a price-list import audit record.
// Rejected rows are stored as a JSON document.
type PriceImportModel struct {
	AggregateModel
	Source      string     `gorm:"type:varchar(100);not null"`
	TotalRows   int        `gorm:"not null"`
	CreatedRows int        `gorm:"not null;default:0"`
	UpdatedRows int        `gorm:"not null;default:0"`
	Status      string     `gorm:"type:varchar(20);not null;index"`
	Failures    string     `gorm:"type:jsonb;not null;default:'[]'"`
	ImportedBy  uuid.UUID  `gorm:"type:uuid;not null;index"`
	CompletedAt *time.Time
}

// TableName returns the table name for GORM
func (PriceImportModel) TableName() string {
	return "price_imports"
}

// ToDomain converts the persistence model to a domain PriceImport entity.
func (m *PriceImportModel) ToDomain() (*catalog.PriceImport, error) {
	imp := &catalog.PriceImport{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Source:            m.Source,
		TotalRows:         m.TotalRows,
		CreatedRows:       m.CreatedRows,
		UpdatedRows:       m.UpdatedRows,
		Status:            catalog.PriceImportStatus(m.Status),
		ImportedBy:        m.ImportedBy,
		CompletedAt:       m.CompletedAt,
	}
	if err := imp.SetFailuresJSON(m.Failures); err != nil {
		return nil, err
	}
	return imp, nil
}

// FromDomain populates the persistence model from a domain PriceImport entity.
func (m *PriceImportModel) FromDomain(p *catalog.PriceImport) error {
	failures, err := p.FailuresJSON()
	if err != nil {
		return err
	}
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Source = p.Source
	m.TotalRows = p.TotalRows
	m.CreatedRows = p.CreatedRows
	m.UpdatedRows = p.UpdatedRows
	m.Status = string(p.Status)
	m.Failures = failures
	m.ImportedBy = p.ImportedBy
	m.CompletedAt = p.CompletedAt
	return nil
}
