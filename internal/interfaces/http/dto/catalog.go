package dto

import (
	"time"

	"github.com/google/uuid"

	appcatalog "github.com/scentlab/crm-backend/internal/application/catalog"
	"github.com/scentlab/crm-backend/internal/domain/catalog"
	"github.com/scentlab/crm-backend/internal/domain/shared/valueobject"
)

// FragranceListRequest carries fragrance listing query parameters
type FragranceListRequest struct {
	ListRequest
	IncludeArchived bool `form:"include_archived"`
}

// CreateFragranceRequest is the fragrance creation payload
type CreateFragranceRequest struct {
	Brand       string  `json:"brand" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	VolumeML    int     `json:"volume_ml"`
	BaseCost    float64 `json:"base_cost"`
	RetailPrice float64 `json:"retail_price"`
}

// ToInput converts the request into an application input
func (r CreateFragranceRequest) ToInput() appcatalog.CreateFragranceInput {
	return appcatalog.CreateFragranceInput{
		Brand:       r.Brand,
		Name:        r.Name,
		Description: r.Description,
		VolumeML:    r.VolumeML,
		BaseCost:    valueobject.NewMoneyRUBFromFloat(r.BaseCost),
		RetailPrice: valueobject.NewMoneyRUBFromFloat(r.RetailPrice),
	}
}

// UpdateFragranceRequest is the partial fragrance update payload
type UpdateFragranceRequest struct {
	Brand       *string  `json:"brand"`
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	VolumeML    *int     `json:"volume_ml"`
	BaseCost    *float64 `json:"base_cost"`
	RetailPrice *float64 `json:"retail_price"`
}

// ToInput converts the request into an application input
func (r UpdateFragranceRequest) ToInput() appcatalog.UpdateFragranceInput {
	return appcatalog.UpdateFragranceInput{
		Brand:       r.Brand,
		Name:        r.Name,
		Description: r.Description,
		VolumeML:    r.VolumeML,
		BaseCost:    moneyPtr(r.BaseCost),
		RetailPrice: moneyPtr(r.RetailPrice),
	}
}

// FragranceResponse is the API representation of an in-house fragrance
type FragranceResponse struct {
	ID          uuid.UUID         `json:"id"`
	Brand       string            `json:"brand"`
	Name        string            `json:"name"`
	DisplayName string            `json:"display_name"`
	Description string            `json:"description,omitempty"`
	VolumeML    int               `json:"volume_ml,omitempty"`
	BaseCost    valueobject.Money `json:"base_cost"`
	RetailPrice valueobject.Money `json:"retail_price"`
	IsActive    bool              `json:"is_active"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// NewFragranceResponse maps a domain fragrance
func NewFragranceResponse(f *catalog.Fragrance) FragranceResponse {
	return FragranceResponse{
		ID:          f.ID,
		Brand:       f.Brand,
		Name:        f.Name,
		DisplayName: f.DisplayName(),
		Description: f.Description,
		VolumeML:    f.VolumeML,
		BaseCost:    f.BaseCost,
		RetailPrice: f.RetailPrice,
		IsActive:    f.IsActive,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

// NewFragranceListResponse maps a slice of domain fragrances
func NewFragranceListResponse(fragrances []catalog.Fragrance) []FragranceResponse {
	out := make([]FragranceResponse, 0, len(fragrances))
	for i := range fragrances {
		out = append(out, NewFragranceResponse(&fragrances[i]))
	}
	return out
}

// CreateCatalogItemRequest is the storefront entry creation payload
type CreateCatalogItemRequest struct {
	Brand          string     `json:"brand" binding:"required"`
	Name           string     `json:"name" binding:"required"`
	Description    string     `json:"description"`
	ImageURL       string     `json:"image_url"`
	PriceProductID *uuid.UUID `json:"price_product_id"`
	SortOrder      int        `json:"sort_order"`
}

// ToInput converts the request into an application input
func (r CreateCatalogItemRequest) ToInput() appcatalog.CreateCatalogItemInput {
	return appcatalog.CreateCatalogItemInput{
		Brand:          r.Brand,
		Name:           r.Name,
		Description:    r.Description,
		ImageURL:       r.ImageURL,
		PriceProductID: r.PriceProductID,
		SortOrder:      r.SortOrder,
	}
}

// UpdateCatalogItemRequest is the partial storefront entry update payload.
// Setting unlink_price_product drops the price source.
type UpdateCatalogItemRequest struct {
	Brand              *string    `json:"brand"`
	Name               *string    `json:"name"`
	Description        *string    `json:"description"`
	ImageURL           *string    `json:"image_url"`
	SortOrder          *int       `json:"sort_order"`
	IsVisible          *bool      `json:"is_visible"`
	InStock            *bool      `json:"in_stock"`
	PriceProductID     *uuid.UUID `json:"price_product_id"`
	UnlinkPriceProduct bool       `json:"unlink_price_product"`
}

// ToInput converts the request into an application input
func (r UpdateCatalogItemRequest) ToInput() appcatalog.UpdateCatalogItemInput {
	return appcatalog.UpdateCatalogItemInput{
		Brand:              r.Brand,
		Name:               r.Name,
		Description:        r.Description,
		ImageURL:           r.ImageURL,
		SortOrder:          r.SortOrder,
		IsVisible:          r.IsVisible,
		InStock:            r.InStock,
		PriceProductID:     r.PriceProductID,
		UnlinkPriceProduct: r.UnlinkPriceProduct,
	}
}

// CatalogItemResponse is the API representation of a storefront entry
type CatalogItemResponse struct {
	ID             uuid.UUID  `json:"id"`
	Brand          string     `json:"brand"`
	Name           string     `json:"name"`
	DisplayName    string     `json:"display_name"`
	Description    string     `json:"description,omitempty"`
	ImageURL       string     `json:"image_url,omitempty"`
	PriceProductID *uuid.UUID `json:"price_product_id,omitempty"`
	IsVisible      bool       `json:"is_visible"`
	InStock        bool       `json:"in_stock"`
	SortOrder      int        `json:"sort_order"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewCatalogItemResponse maps a domain catalog item
func NewCatalogItemResponse(i *catalog.CatalogItem) CatalogItemResponse {
	return CatalogItemResponse{
		ID:             i.ID,
		Brand:          i.Brand,
		Name:           i.Name,
		DisplayName:    i.DisplayName(),
		Description:    i.Description,
		ImageURL:       i.ImageURL,
		PriceProductID: i.PriceProductID,
		IsVisible:      i.IsVisible,
		InStock:        i.InStock,
		SortOrder:      i.SortOrder,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
}

// NewCatalogItemListResponse maps a slice of domain catalog items
func NewCatalogItemListResponse(items []catalog.CatalogItem) []CatalogItemResponse {
	out := make([]CatalogItemResponse, 0, len(items))
	for i := range items {
		out = append(out, NewCatalogItemResponse(&items[i]))
	}
	return out
}

// CreateReleaseNoteRequest is the release note creation payload
type CreateReleaseNoteRequest struct {
	Version     string `json:"version" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Changes     string `json:"changes"`
}

// ToInput converts the request into an application input
func (r CreateReleaseNoteRequest) ToInput() appcatalog.CreateReleaseNoteInput {
	return appcatalog.CreateReleaseNoteInput{
		Version:     r.Version,
		Title:       r.Title,
		Description: r.Description,
		Changes:     r.Changes,
	}
}

// UpdateReleaseNoteRequest is the partial release note update payload
type UpdateReleaseNoteRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Changes     *string `json:"changes"`
}

// ToInput converts the request into an application input
func (r UpdateReleaseNoteRequest) ToInput() appcatalog.UpdateReleaseNoteInput {
	return appcatalog.UpdateReleaseNoteInput{
		Title:       r.Title,
		Description: r.Description,
		Changes:     r.Changes,
	}
}

// PublishToPartnersRequest controls partner exposure of a release note.
// Omitting max_views means unlimited partner views.
type PublishToPartnersRequest struct {
	MaxViews *int `json:"max_views"`
}

// ReleaseNoteResponse is the API representation of a release note
type ReleaseNoteResponse struct {
	ID                    uuid.UUID `json:"id"`
	Version               string    `json:"version"`
	Title                 string    `json:"title"`
	Description           string    `json:"description,omitempty"`
	Changes               string    `json:"changes,omitempty"`
	IsPublished           bool      `json:"is_published"`
	IsPublishedToPartners bool      `json:"is_published_to_partners"`
	MaxPartnerViews       *int      `json:"max_partner_views,omitempty"`
	PartnerViewCount      int       `json:"partner_view_count"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// NewReleaseNoteResponse maps a domain release note
func NewReleaseNoteResponse(n *catalog.ReleaseNote) ReleaseNoteResponse {
	return ReleaseNoteResponse{
		ID:                    n.ID,
		Version:               n.Version,
		Title:                 n.Title,
		Description:           n.Description,
		Changes:               n.Changes,
		IsPublished:           n.IsPublished,
		IsPublishedToPartners: n.IsPublishedToPartners,
		MaxPartnerViews:       n.MaxPartnerViews,
		PartnerViewCount:      n.PartnerViewCount,
		CreatedAt:             n.CreatedAt,
		UpdatedAt:             n.UpdatedAt,
	}
}

// NewReleaseNoteListResponse maps a slice of domain release notes
func NewReleaseNoteListResponse(notes []catalog.ReleaseNote) []ReleaseNoteResponse {
	out := make([]ReleaseNoteResponse, 0, len(notes))
	for i := range notes {
		out = append(out, NewReleaseNoteResponse(&notes[i]))
	}
	return out
}

func moneyPtr(v *float64) *valueobject.Money {
	if v == nil {
		return nil
	}
	m := valueobject.NewMoneyRUBFromFloat(*v)
	return &m
}
