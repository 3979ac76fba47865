package dto

import (
	"time"

	"github.com/google/uuid"

	appcatalog "github.com/scentlab/crm-backend/internal/application/catalog"
	"github.com/scentlab/crm-backend/internal/domain/catalog"
	"github.com/scentlab/crm-backend/internal/domain/shared/valueobject"
)

// PriceProductListRequest carries price-list product query parameters
type PriceProductListRequest struct {
	ListRequest
	OnlyActive  bool `form:"only_active"`
	OnlyInStock bool `form:"only_in_stock"`
}

// PriceProductRow is one supplier price-list row in an import
type PriceProductRow struct {
	ExternalArticle string  `json:"external_article" binding:"required"`
	Brand           string  `json:"brand"`
	Name            string  `json:"name" binding:"required"`
	VolumeML        int     `json:"volume_ml"`
	PurchasePrice   float64 `json:"purchase_price"`
	PartnerPrice    float64 `json:"partner_price"`
	InStock         bool    `json:"in_stock"`
}

// ToInput converts the row into an application input
func (r PriceProductRow) ToInput() appcatalog.UpsertPriceProductInput {
	return appcatalog.UpsertPriceProductInput{
		ExternalArticle: r.ExternalArticle,
		Brand:           r.Brand,
		Name:            r.Name,
		VolumeML:        r.VolumeML,
		PurchasePrice:   valueobject.NewMoneyRUBFromFloat(r.PurchasePrice),
		PartnerPrice:    valueobject.NewMoneyRUBFromFloat(r.PartnerPrice),
		InStock:         r.InStock,
	}
}

// PriceImportRequest is a batch price-list import payload. Source names
// where the rows came from and lands in the import audit trail.
type PriceImportRequest struct {
	Source string            `json:"source"`
	Rows   []PriceProductRow `json:"rows" binding:"required,min=1"`
}

// ToInput converts the batch into an application input
func (r PriceImportRequest) ToInput() appcatalog.ImportPriceListInput {
	rows := make([]appcatalog.UpsertPriceProductInput, 0, len(r.Rows))
	for _, row := range r.Rows {
		rows = append(rows, row.ToInput())
	}
	return appcatalog.ImportPriceListInput{Source: r.Source, Rows: rows}
}

// SetStockRequest toggles product availability
type SetStockRequest struct {
	InStock *bool `json:"in_stock" binding:"required"`
}

// PriceProductResponse is the API representation of a price-list product
type PriceProductResponse struct {
	ID              uuid.UUID         `json:"id"`
	ExternalArticle string            `json:"external_article"`
	Brand           string            `json:"brand,omitempty"`
	Name            string            `json:"name"`
	DisplayName     string            `json:"display_name"`
	VolumeML        int               `json:"volume_ml,omitempty"`
	PurchasePrice   valueobject.Money `json:"purchase_price"`
	PartnerPrice    valueobject.Money `json:"partner_price"`
	IsActive        bool              `json:"is_active"`
	InStock         bool              `json:"in_stock"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// NewPriceProductResponse maps a domain price-list product
func NewPriceProductResponse(p *catalog.PriceProduct) PriceProductResponse {
	return PriceProductResponse{
		ID:              p.ID,
		ExternalArticle: p.ExternalArticle,
		Brand:           p.Brand,
		Name:            p.Name,
		DisplayName:     p.DisplayName(),
		VolumeML:        p.VolumeML,
		PurchasePrice:   p.PurchasePrice,
		PartnerPrice:    p.PartnerPrice,
		IsActive:        p.IsActive,
		InStock:         p.InStock,
		UpdatedAt:       p.UpdatedAt,
	}
}

// NewPriceProductListResponse maps a slice of domain price-list products
func NewPriceProductListResponse(products []catalog.PriceProduct) []PriceProductResponse {
	out := make([]PriceProductResponse, 0, len(products))
	for i := range products {
		out = append(out, NewPriceProductResponse(&products[i]))
	}
	return out
}

// ImportResultResponse summarizes a price-list import
type ImportResultResponse struct {
	ImportID uuid.UUID               `json:"import_id"`
	Created  int                     `json:"created"`
	Updated  int                     `json:"updated"`
	Failed   []ImportFailureResponse `json:"failed"`
}

// ImportFailureResponse records one rejected import row
type ImportFailureResponse struct {
	ExternalArticle string `json:"external_article"`
	Reason          string `json:"reason"`
}

// NewImportResultResponse maps an application import result
func NewImportResultResponse(result appcatalog.ImportResult) ImportResultResponse {
	failed := make([]ImportFailureResponse, 0, len(result.Failed))
	for _, f := range result.Failed {
		failed = append(failed, ImportFailureResponse{
			ExternalArticle: f.ExternalArticle,
			Reason:          f.Reason,
		})
	}
	return ImportResultResponse{
		ImportID: result.ImportID,
		Created:  result.Created,
		Updated:  result.Updated,
		Failed:   failed,
	}
}

// PriceImportResponse is the API representation of an import audit record
type PriceImportResponse struct {
	ID          uuid.UUID                 `json:"id"`
	Source      string                    `json:"source"`
	Status      catalog.PriceImportStatus `json:"status"`
	TotalRows   int                       `json:"total_rows"`
	CreatedRows int                       `json:"created_rows"`
	UpdatedRows int                       `json:"updated_rows"`
	FailedRows  int                       `json:"failed_rows"`
	Failures    []ImportFailureResponse   `json:"failures"`
	ImportedBy  uuid.UUID                 `json:"imported_by"`
	CreatedAt   time.Time                 `json:"created_at"`
	CompletedAt *time.Time                `json:"completed_at,omitempty"`
}

// NewPriceImportResponse maps a domain import audit record
func NewPriceImportResponse(p *catalog.PriceImport) PriceImportResponse {
	failures := make([]ImportFailureResponse, 0, len(p.Failures))
	for _, f := range p.Failures {
		failures = append(failures, ImportFailureResponse{
			ExternalArticle: f.ExternalArticle,
			Reason:          f.Reason,
		})
	}
	return PriceImportResponse{
		ID:          p.ID,
		Source:      p.Source,
		Status:      p.Status,
		TotalRows:   p.TotalRows,
		CreatedRows: p.CreatedRows,
		UpdatedRows: p.UpdatedRows,
		FailedRows:  p.FailedRows(),
		Failures:    failures,
		ImportedBy:  p.ImportedBy,
		CreatedAt:   p.CreatedAt,
		CompletedAt: p.CompletedAt,
	}
}

// NewPriceImportListResponse maps a slice of import audit records
func NewPriceImportListResponse(imports []catalog.PriceImport) []PriceImportResponse {
	out := make([]PriceImportResponse, 0, len(imports))
	for i := range imports {
		out = append(out, NewPriceImportResponse(&imports[i]))
	}
	return out
}

// PriceSearchRequest carries price search query parameters.
// partner_id and client_id select the markup context of the preview.
type PriceSearchRequest struct {
	ListRequest
	Query     string `form:"q"`
	PartnerID string `form:"partner_id"`
	ClientID  string `form:"client_id"`
}

// PriceSearchResultResponse is one row of a price search
type PriceSearchResultResponse struct {
	Kind        string            `json:"kind"`
	ID          uuid.UUID         `json:"id"`
	Brand       string            `json:"brand,omitempty"`
	Name        string            `json:"name"`
	DisplayName string            `json:"display_name"`
	VolumeML    int               `json:"volume_ml,omitempty"`
	InStock     bool              `json:"in_stock"`
	BasePrice   valueobject.Money `json:"base_price"`
	ClientPrice valueobject.Money `json:"client_price"`
}

// NewPriceSearchResponse maps application search results
func NewPriceSearchResponse(results []appcatalog.PriceSearchResult) []PriceSearchResultResponse {
	out := make([]PriceSearchResultResponse, 0, len(results))
	for _, r := range results {
		out = append(out, PriceSearchResultResponse{
			Kind:        r.Kind,
			ID:          r.ID,
			Brand:       r.Brand,
			Name:        r.Name,
			DisplayName: r.DisplayName,
			VolumeML:    r.VolumeML,
			InStock:     r.InStock,
			BasePrice:   r.BasePrice,
			ClientPrice: r.ClientPrice,
		})
	}
	return out
}

// SetPartnerPriceRequest sets a per-partner fragrance price agreement
type SetPartnerPriceRequest struct {
	PurchasePrice          float64 `json:"purchase_price"`
	RecommendedClientPrice float64 `json:"recommended_client_price"`
}

// ToInput converts the request into an application input
func (r SetPartnerPriceRequest) ToInput() appcatalog.SetPartnerPriceInput {
	return appcatalog.SetPartnerPriceInput{
		PurchasePrice:          valueobject.NewMoneyRUBFromFloat(r.PurchasePrice),
		RecommendedClientPrice: valueobject.NewMoneyRUBFromFloat(r.RecommendedClientPrice),
	}
}

// PartnerPriceResponse is a per-partner fragrance price agreement
type PartnerPriceResponse struct {
	ID                     uuid.UUID         `json:"id"`
	PartnerID              uuid.UUID         `json:"partner_id"`
	FragranceID            uuid.UUID         `json:"fragrance_id"`
	PurchasePrice          valueobject.Money `json:"purchase_price"`
	RecommendedClientPrice valueobject.Money `json:"recommended_client_price"`
	UpdatedAt              time.Time         `json:"updated_at"`
}

// NewPartnerPriceResponse maps a domain partner price agreement
func NewPartnerPriceResponse(p *catalog.PartnerPrice) PartnerPriceResponse {
	return PartnerPriceResponse{
		ID:                     p.ID,
		PartnerID:              p.PartnerID,
		FragranceID:            p.FragranceID,
		PurchasePrice:          p.PurchasePrice,
		RecommendedClientPrice: p.RecommendedClientPrice,
		UpdatedAt:              p.UpdatedAt,
	}
}

// NewPartnerPriceListResponse maps a slice of partner price agreements
func NewPartnerPriceListResponse(prices []catalog.PartnerPrice) []PartnerPriceResponse {
	out := make([]PartnerPriceResponse, 0, len(prices))
	for i := range prices {
		out = append(out, NewPartnerPriceResponse(&prices[i]))
	}
	return out
}
