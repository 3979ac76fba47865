package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appcatalog "github.com/scentlab/crm-backend/internal/application/catalog"
	"github.com/scentlab/crm-backend/internal/interfaces/http/dto"
)

// PriceHandler serves the supplier price list: product listing, batch
// import, price search and per-partner price agreements
type PriceHandler struct {
	BaseHandler
	productService *appcatalog.PriceProductService
	priceService   *appcatalog.PriceService
}

// NewPriceHandler creates a price handler
func NewPriceHandler(
	productService *appcatalog.PriceProductService,
	priceService *appcatalog.PriceService,
	logger *zap.Logger,
) *PriceHandler {
	return &PriceHandler{
		BaseHandler:    NewBaseHandler(logger),
		productService: productService,
		priceService:   priceService,
	}
}

// ListProducts handles GET /price-products
func (h *PriceHandler) ListProducts(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	var req dto.PriceProductListRequest
	if !h.BindQuery(c, &req) {
		return
	}

	result, err := h.productService.List(c.Request.Context(), actor, appcatalog.ListPriceProductsInput{
		Search:      req.Search,
		OnlyActive:  req.OnlyActive,
		OnlyInStock: req.OnlyInStock,
		Filter:      req.ToFilter(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, dto.NewPriceProductListResponse(result.Items), dto.MetaFrom(result))
}

// GetProduct handles GET /price-products/:id
func (h *PriceHandler) GetProduct(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.Get(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewPriceProductResponse(product))
}

// Import handles POST /price-products/import.
// Rows are upserted by external article; bad rows are reported, not fatal.
func (h *PriceHandler) Import(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	var req dto.PriceImportRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.productService.Import(c.Request.Context(), actor, req.ToInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewImportResultResponse(result))
}

// ListImports handles GET /price-imports
func (h *PriceHandler) ListImports(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	var req dto.ListRequest
	if !h.BindQuery(c, &req) {
		return
	}

	result, err := h.productService.ListImports(c.Request.Context(), actor, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, dto.NewPriceImportListResponse(result.Items), dto.MetaFrom(result))
}

// GetImport handles GET /price-imports/:id
func (h *PriceHandler) GetImport(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	record, err := h.productService.GetImport(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewPriceImportResponse(record))
}

// SetStock handles PUT /price-products/:id/stock
func (h *PriceHandler) SetStock(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.SetStockRequest
	if !h.BindJSON(c, &req) {
		return
	}

	product, err := h.productService.SetStock(c.Request.Context(), actor, id, *req.InStock)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewPriceProductResponse(product))
}

// DeactivateProduct handles DELETE /price-products/:id
func (h *PriceHandler) DeactivateProduct(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.productService.Deactivate(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Search handles GET /price/search.
// partner_id and client_id select the markup context of the preview
// price; partner-bound users always search in their own context.
func (h *PriceHandler) Search(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	var req dto.PriceSearchRequest
	if !h.BindQuery(c, &req) {
		return
	}

	input := appcatalog.PriceSearchInput{
		Query:  req.Query,
		Filter: req.ToFilter(),
	}

	var parseOK bool
	if input.PartnerID, parseOK = optionalUUID(req.PartnerID); !parseOK {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.CodeInvalidQuery, "Invalid partner_id parameter"))
		return
	}
	if input.ClientID, parseOK = optionalUUID(req.ClientID); !parseOK {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.CodeInvalidQuery, "Invalid client_id parameter"))
		return
	}

	results, err := h.priceService.Search(c.Request.Context(), actor, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewPriceSearchResponse(results))
}

// ListPartnerPrices handles GET /partners/:id/prices
func (h *PriceHandler) ListPartnerPrices(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	partnerID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	prices, err := h.priceService.ListPartnerPrices(c.Request.Context(), actor, partnerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewPartnerPriceListResponse(prices))
}

// SetPartnerPrice handles PUT /partners/:id/prices/:fragranceId
func (h *PriceHandler) SetPartnerPrice(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	partnerID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	fragranceID, ok := h.ParseID(c, "fragranceId")
	if !ok {
		return
	}

	var req dto.SetPartnerPriceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	price, err := h.priceService.SetPartnerPrice(c.Request.Context(), actor, partnerID, fragranceID, req.ToInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewPartnerPriceResponse(price))
}

// RemovePartnerPrice handles DELETE /partners/:id/prices/:fragranceId
func (h *PriceHandler) RemovePartnerPrice(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	partnerID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	fragranceID, ok := h.ParseID(c, "fragranceId")
	if !ok {
		return
	}

	if err := h.priceService.RemovePartnerPrice(c.Request.Context(), actor, partnerID, fragranceID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// optionalUUID parses an optional query parameter into a UUID pointer
func optionalUUID(value string) (*uuid.UUID, bool) {
	if value == "" {
		return nil, true
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, false
	}
	return &id, true
}
