package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apporder "github.com/scentlab/crm-backend/internal/application/order"
	"github.com/scentlab/crm-backend/internal/domain/order"
	"github.com/scentlab/crm-backend/internal/interfaces/http/dto"
)

// OrderHandler serves order endpoints: CRUD, line management and the
// fulfilment status flow
type OrderHandler struct {
	BaseHandler
	orderService *apporder.OrderService
}

// NewOrderHandler creates an order handler
func NewOrderHandler(orderService *apporder.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		BaseHandler:  NewBaseHandler(logger),
		orderService: orderService,
	}
}

// List handles GET /orders
func (h *OrderHandler) List(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	var req dto.OrderListRequest
	if !h.BindQuery(c, &req) {
		return
	}

	input := apporder.ListOrdersInput{
		Status: order.Status(req.Status),
		Search: req.Search,
		Filter: req.ToFilter(),
	}
	clientID, parseOK := optionalUUID(req.ClientID)
	if !parseOK {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.CodeInvalidQuery, "Invalid client_id parameter"))
		return
	}
	input.ClientID = clientID

	result, err := h.orderService.List(c.Request.Context(), actor, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, dto.NewOrderListResponse(result.Items), dto.MetaFrom(result))
}

// Get handles GET /orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	o, err := h.orderService.Get(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewOrderResponse(o))
}

// Create handles POST /orders.
// Lines are priced server-side in the order's partner context.
func (h *OrderHandler) Create(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	var req dto.CreateOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	o, err := h.orderService.Create(c.Request.Context(), actor, req.ToInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, dto.NewOrderResponse(o))
}

// Update handles PATCH /orders/:id
func (h *OrderHandler) Update(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	o, err := h.orderService.Update(c.Request.Context(), actor, id, req.ToInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewOrderResponse(o))
}

// ChangeStatus handles POST /orders/:id/status
func (h *OrderHandler) ChangeStatus(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.ChangeOrderStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	o, err := h.orderService.ChangeStatus(c.Request.Context(), actor, id, order.Status(req.Status))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewOrderResponse(o))
}

// AddItem handles POST /orders/:id/items
func (h *OrderHandler) AddItem(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.OrderItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	o, err := h.orderService.AddItem(c.Request.Context(), actor, id, req.ToInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewOrderResponse(o))
}

// UpdateItem handles PATCH /orders/:id/items/:itemId
func (h *OrderHandler) UpdateItem(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	orderID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	itemID, ok := h.ParseID(c, "itemId")
	if !ok {
		return
	}

	var req dto.UpdateOrderItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	o, err := h.orderService.UpdateItem(c.Request.Context(), actor, orderID, itemID, req.ToInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewOrderResponse(o))
}

// RemoveItem handles DELETE /orders/:id/items/:itemId
func (h *OrderHandler) RemoveItem(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	orderID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	itemID, ok := h.ParseID(c, "itemId")
	if !ok {
		return
	}

	o, err := h.orderService.RemoveItem(c.Request.Context(), actor, orderID, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewOrderResponse(o))
}

// Delete handles DELETE /orders/:id
func (h *OrderHandler) Delete(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
