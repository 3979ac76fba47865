package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appcrm "github.com/scentlab/crm-backend/internal/application/crm"
	"github.com/scentlab/crm-backend/internal/interfaces/http/dto"
)

// ClientHandler serves client CRUD endpoints
type ClientHandler struct {
	BaseHandler
	clientService *appcrm.ClientService
}

// NewClientHandler creates a client handler
func NewClientHandler(clientService *appcrm.ClientService, logger *zap.Logger) *ClientHandler {
	return &ClientHandler{
		BaseHandler:   NewBaseHandler(logger),
		clientService: clientService,
	}
}

// List handles GET /clients
func (h *ClientHandler) List(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	var req dto.ClientListRequest
	if !h.BindQuery(c, &req) {
		return
	}

	result, err := h.clientService.List(c.Request.Context(), actor, appcrm.ListClientsInput{
		Search: req.Search,
		City:   req.City,
		Source: req.Source,
		Filter: req.ToFilter(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, dto.NewClientListResponse(result.Items), dto.MetaFrom(result))
}

// Get handles GET /clients/:id
func (h *ClientHandler) Get(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	client, err := h.clientService.Get(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewClientResponse(client))
}

// Create handles POST /clients
func (h *ClientHandler) Create(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	var req dto.CreateClientRequest
	if !h.BindJSON(c, &req) {
		return
	}

	client, err := h.clientService.Create(c.Request.Context(), actor, req.ToInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, dto.NewClientResponse(client))
}

// Update handles PATCH /clients/:id
func (h *ClientHandler) Update(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateClientRequest
	if !h.BindJSON(c, &req) {
		return
	}

	client, err := h.clientService.Update(c.Request.Context(), actor, id, req.ToInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewClientResponse(client))
}

// Delete handles DELETE /clients/:id
func (h *ClientHandler) Delete(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.clientService.Delete(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
