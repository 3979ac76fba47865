package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appcatalog "github.com/scentlab/crm-backend/internal/application/catalog"
	"github.com/scentlab/crm-backend/internal/interfaces/http/dto"
)

// ReleaseHandler serves release note endpoints
type ReleaseHandler struct {
	BaseHandler
	releaseService *appcatalog.ReleaseService
}

// NewReleaseHandler creates a release handler
func NewReleaseHandler(releaseService *appcatalog.ReleaseService, logger *zap.Logger) *ReleaseHandler {
	return &ReleaseHandler{
		BaseHandler:    NewBaseHandler(logger),
		releaseService: releaseService,
	}
}

// List handles GET /releases.
// Partner users only see notes published to partners with views left.
func (h *ReleaseHandler) List(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	var req dto.ListRequest
	if !h.BindQuery(c, &req) {
		return
	}

	result, err := h.releaseService.List(c.Request.Context(), actor, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, dto.NewReleaseNoteListResponse(result.Items), dto.MetaFrom(result))
}

// Get handles GET /releases/:id.
// A partner read counts against the note's view cap.
func (h *ReleaseHandler) Get(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	note, err := h.releaseService.Get(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewReleaseNoteResponse(note))
}

// Create handles POST /releases
func (h *ReleaseHandler) Create(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	var req dto.CreateReleaseNoteRequest
	if !h.BindJSON(c, &req) {
		return
	}

	note, err := h.releaseService.Create(c.Request.Context(), actor, req.ToInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, dto.NewReleaseNoteResponse(note))
}

// Update handles PATCH /releases/:id
func (h *ReleaseHandler) Update(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateReleaseNoteRequest
	if !h.BindJSON(c, &req) {
		return
	}

	note, err := h.releaseService.Update(c.Request.Context(), actor, id, req.ToInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewReleaseNoteResponse(note))
}

// Publish handles POST /releases/:id/publish
func (h *ReleaseHandler) Publish(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	note, err := h.releaseService.Publish(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewReleaseNoteResponse(note))
}

// Unpublish handles POST /releases/:id/unpublish
func (h *ReleaseHandler) Unpublish(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	note, err := h.releaseService.Unpublish(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewReleaseNoteResponse(note))
}

// PublishToPartners handles POST /releases/:id/publish-partners
func (h *ReleaseHandler) PublishToPartners(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.PublishToPartnersRequest
	// An empty body means unlimited partner views
	_ = c.ShouldBindJSON(&req)

	note, err := h.releaseService.PublishToPartners(c.Request.Context(), actor, id,
		appcatalog.PublishToPartnersInput{MaxViews: req.MaxViews})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewReleaseNoteResponse(note))
}

// Delete handles DELETE /releases/:id
func (h *ReleaseHandler) Delete(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.releaseService.Delete(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
