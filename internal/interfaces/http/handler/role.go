package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appidentity "github.com/scentlab/crm-backend/internal/application/identity"
	"github.com/scentlab/crm-backend/internal/interfaces/http/dto"
)

// RoleHandler serves role administration endpoints.
// Access is gated by the roles.manage permission at the router level.
type RoleHandler struct {
	BaseHandler
	roleService *appidentity.RoleService
}

// NewRoleHandler creates a role handler
func NewRoleHandler(roleService *appidentity.RoleService, logger *zap.Logger) *RoleHandler {
	return &RoleHandler{
		BaseHandler: NewBaseHandler(logger),
		roleService: roleService,
	}
}

// List handles GET /roles
func (h *RoleHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if !h.BindQuery(c, &req) {
		return
	}

	result, err := h.roleService.List(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, dto.NewRoleListResponse(result.Items), dto.MetaFrom(result))
}

// Get handles GET /roles/:id
func (h *RoleHandler) Get(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	role, err := h.roleService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewRoleResponse(role))
}

// Create handles POST /roles
func (h *RoleHandler) Create(c *gin.Context) {
	var req dto.CreateRoleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	role, err := h.roleService.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, dto.NewRoleResponse(role))
}

// Update handles PATCH /roles/:id
func (h *RoleHandler) Update(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateRoleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	role, err := h.roleService.Update(c.Request.Context(), id, req.ToInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewRoleResponse(role))
}

// SetPermissions handles PUT /roles/:id/permissions
func (h *RoleHandler) SetPermissions(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.SetPermissionsRequest
	if !h.BindJSON(c, &req) {
		return
	}

	role, err := h.roleService.SetPermissions(c.Request.Context(), id, req.Permissions)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewRoleResponse(role))
}

// Grant handles POST /roles/:id/permissions
func (h *RoleHandler) Grant(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.PermissionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	role, err := h.roleService.Grant(c.Request.Context(), id, req.Permission)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewRoleResponse(role))
}

// Revoke handles DELETE /roles/:id/permissions/:key
func (h *RoleHandler) Revoke(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	role, err := h.roleService.Revoke(c.Request.Context(), id, c.Param("key"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewRoleResponse(role))
}

// Delete handles DELETE /roles/:id
func (h *RoleHandler) Delete(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.roleService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
