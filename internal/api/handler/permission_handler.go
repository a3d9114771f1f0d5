package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"shiftcare/internal/service"
	"shiftcare/pkg/response"
)

// PermissionHandler 权限/角色模块 HTTP 处理器
type PermissionHandler struct {
	svc service.PermissionService
}

// NewPermissionHandler 创建 PermissionHandler
func NewPermissionHandler(svc service.PermissionService) *PermissionHandler {
	return &PermissionHandler{svc: svc}
}

// ListPermissions 列出权限目录
// GET /api/v1/permissions
func (h *PermissionHandler) ListPermissions(c *gin.Context) {
	list, err := h.svc.ListPermissions(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, list)
}

// ListRoles 列出角色及其权限键集
// GET /api/v1/roles
func (h *PermissionHandler) ListRoles(c *gin.Context) {
	list, err := h.svc.ListRoles(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, list)
}

// ResolveRolePermissions 解析指定角色的权限键集
// GET /api/v1/roles/:name/permissions
func (h *PermissionHandler) ResolveRolePermissions(c *gin.Context) {
	perms, err := h.svc.ResolvePermissions(c.Request.Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, service.ErrRoleNotFound) {
			response.NotFound(c, 22001, "角色不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, perms)
}
