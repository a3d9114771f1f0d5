package handler

import (
	"github.com/gin-gonic/gin"

	"shiftcare/internal/service"
	"shiftcare/pkg/response"
)

// MenuHandler 菜单模块 HTTP 处理器
type MenuHandler struct {
	svc service.MenuService
}

// NewMenuHandler 创建 MenuHandler
func NewMenuHandler(svc service.MenuService) *MenuHandler {
	return &MenuHandler{svc: svc}
}

// GetMenu 返回当前用户可见的菜单项。
// 解析失败时服务层已降级为兜底菜单，本接口不返回错误。
// GET /api/v1/menu
func (h *MenuHandler) GetMenu(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}
	orgID, ok := MustGetOrganizationID(c)
	if !ok {
		return
	}

	items := h.svc.GetMenu(c.Request.Context(), &service.ActorContext{
		UserID:         userID,
		OrganizationID: orgID,
		Role:           role,
	})
	response.OK(c, items)
}
