package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"shiftcare/internal/dto"
	"shiftcare/internal/service"
	"shiftcare/pkg/response"
)

// OrganizationHandler 机构模块 HTTP 处理器
type OrganizationHandler struct {
	svc service.OrganizationService
}

// NewOrganizationHandler 创建 OrganizationHandler
func NewOrganizationHandler(svc service.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{svc: svc}
}

// Create 创建机构（仅平台管理员）
// POST /api/v1/organizations
func (h *OrganizationHandler) Create(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	org, err := h.svc.Create(c.Request.Context(), operatorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidOrgCategory):
			response.BadRequest(c, 20001, "机构类别无效")
		case errors.Is(err, service.ErrInvalidTimezone):
			response.BadRequest(c, 20002, "时区标识无效")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, org)
}

// Get 查询机构详情
// GET /api/v1/organizations/:id
func (h *OrganizationHandler) Get(c *gin.Context) {
	org, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrOrganizationNotFound) {
			response.NotFound(c, 20003, "机构不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, org)
}

// List 分页列出机构
// GET /api/v1/organizations?page=1&page_size=20
func (h *OrganizationHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	list, total, err := h.svc.List(c.Request.Context(), page, pageSize)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, list, total, page, pageSize)
}

// Update 更新机构基础信息
// PUT /api/v1/organizations/:id
func (h *OrganizationHandler) Update(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	org, err := h.svc.Update(c.Request.Context(), c.Param("id"), operatorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrganizationNotFound):
			response.NotFound(c, 20003, "机构不存在")
		case errors.Is(err, service.ErrInvalidOrgCategory):
			response.BadRequest(c, 20001, "机构类别无效")
		case errors.Is(err, service.ErrInvalidTimezone):
			response.BadRequest(c, 20002, "时区标识无效")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, org)
}

// UpdateSettings 整体替换机构设置
// PUT /api/v1/organizations/:id/settings
func (h *OrganizationHandler) UpdateSettings(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	org, err := h.svc.UpdateSettings(c.Request.Context(), c.Param("id"), operatorID, req.Settings)
	if err != nil {
		if errors.Is(err, service.ErrOrganizationNotFound) {
			response.NotFound(c, 20003, "机构不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, org)
}

// Delete 软删除机构
// DELETE /api/v1/organizations/:id
func (h *OrganizationHandler) Delete(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), operatorID); err != nil {
		if errors.Is(err, service.ErrOrganizationNotFound) {
			response.NotFound(c, 20003, "机构不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}
