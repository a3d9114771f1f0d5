package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"shiftcare/internal/dto"
	"shiftcare/internal/service"
	"shiftcare/pkg/response"
)

// ShiftTypeHandler 班次类型模块 HTTP 处理器
type ShiftTypeHandler struct {
	svc service.ShiftTypeService
}

// NewShiftTypeHandler 创建 ShiftTypeHandler
func NewShiftTypeHandler(svc service.ShiftTypeService) *ShiftTypeHandler {
	return &ShiftTypeHandler{svc: svc}
}

// isShiftTypeBadRequest 输入类错误统一映射到 400
func isShiftTypeBadRequest(err error) bool {
	return errors.Is(err, service.ErrInvalidTimeFormat) ||
		errors.Is(err, service.ErrInvalidWeekday) ||
		errors.Is(err, service.ErrInvalidTimezone) ||
		errors.Is(err, service.ErrInvalidOrgCategory)
}

// Create 创建班次类型
// POST /api/v1/shift-types
func (h *ShiftTypeHandler) Create(c *gin.Context) {
	orgID, ok := MustGetOrganizationID(c)
	if !ok {
		return
	}
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateShiftTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	st, err := h.svc.Create(c.Request.Context(), orgID, operatorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrShiftTypeNameTaken):
			response.Conflict(c, 12001, "该机构下已存在同名班次类型")
		case isShiftTypeBadRequest(err):
			response.BadRequest(c, 12002, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, st)
}

// Get 查询班次类型
// GET /api/v1/shift-types/:id
func (h *ShiftTypeHandler) Get(c *gin.Context) {
	st, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrShiftTypeNotFound) {
			response.NotFound(c, 12003, "班次类型不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, st)
}

// List 列出机构班次类型
// GET /api/v1/shift-types?include_inactive=true
func (h *ShiftTypeHandler) List(c *gin.Context) {
	orgID, ok := MustGetOrganizationID(c)
	if !ok {
		return
	}

	includeInactive := c.Query("include_inactive") == "true"
	list, err := h.svc.ListByOrganization(c.Request.Context(), orgID, includeInactive)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, list)
}

// Update 更新班次类型
// PUT /api/v1/shift-types/:id
func (h *ShiftTypeHandler) Update(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateShiftTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	st, err := h.svc.Update(c.Request.Context(), c.Param("id"), operatorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrShiftTypeNotFound):
			response.NotFound(c, 12003, "班次类型不存在")
		case errors.Is(err, service.ErrShiftTypeNameTaken):
			response.Conflict(c, 12001, "该机构下已存在同名班次类型")
		case isShiftTypeBadRequest(err):
			response.BadRequest(c, 12002, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, st)
}

// Delete 停用并软删除班次类型
// DELETE /api/v1/shift-types/:id
func (h *ShiftTypeHandler) Delete(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), operatorID); err != nil {
		if errors.Is(err, service.ErrShiftTypeNotFound) {
			response.NotFound(c, 12003, "班次类型不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// ListTemplates 列出平台班次模板
// GET /api/v1/shift-types/templates?category=care_home
func (h *ShiftTypeHandler) ListTemplates(c *gin.Context) {
	list, err := h.svc.ListTemplates(c.Request.Context(), c.Query("category"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidOrgCategory) {
			response.BadRequest(c, 12002, "机构类别无效")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, list)
}

// ApplyTemplate 套用模板生成班次类型
// POST /api/v1/shift-types/apply-template
func (h *ShiftTypeHandler) ApplyTemplate(c *gin.Context) {
	orgID, ok := MustGetOrganizationID(c)
	if !ok {
		return
	}
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ApplyTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	st, err := h.svc.ApplyTemplate(c.Request.Context(), orgID, operatorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrShiftTemplateNotFound):
			response.NotFound(c, 12004, "班次模板不存在")
		case errors.Is(err, service.ErrShiftTypeNameTaken):
			response.Conflict(c, 12001, "该机构下已存在同名班次类型")
		case isShiftTypeBadRequest(err):
			response.BadRequest(c, 12002, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, st)
}
