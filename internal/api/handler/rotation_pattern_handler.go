package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"shiftcare/internal/dto"
	"shiftcare/internal/service"
	"shiftcare/pkg/response"
)

// RotationPatternHandler 轮班模式模块 HTTP 处理器
type RotationPatternHandler struct {
	svc service.RotationPatternService
}

// NewRotationPatternHandler 创建 RotationPatternHandler
func NewRotationPatternHandler(svc service.RotationPatternService) *RotationPatternHandler {
	return &RotationPatternHandler{svc: svc}
}

// isRotationBadRequest 轮班入参类错误统一映射到 400
func isRotationBadRequest(err error) bool {
	return errors.Is(err, service.ErrRotationSequenceEmpty) ||
		errors.Is(err, service.ErrRotationStepInvalid) ||
		errors.Is(err, service.ErrMaxRepetitionsRequired)
}

// Create 创建轮班模式
// POST /api/v1/rotation-patterns
func (h *RotationPatternHandler) Create(c *gin.Context) {
	orgID, ok := MustGetOrganizationID(c)
	if !ok {
		return
	}
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateRotationPatternRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	pattern, err := h.svc.Create(c.Request.Context(), orgID, operatorID, &req)
	if err != nil {
		switch {
		case isRotationBadRequest(err):
			response.BadRequest(c, 17001, err.Error())
		case errors.Is(err, service.ErrShiftTypeNotFound):
			response.NotFound(c, 12003, "班次类型不存在")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, pattern)
}

// Get 查询轮班模式
// GET /api/v1/rotation-patterns/:id
func (h *RotationPatternHandler) Get(c *gin.Context) {
	pattern, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrRotationPatternNotFound) {
			response.NotFound(c, 17002, "轮班模式不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, pattern)
}

// List 列出机构轮班模式
// GET /api/v1/rotation-patterns
func (h *RotationPatternHandler) List(c *gin.Context) {
	orgID, ok := MustGetOrganizationID(c)
	if !ok {
		return
	}

	list, err := h.svc.ListByOrganization(c.Request.Context(), orgID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, list)
}

// Update 更新轮班模式
// PUT /api/v1/rotation-patterns/:id
func (h *RotationPatternHandler) Update(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateRotationPatternRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	pattern, err := h.svc.Update(c.Request.Context(), c.Param("id"), operatorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRotationPatternNotFound):
			response.NotFound(c, 17002, "轮班模式不存在")
		case isRotationBadRequest(err):
			response.BadRequest(c, 17001, err.Error())
		case errors.Is(err, service.ErrShiftTypeNotFound):
			response.NotFound(c, 12003, "班次类型不存在")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, pattern)
}

// Delete 软删除轮班模式
// DELETE /api/v1/rotation-patterns/:id
func (h *RotationPatternHandler) Delete(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), operatorID); err != nil {
		if errors.Is(err, service.ErrRotationPatternNotFound) {
			response.NotFound(c, 17002, "轮班模式不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}
