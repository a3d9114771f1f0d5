package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"shiftcare/internal/dto"
	"shiftcare/internal/service"
	"shiftcare/pkg/response"
)

// PaymentConfigHandler 班次支付配置模块 HTTP 处理器
type PaymentConfigHandler struct {
	svc service.PaymentConfigService
}

// NewPaymentConfigHandler 创建 PaymentConfigHandler
func NewPaymentConfigHandler(svc service.PaymentConfigService) *PaymentConfigHandler {
	return &PaymentConfigHandler{svc: svc}
}

// Create 创建支付配置；同班次类型的既有激活配置会被自动停用
// POST /api/v1/payment-configs
func (h *PaymentConfigHandler) Create(c *gin.Context) {
	orgID, ok := MustGetOrganizationID(c)
	if !ok {
		return
	}
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePaymentConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	cfg, err := h.svc.Create(c.Request.Context(), orgID, operatorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPaymentMethod):
			response.BadRequest(c, 13001, "支付方式无效")
		case errors.Is(err, service.ErrPaymentParamsMismatch):
			response.BadRequest(c, 13002, "支付参数分支与支付方式不匹配")
		case errors.Is(err, service.ErrInvalidEffectiveRange):
			response.BadRequest(c, 13003, "生效区间无效")
		case errors.Is(err, service.ErrShiftTypeNotFound):
			response.NotFound(c, 12003, "班次类型不存在")
		case errors.Is(err, service.ErrPaymentConfigForeign):
			response.Forbidden(c, 13004, "支付配置不属于该机构")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, cfg)
}

// Get 查询支付配置
// GET /api/v1/payment-configs/:id
func (h *PaymentConfigHandler) Get(c *gin.Context) {
	cfg, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrPaymentConfigNotFound) {
			response.NotFound(c, 13005, "支付配置不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, cfg)
}

// GetActive 查询班次类型当前激活的支付配置
// GET /api/v1/payment-configs/active?shift_type_id=xxx
func (h *PaymentConfigHandler) GetActive(c *gin.Context) {
	orgID, ok := MustGetOrganizationID(c)
	if !ok {
		return
	}

	shiftTypeID := c.Query("shift_type_id")
	if shiftTypeID == "" {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	cfg, err := h.svc.GetActiveByShiftType(c.Request.Context(), orgID, shiftTypeID)
	if err != nil {
		if errors.Is(err, service.ErrPaymentConfigNotFound) {
			response.NotFound(c, 13005, "支付配置不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, cfg)
}

// List 列出机构全部支付配置
// GET /api/v1/payment-configs
func (h *PaymentConfigHandler) List(c *gin.Context) {
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

// Update 更新支付配置
// PUT /api/v1/payment-configs/:id
func (h *PaymentConfigHandler) Update(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdatePaymentConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	cfg, err := h.svc.Update(c.Request.Context(), c.Param("id"), operatorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentConfigNotFound):
			response.NotFound(c, 13005, "支付配置不存在")
		case errors.Is(err, service.ErrInvalidPaymentMethod):
			response.BadRequest(c, 13001, "支付方式无效")
		case errors.Is(err, service.ErrPaymentParamsMismatch):
			response.BadRequest(c, 13002, "支付参数分支与支付方式不匹配")
		case errors.Is(err, service.ErrInvalidEffectiveRange):
			response.BadRequest(c, 13003, "生效区间无效")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, cfg)
}

// Deactivate 停用支付配置
// POST /api/v1/payment-configs/:id/deactivate
func (h *PaymentConfigHandler) Deactivate(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.svc.Deactivate(c.Request.Context(), c.Param("id"), operatorID); err != nil {
		if errors.Is(err, service.ErrPaymentConfigNotFound) {
			response.NotFound(c, 13005, "支付配置不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// Delete 软删除支付配置
// DELETE /api/v1/payment-configs/:id
func (h *PaymentConfigHandler) Delete(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), operatorID); err != nil {
		if errors.Is(err, service.ErrPaymentConfigNotFound) {
			response.NotFound(c, 13005, "支付配置不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}
