package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"shiftcare/internal/dto"
	"shiftcare/internal/service"
	"shiftcare/pkg/response"
)

// StaffRateHandler 员工费率覆盖模块 HTTP 处理器
type StaffRateHandler struct {
	svc service.StaffRateService
}

// NewStaffRateHandler 创建 StaffRateHandler
func NewStaffRateHandler(svc service.StaffRateService) *StaffRateHandler {
	return &StaffRateHandler{svc: svc}
}

// Create 创建员工费率覆盖
// POST /api/v1/staff-rates
func (h *StaffRateHandler) Create(c *gin.Context) {
	orgID, ok := MustGetOrganizationID(c)
	if !ok {
		return
	}
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateStaffRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	rate, err := h.svc.Create(c.Request.Context(), orgID, operatorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStaffRateEmpty):
			response.BadRequest(c, 14001, err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 21003, "用户不存在")
		case errors.Is(err, service.ErrShiftTypeNotFound):
			response.NotFound(c, 12003, "班次类型不存在")
		case errors.Is(err, service.ErrPaymentConfigNotFound):
			response.NotFound(c, 13005, "支付配置不存在")
		case errors.Is(err, service.ErrInvalidEffectiveRange):
			response.BadRequest(c, 13003, "生效区间无效")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, rate)
}

// Get 查询员工费率覆盖
// GET /api/v1/staff-rates/:id
func (h *StaffRateHandler) Get(c *gin.Context) {
	rate, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrStaffRateNotFound) {
			response.NotFound(c, 14002, "员工费率覆盖不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, rate)
}

// List 列出费率覆盖；带 user_id 时按员工过滤，否则分页列出机构全部
// GET /api/v1/staff-rates?user_id=xxx
func (h *StaffRateHandler) List(c *gin.Context) {
	orgID, ok := MustGetOrganizationID(c)
	if !ok {
		return
	}

	if userID := c.Query("user_id"); userID != "" {
		list, err := h.svc.ListByUser(c.Request.Context(), orgID, userID)
		if err != nil {
			response.InternalError(c)
			return
		}
		response.OK(c, list)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	list, total, err := h.svc.ListByOrganization(c.Request.Context(), orgID, page, pageSize)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, list, total, page, pageSize)
}

// Update 更新员工费率覆盖
// PUT /api/v1/staff-rates/:id
func (h *StaffRateHandler) Update(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateStaffRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	rate, err := h.svc.Update(c.Request.Context(), c.Param("id"), operatorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStaffRateNotFound):
			response.NotFound(c, 14002, "员工费率覆盖不存在")
		case errors.Is(err, service.ErrStaffRateEmpty):
			response.BadRequest(c, 14001, err.Error())
		case errors.Is(err, service.ErrInvalidEffectiveRange):
			response.BadRequest(c, 13003, "生效区间无效")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, rate)
}

// Delete 软删除员工费率覆盖
// DELETE /api/v1/staff-rates/:id
func (h *StaffRateHandler) Delete(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), operatorID); err != nil {
		if errors.Is(err, service.ErrStaffRateNotFound) {
			response.NotFound(c, 14002, "员工费率覆盖不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// ResolveEffectiveRate 解析员工在指定班次类型下的生效费率。
// 优先取员工覆盖费率，无覆盖时回退到班次类型的激活支付配置。
// GET /api/v1/staff-rates/effective?user_id=xxx&shift_type_id=xxx
func (h *StaffRateHandler) ResolveEffectiveRate(c *gin.Context) {
	orgID, ok := MustGetOrganizationID(c)
	if !ok {
		return
	}

	userID := c.Query("user_id")
	shiftTypeID := c.Query("shift_type_id")
	if userID == "" || shiftTypeID == "" {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	rate, err := h.svc.ResolveEffectiveRate(c.Request.Context(), orgID, userID, shiftTypeID)
	if err != nil {
		if errors.Is(err, service.ErrNoRateConfigured) {
			response.NotFound(c, 14003, "该班次类型未配置任何费率")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, rate)
}
