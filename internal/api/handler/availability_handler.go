package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"shiftcare/internal/dto"
	"shiftcare/internal/service"
	"shiftcare/pkg/response"
)

// AvailabilityHandler 员工可用性模块 HTTP 处理器
type AvailabilityHandler struct {
	svc service.AvailabilityService
}

// NewAvailabilityHandler 创建 AvailabilityHandler
func NewAvailabilityHandler(svc service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{svc: svc}
}

// availabilityWindowQuery 可用性窗口查询参数
type availabilityWindowQuery struct {
	UserID string    `form:"user_id" binding:"required,uuid"`
	Start  time.Time `form:"start"   binding:"required" time_format:"2006-01-02"`
	End    time.Time `form:"end"     binding:"required" time_format:"2006-01-02"`
}

// availableEmployeesQuery 可用员工匹配查询参数
type availableEmployeesQuery struct {
	Date   time.Time `form:"date"   binding:"required" time_format:"2006-01-02"`
	Period string    `form:"period" binding:"required,oneof=day night both"`
}

// Upsert 创建或整体替换员工可用性记录。
// 命中既有记录时条目整体替换，不做合并。
// POST /api/v1/employee-availability
func (h *AvailabilityHandler) Upsert(c *gin.Context) {
	orgID, ok := MustGetOrganizationID(c)
	if !ok {
		return
	}
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpsertAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	record, err := h.svc.CreateOrUpdate(c.Request.Context(), orgID, operatorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPeriod):
			response.BadRequest(c, 15001, err.Error())
		case errors.Is(err, service.ErrInvalidDateRange):
			response.BadRequest(c, 15002, err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 21003, "用户不存在")
		case errors.Is(err, service.ErrOrganizationNotFound):
			response.NotFound(c, 20003, "机构不存在")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, record)
}

// Query 查询员工在时间窗口内的可用性。
// 非周期性条目按窗口过滤；周期性记录整体返回，由调用方按星期展开。
// GET /api/v1/employee-availability?user_id=xxx&start=2026-01-01&end=2026-01-31
func (h *AvailabilityHandler) Query(c *gin.Context) {
	orgID, ok := MustGetOrganizationID(c)
	if !ok {
		return
	}

	var q availabilityWindowQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, err := h.svc.GetAvailability(c.Request.Context(), orgID, q.UserID, q.Start, q.End)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDateRange) {
			response.BadRequest(c, 15002, err.Error())
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, list)
}

// UpdateSingleDate 单日增改删；period 为空表示删除该日条目
// PUT /api/v1/employee-availability/date
func (h *AvailabilityHandler) UpdateSingleDate(c *gin.Context) {
	orgID, ok := MustGetOrganizationID(c)
	if !ok {
		return
	}
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateSingleDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	record, err := h.svc.UpdateSingleDate(c.Request.Context(), orgID, operatorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAvailabilityNotFound):
			response.NotFound(c, 15003, "员工可用性记录不存在")
		case errors.Is(err, service.ErrInvalidPeriod):
			response.BadRequest(c, 15001, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, record)
}

// AvailableEmployees 按日期与时段匹配可用员工
// GET /api/v1/employee-availability/available?date=2026-01-15&period=day
func (h *AvailabilityHandler) AvailableEmployees(c *gin.Context) {
	orgID, ok := MustGetOrganizationID(c)
	if !ok {
		return
	}

	var q availableEmployeesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, err := h.svc.GetAvailableEmployees(c.Request.Context(), orgID, q.Date, q.Period)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPeriod) {
			response.BadRequest(c, 15001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, list)
}

// Delete 软删除可用性记录
// DELETE /api/v1/employee-availability/:id
func (h *AvailabilityHandler) Delete(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), operatorID); err != nil {
		if errors.Is(err, service.ErrAvailabilityNotFound) {
			response.NotFound(c, 15003, "员工可用性记录不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}
