package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"shiftcare/internal/dto"
	"shiftcare/internal/model"
	"shiftcare/internal/service"
	"shiftcare/pkg/response"
)

// TimesheetHandler 工时模块 HTTP 处理器
type TimesheetHandler struct {
	svc service.TimesheetService
}

// NewTimesheetHandler 创建 TimesheetHandler
func NewTimesheetHandler(svc service.TimesheetService) *TimesheetHandler {
	return &TimesheetHandler{svc: svc}
}

// Create 创建工时记录
// POST /api/v1/timesheets
func (h *TimesheetHandler) Create(c *gin.Context) {
	orgID, ok := MustGetOrganizationID(c)
	if !ok {
		return
	}
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTimesheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	ts, err := h.svc.Create(c.Request.Context(), orgID, operatorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTimesheet),
			errors.Is(err, service.ErrInvalidTimeFormat):
			response.BadRequest(c, 19001, err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 21003, "用户不存在")
		case errors.Is(err, service.ErrShiftTypeNotFound):
			response.NotFound(c, 12003, "班次类型不存在")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, ts)
}

// Get 查询工时记录
// GET /api/v1/timesheets/:id
func (h *TimesheetHandler) Get(c *gin.Context) {
	ts, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrTimesheetNotFound) {
			response.NotFound(c, 19002, "工时记录不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, ts)
}

// List 按日期范围列出工时记录；带 user_id 时仅返回该员工的记录
// GET /api/v1/timesheets?start=2026-01-01&end=2026-01-31&user_id=xxx
func (h *TimesheetHandler) List(c *gin.Context) {
	orgID, ok := MustGetOrganizationID(c)
	if !ok {
		return
	}

	var q dto.TimesheetRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	var (
		list []model.Timesheet
		err  error
	)
	if userID := c.Query("user_id"); userID != "" {
		list, err = h.svc.ListByUser(c.Request.Context(), orgID, userID, &q)
	} else {
		list, err = h.svc.ListByOrganization(c.Request.Context(), orgID, &q)
	}
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

// Review 审批工时记录（批准或驳回）
// POST /api/v1/timesheets/:id/review
func (h *TimesheetHandler) Review(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ReviewTimesheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	ts, err := h.svc.Review(c.Request.Context(), c.Param("id"), operatorID, req.Approve)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTimesheetNotFound):
			response.NotFound(c, 19002, "工时记录不存在")
		case errors.Is(err, service.ErrTimesheetNotPending):
			response.Conflict(c, 19003, "仅待审批的工时记录可以审批")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, ts)
}

// Delete 软删除工时记录
// DELETE /api/v1/timesheets/:id
func (h *TimesheetHandler) Delete(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), operatorID); err != nil {
		if errors.Is(err, service.ErrTimesheetNotFound) {
			response.NotFound(c, 19002, "工时记录不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}
