package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"shiftcare/internal/dto"
	"shiftcare/internal/service"
	"shiftcare/pkg/response"
)

// SchedulingRuleHandler 排班规则模块 HTTP 处理器
type SchedulingRuleHandler struct {
	svc service.SchedulingRuleService
}

// NewSchedulingRuleHandler 创建 SchedulingRuleHandler
func NewSchedulingRuleHandler(svc service.SchedulingRuleService) *SchedulingRuleHandler {
	return &SchedulingRuleHandler{svc: svc}
}

// isRuleBadRequest 规则入参类错误统一映射到 400
func isRuleBadRequest(err error) bool {
	return errors.Is(err, service.ErrInvalidRuleType) ||
		errors.Is(err, service.ErrInvalidRuleSeverity) ||
		errors.Is(err, service.ErrInvalidRuleScope) ||
		errors.Is(err, service.ErrRuleScopeEntityEmpty)
}

// Create 创建排班规则
// POST /api/v1/scheduling-rules
func (h *SchedulingRuleHandler) Create(c *gin.Context) {
	orgID, ok := MustGetOrganizationID(c)
	if !ok {
		return
	}
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateSchedulingRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	rule, err := h.svc.Create(c.Request.Context(), orgID, operatorID, &req)
	if err != nil {
		if isRuleBadRequest(err) {
			response.BadRequest(c, 16001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, rule)
}

// Get 查询排班规则
// GET /api/v1/scheduling-rules/:id
func (h *SchedulingRuleHandler) Get(c *gin.Context) {
	rule, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrScheduleRuleNotFound) {
			response.NotFound(c, 16002, "排班规则不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, rule)
}

// List 列出机构排班规则；可按 rule_type 过滤
// GET /api/v1/scheduling-rules?rule_type=max_consecutive_days
func (h *SchedulingRuleHandler) List(c *gin.Context) {
	orgID, ok := MustGetOrganizationID(c)
	if !ok {
		return
	}

	list, err := h.svc.ListByOrganization(c.Request.Context(), orgID, c.Query("rule_type"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidRuleType) {
			response.BadRequest(c, 16001, "规则类型无效")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, list)
}

// Update 更新排班规则
// PUT /api/v1/scheduling-rules/:id
func (h *SchedulingRuleHandler) Update(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateSchedulingRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	rule, err := h.svc.Update(c.Request.Context(), c.Param("id"), operatorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrScheduleRuleNotFound):
			response.NotFound(c, 16002, "排班规则不存在")
		case isRuleBadRequest(err):
			response.BadRequest(c, 16001, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, rule)
}

// Delete 软删除排班规则
// DELETE /api/v1/scheduling-rules/:id
func (h *SchedulingRuleHandler) Delete(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), operatorID); err != nil {
		if errors.Is(err, service.ErrScheduleRuleNotFound) {
			response.NotFound(c, 16002, "排班规则不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}
