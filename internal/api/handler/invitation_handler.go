package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shiftcare/internal/dto"
	"shiftcare/internal/service"
	"shiftcare/pkg/response"
)

// InvitationHandler 员工邀请模块 HTTP 处理器
type InvitationHandler struct {
	svc service.InvitationService
}

// NewInvitationHandler 创建 InvitationHandler
func NewInvitationHandler(svc service.InvitationService) *InvitationHandler {
	return &InvitationHandler{svc: svc}
}

// Invite 邀请员工加入机构
// POST /api/v1/invitations
func (h *InvitationHandler) Invite(c *gin.Context) {
	orgID, ok := MustGetOrganizationID(c)
	if !ok {
		return
	}
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.InviteStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	inv, err := h.svc.Invite(c.Request.Context(), orgID, operatorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailAlreadyInUse):
			response.Conflict(c, 21001, "该邮箱已注册")
		case errors.Is(err, service.ErrInvalidRole):
			response.BadRequest(c, 21002, "角色无效")
		case errors.Is(err, service.ErrOrganizationNotFound):
			response.NotFound(c, 20003, "机构不存在")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, inv)
}

// List 列出机构邀请记录
// GET /api/v1/invitations
func (h *InvitationHandler) List(c *gin.Context) {
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

// GetByToken 通过邀请令牌查询邀请详情（开放接口，供接受页预填）
// GET /api/v1/invitations/token/:token
func (h *InvitationHandler) GetByToken(c *gin.Context) {
	inv, err := h.svc.GetByToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvitationNotFound):
			response.NotFound(c, 18001, "邀请不存在或已失效")
		case errors.Is(err, service.ErrInvitationExpired):
			response.Error(c, http.StatusGone, 18002, "邀请已过期")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, inv)
}

// Accept 接受邀请并创建账号（开放接口）
// POST /api/v1/invitations/accept
func (h *InvitationHandler) Accept(c *gin.Context) {
	var req dto.AcceptInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	user, err := h.svc.Accept(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvitationNotFound):
			response.NotFound(c, 18001, "邀请不存在或已失效")
		case errors.Is(err, service.ErrInvitationExpired):
			response.Error(c, http.StatusGone, 18002, "邀请已过期")
		case errors.Is(err, service.ErrInvitationAccepted):
			response.Conflict(c, 18003, "邀请已被接受")
		case errors.Is(err, service.ErrEmailAlreadyInUse):
			response.Conflict(c, 21001, "该邮箱已注册")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, dto.NewUserResponse(user))
}

// Revoke 撤销邀请
// DELETE /api/v1/invitations/:id
func (h *InvitationHandler) Revoke(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.svc.Revoke(c.Request.Context(), c.Param("id"), operatorID); err != nil {
		switch {
		case errors.Is(err, service.ErrInvitationNotFound):
			response.NotFound(c, 18001, "邀请不存在或已失效")
		case errors.Is(err, service.ErrInvitationAccepted):
			response.Conflict(c, 18003, "邀请已被接受")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, nil)
}
