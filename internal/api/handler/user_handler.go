package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"shiftcare/internal/dto"
	"shiftcare/internal/service"
	"shiftcare/pkg/response"
)

// UserHandler 用户模块 HTTP 处理器
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Create 创建用户
// POST /api/v1/users
func (h *UserHandler) Create(c *gin.Context) {
	orgID, ok := MustGetOrganizationID(c)
	if !ok {
		return
	}
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	user, err := h.svc.Create(c.Request.Context(), orgID, operatorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailAlreadyInUse):
			response.Conflict(c, 21001, "该邮箱已注册")
		case errors.Is(err, service.ErrInvalidRole):
			response.BadRequest(c, 21002, "角色无效")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, dto.NewUserResponse(user))
}

// Get 查询用户详情
// GET /api/v1/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 21003, "用户不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, dto.NewUserResponse(user))
}

// List 分页列出机构用户
// GET /api/v1/users?page=1&page_size=20
func (h *UserHandler) List(c *gin.Context) {
	orgID, ok := MustGetOrganizationID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	users, total, err := h.svc.ListByOrganization(c.Request.Context(), orgID, page, pageSize)
	if err != nil {
		response.InternalError(c)
		return
	}

	list := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		list = append(list, dto.NewUserResponse(&users[i]))
	}
	response.OKPage(c, list, total, page, pageSize)
}

// Update 更新用户
// PUT /api/v1/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	user, err := h.svc.Update(c.Request.Context(), c.Param("id"), operatorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 21003, "用户不存在")
		case errors.Is(err, service.ErrInvalidRole):
			response.BadRequest(c, 21002, "角色无效")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, dto.NewUserResponse(user))
}

// Delete 软删除用户
// DELETE /api/v1/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), operatorID); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 21003, "用户不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}
