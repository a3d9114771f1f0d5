package dto

import "shiftcare/internal/model"

// ── 认证模块 DTO ──

// LoginRequest 登录请求
type LoginRequest struct {
	Email      string `json:"email"    binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// RefreshTokenRequest 刷新 Token 请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TokenResponse 登录/换发成功响应
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"` // Access Token 有效期（秒）
	User         UserResponse `json:"user"`
}

// UserResponse 用户信息响应
type UserResponse struct {
	ID             string                `json:"id"`
	Name           string                `json:"name"`
	Email          string                `json:"email"`
	Phone          string                `json:"phone,omitempty"`
	Role           string                `json:"role"`
	OrganizationID string                `json:"organization_id"`
	Organization   *OrganizationResponse `json:"organization,omitempty"`
	IsActive       bool                  `json:"is_active"`
}

// NewUserResponse 由用户模型构造响应
func NewUserResponse(user *model.User) UserResponse {
	resp := UserResponse{
		ID:             user.UserID,
		Name:           user.Name,
		Email:          user.Email,
		Phone:          user.Phone,
		Role:           user.Role,
		OrganizationID: user.OrganizationID,
		IsActive:       user.IsActive,
	}
	if user.Organization != nil {
		resp.Organization = &OrganizationResponse{
			ID:       user.Organization.OrganizationID,
			Name:     user.Organization.Name,
			Category: user.Organization.Category,
			Timezone: user.Organization.Timezone,
		}
	}
	return resp
}
