package dto

// ── 用户模块 DTO ──

// CreateUserRequest 创建用户请求
type CreateUserRequest struct {
	Name     string `json:"name"     binding:"required,min=2,max=100"`
	Email    string `json:"email"    binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=8,max=64"`
	Role     string `json:"role"`
}

// UpdateUserRequest 更新用户请求（nil 字段不变更）
type UpdateUserRequest struct {
	Name     *string `json:"name"     binding:"omitempty,min=2,max=100"`
	Phone    *string `json:"phone"`
	Role     *string `json:"role"`
	Password *string `json:"password" binding:"omitempty,min=8,max=64"`
	IsActive *bool   `json:"is_active"`
}
