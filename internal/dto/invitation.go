package dto

// ── 员工邀请模块 DTO ──

// InviteStaffRequest 发出员工邀请请求
type InviteStaffRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role"`
}

// AcceptInvitationRequest 接受邀请并注册请求
type AcceptInvitationRequest struct {
	Token    string `json:"token"    binding:"required"`
	Name     string `json:"name"     binding:"required,min=2,max=100"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=8,max=64"`
}
