package dto

// ── 机构模块 DTO ──

// CreateOrganizationRequest 创建机构请求
type CreateOrganizationRequest struct {
	Name     string                 `json:"name"     binding:"required,min=2,max=200"`
	Category string                 `json:"category" binding:"required,oneof=hospital care_home service_provider"`
	Email    string                 `json:"email"    binding:"omitempty,email"`
	Phone    string                 `json:"phone"`
	Address  string                 `json:"address"`
	Timezone string                 `json:"timezone"` // IANA 时区名，默认 UTC
	Settings map[string]interface{} `json:"settings"`
}

// UpdateOrganizationRequest 更新机构请求（nil 字段不变更）
type UpdateOrganizationRequest struct {
	Name     *string `json:"name"     binding:"omitempty,min=2,max=200"`
	Category *string `json:"category" binding:"omitempty,oneof=hospital care_home service_provider"`
	Email    *string `json:"email"    binding:"omitempty,email"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	Timezone *string `json:"timezone"`
	IsActive *bool   `json:"is_active"`
}

// UpdateSettingsRequest 整体替换机构设置请求
type UpdateSettingsRequest struct {
	Settings map[string]interface{} `json:"settings" binding:"required"`
}

// OrganizationResponse 机构摘要响应
type OrganizationResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Timezone string `json:"timezone"`
}
