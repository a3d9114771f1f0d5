package dto

// ── 班次类型模块 DTO ──

// CreateShiftTypeRequest 创建班次类型请求
// StartTime/EndTime 为调用方时区的 "HH:MM"，Timezone 指明该时区（空为服务端基准时区）
type CreateShiftTypeRequest struct {
	Name           string                 `json:"name"        binding:"required,min=1,max=100"`
	Description    string                 `json:"description" binding:"max=500"`
	Category       string                 `json:"category"    binding:"omitempty,oneof=hospital care_home service_provider"`
	StartTime      string                 `json:"start_time"  binding:"required"`
	EndTime        string                 `json:"end_time"    binding:"required"`
	IsOvernight    bool                   `json:"is_overnight"`
	Color          string                 `json:"color"`
	Icon           string                 `json:"icon"`
	ApplicableDays []string               `json:"applicable_days"`
	Metadata       map[string]interface{} `json:"metadata"`
	Timezone       string                 `json:"timezone"`
}

// UpdateShiftTypeRequest 更新班次类型请求（nil 字段不变更）
type UpdateShiftTypeRequest struct {
	Name           *string                `json:"name"        binding:"omitempty,min=1,max=100"`
	Description    *string                `json:"description" binding:"omitempty,max=500"`
	StartTime      *string                `json:"start_time"`
	EndTime        *string                `json:"end_time"`
	IsOvernight    *bool                  `json:"is_overnight"`
	Color          *string                `json:"color"`
	Icon           *string                `json:"icon"`
	ApplicableDays []string               `json:"applicable_days"`
	Metadata       map[string]interface{} `json:"metadata"`
	IsActive       *bool                  `json:"is_active"`
	Timezone       string                 `json:"timezone"`
}

// ShiftTypeCustomizations 套用模板时的定制项（浅合并，提供即覆盖）
type ShiftTypeCustomizations struct {
	Name           *string  `json:"name"        binding:"omitempty,min=1,max=100"`
	Description    *string  `json:"description" binding:"omitempty,max=500"`
	StartTime      *string  `json:"start_time"`
	EndTime        *string  `json:"end_time"`
	IsOvernight    *bool    `json:"is_overnight"`
	Color          *string  `json:"color"`
	Icon           *string  `json:"icon"`
	ApplicableDays []string `json:"applicable_days"`
}

// ApplyTemplateRequest 套用班次模板请求
type ApplyTemplateRequest struct {
	TemplateID     string                  `json:"template_id" binding:"required,uuid"`
	Timezone       string                  `json:"timezone"`
	Customizations ShiftTypeCustomizations `json:"customizations"`
}
