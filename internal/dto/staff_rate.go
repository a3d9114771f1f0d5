package dto

import (
	"time"

	"shiftcare/internal/model"
)

// ── 员工费率模块 DTO ──

// CreateStaffRateRequest 创建员工费率覆盖请求
// OverrideRate / BonusRate / CustomRateParams 至少提供一项
type CreateStaffRateRequest struct {
	UserID           string                 `json:"user_id"           binding:"required,uuid"`
	ShiftTypeID      *string                `json:"shift_type_id"     binding:"omitempty,uuid"`
	PaymentConfigID  *string                `json:"payment_config_id" binding:"omitempty,uuid"`
	OverrideRate     *float64               `json:"override_rate"     binding:"omitempty,gt=0"`
	BonusRate        *float64               `json:"bonus_rate"        binding:"omitempty,gte=0"`
	CustomRateParams map[string]interface{} `json:"custom_rate_params"`
	EffectiveFrom    time.Time              `json:"effective_from"    binding:"required"`
	EffectiveTo      *time.Time             `json:"effective_to"`
}

// UpdateStaffRateRequest 更新员工费率覆盖请求（nil 字段不变更）
type UpdateStaffRateRequest struct {
	OverrideRate     *float64               `json:"override_rate"  binding:"omitempty,gt=0"`
	BonusRate        *float64               `json:"bonus_rate"     binding:"omitempty,gte=0"`
	CustomRateParams map[string]interface{} `json:"custom_rate_params"`
	EffectiveFrom    *time.Time             `json:"effective_from"`
	EffectiveTo      *time.Time             `json:"effective_to"`
	IsActive         *bool                  `json:"is_active"`
}

// 有效费率来源
const (
	RateSourceStaffRate     = "staff_rate"     // 个人覆盖
	RateSourcePaymentConfig = "payment_config" // 班次类型级配置
)

// EffectiveRateResponse 有效费率解析结果
type EffectiveRateResponse struct {
	Source           string                 `json:"source"` // staff_rate | payment_config
	StaffRateID      *string                `json:"staff_rate_id,omitempty"`
	OverrideRate     *float64               `json:"override_rate,omitempty"`
	BonusRate        *float64               `json:"bonus_rate,omitempty"`
	CustomRateParams map[string]interface{} `json:"custom_rate_params,omitempty"`
	PaymentConfigID  *string                `json:"payment_config_id,omitempty"`
	PaymentMethod    string                 `json:"payment_method,omitempty"`
	Params           *model.PaymentParams   `json:"params,omitempty"`
	Currency         string                 `json:"currency,omitempty"`
}
