package dto

import (
	"time"

	"shiftcare/internal/model"
)

// ── 支付配置模块 DTO ──

// CreatePaymentConfigRequest 创建支付配置请求
// Params 为联合体，必须恰好填充与 PaymentMethod 匹配的分支
type CreatePaymentConfigRequest struct {
	ShiftTypeID   string              `json:"shift_type_id"  binding:"required,uuid"`
	PaymentMethod string              `json:"payment_method" binding:"required"`
	Params        model.PaymentParams `json:"params"         binding:"required"`
	Currency      string              `json:"currency"`
	EffectiveFrom time.Time           `json:"effective_from" binding:"required"`
	EffectiveTo   *time.Time          `json:"effective_to"`
}

// UpdatePaymentConfigRequest 更新支付配置请求（nil 字段不变更）
type UpdatePaymentConfigRequest struct {
	PaymentMethod *string              `json:"payment_method"`
	Params        *model.PaymentParams `json:"params"`
	Currency      *string              `json:"currency"`
	EffectiveFrom *time.Time           `json:"effective_from"`
	EffectiveTo   *time.Time           `json:"effective_to"`
	IsActive      *bool                `json:"is_active"`
}
