package dto

import (
	"time"

	"shiftcare/internal/model"
)

// ── 轮班模式模块 DTO ──

// CreateRotationPatternRequest 创建轮班模式请求
// CycleLengthDays 为 0 时按序列天数 + 休息天数自动计算
type CreateRotationPatternRequest struct {
	Name               string                 `json:"name"        binding:"required,min=1,max=100"`
	Description        string                 `json:"description" binding:"max=500"`
	Sequence           model.RotationSequence `json:"sequence"    binding:"required"`
	BreakDays          int                    `json:"break_days"  binding:"gte=0"`
	CycleLengthDays    int                    `json:"cycle_length_days" binding:"gte=0"`
	RepeatIndefinitely bool                   `json:"repeat_indefinitely"`
	MaxRepetitions     *int                   `json:"max_repetitions" binding:"omitempty,gt=0"`
	ApplicableStaff    []string               `json:"applicable_staff"`
	ApplicableRoles    []string               `json:"applicable_roles"`
	EffectiveFrom      time.Time              `json:"effective_from" binding:"required"`
	EffectiveTo        *time.Time             `json:"effective_to"`
}

// UpdateRotationPatternRequest 更新轮班模式请求（nil/空字段不变更）
type UpdateRotationPatternRequest struct {
	Name               *string                `json:"name"        binding:"omitempty,min=1,max=100"`
	Description        *string                `json:"description" binding:"omitempty,max=500"`
	Sequence           model.RotationSequence `json:"sequence"`
	BreakDays          *int                   `json:"break_days"  binding:"omitempty,gte=0"`
	CycleLengthDays    *int                   `json:"cycle_length_days" binding:"omitempty,gte=0"`
	RepeatIndefinitely *bool                  `json:"repeat_indefinitely"`
	MaxRepetitions     *int                   `json:"max_repetitions" binding:"omitempty,gt=0"`
	ApplicableStaff    []string               `json:"applicable_staff"`
	ApplicableRoles    []string               `json:"applicable_roles"`
	EffectiveFrom      *time.Time             `json:"effective_from"`
	EffectiveTo        *time.Time             `json:"effective_to"`
	IsActive           *bool                  `json:"is_active"`
}
