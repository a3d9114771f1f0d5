package dto

import (
	"time"

	"shiftcare/internal/model"
)

// ── 员工可用性模块 DTO ──

// AvailabilityEntryInput 单日可用性条目入参
type AvailabilityEntryInput struct {
	Date   time.Time `json:"date"   binding:"required"`
	Period string    `json:"period" binding:"required,oneof=day night both"`
}

// UpsertAvailabilityRequest 创建/整体替换可用性请求
// 命中既有记录时 Entries 整体替换，不做合并
type UpsertAvailabilityRequest struct {
	UserID        string                   `json:"user_id"        binding:"required,uuid"`
	Entries       []AvailabilityEntryInput `json:"entries"        binding:"required,dive"`
	EffectiveFrom time.Time                `json:"effective_from" binding:"required"`
	EffectiveTo   *time.Time               `json:"effective_to"`
	IsRecurring   bool                     `json:"is_recurring"`
}

// UpdateSingleDateRequest 单日增改删请求；Period 为空表示删除该日条目
type UpdateSingleDateRequest struct {
	UserID string    `json:"user_id" binding:"required,uuid"`
	Date   time.Time `json:"date"    binding:"required"`
	Period *string   `json:"period"  binding:"omitempty,oneof=day night both"`
}

// AvailabilityResponse 可用性查询响应
type AvailabilityResponse struct {
	AvailabilityID string                      `json:"availability_id"`
	UserID         string                      `json:"user_id"`
	Entries        model.AvailabilityEntryList `json:"entries"`
	EffectiveFrom  time.Time                   `json:"effective_from"`
	EffectiveTo    *time.Time                  `json:"effective_to,omitempty"`
	IsRecurring    bool                        `json:"is_recurring"`
}

// AvailableEmployeeResponse 可用员工匹配结果
type AvailableEmployeeResponse struct {
	UserID      string `json:"user_id"`
	Name        string `json:"name,omitempty"`
	Role        string `json:"role,omitempty"`
	Period      string `json:"period"` // 命中的条目时段
	IsRecurring bool   `json:"is_recurring"`
}
