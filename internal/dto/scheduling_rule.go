package dto

import "shiftcare/internal/model"

// ── 排班规则模块 DTO ──

// CreateSchedulingRuleRequest 创建排班规则请求
type CreateSchedulingRuleRequest struct {
	Name          string                  `json:"name"      binding:"required,min=1,max=100"`
	RuleType      string                  `json:"rule_type" binding:"required"`
	Severity      string                  `json:"severity"  binding:"omitempty,oneof=info warning error"`
	Scope         string                  `json:"scope"     binding:"required"`
	ScopeEntityID *string                 `json:"scope_entity_id" binding:"omitempty,uuid"`
	Parameters    map[string]interface{}  `json:"parameters"`
	Conditions    model.RuleConditionList `json:"conditions"`
}

// UpdateSchedulingRuleRequest 更新排班规则请求（nil 字段不变更）
type UpdateSchedulingRuleRequest struct {
	Name          *string                 `json:"name"     binding:"omitempty,min=1,max=100"`
	Severity      *string                 `json:"severity" binding:"omitempty,oneof=info warning error"`
	Scope         *string                 `json:"scope"`
	ScopeEntityID *string                 `json:"scope_entity_id" binding:"omitempty,uuid"`
	Parameters    map[string]interface{}  `json:"parameters"`
	Conditions    model.RuleConditionList `json:"conditions"`
	IsActive      *bool                   `json:"is_active"`
}
