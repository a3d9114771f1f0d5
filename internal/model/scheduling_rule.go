package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ── 排班规则 ──

const (
	RuleTypeRestPeriod         = "rest_period"
	RuleTypeMaxConsecutive     = "max_consecutive_shifts"
	RuleTypeMaxWeeklyHours     = "max_weekly_hours"
	RuleTypeMinStaffing        = "min_staffing_level"
	RuleTypeQualificationMatch = "qualification_match"
)

const (
	RuleSeverityInfo    = "info"
	RuleSeverityWarning = "warning"
	RuleSeverityError   = "error"
)

const (
	RuleScopeOrganization = "organization"
	RuleScopeDepartment   = "department"
	RuleScopeRole         = "role"
	RuleScopeStaff        = "staff"
	RuleScopeShiftType    = "shift_type"
)

// RuleCondition 规则适用性条件（带逻辑连接符的有序条件链）
type RuleCondition struct {
	Field           string      `json:"field"`
	Operator        string      `json:"operator"` // equals | not_equals | gt | lt | in
	Value           interface{} `json:"value"`
	LogicalOperator string      `json:"logical_operator,omitempty"` // and | or（链接下一个条件）
}

// RuleConditionList 对应 JSONB 存储的条件链
type RuleConditionList []RuleCondition

// Scan 反序列化 JSONB 列
func (l *RuleConditionList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("RuleConditionList.Scan: unsupported type %T", src)
	}
	return json.Unmarshal(b, l)
}

// Value 序列化为 JSONB
func (l RuleConditionList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

// SchedulingRule 排班规则表 — 对应 scheduling_rules
// 规则为声明式配置，由外部规则引擎求值，此处只负责存取
type SchedulingRule struct {
	RuleID         string            `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"rule_id"`
	OrganizationID string            `gorm:"type:uuid;not null;index"                       json:"organization_id"`
	Name           string            `gorm:"type:varchar(100);not null"                     json:"name"`
	RuleType       string            `gorm:"type:varchar(50);not null"                      json:"rule_type"`
	Severity       string            `gorm:"type:varchar(20);not null;default:'warning'"    json:"severity"` // info | warning | error
	Scope          string            `gorm:"type:varchar(30);not null"                      json:"scope"`    // organization | department | role | staff | shift_type
	ScopeEntityID  *string           `gorm:"type:uuid"                                      json:"scope_entity_id,omitempty"`
	Parameters     JSONMap           `gorm:"type:jsonb"                                     json:"parameters,omitempty"`
	Conditions     RuleConditionList `gorm:"type:jsonb"                                     json:"conditions,omitempty"`
	IsActive       bool              `gorm:"not null;default:true"                          json:"is_active"`
	VersionedModel
}

// TableName 指定表名
func (SchedulingRule) TableName() string { return "scheduling_rules" }
