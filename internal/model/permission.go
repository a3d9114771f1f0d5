package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ── 权限动作 ──

const (
	ActionCreate = "create"
	ActionRead   = "read"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionManage = "manage"
)

// Permission 权限表 — 对应 permissions
// (action, subject) 组合唯一；创建后仅 description 可变
type Permission struct {
	PermissionID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"        json:"permission_id"`
	Action       string `gorm:"type:varchar(30);not null;uniqueIndex:uniq_action_subject" json:"action"`
	Subject      string `gorm:"type:varchar(100);not null;uniqueIndex:uniq_action_subject" json:"subject"`
	Description  string `gorm:"type:varchar(500)"                                     json:"description,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Permission) TableName() string { return "permissions" }

// Key 返回 "action:subject" 形式的权限标识
func (p *Permission) Key() string { return p.Action + ":" + p.Subject }

// ── 授权条件（封闭代数结构，不接受自由表达式） ──

const (
	CondOperatorEquals = "equals"
)

// Condition 授权作用域条件：请求字段与操作者属性的结构化谓词
// 典型用法：{"field": "organizationId", "operator": "equals", "value": "$actor.organizationId"}
type Condition struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

// ConditionList 对应 JSONB 存储的条件数组
type ConditionList []Condition

// Scan 反序列化 JSONB 列
func (l *ConditionList) Scan(src interface{}) error {
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
		return fmt.Errorf("ConditionList.Scan: unsupported type %T", src)
	}
	return json.Unmarshal(b, l)
}

// Value 序列化为 JSONB
func (l ConditionList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}
