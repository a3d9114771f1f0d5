package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// RotationStep 轮班序列中的一段：连续 N 天同一班次类型
type RotationStep struct {
	ShiftTypeID     string `json:"shift_type_id"`
	ConsecutiveDays int    `json:"consecutive_days"`
	IsFlexible      bool   `json:"is_flexible,omitempty"`
}

// RotationSequence 对应 JSONB 存储的有序轮班序列
type RotationSequence []RotationStep

// Scan 反序列化 JSONB 列
func (s *RotationSequence) Scan(src interface{}) error {
	if src == nil {
		*s = nil
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("RotationSequence.Scan: unsupported type %T", src)
	}
	return json.Unmarshal(b, s)
}

// Value 序列化为 JSONB
func (s RotationSequence) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// TotalDays 序列中各段连续天数之和
func (s RotationSequence) TotalDays() int {
	total := 0
	for _, step := range s {
		total += step.ConsecutiveDays
	}
	return total
}

// ShiftRotationPattern 轮班模式表 — 对应 shift_rotation_patterns
// cycle_length_days 与序列/休息天数之和的一致性为建议性校验，不在写入时强制
type ShiftRotationPattern struct {
	PatternID          string           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"pattern_id"`
	OrganizationID     string           `gorm:"type:uuid;not null;index"                       json:"organization_id"`
	Name               string           `gorm:"type:varchar(100);not null"                     json:"name"`
	Description        string           `gorm:"type:varchar(500)"                              json:"description,omitempty"`
	Sequence           RotationSequence `gorm:"type:jsonb;not null"                            json:"sequence"`
	BreakDays          int              `gorm:"not null;default:0"                             json:"break_days"`
	CycleLengthDays    int              `gorm:"not null"                                       json:"cycle_length_days"`
	RepeatIndefinitely bool             `gorm:"not null;default:true"                          json:"repeat_indefinitely"`
	MaxRepetitions     *int             `json:"max_repetitions,omitempty"`
	ApplicableStaff    StringArray      `gorm:"type:text[]"                                    json:"applicable_staff,omitempty"`
	ApplicableRoles    StringArray      `gorm:"type:text[]"                                    json:"applicable_roles,omitempty"`
	EffectiveFrom      time.Time        `gorm:"type:date;not null"                             json:"effective_from"`
	EffectiveTo        *time.Time       `gorm:"type:date"                                      json:"effective_to,omitempty"`
	IsActive           bool             `gorm:"not null;default:true"                          json:"is_active"`
	VersionedModel
}

// TableName 指定表名
func (ShiftRotationPattern) TableName() string { return "shift_rotation_patterns" }
