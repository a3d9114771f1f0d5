package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ── 可用时段 ──

const (
	PeriodDay   = "day"
	PeriodNight = "night"
	PeriodBoth  = "both"
)

// IsValidPeriod 判断可用时段是否合法
func IsValidPeriod(p string) bool {
	return p == PeriodDay || p == PeriodNight || p == PeriodBoth
}

// AvailabilityEntry 单日可用性条目
// Date 仅取日历日（比较时忽略时分秒）
type AvailabilityEntry struct {
	Date   time.Time `json:"date"`
	Period string    `json:"period"` // day | night | both
}

// SameDate 判断条目是否落在指定日历日（忽略时间部分）
func (e *AvailabilityEntry) SameDate(d time.Time) bool {
	y1, m1, d1 := e.Date.UTC().Date()
	y2, m2, d2 := d.UTC().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// AvailabilityEntryList 对应 JSONB 存储的有序条目数组
type AvailabilityEntryList []AvailabilityEntry

// Scan 反序列化 JSONB 列
func (l *AvailabilityEntryList) Scan(src interface{}) error {
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
		return fmt.Errorf("AvailabilityEntryList.Scan: unsupported type %T", src)
	}
	return json.Unmarshal(b, l)
}

// Value 序列化为 JSONB
func (l AvailabilityEntryList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]AvailabilityEntry{})
	}
	return json.Marshal(l)
}

// EmployeeAvailability 员工可用性表 — 对应 employee_availabilities
// 不变式：同一 (user_id, organization_id) 同时最多一条活跃的非周期性记录；
// 更新采用整体替换条目数组而非合并
type EmployeeAvailability struct {
	AvailabilityID string                `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"availability_id"`
	UserID         string                `gorm:"type:uuid;not null;index"                       json:"user_id"`
	OrganizationID string                `gorm:"type:uuid;not null;index"                       json:"organization_id"`
	Entries        AvailabilityEntryList `gorm:"type:jsonb;not null"                            json:"entries"`
	EffectiveFrom  time.Time             `gorm:"type:date;not null"                             json:"effective_from"`
	EffectiveTo    *time.Time            `gorm:"type:date"                                      json:"effective_to,omitempty"`
	IsRecurring    bool                  `gorm:"not null;default:false"                         json:"is_recurring"`
	IsActive       bool                  `gorm:"not null;default:true"                          json:"is_active"`
	VersionedModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (EmployeeAvailability) TableName() string { return "employee_availabilities" }
