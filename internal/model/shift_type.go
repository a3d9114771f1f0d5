package model

// ── 班次类别（与机构类别同域） ──

// Weekdays 合法星期名（applicable_days 取值域）
var Weekdays = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// IsValidWeekday 判断星期名是否合法
func IsValidWeekday(d string) bool {
	for _, v := range Weekdays {
		if v == d {
			return true
		}
	}
	return false
}

// ShiftTiming 班次默认时间段（嵌入 ShiftType / ShiftTemplate）
// StartTime / EndTime 固定以服务端基准时区存储（"HH:MM"）
type ShiftTiming struct {
	StartTime       string `gorm:"type:time;not null"    json:"start_time"` // "08:00"
	EndTime         string `gorm:"type:time;not null"    json:"end_time"`   // "20:00"
	DurationMinutes int    `gorm:"not null;default:0"    json:"duration_minutes"`
	IsOvernight     bool   `gorm:"not null;default:false" json:"is_overnight"`
}

// ShiftType 班次类型表 — 对应 shift_types
// (name, organization_id) 组合唯一
type ShiftType struct {
	ShiftTypeID    string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"          json:"shift_type_id"`
	OrganizationID string      `gorm:"type:uuid;not null;uniqueIndex:uniq_shift_type_name"     json:"organization_id"`
	Name           string      `gorm:"type:varchar(100);not null;uniqueIndex:uniq_shift_type_name" json:"name"`
	Description    string      `gorm:"type:varchar(500)"                                       json:"description,omitempty"`
	Category       string      `gorm:"type:varchar(30);not null"                               json:"category"` // hospital | care_home | service_provider
	DefaultTiming  ShiftTiming `gorm:"embedded;embeddedPrefix:timing_"                         json:"default_timing"`
	Color          string      `gorm:"type:varchar(20)"                                        json:"color,omitempty"`
	Icon           string      `gorm:"type:varchar(50)"                                        json:"icon,omitempty"`
	ApplicableDays StringArray `gorm:"type:text[]"                                             json:"applicable_days,omitempty"`
	Metadata       JSONMap     `gorm:"type:jsonb"                                              json:"metadata,omitempty"`
	IsActive       bool        `gorm:"not null;default:true"                                   json:"is_active"`
	VersionedModel

	// 关联
	Organization *Organization `gorm:"foreignKey:OrganizationID;references:OrganizationID" json:"organization,omitempty"`
}

// TableName 指定表名
func (ShiftType) TableName() string { return "shift_types" }
