package model

// ShiftTemplate 班次模板表 — 对应 shift_templates
// 平台级原型，按机构类别划分；套用模板即把字段拷贝进新 ShiftType
type ShiftTemplate struct {
	TemplateID     string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"template_id"`
	Name           string      `gorm:"type:varchar(100);not null"                     json:"name"`
	Description    string      `gorm:"type:varchar(500)"                              json:"description,omitempty"`
	Category       string      `gorm:"type:varchar(30);not null;index"                json:"category"` // hospital | care_home | service_provider
	DefaultTiming  ShiftTiming `gorm:"embedded;embeddedPrefix:timing_"                json:"default_timing"`
	Color          string      `gorm:"type:varchar(20)"                               json:"color,omitempty"`
	Icon           string      `gorm:"type:varchar(50)"                               json:"icon,omitempty"`
	ApplicableDays StringArray `gorm:"type:text[]"                                    json:"applicable_days,omitempty"`
	IsActive       bool        `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName 指定表名
func (ShiftTemplate) TableName() string { return "shift_templates" }
