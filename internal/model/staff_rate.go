package model

import "time"

// StaffRate 员工费率覆盖表 — 对应 staff_rates
// 在班次类型基础支付配置之上的个人层覆盖；无覆盖时回落到 ShiftPaymentConfig
type StaffRate struct {
	StaffRateID      string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"staff_rate_id"`
	OrganizationID   string     `gorm:"type:uuid;not null;index"                       json:"organization_id"`
	UserID           string     `gorm:"type:uuid;not null;index"                       json:"user_id"`
	ShiftTypeID      *string    `gorm:"type:uuid"                                      json:"shift_type_id,omitempty"`
	PaymentConfigID  *string    `gorm:"type:uuid"                                      json:"payment_config_id,omitempty"`
	OverrideRate     *float64   `gorm:"type:numeric(10,2)"                             json:"override_rate,omitempty"`
	BonusRate        *float64   `gorm:"type:numeric(10,2)"                             json:"bonus_rate,omitempty"`
	CustomRateParams JSONMap    `gorm:"type:jsonb"                                     json:"custom_rate_params,omitempty"`
	EffectiveFrom    time.Time  `gorm:"type:date;not null"                             json:"effective_from"`
	EffectiveTo      *time.Time `gorm:"type:date"                                      json:"effective_to,omitempty"`
	IsActive         bool       `gorm:"not null;default:true"                          json:"is_active"`
	VersionedModel

	// 关联
	User      *User      `gorm:"foreignKey:UserID;references:UserID"           json:"user,omitempty"`
	ShiftType *ShiftType `gorm:"foreignKey:ShiftTypeID;references:ShiftTypeID" json:"shift_type,omitempty"`
}

// TableName 指定表名
func (StaffRate) TableName() string { return "staff_rates" }
