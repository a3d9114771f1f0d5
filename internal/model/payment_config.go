package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ── 支付方式 ──

const (
	PaymentMethodHourly      = "hourly"
	PaymentMethodPerShift    = "per_shift"
	PaymentMethodDaily       = "daily"
	PaymentMethodWeekly      = "weekly"
	PaymentMethodMonthly     = "monthly"
	PaymentMethodPerformance = "performance"
	PaymentMethodCommission  = "commission"
	PaymentMethodCustom      = "custom"
)

// ValidPaymentMethods 全部合法支付方式
var ValidPaymentMethods = []string{
	PaymentMethodHourly,
	PaymentMethodPerShift,
	PaymentMethodDaily,
	PaymentMethodWeekly,
	PaymentMethodMonthly,
	PaymentMethodPerformance,
	PaymentMethodCommission,
	PaymentMethodCustom,
}

// IsValidPaymentMethod 判断支付方式是否合法
func IsValidPaymentMethod(m string) bool {
	for _, v := range ValidPaymentMethods {
		if v == m {
			return true
		}
	}
	return false
}

// ── 各支付方式参数包 ──

// HourlyParams 按小时计费参数
type HourlyParams struct {
	BaseRate           float64 `json:"base_rate"`
	OvernightRate      float64 `json:"overnight_rate,omitempty"`
	WeekendRate        float64 `json:"weekend_rate,omitempty"`
	HolidayRate        float64 `json:"holiday_rate,omitempty"`
	OvertimeMultiplier float64 `json:"overtime_multiplier,omitempty"`
}

// FixedParams 固定金额参数（per_shift / daily / weekly / monthly 共用结构）
type FixedParams struct {
	Amount      float64 `json:"amount"`
	WeekendRate float64 `json:"weekend_rate,omitempty"`
	HolidayRate float64 `json:"holiday_rate,omitempty"`
}

// PerformanceParams 绩效计费参数
type PerformanceParams struct {
	BaseAmount    float64 `json:"base_amount"`
	BonusPerPoint float64 `json:"bonus_per_point"`
	MaxBonus      float64 `json:"max_bonus,omitempty"`
}

// CommissionParams 抽成计费参数
type CommissionParams struct {
	BaseAmount float64 `json:"base_amount,omitempty"`
	Percentage float64 `json:"percentage"`
}

// PaymentParams 支付参数联合体：有且仅有与 payment_method 匹配的一个分支被填充
// 写入前由 Service 层校验分支与判别字段一致
type PaymentParams struct {
	Hourly      *HourlyParams      `json:"hourly,omitempty"`
	PerShift    *FixedParams       `json:"per_shift,omitempty"`
	Daily       *FixedParams       `json:"daily,omitempty"`
	Weekly      *FixedParams       `json:"weekly,omitempty"`
	Monthly     *FixedParams       `json:"monthly,omitempty"`
	Performance *PerformanceParams `json:"performance,omitempty"`
	Commission  *CommissionParams  `json:"commission,omitempty"`
	Custom      JSONMap            `json:"custom,omitempty"`
}

// PopulatedMethods 返回已填充分支对应的支付方式名
func (p *PaymentParams) PopulatedMethods() []string {
	var methods []string
	if p.Hourly != nil {
		methods = append(methods, PaymentMethodHourly)
	}
	if p.PerShift != nil {
		methods = append(methods, PaymentMethodPerShift)
	}
	if p.Daily != nil {
		methods = append(methods, PaymentMethodDaily)
	}
	if p.Weekly != nil {
		methods = append(methods, PaymentMethodWeekly)
	}
	if p.Monthly != nil {
		methods = append(methods, PaymentMethodMonthly)
	}
	if p.Performance != nil {
		methods = append(methods, PaymentMethodPerformance)
	}
	if p.Commission != nil {
		methods = append(methods, PaymentMethodCommission)
	}
	if p.Custom != nil {
		methods = append(methods, PaymentMethodCustom)
	}
	return methods
}

// MatchesMethod 判断联合体是否恰好填充了 method 对应的分支
func (p *PaymentParams) MatchesMethod(method string) bool {
	populated := p.PopulatedMethods()
	return len(populated) == 1 && populated[0] == method
}

// Scan 反序列化 JSONB 列
func (p *PaymentParams) Scan(src interface{}) error {
	if src == nil {
		*p = PaymentParams{}
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("PaymentParams.Scan: unsupported type %T", src)
	}
	return json.Unmarshal(b, p)
}

// Value 序列化为 JSONB
func (p PaymentParams) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// ShiftPaymentConfig 班次支付配置表 — 对应 shift_payment_configs
// 不变式：同一 (organization_id, shift_type_id) 同时最多一条 is_active 配置
type ShiftPaymentConfig struct {
	PaymentConfigID string        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"payment_config_id"`
	OrganizationID  string        `gorm:"type:uuid;not null;index"                       json:"organization_id"`
	ShiftTypeID     string        `gorm:"type:uuid;not null;index"                       json:"shift_type_id"`
	PaymentMethod   string        `gorm:"type:varchar(30);not null"                      json:"payment_method"`
	Params          PaymentParams `gorm:"type:jsonb;not null"                            json:"params"`
	Currency        string        `gorm:"type:varchar(10);not null;default:'GBP'"        json:"currency"`
	EffectiveFrom   time.Time     `gorm:"type:date;not null"                             json:"effective_from"`
	EffectiveTo     *time.Time    `gorm:"type:date"                                      json:"effective_to,omitempty"`
	IsActive        bool          `gorm:"not null;default:true"                          json:"is_active"`
	VersionedModel

	// 关联
	ShiftType *ShiftType `gorm:"foreignKey:ShiftTypeID;references:ShiftTypeID" json:"shift_type,omitempty"`
}

// TableName 指定表名
func (ShiftPaymentConfig) TableName() string { return "shift_payment_configs" }
