package model

import "time"

// ── 工时表状态 ──

const (
	TimesheetStatusPending  = "pending"
	TimesheetStatusApproved = "approved"
	TimesheetStatusRejected = "rejected"
)

// Timesheet 工时记录表 — 对应 timesheets
// 每条记录对应一名员工在某日完成的一个班次
type Timesheet struct {
	TimesheetID    string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"timesheet_id"`
	OrganizationID string    `gorm:"type:uuid;not null;index"                       json:"organization_id"`
	UserID         string    `gorm:"type:uuid;not null;index"                       json:"user_id"`
	ShiftTypeID    string    `gorm:"type:uuid;not null"                             json:"shift_type_id"`
	WorkDate       time.Time `gorm:"type:date;not null"                             json:"work_date"`
	StartTime      string    `gorm:"type:time;not null"                             json:"start_time"`
	EndTime        string    `gorm:"type:time;not null"                             json:"end_time"`
	Hours          float64   `gorm:"type:numeric(5,2);not null"                     json:"hours"`
	Status         string    `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"` // pending | approved | rejected
	ApprovedBy     *string   `gorm:"type:uuid"                                      json:"approved_by,omitempty"`
	Notes          string    `gorm:"type:varchar(500)"                              json:"notes,omitempty"`
	VersionedModel

	// 关联
	User      *User      `gorm:"foreignKey:UserID;references:UserID"           json:"user,omitempty"`
	ShiftType *ShiftType `gorm:"foreignKey:ShiftTypeID;references:ShiftTypeID" json:"shift_type,omitempty"`
}

// TableName 指定表名
func (Timesheet) TableName() string { return "timesheets" }
