package dto

import "time"

// ── 工时模块 DTO ──

// CreateTimesheetRequest 创建工时记录请求
type CreateTimesheetRequest struct {
	UserID      string    `json:"user_id"       binding:"required,uuid"`
	ShiftTypeID string    `json:"shift_type_id" binding:"required,uuid"`
	WorkDate    time.Time `json:"work_date"     binding:"required"`
	StartTime   string    `json:"start_time"    binding:"required"`
	EndTime     string    `json:"end_time"      binding:"required"`
	Notes       string    `json:"notes"         binding:"max=500"`
}

// TimesheetRangeQuery 工时记录日期范围查询
type TimesheetRangeQuery struct {
	Start time.Time `form:"start" binding:"required" time_format:"2006-01-02"`
	End   time.Time `form:"end"   binding:"required" time_format:"2006-01-02"`
}

// ReviewTimesheetRequest 审批工时记录请求
type ReviewTimesheetRequest struct {
	Approve bool `json:"approve"`
}
