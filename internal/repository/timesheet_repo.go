package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"shiftcare/internal/model"
	pkgerrors "shiftcare/pkg/errors"
)

// TimesheetRepository 工时记录数据访问接口
type TimesheetRepository interface {
	Create(ctx context.Context, ts *model.Timesheet) error
	GetByID(ctx context.Context, id string) (*model.Timesheet, error)
	// ListByOrganizationRange 查询机构在 [start, end] 日期范围内的工时记录
	ListByOrganizationRange(ctx context.Context, organizationID string, start, end time.Time) ([]model.Timesheet, error)
	ListByUserRange(ctx context.Context, organizationID, userID string, start, end time.Time) ([]model.Timesheet, error)
	Update(ctx context.Context, ts *model.Timesheet) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type timesheetRepo struct {
	db *gorm.DB
}

// NewTimesheetRepo 创建 TimesheetRepository 实例
func NewTimesheetRepo(db *gorm.DB) TimesheetRepository {
	return &timesheetRepo{db: db}
}

func (r *timesheetRepo) Create(ctx context.Context, ts *model.Timesheet) error {
	return r.db.WithContext(ctx).Create(ts).Error
}

func (r *timesheetRepo) GetByID(ctx context.Context, id string) (*model.Timesheet, error) {
	var ts model.Timesheet
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("ShiftType").
		Where("timesheet_id = ?", id).
		First(&ts).Error
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

func (r *timesheetRepo) ListByOrganizationRange(ctx context.Context, organizationID string, start, end time.Time) ([]model.Timesheet, error) {
	var list []model.Timesheet
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("ShiftType").
		Where("organization_id = ? AND work_date >= ? AND work_date <= ?", organizationID, start, end).
		Order("user_id ASC, work_date ASC").
		Find(&list).Error
	return list, err
}

func (r *timesheetRepo) ListByUserRange(ctx context.Context, organizationID, userID string, start, end time.Time) ([]model.Timesheet, error) {
	var list []model.Timesheet
	err := r.db.WithContext(ctx).
		Preload("ShiftType").
		Where("organization_id = ? AND user_id = ? AND work_date >= ? AND work_date <= ?",
			organizationID, userID, start, end).
		Order("work_date ASC").
		Find(&list).Error
	return list, err
}

// Update 带乐观锁：两名管理员同时审批同一条记录时后写者失败
func (r *timesheetRepo) Update(ctx context.Context, ts *model.Timesheet) error {
	oldVersion := ts.Version
	result := r.db.WithContext(ctx).
		Model(ts).
		Where("timesheet_id = ? AND version = ?", ts.TimesheetID, oldVersion).
		Updates(map[string]interface{}{
			"status":      ts.Status,
			"approved_by": ts.ApprovedBy,
			"notes":       ts.Notes,
			"updated_by":  ts.UpdatedBy,
			"version":     oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	ts.Version = oldVersion + 1
	return nil
}

func (r *timesheetRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Timesheet{}).
		Where("timesheet_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
