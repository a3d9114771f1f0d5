package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"shiftcare/internal/dto"
	"shiftcare/internal/model"
	"shiftcare/internal/repository"
)

// ── 工时模块业务错误 ──

var (
	ErrTimesheetNotFound   = errors.New("工时记录不存在")
	ErrTimesheetNotPending = errors.New("仅待审批的工时记录可以审批")
	ErrInvalidTimesheet    = errors.New("工时记录无效")
)

// TimesheetService 工时记录业务接口
type TimesheetService interface {
	Create(ctx context.Context, organizationID, operatorID string, req *dto.CreateTimesheetRequest) (*model.Timesheet, error)
	GetByID(ctx context.Context, id string) (*model.Timesheet, error)
	ListByUser(ctx context.Context, organizationID, userID string, req *dto.TimesheetRangeQuery) ([]model.Timesheet, error)
	ListByOrganization(ctx context.Context, organizationID string, req *dto.TimesheetRangeQuery) ([]model.Timesheet, error)
	// Review 审批工时记录：approved / rejected，仅 pending 状态可审批
	Review(ctx context.Context, id, operatorID string, approve bool) (*model.Timesheet, error)
	Delete(ctx context.Context, id, operatorID string) error
}

type timesheetService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTimesheetService 创建 TimesheetService 实例
func NewTimesheetService(repo *repository.Repository, logger *zap.Logger) TimesheetService {
	return &timesheetService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *timesheetService) Create(ctx context.Context, organizationID, operatorID string, req *dto.CreateTimesheetRequest) (*model.Timesheet, error) {
	start, err := parseClockMinutes(req.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := parseClockMinutes(req.EndTime)
	if err != nil {
		return nil, err
	}

	st, err := s.repo.ShiftType.GetByID(ctx, req.ShiftTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShiftTypeNotFound
		}
		return nil, err
	}

	// 实际工时按打卡时间计算；跨夜班次结束早于开始按次日处理
	minutes := end - start
	if minutes <= 0 && st.DefaultTiming.IsOvernight {
		minutes += 24 * 60
	}
	if minutes <= 0 {
		return nil, fmt.Errorf("%w: 结束时间不晚于开始时间", ErrInvalidTimesheet)
	}

	ts := &model.Timesheet{
		OrganizationID: organizationID,
		UserID:         req.UserID,
		ShiftTypeID:    req.ShiftTypeID,
		WorkDate:       req.WorkDate,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Hours:          float64(minutes) / 60,
		Status:         model.TimesheetStatusPending,
		Notes:          req.Notes,
	}
	ts.CreatedBy = operatorRef(operatorID)

	if err := s.repo.Timesheet.Create(ctx, ts); err != nil {
		s.logger.Error("创建工时记录失败",
			zap.String("user_id", req.UserID), zap.Error(err))
		return nil, err
	}
	return ts, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *timesheetService) GetByID(ctx context.Context, id string) (*model.Timesheet, error) {
	ts, err := s.repo.Timesheet.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTimesheetNotFound
		}
		return nil, err
	}
	return ts, nil
}

// ────────────────────── ListByUser ──────────────────────

func (s *timesheetService) ListByUser(ctx context.Context, organizationID, userID string, req *dto.TimesheetRangeQuery) ([]model.Timesheet, error) {
	if req.End.Before(req.Start) {
		return nil, ErrInvalidDateRange
	}
	return s.repo.Timesheet.ListByUserRange(ctx, organizationID, userID, req.Start, req.End)
}

// ────────────────────── ListByOrganization ──────────────────────

func (s *timesheetService) ListByOrganization(ctx context.Context, organizationID string, req *dto.TimesheetRangeQuery) ([]model.Timesheet, error) {
	if req.End.Before(req.Start) {
		return nil, ErrInvalidDateRange
	}
	return s.repo.Timesheet.ListByOrganizationRange(ctx, organizationID, req.Start, req.End)
}

// ────────────────────── Review ──────────────────────

func (s *timesheetService) Review(ctx context.Context, id, operatorID string, approve bool) (*model.Timesheet, error) {
	ts, err := s.repo.Timesheet.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTimesheetNotFound
		}
		return nil, err
	}
	if ts.Status != model.TimesheetStatusPending {
		return nil, ErrTimesheetNotPending
	}

	if approve {
		ts.Status = model.TimesheetStatusApproved
	} else {
		ts.Status = model.TimesheetStatusRejected
	}
	ts.ApprovedBy = operatorRef(operatorID)
	ts.UpdatedBy = operatorRef(operatorID)

	if err := s.repo.Timesheet.Update(ctx, ts); err != nil {
		s.logger.Error("审批工时记录失败", zap.String("timesheet_id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("工时记录已审批",
		zap.String("timesheet_id", id),
		zap.String("status", ts.Status),
	)
	return ts, nil
}

// ────────────────────── Delete ──────────────────────

func (s *timesheetService) Delete(ctx context.Context, id, operatorID string) error {
	if _, err := s.repo.Timesheet.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTimesheetNotFound
		}
		return err
	}
	return s.repo.Timesheet.Delete(ctx, id, operatorID)
}
