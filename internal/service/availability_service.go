package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"shiftcare/internal/dto"
	"shiftcare/internal/model"
	"shiftcare/internal/repository"
)

// ── 员工可用性模块业务错误 ──

var (
	ErrAvailabilityNotFound = errors.New("员工可用性记录不存在")
	ErrInvalidPeriod        = errors.New("可用时段无效，应为 day / night / both")
	ErrInvalidDateRange     = errors.New("日期范围无效：结束日期早于开始日期")
)

// sameCalendarDate 按 UTC 日历日比较两个时间点
func sameCalendarDate(a, b time.Time) bool {
	y1, m1, d1 := a.UTC().Date()
	y2, m2, d2 := b.UTC().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// calendarDate 归一化到 UTC 日历日零点，时刻部分丢弃
func calendarDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// periodCovers 判断条目时段能否满足请求时段：
// 时段相等或条目为 both 时命中。请求 both 表示需要全天可用，
// 仅覆盖半天的条目不命中。
func periodCovers(entryPeriod, requested string) bool {
	return entryPeriod == requested || entryPeriod == model.PeriodBoth
}

// AvailabilityService 员工可用性业务接口
type AvailabilityService interface {
	// CreateOrUpdate 创建或整体替换可用性记录。
	// 命中既有记录（周期性记录按用户唯一，非周期按生效窗口重叠匹配）时
	// 条目数组整体替换，绝不与旧条目合并。
	CreateOrUpdate(ctx context.Context, organizationID, operatorID string, req *dto.UpsertAvailabilityRequest) (*model.EmployeeAvailability, error)
	// GetAvailability 查询 [start, end] 窗口内的可用性。
	// 非周期记录的条目裁剪到窗口内；周期性记录条目原样返回，由调用方按周规则展开。
	GetAvailability(ctx context.Context, organizationID, userID string, start, end time.Time) ([]dto.AvailabilityResponse, error)
	// UpdateSingleDate 单日增改删：period 为空表示删除该日条目，
	// 否则按日历日 upsert；无既有记录且为新增时落一条单日非周期记录
	UpdateSingleDate(ctx context.Context, organizationID, operatorID string, req *dto.UpdateSingleDateRequest) (*model.EmployeeAvailability, error)
	// GetAvailableEmployees 匹配指定日历日与时段的可用员工
	GetAvailableEmployees(ctx context.Context, organizationID string, date time.Time, period string) ([]dto.AvailableEmployeeResponse, error)
	// Delete 软删除可用性记录（历史保留）
	Delete(ctx context.Context, id, operatorID string) error
}

type availabilityService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAvailabilityService 创建 AvailabilityService 实例
func NewAvailabilityService(repo *repository.Repository, logger *zap.Logger) AvailabilityService {
	return &availabilityService{repo: repo, logger: logger}
}

func validateEntries(entries []dto.AvailabilityEntryInput) error {
	for _, e := range entries {
		if !model.IsValidPeriod(e.Period) {
			return fmt.Errorf("%w: %s", ErrInvalidPeriod, e.Period)
		}
	}
	return nil
}

func toModelEntries(entries []dto.AvailabilityEntryInput) model.AvailabilityEntryList {
	list := make(model.AvailabilityEntryList, 0, len(entries))
	for _, e := range entries {
		list = append(list, model.AvailabilityEntry{Date: e.Date, Period: e.Period})
	}
	return list
}

// ────────────────────── CreateOrUpdate ──────────────────────

func (s *availabilityService) CreateOrUpdate(ctx context.Context, organizationID, operatorID string, req *dto.UpsertAvailabilityRequest) (*model.EmployeeAvailability, error) {
	if _, err := s.repo.Organization.GetByID(ctx, organizationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, err
	}
	if _, err := s.repo.User.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if err := validateEntries(req.Entries); err != nil {
		return nil, err
	}
	if req.EffectiveTo != nil && req.EffectiveTo.Before(req.EffectiveFrom) {
		return nil, ErrInvalidDateRange
	}

	var existing *model.EmployeeAvailability
	var err error
	if req.IsRecurring {
		existing, err = s.repo.Availability.FindActiveRecurring(ctx, req.UserID, organizationID)
	} else {
		existing, err = s.repo.Availability.FindActiveOverlapping(ctx, req.UserID, organizationID, req.EffectiveFrom, req.EffectiveTo)
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if existing != nil {
		// 整体替换：旧条目全部丢弃
		existing.Entries = toModelEntries(req.Entries)
		existing.EffectiveFrom = req.EffectiveFrom
		existing.EffectiveTo = req.EffectiveTo
		existing.UpdatedBy = operatorRef(operatorID)
		if err := s.repo.Availability.Update(ctx, existing); err != nil {
			s.logger.Error("替换可用性记录失败",
				zap.String("availability_id", existing.AvailabilityID), zap.Error(err))
			return nil, err
		}
		s.logger.Info("可用性记录已整体替换",
			zap.String("availability_id", existing.AvailabilityID),
			zap.String("user_id", req.UserID),
			zap.Int("entries", len(existing.Entries)),
		)
		return existing, nil
	}

	av := &model.EmployeeAvailability{
		UserID:         req.UserID,
		OrganizationID: organizationID,
		Entries:        toModelEntries(req.Entries),
		EffectiveFrom:  req.EffectiveFrom,
		EffectiveTo:    req.EffectiveTo,
		IsRecurring:    req.IsRecurring,
		IsActive:       true,
	}
	av.CreatedBy = operatorRef(operatorID)

	if err := s.repo.Availability.Create(ctx, av); err != nil {
		s.logger.Error("创建可用性记录失败", zap.String("user_id", req.UserID), zap.Error(err))
		return nil, err
	}
	return av, nil
}

// ────────────────────── GetAvailability ──────────────────────

func (s *availabilityService) GetAvailability(ctx context.Context, organizationID, userID string, start, end time.Time) ([]dto.AvailabilityResponse, error) {
	if end.Before(start) {
		return nil, ErrInvalidDateRange
	}

	avs, err := s.repo.Availability.ListForWindow(ctx, organizationID, userID, start, end)
	if err != nil {
		s.logger.Error("查询可用性窗口失败",
			zap.String("organization_id", organizationID), zap.Error(err))
		return nil, err
	}

	// 窗口边界按日历日比较，时刻部分一律忽略
	winStart := calendarDate(start)
	winEnd := calendarDate(end)
	result := make([]dto.AvailabilityResponse, 0, len(avs))
	for i := range avs {
		av := &avs[i]
		entries := av.Entries
		if !av.IsRecurring {
			// 非周期记录仅返回窗口内条目；周期性记录条目是星期模板，不做日期裁剪
			filtered := make(model.AvailabilityEntryList, 0, len(entries))
			for _, e := range entries {
				d := calendarDate(e.Date)
				if !d.Before(winStart) && !d.After(winEnd) {
					filtered = append(filtered, e)
				}
			}
			entries = filtered
		}
		result = append(result, dto.AvailabilityResponse{
			AvailabilityID: av.AvailabilityID,
			UserID:         av.UserID,
			Entries:        entries,
			EffectiveFrom:  av.EffectiveFrom,
			EffectiveTo:    av.EffectiveTo,
			IsRecurring:    av.IsRecurring,
		})
	}
	return result, nil
}

// ────────────────────── UpdateSingleDate ──────────────────────

func (s *availabilityService) UpdateSingleDate(ctx context.Context, organizationID, operatorID string, req *dto.UpdateSingleDateRequest) (*model.EmployeeAvailability, error) {
	if req.Period != nil && !model.IsValidPeriod(*req.Period) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPeriod, *req.Period)
	}

	date := req.Date
	av, err := s.repo.Availability.FindActiveOverlapping(ctx, req.UserID, organizationID, date, &date)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		av, err = s.repo.Availability.FindActiveRecurring(ctx, req.UserID, organizationID)
	}
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		// 无任何既有记录
		if req.Period == nil {
			return nil, ErrAvailabilityNotFound
		}
		av = &model.EmployeeAvailability{
			UserID:         req.UserID,
			OrganizationID: organizationID,
			Entries:        model.AvailabilityEntryList{{Date: date, Period: *req.Period}},
			EffectiveFrom:  date,
			EffectiveTo:    &date,
			IsRecurring:    false,
			IsActive:       true,
		}
		av.CreatedBy = operatorRef(operatorID)
		if err := s.repo.Availability.Create(ctx, av); err != nil {
			return nil, err
		}
		return av, nil
	}

	// 命中既有记录：按日历日 upsert / 删除单日条目
	updated := make(model.AvailabilityEntryList, 0, len(av.Entries)+1)
	found := false
	for _, e := range av.Entries {
		if e.SameDate(date) {
			found = true
			if req.Period != nil {
				updated = append(updated, model.AvailabilityEntry{Date: e.Date, Period: *req.Period})
			}
			// period 为空：跳过即删除
			continue
		}
		updated = append(updated, e)
	}
	if !found && req.Period != nil {
		updated = append(updated, model.AvailabilityEntry{Date: date, Period: *req.Period})
	}

	av.Entries = updated
	av.UpdatedBy = operatorRef(operatorID)
	if err := s.repo.Availability.Update(ctx, av); err != nil {
		s.logger.Error("单日更新可用性失败",
			zap.String("availability_id", av.AvailabilityID), zap.Error(err))
		return nil, err
	}
	return av, nil
}

// ────────────────────── GetAvailableEmployees ──────────────────────

// GetAvailableEmployees 匹配规则：
//   - 非周期记录：存在与查询日同日且时段兼容的条目即可用
//   - 周期性记录：视为长期可用直接命中，星期级展开由排班端负责
func (s *availabilityService) GetAvailableEmployees(ctx context.Context, organizationID string, date time.Time, period string) ([]dto.AvailableEmployeeResponse, error) {
	if !model.IsValidPeriod(period) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPeriod, period)
	}

	avs, err := s.repo.Availability.ListActiveByOrganization(ctx, organizationID)
	if err != nil {
		s.logger.Error("查询机构可用性失败",
			zap.String("organization_id", organizationID), zap.Error(err))
		return nil, err
	}

	seen := make(map[string]bool)
	result := make([]dto.AvailableEmployeeResponse, 0)
	for i := range avs {
		av := &avs[i]
		if seen[av.UserID] {
			continue
		}

		matched := false
		matchedPeriod := ""
		if av.IsRecurring {
			matched = true
			matchedPeriod = model.PeriodBoth
		} else {
			for _, e := range av.Entries {
				if e.SameDate(date) && periodCovers(e.Period, period) {
					matched = true
					matchedPeriod = e.Period
					break
				}
			}
		}
		if !matched {
			continue
		}

		seen[av.UserID] = true
		resp := dto.AvailableEmployeeResponse{
			UserID:      av.UserID,
			Period:      matchedPeriod,
			IsRecurring: av.IsRecurring,
		}
		if av.User != nil {
			resp.Name = av.User.Name
			resp.Role = av.User.Role
		}
		result = append(result, resp)
	}
	return result, nil
}

// ────────────────────── Delete ──────────────────────

func (s *availabilityService) Delete(ctx context.Context, id, operatorID string) error {
	if _, err := s.repo.Availability.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAvailabilityNotFound
		}
		return err
	}
	return s.repo.Availability.Delete(ctx, id, operatorID)
}
