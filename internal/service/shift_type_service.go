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

// ── 班次类型模块业务错误 ──

var (
	ErrShiftTypeNotFound     = errors.New("班次类型不存在")
	ErrShiftTemplateNotFound = errors.New("班次模板不存在")
	ErrShiftTypeNameTaken    = errors.New("该机构下已存在同名班次类型")
	ErrInvalidTimeFormat     = errors.New("时间格式无效，应为 HH:MM")
	ErrInvalidWeekday        = errors.New("星期名无效")
	ErrInvalidTimezone       = errors.New("时区标识无效")
	ErrInvalidOrgCategory    = errors.New("机构类别无效")
)

// operatorRef 把操作者 ID 转为审计字段引用；空 ID 返回 nil
func operatorRef(operatorID string) *string {
	if operatorID == "" {
		return nil
	}
	return &operatorID
}

// parseClockMinutes 解析 "HH:MM" 为当日分钟偏移
func parseClockMinutes(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, ErrInvalidTimeFormat
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ComputeDurationMinutes 计算班次时长（分钟）。
// 跨夜班次结束时间不晚于开始时间时补一天（+1440）；
// 非跨夜班次不做回绕，录入倒置时段由调用方校验拦截。
func ComputeDurationMinutes(startTime, endTime string, isOvernight bool) (int, error) {
	start, err := parseClockMinutes(startTime)
	if err != nil {
		return 0, err
	}
	end, err := parseClockMinutes(endTime)
	if err != nil {
		return 0, err
	}
	duration := end - start
	if isOvernight && end <= start {
		duration += 24 * 60
	}
	return duration, nil
}

// convertClock 把 "HH:MM" 从 from 时区换算到 to 时区。
// 仅换算钟面时刻，换算可能跨日（如 23:00 → 07:00），日期偏移不保留。
func convertClock(hhmm string, from, to *time.Location) (string, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return "", ErrInvalidTimeFormat
	}
	// 固定参考日，避免夏令时切换日的歧义钟面
	ref := time.Date(2000, 1, 15, t.Hour(), t.Minute(), 0, 0, from)
	return ref.In(to).Format("15:04"), nil
}

// ShiftTypeService 班次类型业务接口
type ShiftTypeService interface {
	Create(ctx context.Context, organizationID, operatorID string, req *dto.CreateShiftTypeRequest) (*model.ShiftType, error)
	GetByID(ctx context.Context, id string) (*model.ShiftType, error)
	ListByOrganization(ctx context.Context, organizationID string, includeInactive bool) ([]model.ShiftType, error)
	Update(ctx context.Context, id, operatorID string, req *dto.UpdateShiftTypeRequest) (*model.ShiftType, error)
	Delete(ctx context.Context, id, operatorID string) error
	// ListTemplates 列出平台级班次模板；category 非空时按机构类别过滤
	ListTemplates(ctx context.Context, category string) ([]model.ShiftTemplate, error)
	// ApplyTemplate 套用模板生成机构班次类型：模板字段打底，定制项浅合并覆盖
	ApplyTemplate(ctx context.Context, organizationID, operatorID string, req *dto.ApplyTemplateRequest) (*model.ShiftType, error)
}

type shiftTypeService struct {
	repo      *repository.Repository
	canonical *time.Location // 服务端基准时区，时间段一律以此存储
	logger    *zap.Logger
}

// NewShiftTypeService 创建 ShiftTypeService 实例
func NewShiftTypeService(repo *repository.Repository, canonical *time.Location, logger *zap.Logger) ShiftTypeService {
	return &shiftTypeService{repo: repo, canonical: canonical, logger: logger}
}

// callerLocation 解析调用方时区；未指定则视为基准时区
func (s *shiftTypeService) callerLocation(tz string) (*time.Location, error) {
	if tz == "" {
		return s.canonical, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, ErrInvalidTimezone
	}
	return loc, nil
}

// normalizeTiming 校验并装配时间段：调用方时区换算到基准时区后计算时长
func (s *shiftTypeService) normalizeTiming(startTime, endTime string, isOvernight bool, callerTZ string) (model.ShiftTiming, error) {
	loc, err := s.callerLocation(callerTZ)
	if err != nil {
		return model.ShiftTiming{}, err
	}
	start, err := convertClock(startTime, loc, s.canonical)
	if err != nil {
		return model.ShiftTiming{}, err
	}
	end, err := convertClock(endTime, loc, s.canonical)
	if err != nil {
		return model.ShiftTiming{}, err
	}
	duration, err := ComputeDurationMinutes(start, end, isOvernight)
	if err != nil {
		return model.ShiftTiming{}, err
	}
	return model.ShiftTiming{
		StartTime:       start,
		EndTime:         end,
		DurationMinutes: duration,
		IsOvernight:     isOvernight,
	}, nil
}

func validateWeekdays(days []string) error {
	for _, d := range days {
		if !model.IsValidWeekday(d) {
			return fmt.Errorf("%w: %s", ErrInvalidWeekday, d)
		}
	}
	return nil
}

// ────────────────────── Create ──────────────────────

func (s *shiftTypeService) Create(ctx context.Context, organizationID, operatorID string, req *dto.CreateShiftTypeRequest) (*model.ShiftType, error) {
	if err := validateWeekdays(req.ApplicableDays); err != nil {
		return nil, err
	}

	// 同机构内名称唯一
	if _, err := s.repo.ShiftType.GetByName(ctx, organizationID, req.Name); err == nil {
		return nil, ErrShiftTypeNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	timing, err := s.normalizeTiming(req.StartTime, req.EndTime, req.IsOvernight, req.Timezone)
	if err != nil {
		return nil, err
	}

	category := req.Category
	if category == "" {
		org, err := s.repo.Organization.GetByID(ctx, organizationID)
		if err != nil {
			return nil, err
		}
		category = org.Category
	}
	if !model.IsValidOrgCategory(category) {
		return nil, ErrInvalidOrgCategory
	}

	st := &model.ShiftType{
		OrganizationID: organizationID,
		Name:           req.Name,
		Description:    req.Description,
		Category:       category,
		DefaultTiming:  timing,
		Color:          req.Color,
		Icon:           req.Icon,
		ApplicableDays: model.StringArray(req.ApplicableDays),
		Metadata:       model.JSONMap(req.Metadata),
		IsActive:       true,
	}
	st.CreatedBy = operatorRef(operatorID)

	if err := s.repo.ShiftType.Create(ctx, st); err != nil {
		s.logger.Error("创建班次类型失败",
			zap.String("organization_id", organizationID), zap.String("name", req.Name), zap.Error(err))
		return nil, err
	}

	s.logger.Info("班次类型已创建",
		zap.String("shift_type_id", st.ShiftTypeID),
		zap.String("name", st.Name),
		zap.Int("duration_minutes", st.DefaultTiming.DurationMinutes),
	)
	return st, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *shiftTypeService) GetByID(ctx context.Context, id string) (*model.ShiftType, error) {
	st, err := s.repo.ShiftType.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShiftTypeNotFound
		}
		return nil, err
	}
	return st, nil
}

// ────────────────────── ListByOrganization ──────────────────────

func (s *shiftTypeService) ListByOrganization(ctx context.Context, organizationID string, includeInactive bool) ([]model.ShiftType, error) {
	return s.repo.ShiftType.ListByOrganization(ctx, organizationID, includeInactive)
}

// ────────────────────── Update ──────────────────────

func (s *shiftTypeService) Update(ctx context.Context, id, operatorID string, req *dto.UpdateShiftTypeRequest) (*model.ShiftType, error) {
	st, err := s.repo.ShiftType.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShiftTypeNotFound
		}
		return nil, err
	}

	if req.Name != nil && *req.Name != st.Name {
		if _, err := s.repo.ShiftType.GetByName(ctx, st.OrganizationID, *req.Name); err == nil {
			return nil, ErrShiftTypeNameTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		st.Name = *req.Name
	}
	if req.Description != nil {
		st.Description = *req.Description
	}
	if req.Color != nil {
		st.Color = *req.Color
	}
	if req.Icon != nil {
		st.Icon = *req.Icon
	}
	if req.ApplicableDays != nil {
		if err := validateWeekdays(req.ApplicableDays); err != nil {
			return nil, err
		}
		st.ApplicableDays = model.StringArray(req.ApplicableDays)
	}
	if req.Metadata != nil {
		st.Metadata = model.JSONMap(req.Metadata)
	}
	if req.IsActive != nil {
		st.IsActive = *req.IsActive
	}

	// 时间段字段任一变更都整体重算
	if req.StartTime != nil || req.EndTime != nil || req.IsOvernight != nil {
		startTime := st.DefaultTiming.StartTime
		endTime := st.DefaultTiming.EndTime
		overnight := st.DefaultTiming.IsOvernight
		// 未变更的字段已是基准时区，换算仅作用于新值
		tz := req.Timezone
		if req.StartTime != nil {
			loc, lerr := s.callerLocation(tz)
			if lerr != nil {
				return nil, lerr
			}
			if startTime, err = convertClock(*req.StartTime, loc, s.canonical); err != nil {
				return nil, err
			}
		}
		if req.EndTime != nil {
			loc, lerr := s.callerLocation(tz)
			if lerr != nil {
				return nil, lerr
			}
			if endTime, err = convertClock(*req.EndTime, loc, s.canonical); err != nil {
				return nil, err
			}
		}
		if req.IsOvernight != nil {
			overnight = *req.IsOvernight
		}
		duration, derr := ComputeDurationMinutes(startTime, endTime, overnight)
		if derr != nil {
			return nil, derr
		}
		st.DefaultTiming = model.ShiftTiming{
			StartTime:       startTime,
			EndTime:         endTime,
			DurationMinutes: duration,
			IsOvernight:     overnight,
		}
	}

	st.UpdatedBy = operatorRef(operatorID)
	if err := s.repo.ShiftType.Update(ctx, st); err != nil {
		s.logger.Error("更新班次类型失败", zap.String("shift_type_id", id), zap.Error(err))
		return nil, err
	}
	return st, nil
}

// ────────────────────── Delete ──────────────────────

func (s *shiftTypeService) Delete(ctx context.Context, id, operatorID string) error {
	if _, err := s.repo.ShiftType.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrShiftTypeNotFound
		}
		return err
	}
	return s.repo.ShiftType.Delete(ctx, id, operatorID)
}

// ────────────────────── ListTemplates ──────────────────────

func (s *shiftTypeService) ListTemplates(ctx context.Context, category string) ([]model.ShiftTemplate, error) {
	if category != "" && !model.IsValidOrgCategory(category) {
		return nil, ErrInvalidOrgCategory
	}
	return s.repo.ShiftTemplate.List(ctx, category)
}

// ────────────────────── ApplyTemplate ──────────────────────

// ApplyTemplate 模板字段打底做浅合并：定制项提供的字段覆盖模板值，
// 未提供的字段原样继承；时长按合并结果重算
func (s *shiftTypeService) ApplyTemplate(ctx context.Context, organizationID, operatorID string, req *dto.ApplyTemplateRequest) (*model.ShiftType, error) {
	tpl, err := s.repo.ShiftTemplate.GetByID(ctx, req.TemplateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShiftTemplateNotFound
		}
		return nil, err
	}

	c := req.Customizations

	name := tpl.Name
	if c.Name != nil {
		name = *c.Name
	}
	description := tpl.Description
	if c.Description != nil {
		description = *c.Description
	}
	color := tpl.Color
	if c.Color != nil {
		color = *c.Color
	}
	icon := tpl.Icon
	if c.Icon != nil {
		icon = *c.Icon
	}
	days := tpl.ApplicableDays
	if c.ApplicableDays != nil {
		if err := validateWeekdays(c.ApplicableDays); err != nil {
			return nil, err
		}
		days = model.StringArray(c.ApplicableDays)
	}

	startTime := tpl.DefaultTiming.StartTime
	endTime := tpl.DefaultTiming.EndTime
	overnight := tpl.DefaultTiming.IsOvernight
	loc, err := s.callerLocation(req.Timezone)
	if err != nil {
		return nil, err
	}
	if c.StartTime != nil {
		if startTime, err = convertClock(*c.StartTime, loc, s.canonical); err != nil {
			return nil, err
		}
	}
	if c.EndTime != nil {
		if endTime, err = convertClock(*c.EndTime, loc, s.canonical); err != nil {
			return nil, err
		}
	}
	if c.IsOvernight != nil {
		overnight = *c.IsOvernight
	}
	duration, err := ComputeDurationMinutes(startTime, endTime, overnight)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.ShiftType.GetByName(ctx, organizationID, name); err == nil {
		return nil, ErrShiftTypeNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	st := &model.ShiftType{
		OrganizationID: organizationID,
		Name:           name,
		Description:    description,
		Category:       tpl.Category,
		DefaultTiming: model.ShiftTiming{
			StartTime:       startTime,
			EndTime:         endTime,
			DurationMinutes: duration,
			IsOvernight:     overnight,
		},
		Color:          color,
		Icon:           icon,
		ApplicableDays: days,
		IsActive:       true,
	}
	st.CreatedBy = operatorRef(operatorID)

	if err := s.repo.ShiftType.Create(ctx, st); err != nil {
		s.logger.Error("套用模板创建班次类型失败",
			zap.String("template_id", req.TemplateID),
			zap.String("organization_id", organizationID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("已套用班次模板",
		zap.String("template_id", req.TemplateID),
		zap.String("shift_type_id", st.ShiftTypeID),
	)
	return st, nil
}
