package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"shiftcare/internal/dto"
	"shiftcare/internal/model"
	"shiftcare/internal/repository"
)

// ── 轮班模式模块业务错误 ──

var (
	ErrRotationPatternNotFound = errors.New("轮班模式不存在")
	ErrRotationSequenceEmpty   = errors.New("轮班序列不能为空")
	ErrRotationStepInvalid     = errors.New("轮班序列段无效：连续天数必须为正")
	ErrMaxRepetitionsRequired  = errors.New("非无限重复的模式必须指定最大重复次数")
)

// RotationPatternService 轮班模式业务接口
type RotationPatternService interface {
	Create(ctx context.Context, organizationID, operatorID string, req *dto.CreateRotationPatternRequest) (*model.ShiftRotationPattern, error)
	GetByID(ctx context.Context, id string) (*model.ShiftRotationPattern, error)
	ListByOrganization(ctx context.Context, organizationID string) ([]model.ShiftRotationPattern, error)
	Update(ctx context.Context, id, operatorID string, req *dto.UpdateRotationPatternRequest) (*model.ShiftRotationPattern, error)
	Delete(ctx context.Context, id, operatorID string) error
}

type rotationPatternService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewRotationPatternService 创建 RotationPatternService 实例
func NewRotationPatternService(repo *repository.Repository, logger *zap.Logger) RotationPatternService {
	return &rotationPatternService{repo: repo, logger: logger}
}

func (s *rotationPatternService) validateSequence(ctx context.Context, seq model.RotationSequence) error {
	if len(seq) == 0 {
		return ErrRotationSequenceEmpty
	}
	for _, step := range seq {
		if step.ConsecutiveDays <= 0 {
			return ErrRotationStepInvalid
		}
		if _, err := s.repo.ShiftType.GetByID(ctx, step.ShiftTypeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrShiftTypeNotFound
			}
			return err
		}
	}
	return nil
}

// checkCycleLength cycle_length_days 与序列+休息天数之和的一致性为建议性校验：
// 不一致只告警不拒绝，声明值保留供排班端自行取舍
func (s *rotationPatternService) checkCycleLength(p *model.ShiftRotationPattern) {
	computed := p.Sequence.TotalDays() + p.BreakDays
	if p.CycleLengthDays != 0 && p.CycleLengthDays != computed {
		s.logger.Warn("轮班周期声明值与序列计算值不一致",
			zap.String("pattern_id", p.PatternID),
			zap.String("name", p.Name),
			zap.Int("declared", p.CycleLengthDays),
			zap.Int("computed", computed),
		)
	}
}

// ────────────────────── Create ──────────────────────

func (s *rotationPatternService) Create(ctx context.Context, organizationID, operatorID string, req *dto.CreateRotationPatternRequest) (*model.ShiftRotationPattern, error) {
	if err := s.validateSequence(ctx, req.Sequence); err != nil {
		return nil, err
	}
	if !req.RepeatIndefinitely && (req.MaxRepetitions == nil || *req.MaxRepetitions <= 0) {
		return nil, ErrMaxRepetitionsRequired
	}
	if req.EffectiveTo != nil && req.EffectiveTo.Before(req.EffectiveFrom) {
		return nil, ErrInvalidDateRange
	}

	cycleLength := req.CycleLengthDays
	if cycleLength == 0 {
		cycleLength = req.Sequence.TotalDays() + req.BreakDays
	}

	p := &model.ShiftRotationPattern{
		OrganizationID:     organizationID,
		Name:               req.Name,
		Description:        req.Description,
		Sequence:           req.Sequence,
		BreakDays:          req.BreakDays,
		CycleLengthDays:    cycleLength,
		RepeatIndefinitely: req.RepeatIndefinitely,
		MaxRepetitions:     req.MaxRepetitions,
		ApplicableStaff:    model.StringArray(req.ApplicableStaff),
		ApplicableRoles:    model.StringArray(req.ApplicableRoles),
		EffectiveFrom:      req.EffectiveFrom,
		EffectiveTo:        req.EffectiveTo,
		IsActive:           true,
	}
	p.CreatedBy = operatorRef(operatorID)

	if err := s.repo.RotationPattern.Create(ctx, p); err != nil {
		s.logger.Error("创建轮班模式失败",
			zap.String("organization_id", organizationID), zap.String("name", req.Name), zap.Error(err))
		return nil, err
	}
	s.checkCycleLength(p)
	return p, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *rotationPatternService) GetByID(ctx context.Context, id string) (*model.ShiftRotationPattern, error) {
	p, err := s.repo.RotationPattern.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRotationPatternNotFound
		}
		return nil, err
	}
	return p, nil
}

// ────────────────────── ListByOrganization ──────────────────────

func (s *rotationPatternService) ListByOrganization(ctx context.Context, organizationID string) ([]model.ShiftRotationPattern, error) {
	return s.repo.RotationPattern.ListByOrganization(ctx, organizationID)
}

// ────────────────────── Update ──────────────────────

func (s *rotationPatternService) Update(ctx context.Context, id, operatorID string, req *dto.UpdateRotationPatternRequest) (*model.ShiftRotationPattern, error) {
	p, err := s.repo.RotationPattern.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRotationPatternNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Sequence != nil {
		if err := s.validateSequence(ctx, req.Sequence); err != nil {
			return nil, err
		}
		p.Sequence = req.Sequence
	}
	if req.BreakDays != nil {
		p.BreakDays = *req.BreakDays
	}
	if req.CycleLengthDays != nil {
		p.CycleLengthDays = *req.CycleLengthDays
	}
	if req.RepeatIndefinitely != nil {
		p.RepeatIndefinitely = *req.RepeatIndefinitely
	}
	if req.MaxRepetitions != nil {
		p.MaxRepetitions = req.MaxRepetitions
	}
	if !p.RepeatIndefinitely && (p.MaxRepetitions == nil || *p.MaxRepetitions <= 0) {
		return nil, ErrMaxRepetitionsRequired
	}
	if req.ApplicableStaff != nil {
		p.ApplicableStaff = model.StringArray(req.ApplicableStaff)
	}
	if req.ApplicableRoles != nil {
		p.ApplicableRoles = model.StringArray(req.ApplicableRoles)
	}
	if req.EffectiveFrom != nil {
		p.EffectiveFrom = *req.EffectiveFrom
	}
	if req.EffectiveTo != nil {
		p.EffectiveTo = req.EffectiveTo
	}
	if p.EffectiveTo != nil && p.EffectiveTo.Before(p.EffectiveFrom) {
		return nil, ErrInvalidDateRange
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	p.UpdatedBy = operatorRef(operatorID)
	if err := s.repo.RotationPattern.Update(ctx, p); err != nil {
		s.logger.Error("更新轮班模式失败", zap.String("pattern_id", id), zap.Error(err))
		return nil, err
	}
	s.checkCycleLength(p)
	return p, nil
}

// ────────────────────── Delete ──────────────────────

func (s *rotationPatternService) Delete(ctx context.Context, id, operatorID string) error {
	if _, err := s.repo.RotationPattern.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRotationPatternNotFound
		}
		return err
	}
	return s.repo.RotationPattern.Delete(ctx, id, operatorID)
}
