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

// ── 员工费率模块业务错误 ──

var (
	ErrStaffRateNotFound = errors.New("员工费率覆盖不存在")
	ErrStaffRateEmpty    = errors.New("费率覆盖至少需要提供一项：覆盖费率、奖金费率或自定义参数")
	ErrNoRateConfigured  = errors.New("该班次类型未配置任何费率")
)

// StaffRateService 员工费率覆盖业务接口
type StaffRateService interface {
	Create(ctx context.Context, organizationID, operatorID string, req *dto.CreateStaffRateRequest) (*model.StaffRate, error)
	GetByID(ctx context.Context, id string) (*model.StaffRate, error)
	ListByUser(ctx context.Context, organizationID, userID string) ([]model.StaffRate, error)
	ListByOrganization(ctx context.Context, organizationID string, page, pageSize int) ([]model.StaffRate, int64, error)
	Update(ctx context.Context, id, operatorID string, req *dto.UpdateStaffRateRequest) (*model.StaffRate, error)
	Delete(ctx context.Context, id, operatorID string) error
	// ResolveEffectiveRate 解析员工在某班次类型上的有效费率：
	// 个人覆盖优先，无覆盖时回落到班次类型的活跃支付配置
	ResolveEffectiveRate(ctx context.Context, organizationID, userID, shiftTypeID string) (*dto.EffectiveRateResponse, error)
}

type staffRateService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStaffRateService 创建 StaffRateService 实例
func NewStaffRateService(repo *repository.Repository, logger *zap.Logger) StaffRateService {
	return &staffRateService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *staffRateService) Create(ctx context.Context, organizationID, operatorID string, req *dto.CreateStaffRateRequest) (*model.StaffRate, error) {
	if req.OverrideRate == nil && req.BonusRate == nil && len(req.CustomRateParams) == 0 {
		return nil, ErrStaffRateEmpty
	}
	if err := validateEffectiveRange(req.EffectiveFrom, req.EffectiveTo); err != nil {
		return nil, err
	}

	if _, err := s.repo.User.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if req.ShiftTypeID != nil {
		if _, err := s.repo.ShiftType.GetByID(ctx, *req.ShiftTypeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrShiftTypeNotFound
			}
			return nil, err
		}
	}
	if req.PaymentConfigID != nil {
		if _, err := s.repo.PaymentConfig.GetByID(ctx, *req.PaymentConfigID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrPaymentConfigNotFound
			}
			return nil, err
		}
	}

	rate := &model.StaffRate{
		OrganizationID:   organizationID,
		UserID:           req.UserID,
		ShiftTypeID:      req.ShiftTypeID,
		PaymentConfigID:  req.PaymentConfigID,
		OverrideRate:     req.OverrideRate,
		BonusRate:        req.BonusRate,
		CustomRateParams: model.JSONMap(req.CustomRateParams),
		EffectiveFrom:    req.EffectiveFrom,
		EffectiveTo:      req.EffectiveTo,
		IsActive:         true,
	}
	rate.CreatedBy = operatorRef(operatorID)

	if err := s.repo.StaffRate.Create(ctx, rate); err != nil {
		s.logger.Error("创建员工费率覆盖失败",
			zap.String("user_id", req.UserID), zap.Error(err))
		return nil, err
	}
	return rate, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *staffRateService) GetByID(ctx context.Context, id string) (*model.StaffRate, error) {
	rate, err := s.repo.StaffRate.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStaffRateNotFound
		}
		return nil, err
	}
	return rate, nil
}

// ────────────────────── ListByUser ──────────────────────

func (s *staffRateService) ListByUser(ctx context.Context, organizationID, userID string) ([]model.StaffRate, error) {
	return s.repo.StaffRate.ListByUser(ctx, organizationID, userID)
}

// ────────────────────── ListByOrganization ──────────────────────

func (s *staffRateService) ListByOrganization(ctx context.Context, organizationID string, page, pageSize int) ([]model.StaffRate, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.repo.StaffRate.ListByOrganization(ctx, organizationID, (page-1)*pageSize, pageSize)
}

// ────────────────────── Update ──────────────────────

func (s *staffRateService) Update(ctx context.Context, id, operatorID string, req *dto.UpdateStaffRateRequest) (*model.StaffRate, error) {
	rate, err := s.repo.StaffRate.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStaffRateNotFound
		}
		return nil, err
	}

	if req.OverrideRate != nil {
		rate.OverrideRate = req.OverrideRate
	}
	if req.BonusRate != nil {
		rate.BonusRate = req.BonusRate
	}
	if req.CustomRateParams != nil {
		rate.CustomRateParams = model.JSONMap(req.CustomRateParams)
	}
	if req.EffectiveFrom != nil {
		rate.EffectiveFrom = *req.EffectiveFrom
	}
	if req.EffectiveTo != nil {
		rate.EffectiveTo = req.EffectiveTo
	}
	if err := validateEffectiveRange(rate.EffectiveFrom, rate.EffectiveTo); err != nil {
		return nil, err
	}
	if req.IsActive != nil {
		rate.IsActive = *req.IsActive
	}

	rate.UpdatedBy = operatorRef(operatorID)
	if err := s.repo.StaffRate.Update(ctx, rate); err != nil {
		s.logger.Error("更新员工费率覆盖失败", zap.String("staff_rate_id", id), zap.Error(err))
		return nil, err
	}
	return rate, nil
}

// ────────────────────── Delete ──────────────────────

func (s *staffRateService) Delete(ctx context.Context, id, operatorID string) error {
	if _, err := s.repo.StaffRate.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStaffRateNotFound
		}
		return err
	}
	return s.repo.StaffRate.Delete(ctx, id, operatorID)
}

// ────────────────────── ResolveEffectiveRate ──────────────────────

func (s *staffRateService) ResolveEffectiveRate(ctx context.Context, organizationID, userID, shiftTypeID string) (*dto.EffectiveRateResponse, error) {
	rate, err := s.repo.StaffRate.GetActiveByUserAndShiftType(ctx, organizationID, userID, shiftTypeID)
	if err == nil {
		return &dto.EffectiveRateResponse{
			Source:           dto.RateSourceStaffRate,
			StaffRateID:      &rate.StaffRateID,
			OverrideRate:     rate.OverrideRate,
			BonusRate:        rate.BonusRate,
			CustomRateParams: map[string]interface{}(rate.CustomRateParams),
		}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 无个人覆盖，回落到班次类型级配置
	cfg, err := s.repo.PaymentConfig.GetActiveByShiftType(ctx, organizationID, shiftTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoRateConfigured
		}
		return nil, err
	}
	return &dto.EffectiveRateResponse{
		Source:          dto.RateSourcePaymentConfig,
		PaymentConfigID: &cfg.PaymentConfigID,
		PaymentMethod:   cfg.PaymentMethod,
		Params:          &cfg.Params,
		Currency:        cfg.Currency,
	}, nil
}
