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

// ── 支付配置模块业务错误 ──

var (
	ErrPaymentConfigNotFound = errors.New("支付配置不存在")
	ErrInvalidPaymentMethod  = errors.New("支付方式无效")
	ErrPaymentParamsMismatch = errors.New("支付参数分支与支付方式不匹配")
	ErrInvalidEffectiveRange = errors.New("生效区间无效：结束日期早于开始日期")
	ErrPaymentConfigForeign  = errors.New("支付配置不属于该机构")
)

// PaymentConfigService 班次支付配置业务接口
type PaymentConfigService interface {
	// Create 创建支付配置并激活；同班次类型已有的活跃配置先行停用，
	// 保证任意时刻每个班次类型最多一条活跃配置
	Create(ctx context.Context, organizationID, operatorID string, req *dto.CreatePaymentConfigRequest) (*model.ShiftPaymentConfig, error)
	GetByID(ctx context.Context, id string) (*model.ShiftPaymentConfig, error)
	GetActiveByShiftType(ctx context.Context, organizationID, shiftTypeID string) (*model.ShiftPaymentConfig, error)
	ListByOrganization(ctx context.Context, organizationID string) ([]model.ShiftPaymentConfig, error)
	Update(ctx context.Context, id, operatorID string, req *dto.UpdatePaymentConfigRequest) (*model.ShiftPaymentConfig, error)
	Deactivate(ctx context.Context, id, operatorID string) error
	Delete(ctx context.Context, id, operatorID string) error
}

type paymentConfigService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPaymentConfigService 创建 PaymentConfigService 实例
func NewPaymentConfigService(repo *repository.Repository, logger *zap.Logger) PaymentConfigService {
	return &paymentConfigService{repo: repo, logger: logger}
}

// validatePaymentVariant 校验联合体恰好填充与支付方式匹配的单一分支
func validatePaymentVariant(method string, params *model.PaymentParams) error {
	if !model.IsValidPaymentMethod(method) {
		return fmt.Errorf("%w: %s", ErrInvalidPaymentMethod, method)
	}
	if !params.MatchesMethod(method) {
		return fmt.Errorf("%w: method=%s populated=%v", ErrPaymentParamsMismatch, method, params.PopulatedMethods())
	}
	return nil
}

func validateEffectiveRange(from time.Time, to *time.Time) error {
	if to != nil && to.Before(from) {
		return ErrInvalidEffectiveRange
	}
	return nil
}

// ────────────────────── Create ──────────────────────

func (s *paymentConfigService) Create(ctx context.Context, organizationID, operatorID string, req *dto.CreatePaymentConfigRequest) (*model.ShiftPaymentConfig, error) {
	if err := validatePaymentVariant(req.PaymentMethod, &req.Params); err != nil {
		return nil, err
	}
	if err := validateEffectiveRange(req.EffectiveFrom, req.EffectiveTo); err != nil {
		return nil, err
	}

	st, err := s.repo.ShiftType.GetByID(ctx, req.ShiftTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShiftTypeNotFound
		}
		return nil, err
	}
	if st.OrganizationID != organizationID {
		return nil, ErrPaymentConfigForeign
	}

	// 先停用旧配置再创建，维持"每班次类型至多一条活跃配置"不变式
	if err := s.repo.PaymentConfig.DeactivateByShiftType(ctx, organizationID, req.ShiftTypeID, operatorID); err != nil {
		s.logger.Error("停用既有支付配置失败",
			zap.String("shift_type_id", req.ShiftTypeID), zap.Error(err))
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = "GBP"
	}

	cfg := &model.ShiftPaymentConfig{
		OrganizationID: organizationID,
		ShiftTypeID:    req.ShiftTypeID,
		PaymentMethod:  req.PaymentMethod,
		Params:         req.Params,
		Currency:       currency,
		EffectiveFrom:  req.EffectiveFrom,
		EffectiveTo:    req.EffectiveTo,
		IsActive:       true,
	}
	cfg.CreatedBy = operatorRef(operatorID)

	if err := s.repo.PaymentConfig.Create(ctx, cfg); err != nil {
		s.logger.Error("创建支付配置失败",
			zap.String("shift_type_id", req.ShiftTypeID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("支付配置已创建并激活",
		zap.String("payment_config_id", cfg.PaymentConfigID),
		zap.String("shift_type_id", cfg.ShiftTypeID),
		zap.String("payment_method", cfg.PaymentMethod),
	)
	return cfg, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *paymentConfigService) GetByID(ctx context.Context, id string) (*model.ShiftPaymentConfig, error) {
	cfg, err := s.repo.PaymentConfig.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentConfigNotFound
		}
		return nil, err
	}
	return cfg, nil
}

// ────────────────────── GetActiveByShiftType ──────────────────────

func (s *paymentConfigService) GetActiveByShiftType(ctx context.Context, organizationID, shiftTypeID string) (*model.ShiftPaymentConfig, error) {
	cfg, err := s.repo.PaymentConfig.GetActiveByShiftType(ctx, organizationID, shiftTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentConfigNotFound
		}
		return nil, err
	}
	return cfg, nil
}

// ────────────────────── ListByOrganization ──────────────────────

func (s *paymentConfigService) ListByOrganization(ctx context.Context, organizationID string) ([]model.ShiftPaymentConfig, error) {
	return s.repo.PaymentConfig.ListByOrganization(ctx, organizationID)
}

// ────────────────────── Update ──────────────────────

func (s *paymentConfigService) Update(ctx context.Context, id, operatorID string, req *dto.UpdatePaymentConfigRequest) (*model.ShiftPaymentConfig, error) {
	cfg, err := s.repo.PaymentConfig.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentConfigNotFound
		}
		return nil, err
	}

	if req.PaymentMethod != nil {
		cfg.PaymentMethod = *req.PaymentMethod
	}
	if req.Params != nil {
		cfg.Params = *req.Params
	}
	// 方式或参数任一变更都重新校验分支匹配
	if req.PaymentMethod != nil || req.Params != nil {
		if err := validatePaymentVariant(cfg.PaymentMethod, &cfg.Params); err != nil {
			return nil, err
		}
	}
	if req.Currency != nil {
		cfg.Currency = *req.Currency
	}
	if req.EffectiveFrom != nil {
		cfg.EffectiveFrom = *req.EffectiveFrom
	}
	if req.EffectiveTo != nil {
		cfg.EffectiveTo = req.EffectiveTo
	}
	if err := validateEffectiveRange(cfg.EffectiveFrom, cfg.EffectiveTo); err != nil {
		return nil, err
	}

	// 重新激活时同样要先腾出活跃位
	if req.IsActive != nil && *req.IsActive && !cfg.IsActive {
		if err := s.repo.PaymentConfig.DeactivateByShiftType(ctx, cfg.OrganizationID, cfg.ShiftTypeID, operatorID); err != nil {
			return nil, err
		}
		cfg.IsActive = true
	} else if req.IsActive != nil {
		cfg.IsActive = *req.IsActive
	}

	cfg.UpdatedBy = operatorRef(operatorID)
	if err := s.repo.PaymentConfig.Update(ctx, cfg); err != nil {
		s.logger.Error("更新支付配置失败", zap.String("payment_config_id", id), zap.Error(err))
		return nil, err
	}
	return cfg, nil
}

// ────────────────────── Deactivate ──────────────────────

func (s *paymentConfigService) Deactivate(ctx context.Context, id, operatorID string) error {
	cfg, err := s.repo.PaymentConfig.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPaymentConfigNotFound
		}
		return err
	}
	cfg.IsActive = false
	cfg.UpdatedBy = operatorRef(operatorID)
	return s.repo.PaymentConfig.Update(ctx, cfg)
}

// ────────────────────── Delete ──────────────────────

func (s *paymentConfigService) Delete(ctx context.Context, id, operatorID string) error {
	if _, err := s.repo.PaymentConfig.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPaymentConfigNotFound
		}
		return err
	}
	return s.repo.PaymentConfig.Delete(ctx, id, operatorID)
}
