package repository

import (
	"context"

	"gorm.io/gorm"

	"shiftcare/internal/model"
)

// PaymentConfigRepository 班次支付配置数据访问接口
type PaymentConfigRepository interface {
	Create(ctx context.Context, cfg *model.ShiftPaymentConfig) error
	GetByID(ctx context.Context, id string) (*model.ShiftPaymentConfig, error)
	// GetActiveByShiftType 查询 (organization_id, shift_type_id) 当前唯一活跃配置
	GetActiveByShiftType(ctx context.Context, organizationID, shiftTypeID string) (*model.ShiftPaymentConfig, error)
	ListByOrganization(ctx context.Context, organizationID string) ([]model.ShiftPaymentConfig, error)
	Update(ctx context.Context, cfg *model.ShiftPaymentConfig) error
	// DeactivateByShiftType 停用该班次类型的全部活跃配置（新配置生效前调用）
	DeactivateByShiftType(ctx context.Context, organizationID, shiftTypeID, updatedBy string) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type paymentConfigRepo struct {
	db *gorm.DB
}

// NewPaymentConfigRepo 创建 PaymentConfigRepository 实例
func NewPaymentConfigRepo(db *gorm.DB) PaymentConfigRepository {
	return &paymentConfigRepo{db: db}
}

func (r *paymentConfigRepo) Create(ctx context.Context, cfg *model.ShiftPaymentConfig) error {
	return r.db.WithContext(ctx).Create(cfg).Error
}

func (r *paymentConfigRepo) GetByID(ctx context.Context, id string) (*model.ShiftPaymentConfig, error) {
	var cfg model.ShiftPaymentConfig
	err := r.db.WithContext(ctx).
		Preload("ShiftType").
		Where("payment_config_id = ?", id).
		First(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *paymentConfigRepo) GetActiveByShiftType(ctx context.Context, organizationID, shiftTypeID string) (*model.ShiftPaymentConfig, error) {
	var cfg model.ShiftPaymentConfig
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND shift_type_id = ? AND is_active = ?", organizationID, shiftTypeID, true).
		First(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *paymentConfigRepo) ListByOrganization(ctx context.Context, organizationID string) ([]model.ShiftPaymentConfig, error) {
	var cfgs []model.ShiftPaymentConfig
	err := r.db.WithContext(ctx).
		Preload("ShiftType").
		Where("organization_id = ?", organizationID).
		Order("created_at DESC").
		Find(&cfgs).Error
	return cfgs, err
}

func (r *paymentConfigRepo) Update(ctx context.Context, cfg *model.ShiftPaymentConfig) error {
	return r.db.WithContext(ctx).Save(cfg).Error
}

func (r *paymentConfigRepo) DeactivateByShiftType(ctx context.Context, organizationID, shiftTypeID, updatedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.ShiftPaymentConfig{}).
		Where("organization_id = ? AND shift_type_id = ? AND is_active = ?", organizationID, shiftTypeID, true).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_by": updatedBy,
		}).Error
}

func (r *paymentConfigRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.ShiftPaymentConfig{}).
		Where("payment_config_id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  false,
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
