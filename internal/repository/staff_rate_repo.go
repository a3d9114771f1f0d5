package repository

import (
	"context"

	"gorm.io/gorm"

	"shiftcare/internal/model"
)

// StaffRateRepository 员工费率覆盖数据访问接口
type StaffRateRepository interface {
	Create(ctx context.Context, rate *model.StaffRate) error
	GetByID(ctx context.Context, id string) (*model.StaffRate, error)
	// GetActiveByUserAndShiftType 查询员工在指定班次类型上当前活跃的费率覆盖
	GetActiveByUserAndShiftType(ctx context.Context, organizationID, userID, shiftTypeID string) (*model.StaffRate, error)
	ListByUser(ctx context.Context, organizationID, userID string) ([]model.StaffRate, error)
	ListByOrganization(ctx context.Context, organizationID string, offset, limit int) ([]model.StaffRate, int64, error)
	Update(ctx context.Context, rate *model.StaffRate) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type staffRateRepo struct {
	db *gorm.DB
}

// NewStaffRateRepo 创建 StaffRateRepository 实例
func NewStaffRateRepo(db *gorm.DB) StaffRateRepository {
	return &staffRateRepo{db: db}
}

func (r *staffRateRepo) Create(ctx context.Context, rate *model.StaffRate) error {
	return r.db.WithContext(ctx).Create(rate).Error
}

func (r *staffRateRepo) GetByID(ctx context.Context, id string) (*model.StaffRate, error) {
	var rate model.StaffRate
	err := r.db.WithContext(ctx).
		Where("staff_rate_id = ?", id).
		First(&rate).Error
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

func (r *staffRateRepo) GetActiveByUserAndShiftType(ctx context.Context, organizationID, userID, shiftTypeID string) (*model.StaffRate, error) {
	var rate model.StaffRate
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND user_id = ? AND shift_type_id = ? AND is_active = ?",
			organizationID, userID, shiftTypeID, true).
		First(&rate).Error
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

func (r *staffRateRepo) ListByUser(ctx context.Context, organizationID, userID string) ([]model.StaffRate, error) {
	var rates []model.StaffRate
	err := r.db.WithContext(ctx).
		Preload("ShiftType").
		Where("organization_id = ? AND user_id = ?", organizationID, userID).
		Order("created_at DESC").
		Find(&rates).Error
	return rates, err
}

func (r *staffRateRepo) ListByOrganization(ctx context.Context, organizationID string, offset, limit int) ([]model.StaffRate, int64, error) {
	var rates []model.StaffRate
	var total int64

	db := r.db.WithContext(ctx).Model(&model.StaffRate{}).
		Where("organization_id = ?", organizationID)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("User").Preload("ShiftType").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&rates).Error; err != nil {
		return nil, 0, err
	}

	return rates, total, nil
}

func (r *staffRateRepo) Update(ctx context.Context, rate *model.StaffRate) error {
	return r.db.WithContext(ctx).Save(rate).Error
}

func (r *staffRateRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.StaffRate{}).
		Where("staff_rate_id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  false,
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
