package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"shiftcare/internal/model"
)

// AvailabilityRepository 员工可用性数据访问接口
type AvailabilityRepository interface {
	Create(ctx context.Context, av *model.EmployeeAvailability) error
	GetByID(ctx context.Context, id string) (*model.EmployeeAvailability, error)
	// FindActiveRecurring 查询用户在机构下任一活跃的周期性记录
	FindActiveRecurring(ctx context.Context, userID, organizationID string) (*model.EmployeeAvailability, error)
	// FindActiveOverlapping 查询用户在机构下生效窗口与 [from, to] 重叠的活跃非周期记录
	FindActiveOverlapping(ctx context.Context, userID, organizationID string, from time.Time, to *time.Time) (*model.EmployeeAvailability, error)
	// ListForWindow 查询机构下生效窗口与 [start, end] 重叠或为周期性的活跃记录；
	// userID 非空时进一步限定到单个用户
	ListForWindow(ctx context.Context, organizationID, userID string, start, end time.Time) ([]model.EmployeeAvailability, error)
	// ListActiveByOrganization 查询机构下全部活跃记录（可用员工匹配用）
	ListActiveByOrganization(ctx context.Context, organizationID string) ([]model.EmployeeAvailability, error)
	Update(ctx context.Context, av *model.EmployeeAvailability) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type availabilityRepo struct {
	db *gorm.DB
}

// NewAvailabilityRepo 创建 AvailabilityRepository 实例
func NewAvailabilityRepo(db *gorm.DB) AvailabilityRepository {
	return &availabilityRepo{db: db}
}

func (r *availabilityRepo) Create(ctx context.Context, av *model.EmployeeAvailability) error {
	return r.db.WithContext(ctx).Create(av).Error
}

func (r *availabilityRepo) GetByID(ctx context.Context, id string) (*model.EmployeeAvailability, error) {
	var av model.EmployeeAvailability
	err := r.db.WithContext(ctx).
		Where("availability_id = ?", id).
		First(&av).Error
	if err != nil {
		return nil, err
	}
	return &av, nil
}

func (r *availabilityRepo) FindActiveRecurring(ctx context.Context, userID, organizationID string) (*model.EmployeeAvailability, error) {
	var av model.EmployeeAvailability
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND organization_id = ? AND is_recurring = ? AND is_active = ?",
			userID, organizationID, true, true).
		First(&av).Error
	if err != nil {
		return nil, err
	}
	return &av, nil
}

func (r *availabilityRepo) FindActiveOverlapping(ctx context.Context, userID, organizationID string, from time.Time, to *time.Time) (*model.EmployeeAvailability, error) {
	db := r.db.WithContext(ctx).
		Where("user_id = ? AND organization_id = ? AND is_recurring = ? AND is_active = ?",
			userID, organizationID, false, true)

	// 窗口重叠：已有记录开始早于新窗口结束，且已有记录结束晚于新窗口开始
	if to != nil {
		db = db.Where("effective_from <= ?", *to)
	}
	db = db.Where("effective_to IS NULL OR effective_to >= ?", from)

	var av model.EmployeeAvailability
	if err := db.First(&av).Error; err != nil {
		return nil, err
	}
	return &av, nil
}

func (r *availabilityRepo) ListForWindow(ctx context.Context, organizationID, userID string, start, end time.Time) ([]model.EmployeeAvailability, error) {
	db := r.db.WithContext(ctx).
		Where("organization_id = ? AND is_active = ?", organizationID, true).
		Where("is_recurring = ? OR (effective_from <= ? AND (effective_to IS NULL OR effective_to >= ?))",
			true, end, start)
	if userID != "" {
		db = db.Where("user_id = ?", userID)
	}

	var avs []model.EmployeeAvailability
	err := db.Order("user_id ASC, effective_from ASC").Find(&avs).Error
	return avs, err
}

func (r *availabilityRepo) ListActiveByOrganization(ctx context.Context, organizationID string) ([]model.EmployeeAvailability, error) {
	var avs []model.EmployeeAvailability
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("organization_id = ? AND is_active = ?", organizationID, true).
		Find(&avs).Error
	return avs, err
}

func (r *availabilityRepo) Update(ctx context.Context, av *model.EmployeeAvailability) error {
	return r.db.WithContext(ctx).Save(av).Error
}

// Delete 仅做软删除：保留历史记录供审计
func (r *availabilityRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.EmployeeAvailability{}).
		Where("availability_id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  false,
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
