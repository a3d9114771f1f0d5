package repository

import (
	"context"

	"gorm.io/gorm"

	"shiftcare/internal/model"
)

// ShiftTypeRepository 班次类型数据访问接口
type ShiftTypeRepository interface {
	Create(ctx context.Context, st *model.ShiftType) error
	GetByID(ctx context.Context, id string) (*model.ShiftType, error)
	// GetByName 按 (organization_id, name) 查询，用于唯一性冲突检测
	GetByName(ctx context.Context, organizationID, name string) (*model.ShiftType, error)
	ListByOrganization(ctx context.Context, organizationID string, includeInactive bool) ([]model.ShiftType, error)
	Update(ctx context.Context, st *model.ShiftType) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type shiftTypeRepo struct {
	db *gorm.DB
}

// NewShiftTypeRepo 创建 ShiftTypeRepository 实例
func NewShiftTypeRepo(db *gorm.DB) ShiftTypeRepository {
	return &shiftTypeRepo{db: db}
}

func (r *shiftTypeRepo) Create(ctx context.Context, st *model.ShiftType) error {
	return r.db.WithContext(ctx).Create(st).Error
}

func (r *shiftTypeRepo) GetByID(ctx context.Context, id string) (*model.ShiftType, error) {
	var st model.ShiftType
	err := r.db.WithContext(ctx).
		Where("shift_type_id = ?", id).
		First(&st).Error
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *shiftTypeRepo) GetByName(ctx context.Context, organizationID, name string) (*model.ShiftType, error) {
	var st model.ShiftType
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND name = ?", organizationID, name).
		First(&st).Error
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *shiftTypeRepo) ListByOrganization(ctx context.Context, organizationID string, includeInactive bool) ([]model.ShiftType, error) {
	var types []model.ShiftType
	db := r.db.WithContext(ctx).
		Where("organization_id = ?", organizationID)
	if !includeInactive {
		db = db.Where("is_active = ?", true)
	}
	err := db.Order("name ASC").Find(&types).Error
	return types, err
}

func (r *shiftTypeRepo) Update(ctx context.Context, st *model.ShiftType) error {
	return r.db.WithContext(ctx).Save(st).Error
}

func (r *shiftTypeRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.ShiftType{}).
		Where("shift_type_id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  false,
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
