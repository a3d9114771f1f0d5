package repository

import (
	"context"

	"gorm.io/gorm"

	"shiftcare/internal/model"
)

// RotationPatternRepository 轮班模式数据访问接口
type RotationPatternRepository interface {
	Create(ctx context.Context, p *model.ShiftRotationPattern) error
	GetByID(ctx context.Context, id string) (*model.ShiftRotationPattern, error)
	ListByOrganization(ctx context.Context, organizationID string) ([]model.ShiftRotationPattern, error)
	Update(ctx context.Context, p *model.ShiftRotationPattern) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type rotationPatternRepo struct {
	db *gorm.DB
}

// NewRotationPatternRepo 创建 RotationPatternRepository 实例
func NewRotationPatternRepo(db *gorm.DB) RotationPatternRepository {
	return &rotationPatternRepo{db: db}
}

func (r *rotationPatternRepo) Create(ctx context.Context, p *model.ShiftRotationPattern) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *rotationPatternRepo) GetByID(ctx context.Context, id string) (*model.ShiftRotationPattern, error) {
	var p model.ShiftRotationPattern
	err := r.db.WithContext(ctx).
		Where("pattern_id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *rotationPatternRepo) ListByOrganization(ctx context.Context, organizationID string) ([]model.ShiftRotationPattern, error) {
	var patterns []model.ShiftRotationPattern
	err := r.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Order("name ASC").
		Find(&patterns).Error
	return patterns, err
}

func (r *rotationPatternRepo) Update(ctx context.Context, p *model.ShiftRotationPattern) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *rotationPatternRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.ShiftRotationPattern{}).
		Where("pattern_id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  false,
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
