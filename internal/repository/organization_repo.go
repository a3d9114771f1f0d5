package repository

import (
	"context"

	"gorm.io/gorm"

	"shiftcare/internal/model"
)

// OrganizationRepository 机构数据访问接口
type OrganizationRepository interface {
	Create(ctx context.Context, org *model.Organization) error
	GetByID(ctx context.Context, id string) (*model.Organization, error)
	List(ctx context.Context, offset, limit int) ([]model.Organization, int64, error)
	Update(ctx context.Context, org *model.Organization) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type organizationRepo struct {
	db *gorm.DB
}

// NewOrganizationRepo 创建 OrganizationRepository 实例
func NewOrganizationRepo(db *gorm.DB) OrganizationRepository {
	return &organizationRepo{db: db}
}

func (r *organizationRepo) Create(ctx context.Context, org *model.Organization) error {
	return r.db.WithContext(ctx).Create(org).Error
}

func (r *organizationRepo) GetByID(ctx context.Context, id string) (*model.Organization, error) {
	var org model.Organization
	err := r.db.WithContext(ctx).
		Where("organization_id = ?", id).
		First(&org).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepo) List(ctx context.Context, offset, limit int) ([]model.Organization, int64, error) {
	var orgs []model.Organization
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Organization{})

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&orgs).Error; err != nil {
		return nil, 0, err
	}

	return orgs, total, nil
}

func (r *organizationRepo) Update(ctx context.Context, org *model.Organization) error {
	return r.db.WithContext(ctx).Save(org).Error
}

func (r *organizationRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Organization{}).
		Where("organization_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
