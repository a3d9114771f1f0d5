package repository

import (
	"context"

	"gorm.io/gorm"

	"shiftcare/internal/model"
)

// PermissionRepository 权限目录数据访问接口
type PermissionRepository interface {
	Create(ctx context.Context, perm *model.Permission) error
	GetByActionSubject(ctx context.Context, action, subject string) (*model.Permission, error)
	List(ctx context.Context) ([]model.Permission, error)
	UpdateDescription(ctx context.Context, permissionID, description string) error
}

type permissionRepo struct {
	db *gorm.DB
}

// NewPermissionRepo 创建 PermissionRepository 实例
func NewPermissionRepo(db *gorm.DB) PermissionRepository {
	return &permissionRepo{db: db}
}

func (r *permissionRepo) Create(ctx context.Context, perm *model.Permission) error {
	return r.db.WithContext(ctx).Create(perm).Error
}

func (r *permissionRepo) GetByActionSubject(ctx context.Context, action, subject string) (*model.Permission, error) {
	var perm model.Permission
	err := r.db.WithContext(ctx).
		Where("action = ? AND subject = ?", action, subject).
		First(&perm).Error
	if err != nil {
		return nil, err
	}
	return &perm, nil
}

func (r *permissionRepo) List(ctx context.Context) ([]model.Permission, error) {
	var perms []model.Permission
	err := r.db.WithContext(ctx).
		Order("subject ASC, action ASC").
		Find(&perms).Error
	return perms, err
}

func (r *permissionRepo) UpdateDescription(ctx context.Context, permissionID, description string) error {
	return r.db.WithContext(ctx).
		Model(&model.Permission{}).
		Where("permission_id = ?", permissionID).
		Update("description", description).Error
}
