package repository

import (
	"context"

	"gorm.io/gorm"

	"shiftcare/internal/model"
)

// RoleRepository 角色数据访问接口
type RoleRepository interface {
	Create(ctx context.Context, role *model.Role) error
	GetByID(ctx context.Context, id string) (*model.Role, error)
	GetByName(ctx context.Context, name string) (*model.Role, error)
	List(ctx context.Context) ([]model.Role, error)
	Update(ctx context.Context, role *model.Role) error
	// ReplacePermissions 整体替换角色权限集（事务内先删后建，种子幂等的基础）
	ReplacePermissions(ctx context.Context, roleID string, perms []model.RolePermission) error
	ListPermissions(ctx context.Context, roleID string) ([]model.RolePermission, error)
}

type roleRepo struct {
	db *gorm.DB
}

// NewRoleRepo 创建 RoleRepository 实例
func NewRoleRepo(db *gorm.DB) RoleRepository {
	return &roleRepo{db: db}
}

func (r *roleRepo) Create(ctx context.Context, role *model.Role) error {
	return r.db.WithContext(ctx).Create(role).Error
}

func (r *roleRepo) GetByID(ctx context.Context, id string) (*model.Role, error) {
	var role model.Role
	err := r.db.WithContext(ctx).
		Preload("Permissions.Permission").
		Where("role_id = ?", id).
		First(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepo) GetByName(ctx context.Context, name string) (*model.Role, error) {
	var role model.Role
	err := r.db.WithContext(ctx).
		Preload("Permissions.Permission").
		Where("name = ?", name).
		First(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepo) List(ctx context.Context) ([]model.Role, error) {
	var roles []model.Role
	err := r.db.WithContext(ctx).
		Preload("Permissions.Permission").
		Order("name ASC").
		Find(&roles).Error
	return roles, err
}

func (r *roleRepo) Update(ctx context.Context, role *model.Role) error {
	return r.db.WithContext(ctx).Save(role).Error
}

// ReplacePermissions 在单个事务中硬删除旧关联并写入新关联。
// 种子逻辑依赖该操作的原子性：并发读取要么看到旧集，要么看到新集。
func (r *roleRepo) ReplacePermissions(ctx context.Context, roleID string, perms []model.RolePermission) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("role_id = ?", roleID).
			Delete(&model.RolePermission{}).Error; err != nil {
			return err
		}
		if len(perms) == 0 {
			return nil
		}
		for i := range perms {
			perms[i].RoleID = roleID
		}
		return tx.Create(&perms).Error
	})
}

func (r *roleRepo) ListPermissions(ctx context.Context, roleID string) ([]model.RolePermission, error) {
	var perms []model.RolePermission
	err := r.db.WithContext(ctx).
		Preload("Permission").
		Where("role_id = ?", roleID).
		Find(&perms).Error
	return perms, err
}
