package repository

import (
	"context"

	"gorm.io/gorm"

	"shiftcare/internal/model"
)

// ShiftTemplateRepository 班次模板数据访问接口
type ShiftTemplateRepository interface {
	Create(ctx context.Context, tpl *model.ShiftTemplate) error
	GetByID(ctx context.Context, id string) (*model.ShiftTemplate, error)
	List(ctx context.Context, category string) ([]model.ShiftTemplate, error)
}

type shiftTemplateRepo struct {
	db *gorm.DB
}

// NewShiftTemplateRepo 创建 ShiftTemplateRepository 实例
func NewShiftTemplateRepo(db *gorm.DB) ShiftTemplateRepository {
	return &shiftTemplateRepo{db: db}
}

func (r *shiftTemplateRepo) Create(ctx context.Context, tpl *model.ShiftTemplate) error {
	return r.db.WithContext(ctx).Create(tpl).Error
}

func (r *shiftTemplateRepo) GetByID(ctx context.Context, id string) (*model.ShiftTemplate, error) {
	var tpl model.ShiftTemplate
	err := r.db.WithContext(ctx).
		Where("template_id = ?", id).
		First(&tpl).Error
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

// List 列出模板；category 非空时按机构类别过滤
func (r *shiftTemplateRepo) List(ctx context.Context, category string) ([]model.ShiftTemplate, error) {
	var tpls []model.ShiftTemplate
	db := r.db.WithContext(ctx).Where("is_active = ?", true)
	if category != "" {
		db = db.Where("category = ?", category)
	}
	err := db.Order("name ASC").Find(&tpls).Error
	return tpls, err
}
