package repository

import (
	"context"

	"gorm.io/gorm"

	"shiftcare/internal/model"
)

// SchedulingRuleRepository 排班规则数据访问接口
type SchedulingRuleRepository interface {
	Create(ctx context.Context, rule *model.SchedulingRule) error
	GetByID(ctx context.Context, id string) (*model.SchedulingRule, error)
	ListByOrganization(ctx context.Context, organizationID string, ruleType string) ([]model.SchedulingRule, error)
	Update(ctx context.Context, rule *model.SchedulingRule) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type schedulingRuleRepo struct {
	db *gorm.DB
}

// NewSchedulingRuleRepo 创建 SchedulingRuleRepository 实例
func NewSchedulingRuleRepo(db *gorm.DB) SchedulingRuleRepository {
	return &schedulingRuleRepo{db: db}
}

func (r *schedulingRuleRepo) Create(ctx context.Context, rule *model.SchedulingRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *schedulingRuleRepo) GetByID(ctx context.Context, id string) (*model.SchedulingRule, error) {
	var rule model.SchedulingRule
	err := r.db.WithContext(ctx).
		Where("rule_id = ?", id).
		First(&rule).Error
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

// ListByOrganization 列出机构规则；ruleType 非空时按类型过滤
func (r *schedulingRuleRepo) ListByOrganization(ctx context.Context, organizationID string, ruleType string) ([]model.SchedulingRule, error) {
	db := r.db.WithContext(ctx).
		Where("organization_id = ?", organizationID)
	if ruleType != "" {
		db = db.Where("rule_type = ?", ruleType)
	}

	var rules []model.SchedulingRule
	err := db.Order("rule_type ASC, name ASC").Find(&rules).Error
	return rules, err
}

func (r *schedulingRuleRepo) Update(ctx context.Context, rule *model.SchedulingRule) error {
	return r.db.WithContext(ctx).Save(rule).Error
}

func (r *schedulingRuleRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.SchedulingRule{}).
		Where("rule_id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  false,
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
