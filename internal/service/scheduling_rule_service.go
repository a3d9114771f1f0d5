package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"shiftcare/internal/dto"
	"shiftcare/internal/model"
	"shiftcare/internal/repository"
)

// ── 排班规则模块业务错误 ──

var (
	ErrScheduleRuleNotFound = errors.New("排班规则不存在")
	ErrInvalidRuleType      = errors.New("规则类型无效")
	ErrInvalidRuleSeverity  = errors.New("规则严重级别无效")
	ErrInvalidRuleScope     = errors.New("规则作用域无效")
	ErrRuleScopeEntityEmpty = errors.New("非机构级作用域必须指定目标实体")
)

var validRuleTypes = map[string]bool{
	model.RuleTypeRestPeriod:         true,
	model.RuleTypeMaxConsecutive:     true,
	model.RuleTypeMaxWeeklyHours:     true,
	model.RuleTypeMinStaffing:        true,
	model.RuleTypeQualificationMatch: true,
}

var validRuleSeverities = map[string]bool{
	model.RuleSeverityInfo:    true,
	model.RuleSeverityWarning: true,
	model.RuleSeverityError:   true,
}

var validRuleScopes = map[string]bool{
	model.RuleScopeOrganization: true,
	model.RuleScopeDepartment:   true,
	model.RuleScopeRole:         true,
	model.RuleScopeStaff:        true,
	model.RuleScopeShiftType:    true,
}

// SchedulingRuleService 排班规则业务接口
// 规则只做声明式存取与结构校验，求值交给排班引擎
type SchedulingRuleService interface {
	Create(ctx context.Context, organizationID, operatorID string, req *dto.CreateSchedulingRuleRequest) (*model.SchedulingRule, error)
	GetByID(ctx context.Context, id string) (*model.SchedulingRule, error)
	ListByOrganization(ctx context.Context, organizationID, ruleType string) ([]model.SchedulingRule, error)
	Update(ctx context.Context, id, operatorID string, req *dto.UpdateSchedulingRuleRequest) (*model.SchedulingRule, error)
	Delete(ctx context.Context, id, operatorID string) error
}

type schedulingRuleService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSchedulingRuleService 创建 SchedulingRuleService 实例
func NewSchedulingRuleService(repo *repository.Repository, logger *zap.Logger) SchedulingRuleService {
	return &schedulingRuleService{repo: repo, logger: logger}
}

func validateRuleShape(ruleType, severity, scope string, scopeEntityID *string) error {
	if !validRuleTypes[ruleType] {
		return fmt.Errorf("%w: %s", ErrInvalidRuleType, ruleType)
	}
	if !validRuleSeverities[severity] {
		return fmt.Errorf("%w: %s", ErrInvalidRuleSeverity, severity)
	}
	if !validRuleScopes[scope] {
		return fmt.Errorf("%w: %s", ErrInvalidRuleScope, scope)
	}
	if scope != model.RuleScopeOrganization && (scopeEntityID == nil || *scopeEntityID == "") {
		return ErrRuleScopeEntityEmpty
	}
	return nil
}

// ────────────────────── Create ──────────────────────

func (s *schedulingRuleService) Create(ctx context.Context, organizationID, operatorID string, req *dto.CreateSchedulingRuleRequest) (*model.SchedulingRule, error) {
	severity := req.Severity
	if severity == "" {
		severity = model.RuleSeverityWarning
	}
	if err := validateRuleShape(req.RuleType, severity, req.Scope, req.ScopeEntityID); err != nil {
		return nil, err
	}

	rule := &model.SchedulingRule{
		OrganizationID: organizationID,
		Name:           req.Name,
		RuleType:       req.RuleType,
		Severity:       severity,
		Scope:          req.Scope,
		ScopeEntityID:  req.ScopeEntityID,
		Parameters:     model.JSONMap(req.Parameters),
		Conditions:     req.Conditions,
		IsActive:       true,
	}
	rule.CreatedBy = operatorRef(operatorID)

	if err := s.repo.SchedulingRule.Create(ctx, rule); err != nil {
		s.logger.Error("创建排班规则失败",
			zap.String("organization_id", organizationID), zap.String("rule_type", req.RuleType), zap.Error(err))
		return nil, err
	}
	return rule, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *schedulingRuleService) GetByID(ctx context.Context, id string) (*model.SchedulingRule, error) {
	rule, err := s.repo.SchedulingRule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleRuleNotFound
		}
		return nil, err
	}
	return rule, nil
}

// ────────────────────── ListByOrganization ──────────────────────

func (s *schedulingRuleService) ListByOrganization(ctx context.Context, organizationID, ruleType string) ([]model.SchedulingRule, error) {
	if ruleType != "" && !validRuleTypes[ruleType] {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRuleType, ruleType)
	}
	return s.repo.SchedulingRule.ListByOrganization(ctx, organizationID, ruleType)
}

// ────────────────────── Update ──────────────────────

func (s *schedulingRuleService) Update(ctx context.Context, id, operatorID string, req *dto.UpdateSchedulingRuleRequest) (*model.SchedulingRule, error) {
	rule, err := s.repo.SchedulingRule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleRuleNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		rule.Name = *req.Name
	}
	if req.Severity != nil {
		rule.Severity = *req.Severity
	}
	if req.Scope != nil {
		rule.Scope = *req.Scope
	}
	if req.ScopeEntityID != nil {
		rule.ScopeEntityID = req.ScopeEntityID
	}
	if req.Parameters != nil {
		rule.Parameters = model.JSONMap(req.Parameters)
	}
	if req.Conditions != nil {
		rule.Conditions = req.Conditions
	}
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}

	if err := validateRuleShape(rule.RuleType, rule.Severity, rule.Scope, rule.ScopeEntityID); err != nil {
		return nil, err
	}

	rule.UpdatedBy = operatorRef(operatorID)
	if err := s.repo.SchedulingRule.Update(ctx, rule); err != nil {
		s.logger.Error("更新排班规则失败", zap.String("rule_id", id), zap.Error(err))
		return nil, err
	}
	return rule, nil
}

// ────────────────────── Delete ──────────────────────

func (s *schedulingRuleService) Delete(ctx context.Context, id, operatorID string) error {
	if _, err := s.repo.SchedulingRule.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrScheduleRuleNotFound
		}
		return err
	}
	return s.repo.SchedulingRule.Delete(ctx, id, operatorID)
}
