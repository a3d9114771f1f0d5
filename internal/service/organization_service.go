package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"shiftcare/internal/dto"
	"shiftcare/internal/model"
	"shiftcare/internal/repository"
)

// ── 机构模块业务错误 ──

var (
	ErrOrganizationNotFound = errors.New("机构不存在")
)

// OrganizationService 机构业务接口
type OrganizationService interface {
	Create(ctx context.Context, operatorID string, req *dto.CreateOrganizationRequest) (*model.Organization, error)
	GetByID(ctx context.Context, id string) (*model.Organization, error)
	List(ctx context.Context, page, pageSize int) ([]model.Organization, int64, error)
	Update(ctx context.Context, id, operatorID string, req *dto.UpdateOrganizationRequest) (*model.Organization, error)
	// UpdateSettings 整体替换机构设置包（功能开关等）
	UpdateSettings(ctx context.Context, id, operatorID string, settings map[string]interface{}) (*model.Organization, error)
	Delete(ctx context.Context, id, operatorID string) error
}

type organizationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewOrganizationService 创建 OrganizationService 实例
func NewOrganizationService(repo *repository.Repository, logger *zap.Logger) OrganizationService {
	return &organizationService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *organizationService) Create(ctx context.Context, operatorID string, req *dto.CreateOrganizationRequest) (*model.Organization, error) {
	if !model.IsValidOrgCategory(req.Category) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidOrgCategory, req.Category)
	}
	timezone := req.Timezone
	if timezone == "" {
		timezone = "UTC"
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		return nil, ErrInvalidTimezone
	}

	org := &model.Organization{
		Name:     req.Name,
		Category: req.Category,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		Timezone: timezone,
		Settings: model.JSONMap(req.Settings),
		IsActive: true,
	}
	org.CreatedBy = operatorRef(operatorID)

	if err := s.repo.Organization.Create(ctx, org); err != nil {
		s.logger.Error("创建机构失败", zap.String("name", req.Name), zap.Error(err))
		return nil, err
	}

	s.logger.Info("机构已创建",
		zap.String("organization_id", org.OrganizationID),
		zap.String("category", org.Category),
	)
	return org, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *organizationService) GetByID(ctx context.Context, id string) (*model.Organization, error) {
	org, err := s.repo.Organization.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, err
	}
	return org, nil
}

// ────────────────────── List ──────────────────────

func (s *organizationService) List(ctx context.Context, page, pageSize int) ([]model.Organization, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.repo.Organization.List(ctx, (page-1)*pageSize, pageSize)
}

// ────────────────────── Update ──────────────────────

func (s *organizationService) Update(ctx context.Context, id, operatorID string, req *dto.UpdateOrganizationRequest) (*model.Organization, error) {
	org, err := s.repo.Organization.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		org.Name = *req.Name
	}
	if req.Category != nil {
		if !model.IsValidOrgCategory(*req.Category) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidOrgCategory, *req.Category)
		}
		org.Category = *req.Category
	}
	if req.Email != nil {
		org.Email = *req.Email
	}
	if req.Phone != nil {
		org.Phone = *req.Phone
	}
	if req.Address != nil {
		org.Address = *req.Address
	}
	if req.Timezone != nil {
		if _, err := time.LoadLocation(*req.Timezone); err != nil {
			return nil, ErrInvalidTimezone
		}
		org.Timezone = *req.Timezone
	}
	if req.IsActive != nil {
		org.IsActive = *req.IsActive
	}

	org.UpdatedBy = operatorRef(operatorID)
	if err := s.repo.Organization.Update(ctx, org); err != nil {
		s.logger.Error("更新机构失败", zap.String("organization_id", id), zap.Error(err))
		return nil, err
	}
	return org, nil
}

// ────────────────────── UpdateSettings ──────────────────────

func (s *organizationService) UpdateSettings(ctx context.Context, id, operatorID string, settings map[string]interface{}) (*model.Organization, error) {
	org, err := s.repo.Organization.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, err
	}

	org.Settings = model.JSONMap(settings)
	org.UpdatedBy = operatorRef(operatorID)
	if err := s.repo.Organization.Update(ctx, org); err != nil {
		s.logger.Error("更新机构设置失败", zap.String("organization_id", id), zap.Error(err))
		return nil, err
	}
	return org, nil
}

// ────────────────────── Delete ──────────────────────

func (s *organizationService) Delete(ctx context.Context, id, operatorID string) error {
	if _, err := s.repo.Organization.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrganizationNotFound
		}
		return err
	}
	return s.repo.Organization.Delete(ctx, id, operatorID)
}
