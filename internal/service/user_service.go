package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"shiftcare/internal/dto"
	"shiftcare/internal/model"
	"shiftcare/internal/repository"
)

// ── 用户模块业务错误 ──

var (
	ErrUserNotFound = errors.New("用户不存在")
)

// UserService 用户业务接口
type UserService interface {
	Create(ctx context.Context, organizationID, operatorID string, req *dto.CreateUserRequest) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	ListByOrganization(ctx context.Context, organizationID string, page, pageSize int) ([]model.User, int64, error)
	Update(ctx context.Context, id, operatorID string, req *dto.UpdateUserRequest) (*model.User, error)
	Delete(ctx context.Context, id, operatorID string) error
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *userService) Create(ctx context.Context, organizationID, operatorID string, req *dto.CreateUserRequest) (*model.User, error) {
	role := req.Role
	if role == "" {
		role = model.RoleStaff
	}
	if !invitableRoles[role] && role != model.RoleSuperAdmin {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRole, role)
	}

	if _, err := s.repo.User.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailAlreadyInUse
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("密码加密失败: %w", err)
	}

	user := &model.User{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		PasswordHash:   string(hash),
		Role:           role,
		OrganizationID: organizationID,
		IsActive:       true,
	}
	user.CreatedBy = operatorRef(operatorID)

	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("创建用户失败", zap.String("email", req.Email), zap.Error(err))
		return nil, err
	}
	return user, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *userService) GetByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ────────────────────── ListByOrganization ──────────────────────

func (s *userService) ListByOrganization(ctx context.Context, organizationID string, page, pageSize int) ([]model.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.repo.User.ListByOrganization(ctx, organizationID, (page-1)*pageSize, pageSize)
}

// ────────────────────── Update ──────────────────────

func (s *userService) Update(ctx context.Context, id, operatorID string, req *dto.UpdateUserRequest) (*model.User, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Role != nil {
		if !invitableRoles[*req.Role] && *req.Role != model.RoleSuperAdmin {
			return nil, fmt.Errorf("%w: %s", ErrInvalidRole, *req.Role)
		}
		user.Role = *req.Role
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("密码加密失败: %w", err)
		}
		user.PasswordHash = string(hash)
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	user.UpdatedBy = operatorRef(operatorID)
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更新用户失败", zap.String("user_id", id), zap.Error(err))
		return nil, err
	}
	return user, nil
}

// ────────────────────── Delete ──────────────────────

func (s *userService) Delete(ctx context.Context, id, operatorID string) error {
	if _, err := s.repo.User.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.repo.User.Delete(ctx, id, operatorID)
}
