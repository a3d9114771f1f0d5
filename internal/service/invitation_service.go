package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"shiftcare/config"
	"shiftcare/internal/dto"
	"shiftcare/internal/model"
	"shiftcare/internal/repository"
	"shiftcare/pkg/mailer"
)

// ── 员工邀请模块业务错误 ──

var (
	ErrInvitationNotFound = errors.New("邀请不存在或已失效")
	ErrInvitationExpired  = errors.New("邀请已过期")
	ErrInvitationAccepted = errors.New("邀请已被接受")
	ErrEmailAlreadyInUse  = errors.New("该邮箱已注册")
	ErrInvalidRole        = errors.New("角色无效")
)

// InvitationService 员工邀请业务接口
type InvitationService interface {
	// Invite 创建邀请并异步发送邀请邮件（邮件失败不影响邀请本身）
	Invite(ctx context.Context, organizationID, operatorID string, req *dto.InviteStaffRequest) (*model.StaffInvitation, error)
	GetByToken(ctx context.Context, token string) (*model.StaffInvitation, error)
	ListByOrganization(ctx context.Context, organizationID string) ([]model.StaffInvitation, error)
	// Accept 接受邀请并创建用户账号；行级锁防止同一令牌并发接受
	Accept(ctx context.Context, req *dto.AcceptInvitationRequest) (*model.User, error)
	Revoke(ctx context.Context, id, operatorID string) error
}

type invitationService struct {
	repo    *repository.Repository
	mailer  *mailer.Mailer
	authCfg *config.AuthConfig
	logger  *zap.Logger
}

// NewInvitationService 创建 InvitationService 实例
func NewInvitationService(repo *repository.Repository, m *mailer.Mailer, authCfg *config.AuthConfig, logger *zap.Logger) InvitationService {
	return &invitationService{repo: repo, mailer: m, authCfg: authCfg, logger: logger}
}

// generateInviteToken 生成 64 位十六进制随机令牌
func generateInviteToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("生成邀请令牌失败: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

var invitableRoles = map[string]bool{
	model.RoleOrgAdmin: true,
	model.RoleManager:  true,
	model.RoleDoctor:   true,
	model.RoleNurse:    true,
	model.RoleCarer:    true,
	model.RoleStaff:    true,
}

// ────────────────────── Invite ──────────────────────

func (s *invitationService) Invite(ctx context.Context, organizationID, operatorID string, req *dto.InviteStaffRequest) (*model.StaffInvitation, error) {
	role := req.Role
	if role == "" {
		role = model.RoleStaff
	}
	if !invitableRoles[role] {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRole, role)
	}

	if _, err := s.repo.User.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailAlreadyInUse
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	org, err := s.repo.Organization.GetByID(ctx, organizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, err
	}

	token, err := generateInviteToken()
	if err != nil {
		return nil, err
	}

	inv := &model.StaffInvitation{
		OrganizationID: organizationID,
		Email:          req.Email,
		Role:           role,
		Token:          token,
		ExpiresAt:      time.Now().Add(s.authCfg.InvitationTTL),
		InvitedBy:      operatorID,
	}
	inv.CreatedBy = operatorRef(operatorID)

	if err := s.repo.Invitation.Create(ctx, inv); err != nil {
		s.logger.Error("创建邀请失败",
			zap.String("organization_id", organizationID), zap.String("email", req.Email), zap.Error(err))
		return nil, err
	}

	// 邮件异步发送，结果不回传
	subject := fmt.Sprintf("您被邀请加入 %s", org.Name)
	body := fmt.Sprintf(
		"<p>%s 邀请您以 %s 身份加入排班平台。</p><p>邀请令牌：<b>%s</b></p><p>邀请将于 %s 过期。</p>",
		org.Name, role, token, inv.ExpiresAt.Format("2006-01-02 15:04"),
	)
	s.mailer.SendAsync([]string{req.Email}, subject, body)

	s.logger.Info("员工邀请已创建",
		zap.String("invitation_id", inv.InvitationID),
		zap.String("email", req.Email),
		zap.String("role", role),
	)
	return inv, nil
}

// ────────────────────── GetByToken ──────────────────────

func (s *invitationService) GetByToken(ctx context.Context, token string) (*model.StaffInvitation, error) {
	inv, err := s.repo.Invitation.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, err
	}
	return inv, nil
}

// ────────────────────── ListByOrganization ──────────────────────

func (s *invitationService) ListByOrganization(ctx context.Context, organizationID string) ([]model.StaffInvitation, error) {
	return s.repo.Invitation.ListByOrganization(ctx, organizationID)
}

// ────────────────────── Accept ──────────────────────

// Accept 在单事务内完成：FOR UPDATE 锁定邀请行 → 校验有效期与接受状态 →
// 创建用户 → 标记邀请已接受。并发接受同一令牌时后到者读到已接受状态被拒。
func (s *invitationService) Accept(ctx context.Context, req *dto.AcceptInvitationRequest) (*model.User, error) {
	var user *model.User

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		inv, err := tx.Invitation.GetByTokenForUpdate(ctx, req.Token)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvitationNotFound
			}
			return err
		}
		if inv.AcceptedAt != nil {
			return ErrInvitationAccepted
		}
		if time.Now().After(inv.ExpiresAt) {
			return ErrInvitationExpired
		}

		if _, err := tx.User.GetByEmail(ctx, inv.Email); err == nil {
			return ErrEmailAlreadyInUse
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("密码加密失败: %w", err)
		}

		user = &model.User{
			Name:           req.Name,
			Email:          inv.Email,
			Phone:          req.Phone,
			PasswordHash:   string(hash),
			Role:           inv.Role,
			OrganizationID: inv.OrganizationID,
			IsActive:       true,
		}
		if err := tx.User.Create(ctx, user); err != nil {
			return err
		}

		return tx.Invitation.MarkAccepted(ctx, inv.InvitationID, user.UserID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("邀请已接受",
		zap.String("user_id", user.UserID),
		zap.String("organization_id", user.OrganizationID),
		zap.String("role", user.Role),
	)
	return user, nil
}

// ────────────────────── Revoke ──────────────────────

func (s *invitationService) Revoke(ctx context.Context, id, operatorID string) error {
	return s.repo.Invitation.Delete(ctx, id, operatorID)
}
