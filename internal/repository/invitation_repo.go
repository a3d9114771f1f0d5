package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"shiftcare/internal/model"
)

// InvitationRepository 员工邀请数据访问接口
type InvitationRepository interface {
	Create(ctx context.Context, inv *model.StaffInvitation) error
	GetByToken(ctx context.Context, token string) (*model.StaffInvitation, error)
	// GetByTokenForUpdate 使用 SELECT ... FOR UPDATE 行级锁查询，防止并发接受
	GetByTokenForUpdate(ctx context.Context, token string) (*model.StaffInvitation, error)
	ListByOrganization(ctx context.Context, organizationID string) ([]model.StaffInvitation, error)
	MarkAccepted(ctx context.Context, invitationID, userID string) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type invitationRepo struct {
	db *gorm.DB
}

// NewInvitationRepo 创建 InvitationRepository 实例
func NewInvitationRepo(db *gorm.DB) InvitationRepository {
	return &invitationRepo{db: db}
}

func (r *invitationRepo) Create(ctx context.Context, inv *model.StaffInvitation) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *invitationRepo) GetByToken(ctx context.Context, token string) (*model.StaffInvitation, error) {
	var inv model.StaffInvitation
	err := r.db.WithContext(ctx).
		Preload("Organization").
		Where("token = ?", token).
		First(&inv).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *invitationRepo) GetByTokenForUpdate(ctx context.Context, token string) (*model.StaffInvitation, error) {
	var inv model.StaffInvitation
	err := r.db.WithContext(ctx).
		Set("gorm:query_option", "FOR UPDATE").
		Where("token = ?", token).
		First(&inv).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *invitationRepo) ListByOrganization(ctx context.Context, organizationID string) ([]model.StaffInvitation, error) {
	var invs []model.StaffInvitation
	err := r.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Order("created_at DESC").
		Find(&invs).Error
	return invs, err
}

// MarkAccepted 标记邀请为已接受
func (r *invitationRepo) MarkAccepted(ctx context.Context, invitationID, userID string) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&model.StaffInvitation{}).
		Where("invitation_id = ?", invitationID).
		Updates(map[string]interface{}{
			"accepted_at": now,
			"accepted_by": userID,
			"updated_at":  now,
			"updated_by":  userID,
		}).Error
}

func (r *invitationRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.StaffInvitation{}).
		Where("invitation_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
