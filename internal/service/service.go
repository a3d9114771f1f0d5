package service

import (
	"time"

	"go.uber.org/zap"

	"shiftcare/config"
	"shiftcare/internal/repository"
	"shiftcare/pkg/jwt"
	"shiftcare/pkg/mailer"
	"shiftcare/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth            AuthService
	User            UserService
	Organization    OrganizationService
	Permission      PermissionService
	Menu            MenuService
	ShiftType       ShiftTypeService
	PaymentConfig   PaymentConfigService
	StaffRate       StaffRateService
	Availability    AvailabilityService
	SchedulingRule  SchedulingRuleService
	RotationPattern RotationPatternService
	Invitation      InvitationService
	Timesheet       TimesheetService
	Export          ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	m *mailer.Mailer,
	canonical *time.Location,
	logger *zap.Logger,
) *Service {
	perm := NewPermissionService(repo, logger)
	return &Service{
		Auth:            NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		User:            NewUserService(repo, logger),
		Organization:    NewOrganizationService(repo, logger),
		Permission:      perm,
		Menu:            NewMenuService(repo, perm, logger),
		ShiftType:       NewShiftTypeService(repo, canonical, logger),
		PaymentConfig:   NewPaymentConfigService(repo, logger),
		StaffRate:       NewStaffRateService(repo, logger),
		Availability:    NewAvailabilityService(repo, logger),
		SchedulingRule:  NewSchedulingRuleService(repo, logger),
		RotationPattern: NewRotationPatternService(repo, logger),
		Invitation:      NewInvitationService(repo, m, &cfg.Auth, logger),
		Timesheet:       NewTimesheetService(repo, logger),
		Export:          NewExportService(repo, logger),
	}
}
