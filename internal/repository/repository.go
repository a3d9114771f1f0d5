package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	Organization    OrganizationRepository
	User            UserRepository
	Permission      PermissionRepository
	Role            RoleRepository
	ShiftType       ShiftTypeRepository
	ShiftTemplate   ShiftTemplateRepository
	PaymentConfig   PaymentConfigRepository
	StaffRate       StaffRateRepository
	Availability    AvailabilityRepository
	SchedulingRule  SchedulingRuleRepository
	RotationPattern RotationPatternRepository
	Invitation      InvitationRepository
	Timesheet       TimesheetRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:              db,
		Organization:    NewOrganizationRepo(db),
		User:            NewUserRepo(db),
		Permission:      NewPermissionRepo(db),
		Role:            NewRoleRepo(db),
		ShiftType:       NewShiftTypeRepo(db),
		ShiftTemplate:   NewShiftTemplateRepo(db),
		PaymentConfig:   NewPaymentConfigRepo(db),
		StaffRate:       NewStaffRateRepo(db),
		Availability:    NewAvailabilityRepo(db),
		SchedulingRule:  NewSchedulingRuleRepo(db),
		RotationPattern: NewRotationPatternRepo(db),
		Invitation:      NewInvitationRepo(db),
		Timesheet:       NewTimesheetRepo(db),
	}
}

// Transaction 在单个数据库事务内执行 fn，fn 拿到的是事务作用域的聚合。
// fn 返回错误即整体回滚。
// 以接口注入方式组装（无数据库句柄）的聚合直接执行 fn，不提供事务语义。
func (r *Repository) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
