package handler

import "shiftcare/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth            *AuthHandler
	Organization    *OrganizationHandler
	User            *UserHandler
	Permission      *PermissionHandler
	Menu            *MenuHandler
	ShiftType       *ShiftTypeHandler
	PaymentConfig   *PaymentConfigHandler
	StaffRate       *StaffRateHandler
	Availability    *AvailabilityHandler
	SchedulingRule  *SchedulingRuleHandler
	RotationPattern *RotationPatternHandler
	Invitation      *InvitationHandler
	Timesheet       *TimesheetHandler
	Export          *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:            NewAuthHandler(svc.Auth),
		Organization:    NewOrganizationHandler(svc.Organization),
		User:            NewUserHandler(svc.User),
		Permission:      NewPermissionHandler(svc.Permission),
		Menu:            NewMenuHandler(svc.Menu),
		ShiftType:       NewShiftTypeHandler(svc.ShiftType),
		PaymentConfig:   NewPaymentConfigHandler(svc.PaymentConfig),
		StaffRate:       NewStaffRateHandler(svc.StaffRate),
		Availability:    NewAvailabilityHandler(svc.Availability),
		SchedulingRule:  NewSchedulingRuleHandler(svc.SchedulingRule),
		RotationPattern: NewRotationPatternHandler(svc.RotationPattern),
		Invitation:      NewInvitationHandler(svc.Invitation),
		Timesheet:       NewTimesheetHandler(svc.Timesheet),
		Export:          NewExportHandler(svc.Export),
	}
}
