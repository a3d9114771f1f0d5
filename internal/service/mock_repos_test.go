package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"shiftcare/internal/model"
	"shiftcare/internal/repository"
)

// ── 测试用仓储聚合 ──

// mockRepoSet 聚合全部 mock 仓储，各测试按需取用具体 mock 做数据预置与断言
type mockRepoSet struct {
	orgs            *mockOrganizationRepo
	users           *mockUserRepo
	perms           *mockPermissionRepo
	roles           *mockRoleRepo
	shiftTypes      *mockShiftTypeRepo
	templates       *mockShiftTemplateRepo
	paymentConfigs  *mockPaymentConfigRepo
	staffRates      *mockStaffRateRepo
	availabilities  *mockAvailabilityRepo
	schedulingRules *mockSchedulingRuleRepo
	patterns        *mockRotationPatternRepo
	invitations     *mockInvitationRepo
	timesheets      *mockTimesheetRepo
}

func newMockRepoSet() *mockRepoSet {
	perms := newMockPermissionRepo()
	return &mockRepoSet{
		orgs:            newMockOrganizationRepo(),
		users:           newMockUserRepo(),
		perms:           perms,
		roles:           newMockRoleRepo(perms),
		shiftTypes:      newMockShiftTypeRepo(),
		templates:       newMockShiftTemplateRepo(),
		paymentConfigs:  newMockPaymentConfigRepo(),
		staffRates:      newMockStaffRateRepo(),
		availabilities:  newMockAvailabilityRepo(),
		schedulingRules: newMockSchedulingRuleRepo(),
		patterns:        newMockRotationPatternRepo(),
		invitations:     newMockInvitationRepo(),
		timesheets:      newMockTimesheetRepo(),
	}
}

// repository 装配无数据库句柄的聚合，事务退化为直接执行
func (s *mockRepoSet) repository() *repository.Repository {
	return &repository.Repository{
		Organization:    s.orgs,
		User:            s.users,
		Permission:      s.perms,
		Role:            s.roles,
		ShiftType:       s.shiftTypes,
		ShiftTemplate:   s.templates,
		PaymentConfig:   s.paymentConfigs,
		StaffRate:       s.staffRates,
		Availability:    s.availabilities,
		SchedulingRule:  s.schedulingRules,
		RotationPattern: s.patterns,
		Invitation:      s.invitations,
		Timesheet:       s.timesheets,
	}
}

// ── Mock OrganizationRepository ──

type mockOrganizationRepo struct {
	orgs map[string]*model.Organization
}

func newMockOrganizationRepo() *mockOrganizationRepo {
	return &mockOrganizationRepo{orgs: make(map[string]*model.Organization)}
}

func (m *mockOrganizationRepo) Create(_ context.Context, org *model.Organization) error {
	if org.OrganizationID == "" {
		org.OrganizationID = "org-" + org.Name
	}
	m.orgs[org.OrganizationID] = org
	return nil
}

func (m *mockOrganizationRepo) GetByID(_ context.Context, id string) (*model.Organization, error) {
	if o, ok := m.orgs[id]; ok {
		return o, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOrganizationRepo) List(_ context.Context, offset, limit int) ([]model.Organization, int64, error) {
	var all []model.Organization
	for _, o := range m.orgs {
		all = append(all, *o)
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockOrganizationRepo) Update(_ context.Context, org *model.Organization) error {
	m.orgs[org.OrganizationID] = org
	return nil
}

func (m *mockOrganizationRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.orgs, id)
	return nil
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Email
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) ListByOrganization(_ context.Context, organizationID string, offset, limit int) ([]model.User, int64, error) {
	var all []model.User
	for _, u := range m.users {
		if u.OrganizationID == organizationID {
			all = append(all, *u)
		}
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockUserRepo) ListByIDs(_ context.Context, ids []string) ([]model.User, error) {
	var result []model.User
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.users, id)
	return nil
}

// ── Mock PermissionRepository ──

type mockPermissionRepo struct {
	perms map[string]*model.Permission
}

func newMockPermissionRepo() *mockPermissionRepo {
	return &mockPermissionRepo{perms: make(map[string]*model.Permission)}
}

func (m *mockPermissionRepo) Create(_ context.Context, perm *model.Permission) error {
	if perm.PermissionID == "" {
		perm.PermissionID = "perm-" + perm.Action + ":" + perm.Subject
	}
	m.perms[perm.PermissionID] = perm
	return nil
}

func (m *mockPermissionRepo) GetByActionSubject(_ context.Context, action, subject string) (*model.Permission, error) {
	for _, p := range m.perms {
		if p.Action == action && p.Subject == subject {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPermissionRepo) List(_ context.Context) ([]model.Permission, error) {
	var result []model.Permission
	for _, p := range m.perms {
		result = append(result, *p)
	}
	return result, nil
}

func (m *mockPermissionRepo) UpdateDescription(_ context.Context, permissionID, description string) error {
	if p, ok := m.perms[permissionID]; ok {
		p.Description = description
		return nil
	}
	return gorm.ErrRecordNotFound
}

// ── Mock RoleRepository ──

// mockRoleRepo 持有权限 mock 的引用，在读取时装配 grant 的 Permission 指针，
// 模拟真实仓储的关联预加载
type mockRoleRepo struct {
	roles  map[string]*model.Role
	grants map[string][]model.RolePermission
	perms  *mockPermissionRepo
}

func newMockRoleRepo(perms *mockPermissionRepo) *mockRoleRepo {
	return &mockRoleRepo{
		roles:  make(map[string]*model.Role),
		grants: make(map[string][]model.RolePermission),
		perms:  perms,
	}
}

func (m *mockRoleRepo) attach(role *model.Role) *model.Role {
	r := *role
	r.Permissions = nil
	for _, g := range m.grants[role.RoleID] {
		grant := g
		if p, ok := m.perms.perms[g.PermissionID]; ok {
			grant.Permission = p
		}
		r.Permissions = append(r.Permissions, grant)
	}
	return &r
}

func (m *mockRoleRepo) Create(_ context.Context, role *model.Role) error {
	if role.RoleID == "" {
		role.RoleID = "role-" + role.Name
	}
	m.roles[role.RoleID] = role
	return nil
}

func (m *mockRoleRepo) GetByID(_ context.Context, id string) (*model.Role, error) {
	if r, ok := m.roles[id]; ok {
		return m.attach(r), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoleRepo) GetByName(_ context.Context, name string) (*model.Role, error) {
	for _, r := range m.roles {
		if r.Name == name {
			return m.attach(r), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoleRepo) List(_ context.Context) ([]model.Role, error) {
	var result []model.Role
	for _, r := range m.roles {
		result = append(result, *m.attach(r))
	}
	return result, nil
}

func (m *mockRoleRepo) Update(_ context.Context, role *model.Role) error {
	m.roles[role.RoleID] = role
	return nil
}

func (m *mockRoleRepo) ReplacePermissions(_ context.Context, roleID string, perms []model.RolePermission) error {
	for i := range perms {
		if perms[i].RolePermissionID == "" {
			perms[i].RolePermissionID = fmt.Sprintf("rp-%s-%d", roleID, i)
		}
		perms[i].RoleID = roleID
	}
	m.grants[roleID] = perms
	return nil
}

func (m *mockRoleRepo) ListPermissions(_ context.Context, roleID string) ([]model.RolePermission, error) {
	return m.grants[roleID], nil
}

// ── Mock ShiftTypeRepository ──

type mockShiftTypeRepo struct {
	types map[string]*model.ShiftType
}

func newMockShiftTypeRepo() *mockShiftTypeRepo {
	return &mockShiftTypeRepo{types: make(map[string]*model.ShiftType)}
}

func (m *mockShiftTypeRepo) Create(_ context.Context, st *model.ShiftType) error {
	if st.ShiftTypeID == "" {
		st.ShiftTypeID = "st-" + st.Name
	}
	m.types[st.ShiftTypeID] = st
	return nil
}

func (m *mockShiftTypeRepo) GetByID(_ context.Context, id string) (*model.ShiftType, error) {
	if st, ok := m.types[id]; ok {
		return st, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShiftTypeRepo) GetByName(_ context.Context, organizationID, name string) (*model.ShiftType, error) {
	for _, st := range m.types {
		if st.OrganizationID == organizationID && st.Name == name {
			return st, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShiftTypeRepo) ListByOrganization(_ context.Context, organizationID string, includeInactive bool) ([]model.ShiftType, error) {
	var result []model.ShiftType
	for _, st := range m.types {
		if st.OrganizationID != organizationID {
			continue
		}
		if !includeInactive && !st.IsActive {
			continue
		}
		result = append(result, *st)
	}
	return result, nil
}

func (m *mockShiftTypeRepo) Update(_ context.Context, st *model.ShiftType) error {
	m.types[st.ShiftTypeID] = st
	return nil
}

func (m *mockShiftTypeRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.types, id)
	return nil
}

// ── Mock ShiftTemplateRepository ──

type mockShiftTemplateRepo struct {
	templates map[string]*model.ShiftTemplate
}

func newMockShiftTemplateRepo() *mockShiftTemplateRepo {
	return &mockShiftTemplateRepo{templates: make(map[string]*model.ShiftTemplate)}
}

func (m *mockShiftTemplateRepo) Create(_ context.Context, tpl *model.ShiftTemplate) error {
	if tpl.TemplateID == "" {
		tpl.TemplateID = "tpl-" + tpl.Name
	}
	m.templates[tpl.TemplateID] = tpl
	return nil
}

func (m *mockShiftTemplateRepo) GetByID(_ context.Context, id string) (*model.ShiftTemplate, error) {
	if tpl, ok := m.templates[id]; ok {
		return tpl, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShiftTemplateRepo) List(_ context.Context, category string) ([]model.ShiftTemplate, error) {
	var result []model.ShiftTemplate
	for _, tpl := range m.templates {
		if category != "" && tpl.Category != category {
			continue
		}
		result = append(result, *tpl)
	}
	return result, nil
}

// ── Mock PaymentConfigRepository ──

type mockPaymentConfigRepo struct {
	configs map[string]*model.ShiftPaymentConfig
	seq     int
}

func newMockPaymentConfigRepo() *mockPaymentConfigRepo {
	return &mockPaymentConfigRepo{configs: make(map[string]*model.ShiftPaymentConfig)}
}

func (m *mockPaymentConfigRepo) Create(_ context.Context, cfg *model.ShiftPaymentConfig) error {
	if cfg.PaymentConfigID == "" {
		m.seq++
		cfg.PaymentConfigID = fmt.Sprintf("pay-%03d", m.seq)
	}
	m.configs[cfg.PaymentConfigID] = cfg
	return nil
}

func (m *mockPaymentConfigRepo) GetByID(_ context.Context, id string) (*model.ShiftPaymentConfig, error) {
	if cfg, ok := m.configs[id]; ok {
		return cfg, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPaymentConfigRepo) GetActiveByShiftType(_ context.Context, organizationID, shiftTypeID string) (*model.ShiftPaymentConfig, error) {
	for _, cfg := range m.configs {
		if cfg.OrganizationID == organizationID && cfg.ShiftTypeID == shiftTypeID && cfg.IsActive {
			return cfg, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPaymentConfigRepo) ListByOrganization(_ context.Context, organizationID string) ([]model.ShiftPaymentConfig, error) {
	var result []model.ShiftPaymentConfig
	for _, cfg := range m.configs {
		if cfg.OrganizationID == organizationID {
			result = append(result, *cfg)
		}
	}
	return result, nil
}

func (m *mockPaymentConfigRepo) Update(_ context.Context, cfg *model.ShiftPaymentConfig) error {
	m.configs[cfg.PaymentConfigID] = cfg
	return nil
}

func (m *mockPaymentConfigRepo) DeactivateByShiftType(_ context.Context, organizationID, shiftTypeID, _ string) error {
	for _, cfg := range m.configs {
		if cfg.OrganizationID == organizationID && cfg.ShiftTypeID == shiftTypeID && cfg.IsActive {
			cfg.IsActive = false
		}
	}
	return nil
}

func (m *mockPaymentConfigRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.configs, id)
	return nil
}

// ── Mock StaffRateRepository ──

type mockStaffRateRepo struct {
	rates map[string]*model.StaffRate
	seq   int
}

func newMockStaffRateRepo() *mockStaffRateRepo {
	return &mockStaffRateRepo{rates: make(map[string]*model.StaffRate)}
}

func (m *mockStaffRateRepo) Create(_ context.Context, rate *model.StaffRate) error {
	if rate.StaffRateID == "" {
		m.seq++
		rate.StaffRateID = fmt.Sprintf("rate-%03d", m.seq)
	}
	m.rates[rate.StaffRateID] = rate
	return nil
}

func (m *mockStaffRateRepo) GetByID(_ context.Context, id string) (*model.StaffRate, error) {
	if r, ok := m.rates[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStaffRateRepo) GetActiveByUserAndShiftType(_ context.Context, organizationID, userID, shiftTypeID string) (*model.StaffRate, error) {
	for _, r := range m.rates {
		if r.OrganizationID == organizationID && r.UserID == userID && r.IsActive &&
			r.ShiftTypeID != nil && *r.ShiftTypeID == shiftTypeID {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStaffRateRepo) ListByUser(_ context.Context, organizationID, userID string) ([]model.StaffRate, error) {
	var result []model.StaffRate
	for _, r := range m.rates {
		if r.OrganizationID == organizationID && r.UserID == userID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockStaffRateRepo) ListByOrganization(_ context.Context, organizationID string, offset, limit int) ([]model.StaffRate, int64, error) {
	var all []model.StaffRate
	for _, r := range m.rates {
		if r.OrganizationID == organizationID {
			all = append(all, *r)
		}
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockStaffRateRepo) Update(_ context.Context, rate *model.StaffRate) error {
	m.rates[rate.StaffRateID] = rate
	return nil
}

func (m *mockStaffRateRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.rates, id)
	return nil
}

// ── Mock AvailabilityRepository ──

type mockAvailabilityRepo struct {
	records map[string]*model.EmployeeAvailability
	seq     int
}

func newMockAvailabilityRepo() *mockAvailabilityRepo {
	return &mockAvailabilityRepo{records: make(map[string]*model.EmployeeAvailability)}
}

func (m *mockAvailabilityRepo) Create(_ context.Context, av *model.EmployeeAvailability) error {
	if av.AvailabilityID == "" {
		m.seq++
		av.AvailabilityID = fmt.Sprintf("av-%03d", m.seq)
	}
	m.records[av.AvailabilityID] = av
	return nil
}

func (m *mockAvailabilityRepo) GetByID(_ context.Context, id string) (*model.EmployeeAvailability, error) {
	if av, ok := m.records[id]; ok {
		return av, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAvailabilityRepo) FindActiveRecurring(_ context.Context, userID, organizationID string) (*model.EmployeeAvailability, error) {
	for _, av := range m.records {
		if av.UserID == userID && av.OrganizationID == organizationID && av.IsActive && av.IsRecurring {
			return av, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAvailabilityRepo) FindActiveOverlapping(_ context.Context, userID, organizationID string, from time.Time, to *time.Time) (*model.EmployeeAvailability, error) {
	for _, av := range m.records {
		if av.UserID != userID || av.OrganizationID != organizationID || !av.IsActive || av.IsRecurring {
			continue
		}
		if to != nil && av.EffectiveFrom.After(*to) {
			continue
		}
		if av.EffectiveTo != nil && from.After(*av.EffectiveTo) {
			continue
		}
		return av, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAvailabilityRepo) ListForWindow(_ context.Context, organizationID, userID string, start, end time.Time) ([]model.EmployeeAvailability, error) {
	var result []model.EmployeeAvailability
	for _, av := range m.records {
		if av.OrganizationID != organizationID || !av.IsActive {
			continue
		}
		if userID != "" && av.UserID != userID {
			continue
		}
		if !av.IsRecurring {
			if av.EffectiveFrom.After(end) {
				continue
			}
			if av.EffectiveTo != nil && start.After(*av.EffectiveTo) {
				continue
			}
		}
		result = append(result, *av)
	}
	return result, nil
}

func (m *mockAvailabilityRepo) ListActiveByOrganization(_ context.Context, organizationID string) ([]model.EmployeeAvailability, error) {
	var result []model.EmployeeAvailability
	for _, av := range m.records {
		if av.OrganizationID == organizationID && av.IsActive {
			result = append(result, *av)
		}
	}
	return result, nil
}

func (m *mockAvailabilityRepo) Update(_ context.Context, av *model.EmployeeAvailability) error {
	m.records[av.AvailabilityID] = av
	return nil
}

func (m *mockAvailabilityRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.records, id)
	return nil
}

// ── Mock SchedulingRuleRepository ──

type mockSchedulingRuleRepo struct {
	rules map[string]*model.SchedulingRule
}

func newMockSchedulingRuleRepo() *mockSchedulingRuleRepo {
	return &mockSchedulingRuleRepo{rules: make(map[string]*model.SchedulingRule)}
}

func (m *mockSchedulingRuleRepo) Create(_ context.Context, rule *model.SchedulingRule) error {
	if rule.RuleID == "" {
		rule.RuleID = "rule-" + rule.Name
	}
	m.rules[rule.RuleID] = rule
	return nil
}

func (m *mockSchedulingRuleRepo) GetByID(_ context.Context, id string) (*model.SchedulingRule, error) {
	if r, ok := m.rules[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSchedulingRuleRepo) ListByOrganization(_ context.Context, organizationID string, ruleType string) ([]model.SchedulingRule, error) {
	var result []model.SchedulingRule
	for _, r := range m.rules {
		if r.OrganizationID != organizationID {
			continue
		}
		if ruleType != "" && r.RuleType != ruleType {
			continue
		}
		result = append(result, *r)
	}
	return result, nil
}

func (m *mockSchedulingRuleRepo) Update(_ context.Context, rule *model.SchedulingRule) error {
	m.rules[rule.RuleID] = rule
	return nil
}

func (m *mockSchedulingRuleRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.rules, id)
	return nil
}

// ── Mock RotationPatternRepository ──

type mockRotationPatternRepo struct {
	patterns map[string]*model.ShiftRotationPattern
}

func newMockRotationPatternRepo() *mockRotationPatternRepo {
	return &mockRotationPatternRepo{patterns: make(map[string]*model.ShiftRotationPattern)}
}

func (m *mockRotationPatternRepo) Create(_ context.Context, p *model.ShiftRotationPattern) error {
	if p.PatternID == "" {
		p.PatternID = "rot-" + p.Name
	}
	m.patterns[p.PatternID] = p
	return nil
}

func (m *mockRotationPatternRepo) GetByID(_ context.Context, id string) (*model.ShiftRotationPattern, error) {
	if p, ok := m.patterns[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRotationPatternRepo) ListByOrganization(_ context.Context, organizationID string) ([]model.ShiftRotationPattern, error) {
	var result []model.ShiftRotationPattern
	for _, p := range m.patterns {
		if p.OrganizationID == organizationID {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockRotationPatternRepo) Update(_ context.Context, p *model.ShiftRotationPattern) error {
	m.patterns[p.PatternID] = p
	return nil
}

func (m *mockRotationPatternRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.patterns, id)
	return nil
}

// ── Mock InvitationRepository ──

type mockInvitationRepo struct {
	invitations map[string]*model.StaffInvitation
	seq         int
}

func newMockInvitationRepo() *mockInvitationRepo {
	return &mockInvitationRepo{invitations: make(map[string]*model.StaffInvitation)}
}

func (m *mockInvitationRepo) Create(_ context.Context, inv *model.StaffInvitation) error {
	if inv.InvitationID == "" {
		m.seq++
		inv.InvitationID = fmt.Sprintf("inv-%03d", m.seq)
	}
	m.invitations[inv.InvitationID] = inv
	return nil
}

func (m *mockInvitationRepo) GetByToken(_ context.Context, token string) (*model.StaffInvitation, error) {
	for _, inv := range m.invitations {
		if inv.Token == token {
			return inv, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockInvitationRepo) GetByTokenForUpdate(ctx context.Context, token string) (*model.StaffInvitation, error) {
	return m.GetByToken(ctx, token)
}

func (m *mockInvitationRepo) ListByOrganization(_ context.Context, organizationID string) ([]model.StaffInvitation, error) {
	var result []model.StaffInvitation
	for _, inv := range m.invitations {
		if inv.OrganizationID == organizationID {
			result = append(result, *inv)
		}
	}
	return result, nil
}

func (m *mockInvitationRepo) MarkAccepted(_ context.Context, invitationID, userID string) error {
	inv, ok := m.invitations[invitationID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	now := time.Now()
	inv.AcceptedAt = &now
	inv.AcceptedBy = &userID
	return nil
}

func (m *mockInvitationRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.invitations, id)
	return nil
}

// ── Mock TimesheetRepository ──

type mockTimesheetRepo struct {
	timesheets map[string]*model.Timesheet
	seq        int
}

func newMockTimesheetRepo() *mockTimesheetRepo {
	return &mockTimesheetRepo{timesheets: make(map[string]*model.Timesheet)}
}

func (m *mockTimesheetRepo) Create(_ context.Context, ts *model.Timesheet) error {
	if ts.TimesheetID == "" {
		m.seq++
		ts.TimesheetID = fmt.Sprintf("ts-%03d", m.seq)
	}
	m.timesheets[ts.TimesheetID] = ts
	return nil
}

func (m *mockTimesheetRepo) GetByID(_ context.Context, id string) (*model.Timesheet, error) {
	if ts, ok := m.timesheets[id]; ok {
		return ts, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTimesheetRepo) ListByOrganizationRange(_ context.Context, organizationID string, start, end time.Time) ([]model.Timesheet, error) {
	var result []model.Timesheet
	for _, ts := range m.timesheets {
		if ts.OrganizationID == organizationID &&
			!ts.WorkDate.Before(start) && !ts.WorkDate.After(end) {
			result = append(result, *ts)
		}
	}
	return result, nil
}

func (m *mockTimesheetRepo) ListByUserRange(_ context.Context, organizationID, userID string, start, end time.Time) ([]model.Timesheet, error) {
	var result []model.Timesheet
	for _, ts := range m.timesheets {
		if ts.OrganizationID == organizationID && ts.UserID == userID &&
			!ts.WorkDate.Before(start) && !ts.WorkDate.After(end) {
			result = append(result, *ts)
		}
	}
	return result, nil
}

func (m *mockTimesheetRepo) Update(_ context.Context, ts *model.Timesheet) error {
	m.timesheets[ts.TimesheetID] = ts
	return nil
}

func (m *mockTimesheetRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.timesheets, id)
	return nil
}
