package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"shiftcare/internal/dto"
	"shiftcare/internal/model"
	"shiftcare/internal/repository"
)

// ── 权限模块业务错误 ──

var (
	ErrRoleNotFound = errors.New("角色不存在")
)

// HasPermission 判断操作者权限集是否满足要求。
// OR 语义：required 为空恒为 true；否则任一要求命中即通过。
// 该宽松策略是菜单可见性的既定行为，多权限条目只需满足其一。
func HasPermission(actorPerms []string, required []string) bool {
	if len(required) == 0 {
		return true
	}
	actorSet := make(map[string]bool, len(actorPerms))
	for _, p := range actorPerms {
		actorSet[p] = true
	}
	for _, r := range required {
		if actorSet[r] {
			return true
		}
	}
	return false
}

// ActorContext 授权求值时的操作者上下文
type ActorContext struct {
	UserID         string
	OrganizationID string
	Role           string
}

// attribute 按条件值中的 $actor.xxx 占位符取操作者属性
func (a *ActorContext) attribute(placeholder string) (string, bool) {
	switch placeholder {
	case "$actor.userId":
		return a.UserID, true
	case "$actor.organizationId":
		return a.OrganizationID, true
	case "$actor.role":
		return a.Role, true
	default:
		return "", false
	}
}

// evaluateConditions 代入操作者上下文求值授权条件链。
// 单条 grant 内的条件为 AND 语义；任一不满足即拒绝该 grant
// （即便角色名义上持有该权限）。未知操作符或占位符一律拒绝。
func evaluateConditions(conds model.ConditionList, actor *ActorContext, request map[string]string) bool {
	for _, c := range conds {
		if c.Operator != model.CondOperatorEquals {
			return false
		}
		expected := c.Value
		if strings.HasPrefix(c.Value, "$actor.") {
			v, ok := actor.attribute(c.Value)
			if !ok {
				return false
			}
			expected = v
		}
		if request[c.Field] != expected {
			return false
		}
	}
	return true
}

// PermissionService 权限/角色业务接口
type PermissionService interface {
	// Seed 幂等播种权限目录与系统角色
	Seed(ctx context.Context) error
	ListPermissions(ctx context.Context) ([]dto.PermissionResponse, error)
	ListRoles(ctx context.Context) ([]dto.RoleResponse, error)
	// ResolvePermissions 解析角色名义持有的权限键集（"action:subject"）
	ResolvePermissions(ctx context.Context, roleName string) ([]string, error)
	// Authorize 判定操作者能否对 (action, subject) 执行操作；
	// 带条件的 grant 需代入 request 上下文求值通过
	Authorize(ctx context.Context, actor *ActorContext, action, subject string, request map[string]string) (bool, error)
}

type permissionService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPermissionService 创建 PermissionService 实例
func NewPermissionService(repo *repository.Repository, logger *zap.Logger) PermissionService {
	return &permissionService{repo: repo, logger: logger}
}

// ── 种子数据 ──

// seedSubjects 权限目录的实体清单
var seedSubjects = []string{
	"Organization",
	"User",
	"ShiftType",
	"Shift",
	"ShiftPaymentConfig",
	"StaffRate",
	"EmployeeAvailability",
	"SchedulingRule",
	"ShiftRotationPattern",
	"Timesheet",
}

// seedActions 标准动作集
var seedActions = []string{
	model.ActionCreate,
	model.ActionRead,
	model.ActionUpdate,
	model.ActionDelete,
	model.ActionManage,
}

// seedExtraPermissions 标准动作集之外的专用权限
var seedExtraPermissions = []struct {
	action, subject, description string
}{
	{"invite_staff", "User", "邀请员工加入机构"},
	{"approve", "Timesheet", "审批工时记录"},
}

type seedRole struct {
	name        string
	description string
	// permKeys 为空表示授予全部权限
	permKeys []string
	// scoped 为 true 时所有 grant 附加机构同域条件
	scoped bool
}

// seedSystemRoles 系统角色及其权限集
var seedSystemRoles = []seedRole{
	{
		name:        model.RoleSuperAdmin,
		description: "平台超级管理员，持有全部权限",
	},
	{
		name:        model.RoleOrgAdmin,
		description: "机构管理员，权限限定在本机构范围内",
		scoped:      true,
	},
	{
		name:        model.RoleManager,
		description: "排班经理",
		permKeys: []string{
			"read:Organization",
			"read:User", "invite_staff:User",
			"manage:ShiftType", "manage:Shift", "read:Shift",
			"manage:ShiftPaymentConfig", "manage:StaffRate",
			"manage:EmployeeAvailability", "read:EmployeeAvailability",
			"manage:SchedulingRule", "manage:ShiftRotationPattern",
			"read:Timesheet", "approve:Timesheet",
		},
		scoped: true,
	},
	{
		name:        model.RoleDoctor,
		description: "医生",
		permKeys: []string{
			"read:Shift", "read:EmployeeAvailability",
			"update:EmployeeAvailability", "read:Timesheet",
		},
		scoped: true,
	},
	{
		name:        model.RoleNurse,
		description: "护士",
		permKeys: []string{
			"read:Shift", "read:EmployeeAvailability",
			"update:EmployeeAvailability", "read:Timesheet",
		},
		scoped: true,
	},
	{
		name:        model.RoleCarer,
		description: "护理员",
		permKeys: []string{
			"read:Shift", "read:EmployeeAvailability",
			"update:EmployeeAvailability", "read:Timesheet",
		},
		scoped: true,
	},
	{
		name:        model.RoleStaff,
		description: "普通员工",
		permKeys: []string{
			"read:Shift", "update:EmployeeAvailability", "read:Timesheet",
		},
		scoped: true,
	},
}

// orgScopeConditions 机构同域条件：请求中的 organizationId 必须等于操作者所属机构
func orgScopeConditions() model.ConditionList {
	return model.ConditionList{
		{Field: "organizationId", Operator: model.CondOperatorEquals, Value: "$actor.organizationId"},
	}
}

// ────────────────────── Seed ──────────────────────

// Seed 幂等播种：
//   - 权限目录：已存在的 (action, subject) 仅更新描述，不存在则创建
//   - 系统角色：find-or-create 角色后整体替换权限集（先删后建，不做增量对比）
func (s *permissionService) Seed(ctx context.Context) error {
	permIndex := make(map[string]string) // "action:subject" → permission_id

	upsert := func(action, subject, description string) error {
		existing, err := s.repo.Permission.GetByActionSubject(ctx, action, subject)
		if err == nil {
			if existing.Description != description {
				if err := s.repo.Permission.UpdateDescription(ctx, existing.PermissionID, description); err != nil {
					return err
				}
			}
			permIndex[action+":"+subject] = existing.PermissionID
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		perm := &model.Permission{Action: action, Subject: subject, Description: description}
		if err := s.repo.Permission.Create(ctx, perm); err != nil {
			return err
		}
		permIndex[action+":"+subject] = perm.PermissionID
		return nil
	}

	// 1. 标准动作 × 实体
	for _, subject := range seedSubjects {
		for _, action := range seedActions {
			if err := upsert(action, subject, action+" "+subject); err != nil {
				s.logger.Error("播种权限失败",
					zap.String("action", action), zap.String("subject", subject), zap.Error(err))
				return err
			}
		}
	}

	// 2. 专用权限
	for _, extra := range seedExtraPermissions {
		if err := upsert(extra.action, extra.subject, extra.description); err != nil {
			s.logger.Error("播种权限失败",
				zap.String("action", extra.action), zap.String("subject", extra.subject), zap.Error(err))
			return err
		}
	}

	// 3. 系统角色与权限集
	for _, sr := range seedSystemRoles {
		role, err := s.repo.Role.GetByName(ctx, sr.name)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			role = &model.Role{Name: sr.name, Description: sr.description, IsSystemRole: true}
			if err := s.repo.Role.Create(ctx, role); err != nil {
				s.logger.Error("播种角色失败", zap.String("role", sr.name), zap.Error(err))
				return err
			}
		} else if err != nil {
			return err
		}

		keys := sr.permKeys
		if len(keys) == 0 {
			// 全量授权
			keys = make([]string, 0, len(permIndex))
			for k := range permIndex {
				keys = append(keys, k)
			}
		}

		grants := make([]model.RolePermission, 0, len(keys))
		for _, key := range keys {
			permID, ok := permIndex[key]
			if !ok {
				s.logger.Warn("种子权限键未注册，已跳过",
					zap.String("role", sr.name), zap.String("key", key))
				continue
			}
			grant := model.RolePermission{PermissionID: permID}
			if sr.scoped {
				grant.Conditions = orgScopeConditions()
			}
			grants = append(grants, grant)
		}

		if err := s.repo.Role.ReplacePermissions(ctx, role.RoleID, grants); err != nil {
			s.logger.Error("替换角色权限集失败", zap.String("role", sr.name), zap.Error(err))
			return err
		}
	}

	s.logger.Info("权限目录与系统角色播种完成",
		zap.Int("permissions", len(permIndex)),
		zap.Int("roles", len(seedSystemRoles)),
	)
	return nil
}

// ────────────────────── ListPermissions ──────────────────────

func (s *permissionService) ListPermissions(ctx context.Context) ([]dto.PermissionResponse, error) {
	perms, err := s.repo.Permission.List(ctx)
	if err != nil {
		s.logger.Error("列出权限失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.PermissionResponse, 0, len(perms))
	for i := range perms {
		p := &perms[i]
		result = append(result, dto.PermissionResponse{
			ID:          p.PermissionID,
			Action:      p.Action,
			Subject:     p.Subject,
			Description: p.Description,
		})
	}
	return result, nil
}

// ────────────────────── ListRoles ──────────────────────

func (s *permissionService) ListRoles(ctx context.Context) ([]dto.RoleResponse, error) {
	roles, err := s.repo.Role.List(ctx)
	if err != nil {
		s.logger.Error("列出角色失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.RoleResponse, 0, len(roles))
	for i := range roles {
		r := &roles[i]
		resp := dto.RoleResponse{
			ID:           r.RoleID,
			Name:         r.Name,
			Description:  r.Description,
			IsSystemRole: r.IsSystemRole,
		}
		for j := range r.Permissions {
			if r.Permissions[j].Permission != nil {
				resp.Permissions = append(resp.Permissions, r.Permissions[j].Permission.Key())
			}
		}
		result = append(result, resp)
	}
	return result, nil
}

// ────────────────────── ResolvePermissions ──────────────────────

func (s *permissionService) ResolvePermissions(ctx context.Context, roleName string) ([]string, error) {
	role, err := s.repo.Role.GetByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		s.logger.Error("查询角色失败", zap.String("role", roleName), zap.Error(err))
		return nil, err
	}

	keys := make([]string, 0, len(role.Permissions))
	for i := range role.Permissions {
		if role.Permissions[i].Permission != nil {
			keys = append(keys, role.Permissions[i].Permission.Key())
		}
	}
	return keys, nil
}

// ────────────────────── Authorize ──────────────────────

func (s *permissionService) Authorize(ctx context.Context, actor *ActorContext, action, subject string, request map[string]string) (bool, error) {
	role, err := s.repo.Role.GetByName(ctx, actor.Role)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrRoleNotFound
		}
		s.logger.Error("查询角色失败", zap.String("role", actor.Role), zap.Error(err))
		return false, err
	}

	for i := range role.Permissions {
		grant := &role.Permissions[i]
		if grant.Permission == nil {
			continue
		}
		if grant.Permission.Action != action || grant.Permission.Subject != subject {
			continue
		}
		if len(grant.Conditions) == 0 {
			return true, nil
		}
		if evaluateConditions(grant.Conditions, actor, request) {
			return true, nil
		}
		// 条件不满足：该 grant 被拒绝，继续检查同权限的其他 grant
	}
	return false, nil
}
