package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"shiftcare/internal/model"
)

// ── 测试辅助 ──

func setupTestPermissionService() (PermissionService, *mockRepoSet) {
	set := newMockRepoSet()
	svc := NewPermissionService(set.repository(), zap.NewNop())
	return svc, set
}

// ── HasPermission 测试 ──

func TestHasPermission(t *testing.T) {
	cases := []struct {
		name     string
		actor    []string
		required []string
		want     bool
	}{
		{"要求为空恒通过", nil, nil, true},
		{"要求为空时无权限也通过", nil, []string{}, true},
		{"单项命中", []string{"read:Shift"}, []string{"read:Shift"}, true},
		{"OR语义任一命中即通过", []string{"read:Shift"}, []string{"manage:Shift", "read:Shift"}, true},
		{"全部未命中", []string{"read:Shift"}, []string{"manage:Shift"}, false},
		{"权限集为空且有要求", nil, []string{"read:Shift"}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := HasPermission(c.actor, c.required); got != c.want {
				t.Errorf("期望%v，实际=%v", c.want, got)
			}
		})
	}
}

// ── evaluateConditions 测试 ──

func TestEvaluateConditions_ActorSubstitution(t *testing.T) {
	actor := &ActorContext{UserID: "user-001", OrganizationID: "org-001", Role: "manager"}
	conds := model.ConditionList{
		{Field: "organizationId", Operator: model.CondOperatorEquals, Value: "$actor.organizationId"},
	}

	if !evaluateConditions(conds, actor, map[string]string{"organizationId": "org-001"}) {
		t.Error("同机构请求应通过条件求值")
	}
	if evaluateConditions(conds, actor, map[string]string{"organizationId": "org-002"}) {
		t.Error("跨机构请求应被拒绝")
	}
	if evaluateConditions(conds, actor, map[string]string{}) {
		t.Error("请求缺少条件字段应被拒绝")
	}
}

func TestEvaluateConditions_AndSemantics(t *testing.T) {
	actor := &ActorContext{UserID: "user-001", OrganizationID: "org-001"}
	conds := model.ConditionList{
		{Field: "organizationId", Operator: model.CondOperatorEquals, Value: "$actor.organizationId"},
		{Field: "userId", Operator: model.CondOperatorEquals, Value: "$actor.userId"},
	}

	ok := evaluateConditions(conds, actor, map[string]string{
		"organizationId": "org-001",
		"userId":         "user-001",
	})
	if !ok {
		t.Error("全部条件满足应通过")
	}

	ok = evaluateConditions(conds, actor, map[string]string{
		"organizationId": "org-001",
		"userId":         "user-002",
	})
	if ok {
		t.Error("AND语义下任一条件不满足应被拒绝")
	}
}

func TestEvaluateConditions_UnknownOperatorDenied(t *testing.T) {
	actor := &ActorContext{OrganizationID: "org-001"}
	conds := model.ConditionList{
		{Field: "organizationId", Operator: "not_equals", Value: "org-002"},
	}
	if evaluateConditions(conds, actor, map[string]string{"organizationId": "org-001"}) {
		t.Error("未知操作符应一律拒绝")
	}
}

func TestEvaluateConditions_UnknownPlaceholderDenied(t *testing.T) {
	actor := &ActorContext{OrganizationID: "org-001"}
	conds := model.ConditionList{
		{Field: "departmentId", Operator: model.CondOperatorEquals, Value: "$actor.departmentId"},
	}
	if evaluateConditions(conds, actor, map[string]string{"departmentId": "dep-001"}) {
		t.Error("未知占位符应一律拒绝")
	}
}

// ── Seed 测试 ──

func TestPermissionService_Seed_CreatesCatalogAndRoles(t *testing.T) {
	svc, set := setupTestPermissionService()

	if err := svc.Seed(context.Background()); err != nil {
		t.Fatalf("Seed 应成功: %v", err)
	}

	// 10 实体 × 5 动作 + 2 专用权限
	if len(set.perms.perms) != 52 {
		t.Errorf("期望52条权限，实际=%d", len(set.perms.perms))
	}
	if len(set.roles.roles) != 7 {
		t.Errorf("期望7个系统角色，实际=%d", len(set.roles.roles))
	}

	perms, err := svc.ResolvePermissions(context.Background(), model.RoleSuperAdmin)
	if err != nil {
		t.Fatalf("ResolvePermissions 应成功: %v", err)
	}
	if len(perms) != 52 {
		t.Errorf("超级管理员应持有全部52条权限，实际=%d", len(perms))
	}
}

func TestPermissionService_Seed_Idempotent(t *testing.T) {
	svc, set := setupTestPermissionService()

	if err := svc.Seed(context.Background()); err != nil {
		t.Fatalf("首次 Seed 应成功: %v", err)
	}
	permCount := len(set.perms.perms)
	roleCount := len(set.roles.roles)

	if err := svc.Seed(context.Background()); err != nil {
		t.Fatalf("重复 Seed 应成功: %v", err)
	}
	if len(set.perms.perms) != permCount {
		t.Errorf("重复播种后权限数应不变，期望%d，实际=%d", permCount, len(set.perms.perms))
	}
	if len(set.roles.roles) != roleCount {
		t.Errorf("重复播种后角色数应不变，期望%d，实际=%d", roleCount, len(set.roles.roles))
	}
}

func TestPermissionService_Seed_ScopedRoleGrantsCarryConditions(t *testing.T) {
	svc, set := setupTestPermissionService()

	if err := svc.Seed(context.Background()); err != nil {
		t.Fatalf("Seed 应成功: %v", err)
	}

	orgAdmin, err := set.roles.GetByName(context.Background(), model.RoleOrgAdmin)
	if err != nil {
		t.Fatalf("机构管理员角色应存在: %v", err)
	}
	if len(orgAdmin.Permissions) == 0 {
		t.Fatal("机构管理员应持有权限")
	}
	for _, g := range orgAdmin.Permissions {
		if len(g.Conditions) == 0 {
			t.Fatalf("机构管理员的 grant 应附加机构同域条件: %s", g.PermissionID)
		}
	}

	superAdmin, err := set.roles.GetByName(context.Background(), model.RoleSuperAdmin)
	if err != nil {
		t.Fatalf("超级管理员角色应存在: %v", err)
	}
	for _, g := range superAdmin.Permissions {
		if len(g.Conditions) != 0 {
			t.Fatal("超级管理员的 grant 不应附加条件")
		}
	}
}

// ── ResolvePermissions 测试 ──

func TestPermissionService_ResolvePermissions_ManagerSet(t *testing.T) {
	svc, _ := setupTestPermissionService()

	if err := svc.Seed(context.Background()); err != nil {
		t.Fatalf("Seed 应成功: %v", err)
	}

	keys, err := svc.ResolvePermissions(context.Background(), model.RoleManager)
	if err != nil {
		t.Fatalf("ResolvePermissions 应成功: %v", err)
	}
	keySet := make(map[string]bool, len(keys))
	for _, k := range keys {
		keySet[k] = true
	}
	for _, want := range []string{"approve:Timesheet", "invite_staff:User", "manage:ShiftType"} {
		if !keySet[want] {
			t.Errorf("排班经理应持有 %s", want)
		}
	}
	if keySet["delete:Organization"] {
		t.Error("排班经理不应持有 delete:Organization")
	}
}

func TestPermissionService_ResolvePermissions_RoleNotFound(t *testing.T) {
	svc, _ := setupTestPermissionService()

	_, err := svc.ResolvePermissions(context.Background(), "ghost")
	if !errors.Is(err, ErrRoleNotFound) {
		t.Errorf("期望ErrRoleNotFound，实际=%v", err)
	}
}

// ── Authorize 测试 ──

func TestPermissionService_Authorize_ScopedGrant(t *testing.T) {
	svc, _ := setupTestPermissionService()

	if err := svc.Seed(context.Background()); err != nil {
		t.Fatalf("Seed 应成功: %v", err)
	}

	actor := &ActorContext{UserID: "user-001", OrganizationID: "org-001", Role: model.RoleManager}

	ok, err := svc.Authorize(context.Background(), actor, "manage", "ShiftType",
		map[string]string{"organizationId": "org-001"})
	if err != nil {
		t.Fatalf("Authorize 应成功: %v", err)
	}
	if !ok {
		t.Error("同机构请求应授权通过")
	}

	ok, err = svc.Authorize(context.Background(), actor, "manage", "ShiftType",
		map[string]string{"organizationId": "org-002"})
	if err != nil {
		t.Fatalf("Authorize 应成功: %v", err)
	}
	if ok {
		t.Error("跨机构请求应被拒绝")
	}
}

func TestPermissionService_Authorize_UnconditionedGrant(t *testing.T) {
	svc, _ := setupTestPermissionService()

	if err := svc.Seed(context.Background()); err != nil {
		t.Fatalf("Seed 应成功: %v", err)
	}

	actor := &ActorContext{UserID: "admin-001", Role: model.RoleSuperAdmin}
	ok, err := svc.Authorize(context.Background(), actor, "delete", "Organization", nil)
	if err != nil {
		t.Fatalf("Authorize 应成功: %v", err)
	}
	if !ok {
		t.Error("超级管理员无条件 grant 应直接通过")
	}
}

func TestPermissionService_Authorize_NotGranted(t *testing.T) {
	svc, _ := setupTestPermissionService()

	if err := svc.Seed(context.Background()); err != nil {
		t.Fatalf("Seed 应成功: %v", err)
	}

	actor := &ActorContext{UserID: "user-001", OrganizationID: "org-001", Role: model.RoleStaff}
	ok, err := svc.Authorize(context.Background(), actor, "delete", "Organization",
		map[string]string{"organizationId": "org-001"})
	if err != nil {
		t.Fatalf("Authorize 应成功: %v", err)
	}
	if ok {
		t.Error("普通员工不应持有 delete:Organization")
	}
}

func TestPermissionService_Authorize_RoleNotFound(t *testing.T) {
	svc, _ := setupTestPermissionService()

	actor := &ActorContext{Role: "ghost"}
	_, err := svc.Authorize(context.Background(), actor, "read", "Shift", nil)
	if !errors.Is(err, ErrRoleNotFound) {
		t.Errorf("期望ErrRoleNotFound，实际=%v", err)
	}
}
