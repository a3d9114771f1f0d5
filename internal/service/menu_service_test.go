package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"shiftcare/internal/menu"
	"shiftcare/internal/model"
)

// ── 测试辅助 ──

func setupTestMenuService() (MenuService, *mockRepoSet) {
	set := newMockRepoSet()
	perm := NewPermissionService(set.repository(), zap.NewNop())
	svc := NewMenuService(set.repository(), perm, zap.NewNop())
	return svc, set
}

func menuKeys(items []menu.ResolvedItem) map[string]menu.ResolvedItem {
	m := make(map[string]menu.ResolvedItem, len(items))
	for _, it := range items {
		m[it.Key] = it
	}
	return m
}

// ── ResolveMenu 测试 ──

func TestResolveMenu_CategoryFilter(t *testing.T) {
	in := &MenuInput{
		Role:     model.RoleCarer,
		Category: model.OrgCategoryServiceProvider,
	}
	items := ResolveMenu(menu.Catalog(), in)
	keys := menuKeys(items)

	if _, ok := keys["residents"]; ok {
		t.Error("服务商机构不应看到照护分区的住户条目")
	}
	if _, ok := keys["dashboard"]; !ok {
		t.Error("工作台对全部类别可见")
	}
}

func TestResolveMenu_PermissionOr(t *testing.T) {
	in := &MenuInput{
		Role:        model.RoleStaff,
		Category:    model.OrgCategoryCareHome,
		Permissions: []string{"read:Shift"},
	}
	items := ResolveMenu(menu.Catalog(), in)
	keys := menuKeys(items)

	if _, ok := keys["scheduling"]; !ok {
		t.Error("read:Shift 应满足排班表的 OR 权限要求")
	}
	if _, ok := keys["staff"]; ok {
		t.Error("无 read:User 权限不应看到员工条目")
	}
	if _, ok := keys["invitations"]; ok {
		t.Error("无 invite_staff:User 权限不应看到邀请条目")
	}
}

func TestResolveMenu_RoleFilter(t *testing.T) {
	perms := []string{"manage:Organization"}

	in := &MenuInput{Role: model.RoleManager, Category: model.OrgCategoryCareHome, Permissions: perms}
	if _, ok := menuKeys(ResolveMenu(menu.Catalog(), in))["settings"]; ok {
		t.Error("机构设置限定管理员角色，经理不应可见")
	}

	in = &MenuInput{Role: model.RoleOrgAdmin, Category: model.OrgCategoryCareHome, Permissions: perms}
	if _, ok := menuKeys(ResolveMenu(menu.Catalog(), in))["settings"]; !ok {
		t.Error("机构管理员应看到机构设置")
	}
}

func TestResolveMenu_LabelOverrideByCategory(t *testing.T) {
	in := &MenuInput{
		Role:     model.RoleNurse,
		Category: model.OrgCategoryHospital,
	}
	keys := menuKeys(ResolveMenu(menu.Catalog(), in))

	item, ok := keys["residents"]
	if !ok {
		t.Fatal("医院机构的护士应看到住户条目")
	}
	if item.Label != "病患" {
		t.Errorf("医院类别下期望标签=病患，实际=%s", item.Label)
	}

	in.Category = model.OrgCategoryCareHome
	keys = menuKeys(ResolveMenu(menu.Catalog(), in))
	if keys["residents"].Label != "住户" {
		t.Errorf("养老院类别下期望标签=住户，实际=%s", keys["residents"].Label)
	}
}

func TestResolveMenu_DisplayIfToggle(t *testing.T) {
	in := &MenuInput{
		Role:        model.RoleManager,
		Category:    model.OrgCategoryCareHome,
		Permissions: []string{"read:Timesheet"},
		Settings:    map[string]interface{}{"timesheet_enabled": false},
	}
	if _, ok := menuKeys(ResolveMenu(menu.Catalog(), in))["timesheets"]; ok {
		t.Error("功能开关关闭时不应显示工时表")
	}

	// 开关缺省视为开启
	in.Settings = nil
	if _, ok := menuKeys(ResolveMenu(menu.Catalog(), in))["timesheets"]; !ok {
		t.Error("开关缺省时应显示工时表")
	}
}

func TestResolveMenu_SortedByOrder(t *testing.T) {
	in := &MenuInput{
		Role:        model.RoleOrgAdmin,
		Category:    model.OrgCategoryCareHome,
		Permissions: []string{"read:Shift", "read:User", "manage:Organization"},
	}
	items := ResolveMenu(menu.Catalog(), in)
	if len(items) < 2 {
		t.Fatalf("期望多条可见条目，实际=%d", len(items))
	}
	for i := 1; i < len(items); i++ {
		if items[i-1].Order > items[i].Order {
			t.Fatalf("条目应按 Order 升序排列: %s(%d) 在 %s(%d) 之前",
				items[i-1].Key, items[i-1].Order, items[i].Key, items[i].Order)
		}
	}
}

func TestResolveMenu_PanicFallsBack(t *testing.T) {
	sections := []menu.Section{
		{
			Key:        "broken",
			Categories: []string{menu.CategoryAny},
			Items: []menu.Item{
				{
					Key:        "boom",
					Categories: []string{menu.CategoryAny},
					DisplayIf: func(_ map[string]interface{}) bool {
						panic("菜单谓词异常")
					},
				},
			},
		},
	}

	items := ResolveMenu(sections, &MenuInput{Category: model.OrgCategoryCareHome})
	if len(items) != 2 {
		t.Fatalf("解析异常应返回兜底菜单，期望2条，实际=%d", len(items))
	}
	if items[0].Key != "dashboard" || items[1].Key != "my-availability" {
		t.Errorf("兜底菜单应为工作台+我的可用时间，实际=%s,%s", items[0].Key, items[1].Key)
	}
}

// ── GetMenu 测试 ──

func TestMenuService_GetMenu_WithSeededRole(t *testing.T) {
	svc, set := setupTestMenuService()

	perm := NewPermissionService(set.repository(), zap.NewNop())
	if err := perm.Seed(context.Background()); err != nil {
		t.Fatalf("Seed 应成功: %v", err)
	}
	set.orgs.orgs["org-001"] = &model.Organization{
		OrganizationID: "org-001",
		Name:           "夕阳红养老院",
		Category:       model.OrgCategoryCareHome,
	}

	actor := &ActorContext{UserID: "user-001", OrganizationID: "org-001", Role: model.RoleManager}
	keys := menuKeys(svc.GetMenu(context.Background(), actor))

	for _, want := range []string{"dashboard", "residents", "scheduling", "staff", "invitations", "shift-types", "timesheets"} {
		if _, ok := keys[want]; !ok {
			t.Errorf("排班经理应看到 %s", want)
		}
	}
	if _, ok := keys["settings"]; ok {
		t.Error("排班经理不应看到机构设置")
	}
}

func TestMenuService_GetMenu_UnknownRoleDegrades(t *testing.T) {
	svc, _ := setupTestMenuService()

	// 角色未播种：权限集为空，仅无权限要求的条目可见
	actor := &ActorContext{UserID: "user-001", Role: "ghost"}
	keys := menuKeys(svc.GetMenu(context.Background(), actor))

	if _, ok := keys["dashboard"]; !ok {
		t.Error("无权限上下文仍应看到工作台")
	}
	if _, ok := keys["staff"]; ok {
		t.Error("无权限上下文不应看到员工条目")
	}
}

func TestMenuService_GetMenu_OrgSettingsHonored(t *testing.T) {
	svc, set := setupTestMenuService()

	perm := NewPermissionService(set.repository(), zap.NewNop())
	if err := perm.Seed(context.Background()); err != nil {
		t.Fatalf("Seed 应成功: %v", err)
	}
	set.orgs.orgs["org-001"] = &model.Organization{
		OrganizationID: "org-001",
		Category:       model.OrgCategoryCareHome,
		Settings:       model.JSONMap{"timesheet_enabled": false},
	}

	actor := &ActorContext{UserID: "user-001", OrganizationID: "org-001", Role: model.RoleManager}
	keys := menuKeys(svc.GetMenu(context.Background(), actor))
	if _, ok := keys["timesheets"]; ok {
		t.Error("机构关闭工时功能后不应显示工时表")
	}
}
