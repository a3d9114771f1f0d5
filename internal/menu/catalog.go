package menu

import "shiftcare/internal/model"

// CategoryAny 通配符：节/条目对全部机构类别可见
const CategoryAny = "*"

// Item 导航条目静态定义
// 过滤语义：Categories 含通配符或操作者类别，RequiredPermissions 满足任一（OR），
// Roles 为空或包含操作者角色，DisplayIf 为 nil 或返回 true，四者同时成立才可见
type Item struct {
	Key                 string
	DefaultLabel        string
	LabelOverrides      map[string]string // 按机构类别覆盖显示名
	Path                string
	Icon                string
	RequiredPermissions []string // OR 语义：任一满足即可见
	Roles               []string // 空表示不限角色
	Categories          []string
	Order               int
	// DisplayIf 基于机构设置的条件显示谓词（如功能开关）
	DisplayIf func(settings map[string]interface{}) bool
}

// Section 导航分区静态定义
type Section struct {
	Key          string
	DefaultLabel string
	Categories   []string
	Items        []Item
}

// Catalog 返回静态菜单配置树。
// 每次调用返回新切片，调用方不得原地修改共享状态；解析过程必须保持纯函数。
func Catalog() []Section {
	return []Section{
		{
			Key:          "general",
			DefaultLabel: "概览",
			Categories:   []string{CategoryAny},
			Items: []Item{
				{
					Key:          "dashboard",
					DefaultLabel: "工作台",
					Path:         "/dashboard",
					Icon:         "home",
					Categories:   []string{CategoryAny},
					Order:        10,
				},
				{
					Key:          "my-availability",
					DefaultLabel: "我的可用时间",
					Path:         "/availability",
					Icon:         "calendar",
					Categories:   []string{CategoryAny},
					Order:        20,
				},
			},
		},
		{
			Key:          "care",
			DefaultLabel: "照护",
			Categories:   []string{model.OrgCategoryHospital, model.OrgCategoryCareHome},
			Items: []Item{
				{
					Key:          "residents",
					DefaultLabel: "住户",
					LabelOverrides: map[string]string{
						model.OrgCategoryHospital: "病患",
					},
					Path:       "/residents",
					Icon:       "users",
					Roles:      []string{model.RoleOrgAdmin, model.RoleManager, model.RoleDoctor, model.RoleNurse, model.RoleCarer},
					Categories: []string{model.OrgCategoryHospital, model.OrgCategoryCareHome},
					Order:      30,
				},
				{
					Key:                 "scheduling",
					DefaultLabel:        "排班表",
					Path:                "/scheduling",
					Icon:                "clock",
					RequiredPermissions: []string{"read:Shift", "manage:Shift"},
					Categories:          []string{CategoryAny},
					Order:               40,
				},
			},
		},
		{
			Key:          "management",
			DefaultLabel: "机构管理",
			Categories:   []string{CategoryAny},
			Items: []Item{
				{
					Key:                 "staff",
					DefaultLabel:        "员工",
					Path:                "/staff",
					Icon:                "id-badge",
					RequiredPermissions: []string{"read:User", "manage:User"},
					Categories:          []string{CategoryAny},
					Order:               50,
				},
				{
					Key:                 "invitations",
					DefaultLabel:        "邀请",
					Path:                "/invitations",
					Icon:                "mail",
					RequiredPermissions: []string{"invite_staff:User"},
					Categories:          []string{CategoryAny},
					Order:               60,
				},
				{
					Key:                 "shift-types",
					DefaultLabel:        "班次类型",
					Path:                "/shift-types",
					Icon:                "layers",
					RequiredPermissions: []string{"manage:ShiftType"},
					Categories:          []string{CategoryAny},
					Order:               70,
				},
				{
					Key:                 "payment-configs",
					DefaultLabel:        "薪酬配置",
					Path:                "/payment-configs",
					Icon:                "credit-card",
					RequiredPermissions: []string{"manage:ShiftPaymentConfig"},
					Categories:          []string{CategoryAny},
					Order:               80,
				},
				{
					Key:                 "timesheets",
					DefaultLabel:        "工时表",
					Path:                "/timesheets",
					Icon:                "file-text",
					RequiredPermissions: []string{"read:Timesheet", "manage:Timesheet"},
					Categories:          []string{CategoryAny},
					Order:               90,
					DisplayIf: func(settings map[string]interface{}) bool {
						v, ok := settings["timesheet_enabled"]
						if !ok {
							return true // 默认开启
						}
						enabled, ok := v.(bool)
						return !ok || enabled
					},
				},
				{
					Key:                 "settings",
					DefaultLabel:        "机构设置",
					Path:                "/settings",
					Icon:                "settings",
					RequiredPermissions: []string{"manage:Organization"},
					Roles:               []string{model.RoleSuperAdmin, model.RoleOrgAdmin},
					Categories:          []string{CategoryAny},
					Order:               100,
				},
			},
		},
	}
}

// ResolvedItem 解析后的可见导航条目
type ResolvedItem struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Path  string `json:"path"`
	Icon  string `json:"icon,omitempty"`
	Order int    `json:"order"`
}

// Fallback 解析异常时的兜底最小菜单。
// 解析失败时前端必须拿到可用导航而非空列表，该行为不可省略。
func Fallback() []ResolvedItem {
	return []ResolvedItem{
		{Key: "dashboard", Label: "工作台", Path: "/dashboard", Icon: "home", Order: 10},
		{Key: "my-availability", Label: "我的可用时间", Path: "/availability", Icon: "calendar", Order: 20},
	}
}
