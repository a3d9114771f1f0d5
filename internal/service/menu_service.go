package service

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"shiftcare/internal/menu"
	"shiftcare/internal/model"
	"shiftcare/internal/repository"
)

// MenuInput 菜单解析输入
type MenuInput struct {
	Role        string
	Category    string                 // 机构类别
	Permissions []string               // 操作者权限键集（"action:subject"）
	Settings    map[string]interface{} // 机构设置
}

// ResolveMenu 按操作者上下文解析静态菜单树，纯函数实现。
// 过滤顺序：节类别 → 条目类别 → 权限（OR）与角色 → 条件显示谓词，
// 通过的条目应用类别标签覆盖后摊平，按 Order 稳定排序。
// 解析过程任何 panic 都兜底返回最小菜单，绝不让导航整体失效。
func ResolveMenu(sections []menu.Section, in *MenuInput) (items []menu.ResolvedItem) {
	defer func() {
		if r := recover(); r != nil {
			items = menu.Fallback()
		}
	}()

	items = make([]menu.ResolvedItem, 0, 8)
	for _, sec := range sections {
		if !categoryMatches(sec.Categories, in.Category) {
			continue
		}
		for _, it := range sec.Items {
			if !categoryMatches(it.Categories, in.Category) {
				continue
			}
			if !HasPermission(in.Permissions, it.RequiredPermissions) {
				continue
			}
			if !roleMatches(it.Roles, in.Role) {
				continue
			}
			if it.DisplayIf != nil && !it.DisplayIf(in.Settings) {
				continue
			}
			label := it.DefaultLabel
			if override, ok := it.LabelOverrides[in.Category]; ok {
				label = override
			}
			items = append(items, menu.ResolvedItem{
				Key:   it.Key,
				Label: label,
				Path:  it.Path,
				Icon:  it.Icon,
				Order: it.Order,
			})
		}
	}

	// 稳定排序：Order 相同时保持目录声明顺序
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Order < items[j].Order
	})
	return items
}

func categoryMatches(categories []string, category string) bool {
	for _, c := range categories {
		if c == menu.CategoryAny || c == category {
			return true
		}
	}
	return false
}

func roleMatches(roles []string, role string) bool {
	if len(roles) == 0 {
		return true
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// MenuService 导航菜单业务接口
type MenuService interface {
	// GetMenu 解析操作者可见的导航菜单；
	// 上下文装配失败时降级返回兜底菜单而非报错
	GetMenu(ctx context.Context, actor *ActorContext) []menu.ResolvedItem
}

type menuService struct {
	repo   *repository.Repository
	perm   PermissionService
	logger *zap.Logger
}

// NewMenuService 创建 MenuService 实例
func NewMenuService(repo *repository.Repository, perm PermissionService, logger *zap.Logger) MenuService {
	return &menuService{repo: repo, perm: perm, logger: logger}
}

// ────────────────────── GetMenu ──────────────────────

func (s *menuService) GetMenu(ctx context.Context, actor *ActorContext) []menu.ResolvedItem {
	in := &MenuInput{Role: actor.Role}

	perms, err := s.perm.ResolvePermissions(ctx, actor.Role)
	if err != nil && !errors.Is(err, ErrRoleNotFound) {
		s.logger.Warn("解析角色权限失败，返回兜底菜单",
			zap.String("role", actor.Role), zap.Error(err))
		return menu.Fallback()
	}
	in.Permissions = perms

	if actor.OrganizationID != "" {
		org, err := s.repo.Organization.GetByID(ctx, actor.OrganizationID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				s.logger.Warn("查询机构失败，返回兜底菜单",
					zap.String("organization_id", actor.OrganizationID), zap.Error(err))
				return menu.Fallback()
			}
		} else {
			in.Category = org.Category
			in.Settings = map[string]interface{}(org.Settings)
		}
	}
	if in.Category == "" {
		in.Category = model.OrgCategoryServiceProvider
	}

	return ResolveMenu(menu.Catalog(), in)
}
