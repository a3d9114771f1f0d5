package dto

// ── 权限模块 DTO ──

// PermissionResponse 权限条目响应
type PermissionResponse struct {
	ID          string `json:"id"`
	Action      string `json:"action"`
	Subject     string `json:"subject"`
	Description string `json:"description,omitempty"`
}

// RoleResponse 角色响应（含已解析的权限键）
type RoleResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	IsSystemRole bool     `json:"is_system_role"`
	Permissions  []string `json:"permissions,omitempty"` // "action:subject"
}
