package model

// ── 系统角色 ──

const (
	RoleSuperAdmin = "super_admin"
	RoleOrgAdmin   = "org_admin"
	RoleManager    = "manager"
	RoleDoctor     = "doctor"
	RoleNurse      = "nurse"
	RoleCarer      = "carer"
	RoleStaff      = "staff"
)

// Role 角色表 — 对应 roles
// 系统角色由种子脚本创建且不可编辑；机构自定义角色按租户隔离
type Role struct {
	RoleID         string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"role_id"`
	Name           string  `gorm:"type:varchar(50);not null"                      json:"name"`
	Description    string  `gorm:"type:varchar(500)"                              json:"description,omitempty"`
	IsSystemRole   bool    `gorm:"not null;default:false"                         json:"is_system_role"`
	OrganizationID *string `gorm:"type:uuid"                                      json:"organization_id,omitempty"` // NULL 表示平台级角色
	VersionedModel

	// 关联
	Permissions []RolePermission `gorm:"foreignKey:RoleID" json:"permissions,omitempty"`
}

// TableName 指定表名
func (Role) TableName() string { return "roles" }

// RolePermission 角色-权限关联表 — 对应 role_permissions
// Conditions 为空表示无条件授予；非空时需代入操作者上下文求值通过才生效
type RolePermission struct {
	RolePermissionID string        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"role_permission_id"`
	RoleID           string        `gorm:"type:uuid;not null;index"                       json:"role_id"`
	PermissionID     string        `gorm:"type:uuid;not null"                             json:"permission_id"`
	Conditions       ConditionList `gorm:"type:jsonb"                                     json:"conditions,omitempty"`
	BaseModel

	// 关联
	Permission *Permission `gorm:"foreignKey:PermissionID;references:PermissionID" json:"permission,omitempty"`
}

// TableName 指定表名
func (RolePermission) TableName() string { return "role_permissions" }
