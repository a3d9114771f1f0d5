package model

// User 用户表 — 对应 users
type User struct {
	UserID         string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name           string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email          string `gorm:"type:varchar(255);not null"                     json:"email"`
	Phone          string `gorm:"type:varchar(30)"                               json:"phone,omitempty"`
	PasswordHash   string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role           string `gorm:"type:varchar(50);not null;default:'staff'"      json:"role"`
	OrganizationID string `gorm:"type:uuid;not null"                             json:"organization_id"`
	IsActive       bool   `gorm:"not null;default:true"                          json:"is_active"`
	VersionedModel

	// 关联
	Organization *Organization `gorm:"foreignKey:OrganizationID;references:OrganizationID" json:"organization,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }
