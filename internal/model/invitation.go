package model

import "time"

// StaffInvitation 员工邀请表 — 对应 staff_invitations
type StaffInvitation struct {
	InvitationID   string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"invitation_id"`
	OrganizationID string     `gorm:"type:uuid;not null;index"                       json:"organization_id"`
	Email          string     `gorm:"type:varchar(255);not null"                     json:"email"`
	Role           string     `gorm:"type:varchar(50);not null;default:'staff'"      json:"role"`
	Token          string     `gorm:"type:varchar(64);not null;uniqueIndex"          json:"-"`
	ExpiresAt      time.Time  `gorm:"not null"                                       json:"expires_at"`
	AcceptedAt     *time.Time `json:"accepted_at,omitempty"`
	AcceptedBy     *string    `gorm:"type:uuid"                                      json:"accepted_by,omitempty"`
	InvitedBy      string     `gorm:"type:uuid;not null"                             json:"invited_by"`
	VersionedModel

	// 关联
	Organization *Organization `gorm:"foreignKey:OrganizationID;references:OrganizationID" json:"organization,omitempty"`
}

// TableName 指定表名
func (StaffInvitation) TableName() string { return "staff_invitations" }
