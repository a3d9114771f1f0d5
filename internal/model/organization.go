package model

// ── 机构类别 ──

const (
	OrgCategoryHospital        = "hospital"
	OrgCategoryCareHome        = "care_home"
	OrgCategoryServiceProvider = "service_provider"
)

// ValidOrgCategories 全部合法机构类别
var ValidOrgCategories = []string{
	OrgCategoryHospital,
	OrgCategoryCareHome,
	OrgCategoryServiceProvider,
}

// IsValidOrgCategory 判断机构类别是否合法
func IsValidOrgCategory(c string) bool {
	for _, v := range ValidOrgCategories {
		if v == c {
			return true
		}
	}
	return false
}

// Organization 机构（租户）表 — 对应 organizations
type Organization struct {
	OrganizationID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"organization_id"`
	Name           string `gorm:"type:varchar(200);not null"                     json:"name"`
	Category       string `gorm:"type:varchar(30);not null"                      json:"category"` // hospital | care_home | service_provider
	Email          string `gorm:"type:varchar(255)"                              json:"email,omitempty"`
	Phone          string `gorm:"type:varchar(30)"                               json:"phone,omitempty"`
	Address        string `gorm:"type:varchar(500)"                              json:"address,omitempty"`
	// Timezone 机构所在时区（IANA 名称），排班时间出入参按此时区转换
	Timezone string  `gorm:"type:varchar(50);not null;default:'UTC'"        json:"timezone"`
	Settings JSONMap `gorm:"type:jsonb"                                     json:"settings,omitempty"`
	IsActive bool    `gorm:"not null;default:true"                          json:"is_active"`
	VersionedModel
}

// TableName 指定表名
func (Organization) TableName() string { return "organizations" }
