package models

import "time"

// ProjectMembership links a user to a project. The user/project pair is
// unique; repeated roster imports leave an existing link untouched.
type ProjectMembership struct {
	// UserID is the ID of the member user.
	UserID uint64 `gorm:"primaryKey;column:user_id" json:"userId"`
	// ProjectID is the ID of the project.
	ProjectID uint64 `gorm:"primaryKey;column:project_id" json:"projectId"`
	// User is the associated user. Links are removed with the user (CASCADE).
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	// Project is the associated project. Links are removed with the project (CASCADE).
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
	// CreatedAt is the timestamp when the link was created (managed by GORM).
	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the database table name for the ProjectMembership model.
func (ProjectMembership) TableName() string {
	return "project_memberships"
}
