package models

import "time"

// ProjectAssignment is a directed link between two projects of a course,
// assigning the source project's team to evaluate the target project.
// The ordered pair is unique; re-importing the same pair is a no-op.
type ProjectAssignment struct {
	// SourceProjectID is the evaluating project.
	SourceProjectID uint64 `gorm:"primaryKey;column:source_project_id" json:"sourceProjectId"`
	// TargetProjectID is the project being evaluated.
	TargetProjectID uint64 `gorm:"primaryKey;column:target_project_id" json:"targetProjectId"`
	// SourceProject is the evaluating project. Links are removed with it (CASCADE).
	SourceProject Project `gorm:"foreignKey:SourceProjectID;constraint:OnDelete:CASCADE" json:"-"`
	// TargetProject is the evaluated project. Links are removed with it (CASCADE).
	TargetProject Project `gorm:"foreignKey:TargetProjectID;constraint:OnDelete:CASCADE" json:"-"`
	// CreatedAt is the timestamp when the link was created (managed by GORM).
	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the database table name for the ProjectAssignment model.
func (ProjectAssignment) TableName() string {
	return "project_assignments"
}
