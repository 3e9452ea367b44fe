package models

import "time"

// Project represents a student project within a course.
// The Pkey carries the team name the project was imported under and is what
// roster rows are reconciled against; the display name need not be unique
// within a course.
type Project struct {
	// ID is the unique identifier for the project.
	ID uint64 `gorm:"primaryKey" json:"id"`
	// Name is the project display name.
	Name string `gorm:"size:255;not null" json:"name"`
	// Pkey is the project key, the team name from the roster import.
	Pkey string `gorm:"size:100" json:"pkey"`
	// CourseID is the course this project belongs to.
	CourseID uint64 `gorm:"column:course_id;not null" json:"courseId"`
	// Course is the owning course. Projects are removed with the course (CASCADE).
	Course Course `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
	// BacklogCounter issues per-project backlog numbers.
	BacklogCounter uint64 `gorm:"not null;default:0" json:"backlogCounter"`
	// CreatedAt is the timestamp when the project was created (managed by GORM).
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is the timestamp when the project was last updated (managed by GORM).
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the database table name for the Project model.
func (Project) TableName() string {
	return "projects"
}
