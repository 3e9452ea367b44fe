package models

import "time"

// SprintStatus represents the lifecycle state of a sprint.
type SprintStatus string

const (
	// SprintStatusUpcoming is a sprint that has not started yet.
	SprintStatusUpcoming SprintStatus = "upcoming"
	// SprintStatusCurrent is the single active sprint of a project.
	SprintStatusCurrent SprintStatus = "current"
	// SprintStatusCompleted is a finished sprint.
	SprintStatusCompleted SprintStatus = "completed"
)

// Sprint is a time-boxed iteration within a project.
type Sprint struct {
	ID        uint64       `gorm:"primaryKey" json:"id"`
	ProjectID uint64       `gorm:"column:project_id;not null" json:"projectId"`
	Name      string       `gorm:"size:255;not null" json:"name"`
	StartDate *time.Time   `json:"startDate"`
	EndDate   *time.Time   `json:"endDate"`
	Goals     string       `gorm:"size:1000" json:"goals"`
	Status    SprintStatus `gorm:"type:varchar(20);not null;default:'upcoming'" json:"status"`
	Project   Project      `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// TableName specifies the database table name for the Sprint model.
func (Sprint) TableName() string {
	return "sprints"
}
