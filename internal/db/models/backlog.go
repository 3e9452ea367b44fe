package models

import "time"

// BacklogType classifies a backlog item.
type BacklogType string

// Backlog item types.
const (
	BacklogTypeStory BacklogType = "story"
	BacklogTypeTask  BacklogType = "task"
	BacklogTypeBug   BacklogType = "bug"
)

// BacklogPriority orders backlog items by urgency.
type BacklogPriority string

// Backlog priorities.
const (
	BacklogPriorityVeryHigh BacklogPriority = "very_high"
	BacklogPriorityHigh     BacklogPriority = "high"
	BacklogPriorityMedium   BacklogPriority = "medium"
	BacklogPriorityLow      BacklogPriority = "low"
	BacklogPriorityVeryLow  BacklogPriority = "very_low"
)

// Backlog is a single work item on a project's backlog. Items live on the
// project backlog until pulled into a sprint; Status references one of the
// project's BacklogStatus columns by name.
type Backlog struct {
	ID         uint64          `gorm:"primaryKey" json:"id"`
	ProjectID  uint64          `gorm:"column:project_id;not null" json:"projectId"`
	SprintID   *uint64         `gorm:"column:sprint_id" json:"sprintId"`
	AssigneeID *uint64         `gorm:"column:assignee_id" json:"assigneeId"`
	Summary    string          `gorm:"size:255;not null" json:"summary"`
	Type       BacklogType     `gorm:"type:varchar(20);not null" json:"type"`
	Priority   BacklogPriority `gorm:"type:varchar(20)" json:"priority"`
	Points     *int            `json:"points"`
	Status     string          `gorm:"size:100;not null" json:"status"`
	Project    Project         `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
	Sprint     *Sprint         `gorm:"foreignKey:SprintID" json:"-"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// TableName specifies the database table name for the Backlog model.
func (Backlog) TableName() string {
	return "backlogs"
}
