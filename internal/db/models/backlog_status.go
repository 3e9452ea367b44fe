package models

// Default backlog status names seeded for every new project.
const (
	BacklogStatusTodo       = "To do"
	BacklogStatusInProgress = "In progress"
	BacklogStatusDone       = "Done"
)

// BacklogStatusType classifies a status column on the project board.
type BacklogStatusType string

const (
	// BacklogStatusTypeTodo marks the leftmost (not started) column.
	BacklogStatusTypeTodo BacklogStatusType = "todo"
	// BacklogStatusTypeInProgress marks an in-flight column.
	BacklogStatusTypeInProgress BacklogStatusType = "in_progress"
	// BacklogStatusTypeDone marks the completed column.
	BacklogStatusTypeDone BacklogStatusType = "done"
)

// BacklogStatus is a status column on a project's backlog board.
type BacklogStatus struct {
	ID        uint64            `gorm:"primaryKey" json:"id"`
	ProjectID uint64            `gorm:"column:project_id;not null;uniqueIndex:idx_project_status" json:"projectId"`
	Name      string            `gorm:"size:100;not null;uniqueIndex:idx_project_status" json:"name"`
	Type      BacklogStatusType `gorm:"type:varchar(20);not null" json:"type"`
	Order     int               `gorm:"column:sort_order;not null" json:"order"`
	Project   Project           `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the database table name for the BacklogStatus model.
func (BacklogStatus) TableName() string {
	return "backlog_statuses"
}

// DefaultBacklogStatuses returns the three statuses every new project is
// seeded with, in board order.
func DefaultBacklogStatuses(projectID uint64) []BacklogStatus {
	return []BacklogStatus{
		{ProjectID: projectID, Name: BacklogStatusTodo, Type: BacklogStatusTypeTodo, Order: 1},
		{ProjectID: projectID, Name: BacklogStatusInProgress, Type: BacklogStatusTypeInProgress, Order: 2},
		{ProjectID: projectID, Name: BacklogStatusDone, Type: BacklogStatusTypeDone, Order: 3},
	}
}
