package models

import "time"

// Course represents a taught course (module) that owns projects and rosters.
type Course struct {
	// ID is the unique identifier for the course.
	ID uint64 `gorm:"primaryKey" json:"id"`
	// Code is the course code (e.g., "CS3203").
	Code string `gorm:"size:50;not null;uniqueIndex:idx_code_year_sem" json:"code"`
	// Name is the course display name.
	Name string `gorm:"size:255;not null" json:"name"`
	// Year is the academic year the course runs in.
	Year int `gorm:"not null;uniqueIndex:idx_code_year_sem" json:"year"`
	// Semester is the semester within the academic year.
	Semester int `gorm:"not null;uniqueIndex:idx_code_year_sem" json:"semester"`
	// Description provides a free-form course description.
	Description string `gorm:"size:1000" json:"description"`
	// CreatedAt is the timestamp when the course was created (managed by GORM).
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is the timestamp when the course was last updated (managed by GORM).
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the database table name for the Course model.
func (Course) TableName() string {
	return "courses"
}
