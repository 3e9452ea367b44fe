package models

import "time"

// CourseMembership represents a user's membership in a course together with
// the role they hold in it. The user/course pair is unique; re-importing a
// roster updates the role in place instead of creating a second row.
type CourseMembership struct {
	// UserID is the ID of the member user.
	UserID uint64 `gorm:"primaryKey;column:user_id" json:"userId"`
	// CourseID is the ID of the course.
	CourseID uint64 `gorm:"primaryKey;column:course_id" json:"courseId"`
	// RoleID is the role the user holds within this course.
	RoleID uint `gorm:"column:role_id;not null" json:"roleId"`
	// User is the associated user. Memberships are removed with the user (CASCADE).
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	// Course is the associated course. Memberships are removed with the course (CASCADE).
	Course Course `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
	// CreatedAt is the timestamp when the membership was created (managed by GORM).
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is the timestamp when the membership was last updated (managed by GORM).
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the database table name for the CourseMembership model.
func (CourseMembership) TableName() string {
	return "course_memberships"
}
