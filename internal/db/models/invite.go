package models

import "time"

// Invite is a pending invitation to join a course. The token is a random
// string mailed to the invitee; an invite past its expiry is rejected on
// acceptance and may be re-issued.
type Invite struct {
	// ID is the unique identifier for the invite.
	ID uint64 `gorm:"primaryKey" json:"id"`
	// CourseID is the course the invitee is being added to.
	CourseID uint64 `gorm:"column:course_id;not null;uniqueIndex:idx_course_email" json:"courseId"`
	// Email is the invitee's email address.
	Email string `gorm:"size:255;not null;uniqueIndex:idx_course_email" json:"email"`
	// RoleID is the course role the invitee will receive on acceptance.
	RoleID uint `gorm:"column:role_id;not null" json:"roleId"`
	// Token is the random single-use token carried in the invite link.
	Token string `gorm:"size:64;not null;uniqueIndex" json:"-"`
	// ExpiresAt is when the invite stops being acceptable.
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
	// Course is the associated course. Invites are removed with the course (CASCADE).
	Course Course `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
	// CreatedAt is the timestamp when the invite was created (managed by GORM).
	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the database table name for the Invite model.
func (Invite) TableName() string {
	return "invites"
}

// Expired reports whether the invite is past its expiry at the given time.
func (i *Invite) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}
