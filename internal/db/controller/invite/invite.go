// Package invite provides operations for course invitations. An invite is a
// random token mailed to an address; accepting it enrolls the invitee into
// the course with the role the invite carries.
package invite

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/trofos-project/trofos/internal/db/models"
	"github.com/trofos-project/trofos/internal/uniuri"
)

// TokenLength is the length of the random invite token.
const TokenLength = 32

// DefaultTTL is how long a fresh invite stays acceptable.
const DefaultTTL = 7 * 24 * time.Hour

var (
	// ErrInviteNotFound is returned when no invite matches the token.
	ErrInviteNotFound = errors.New("invite not found")
	// ErrInviteExpired is returned when accepting an invite past its expiry.
	ErrInviteExpired = errors.New("invite has expired")
	// ErrEmailEmpty is returned when creating an invite with an empty email.
	ErrEmailEmpty = errors.New("invite email cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Create issues an invite for the given course and email. A pending invite
// for the same pair is replaced with a fresh token and expiry.
func Create(db *gorm.DB, courseID uint64, email string, roleID uint) (*models.Invite, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if email == "" {
		return nil, ErrEmailEmpty
	}

	invite := &models.Invite{
		CourseID:  courseID,
		Email:     email,
		RoleID:    roleID,
		Token:     uniuri.NewLen(TokenLength),
		ExpiresAt: time.Now().Add(DefaultTTL),
	}

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "course_id"}, {Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"role_id", "token", "expires_at"}),
	}).Create(invite).Error
	if err != nil {
		return nil, err
	}

	return invite, nil
}

// GetByToken retrieves a pending invite by its token.
func GetByToken(db *gorm.DB, token string) (*models.Invite, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var invite models.Invite
	result := db.Where("token = ?", token).First(&invite)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, result.Error
	}

	return &invite, nil
}

// GetByCourse retrieves the pending invites of a course.
func GetByCourse(db *gorm.DB, courseID uint64) ([]models.Invite, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var invites []models.Invite
	if err := db.Where("course_id = ?", courseID).Find(&invites).Error; err != nil {
		return nil, err
	}

	return invites, nil
}

// Accept redeems an invite for the given user: the user is enrolled into the
// course with the invite's role and the invite is removed, in one
// transaction. Expired invites are rejected and left in place so they can be
// re-issued.
func Accept(db *gorm.DB, token string, userID uint64) (*models.Invite, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	invite, err := GetByToken(db, token)
	if err != nil {
		return nil, err
	}
	if invite.Expired(time.Now()) {
		return nil, ErrInviteExpired
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		membership := models.CourseMembership{
			UserID:   userID,
			CourseID: invite.CourseID,
			RoleID:   invite.RoleID,
		}

		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"role_id"}),
		}).Create(&membership).Error
		if err != nil {
			return err
		}

		return tx.Delete(&models.Invite{}, invite.ID).Error
	})
	if err != nil {
		return nil, err
	}

	return invite, nil
}

// Revoke removes a pending invite by ID.
func Revoke(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.Invite{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInviteNotFound
	}

	return nil
}
