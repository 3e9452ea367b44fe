package models

import (
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the bcrypt cost factor used for all stored passwords.
const BcryptCost = 10

// User represents a user account in the system.
// Users are identified by their email address, which is unique across the
// system. Accounts created through the roster import may carry no password
// at all when the user signs in through SSO.
type User struct {
	// ID is the unique identifier for the user.
	ID uint64 `gorm:"primaryKey" json:"id"`
	// Email is the unique email address used for login and roster matching.
	Email string `gorm:"unique;size:255;not null" json:"email"`
	// DisplayName is the user's display name.
	DisplayName string `gorm:"size:100" json:"displayName"`
	// Password is the bcrypt hashed password. Empty for SSO-only accounts.
	Password string `gorm:"size:255" json:"-"`
	// RoleID is the user's base role (admin, faculty or student).
	RoleID uint `gorm:"column:role_id;not null" json:"roleId"`
	// Role is the associated base role.
	Role Role `gorm:"foreignKey:RoleID;references:ID;constraint:OnDelete:RESTRICT,OnUpdate:CASCADE" json:"-"`
	// CreatedAt is the timestamp when the user was created (managed by GORM).
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is the timestamp when the user was last updated (managed by GORM).
	UpdatedAt time.Time `json:"updatedAt"`
}

// HashPassword hashes a plaintext password with bcrypt at BcryptCost.
// This function should be used when creating or updating user passwords,
// including the ones carried by roster import rows.
func HashPassword(password string) string {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		log.Fatal().Msgf("failed to hash password: %v", err)
	}

	return string(hashedPassword)
}

// VerifyPassword verifies a plaintext password against the user's stored hash.
// Returns false for SSO-only accounts that carry no local password.
func (u *User) VerifyPassword(password string) bool {
	if u.Password == "" {
		return false
	}

	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))

	return err == nil
}
