package daemon

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/trofos-project/trofos/internal/config"
	"github.com/trofos-project/trofos/internal/db/models"
)

func seed(_ *config.Config, db *gorm.DB) {
	// The three fixed roles are re-asserted on every start.
	roles := []models.Role{
		{ID: models.RoleAdminID, Name: models.RoleAdminName},
		{ID: models.RoleFacultyID, Name: models.RoleFacultyName},
		{ID: models.RoleStudentID, Name: models.RoleStudentName},
	}

	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&roles).Error; err != nil {
		log.Fatal().Err(err).Msg("failed to seed roles")
	}

	// Create the default admin account on first start only.
	var count int64
	db.Model(&models.User{}).Count(&count)

	if count == 0 {
		db.Create(
			&models.User{
				Email:       "admin@trofos.local",
				DisplayName: "Administrator",
				Password:    models.HashPassword("changeme"),
				RoleID:      models.RoleAdminID,
			},
		)

		log.Warn().Msg("created default admin account, change its password")
	}
}
