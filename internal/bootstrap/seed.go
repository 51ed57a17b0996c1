package bootstrap

import (
	"github.com/SyaefulEffendi/bahasaku-server/internal/model"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.KosaKata{},
		&model.Feedback{},
		&model.Information{},
	)
}

// SeedAdminUser creates the default administrator account when no user
// with the seed email exists yet. Intended for development environments.
func SeedAdminUser(db *gorm.DB, log *zap.Logger) error {
	const (
		adminEmail    = "admin@bahasaku.id"
		adminPassword = "admin123"
	)

	var count int64
	if err := db.Model(&model.User{}).
		Where("email = ?", adminEmail).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Info("admin user already exists, skipping seed")
		return nil
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	adminUser := model.User{
		FullName:      "Administrator",
		Email:         adminEmail,
		PasswordHash:  string(hashedPasswordBytes),
		UserType:      model.UserTypeGeneral,
		Role:          model.RoleAdmin,
		ProfilePicURL: model.DefaultProfilePicURL,
	}

	if err := db.Create(&adminUser).Error; err != nil {
		return err
	}

	log.Info("admin user seeded successfully", zap.String("email", adminEmail))
	return nil
}
