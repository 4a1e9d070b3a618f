package database

import (
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// ModelRegistry lists every model that participates in schema migration,
// ordered so foreign key targets migrate before their referrers.
func ModelRegistry() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
	}
}

// Migrate runs AutoMigrate for all registered models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(ModelRegistry()...)
}
