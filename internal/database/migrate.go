package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/platemind/backend/internal/models"
)

// Migrate brings the schema up to date. On PostgreSQL the pgvector extension
// is created first so the embedding column type resolves.
func Migrate(db *gorm.DB) error {
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
			return fmt.Errorf("failed to create vector extension: %w", err)
		}
	}

	if db.Dialector.Name() == "sqlite" {
		// sqlite has no vector or jsonb types, so the recipes table is
		// created by hand with TEXT columns
		log.Printf("[Database] using sqlite schema")
		if err := db.AutoMigrate(&models.User{}); err != nil {
			return fmt.Errorf("failed to migrate users: %w", err)
		}
		return db.Exec(`CREATE TABLE IF NOT EXISTS saved_recipes (
            id TEXT PRIMARY KEY,
            created_at DATETIME,
            updated_at DATETIME,
            deleted_at DATETIME,
            user_id TEXT NOT NULL,
            title TEXT NOT NULL,
            image_url TEXT,
            recipe TEXT NOT NULL,
            embedding TEXT
        );`).Error
	}

	if err := db.AutoMigrate(&models.User{}, &models.SavedRecipe{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	log.Printf("[Database] migrations applied")
	return nil
}
