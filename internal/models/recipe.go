package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/platemind/backend/internal/pipeline"
)

// RecipeJSON stores a validated pipeline recipe as a JSONB column.
type RecipeJSON pipeline.Recipe

// Value implements the driver.Valuer interface
func (r RecipeJSON) Value() (driver.Value, error) {
	return json.Marshal(r)
}

// Scan implements the sql.Scanner interface
func (r *RecipeJSON) Scan(value interface{}) error {
	if value == nil {
		*r = RecipeJSON{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for RecipeJSON", value)
	}

	return json.Unmarshal(bytes, r)
}

// SavedRecipe is a generated recipe a user chose to keep. The full validated
// recipe object is stored as JSON; Title is denormalized for listing and the
// embedding orders search results.
type SavedRecipe struct {
	ID        uuid.UUID       `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`
	UserID    uuid.UUID       `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Title     string          `gorm:"size:255;not null" json:"title"`
	ImageURL  string          `gorm:"size:255" json:"image_url"`
	Recipe    RecipeJSON      `gorm:"type:jsonb;not null" json:"recipe"`
	Embedding pgvector.Vector `gorm:"type:vector(3)" json:"-"`
}
