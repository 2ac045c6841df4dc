package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// StoredPersona is one entry in the persona corpus the similarity lookup
// searches. The embedding is persisted as a JSON array so the corpus stays
// portable across sqlite files.
type StoredPersona struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Summary   string         `gorm:"not null" json:"summary"`
	AgeRange  string         `gorm:"index" json:"age_range"`
	Gender    string         `gorm:"index" json:"gender"`
	Embedding datatypes.JSON `json:"embedding,omitempty"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
}
