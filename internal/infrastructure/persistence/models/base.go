package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// BaseModel provides the persistence fields shared by all record tables.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
	Version   int       `gorm:"not null;default:1"`
}

// intSliceToJSON serializes an int slice for a text column.
func intSliceToJSON(values []int) string {
	if len(values) == 0 {
		return "[]"
	}
	b, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// intSliceFromJSON deserializes an int slice from a text column.
func intSliceFromJSON(raw string) []int {
	if raw == "" {
		return nil
	}
	var values []int
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil
	}
	return values
}
