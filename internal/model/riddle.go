package model

import (
	"time"

	"gorm.io/gorm"
)

// Riddle difficulty tiers. The ordinal doubles as the base score weight.
const (
	DifficultyEasy   = 1
	DifficultyMedium = 2
	DifficultyHard   = 3
)

type Riddle struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	Description      string         `json:"description" gorm:"type:text;not null"`
	Difficulty       int            `json:"difficulty" gorm:"not null"` // 1=easy, 2=medium, 3=hard
	TimeLimitSeconds int            `json:"time_limit_seconds" gorm:"not null"`
	MaxDistanceMeters float64       `json:"max_distance_meters" gorm:"not null"`
	LocationID       uint           `json:"location_id" gorm:"not null;index"`
	Location         Location       `json:"location,omitempty" gorm:"foreignKey:LocationID"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}
