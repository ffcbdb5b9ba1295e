package model

import (
	"time"

	"gorm.io/gorm"
)

type Location struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	Latitude         float64        `json:"latitude" gorm:"not null"`
	Longitude        float64        `json:"longitude" gorm:"not null"`
	ImageURL         string         `json:"image_url" gorm:"not null"`
	ShortDescription *string        `json:"short_description,omitempty" gorm:"size:200"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}
