package model

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID             string  `gorm:"primarykey;type:uuid" json:"id"`
	Email          string  `json:"email" gorm:"not null;uniqueIndex"`
	PasswordHash   string  `json:"-" gorm:"not null"`
	DisplayName    string  `json:"display_name" gorm:"size:50"`
	AvatarURL      *string `json:"avatar_url,omitempty" gorm:"size:500"`
	Role           string  `json:"role" gorm:"not null;default:'user'"`
	EmailConfirmed bool    `json:"email_confirmed" gorm:"not null;default:false"`
	// SecurityStamp is rotated whenever credentials change; tokens minted
	// before the rotation stop validating.
	SecurityStamp string    `json:"-" gorm:"not null"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
