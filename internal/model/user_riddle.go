package model

import (
	"time"
)

// UserRiddle is the assignment of one riddle to one user for one game-day.
// GameDay holds the start of the assignment's game-day window; the unique
// index on (user_id, game_day) is what guarantees at most one assignment per
// user per day even when two requests race on creation.
//
// AnsweredAt and the fields below it are either all nil (unanswered) or all
// set (answered); the record never changes again once answered.
type UserRiddle struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	UserID   string `json:"user_id" gorm:"type:uuid;not null;index:idx_user_riddles_user_assigned;uniqueIndex:idx_user_riddles_user_game_day"`
	User     User   `json:"-" gorm:"foreignKey:UserID"`
	RiddleID uint   `json:"riddle_id" gorm:"not null;index"`
	Riddle   Riddle `json:"riddle,omitempty" gorm:"foreignKey:RiddleID"`

	AssignedAt time.Time `json:"assigned_at" gorm:"not null;index:idx_user_riddles_user_assigned"`
	GameDay    time.Time `json:"-" gorm:"not null;uniqueIndex:idx_user_riddles_user_game_day"`

	AnsweredAt         *time.Time `json:"answered_at,omitempty"`
	IsCorrect          *bool      `json:"is_correct,omitempty"`
	DistanceMeters     *float64   `json:"distance_meters,omitempty"`
	TimeSeconds        *int       `json:"time_seconds,omitempty"`
	Points             *int       `json:"points,omitempty"`
	SubmittedLatitude  *float64   `json:"submitted_latitude,omitempty"`
	SubmittedLongitude *float64   `json:"submitted_longitude,omitempty"`
}

// Answered reports whether the assignment has reached its terminal state.
func (ur *UserRiddle) Answered() bool {
	return ur.AnsweredAt != nil
}
