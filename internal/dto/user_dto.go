package dto

import "time"

type UserStatsSummaryDTO struct {
	Assigned  int `json:"assigned"`
	Answered  int `json:"answered"`
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`

	TotalScore int     `json:"total_score"`
	AvgScore   float64 `json:"avg_score"`

	CurrentStreak int `json:"current_streak"`
	BestStreak    int `json:"best_streak"`

	AccountCreatedAt time.Time `json:"account_created_at"`

	TotalDistanceMeters float64 `json:"total_distance_meters"`
	AvgDistanceMeters   float64 `json:"avg_distance_meters"`
}

type UserHistoryEntryDTO struct {
	ID       uint `json:"id"`
	RiddleID uint `json:"riddle_id"`

	AnsweredAt time.Time `json:"answered_at"`

	IsCorrect bool `json:"is_correct"`
	Points    int  `json:"points"`

	DistanceMeters *float64 `json:"distance_meters,omitempty"`
	TimeSeconds    *int     `json:"time_seconds,omitempty"`

	LocationName *string `json:"location_name,omitempty"`
}

type AvatarResponseDTO struct {
	AvatarURL string `json:"avatar_url"`
}
