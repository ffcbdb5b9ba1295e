package dto

// Leaderboard categories.
const (
	CategoryTotalScore  = "total_score"
	CategoryAccuracy    = "accuracy"
	CategoryGamesPlayed = "games_played"
	CategoryAverageTime = "average_time"
)

type LeaderboardEntryDTO struct {
	Rank        int     `json:"rank"`
	UserID      string  `json:"user_id"`
	DisplayName string  `json:"display_name"`
	AvatarURL   *string `json:"avatar_url,omitempty"`

	TotalPoints        int      `json:"total_points"`
	CorrectAnswers     int      `json:"correct_answers"`
	GamesPlayed        int      `json:"games_played"`
	AverageTimeSeconds *float64 `json:"average_time_seconds,omitempty"`
	Accuracy           *float64 `json:"accuracy,omitempty"`
}

type UserRankDTO struct {
	Rank       *int   `json:"rank"`
	TotalUsers int    `json:"total_users"`
	Days       int    `json:"days"`
	Category   string `json:"category"`

	TotalPoints        int      `json:"total_points"`
	CorrectAnswers     int      `json:"correct_answers"`
	GamesPlayed        int      `json:"games_played"`
	AverageTimeSeconds *float64 `json:"average_time_seconds,omitempty"`
	Accuracy           *float64 `json:"accuracy,omitempty"`
}
