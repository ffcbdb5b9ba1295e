package dto

// DailyRiddleResponseDTO describes the caller's riddle for the current
// game-day. The target coordinates are deliberately absent.
type DailyRiddleResponseDTO struct {
	UserRiddleID      uint    `json:"user_riddle_id"`
	RiddleID          uint    `json:"riddle_id"`
	ImageURL          string  `json:"image_url"`
	ShortDescription  *string `json:"short_description,omitempty"`
	Description       string  `json:"description"`
	Difficulty        int     `json:"difficulty"`
	TimeLimitSeconds  int     `json:"time_limit_seconds"`
	MaxDistanceMeters float64 `json:"max_distance_meters"`
	IsAnswered        bool    `json:"is_answered"`
}

type SubmitAnswerDTO struct {
	Latitude  float64 `json:"latitude" binding:"min=-90,max=90"`
	Longitude float64 `json:"longitude" binding:"min=-180,max=180"`
}

type AnswerResultDTO struct {
	Points         int     `json:"points"`
	DistanceMeters float64 `json:"distance_meters"`
	TimeSeconds    int     `json:"time_seconds"`
	IsCorrect      bool    `json:"is_correct"`
}
