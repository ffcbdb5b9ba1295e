package dto

type RiddleCreateDTO struct {
	Description       string  `json:"description" binding:"required"`
	Difficulty        int     `json:"difficulty" binding:"required,min=1,max=3"`
	TimeLimitSeconds  int     `json:"time_limit_seconds" binding:"required,gt=0"`
	MaxDistanceMeters float64 `json:"max_distance_meters" binding:"required,gt=0"`
	LocationID        uint    `json:"location_id" binding:"required"`
}

type RiddleUpdateDTO struct {
	Description       string  `json:"description" binding:"required"`
	Difficulty        int     `json:"difficulty" binding:"required,min=1,max=3"`
	TimeLimitSeconds  int     `json:"time_limit_seconds" binding:"required,gt=0"`
	MaxDistanceMeters float64 `json:"max_distance_meters" binding:"required,gt=0"`
	LocationID        uint    `json:"location_id" binding:"required"`
}

// RiddleResponseDTO is the admin view of a riddle, target location included.
type RiddleResponseDTO struct {
	ID                uint    `json:"id"`
	Description       string  `json:"description"`
	Difficulty        int     `json:"difficulty"`
	LocationID        uint    `json:"location_id"`
	Latitude          float64 `json:"latitude"`
	Longitude         float64 `json:"longitude"`
	ImageURL          string  `json:"image_url"`
	ShortDescription  *string `json:"short_description,omitempty"`
	TimeLimitSeconds  int     `json:"time_limit_seconds"`
	MaxDistanceMeters float64 `json:"max_distance_meters"`
}
