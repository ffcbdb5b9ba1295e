package dto

import "mime/multipart"

// LocationCreateDTO is bound from multipart form data; the image is uploaded
// to object storage before the row is written.
type LocationCreateDTO struct {
	Latitude         float64               `form:"latitude" binding:"min=-90,max=90"`
	Longitude        float64               `form:"longitude" binding:"min=-180,max=180"`
	Image            *multipart.FileHeader `form:"image" binding:"required"`
	ShortDescription *string               `form:"short_description" binding:"omitempty,max=200"`
}

type LocationUpdateDTO struct {
	Latitude         float64 `json:"latitude" binding:"min=-90,max=90"`
	Longitude        float64 `json:"longitude" binding:"min=-180,max=180"`
	ImageURL         string  `json:"image_url" binding:"required"`
	ShortDescription *string `json:"short_description" binding:"omitempty,max=200"`
}

type LocationResponseDTO struct {
	ID               uint    `json:"id"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	ImageURL         string  `json:"image_url"`
	ShortDescription *string `json:"short_description,omitempty"`
}
