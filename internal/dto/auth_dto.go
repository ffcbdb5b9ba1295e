package dto

import "time"

type RegisterDTO struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"display_name" binding:"required,max=50"`
}

type LoginDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponseDTO struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type MeResponseDTO struct {
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	DisplayName string   `json:"display_name"`
	Role        string   `json:"role"`
	AvatarURL   *string  `json:"avatar_url,omitempty"`
}

// --- password reset flow ---

type RequestPasswordResetDTO struct {
	Email string `json:"email" binding:"required,email"`
}

type VerifyResetCodeDTO struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6"`
}

type ResetSessionResponseDTO struct {
	ResetSessionID string    `json:"reset_session_id"`
	ExpiresAt      time.Time `json:"expires_at"`
}

type SetNewPasswordDTO struct {
	Email          string `json:"email" binding:"required,email"`
	ResetSessionID string `json:"reset_session_id" binding:"required,uuid"`
	NewPassword    string `json:"new_password" binding:"required,min=8"`
}
