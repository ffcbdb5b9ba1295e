package model

import (
	"time"
)

// Verification code purposes.
const (
	PurposePasswordReset = "password_reset"
	PurposeEmailConfirm  = "email_confirm"
)

// UserVerificationCode backs both the password-reset code flow and email
// confirmation. The plaintext code is never stored; CodeHash is
// sha256(id + ":" + code) so codes cannot be replayed across records.
type UserVerificationCode struct {
	ID       string `gorm:"primarykey;type:uuid" json:"id"`
	UserID   string `json:"user_id" gorm:"type:uuid;not null;index:idx_verification_user_purpose_exp"`
	User     User   `json:"-" gorm:"foreignKey:UserID"`
	CodeHash string `json:"-" gorm:"size:128;not null"`
	Purpose  string `json:"purpose" gorm:"size:40;not null;index:idx_verification_user_purpose_exp"`

	ExpiresAt time.Time  `json:"expires_at" gorm:"not null;index:idx_verification_user_purpose_exp"`
	CreatedAt time.Time  `json:"created_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	Attempts  int        `json:"attempts" gorm:"not null;default:0"`

	ResetSessionID        *string    `json:"reset_session_id,omitempty" gorm:"type:uuid;index"`
	ResetSessionExpiresAt *time.Time `json:"reset_session_expires_at,omitempty"`
}
