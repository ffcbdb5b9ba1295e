package repository

import (
	"context"
	"time"

	"github.com/guessnica/guessnica-backend/internal/model"
	"gorm.io/gorm"
)

type VerificationCodeRepository interface {
	Create(ctx context.Context, code *model.UserVerificationCode) error
	Save(ctx context.Context, code *model.UserVerificationCode) error
	// DeleteActive removes the user's unused, unexpired codes for the given
	// purpose so only the freshest code is ever valid.
	DeleteActive(ctx context.Context, userID, purpose string, now time.Time) error
	// FindLatestActive returns the newest unused, unexpired code for the user
	// and purpose, or gorm.ErrRecordNotFound.
	FindLatestActive(ctx context.Context, userID, purpose string, now time.Time) (*model.UserVerificationCode, error)
	// FindByResetSession looks up the record carrying a live reset session.
	FindByResetSession(ctx context.Context, userID, sessionID string, now time.Time) (*model.UserVerificationCode, error)
	// DeleteExpired purges codes that can never be used again; returns the
	// number of rows removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type verificationCodeRepository struct {
	db *gorm.DB
}

func NewVerificationCodeRepository(db *gorm.DB) VerificationCodeRepository {
	return &verificationCodeRepository{db: db}
}

func (r *verificationCodeRepository) Create(ctx context.Context, code *model.UserVerificationCode) error {
	return r.db.WithContext(ctx).Create(code).Error
}

func (r *verificationCodeRepository) Save(ctx context.Context, code *model.UserVerificationCode) error {
	return r.db.WithContext(ctx).Save(code).Error
}

func (r *verificationCodeRepository) DeleteActive(ctx context.Context, userID, purpose string, now time.Time) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND purpose = ? AND used_at IS NULL AND expires_at > ?", userID, purpose, now).
		Delete(&model.UserVerificationCode{}).Error
}

func (r *verificationCodeRepository) FindLatestActive(ctx context.Context, userID, purpose string, now time.Time) (*model.UserVerificationCode, error) {
	var code model.UserVerificationCode
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND purpose = ? AND used_at IS NULL AND expires_at > ?", userID, purpose, now).
		Order("created_at DESC").
		First(&code).Error
	if err != nil {
		return nil, err
	}
	return &code, nil
}

func (r *verificationCodeRepository) FindByResetSession(ctx context.Context, userID, sessionID string, now time.Time) (*model.UserVerificationCode, error) {
	var code model.UserVerificationCode
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND purpose = ? AND reset_session_id = ? AND reset_session_expires_at > ?",
			userID, model.PurposePasswordReset, sessionID, now).
		Order("created_at DESC").
		First(&code).Error
	if err != nil {
		return nil, err
	}
	return &code, nil
}

func (r *verificationCodeRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at <= ? AND (reset_session_expires_at IS NULL OR reset_session_expires_at <= ?)", now, now).
		Delete(&model.UserVerificationCode{})
	return res.RowsAffected, res.Error
}
