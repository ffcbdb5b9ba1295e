package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/guessnica/guessnica-backend/internal/dto"
	"github.com/guessnica/guessnica-backend/internal/model"
	"github.com/guessnica/guessnica-backend/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	resetCodeTTL    = 15 * time.Minute
	resetSessionTTL = 15 * time.Minute
	// maxCodeAttempts locks a code after this many verification attempts.
	maxCodeAttempts = 5
)

// PasswordResetService drives the three-step reset flow: a mailed 6-digit
// code, code verification minting a short-lived reset session, and the final
// password change against that session.
type PasswordResetService interface {
	// RequestReset is enumeration-safe: unknown emails are a silent no-op.
	RequestReset(ctx context.Context, email string) error
	VerifyResetCode(ctx context.Context, email, code string) (*dto.ResetSessionResponseDTO, error)
	SetNewPassword(ctx context.Context, email, resetSessionID, newPassword string) error
}

type passwordResetService struct {
	userRepo    repository.UserRepository
	codeRepo    repository.VerificationCodeRepository
	emailSender EmailSender

	now func() time.Time
}

func NewPasswordResetService(
	userRepo repository.UserRepository,
	codeRepo repository.VerificationCodeRepository,
	emailSender EmailSender,
) PasswordResetService {
	return &passwordResetService{
		userRepo:    userRepo,
		codeRepo:    codeRepo,
		emailSender: emailSender,
		now:         time.Now,
	}
}

func (s *passwordResetService) RequestReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("looking up user: %w", err)
	}

	now := s.now().UTC()
	if err := s.codeRepo.DeleteActive(ctx, user.ID, model.PurposePasswordReset, now); err != nil {
		return fmt.Errorf("clearing stale reset codes: %w", err)
	}

	code := generateSixDigitCode()
	rec := &model.UserVerificationCode{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Purpose:   model.PurposePasswordReset,
		ExpiresAt: now.Add(resetCodeTTL),
	}
	rec.CodeHash = hashCode(code, rec.ID)
	if err := s.codeRepo.Create(ctx, rec); err != nil {
		return fmt.Errorf("storing reset code: %w", err)
	}

	body := fmt.Sprintf("Your password reset code: %s\nIt is valid for %d minutes.", code, int(resetCodeTTL.Minutes()))
	if err := s.emailSender.Send(email, "Guessnica — Password Reset", body); err != nil {
		log.Warn().Err(err).Str("userID", user.ID).Msg("RequestReset: failed to send reset code email")
	}

	return nil
}

func (s *passwordResetService) VerifyResetCode(ctx context.Context, email, code string) (*dto.ResetSessionResponseDTO, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCode
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	now := s.now().UTC()
	candidate, err := s.codeRepo.FindLatestActive(ctx, user.ID, model.PurposePasswordReset, now)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCode
		}
		return nil, fmt.Errorf("looking up reset code: %w", err)
	}

	if candidate.Attempts >= maxCodeAttempts {
		return nil, ErrCodeLocked
	}

	candidate.Attempts++
	if candidate.CodeHash != hashCode(code, candidate.ID) {
		if err := s.codeRepo.Save(ctx, candidate); err != nil {
			return nil, fmt.Errorf("recording failed attempt: %w", err)
		}
		return nil, ErrInvalidCode
	}

	sessionID := uuid.NewString()
	sessionExpires := now.Add(resetSessionTTL)
	candidate.UsedAt = &now
	candidate.ResetSessionID = &sessionID
	candidate.ResetSessionExpiresAt = &sessionExpires
	if err := s.codeRepo.Save(ctx, candidate); err != nil {
		return nil, fmt.Errorf("minting reset session: %w", err)
	}

	return &dto.ResetSessionResponseDTO{
		ResetSessionID: sessionID,
		ExpiresAt:      sessionExpires,
	}, nil
}

func (s *passwordResetService) SetNewPassword(ctx context.Context, email, resetSessionID, newPassword string) error {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidSession
		}
		return fmt.Errorf("looking up user: %w", err)
	}

	now := s.now().UTC()
	record, err := s.codeRepo.FindByResetSession(ctx, user.ID, resetSessionID, now)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidSession
		}
		return fmt.Errorf("looking up reset session: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user.PasswordHash = string(hash)
	// Rotating the stamp invalidates every token issued before the reset.
	user.SecurityStamp = uuid.NewString()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("updating password: %w", err)
	}

	record.ResetSessionExpiresAt = &now
	if err := s.codeRepo.Save(ctx, record); err != nil {
		return fmt.Errorf("expiring reset session: %w", err)
	}

	log.Info().Str("userID", user.ID).Msg("Password reset completed")
	return nil
}
