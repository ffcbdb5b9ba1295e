package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/guessnica/guessnica-backend/internal/dto"
	"github.com/guessnica/guessnica-backend/internal/model"
	"github.com/guessnica/guessnica-backend/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const emailConfirmTokenTTL = 48 * time.Hour

type AuthService interface {
	// Register creates an account and mails a confirmation link. The caller
	// gets the same response whether or not the email was already taken.
	Register(ctx context.Context, req dto.RegisterDTO) error
	Login(ctx context.Context, req dto.LoginDTO) (*dto.TokenResponseDTO, error)
	ConfirmEmail(ctx context.Context, userID, token string) error
	Me(ctx context.Context, userID string) (*dto.MeResponseDTO, error)
}

type authService struct {
	userRepo    repository.UserRepository
	codeRepo    repository.VerificationCodeRepository
	jwtService  JwtService
	emailSender EmailSender
	appBaseURL  string

	now func() time.Time
}

func NewAuthService(
	userRepo repository.UserRepository,
	codeRepo repository.VerificationCodeRepository,
	jwtService JwtService,
	emailSender EmailSender,
	appBaseURL string,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		codeRepo:    codeRepo,
		jwtService:  jwtService,
		emailSender: emailSender,
		appBaseURL:  appBaseURL,
		now:         time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Register(ctx context.Context, req dto.RegisterDTO) error {
	email := normalizeEmail(req.Email)

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("looking up user: %w", err)
	}

	if existing != nil {
		// Do not leak account existence; warn the owner instead.
		if mailErr := s.emailSender.Send(email, "Guessnica registration attempt",
			"Someone tried to register a Guessnica account using your email. "+
				"If this wasn't you, no action is required. Your account remains safe."); mailErr != nil {
			log.Warn().Err(mailErr).Msg("Register: failed to send registration-attempt notice")
		}
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user := &model.User{
		ID:            uuid.NewString(),
		Email:         email,
		PasswordHash:  string(hash),
		DisplayName:   req.DisplayName,
		Role:          model.RoleUser,
		SecurityStamp: uuid.NewString(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return fmt.Errorf("creating user: %w", err)
	}

	token, err := s.issueEmailConfirmToken(ctx, user.ID)
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/auth/confirm-email?user_id=%s&token=%s", s.appBaseURL, user.ID, token)
	if err := s.emailSender.Send(email, "Confirm your Guessnica account",
		"Welcome! Please confirm your email by clicking this link: "+link); err != nil {
		log.Warn().Err(err).Str("userID", user.ID).Msg("Register: failed to send confirmation email")
	}

	return nil
}

func (s *authService) issueEmailConfirmToken(ctx context.Context, userID string) (string, error) {
	now := s.now().UTC()
	if err := s.codeRepo.DeleteActive(ctx, userID, model.PurposeEmailConfirm, now); err != nil {
		return "", fmt.Errorf("clearing stale confirmation tokens: %w", err)
	}

	token := uuid.NewString()
	rec := &model.UserVerificationCode{
		ID:        uuid.NewString(),
		UserID:    userID,
		Purpose:   model.PurposeEmailConfirm,
		ExpiresAt: now.Add(emailConfirmTokenTTL),
	}
	rec.CodeHash = hashCode(token, rec.ID)
	if err := s.codeRepo.Create(ctx, rec); err != nil {
		return "", fmt.Errorf("storing confirmation token: %w", err)
	}
	return token, nil
}

func (s *authService) ConfirmEmail(ctx context.Context, userID, token string) error {
	now := s.now().UTC()

	rec, err := s.codeRepo.FindLatestActive(ctx, userID, model.PurposeEmailConfirm, now)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidCode
		}
		return fmt.Errorf("looking up confirmation token: %w", err)
	}
	if rec.CodeHash != hashCode(token, rec.ID) {
		return ErrInvalidCode
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("looking up user: %w", err)
	}

	rec.UsedAt = &now
	if err := s.codeRepo.Save(ctx, rec); err != nil {
		return fmt.Errorf("marking confirmation token used: %w", err)
	}

	user.EmailConfirmed = true
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("confirming email: %w", err)
	}

	log.Info().Str("userID", userID).Msg("Email confirmed")
	return nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginDTO) (*dto.TokenResponseDTO, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if !user.EmailConfirmed {
		return nil, ErrEmailNotConfirmed
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.jwtService.GenerateToken(user)
}

func (s *authService) Me(ctx context.Context, userID string) (*dto.MeResponseDTO, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	return &dto.MeResponseDTO{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        user.Role,
		AvatarURL:   user.AvatarURL,
	}, nil
}
