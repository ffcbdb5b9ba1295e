package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/guessnica/guessnica-backend/internal/dto"
	"github.com/guessnica/guessnica-backend/internal/repository"
	"github.com/guessnica/guessnica-backend/internal/storage"
	"github.com/rs/zerolog/log"
)

const maxAvatarSizeBytes = 2 << 20

// ErrInvalidImage is returned for uploads that are not an accepted image
// type or exceed the size limit.
var ErrInvalidImage = fmt.Errorf("invalid image upload")

// ErrNoAvatar is returned when the user has never uploaded an avatar.
var ErrNoAvatar = fmt.Errorf("no avatar set")

type UserService interface {
	GetStats(ctx context.Context, userID string) (*dto.UserStatsSummaryDTO, error)
	GetHistory(ctx context.Context, userID string) ([]dto.UserHistoryEntryDTO, error)
	UploadAvatar(ctx context.Context, userID string, file *multipart.FileHeader) (*dto.AvatarResponseDTO, error)
	GetAvatar(ctx context.Context, userID string) (*dto.AvatarResponseDTO, error)
}

type userService struct {
	userRepo       repository.UserRepository
	userRiddleRepo repository.UserRiddleRepository
	storage        storage.ObjectStorage
}

func NewUserService(
	userRepo repository.UserRepository,
	userRiddleRepo repository.UserRiddleRepository,
	objectStorage storage.ObjectStorage,
) UserService {
	return &userService{
		userRepo:       userRepo,
		userRiddleRepo: userRiddleRepo,
		storage:        objectStorage,
	}
}

func (s *userService) GetStats(ctx context.Context, userID string) (*dto.UserStatsSummaryDTO, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading user %s: %w", userID, err)
	}

	assignments, err := s.userRiddleRepo.FindAllByUser(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("GetStats: failed to load assignments")
		return nil, fmt.Errorf("loading assignments: %w", err)
	}

	stats := &dto.UserStatsSummaryDTO{
		Assigned:         len(assignments),
		AccountCreatedAt: user.CreatedAt,
	}

	currentStreak := 0
	for _, ur := range assignments {
		if !ur.Answered() {
			continue
		}
		stats.Answered++
		if ur.DistanceMeters != nil {
			stats.TotalDistanceMeters += *ur.DistanceMeters
		}
		if ur.IsCorrect != nil && *ur.IsCorrect {
			// Only correct answers count towards the score totals.
			if ur.Points != nil {
				stats.TotalScore += *ur.Points
			}
			stats.Correct++
			currentStreak++
			if currentStreak > stats.BestStreak {
				stats.BestStreak = currentStreak
			}
		} else {
			stats.Incorrect++
			currentStreak = 0
		}
	}
	stats.CurrentStreak = currentStreak

	if stats.Correct > 0 {
		stats.AvgScore = float64(stats.TotalScore) / float64(stats.Correct)
	}
	if stats.Answered > 0 {
		stats.AvgDistanceMeters = stats.TotalDistanceMeters / float64(stats.Answered)
	}

	return stats, nil
}

func (s *userService) GetHistory(ctx context.Context, userID string) ([]dto.UserHistoryEntryDTO, error) {
	answered, err := s.userRiddleRepo.FindAnsweredByUser(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("GetHistory: failed to load answers")
		return nil, fmt.Errorf("loading answer history: %w", err)
	}

	history := make([]dto.UserHistoryEntryDTO, 0, len(answered))
	for _, ur := range answered {
		entry := dto.UserHistoryEntryDTO{
			ID:             ur.ID,
			RiddleID:       ur.RiddleID,
			AnsweredAt:     *ur.AnsweredAt,
			DistanceMeters: ur.DistanceMeters,
			TimeSeconds:    ur.TimeSeconds,
		}
		if ur.IsCorrect != nil {
			entry.IsCorrect = *ur.IsCorrect
		}
		if ur.Points != nil {
			entry.Points = *ur.Points
		}
		entry.LocationName = ur.Riddle.Location.ShortDescription
		history = append(history, entry)
	}

	return history, nil
}

func (s *userService) UploadAvatar(ctx context.Context, userID string, file *multipart.FileHeader) (*dto.AvatarResponseDTO, error) {
	if file.Size > maxAvatarSizeBytes {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", ErrInvalidImage, maxAvatarSizeBytes)
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png":
	default:
		return nil, fmt.Errorf("%w: unsupported extension %q", ErrInvalidImage, ext)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading user %s: %w", userID, err)
	}

	key := "avatars/" + uuid.NewString() + ext
	url, err := s.storage.Upload(ctx, file, key)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("UploadAvatar: upload failed")
		return nil, fmt.Errorf("uploading avatar: %w", err)
	}

	user.AvatarURL = &url
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("saving avatar url: %w", err)
	}

	return &dto.AvatarResponseDTO{AvatarURL: url}, nil
}

func (s *userService) GetAvatar(ctx context.Context, userID string) (*dto.AvatarResponseDTO, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading user %s: %w", userID, err)
	}
	if user.AvatarURL == nil || *user.AvatarURL == "" {
		return nil, ErrNoAvatar
	}
	return &dto.AvatarResponseDTO{AvatarURL: *user.AvatarURL}, nil
}
