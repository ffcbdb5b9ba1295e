package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/guessnica/guessnica-backend/internal/dto"
	"github.com/guessnica/guessnica-backend/internal/model"
	"github.com/guessnica/guessnica-backend/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var ErrLocationNotFound = errors.New("location not found")

// RiddleService is the admin-facing CRUD surface for riddle content.
type RiddleService interface {
	GetAll(ctx context.Context) ([]dto.RiddleResponseDTO, error)
	GetByID(ctx context.Context, id uint) (*dto.RiddleResponseDTO, error)
	Create(ctx context.Context, req dto.RiddleCreateDTO) (*dto.RiddleResponseDTO, error)
	Update(ctx context.Context, id uint, req dto.RiddleUpdateDTO) (*dto.RiddleResponseDTO, error)
	Delete(ctx context.Context, id uint) error
}

type riddleService struct {
	riddleRepo   repository.RiddleRepository
	locationRepo repository.LocationRepository
}

func NewRiddleService(riddleRepo repository.RiddleRepository, locationRepo repository.LocationRepository) RiddleService {
	return &riddleService{riddleRepo: riddleRepo, locationRepo: locationRepo}
}

func riddleToResponse(r *model.Riddle) *dto.RiddleResponseDTO {
	return &dto.RiddleResponseDTO{
		ID:                r.ID,
		Description:       r.Description,
		Difficulty:        r.Difficulty,
		LocationID:        r.LocationID,
		Latitude:          r.Location.Latitude,
		Longitude:         r.Location.Longitude,
		ImageURL:          r.Location.ImageURL,
		ShortDescription:  r.Location.ShortDescription,
		TimeLimitSeconds:  r.TimeLimitSeconds,
		MaxDistanceMeters: r.MaxDistanceMeters,
	}
}

func (s *riddleService) GetAll(ctx context.Context) ([]dto.RiddleResponseDTO, error) {
	riddles, err := s.riddleRepo.FindAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list riddles")
		return nil, fmt.Errorf("listing riddles: %w", err)
	}

	dtos := make([]dto.RiddleResponseDTO, 0, len(riddles))
	for i := range riddles {
		dtos = append(dtos, *riddleToResponse(&riddles[i]))
	}
	return dtos, nil
}

func (s *riddleService) GetByID(ctx context.Context, id uint) (*dto.RiddleResponseDTO, error) {
	riddle, err := s.riddleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("riddle not found with ID %d: %w", id, err)
	}
	return riddleToResponse(riddle), nil
}

func (s *riddleService) Create(ctx context.Context, req dto.RiddleCreateDTO) (*dto.RiddleResponseDTO, error) {
	if _, err := s.locationRepo.FindByID(ctx, req.LocationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, fmt.Errorf("checking location: %w", err)
	}

	riddle := &model.Riddle{
		Description:       req.Description,
		Difficulty:        req.Difficulty,
		TimeLimitSeconds:  req.TimeLimitSeconds,
		MaxDistanceMeters: req.MaxDistanceMeters,
		LocationID:        req.LocationID,
	}
	if err := s.riddleRepo.Create(ctx, riddle); err != nil {
		log.Error().Err(err).Msg("Failed to create riddle")
		return nil, fmt.Errorf("creating riddle: %w", err)
	}

	return s.GetByID(ctx, riddle.ID)
}

func (s *riddleService) Update(ctx context.Context, id uint, req dto.RiddleUpdateDTO) (*dto.RiddleResponseDTO, error) {
	riddle, err := s.riddleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("riddle not found with ID %d: %w", id, err)
	}

	if _, err := s.locationRepo.FindByID(ctx, req.LocationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, fmt.Errorf("checking location: %w", err)
	}

	riddle.Description = req.Description
	riddle.Difficulty = req.Difficulty
	riddle.TimeLimitSeconds = req.TimeLimitSeconds
	riddle.MaxDistanceMeters = req.MaxDistanceMeters
	riddle.LocationID = req.LocationID
	if err := s.riddleRepo.Update(ctx, riddle); err != nil {
		log.Error().Err(err).Uint("riddleID", id).Msg("Failed to update riddle")
		return nil, fmt.Errorf("updating riddle: %w", err)
	}

	return s.GetByID(ctx, id)
}

func (s *riddleService) Delete(ctx context.Context, id uint) error {
	if _, err := s.riddleRepo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("riddle not found with ID %d: %w", id, err)
	}
	return s.riddleRepo.Delete(ctx, id)
}
