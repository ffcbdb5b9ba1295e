package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/guessnica/guessnica-backend/internal/dto"
	"github.com/guessnica/guessnica-backend/internal/model"
	"github.com/guessnica/guessnica-backend/internal/repository"
	"github.com/guessnica/guessnica-backend/internal/storage"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

type LocationService interface {
	GetAll(ctx context.Context) ([]dto.LocationResponseDTO, error)
	GetByID(ctx context.Context, id uint) (*dto.LocationResponseDTO, error)
	// Create uploads the location photo to object storage and persists the
	// row pointing at the resulting URL.
	Create(ctx context.Context, req dto.LocationCreateDTO) (*dto.LocationResponseDTO, error)
	Update(ctx context.Context, id uint, req dto.LocationUpdateDTO) (*dto.LocationResponseDTO, error)
	Delete(ctx context.Context, id uint) error
}

type locationService struct {
	locationRepo repository.LocationRepository
	store        storage.ObjectStorage
}

func NewLocationService(locationRepo repository.LocationRepository, store storage.ObjectStorage) LocationService {
	return &locationService{locationRepo: locationRepo, store: store}
}

func locationToResponse(l *model.Location) *dto.LocationResponseDTO {
	var resp dto.LocationResponseDTO
	copier.Copy(&resp, l)
	return &resp
}

func (s *locationService) GetAll(ctx context.Context) ([]dto.LocationResponseDTO, error) {
	locations, err := s.locationRepo.FindAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list locations")
		return nil, fmt.Errorf("listing locations: %w", err)
	}

	dtos := make([]dto.LocationResponseDTO, 0, len(locations))
	for i := range locations {
		dtos = append(dtos, *locationToResponse(&locations[i]))
	}
	return dtos, nil
}

func (s *locationService) GetByID(ctx context.Context, id uint) (*dto.LocationResponseDTO, error) {
	location, err := s.locationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("location not found with ID %d: %w", id, err)
	}
	return locationToResponse(location), nil
}

func (s *locationService) Create(ctx context.Context, req dto.LocationCreateDTO) (*dto.LocationResponseDTO, error) {
	ext := strings.ToLower(filepath.Ext(req.Image.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return nil, fmt.Errorf("invalid image type %q", ext)
	}

	key := fmt.Sprintf("locations/%s%s", uuid.NewString(), ext)
	imageURL, err := s.store.Upload(ctx, req.Image, key)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upload location image")
		return nil, fmt.Errorf("uploading location image: %w", err)
	}

	location := &model.Location{
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
		ImageURL:         imageURL,
		ShortDescription: req.ShortDescription,
	}
	if err := s.locationRepo.Create(ctx, location); err != nil {
		log.Error().Err(err).Msg("Failed to create location")
		return nil, fmt.Errorf("creating location: %w", err)
	}

	return locationToResponse(location), nil
}

func (s *locationService) Update(ctx context.Context, id uint, req dto.LocationUpdateDTO) (*dto.LocationResponseDTO, error) {
	location, err := s.locationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("location not found with ID %d: %w", id, err)
	}

	location.Latitude = req.Latitude
	location.Longitude = req.Longitude
	location.ImageURL = req.ImageURL
	location.ShortDescription = req.ShortDescription
	if err := s.locationRepo.Update(ctx, location); err != nil {
		log.Error().Err(err).Uint("locationID", id).Msg("Failed to update location")
		return nil, fmt.Errorf("updating location: %w", err)
	}

	return locationToResponse(location), nil
}

func (s *locationService) Delete(ctx context.Context, id uint) error {
	if _, err := s.locationRepo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("location not found with ID %d: %w", id, err)
	}
	return s.locationRepo.Delete(ctx, id)
}
