package repository

import (
	"context"

	"github.com/guessnica/guessnica-backend/internal/model"
	"gorm.io/gorm"
)

type RiddleRepository interface {
	Create(ctx context.Context, riddle *model.Riddle) error
	FindByID(ctx context.Context, id uint) (*model.Riddle, error)
	FindAll(ctx context.Context) ([]model.Riddle, error)
	// FindCandidates returns all riddles whose id is not in excludedIDs,
	// target locations preloaded. An empty exclusion list returns everything.
	FindCandidates(ctx context.Context, excludedIDs []uint) ([]model.Riddle, error)
	Update(ctx context.Context, riddle *model.Riddle) error
	Delete(ctx context.Context, id uint) error
}

type riddleRepository struct {
	db *gorm.DB
}

func NewRiddleRepository(db *gorm.DB) RiddleRepository {
	return &riddleRepository{db: db}
}

func (r *riddleRepository) Create(ctx context.Context, riddle *model.Riddle) error {
	return r.db.WithContext(ctx).Create(riddle).Error
}

func (r *riddleRepository) FindByID(ctx context.Context, id uint) (*model.Riddle, error) {
	var riddle model.Riddle
	if err := r.db.WithContext(ctx).Preload("Location").First(&riddle, id).Error; err != nil {
		return nil, err
	}
	return &riddle, nil
}

func (r *riddleRepository) FindAll(ctx context.Context) ([]model.Riddle, error) {
	var riddles []model.Riddle
	if err := r.db.WithContext(ctx).Preload("Location").Order("id ASC").Find(&riddles).Error; err != nil {
		return nil, err
	}
	return riddles, nil
}

func (r *riddleRepository) FindCandidates(ctx context.Context, excludedIDs []uint) ([]model.Riddle, error) {
	var riddles []model.Riddle
	query := r.db.WithContext(ctx).Preload("Location")
	if len(excludedIDs) > 0 {
		query = query.Where("id NOT IN ?", excludedIDs)
	}
	if err := query.Find(&riddles).Error; err != nil {
		return nil, err
	}
	return riddles, nil
}

func (r *riddleRepository) Update(ctx context.Context, riddle *model.Riddle) error {
	return r.db.WithContext(ctx).Save(riddle).Error
}

func (r *riddleRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Riddle{}, id).Error
}
