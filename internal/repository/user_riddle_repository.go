package repository

import (
	"context"
	"time"

	"github.com/guessnica/guessnica-backend/internal/model"
	"gorm.io/gorm"
)

// AnswerUpdate carries every field written when an assignment transitions to
// its answered state. All fields land in one conditional UPDATE.
type AnswerUpdate struct {
	AnsweredAt         time.Time
	IsCorrect          bool
	DistanceMeters     float64
	TimeSeconds        int
	Points             int
	SubmittedLatitude  float64
	SubmittedLongitude float64
}

// LeaderboardAggregate is one user's totals over answered assignments in a
// trailing window.
type LeaderboardAggregate struct {
	UserID             string
	GamesPlayed        int
	CorrectAnswers     int
	TotalPoints        int
	AverageTimeSeconds *float64
}

type UserRiddleRepository interface {
	Create(ctx context.Context, ur *model.UserRiddle) error
	FindByID(ctx context.Context, id uint) (*model.UserRiddle, error)
	// FindInWindow returns the user's assignment with assigned_at inside
	// [start, end), riddle and location preloaded, or gorm.ErrRecordNotFound.
	FindInWindow(ctx context.Context, userID string, start, end time.Time) (*model.UserRiddle, error)
	// SolvedRiddleIDs lists distinct riddle ids the user has ever answered
	// correctly.
	SolvedRiddleIDs(ctx context.Context, userID string) ([]uint, error)
	// MarkAnswered performs the one-shot answer write, guarded by
	// answered_at IS NULL. Returns false when the assignment was already
	// answered.
	MarkAnswered(ctx context.Context, id uint, upd AnswerUpdate) (bool, error)
	FindAllByUser(ctx context.Context, userID string) ([]model.UserRiddle, error)
	FindAnsweredByUser(ctx context.Context, userID string) ([]model.UserRiddle, error)
	AggregateSince(ctx context.Context, since time.Time) ([]LeaderboardAggregate, error)
}

type userRiddleRepository struct {
	db *gorm.DB
}

func NewUserRiddleRepository(db *gorm.DB) UserRiddleRepository {
	return &userRiddleRepository{db: db}
}

func (r *userRiddleRepository) Create(ctx context.Context, ur *model.UserRiddle) error {
	return r.db.WithContext(ctx).Create(ur).Error
}

func (r *userRiddleRepository) FindByID(ctx context.Context, id uint) (*model.UserRiddle, error) {
	var ur model.UserRiddle
	err := r.db.WithContext(ctx).
		Preload("Riddle").
		Preload("Riddle.Location").
		First(&ur, id).Error
	if err != nil {
		return nil, err
	}
	return &ur, nil
}

func (r *userRiddleRepository) FindInWindow(ctx context.Context, userID string, start, end time.Time) (*model.UserRiddle, error) {
	var ur model.UserRiddle
	err := r.db.WithContext(ctx).
		Preload("Riddle").
		Preload("Riddle.Location").
		Where("user_id = ? AND assigned_at >= ? AND assigned_at < ?", userID, start, end).
		First(&ur).Error
	if err != nil {
		return nil, err
	}
	return &ur, nil
}

func (r *userRiddleRepository) SolvedRiddleIDs(ctx context.Context, userID string) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&model.UserRiddle{}).
		Distinct("riddle_id").
		Where("user_id = ? AND is_correct = ?", userID, true).
		Pluck("riddle_id", &ids).Error
	return ids, err
}

func (r *userRiddleRepository) MarkAnswered(ctx context.Context, id uint, upd AnswerUpdate) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.UserRiddle{}).
		Where("id = ? AND answered_at IS NULL", id).
		Updates(map[string]interface{}{
			"answered_at":         upd.AnsweredAt,
			"is_correct":          upd.IsCorrect,
			"distance_meters":     upd.DistanceMeters,
			"time_seconds":        upd.TimeSeconds,
			"points":              upd.Points,
			"submitted_latitude":  upd.SubmittedLatitude,
			"submitted_longitude": upd.SubmittedLongitude,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *userRiddleRepository) FindAllByUser(ctx context.Context, userID string) ([]model.UserRiddle, error) {
	var urs []model.UserRiddle
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("assigned_at ASC").
		Find(&urs).Error
	return urs, err
}

func (r *userRiddleRepository) FindAnsweredByUser(ctx context.Context, userID string) ([]model.UserRiddle, error) {
	var urs []model.UserRiddle
	err := r.db.WithContext(ctx).
		Preload("Riddle").
		Preload("Riddle.Location").
		Where("user_id = ? AND answered_at IS NOT NULL", userID).
		Order("answered_at DESC").
		Find(&urs).Error
	return urs, err
}

func (r *userRiddleRepository) AggregateSince(ctx context.Context, since time.Time) ([]LeaderboardAggregate, error) {
	var rows []LeaderboardAggregate
	err := r.db.WithContext(ctx).
		Model(&model.UserRiddle{}).
		Select("user_id, " +
			"COUNT(*) AS games_played, " +
			"COUNT(*) FILTER (WHERE is_correct) AS correct_answers, " +
			"COALESCE(SUM(points), 0) AS total_points, " +
			"AVG(time_seconds) AS average_time_seconds").
		Where("answered_at >= ?", since).
		Group("user_id").
		Scan(&rows).Error
	return rows, err
}
