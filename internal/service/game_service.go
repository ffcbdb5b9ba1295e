package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/guessnica/guessnica-backend/internal/model"
	"github.com/guessnica/guessnica-backend/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// GameService owns the daily-riddle lifecycle: assigning one riddle per user
// per game-day and scoring the single answer each assignment accepts.
type GameService interface {
	GetDailyRiddle(ctx context.Context, userID string) (*model.UserRiddle, error)
	SubmitDailyAnswer(ctx context.Context, userID string, latitude, longitude float64) (*model.UserRiddle, error)
}

type gameService struct {
	userRiddleRepo repository.UserRiddleRepository
	riddleRepo     repository.RiddleRepository

	// rolloverHourUTC shifts the game-day boundary; both operations use the
	// same value or they would disagree about which assignment is "today's".
	rolloverHourUTC int

	now     func() time.Time
	randInt func(n int) int
}

func NewGameService(
	userRiddleRepo repository.UserRiddleRepository,
	riddleRepo repository.RiddleRepository,
	rolloverHourUTC int,
) GameService {
	return &gameService{
		userRiddleRepo:  userRiddleRepo,
		riddleRepo:      riddleRepo,
		rolloverHourUTC: rolloverHourUTC,
		now:             time.Now,
		randInt:         rand.Intn,
	}
}

// gameDayWindow returns the half-open [start, end) window of the game-day
// containing now. When now precedes today's rollover, the window started
// yesterday.
func gameDayWindow(now time.Time, rolloverHourUTC int) (time.Time, time.Time) {
	now = now.UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), rolloverHourUTC, 0, 0, 0, time.UTC)
	if now.Before(start) {
		start = start.AddDate(0, 0, -1)
	}
	return start, start.AddDate(0, 0, 1)
}

func (s *gameService) GetDailyRiddle(ctx context.Context, userID string) (*model.UserRiddle, error) {
	now := s.now().UTC()
	dayStart, dayEnd := gameDayWindow(now, s.rolloverHourUTC)

	existing, err := s.userRiddleRepo.FindInWindow(ctx, userID, dayStart, dayEnd)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error().Err(err).Str("userID", userID).Msg("GetDailyRiddle: window lookup failed")
		return nil, fmt.Errorf("looking up daily assignment: %w", err)
	}

	solvedIDs, err := s.userRiddleRepo.SolvedRiddleIDs(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("userID", userID).Msg("GetDailyRiddle: failed to load solved riddle ids")
		return nil, fmt.Errorf("loading solved riddles: %w", err)
	}

	candidates, err := s.riddleRepo.FindCandidates(ctx, solvedIDs)
	if err != nil {
		log.Error().Err(err).Str("userID", userID).Msg("GetDailyRiddle: failed to load candidate riddles")
		return nil, fmt.Errorf("loading candidate riddles: %w", err)
	}
	if len(candidates) == 0 {
		return nil, ErrNoAvailableRiddles
	}

	picked := candidates[s.randInt(len(candidates))]

	ur := &model.UserRiddle{
		UserID:     userID,
		RiddleID:   picked.ID,
		AssignedAt: now,
		GameDay:    dayStart,
	}
	if err := s.userRiddleRepo.Create(ctx, ur); err != nil {
		// A concurrent request for the same uncreated window can win the
		// insert; the unique (user_id, game_day) index turns that race into a
		// duplicate-key error, and the winner's row is the authoritative one.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			log.Info().Str("userID", userID).Msg("GetDailyRiddle: lost assignment race, returning existing row")
			return s.userRiddleRepo.FindInWindow(ctx, userID, dayStart, dayEnd)
		}
		log.Error().Err(err).Str("userID", userID).Msg("GetDailyRiddle: failed to persist assignment")
		return nil, fmt.Errorf("creating daily assignment: %w", err)
	}

	return s.userRiddleRepo.FindByID(ctx, ur.ID)
}

func (s *gameService) SubmitDailyAnswer(ctx context.Context, userID string, latitude, longitude float64) (*model.UserRiddle, error) {
	now := s.now().UTC()
	dayStart, dayEnd := gameDayWindow(now, s.rolloverHourUTC)

	ur, err := s.userRiddleRepo.FindInWindow(ctx, userID, dayStart, dayEnd)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoAssignmentToday
		}
		log.Error().Err(err).Str("userID", userID).Msg("SubmitDailyAnswer: window lookup failed")
		return nil, fmt.Errorf("looking up daily assignment: %w", err)
	}
	if ur.Answered() {
		return nil, ErrAlreadyAnswered
	}

	target := ur.Riddle.Location
	distance := Haversine(latitude, longitude, target.Latitude, target.Longitude)

	elapsed := int(now.Sub(ur.AssignedAt).Seconds())
	if elapsed < 0 {
		// Clock skew must not let a "negative" duration satisfy the limit.
		elapsed = 0
	}

	isCorrect := distance <= ur.Riddle.MaxDistanceMeters && elapsed < ur.Riddle.TimeLimitSeconds
	points := CalculateScore(ur.Riddle.Difficulty, distance, ur.Riddle.MaxDistanceMeters, elapsed)

	upd := repository.AnswerUpdate{
		AnsweredAt:         now,
		IsCorrect:          isCorrect,
		DistanceMeters:     distance,
		TimeSeconds:        elapsed,
		Points:             points,
		SubmittedLatitude:  latitude,
		SubmittedLongitude: longitude,
	}
	ok, err := s.userRiddleRepo.MarkAnswered(ctx, ur.ID, upd)
	if err != nil {
		log.Error().Err(err).Uint("userRiddleID", ur.ID).Msg("SubmitDailyAnswer: answer write failed")
		return nil, fmt.Errorf("persisting answer: %w", err)
	}
	if !ok {
		// A concurrent submission got there first; the guard on answered_at
		// keeps this one from overwriting it.
		return nil, ErrAlreadyAnswered
	}

	ur.AnsweredAt = &upd.AnsweredAt
	ur.IsCorrect = &upd.IsCorrect
	ur.DistanceMeters = &upd.DistanceMeters
	ur.TimeSeconds = &upd.TimeSeconds
	ur.Points = &upd.Points
	ur.SubmittedLatitude = &upd.SubmittedLatitude
	ur.SubmittedLongitude = &upd.SubmittedLongitude

	return ur, nil
}
