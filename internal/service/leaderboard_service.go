package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/guessnica/guessnica-backend/internal/dto"
	"github.com/guessnica/guessnica-backend/internal/model"
	"github.com/guessnica/guessnica-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const leaderboardCacheTTL = time.Minute

type LeaderboardService interface {
	GetLeaderboard(ctx context.Context, days, count int, category string) ([]dto.LeaderboardEntryDTO, error)
	GetUserRank(ctx context.Context, userID string, days int, category string) (*dto.UserRankDTO, error)
}

type leaderboardService struct {
	userRiddleRepo repository.UserRiddleRepository
	userRepo       repository.UserRepository
	cache          *redis.Client

	now func() time.Time
}

func NewLeaderboardService(
	userRiddleRepo repository.UserRiddleRepository,
	userRepo repository.UserRepository,
	cache *redis.Client,
) LeaderboardService {
	return &leaderboardService{
		userRiddleRepo: userRiddleRepo,
		userRepo:       userRepo,
		cache:          cache,
		now:            time.Now,
	}
}

// rankedEntry is an aggregate row enriched with derived accuracy.
type rankedEntry struct {
	repository.LeaderboardAggregate
	Accuracy *float64
}

func buildRanking(rows []repository.LeaderboardAggregate, category string) []rankedEntry {
	entries := make([]rankedEntry, 0, len(rows))
	for _, row := range rows {
		e := rankedEntry{LeaderboardAggregate: row}
		if row.GamesPlayed > 0 {
			acc := float64(row.CorrectAnswers) / float64(row.GamesPlayed)
			e.Accuracy = &acc
		}
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		switch category {
		case dto.CategoryAccuracy:
			av, bv := -1.0, -1.0
			if a.Accuracy != nil {
				av = *a.Accuracy
			}
			if b.Accuracy != nil {
				bv = *b.Accuracy
			}
			if av != bv {
				return av > bv
			}
			return a.CorrectAnswers > b.CorrectAnswers
		case dto.CategoryGamesPlayed:
			return a.GamesPlayed > b.GamesPlayed
		case dto.CategoryAverageTime:
			// Users with no recorded time sort last.
			if a.AverageTimeSeconds == nil {
				return false
			}
			if b.AverageTimeSeconds == nil {
				return true
			}
			return *a.AverageTimeSeconds < *b.AverageTimeSeconds
		default: // dto.CategoryTotalScore
			return a.TotalPoints > b.TotalPoints
		}
	})

	return entries
}

func normalizeCategory(category string) string {
	switch category {
	case dto.CategoryAccuracy, dto.CategoryGamesPlayed, dto.CategoryAverageTime:
		return category
	default:
		return dto.CategoryTotalScore
	}
}

func (s *leaderboardService) GetLeaderboard(ctx context.Context, days, count int, category string) ([]dto.LeaderboardEntryDTO, error) {
	category = normalizeCategory(category)

	cacheKey := fmt.Sprintf("leaderboard:%d:%d:%s", days, count, category)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var result []dto.LeaderboardEntryDTO
			if err := json.Unmarshal([]byte(cached), &result); err == nil {
				return result, nil
			}
		}
	}

	since := s.now().UTC().AddDate(0, 0, -days)
	rows, err := s.userRiddleRepo.AggregateSince(ctx, since)
	if err != nil {
		log.Error().Err(err).Msg("GetLeaderboard: aggregation failed")
		return nil, fmt.Errorf("aggregating leaderboard: %w", err)
	}

	ranking := buildRanking(rows, category)
	if len(ranking) > count {
		ranking = ranking[:count]
	}

	userIDs := make([]string, 0, len(ranking))
	for _, e := range ranking {
		userIDs = append(userIDs, e.UserID)
	}
	users, err := s.userRepo.FindByIDs(ctx, userIDs)
	if err != nil {
		log.Error().Err(err).Msg("GetLeaderboard: failed to load user profiles")
		return nil, fmt.Errorf("loading leaderboard users: %w", err)
	}
	userByID := make(map[string]model.User, len(users))
	for _, u := range users {
		userByID[u.ID] = u
	}

	result := make([]dto.LeaderboardEntryDTO, 0, len(ranking))
	for i, e := range ranking {
		entry := dto.LeaderboardEntryDTO{
			Rank:               i + 1,
			UserID:             e.UserID,
			DisplayName:        "Unknown",
			TotalPoints:        e.TotalPoints,
			CorrectAnswers:     e.CorrectAnswers,
			GamesPlayed:        e.GamesPlayed,
			AverageTimeSeconds: e.AverageTimeSeconds,
			Accuracy:           e.Accuracy,
		}
		if u, ok := userByID[e.UserID]; ok {
			entry.DisplayName = u.DisplayName
			entry.AvatarURL = u.AvatarURL
		}
		result = append(result, entry)
	}

	if s.cache != nil {
		if payload, err := json.Marshal(result); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, leaderboardCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("GetLeaderboard: cache write failed")
			}
		}
	}

	return result, nil
}

func (s *leaderboardService) GetUserRank(ctx context.Context, userID string, days int, category string) (*dto.UserRankDTO, error) {
	category = normalizeCategory(category)

	since := s.now().UTC().AddDate(0, 0, -days)
	rows, err := s.userRiddleRepo.AggregateSince(ctx, since)
	if err != nil {
		log.Error().Err(err).Msg("GetUserRank: aggregation failed")
		return nil, fmt.Errorf("aggregating leaderboard: %w", err)
	}

	ranking := buildRanking(rows, category)

	result := &dto.UserRankDTO{
		TotalUsers: len(ranking),
		Days:       days,
		Category:   category,
	}
	for i, e := range ranking {
		if e.UserID != userID {
			continue
		}
		rank := i + 1
		result.Rank = &rank
		result.TotalPoints = e.TotalPoints
		result.CorrectAnswers = e.CorrectAnswers
		result.GamesPlayed = e.GamesPlayed
		result.AverageTimeSeconds = e.AverageTimeSeconds
		result.Accuracy = e.Accuracy
		break
	}

	return result, nil
}
