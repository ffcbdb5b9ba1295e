package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/guessnica/guessnica-backend/internal/dto"
	"github.com/guessnica/guessnica-backend/internal/model"
	"github.com/redis/go-redis/v9"
)

func newLeaderboardFixture(t *testing.T, cache *redis.Client) (*leaderboardService, *memUserRepo, *memUserRiddleRepo) {
	t.Helper()
	users := newMemUserRepo()
	userRiddles := newMemUserRiddleRepo(nil)
	svc := NewLeaderboardService(userRiddles, users, cache).(*leaderboardService)
	svc.now = func() time.Time { return time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC) }

	for _, u := range []struct{ id, name string }{
		{"u1", "Anna"}, {"u2", "Jan"}, {"u3", "Maria"},
	} {
		err := users.Create(context.Background(), &model.User{
			ID: u.id, Email: u.id + "@example.com", DisplayName: u.name, Role: model.RoleUser,
		})
		if err != nil {
			t.Fatalf("seeding user %s: %v", u.id, err)
		}
	}

	// u1: 2 games, 2 correct, 3000 pts, fast.
	addAnswer(t, userRiddles, "u1", 10, true, 1500, 30, 50)
	addAnswer(t, userRiddles, "u1", 11, true, 1500, 40, 60)
	// u2: 3 games, 1 correct, 2500 pts, slow.
	addAnswer(t, userRiddles, "u2", 10, true, 1800, 100, 40)
	addAnswer(t, userRiddles, "u2", 11, false, 400, 110, 700)
	addAnswer(t, userRiddles, "u2", 12, false, 300, 115, 800)
	// u3: 1 game, 1 correct, 2000 pts, fastest.
	addAnswer(t, userRiddles, "u3", 10, true, 2000, 20, 10)

	return svc, users, userRiddles
}

func rankedIDs(entries []dto.LeaderboardEntryDTO) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.UserID
	}
	return ids
}

func TestGetLeaderboardCategories(t *testing.T) {
	svc, _, _ := newLeaderboardFixture(t, nil)
	ctx := context.Background()

	cases := []struct {
		category string
		want     []string
	}{
		{dto.CategoryTotalScore, []string{"u1", "u2", "u3"}},
		{dto.CategoryGamesPlayed, []string{"u2", "u1", "u3"}},
		{dto.CategoryAverageTime, []string{"u3", "u1", "u2"}},
		{dto.CategoryAccuracy, []string{"u1", "u3", "u2"}},
	}

	for _, tc := range cases {
		t.Run(tc.category, func(t *testing.T) {
			entries, err := svc.GetLeaderboard(ctx, 30, 10, tc.category)
			if err != nil {
				t.Fatalf("get leaderboard: %v", err)
			}
			got := rankedIDs(entries)
			if len(got) != len(tc.want) {
				t.Fatalf("got %d entries, want %d", len(got), len(tc.want))
			}
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Errorf("rank %d: got %s, want %s (full order %v)", i+1, got[i], tc.want[i], got)
				}
			}
			for i, e := range entries {
				if e.Rank != i+1 {
					t.Errorf("entry %d carries rank %d", i, e.Rank)
				}
			}
		})
	}
}

func TestGetLeaderboardAccuracyTiebreak(t *testing.T) {
	svc, users, userRiddles := newLeaderboardFixture(t, nil)
	ctx := context.Background()

	// u4 matches u1's 100% accuracy but has more correct answers.
	if err := users.Create(ctx, &model.User{ID: "u4", Email: "u4@example.com", DisplayName: "Piotr", Role: model.RoleUser}); err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	addAnswer(t, userRiddles, "u4", 10, true, 1000, 50, 30)
	addAnswer(t, userRiddles, "u4", 11, true, 1000, 50, 30)
	addAnswer(t, userRiddles, "u4", 12, true, 1000, 50, 30)

	entries, err := svc.GetLeaderboard(ctx, 30, 10, dto.CategoryAccuracy)
	if err != nil {
		t.Fatalf("get leaderboard: %v", err)
	}
	got := rankedIDs(entries)
	if got[0] != "u4" || got[1] != "u1" {
		t.Errorf("accuracy tiebreak order: got %v, want u4 before u1", got)
	}
}

func TestGetLeaderboardCountAndWindow(t *testing.T) {
	svc, _, userRiddles := newLeaderboardFixture(t, nil)
	ctx := context.Background()

	entries, err := svc.GetLeaderboard(ctx, 30, 2, dto.CategoryTotalScore)
	if err != nil {
		t.Fatalf("get leaderboard: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("count=2 returned %d entries", len(entries))
	}

	// An answer far outside the trailing window must not count.
	old := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	correct := true
	points := 99999
	seconds := 10
	distance := 5.0
	err = userRiddles.Create(ctx, &model.UserRiddle{
		UserID: "u3", RiddleID: 99, AssignedAt: old, GameDay: old,
		AnsweredAt: &old, IsCorrect: &correct, Points: &points, TimeSeconds: &seconds, DistanceMeters: &distance,
	})
	if err != nil {
		t.Fatalf("seeding old answer: %v", err)
	}

	entries, err = svc.GetLeaderboard(ctx, 30, 10, dto.CategoryTotalScore)
	if err != nil {
		t.Fatalf("get leaderboard: %v", err)
	}
	if entries[0].UserID == "u3" {
		t.Error("an answer from last year leaked into the 30 day window")
	}
}

func TestGetLeaderboardCaching(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	svc, _, userRiddles := newLeaderboardFixture(t, cache)
	ctx := context.Background()

	first, err := svc.GetLeaderboard(ctx, 30, 10, dto.CategoryTotalScore)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}

	// New data lands, but within the TTL the cached page wins.
	addAnswer(t, userRiddles, "u3", 13, true, 50000, 10, 5)
	second, err := svc.GetLeaderboard(ctx, 30, 10, dto.CategoryTotalScore)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if second[0].UserID != first[0].UserID {
		t.Error("expected the cached page inside the TTL")
	}

	mr.FastForward(leaderboardCacheTTL + time.Second)
	third, err := svc.GetLeaderboard(ctx, 30, 10, dto.CategoryTotalScore)
	if err != nil {
		t.Fatalf("third call: %v", err)
	}
	if third[0].UserID != "u3" {
		t.Errorf("expected fresh data after TTL, leader is %s", third[0].UserID)
	}
}

func TestGetLeaderboardCacheBypassOnRedisError(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	svc, _, _ := newLeaderboardFixture(t, cache)

	// A dead cache must degrade to straight aggregation, not fail.
	mr.Close()

	entries, err := svc.GetLeaderboard(context.Background(), 30, 10, dto.CategoryTotalScore)
	if err != nil {
		t.Fatalf("leaderboard must survive a dead cache: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("got %d entries, want 3", len(entries))
	}
}

func TestGetUserRank(t *testing.T) {
	svc, _, _ := newLeaderboardFixture(t, nil)
	ctx := context.Background()

	rank, err := svc.GetUserRank(ctx, "u2", 30, dto.CategoryTotalScore)
	if err != nil {
		t.Fatalf("get rank: %v", err)
	}
	if rank.Rank == nil || *rank.Rank != 2 {
		t.Errorf("u2 rank = %v, want 2", rank.Rank)
	}
	if rank.TotalUsers != 3 {
		t.Errorf("total users = %d, want 3", rank.TotalUsers)
	}
	if rank.TotalPoints != 2500 {
		t.Errorf("u2 points = %d, want 2500", rank.TotalPoints)
	}

	// A user with no answered riddles in the window has no rank.
	none, err := svc.GetUserRank(ctx, "ghost", 30, dto.CategoryTotalScore)
	if err != nil {
		t.Fatalf("get rank for absent user: %v", err)
	}
	if none.Rank != nil {
		t.Errorf("expected nil rank, got %d", *none.Rank)
	}
}
