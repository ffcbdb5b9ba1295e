package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/guessnica/guessnica-backend/internal/dto"
	"github.com/guessnica/guessnica-backend/internal/middleware"
	"github.com/guessnica/guessnica-backend/internal/service"
	"github.com/rs/zerolog/log"
)

const (
	defaultLeaderboardDays  = 30
	defaultLeaderboardCount = 10
	maxLeaderboardDays      = 3650
	maxLeaderboardCount     = 200
)

type LeaderboardController struct {
	leaderboardService service.LeaderboardService
}

func NewLeaderboardController(leaderboardService service.LeaderboardService) *LeaderboardController {
	return &LeaderboardController{leaderboardService: leaderboardService}
}

func intQuery(ctx *gin.Context, name string, fallback, min, max int) int {
	raw := ctx.Query(name)
	if raw == "" {
		return fallback
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val < min {
		return fallback
	}
	if val > max {
		return max
	}
	return val
}

// GetLeaderboard godoc
// @Summary Get the leaderboard
// @Description Top players over a trailing window, ranked by the chosen category.
// @Tags Leaderboard
// @Produce json
// @Param days query int false "Trailing window in days (default 30)"
// @Param count query int false "Number of entries (default 10, max 200)"
// @Param category query string false "Ranking category: total_score, accuracy, games_played or average_time" Enums(total_score, accuracy, games_played, average_time)
// @Success 200 {array} dto.LeaderboardEntryDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /leaderboard [get]
func (c *LeaderboardController) GetLeaderboard(ctx *gin.Context) {
	days := intQuery(ctx, "days", defaultLeaderboardDays, 1, maxLeaderboardDays)
	count := intQuery(ctx, "count", defaultLeaderboardCount, 1, maxLeaderboardCount)
	category := ctx.DefaultQuery("category", dto.CategoryTotalScore)

	entries, err := c.leaderboardService.GetLeaderboard(ctx.Request.Context(), days, count, category)
	if err != nil {
		log.Error().Err(err).Msg("GetLeaderboard: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load leaderboard"})
		return
	}
	ctx.JSON(http.StatusOK, entries)
}

// GetUserRank godoc
// @Summary Get the caller's leaderboard rank
// @Description The caller's position in the chosen category, or a null rank if they have no answered riddles in the window.
// @Tags Leaderboard
// @Produce json
// @Security BearerAuth
// @Param days query int false "Trailing window in days (default 30)"
// @Param category query string false "Ranking category" Enums(total_score, accuracy, games_played, average_time)
// @Success 200 {object} dto.UserRankDTO
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /leaderboard/rank [get]
func (c *LeaderboardController) GetUserRank(ctx *gin.Context) {
	days := intQuery(ctx, "days", defaultLeaderboardDays, 1, maxLeaderboardDays)
	category := ctx.DefaultQuery("category", dto.CategoryTotalScore)

	rank, err := c.leaderboardService.GetUserRank(ctx.Request.Context(), middleware.UserID(ctx), days, category)
	if err != nil {
		log.Error().Err(err).Msg("GetUserRank: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load rank"})
		return
	}
	ctx.JSON(http.StatusOK, rank)
}
