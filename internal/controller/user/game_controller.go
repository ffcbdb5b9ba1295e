package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guessnica/guessnica-backend/internal/dto"
	"github.com/guessnica/guessnica-backend/internal/middleware"
	"github.com/guessnica/guessnica-backend/internal/model"
	"github.com/guessnica/guessnica-backend/internal/service"
	"github.com/rs/zerolog/log"
)

type GameController struct {
	gameService service.GameService
}

func NewGameController(gameService service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

func dailyRiddleResponse(ur *model.UserRiddle) dto.DailyRiddleResponseDTO {
	return dto.DailyRiddleResponseDTO{
		UserRiddleID:      ur.ID,
		RiddleID:          ur.RiddleID,
		ImageURL:          ur.Riddle.Location.ImageURL,
		ShortDescription:  ur.Riddle.Location.ShortDescription,
		Description:       ur.Riddle.Description,
		Difficulty:        ur.Riddle.Difficulty,
		TimeLimitSeconds:  ur.Riddle.TimeLimitSeconds,
		MaxDistanceMeters: ur.Riddle.MaxDistanceMeters,
		IsAnswered:        ur.Answered(),
	}
}

// GetDailyRiddle godoc
// @Summary Get today's riddle
// @Description Returns the riddle assigned to the caller for the current game day, assigning one first if needed. The target coordinates are never included.
// @Tags Game
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DailyRiddleResponseDTO
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} dto.ErrorResponse "Every riddle already solved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /game/daily [get]
func (c *GameController) GetDailyRiddle(ctx *gin.Context) {
	userID := middleware.UserID(ctx)

	ur, err := c.gameService.GetDailyRiddle(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNoAvailableRiddles) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "You have solved every riddle. Check back when new ones are added."})
			return
		}
		log.Error().Err(err).Str("user_id", userID).Msg("GetDailyRiddle: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to get today's riddle"})
		return
	}
	ctx.JSON(http.StatusOK, dailyRiddleResponse(ur))
}

// SubmitAnswer godoc
// @Summary Submit a guess for today's riddle
// @Description Scores the submitted coordinates against the target. Each assignment accepts exactly one answer.
// @Tags Game
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param guess body dto.SubmitAnswerDTO true "Guessed latitude and longitude"
// @Success 200 {object} dto.AnswerResultDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid coordinates"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} dto.ErrorResponse "No riddle assigned for today"
// @Failure 409 {object} dto.ErrorResponse "Already answered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /game/answer [post]
func (c *GameController) SubmitAnswer(ctx *gin.Context) {
	userID := middleware.UserID(ctx)

	var req dto.SubmitAnswerDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid coordinates", Details: []string{err.Error()}})
		return
	}

	ur, err := c.gameService.SubmitDailyAnswer(ctx.Request.Context(), userID, req.Latitude, req.Longitude)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoAssignmentToday):
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "No riddle assigned for today. Fetch the daily riddle first."})
		case errors.Is(err, service.ErrAlreadyAnswered):
			ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: "Today's riddle has already been answered."})
		default:
			log.Error().Err(err).Str("user_id", userID).Msg("SubmitAnswer: service error")
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to submit answer"})
		}
		return
	}

	ctx.JSON(http.StatusOK, dto.AnswerResultDTO{
		Points:         *ur.Points,
		DistanceMeters: *ur.DistanceMeters,
		TimeSeconds:    *ur.TimeSeconds,
		IsCorrect:      *ur.IsCorrect,
	})
}
