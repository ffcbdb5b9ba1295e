package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guessnica/guessnica-backend/internal/dto"
	"github.com/guessnica/guessnica-backend/internal/middleware"
	"github.com/guessnica/guessnica-backend/internal/service"
	"github.com/rs/zerolog/log"
)

type UserController struct {
	userService service.UserService
}

func NewUserController(userService service.UserService) *UserController {
	return &UserController{userService: userService}
}

// GetStats godoc
// @Summary Get the caller's play statistics
// @Description Totals, averages and answer streaks across every assignment the caller ever received.
// @Tags User
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserStatsSummaryDTO
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /user/stats [get]
func (c *UserController) GetStats(ctx *gin.Context) {
	stats, err := c.userService.GetStats(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		log.Error().Err(err).Msg("GetStats: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load statistics"})
		return
	}
	ctx.JSON(http.StatusOK, stats)
}

// GetHistory godoc
// @Summary Get the caller's answer history
// @Description Answered assignments, newest first.
// @Tags User
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.UserHistoryEntryDTO
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /user/history [get]
func (c *UserController) GetHistory(ctx *gin.Context) {
	history, err := c.userService.GetHistory(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		log.Error().Err(err).Msg("GetHistory: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load history"})
		return
	}
	ctx.JSON(http.StatusOK, history)
}

// UploadAvatar godoc
// @Summary Upload a profile avatar
// @Description Accepts a jpg or png up to 2 MB and stores it in object storage.
// @Tags User
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param avatar formData file true "Avatar image (jpg or png, max 2 MB)"
// @Success 200 {object} dto.AvatarResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Missing, oversized or unsupported file"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /user/avatar [post]
func (c *UserController) UploadAvatar(ctx *gin.Context) {
	file, err := ctx.FormFile("avatar")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "avatar file is required"})
		return
	}

	resp, err := c.userService.UploadAvatar(ctx.Request.Context(), middleware.UserID(ctx), file)
	if err != nil {
		if errors.Is(err, service.ErrInvalidImage) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Msg("UploadAvatar: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to upload avatar"})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetAvatar godoc
// @Summary Get the caller's avatar URL
// @Tags User
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.AvatarResponseDTO
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} dto.ErrorResponse "No avatar uploaded"
// @Router /user/avatar [get]
func (c *UserController) GetAvatar(ctx *gin.Context) {
	resp, err := c.userService.GetAvatar(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		if errors.Is(err, service.ErrNoAvatar) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Avatar not found"})
			return
		}
		log.Error().Err(err).Msg("GetAvatar: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load avatar"})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
