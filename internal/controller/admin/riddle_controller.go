package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/guessnica/guessnica-backend/internal/dto"
	"github.com/guessnica/guessnica-backend/internal/service"
	"github.com/rs/zerolog/log"
)

type RiddleController struct {
	riddleService service.RiddleService
}

func NewRiddleController(riddleService service.RiddleService) *RiddleController {
	return &RiddleController{riddleService: riddleService}
}

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}

// GetAllRiddles godoc
// @Summary (Admin) List all riddles
// @Description Full riddle list including target coordinates.
// @Tags Admin - Riddles
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.RiddleResponseDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/riddles [get]
func (c *RiddleController) GetAllRiddles(ctx *gin.Context) {
	riddles, err := c.riddleService.GetAll(ctx.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Admin GetAllRiddles: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve riddles"})
		return
	}
	ctx.JSON(http.StatusOK, riddles)
}

// GetRiddle godoc
// @Summary (Admin) Get a riddle
// @Tags Admin - Riddles
// @Produce json
// @Security BearerAuth
// @Param riddle_id path int true "Riddle ID"
// @Success 200 {object} dto.RiddleResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid riddle ID format"
// @Failure 404 {object} dto.ErrorResponse "Riddle not found"
// @Router /admin/riddles/{riddle_id} [get]
func (c *RiddleController) GetRiddle(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "riddle_id")
	if !ok {
		return
	}

	riddle, err := c.riddleService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		log.Warn().Err(err).Uint("riddleID", id).Msg("Admin GetRiddle: not found or service error")
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Riddle not found"})
		return
	}
	ctx.JSON(http.StatusOK, riddle)
}

// CreateRiddle godoc
// @Summary (Admin) Create a riddle
// @Description Creates a riddle for an existing location. Difficulty 1 to 3 weights the base score.
// @Tags Admin - Riddles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param riddle body dto.RiddleCreateDTO true "Riddle data"
// @Success 201 {object} dto.RiddleResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input or unknown location"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/riddles [post]
func (c *RiddleController) CreateRiddle(ctx *gin.Context) {
	var req dto.RiddleCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin CreateRiddle: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	riddle, err := c.riddleService.Create(ctx.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrLocationNotFound) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Location does not exist"})
			return
		}
		log.Error().Err(err).Msg("Admin CreateRiddle: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create riddle"})
		return
	}
	ctx.JSON(http.StatusCreated, riddle)
}

// UpdateRiddle godoc
// @Summary (Admin) Update a riddle
// @Tags Admin - Riddles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param riddle_id path int true "Riddle ID"
// @Param riddle body dto.RiddleUpdateDTO true "Riddle data"
// @Success 200 {object} dto.RiddleResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input or unknown location"
// @Failure 404 {object} dto.ErrorResponse "Riddle not found"
// @Router /admin/riddles/{riddle_id} [put]
func (c *RiddleController) UpdateRiddle(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "riddle_id")
	if !ok {
		return
	}

	var req dto.RiddleUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	riddle, err := c.riddleService.Update(ctx.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrLocationNotFound) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Location does not exist"})
			return
		}
		log.Warn().Err(err).Uint("riddleID", id).Msg("Admin UpdateRiddle: not found or service error")
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Riddle not found"})
		return
	}
	ctx.JSON(http.StatusOK, riddle)
}

// DeleteRiddle godoc
// @Summary (Admin) Delete a riddle
// @Description Soft deletes the riddle so existing assignments keep their history.
// @Tags Admin - Riddles
// @Produce json
// @Security BearerAuth
// @Param riddle_id path int true "Riddle ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid riddle ID format"
// @Failure 404 {object} dto.ErrorResponse "Riddle not found"
// @Router /admin/riddles/{riddle_id} [delete]
func (c *RiddleController) DeleteRiddle(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "riddle_id")
	if !ok {
		return
	}

	if err := c.riddleService.Delete(ctx.Request.Context(), id); err != nil {
		log.Warn().Err(err).Uint("riddleID", id).Msg("Admin DeleteRiddle: not found or service error")
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Riddle not found"})
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Riddle deleted"})
}
