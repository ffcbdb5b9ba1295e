package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guessnica/guessnica-backend/internal/dto"
	"github.com/guessnica/guessnica-backend/internal/service"
	"github.com/rs/zerolog/log"
)

type PasswordResetController struct {
	resetService service.PasswordResetService
}

func NewPasswordResetController(resetService service.PasswordResetService) *PasswordResetController {
	return &PasswordResetController{resetService: resetService}
}

// RequestReset godoc
// @Summary Request a password reset code
// @Description Emails a six digit code to the address if an account exists. Always returns 202 so addresses cannot be probed.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RequestPasswordResetDTO true "Account email"
// @Success 202 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Router /auth/password-reset/request [post]
func (c *PasswordResetController) RequestReset(ctx *gin.Context) {
	var req dto.RequestPasswordResetDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	if err := c.resetService.RequestReset(ctx.Request.Context(), req.Email); err != nil {
		log.Error().Err(err).Msg("RequestReset: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to process reset request"})
		return
	}
	ctx.JSON(http.StatusAccepted, dto.MessageResponse{Message: "If the address exists, a reset code has been sent."})
}

// VerifyResetCode godoc
// @Summary Verify a password reset code
// @Description Exchanges a valid code for a short lived reset session. Five wrong attempts invalidate the code.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.VerifyResetCodeDTO true "Email and six digit code"
// @Success 200 {object} dto.ResetSessionResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid or expired code"
// @Failure 429 {object} dto.ErrorResponse "Too many wrong attempts"
// @Router /auth/password-reset/verify [post]
func (c *PasswordResetController) VerifyResetCode(ctx *gin.Context) {
	var req dto.VerifyResetCodeDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	session, err := c.resetService.VerifyResetCode(ctx.Request.Context(), req.Email, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCodeLocked):
			ctx.JSON(http.StatusTooManyRequests, dto.ErrorResponse{Message: "Too many attempts. Request a new code."})
		case errors.Is(err, service.ErrInvalidCode):
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid or expired code"})
		default:
			log.Error().Err(err).Msg("VerifyResetCode: service error")
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to verify code"})
		}
		return
	}
	ctx.JSON(http.StatusOK, session)
}

// SetNewPassword godoc
// @Summary Set a new password
// @Description Completes the reset flow with a live reset session. All previously issued tokens stop working.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.SetNewPasswordDTO true "Email, reset session id and new password"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid session or input"
// @Router /auth/password-reset/complete [post]
func (c *PasswordResetController) SetNewPassword(ctx *gin.Context) {
	var req dto.SetNewPasswordDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	err := c.resetService.SetNewPassword(ctx.Request.Context(), req.Email, req.ResetSessionID, req.NewPassword)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSession) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid or expired reset session"})
			return
		}
		log.Error().Err(err).Msg("SetNewPassword: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to set new password"})
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Password updated. Log in with your new password."})
}
