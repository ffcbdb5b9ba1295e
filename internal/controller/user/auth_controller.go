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

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Register godoc
// @Summary Register a new account
// @Description Creates an account and sends a confirmation email. The response is identical whether or not the address was already registered.
// @Tags Auth
// @Accept json
// @Produce json
// @Param registration body dto.RegisterDTO true "Email, password and display name"
// @Success 202 {object} dto.MessageResponse "Confirmation email sent"
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Register: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	if err := c.authService.Register(ctx.Request.Context(), req); err != nil {
		log.Error().Err(err).Msg("Register: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to register"})
		return
	}
	ctx.JSON(http.StatusAccepted, dto.MessageResponse{Message: "Check your inbox to confirm your email address."})
}

// ConfirmEmail godoc
// @Summary Confirm an email address
// @Description Consumes the token from the confirmation link and activates the account.
// @Tags Auth
// @Produce json
// @Param user_id query string true "User ID from the confirmation link"
// @Param token query string true "Confirmation token from the link"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid token"
// @Router /auth/confirm-email [get]
func (c *AuthController) ConfirmEmail(ctx *gin.Context) {
	userID := ctx.Query("user_id")
	token := ctx.Query("token")
	if userID == "" || token == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "user_id and token query parameters are required"})
		return
	}

	if err := c.authService.ConfirmEmail(ctx.Request.Context(), userID, token); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("ConfirmEmail: confirmation rejected")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid or expired confirmation link"})
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Email confirmed. You can now log in."})
}

// Login godoc
// @Summary Log in
// @Description Exchanges email and password for a bearer token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginDTO true "Email and password"
// @Success 200 {object} dto.TokenResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Wrong credentials or unconfirmed email"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	token, err := c.authService.Login(ctx.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailNotConfirmed):
			ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Email address not confirmed"})
		case errors.Is(err, service.ErrInvalidCredentials):
			ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid email or password"})
		default:
			log.Error().Err(err).Msg("Login: service error")
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to log in"})
		}
		return
	}
	ctx.JSON(http.StatusOK, token)
}

// Logout godoc
// @Summary Log out
// @Description Tokens are stateless, so logging out is a client-side action. This endpoint only acknowledges it.
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out. Discard the token client-side."})
}

// Me godoc
// @Summary Get the authenticated user's profile
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.MeResponseDTO
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	me, err := c.authService.Me(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		log.Error().Err(err).Msg("Me: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load profile"})
		return
	}
	ctx.JSON(http.StatusOK, me)
}
