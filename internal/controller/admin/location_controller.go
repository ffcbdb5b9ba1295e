package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guessnica/guessnica-backend/internal/dto"
	"github.com/guessnica/guessnica-backend/internal/service"
	"github.com/rs/zerolog/log"
)

type LocationController struct {
	locationService service.LocationService
}

func NewLocationController(locationService service.LocationService) *LocationController {
	return &LocationController{locationService: locationService}
}

// GetAllLocations godoc
// @Summary (Admin) List all locations
// @Tags Admin - Locations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.LocationResponseDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/locations [get]
func (c *LocationController) GetAllLocations(ctx *gin.Context) {
	locations, err := c.locationService.GetAll(ctx.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Admin GetAllLocations: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve locations"})
		return
	}
	ctx.JSON(http.StatusOK, locations)
}

// GetLocation godoc
// @Summary (Admin) Get a location
// @Tags Admin - Locations
// @Produce json
// @Security BearerAuth
// @Param location_id path int true "Location ID"
// @Success 200 {object} dto.LocationResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid location ID format"
// @Failure 404 {object} dto.ErrorResponse "Location not found"
// @Router /admin/locations/{location_id} [get]
func (c *LocationController) GetLocation(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "location_id")
	if !ok {
		return
	}

	location, err := c.locationService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		log.Warn().Err(err).Uint("locationID", id).Msg("Admin GetLocation: not found or service error")
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Location not found"})
		return
	}
	ctx.JSON(http.StatusOK, location)
}

// CreateLocation godoc
// @Summary (Admin) Create a location
// @Description Uploads the location photo to object storage, then persists the location pointing at the stored image.
// @Tags Admin - Locations
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param latitude formData number true "Target latitude"
// @Param longitude formData number true "Target longitude"
// @Param image formData file true "Location photo (jpg or png)"
// @Param short_description formData string false "Short description (max 200 chars)"
// @Success 201 {object} dto.LocationResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input or unsupported image"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/locations [post]
func (c *LocationController) CreateLocation(ctx *gin.Context) {
	var req dto.LocationCreateDTO
	if err := ctx.ShouldBind(&req); err != nil {
		log.Warn().Err(err).Msg("Admin CreateLocation: failed to bind form")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid form data", Details: []string{err.Error()}})
		return
	}

	location, err := c.locationService.Create(ctx.Request.Context(), req)
	if err != nil {
		log.Error().Err(err).Msg("Admin CreateLocation: service error")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Failed to create location", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, location)
}

// UpdateLocation godoc
// @Summary (Admin) Update a location
// @Tags Admin - Locations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param location_id path int true "Location ID"
// @Param location body dto.LocationUpdateDTO true "Location data"
// @Success 200 {object} dto.LocationResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Location not found"
// @Router /admin/locations/{location_id} [put]
func (c *LocationController) UpdateLocation(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "location_id")
	if !ok {
		return
	}

	var req dto.LocationUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	location, err := c.locationService.Update(ctx.Request.Context(), id, req)
	if err != nil {
		log.Warn().Err(err).Uint("locationID", id).Msg("Admin UpdateLocation: not found or service error")
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Location not found"})
		return
	}
	ctx.JSON(http.StatusOK, location)
}

// DeleteLocation godoc
// @Summary (Admin) Delete a location
// @Description Soft deletes the location. Riddles pointing at it keep working for history views.
// @Tags Admin - Locations
// @Produce json
// @Security BearerAuth
// @Param location_id path int true "Location ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid location ID format"
// @Failure 404 {object} dto.ErrorResponse "Location not found"
// @Router /admin/locations/{location_id} [delete]
func (c *LocationController) DeleteLocation(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "location_id")
	if !ok {
		return
	}

	if err := c.locationService.Delete(ctx.Request.Context(), id); err != nil {
		log.Warn().Err(err).Uint("locationID", id).Msg("Admin DeleteLocation: not found or service error")
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Location not found"})
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Location deleted"})
}
