package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"registrar/internal/app/models/dto"
	"registrar/internal/app/services"
	"registrar/internal/middleware"
)

// SemesterRegistrationController handles registration lifecycle endpoints
type SemesterRegistrationController struct {
	registrationService services.SemesterRegistrationService
}

// NewSemesterRegistrationController creates a new SemesterRegistrationController
func NewSemesterRegistrationController(registrationService services.SemesterRegistrationService) *SemesterRegistrationController {
	return &SemesterRegistrationController{
		registrationService: registrationService,
	}
}

// CreateSemesterRegistration handles opening a registration period
// @Summary Create a semester registration
// @Description Opens the registration period for an academic semester. Fails while another registration is upcoming or ongoing.
// @Tags semester-registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSemesterRegistrationRequest true "Registration period"
// @Success 201 {object} dto.APIResponse{data=models.SemesterRegistration} "Registration created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Academic semester not found"
// @Failure 409 {object} dto.ErrorResponse "Another registration is active or the semester is already registered"
// @Router /semester-registrations [post]
func (c *SemesterRegistrationController) CreateSemesterRegistration(ctx *gin.Context) {
	var req dto.CreateSemesterRegistrationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	registration, err := c.registrationService.CreateSemesterRegistration(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(registration, "Semester registration created successfully"))
}

// GetAllSemesterRegistrations lists registration periods
// @Summary List semester registrations
// @Tags semester-registrations
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.SemesterRegistration} "Registrations retrieved"
// @Router /semester-registrations [get]
func (c *SemesterRegistrationController) GetAllSemesterRegistrations(ctx *gin.Context) {
	registrations, err := c.registrationService.GetAllSemesterRegistrations(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(registrations, "Semester registrations retrieved successfully"))
}

// GetSemesterRegistrationByID retrieves one registration period
// @Summary Get a semester registration
// @Tags semester-registrations
// @Produce json
// @Param id path string true "Registration ID"
// @Success 200 {object} dto.APIResponse{data=models.SemesterRegistration} "Registration retrieved"
// @Failure 404 {object} dto.ErrorResponse "Registration not found"
// @Router /semester-registrations/{id} [get]
func (c *SemesterRegistrationController) GetSemesterRegistrationByID(ctx *gin.Context) {
	registration, err := c.registrationService.GetSemesterRegistrationByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(registration, "Semester registration retrieved successfully"))
}

// UpdateSemesterRegistration adjusts the window or credit bounds
// @Summary Update a semester registration
// @Description Adjusts the date window or credit bounds. Rejected once the registration has ended.
// @Tags semester-registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Registration ID"
// @Param request body dto.UpdateSemesterRegistrationRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.SemesterRegistration} "Registration updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Registration has ended"
// @Failure 404 {object} dto.ErrorResponse "Registration not found"
// @Router /semester-registrations/{id} [patch]
func (c *SemesterRegistrationController) UpdateSemesterRegistration(ctx *gin.Context) {
	var req dto.UpdateSemesterRegistrationRequest
	if err := bindStrictJSON(ctx, &req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid semester registration data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	registration, err := c.registrationService.UpdateSemesterRegistration(ctx, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(registration, "Semester registration updated successfully"))
}

// RecomputeStatuses runs the bulk lifecycle pass
// @Summary Recompute registration statuses
// @Description Reassigns every registration's status from its stored date window and the current time. Safe to rerun.
// @Tags semester-registrations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.SemesterRegistration} "Statuses recomputed"
// @Router /semester-registrations/recompute-statuses [post]
func (c *SemesterRegistrationController) RecomputeStatuses(ctx *gin.Context) {
	registrations, err := c.registrationService.RecomputeAllRegistrationStatuses(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(registrations, "Semester registration statuses recomputed successfully"))
}
