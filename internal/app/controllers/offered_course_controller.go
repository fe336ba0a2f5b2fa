package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"registrar/internal/app/models/dto"
	"registrar/internal/app/services"
	"registrar/internal/middleware"
)

// OfferedCourseController handles section scheduling endpoints
type OfferedCourseController struct {
	offeredCourseService services.OfferedCourseService
}

// NewOfferedCourseController creates a new OfferedCourseController
func NewOfferedCourseController(offeredCourseService services.OfferedCourseService) *OfferedCourseController {
	return &OfferedCourseController{
		offeredCourseService: offeredCourseService,
	}
}

// CreateOfferedCourse handles proposing a new section
// @Summary Create an offered course
// @Description Schedules a new section into a catalog time slot after running the full validation pipeline.
// @Tags offered-courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateOfferedCourseRequest true "Section proposal"
// @Success 201 {object} dto.APIResponse{data=models.OfferedCourse} "Section created"
// @Failure 400 {object} dto.ErrorResponse "Invalid slot, capacity pair or day tag"
// @Failure 403 {object} dto.ErrorResponse "Registration is not upcoming"
// @Failure 404 {object} dto.ErrorResponse "Referenced entity not found"
// @Failure 409 {object} dto.ErrorResponse "Duplicate section or instructor already booked"
// @Failure 422 {object} dto.ErrorResponse "Duplicate day in the day set"
// @Router /offered-courses [post]
func (c *OfferedCourseController) CreateOfferedCourse(ctx *gin.Context) {
	var req dto.CreateOfferedCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	course, err := c.offeredCourseService.CreateOfferedCourse(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(course, "Offered course created successfully"))
}

// GetAllOfferedCourses lists sections
// @Summary List offered courses
// @Tags offered-courses
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.OfferedCourse} "Sections retrieved"
// @Router /offered-courses [get]
func (c *OfferedCourseController) GetAllOfferedCourses(ctx *gin.Context) {
	courses, err := c.offeredCourseService.GetAllOfferedCourses(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(courses, "Offered courses retrieved successfully"))
}

// GetOfferedCourseByID retrieves one section
// @Summary Get an offered course
// @Tags offered-courses
// @Produce json
// @Param id path string true "Offered course ID"
// @Success 200 {object} dto.APIResponse{data=models.OfferedCourse} "Section retrieved"
// @Failure 404 {object} dto.ErrorResponse "Section not found"
// @Router /offered-courses/{id} [get]
func (c *OfferedCourseController) GetOfferedCourseByID(ctx *gin.Context) {
	course, err := c.offeredCourseService.GetOfferedCourseByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(course, "Offered course retrieved successfully"))
}

// UpdateOfferedCourse applies a partial section update
// @Summary Update an offered course
// @Description Updates instructor, capacities, days or time slot. Other fields are immutable; unknown fields are rejected.
// @Tags offered-courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Offered course ID"
// @Param request body dto.UpdateOfferedCourseRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.OfferedCourse} "Section updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid or unknown field"
// @Failure 403 {object} dto.ErrorResponse "Registration ended, or capacity change while ongoing"
// @Failure 404 {object} dto.ErrorResponse "Section not found"
// @Failure 409 {object} dto.ErrorResponse "Instructor already booked"
// @Router /offered-courses/{id} [patch]
func (c *OfferedCourseController) UpdateOfferedCourse(ctx *gin.Context) {
	var req dto.UpdateOfferedCourseRequest
	if err := bindStrictJSON(ctx, &req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid offered course data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	course, err := c.offeredCourseService.UpdateOfferedCourse(ctx, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(course, "Offered course updated successfully"))
}

// GetTimeSlots lists the slot catalog
// @Summary List time slots
// @Description Lists the fixed catalog of weekly time slots sections are scheduled into.
// @Tags offered-courses
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.TimeSlotEntry} "Catalog retrieved"
// @Router /time-slots [get]
func (c *OfferedCourseController) GetTimeSlots(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(c.offeredCourseService.TimeSlots(), "Time slots retrieved successfully"))
}
