package routes

import (
	"github.com/gin-gonic/gin"

	"registrar/internal/app/controllers"
	"registrar/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	registrationController *controllers.SemesterRegistrationController,
	offeredCourseController *controllers.OfferedCourseController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public read routes ---
	v1.GET("/time-slots", offeredCourseController.GetTimeSlots)

	registrations := v1.Group("/semester-registrations")
	{
		registrations.GET("", registrationController.GetAllSemesterRegistrations)
		registrations.GET("/:id", registrationController.GetSemesterRegistrationByID)
	}

	offeredCourses := v1.Group("/offered-courses")
	{
		offeredCourses.GET("", offeredCourseController.GetAllOfferedCourses)
		offeredCourses.GET("/:id", offeredCourseController.GetOfferedCourseByID)
	}

	// --- Admin-only write routes ---
	protected := v1.Group("")
	protected.Use(authMiddleware.JWTAuth())
	protected.Use(authMiddleware.RoleRequired(middleware.RoleAdmin))
	{
		registrationsProtected := protected.Group("/semester-registrations")
		{
			registrationsProtected.POST("", registrationController.CreateSemesterRegistration)
			registrationsProtected.PATCH("/:id", registrationController.UpdateSemesterRegistration)
			registrationsProtected.POST("/recompute-statuses", registrationController.RecomputeStatuses)
		}

		offeredCoursesProtected := protected.Group("/offered-courses")
		{
			offeredCoursesProtected.POST("", offeredCourseController.CreateOfferedCourse)
			offeredCoursesProtected.PATCH("/:id", offeredCourseController.UpdateOfferedCourse)
		}
	}
}
