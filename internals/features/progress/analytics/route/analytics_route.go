package routes

import (
	analyticsController "kursusku_backend/internals/features/progress/analytics/controller"
	"kursusku_backend/internals/constants"
	"kursusku_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func AnalyticsRoutes(router fiber.Router, db *gorm.DB) {
	controller := analyticsController.NewAnalyticsController(db)

	instructorOnly := auth.OnlyRolesSlice(
		constants.RoleErrorInstructor("analitik kursus"),
		constants.InstructorAndAbove,
	)

	router.Get("/courses/:courseId/analytics", instructorOnly, controller.GetCourseAnalytics)
}
