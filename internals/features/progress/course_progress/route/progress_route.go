package routes

import (
	progressController "kursusku_backend/internals/features/progress/course_progress/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func CourseProgressRoutes(router fiber.Router, db *gorm.DB) {
	controller := progressController.NewCourseProgressController(db)
	progressRoutes := router.Group("/progress")

	progressRoutes.Get("/", controller.GetUserProgress)
	progressRoutes.Get("/courses/:courseId", controller.GetCourseProgress)
	progressRoutes.Post("/courses/:courseId/initialize", controller.InitializeProgress)
	progressRoutes.Put("/courses/:courseId/lectures/:lectureId", controller.UpdateLectureProgress)
}
