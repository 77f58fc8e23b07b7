package routes

import (
	courseController "kursusku_backend/internals/features/courses/courses/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func CourseRoutes(router fiber.Router, db *gorm.DB) {
	controller := courseController.NewCourseController(db)

	// "mine" harus terdaftar sebelum ":courseId" agar tidak tertelan param.
	router.Get("/courses/mine", controller.GetMyCourses)
	router.Get("/courses/:courseId", controller.GetCourseWithLectures)
}
