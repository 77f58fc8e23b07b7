package routes

import (
	quizController "kursusku_backend/internals/features/quizzes/quizzes/controller"
	"kursusku_backend/internals/middlewares/auth"

	"kursusku_backend/internals/constants"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// QuizUserRoutes: endpoint quiz untuk siswa (read-only, tanpa kunci jawaban).
func QuizUserRoutes(router fiber.Router, db *gorm.DB) {
	controller := quizController.NewQuizController(db)

	router.Get("/quizzes/:id", controller.GetQuizByID)
	router.Get("/courses/:courseId/quizzes", controller.GetQuizzesByCourse)
}

// QuizInstructorRoutes: kelola quiz, hanya instruktur ke atas.
func QuizInstructorRoutes(router fiber.Router, db *gorm.DB) {
	controller := quizController.NewQuizController(db)

	instructorOnly := auth.OnlyRolesSlice(
		constants.RoleErrorInstructor("mengelola quiz"),
		constants.InstructorAndAbove,
	)

	router.Post("/quizzes", instructorOnly, controller.CreateQuiz)
	router.Put("/quizzes/:id", instructorOnly, controller.UpdateQuiz)
	router.Delete("/quizzes/:id", instructorOnly, controller.DeleteQuiz)
}
