package routes

import (
	attemptController "kursusku_backend/internals/features/quizzes/attempts/controller"
	"kursusku_backend/internals/middlewares"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func QuizAttemptRoutes(router fiber.Router, db *gorm.DB) {
	controller := attemptController.NewQuizAttemptController(db)

	router.Post("/quizzes/:quizId/attempts", controller.StartQuizAttempt)
	router.Get("/courses/:courseId/attempts", controller.GetStudentQuizHistory)

	// Submit dibatasi lebih ketat dari rate limit global.
	router.Post("/attempts/:attemptId/submit", middlewares.QuizSubmitRateLimiter(), controller.SubmitQuizAttempt)
	router.Get("/attempts/:attemptId/results", controller.GetQuizResults)
}
