// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	courseRoutes "kursusku_backend/internals/features/courses/courses/route"
	analyticsRoutes "kursusku_backend/internals/features/progress/analytics/route"
	progressRoutes "kursusku_backend/internals/features/progress/course_progress/route"
	attemptRoutes "kursusku_backend/internals/features/quizzes/attempts/route"
	quizRoutes "kursusku_backend/internals/features/quizzes/quizzes/route"
	"kursusku_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// Semua endpoint domain butuh JWT; identitas & katalog kursus penuh
	// dikelola layanan lain.
	log.Println("[INFO] Setting up PRIVATE (user) group...")
	private := app.Group("/api/u", auth.AuthMiddleware())

	log.Println("[INFO] Mounting Course routes...")
	courseRoutes.CourseRoutes(private, db)

	log.Println("[INFO] Mounting Quiz routes...")
	quizRoutes.QuizUserRoutes(private, db)
	quizRoutes.QuizInstructorRoutes(private, db)

	log.Println("[INFO] Mounting Quiz Attempt routes...")
	attemptRoutes.QuizAttemptRoutes(private, db)

	log.Println("[INFO] Mounting Course Progress routes...")
	progressRoutes.CourseProgressRoutes(private, db)

	log.Println("[INFO] Mounting Analytics routes...")
	analyticsRoutes.AnalyticsRoutes(private, db)

	log.Println("✅ Semua route berhasil dimount")
}
