// internals/features/progress/analytics/controller/analytics_controller.go
package controller

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	courseService "kursusku_backend/internals/features/courses/courses/service"
	analyticsService "kursusku_backend/internals/features/progress/analytics/service"
	progressModel "kursusku_backend/internals/features/progress/course_progress/model"
	attemptModel "kursusku_backend/internals/features/quizzes/attempts/model"
	helper "kursusku_backend/internals/helpers"
)

type AnalyticsController struct {
	DB      *gorm.DB
	Courses *courseService.CourseGateway
}

func NewAnalyticsController(db *gorm.DB) *AnalyticsController {
	return &AnalyticsController{
		DB:      db,
		Courses: courseService.NewCourseGateway(db),
	}
}

// GET /api/u/courses/:courseId/analytics
// Rollup untuk pembuat kursus; user lain dapat 403.
func (ctrl *AnalyticsController) GetCourseAnalytics(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID kursus tidak valid")
	}

	isOwner, err := ctrl.Courses.IsCourseOwner(courseID, userID)
	if err != nil {
		if errors.Is(err, courseService.ErrCourseNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Kursus tidak ditemukan")
		}
		log.Println("[ERROR] Gagal cek kepemilikan kursus:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memeriksa kepemilikan kursus")
	}
	if !isOwner {
		return helper.JsonError(c, fiber.StatusForbidden, "Analitik hanya untuk pembuat kursus")
	}

	_, lectures, err := ctrl.Courses.GetCourseWithLectures(courseID)
	if err != nil {
		log.Println("[ERROR] Gagal mengambil lecture:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data kursus")
	}

	var enrollments []progressModel.CourseProgressModel
	if err := ctrl.DB.
		Where("course_progress_course_id = ?", courseID).
		Find(&enrollments).Error; err != nil {
		log.Println("[ERROR] Gagal mengambil enrollment:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil enrollment")
	}

	var lectureRows []progressModel.LectureProgressModel
	if len(enrollments) > 0 {
		ids := make([]uuid.UUID, 0, len(enrollments))
		for i := range enrollments {
			ids = append(ids, enrollments[i].CourseProgressID)
		}
		if err := ctrl.DB.
			Where("lecture_progress_course_progress_id IN ?", ids).
			Find(&lectureRows).Error; err != nil {
			log.Println("[ERROR] Gagal mengambil progres lecture:", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil progres lecture")
		}
	}

	var attempts []attemptModel.QuizAttemptModel
	if err := ctrl.DB.
		Where("quiz_attempt_course_id = ?", courseID).
		Find(&attempts).Error; err != nil {
		log.Println("[ERROR] Gagal mengambil attempt:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil attempt")
	}

	summary := analyticsService.BuildCourseAnalytics(courseID, lectures, enrollments, lectureRows, attempts, time.Now())
	return helper.JsonOK(c, "OK", summary)
}
