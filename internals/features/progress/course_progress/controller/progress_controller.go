// internals/features/progress/course_progress/controller/progress_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	courseService "kursusku_backend/internals/features/courses/courses/service"
	"kursusku_backend/internals/features/progress/course_progress/dto"
	"kursusku_backend/internals/features/progress/course_progress/model"
	progressService "kursusku_backend/internals/features/progress/course_progress/service"
	attemptModel "kursusku_backend/internals/features/quizzes/attempts/model"
	quizModel "kursusku_backend/internals/features/quizzes/quizzes/model"
	helper "kursusku_backend/internals/helpers"
)

var validate = validator.New()

type CourseProgressController struct {
	DB       *gorm.DB
	Progress *progressService.ProgressService
}

func NewCourseProgressController(db *gorm.DB) *CourseProgressController {
	return &CourseProgressController{
		DB:       db,
		Progress: progressService.NewProgressService(db),
	}
}

// POST /api/u/progress/courses/:courseId/initialize
// Dipanggil saat enroll; aman dipanggil ulang (idempotent).
func (ctrl *CourseProgressController) InitializeProgress(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID kursus tidak valid")
	}

	cp, created, err := ctrl.Progress.InitializeProgress(userID, courseID)
	if err != nil {
		if errors.Is(err, courseService.ErrCourseNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Kursus tidak ditemukan")
		}
		log.Println("[ERROR] Gagal inisialisasi progres:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal inisialisasi progres")
	}

	resp := dto.ToCourseProgressResponse(cp, nil)
	if created {
		return helper.JsonCreated(c, "Progres kursus diinisialisasi", resp)
	}
	return helper.JsonOK(c, "Progres kursus sudah ada", resp)
}

// PUT /api/u/progress/courses/:courseId/lectures/:lectureId
func (ctrl *CourseProgressController) UpdateLectureProgress(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID kursus tidak valid")
	}
	lectureID, err := uuid.Parse(c.Params("lectureId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID lecture tidak valid")
	}

	var req dto.UpdateLectureProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrorsToMap(err))
	}

	cp, err := ctrl.Progress.UpdateLectureProgress(userID, courseID, lectureID, req.Completed, req.WatchTimeSeconds)
	if err != nil {
		switch {
		case errors.Is(err, progressService.ErrNotEnrolled):
			return helper.JsonError(c, fiber.StatusNotFound, "Progres tidak ditemukan, enroll dulu")
		case errors.Is(err, gorm.ErrRecordNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "Lecture tidak ditemukan pada kursus ini")
		case errors.Is(err, courseService.ErrCourseNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "Kursus tidak ditemukan")
		}
		log.Println("[ERROR] Gagal update progres lecture:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal update progres lecture")
	}

	return helper.JsonUpdated(c, "Progres lecture diperbarui", dto.ToCourseProgressResponse(cp, nil))
}

// GET /api/u/progress/courses/:courseId
// Statistik quiz per lecture dihitung saat baca dari tabel attempt.
func (ctrl *CourseProgressController) GetCourseProgress(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID kursus tidak valid")
	}

	var cp model.CourseProgressModel
	if err := ctrl.DB.
		Preload("Lectures").
		Where("course_progress_user_id = ? AND course_progress_course_id = ?", userID, courseID).
		First(&cp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Progres tidak ditemukan, enroll dulu")
		}
		log.Println("[ERROR] Gagal mengambil progres:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil progres")
	}

	stats, courseStats, err := ctrl.buildQuizStats(userID, courseID)
	if err != nil {
		log.Println("[ERROR] Gagal menghitung statistik quiz:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung statistik quiz")
	}

	resp := dto.ToCourseProgressResponse(&cp, stats)
	resp.QuizStats = courseStats
	return helper.JsonOK(c, "OK", resp)
}

// buildQuizStats menghitung snapshot attempt user di kursus saat baca:
// per-lecture (dipetakan lewat quiz lecture) dan agregat se-kursus.
func (ctrl *CourseProgressController) buildQuizStats(userID, courseID uuid.UUID) (map[uuid.UUID]*dto.LectureQuizStats, *dto.CourseQuizStats, error) {
	var quizzes []quizModel.QuizModel
	if err := ctrl.DB.
		Scopes(quizModel.ActiveByCourse(courseID)).
		Find(&quizzes).Error; err != nil {
		return nil, nil, err
	}
	if len(quizzes) == 0 {
		return nil, nil, nil
	}

	quizIDs := make([]uuid.UUID, 0, len(quizzes))
	for i := range quizzes {
		quizIDs = append(quizIDs, quizzes[i].QuizID)
	}

	var attempts []attemptModel.QuizAttemptModel
	if err := ctrl.DB.
		Where("quiz_attempt_user_id = ? AND quiz_attempt_quiz_id IN ?", userID, quizIDs).
		Find(&attempts).Error; err != nil {
		return nil, nil, err
	}

	byQuiz := make(map[uuid.UUID]*dto.LectureQuizStats, len(quizzes))
	stats := make(map[uuid.UUID]*dto.LectureQuizStats, len(quizzes))
	for i := range quizzes {
		s := &dto.LectureQuizStats{
			QuizID:      quizzes[i].QuizID,
			MaxAttempts: quizzes[i].QuizMaxAttempts,
		}
		byQuiz[quizzes[i].QuizID] = s
		stats[quizzes[i].QuizLectureID] = s
	}

	course := &dto.CourseQuizStats{TotalQuizzes: len(quizzes)}
	var percentages []int
	for i := range attempts {
		course.TotalAttempts++
		// Rata-rata dibagi SEMUA attempt; yang masih in_progress ikut
		// dengan persentase default 0, mengikuti sumber aslinya.
		percentages = append(percentages, attempts[i].QuizAttemptPercentage)
		s := byQuiz[attempts[i].QuizAttemptQuizID]
		if s != nil {
			s.AttemptsUsed++
		}
		if attempts[i].QuizAttemptStatus != attemptModel.AttemptStatusCompleted {
			continue
		}
		course.CompletedAttempts++
		if s == nil {
			continue
		}
		if attempts[i].QuizAttemptPercentage > s.BestScore {
			s.BestScore = attempts[i].QuizAttemptPercentage
		}
		if attempts[i].QuizAttemptPassed {
			s.Passed = true
		}
	}
	course.AverageScore = progressService.AverageScore(percentages)
	return stats, course, nil
}

// GET /api/u/progress
// Daftar progres user lintas kursus, terbaru diakses duluan.
func (ctrl *CourseProgressController) GetUserProgress(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	p := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctrl.DB.Model(&model.CourseProgressModel{}).
		Where("course_progress_user_id = ?", userID).
		Count(&total).Error; err != nil {
		log.Println("[ERROR] Gagal menghitung progres user:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil progres")
	}

	var items []dto.UserProgressItem
	if err := ctrl.DB.Table("course_progress").
		Select(`course_progress.course_progress_course_id AS course_id,
			courses.course_title AS course_title,
			course_progress.course_progress_percent AS course_progress,
			course_progress.course_progress_completed_lectures AS completed_lectures,
			course_progress.course_progress_total_lectures AS total_lectures,
			course_progress.course_progress_certificate_earned AS certificate_earned,
			course_progress.course_progress_last_accessed_at AS last_accessed_at`).
		Joins("JOIN courses ON courses.course_id = course_progress.course_progress_course_id").
		Where("course_progress.course_progress_user_id = ?", userID).
		Order("course_progress.course_progress_last_accessed_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Scan(&items).Error; err != nil {
		log.Println("[ERROR] Gagal mengambil progres user:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil progres")
	}

	return helper.JsonList(c, "OK", items, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}
