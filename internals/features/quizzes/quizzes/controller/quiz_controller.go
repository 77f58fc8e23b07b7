// internals/features/quizzes/quizzes/controller/quiz_controller.go
package controller

import (
	"errors"
	"log"

	courseService "kursusku_backend/internals/features/courses/courses/service"
	progressModel "kursusku_backend/internals/features/progress/course_progress/model"
	attemptModel "kursusku_backend/internals/features/quizzes/attempts/model"
	"kursusku_backend/internals/features/quizzes/quizzes/dto"
	"kursusku_backend/internals/features/quizzes/quizzes/model"
	helper "kursusku_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var validate = validator.New()

type QuizController struct {
	DB      *gorm.DB
	Courses *courseService.CourseGateway
}

func NewQuizController(db *gorm.DB) *QuizController {
	return &QuizController{
		DB:      db,
		Courses: courseService.NewCourseGateway(db),
	}
}

// requireCourseOwner memastikan user adalah pembuat kursus.
func (ctrl *QuizController) requireCourseOwner(c *fiber.Ctx, courseID, userID uuid.UUID) error {
	ok, err := ctrl.Courses.IsCourseOwner(courseID, userID)
	if err != nil {
		if errors.Is(err, courseService.ErrCourseNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Kursus tidak ditemukan")
		}
		log.Println("[ERROR] Gagal cek kepemilikan kursus:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memeriksa kepemilikan kursus")
	}
	if !ok {
		return helper.JsonError(c, fiber.StatusForbidden, "Hanya pembuat kursus yang boleh mengelola quiz")
	}
	return nil
}

// POST /api/u/quizzes
func (ctrl *QuizController) CreateQuiz(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.QuizCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrorsToMap(err))
	}
	for i := range req.Questions {
		if msg := req.Questions[i].Validate(); msg != "" {
			return helper.JsonValidationError(c, map[string][]string{"questions": {msg}})
		}
	}

	if err := ctrl.requireCourseOwner(c, req.QuizCourseID, userID); err != nil {
		return err
	}

	// Lecture harus milik kursus yang sama.
	var lectureCount int64
	if err := ctrl.DB.Table("lectures").
		Where("lecture_id = ? AND lecture_course_id = ?", req.QuizLectureID, req.QuizCourseID).
		Count(&lectureCount).Error; err != nil {
		log.Println("[ERROR] Gagal cek lecture:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memeriksa lecture")
	}
	if lectureCount == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Lecture tidak ditemukan pada kursus ini")
	}

	quiz := req.ToModel()

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		// quiz_order = posisi terakhir + 1 dalam kursus
		var maxOrder int
		if err := tx.Model(&model.QuizModel{}).
			Where("quiz_course_id = ?", req.QuizCourseID).
			Select("COALESCE(MAX(quiz_order), 0)").
			Scan(&maxOrder).Error; err != nil {
			return err
		}
		quiz.QuizOrder = maxOrder + 1

		if err := tx.Create(quiz).Error; err != nil {
			return err
		}

		questions := make([]model.QuizQuestionModel, 0, len(req.Questions))
		for i := range req.Questions {
			questions = append(questions, req.Questions[i].ToModel(quiz.QuizID, i+1))
		}
		if err := tx.Create(&questions).Error; err != nil {
			return err
		}
		quiz.Questions = questions

		// Siswa yang sudah enroll ikut melihat quiz baru di agregatnya.
		return tx.Model(&progressModel.CourseProgressModel{}).
			Where("course_progress_course_id = ?", req.QuizCourseID).
			UpdateColumn("course_progress_total_quizzes", gorm.Expr("course_progress_total_quizzes + 1")).
			Error
	})
	if err != nil {
		if helper.IsDuplicateKey(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Lecture ini sudah memiliki quiz")
		}
		log.Println("[ERROR] Gagal membuat quiz:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat quiz")
	}

	return helper.JsonCreated(c, "Quiz berhasil dibuat", dto.ToQuizResponse(quiz, true))
}

// PUT /api/u/quizzes/:id
func (ctrl *QuizController) UpdateQuiz(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	quizID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID quiz tidak valid")
	}

	var req dto.QuizUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrorsToMap(err))
	}
	for i := range req.Questions {
		if msg := req.Questions[i].Validate(); msg != "" {
			return helper.JsonValidationError(c, map[string][]string{"questions": {msg}})
		}
	}

	var quiz model.QuizModel
	if err := ctrl.DB.First(&quiz, "quiz_id = ?", quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Quiz tidak ditemukan")
		}
		log.Println("[ERROR] Gagal mengambil quiz:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil quiz")
	}

	if err := ctrl.requireCourseOwner(c, quiz.QuizCourseID, userID); err != nil {
		return err
	}

	// Binding course/lecture tidak bisa diubah lewat update.
	req.ApplyToModel(&quiz)

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&quiz).Error; err != nil {
			return err
		}
		if req.Questions == nil {
			return nil
		}
		// Ganti seluruh daftar soal; attempt lama tetap utuh karena
		// menyimpan snapshot jawabannya sendiri.
		if err := tx.Where("quiz_question_quiz_id = ?", quiz.QuizID).
			Delete(&model.QuizQuestionModel{}).Error; err != nil {
			return err
		}
		questions := make([]model.QuizQuestionModel, 0, len(req.Questions))
		for i := range req.Questions {
			questions = append(questions, req.Questions[i].ToModel(quiz.QuizID, i+1))
		}
		if err := tx.Create(&questions).Error; err != nil {
			return err
		}
		quiz.Questions = questions
		return nil
	})
	if err != nil {
		log.Println("[ERROR] Gagal memperbarui quiz:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui quiz")
	}

	if quiz.Questions == nil {
		if err := ctrl.DB.Order("quiz_question_position ASC").
			Find(&quiz.Questions, "quiz_question_quiz_id = ?", quiz.QuizID).Error; err != nil {
			log.Println("[ERROR] Gagal memuat soal:", err)
		}
	}

	return helper.JsonUpdated(c, "Quiz berhasil diperbarui", dto.ToQuizResponse(&quiz, true))
}

// DELETE /api/u/quizzes/:id
func (ctrl *QuizController) DeleteQuiz(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	quizID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID quiz tidak valid")
	}

	var quiz model.QuizModel
	if err := ctrl.DB.First(&quiz, "quiz_id = ?", quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Quiz tidak ditemukan")
		}
		log.Println("[ERROR] Gagal mengambil quiz:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil quiz")
	}

	if err := ctrl.requireCourseOwner(c, quiz.QuizCourseID, userID); err != nil {
		return err
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_attempt_quiz_id = ?", quiz.QuizID).
			Delete(&attemptModel.QuizAttemptModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_question_quiz_id = ?", quiz.QuizID).
			Delete(&model.QuizQuestionModel{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&quiz).Error; err != nil {
			return err
		}
		return tx.Model(&progressModel.CourseProgressModel{}).
			Where("course_progress_course_id = ? AND course_progress_total_quizzes > 0", quiz.QuizCourseID).
			UpdateColumn("course_progress_total_quizzes", gorm.Expr("course_progress_total_quizzes - 1")).
			Error
	})
	if err != nil {
		log.Println("[ERROR] Gagal menghapus quiz:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus quiz")
	}

	return helper.JsonDeleted(c, "Quiz berhasil dihapus", fiber.Map{"quiz_id": quiz.QuizID})
}

// GET /api/u/quizzes/:id
// Pembuat kursus melihat kunci jawaban; siswa mendapat versi tanpa kunci
// dan hanya untuk quiz aktif.
func (ctrl *QuizController) GetQuizByID(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	quizID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID quiz tidak valid")
	}

	var quiz model.QuizModel
	if err := ctrl.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("quiz_question_position ASC")
		}).
		First(&quiz, "quiz_id = ?", quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Quiz tidak ditemukan")
		}
		log.Println("[ERROR] Gagal mengambil quiz:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil quiz")
	}

	isOwner, err := ctrl.Courses.IsCourseOwner(quiz.QuizCourseID, userID)
	if err != nil && !errors.Is(err, courseService.ErrCourseNotFound) {
		log.Println("[ERROR] Gagal cek kepemilikan kursus:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memeriksa kepemilikan kursus")
	}
	if !isOwner && !quiz.QuizIsActive {
		return helper.JsonError(c, fiber.StatusNotFound, "Quiz tidak ditemukan")
	}

	return helper.JsonOK(c, "OK", dto.ToQuizResponse(&quiz, isOwner))
}

// GET /api/u/courses/:courseId/quizzes
func (ctrl *QuizController) GetQuizzesByCourse(c *fiber.Ctx) error {
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

	q := ctrl.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("quiz_question_position ASC")
		}).
		Where("quiz_course_id = ?", courseID).
		Order("quiz_order ASC")
	if !isOwner {
		q = q.Where("quiz_is_active = TRUE")
	}

	var quizzes []model.QuizModel
	if err := q.Find(&quizzes).Error; err != nil {
		log.Println("[ERROR] Gagal mengambil daftar quiz:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil daftar quiz")
	}

	// Pemilik kursus dapat definisi penuh; siswa hanya ringkasan + jumlah soal.
	if isOwner {
		full := make([]dto.QuizResponse, 0, len(quizzes))
		for i := range quizzes {
			full = append(full, dto.ToQuizResponse(&quizzes[i], true))
		}
		return helper.JsonOK(c, "OK", full)
	}

	items := make([]dto.QuizListItem, 0, len(quizzes))
	for i := range quizzes {
		items = append(items, dto.ToQuizListItem(&quizzes[i]))
	}

	return helper.JsonOK(c, "OK", items)
}
