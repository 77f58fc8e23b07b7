// internals/features/quizzes/attempts/controller/quiz_attempt_controller.go
package controller

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	progressModel "kursusku_backend/internals/features/progress/course_progress/model"
	progressService "kursusku_backend/internals/features/progress/course_progress/service"
	"kursusku_backend/internals/features/quizzes/attempts/dto"
	"kursusku_backend/internals/features/quizzes/attempts/model"
	quizDto "kursusku_backend/internals/features/quizzes/quizzes/dto"
	quizModel "kursusku_backend/internals/features/quizzes/quizzes/model"
	"kursusku_backend/internals/features/quizzes/service"
	helper "kursusku_backend/internals/helpers"
)

var validate = validator.New()

type QuizAttemptController struct {
	DB       *gorm.DB
	Progress *progressService.ProgressService
}

func NewQuizAttemptController(db *gorm.DB) *QuizAttemptController {
	return &QuizAttemptController{
		DB:       db,
		Progress: progressService.NewProgressService(db),
	}
}

// quizForAttemptQuery memuat quiz beserta soal terurut TANPA memfilter
// is_active: quiz nonaktif tetap bisa dimulai dan attempt yang sudah
// berjalan tetap bisa disubmit; nonaktif hanya menyembunyikan quiz dari
// daftar dan penyebut statistik.
func quizForAttemptQuery(db *gorm.DB, quizID uuid.UUID) *gorm.DB {
	return db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("quiz_question_position ASC")
		}).
		Where("quiz_id = ?", quizID)
}

// POST /api/u/quizzes/:quizId/attempts
// Memulai attempt baru. Nomor attempt = jumlah attempt sebelumnya + 1;
// index unik (user, quiz, nomor) jadi jaring pengaman kalau dua start
// berpacu, yang kalah dapat 409.
func (ctrl *QuizAttemptController) StartQuizAttempt(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	quizID, err := uuid.Parse(c.Params("quizId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID quiz tidak valid")
	}

	var quiz quizModel.QuizModel
	if err := quizForAttemptQuery(ctrl.DB, quizID).First(&quiz).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Quiz tidak ditemukan")
		}
		log.Println("[ERROR] Gagal mengambil quiz:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil quiz")
	}

	// Harus sudah enroll (punya baris progres) di kursus pemilik quiz.
	var enrolled int64
	if err := ctrl.DB.Model(&progressModel.CourseProgressModel{}).
		Where("course_progress_user_id = ? AND course_progress_course_id = ?", userID, quiz.QuizCourseID).
		Count(&enrolled).Error; err != nil {
		log.Println("[ERROR] Gagal cek enrollment:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memeriksa enrollment")
	}
	if enrolled == 0 {
		return helper.JsonError(c, fiber.StatusForbidden, "Anda belum enroll di kursus ini")
	}

	var attemptCount int64
	if err := ctrl.DB.Model(&model.QuizAttemptModel{}).
		Where("quiz_attempt_user_id = ? AND quiz_attempt_quiz_id = ?", userID, quizID).
		Count(&attemptCount).Error; err != nil {
		log.Println("[ERROR] Gagal menghitung attempt:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung attempt")
	}
	if int(attemptCount) >= quiz.QuizMaxAttempts {
		return helper.JsonError(c, fiber.StatusBadRequest,
			fmt.Sprintf("Batas maksimal %d attempt sudah tercapai", quiz.QuizMaxAttempts))
	}

	attempt := model.QuizAttemptModel{
		QuizAttemptQuizID:    quiz.QuizID,
		QuizAttemptUserID:    userID,
		QuizAttemptCourseID:  quiz.QuizCourseID,
		QuizAttemptLectureID: quiz.QuizLectureID,
		QuizAttemptNumber:    int(attemptCount) + 1,
		QuizAttemptStatus:    model.AttemptStatusInProgress,
	}
	if err := ctrl.DB.Create(&attempt).Error; err != nil {
		if helper.IsDuplicateKey(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Attempt dengan nomor yang sama sedang dibuat, coba lagi")
		}
		log.Println("[ERROR] Gagal membuat attempt:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat attempt")
	}

	// Soal dikirim tanpa kunci jawaban.
	return helper.JsonCreated(c, "Attempt dimulai", fiber.Map{
		"attempt": dto.ToAttemptSummary(&attempt),
		"quiz":    quizDto.ToQuizResponse(&quiz, false),
	})
}

// POST /api/u/attempts/:attemptId/submit
// Menilai jawaban, menutup attempt, dan memperbarui agregat progres
// dalam satu transaksi.
func (ctrl *QuizAttemptController) SubmitQuizAttempt(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	attemptID, err := uuid.Parse(c.Params("attemptId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID attempt tidak valid")
	}

	var req dto.SubmitQuizAttemptRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrorsToMap(err))
	}

	var attempt model.QuizAttemptModel
	if err := ctrl.DB.First(&attempt, "quiz_attempt_id = ?", attemptID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Attempt tidak ditemukan")
		}
		log.Println("[ERROR] Gagal mengambil attempt:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil attempt")
	}
	// Attempt orang lain diperlakukan seperti tidak ada.
	if attempt.QuizAttemptUserID != userID {
		return helper.JsonError(c, fiber.StatusNotFound, "Attempt tidak ditemukan")
	}
	if attempt.QuizAttemptStatus != model.AttemptStatusInProgress {
		return helper.JsonError(c, fiber.StatusConflict, "Attempt sudah tidak berjalan")
	}

	var quiz quizModel.QuizModel
	if err := quizForAttemptQuery(ctrl.DB, attempt.QuizAttemptQuizID).First(&quiz).Error; err != nil {
		// Quiz dihapus setelah attempt dimulai.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Quiz tidak ditemukan")
		}
		log.Println("[ERROR] Gagal mengambil quiz:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil quiz")
	}

	res := service.GradeQuiz(quiz.Questions, req.Answers, quiz.QuizPassingScore)

	// Rata-rata skor quiz kursus = mean persentase SEMUA attempt user di
	// kursus ini (yang in_progress menyumbang 0), termasuk attempt yang
	// sedang ditutup; barisnya sendiri dikecualikan lalu ditambahkan dari
	// hasil penilaian supaya tidak terhitung dobel.
	var percentages []int
	if err := ctrl.DB.Model(&model.QuizAttemptModel{}).
		Where("quiz_attempt_user_id = ? AND quiz_attempt_course_id = ? AND quiz_attempt_id <> ?",
			userID, attempt.QuizAttemptCourseID, attempt.QuizAttemptID).
		Pluck("quiz_attempt_percentage", &percentages).Error; err != nil {
		log.Println("[ERROR] Gagal mengambil skor attempt:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung rata-rata skor")
	}
	percentages = append(percentages, res.Percentage)
	averageScore := progressService.AverageScore(percentages)

	now := time.Now()
	attempt.QuizAttemptAnswers = datatypes.NewJSONType(res.Answers)
	attempt.QuizAttemptScore = res.Score
	attempt.QuizAttemptTotalPoints = res.TotalPoints
	attempt.QuizAttemptPercentage = res.Percentage
	attempt.QuizAttemptPassed = res.Passed
	attempt.QuizAttemptStatus = model.AttemptStatusCompleted
	attempt.QuizAttemptCompletedAt = &now
	if req.TimeSpentSeconds != nil {
		attempt.QuizAttemptTimeSpentSeconds = *req.TimeSpentSeconds
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&attempt).Error; err != nil {
			return err
		}
		return ctrl.Progress.ApplyQuizResult(tx,
			userID, attempt.QuizAttemptCourseID, attempt.QuizAttemptLectureID,
			res.Percentage, attempt.QuizAttemptNumber, averageScore, now)
	})
	if err != nil {
		log.Println("[ERROR] Gagal menyimpan hasil attempt:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan hasil attempt")
	}

	return helper.JsonOK(c, "Attempt selesai dinilai", dto.ToAttemptSummary(&attempt))
}

// GET /api/u/attempts/:attemptId/results
// Review per soal dengan kunci jawaban; hanya untuk attempt yang sudah
// selesai dan milik sendiri.
func (ctrl *QuizAttemptController) GetQuizResults(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	attemptID, err := uuid.Parse(c.Params("attemptId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID attempt tidak valid")
	}

	var attempt model.QuizAttemptModel
	if err := ctrl.DB.First(&attempt, "quiz_attempt_id = ?", attemptID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Attempt tidak ditemukan")
		}
		log.Println("[ERROR] Gagal mengambil attempt:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil attempt")
	}
	if attempt.QuizAttemptUserID != userID {
		return helper.JsonError(c, fiber.StatusNotFound, "Attempt tidak ditemukan")
	}
	if attempt.QuizAttemptStatus != model.AttemptStatusCompleted {
		return helper.JsonError(c, fiber.StatusConflict, "Attempt belum selesai dinilai")
	}

	var questions []quizModel.QuizQuestionModel
	if err := ctrl.DB.
		Where("quiz_question_quiz_id = ?", attempt.QuizAttemptQuizID).
		Order("quiz_question_position ASC").
		Find(&questions).Error; err != nil {
		log.Println("[ERROR] Gagal mengambil soal:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil soal")
	}

	graded := attempt.QuizAttemptAnswers.Data()
	byQuestion := make(map[uuid.UUID]*model.GradedAnswer, len(graded))
	for i := range graded {
		byQuestion[graded[i].QuestionID] = &graded[i]
	}

	reviews := make([]dto.AnswerReview, 0, len(questions))
	for i := range questions {
		q := &questions[i]
		review := dto.AnswerReview{
			QuestionID:     q.QuizQuestionID,
			QuestionText:   q.QuizQuestionText,
			QuestionType:   q.QuizQuestionType,
			CorrectOptions: q.CorrectOptionTexts(),
			CorrectAnswer:  q.QuizQuestionCorrectAnswer,
			PointsPossible: q.QuizQuestionPoints,
			Explanation:    q.QuizQuestionExplanation,
		}
		if ans := byQuestion[q.QuizQuestionID]; ans != nil {
			review.SelectedOptions = ans.SelectedOptions
			review.TextAnswer = ans.TextAnswer
			review.IsCorrect = ans.IsCorrect
			review.PointsEarned = ans.Points
		}
		reviews = append(reviews, review)
	}

	return helper.JsonOK(c, "OK", dto.QuizResultsResponse{
		Attempt: dto.ToAttemptSummary(&attempt),
		Answers: reviews,
	})
}

// GET /api/u/courses/:courseId/attempts
// Riwayat attempt user se-kursus, terbaru duluan.
func (ctrl *QuizAttemptController) GetStudentQuizHistory(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID kursus tidak valid")
	}

	var attempts []model.QuizAttemptModel
	if err := ctrl.DB.
		Where("quiz_attempt_user_id = ? AND quiz_attempt_course_id = ?", userID, courseID).
		Order("quiz_attempt_started_at DESC").
		Find(&attempts).Error; err != nil {
		log.Println("[ERROR] Gagal mengambil riwayat attempt:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil riwayat attempt")
	}

	items := make([]dto.AttemptSummary, 0, len(attempts))
	for i := range attempts {
		items = append(items, dto.ToAttemptSummary(&attempts[i]))
	}

	return helper.JsonOK(c, "OK", items)
}
