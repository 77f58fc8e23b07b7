// internals/features/progress/course_progress/service/progress_service.go
package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	courseService "kursusku_backend/internals/features/courses/courses/service"
	model "kursusku_backend/internals/features/progress/course_progress/model"
	quizModel "kursusku_backend/internals/features/quizzes/quizzes/model"
)

var ErrNotEnrolled = errors.New("user belum enroll di kursus ini")

type ProgressService struct {
	DB      *gorm.DB
	Courses *courseService.CourseGateway
}

func NewProgressService(db *gorm.DB) *ProgressService {
	return &ProgressService{
		DB:      db,
		Courses: courseService.NewCourseGateway(db),
	}
}

// InitializeProgress membuat agregat progres saat user enroll. Idempotent:
// kalau baris sudah ada, baris lama dikembalikan apa adanya (created=false)
// tanpa mengubah progres yang sudah berjalan.
func (s *ProgressService) InitializeProgress(userID, courseID uuid.UUID) (*model.CourseProgressModel, bool, error) {
	var existing model.CourseProgressModel
	err := s.DB.
		Preload("Lectures").
		Where("course_progress_user_id = ? AND course_progress_course_id = ?", userID, courseID).
		First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	_, lectures, err := s.Courses.GetCourseWithLectures(courseID)
	if err != nil {
		return nil, false, err
	}

	// Hanya quiz aktif yang masuk penyebut, sama dengan statistik baca.
	var totalQuizzes int64
	if err := s.DB.Model(&quizModel.QuizModel{}).
		Scopes(quizModel.ActiveByCourse(courseID)).
		Count(&totalQuizzes).Error; err != nil {
		return nil, false, err
	}

	cp := model.CourseProgressModel{
		CourseProgressUserID:        userID,
		CourseProgressCourseID:      courseID,
		CourseProgressTotalLectures: len(lectures),
		CourseProgressTotalQuizzes:  int(totalQuizzes),
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&cp).Error; err != nil {
			return err
		}
		if len(lectures) == 0 {
			return nil
		}
		rows := make([]model.LectureProgressModel, 0, len(lectures))
		for i := range lectures {
			rows = append(rows, model.LectureProgressModel{
				LectureProgressCourseProgressID: cp.CourseProgressID,
				LectureProgressLectureID:        lectures[i].LectureID,
			})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
		cp.Lectures = rows
		return nil
	})
	if err != nil {
		// Enroll ganda yang balapan: baris lain menang, pakai punyanya.
		var raced model.CourseProgressModel
		if e2 := s.DB.Preload("Lectures").
			Where("course_progress_user_id = ? AND course_progress_course_id = ?", userID, courseID).
			First(&raced).Error; e2 == nil {
			return &raced, false, nil
		}
		return nil, false, err
	}
	return &cp, true, nil
}

// lockProgress mengambil baris agregat dengan FOR UPDATE di dalam
// transaksi, supaya read-modify-write recompute tidak balapan.
func (s *ProgressService) lockProgress(tx *gorm.DB, userID, courseID uuid.UUID) (*model.CourseProgressModel, error) {
	var cp model.CourseProgressModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("course_progress_user_id = ? AND course_progress_course_id = ?", userID, courseID).
		First(&cp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotEnrolled
	}
	if err != nil {
		return nil, err
	}
	return &cp, nil
}

// backfillLectures menambahkan baris progress untuk lecture yang muncul
// setelah initialize, lalu menyamakan total_lectures dengan isi kursus.
func (s *ProgressService) backfillLectures(tx *gorm.DB, cp *model.CourseProgressModel) ([]model.LectureProgressModel, error) {
	_, lectures, err := s.Courses.GetCourseWithLectures(cp.CourseProgressCourseID)
	if err != nil {
		return nil, err
	}

	var rows []model.LectureProgressModel
	if err := tx.Where("lecture_progress_course_progress_id = ?", cp.CourseProgressID).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	lectureIDs := make([]uuid.UUID, 0, len(lectures))
	for i := range lectures {
		lectureIDs = append(lectureIDs, lectures[i].LectureID)
	}
	for _, id := range MissingLectureIDs(rows, lectureIDs) {
		row := model.LectureProgressModel{
			LectureProgressCourseProgressID: cp.CourseProgressID,
			LectureProgressLectureID:        id,
		}
		if err := tx.Create(&row).Error; err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	cp.CourseProgressTotalLectures = len(lectures)
	return rows, nil
}

// UpdateLectureProgress mencatat tontonan lecture lalu menghitung ulang
// agregat. completed hanya bisa naik ke watched=true, tapi completed_at
// dicap ulang tiap panggilan completed; watch time last-write-wins.
func (s *ProgressService) UpdateLectureProgress(userID, courseID, lectureID uuid.UUID, completed *bool, watchTimeSeconds *int) (*model.CourseProgressModel, error) {
	now := time.Now()
	var result *model.CourseProgressModel

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		cp, err := s.lockProgress(tx, userID, courseID)
		if err != nil {
			return err
		}

		rows, err := s.backfillLectures(tx, cp)
		if err != nil {
			return err
		}

		var target *model.LectureProgressModel
		for i := range rows {
			if rows[i].LectureProgressLectureID == lectureID {
				target = &rows[i]
				break
			}
		}
		if target == nil {
			return gorm.ErrRecordNotFound
		}

		applyLectureUpdate(target, completed, watchTimeSeconds, now)
		if err := tx.Save(target).Error; err != nil {
			return err
		}

		RecomputeCourseProgress(cp, rows, now)
		if err := tx.Save(cp).Error; err != nil {
			return err
		}

		cp.Lectures = rows
		result = cp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ApplyQuizResult dipanggil dari transaksi submit attempt: menandai quiz
// lecture selesai, mencatat skor terakhir/terbaik dan nomor attempt,
// menaikkan counter completed_quizzes, memperbarui rata-rata skor quiz
// kursus, lalu recompute agregat lecture.
func (s *ProgressService) ApplyQuizResult(tx *gorm.DB, userID, courseID, lectureID uuid.UUID, percentage, attemptNumber, averageQuizScore int, now time.Time) error {
	cp, err := s.lockProgress(tx, userID, courseID)
	if err != nil {
		return err
	}

	rows, err := s.backfillLectures(tx, cp)
	if err != nil {
		return err
	}

	for i := range rows {
		if rows[i].LectureProgressLectureID != lectureID {
			continue
		}
		applyQuizOutcome(cp, &rows[i], percentage, attemptNumber)
		if err := tx.Save(&rows[i]).Error; err != nil {
			return err
		}
		break
	}

	cp.CourseProgressAverageQuizScore = averageQuizScore
	RecomputeCourseProgress(cp, rows, now)
	return tx.Save(cp).Error
}
