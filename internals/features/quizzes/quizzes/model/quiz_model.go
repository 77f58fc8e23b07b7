package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuizModel struct {
	QuizID uuid.UUID `gorm:"column:quiz_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"quiz_id"`

	// Relasi (UUID). Satu lecture maksimal satu quiz.
	QuizCourseID  uuid.UUID `gorm:"column:quiz_course_id;type:uuid;not null;index" json:"quiz_course_id"`
	QuizLectureID uuid.UUID `gorm:"column:quiz_lecture_id;type:uuid;not null;uniqueIndex:uq_quiz_lecture" json:"quiz_lecture_id"`

	QuizTitle       string `gorm:"column:quiz_title;type:varchar(255);not null" json:"quiz_title"`
	QuizDescription string `gorm:"column:quiz_description;type:text" json:"quiz_description"`

	// 0 = tanpa batas waktu (menit)
	QuizTimeLimit int `gorm:"column:quiz_time_limit;default:0" json:"quiz_time_limit"`

	// Ambang lulus dalam persen
	QuizPassingScore int `gorm:"column:quiz_passing_score;default:70" json:"quiz_passing_score"`

	QuizMaxAttempts int  `gorm:"column:quiz_max_attempts;default:3" json:"quiz_max_attempts"`
	QuizIsActive    bool `gorm:"column:quiz_is_active;default:true" json:"quiz_is_active"`

	// Posisi quiz di dalam course
	QuizOrder int `gorm:"column:quiz_order;default:0" json:"quiz_order"`

	QuizCreatedAt time.Time      `gorm:"column:quiz_created_at;autoCreateTime" json:"quiz_created_at"`
	QuizUpdatedAt time.Time      `gorm:"column:quiz_updated_at;autoUpdateTime" json:"quiz_updated_at"`
	QuizDeletedAt gorm.DeletedAt `gorm:"column:quiz_deleted_at;index" json:"quiz_deleted_at,omitempty"`

	// Relations (opsional dipakai saat Preload)
	Questions []QuizQuestionModel `gorm:"foreignKey:QuizQuestionQuizID;references:QuizID" json:"questions,omitempty"`
}

// ActiveByCourse membatasi query ke quiz aktif milik satu kursus; dipakai
// semua agregasi progres supaya penyebutnya konsisten.
func ActiveByCourse(courseID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("quiz_course_id = ? AND quiz_is_active = TRUE", courseID)
	}
}

func (QuizModel) TableName() string {
	return "quizzes"
}
