package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Status attempt. "abandoned" dideklarasikan untuk intervensi manual/ops;
// tidak ada alur otomatis yang memasukinya (tidak ada timeout sweep).
const (
	AttemptStatusInProgress = "in_progress"
	AttemptStatusCompleted  = "completed"
	AttemptStatusAbandoned  = "abandoned"
)

// GradedAnswer adalah hasil penilaian satu jawaban (disimpan sebagai JSONB).
type GradedAnswer struct {
	QuestionID      uuid.UUID `json:"question_id"`
	SelectedOptions []string  `json:"selected_options,omitempty"`
	TextAnswer      string    `json:"text_answer,omitempty"`
	IsCorrect       bool      `json:"is_correct"`
	Points          int       `json:"points"`
}

type QuizAttemptModel struct {
	QuizAttemptID uuid.UUID `gorm:"column:quiz_attempt_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"quiz_attempt_id"`

	// Relasi (UUID)
	QuizAttemptQuizID    uuid.UUID `gorm:"column:quiz_attempt_quiz_id;type:uuid;not null;uniqueIndex:uq_quiz_attempt_number,priority:2" json:"quiz_attempt_quiz_id"`
	QuizAttemptUserID    uuid.UUID `gorm:"column:quiz_attempt_user_id;type:uuid;not null;uniqueIndex:uq_quiz_attempt_number,priority:1" json:"quiz_attempt_user_id"`
	QuizAttemptCourseID  uuid.UUID `gorm:"column:quiz_attempt_course_id;type:uuid;not null;index" json:"quiz_attempt_course_id"`
	QuizAttemptLectureID uuid.UUID `gorm:"column:quiz_attempt_lecture_id;type:uuid;not null" json:"quiz_attempt_lecture_id"`

	// Penomoran attempt 1-based per (user, quiz); unik bertiga dengan quiz & user.
	// Index unik ini adalah jaring pengaman untuk start yang balapan.
	QuizAttemptNumber int `gorm:"column:quiz_attempt_number;not null;uniqueIndex:uq_quiz_attempt_number,priority:3" json:"quiz_attempt_number"`

	// Hasil penilaian (diisi sekali saat submit)
	QuizAttemptAnswers     datatypes.JSONType[[]GradedAnswer] `gorm:"column:quiz_attempt_answers;type:jsonb" json:"quiz_attempt_answers"`
	QuizAttemptScore       int                                `gorm:"column:quiz_attempt_score;default:0" json:"quiz_attempt_score"`
	QuizAttemptTotalPoints int                                `gorm:"column:quiz_attempt_total_points;default:0" json:"quiz_attempt_total_points"`
	QuizAttemptPercentage  int                                `gorm:"column:quiz_attempt_percentage;default:0" json:"quiz_attempt_percentage"`
	QuizAttemptPassed      bool                               `gorm:"column:quiz_attempt_passed;default:false" json:"quiz_attempt_passed"`

	QuizAttemptTimeSpentSeconds int    `gorm:"column:quiz_attempt_time_spent_seconds;default:0" json:"quiz_attempt_time_spent_seconds"`
	QuizAttemptStatus           string `gorm:"column:quiz_attempt_status;type:varchar(20);not null;default:'in_progress'" json:"quiz_attempt_status"`

	QuizAttemptStartedAt   time.Time  `gorm:"column:quiz_attempt_started_at;autoCreateTime" json:"quiz_attempt_started_at"`
	QuizAttemptCompletedAt *time.Time `gorm:"column:quiz_attempt_completed_at" json:"quiz_attempt_completed_at,omitempty"`
	QuizAttemptCreatedAt   time.Time  `gorm:"column:quiz_attempt_created_at;autoCreateTime" json:"quiz_attempt_created_at"`
	QuizAttemptUpdatedAt   time.Time  `gorm:"column:quiz_attempt_updated_at;autoUpdateTime" json:"quiz_attempt_updated_at"`
}

func (QuizAttemptModel) TableName() string {
	return "quiz_attempts"
}
