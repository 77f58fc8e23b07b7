// internals/features/quizzes/attempts/dto/attempt_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "kursusku_backend/internals/features/quizzes/attempts/model"
	"kursusku_backend/internals/features/quizzes/service"
)

/* =========================
   REQUEST
   ========================= */

type SubmitQuizAttemptRequest struct {
	Answers          []service.SubmittedAnswer `json:"answers" validate:"required,min=1,dive"`
	TimeSpentSeconds *int                      `json:"time_spent_seconds,omitempty" validate:"omitempty,min=0"`
}

/* =========================
   RESPONSE
   ========================= */

type AttemptSummary struct {
	QuizAttemptID    uuid.UUID  `json:"quiz_attempt_id"`
	QuizID           uuid.UUID  `json:"quiz_id"`
	AttemptNumber    int        `json:"attempt_number"`
	Status           string     `json:"status"`
	Score            int        `json:"score"`
	TotalPoints      int        `json:"total_points"`
	Percentage       int        `json:"percentage"`
	Passed           bool       `json:"passed"`
	TimeSpentSeconds int        `json:"time_spent_seconds"`
	StartedAt        time.Time  `json:"started_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

// AnswerReview: satu soal pada halaman review hasil, lengkap dengan kunci
// jawaban dan penjelasan (hanya untuk attempt yang sudah selesai).
type AnswerReview struct {
	QuestionID      uuid.UUID `json:"question_id"`
	QuestionText    string    `json:"question_text"`
	QuestionType    string    `json:"question_type"`
	SelectedOptions []string  `json:"selected_options,omitempty"`
	TextAnswer      string    `json:"text_answer,omitempty"`
	CorrectOptions  []string  `json:"correct_options,omitempty"`
	CorrectAnswer   string    `json:"correct_answer,omitempty"`
	IsCorrect       bool      `json:"is_correct"`
	PointsEarned    int       `json:"points_earned"`
	PointsPossible  int       `json:"points_possible"`
	Explanation     string    `json:"explanation,omitempty"`
}

type QuizResultsResponse struct {
	Attempt AttemptSummary `json:"attempt"`
	Answers []AnswerReview `json:"answers"`
}

/* =========================
   MAPPER
   ========================= */

func ToAttemptSummary(m *model.QuizAttemptModel) AttemptSummary {
	return AttemptSummary{
		QuizAttemptID:    m.QuizAttemptID,
		QuizID:           m.QuizAttemptQuizID,
		AttemptNumber:    m.QuizAttemptNumber,
		Status:           m.QuizAttemptStatus,
		Score:            m.QuizAttemptScore,
		TotalPoints:      m.QuizAttemptTotalPoints,
		Percentage:       m.QuizAttemptPercentage,
		Passed:           m.QuizAttemptPassed,
		TimeSpentSeconds: m.QuizAttemptTimeSpentSeconds,
		StartedAt:        m.QuizAttemptStartedAt,
		CompletedAt:      m.QuizAttemptCompletedAt,
	}
}
