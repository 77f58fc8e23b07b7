package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Tipe soal yang didukung engine grading.
const (
	QuestionTypeMultipleChoice = "multiple_choice"
	QuestionTypeTrueFalse      = "true_false"
	QuestionTypeShortAnswer    = "short_answer"
)

// QuizOption adalah satu pilihan jawaban (disimpan sebagai JSONB).
type QuizOption struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

type QuizQuestionModel struct {
	QuizQuestionID     uuid.UUID `gorm:"column:quiz_question_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"quiz_question_id"`
	QuizQuestionQuizID uuid.UUID `gorm:"column:quiz_question_quiz_id;type:uuid;not null;index" json:"quiz_question_quiz_id"`

	QuizQuestionText string `gorm:"column:quiz_question_text;type:text;not null" json:"quiz_question_text"`
	QuizQuestionType string `gorm:"column:quiz_question_type;type:varchar(20);not null;default:'multiple_choice'" json:"quiz_question_type"`

	// Pilihan jawaban (multiple_choice / true_false)
	QuizQuestionOptions datatypes.JSONType[[]QuizOption] `gorm:"column:quiz_question_options;type:jsonb" json:"quiz_question_options"`

	// Snapshot teks opsi yang benar — dipakai grader tanpa parse ulang JSONB.
	// Diisi controller saat create/update dari options.
	QuizQuestionCorrectOptions pq.StringArray `gorm:"column:quiz_question_correct_options;type:text[]" json:"-"`

	// Kunci jawaban short_answer
	QuizQuestionCorrectAnswer string `gorm:"column:quiz_question_correct_answer;type:text" json:"quiz_question_correct_answer,omitempty"`

	QuizQuestionPoints      int    `gorm:"column:quiz_question_points;default:1" json:"quiz_question_points"`
	QuizQuestionExplanation string `gorm:"column:quiz_question_explanation;type:text" json:"quiz_question_explanation,omitempty"`
	QuizQuestionPosition    int    `gorm:"column:quiz_question_position;default:0" json:"quiz_question_position"`

	QuizQuestionCreatedAt time.Time `gorm:"column:quiz_question_created_at;autoCreateTime" json:"quiz_question_created_at"`
	QuizQuestionUpdatedAt time.Time `gorm:"column:quiz_question_updated_at;autoUpdateTime" json:"quiz_question_updated_at"`
}

func (QuizQuestionModel) TableName() string {
	return "quiz_questions"
}

// CorrectOptionTexts mengembalikan teks opsi benar; pakai snapshot kalau ada,
// fallback ke options JSONB.
func (q QuizQuestionModel) CorrectOptionTexts() []string {
	if len(q.QuizQuestionCorrectOptions) > 0 {
		return q.QuizQuestionCorrectOptions
	}
	var out []string
	for _, opt := range q.QuizQuestionOptions.Data() {
		if opt.IsCorrect {
			out = append(out, opt.Text)
		}
	}
	return out
}
