// internals/features/quizzes/quizzes/dto/quiz_dto.go
package dto

import (
	"strings"
	"time"

	model "kursusku_backend/internals/features/quizzes/quizzes/model"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

/* =========================
   REQUEST
   ========================= */

type QuizOptionInput struct {
	Text      string `json:"text" validate:"required,min=1"`
	IsCorrect bool   `json:"is_correct"`
}

type QuizQuestionCreateRequest struct {
	QuizQuestionText          string            `json:"quiz_question_text" validate:"required,min=1"`
	QuizQuestionType          string            `json:"quiz_question_type" validate:"required,oneof=multiple_choice true_false short_answer"`
	QuizQuestionOptions       []QuizOptionInput `json:"quiz_question_options,omitempty" validate:"omitempty,dive"`
	QuizQuestionCorrectAnswer string            `json:"quiz_question_correct_answer,omitempty"`
	QuizQuestionPoints        *int              `json:"quiz_question_points,omitempty" validate:"omitempty,min=1"`
	QuizQuestionExplanation   string            `json:"quiz_question_explanation,omitempty"`
}

type QuizCreateRequest struct {
	QuizCourseID     uuid.UUID                   `json:"quiz_course_id" validate:"required"`
	QuizLectureID    uuid.UUID                   `json:"quiz_lecture_id" validate:"required"`
	QuizTitle        string                      `json:"quiz_title" validate:"required,min=1,max=200"`
	QuizDescription  string                      `json:"quiz_description,omitempty"`
	QuizTimeLimit    *int                        `json:"quiz_time_limit,omitempty" validate:"omitempty,min=0"`
	QuizPassingScore *int                        `json:"quiz_passing_score,omitempty" validate:"omitempty,min=0,max=100"`
	QuizMaxAttempts  *int                        `json:"quiz_max_attempts,omitempty" validate:"omitempty,min=1"`
	Questions        []QuizQuestionCreateRequest `json:"questions" validate:"required,min=1,dive"`
}

type QuizUpdateRequest struct {
	QuizTitle        *string `json:"quiz_title,omitempty" validate:"omitempty,min=1,max=200"`
	QuizDescription  *string `json:"quiz_description,omitempty"`
	QuizTimeLimit    *int    `json:"quiz_time_limit,omitempty" validate:"omitempty,min=0"`
	QuizPassingScore *int    `json:"quiz_passing_score,omitempty" validate:"omitempty,min=0,max=100"`
	QuizMaxAttempts  *int    `json:"quiz_max_attempts,omitempty" validate:"omitempty,min=1"`
	QuizIsActive     *bool   `json:"quiz_is_active,omitempty"`

	// Jika dikirim, seluruh daftar soal diganti (bukan merge per item).
	Questions []QuizQuestionCreateRequest `json:"questions,omitempty" validate:"omitempty,min=1,dive"`
}

/* =========================
   NORMALIZER
   ========================= */

func (q *QuizQuestionCreateRequest) Normalize() {
	q.QuizQuestionText = strings.TrimSpace(q.QuizQuestionText)
	q.QuizQuestionType = strings.TrimSpace(strings.ToLower(q.QuizQuestionType))
	q.QuizQuestionCorrectAnswer = strings.TrimSpace(q.QuizQuestionCorrectAnswer)
	q.QuizQuestionExplanation = strings.TrimSpace(q.QuizQuestionExplanation)
	for i := range q.QuizQuestionOptions {
		q.QuizQuestionOptions[i].Text = strings.TrimSpace(q.QuizQuestionOptions[i].Text)
	}
}

func (r *QuizCreateRequest) Normalize() {
	r.QuizTitle = strings.TrimSpace(r.QuizTitle)
	r.QuizDescription = strings.TrimSpace(r.QuizDescription)
	for i := range r.Questions {
		r.Questions[i].Normalize()
	}
}

func (r *QuizUpdateRequest) Normalize() {
	if r.QuizTitle != nil {
		v := strings.TrimSpace(*r.QuizTitle)
		r.QuizTitle = &v
	}
	if r.QuizDescription != nil {
		v := strings.TrimSpace(*r.QuizDescription)
		r.QuizDescription = &v
	}
	for i := range r.Questions {
		r.Questions[i].Normalize()
	}
}

// Validate memeriksa konsistensi soal yang tidak tercover tag validator:
// pilihan ganda & true/false wajib punya opsi benar, short answer wajib
// punya kunci jawaban.
func (q *QuizQuestionCreateRequest) Validate() string {
	switch q.QuizQuestionType {
	case model.QuestionTypeMultipleChoice:
		if len(q.QuizQuestionOptions) < 2 {
			return "soal pilihan ganda minimal 2 opsi"
		}
		if len(correctTexts(q.QuizQuestionOptions)) == 0 {
			return "soal pilihan ganda harus punya minimal 1 opsi benar"
		}
	case model.QuestionTypeTrueFalse:
		if len(q.QuizQuestionOptions) != 2 {
			return "soal true/false harus punya tepat 2 opsi"
		}
		if len(correctTexts(q.QuizQuestionOptions)) != 1 {
			return "soal true/false harus punya tepat 1 opsi benar"
		}
	case model.QuestionTypeShortAnswer:
		if q.QuizQuestionCorrectAnswer == "" {
			return "soal isian singkat harus punya kunci jawaban"
		}
	}
	return ""
}

func correctTexts(opts []QuizOptionInput) []string {
	out := make([]string, 0, len(opts))
	for _, o := range opts {
		if o.IsCorrect {
			out = append(out, o.Text)
		}
	}
	return out
}

/* =========================
   MAPPER
   ========================= */

func (q *QuizQuestionCreateRequest) ToModel(quizID uuid.UUID, position int) model.QuizQuestionModel {
	opts := make([]model.QuizOption, 0, len(q.QuizQuestionOptions))
	for _, o := range q.QuizQuestionOptions {
		opts = append(opts, model.QuizOption{Text: o.Text, IsCorrect: o.IsCorrect})
	}
	points := 1
	if q.QuizQuestionPoints != nil {
		points = *q.QuizQuestionPoints
	}
	return model.QuizQuestionModel{
		QuizQuestionQuizID:         quizID,
		QuizQuestionText:           q.QuizQuestionText,
		QuizQuestionType:           q.QuizQuestionType,
		QuizQuestionOptions:        datatypes.NewJSONType(opts),
		QuizQuestionCorrectOptions: pq.StringArray(correctTexts(q.QuizQuestionOptions)),
		QuizQuestionCorrectAnswer:  q.QuizQuestionCorrectAnswer,
		QuizQuestionPoints:         points,
		QuizQuestionExplanation:    q.QuizQuestionExplanation,
		QuizQuestionPosition:       position,
	}
}

func (r *QuizCreateRequest) ToModel() *model.QuizModel {
	m := &model.QuizModel{
		QuizCourseID:    r.QuizCourseID,
		QuizLectureID:   r.QuizLectureID,
		QuizTitle:       r.QuizTitle,
		QuizDescription: r.QuizDescription,
	}
	if r.QuizTimeLimit != nil {
		m.QuizTimeLimit = *r.QuizTimeLimit
	}
	if r.QuizPassingScore != nil {
		m.QuizPassingScore = *r.QuizPassingScore
	} else {
		m.QuizPassingScore = 70
	}
	if r.QuizMaxAttempts != nil {
		m.QuizMaxAttempts = *r.QuizMaxAttempts
	} else {
		m.QuizMaxAttempts = 3
	}
	m.QuizIsActive = true
	return m
}

func (r *QuizUpdateRequest) ApplyToModel(m *model.QuizModel) {
	if r.QuizTitle != nil {
		m.QuizTitle = *r.QuizTitle
	}
	if r.QuizDescription != nil {
		m.QuizDescription = *r.QuizDescription
	}
	if r.QuizTimeLimit != nil {
		m.QuizTimeLimit = *r.QuizTimeLimit
	}
	if r.QuizPassingScore != nil {
		m.QuizPassingScore = *r.QuizPassingScore
	}
	if r.QuizMaxAttempts != nil {
		m.QuizMaxAttempts = *r.QuizMaxAttempts
	}
	if r.QuizIsActive != nil {
		m.QuizIsActive = *r.QuizIsActive
	}
}

/* =========================
   RESPONSE
   ========================= */

type QuizOptionResponse struct {
	Text      string `json:"text"`
	IsCorrect *bool  `json:"is_correct,omitempty"` // hanya diisi untuk pemilik kursus
}

type QuizQuestionResponse struct {
	QuizQuestionID            uuid.UUID            `json:"quiz_question_id"`
	QuizQuestionText          string               `json:"quiz_question_text"`
	QuizQuestionType          string               `json:"quiz_question_type"`
	QuizQuestionOptions       []QuizOptionResponse `json:"quiz_question_options,omitempty"`
	QuizQuestionCorrectAnswer string               `json:"quiz_question_correct_answer,omitempty"`
	QuizQuestionPoints        int                  `json:"quiz_question_points"`
	QuizQuestionExplanation   string               `json:"quiz_question_explanation,omitempty"`
	QuizQuestionPosition      int                  `json:"quiz_question_position"`
}

type QuizResponse struct {
	QuizID           uuid.UUID              `json:"quiz_id"`
	QuizCourseID     uuid.UUID              `json:"quiz_course_id"`
	QuizLectureID    uuid.UUID              `json:"quiz_lecture_id"`
	QuizTitle        string                 `json:"quiz_title"`
	QuizDescription  string                 `json:"quiz_description,omitempty"`
	QuizTimeLimit    int                    `json:"quiz_time_limit"`
	QuizPassingScore int                    `json:"quiz_passing_score"`
	QuizMaxAttempts  int                    `json:"quiz_max_attempts"`
	QuizIsActive     bool                   `json:"quiz_is_active"`
	QuizOrder        int                    `json:"quiz_order"`
	QuizCreatedAt    time.Time              `json:"quiz_created_at"`
	QuizUpdatedAt    time.Time              `json:"quiz_updated_at"`
	Questions        []QuizQuestionResponse `json:"questions,omitempty"`
}

// QuizListItem dipakai listing per kursus (tanpa soal, hanya ringkasan).
type QuizListItem struct {
	QuizID           uuid.UUID `json:"quiz_id"`
	QuizLectureID    uuid.UUID `json:"quiz_lecture_id"`
	QuizTitle        string    `json:"quiz_title"`
	QuizTimeLimit    int       `json:"quiz_time_limit"`
	QuizPassingScore int       `json:"quiz_passing_score"`
	QuizMaxAttempts  int       `json:"quiz_max_attempts"`
	QuizIsActive     bool      `json:"quiz_is_active"`
	QuizOrder        int       `json:"quiz_order"`
	TotalQuestions   int       `json:"total_questions"`
}

/* =========================
   MAPPER (response)
   ========================= */

// ToQuizQuestionResponse memetakan soal ke response. includeAnswers=false
// menyembunyikan kunci jawaban, penjelasan, dan flag benar pada opsi
// (tampilan siswa sebelum/selama attempt).
func ToQuizQuestionResponse(m *model.QuizQuestionModel, includeAnswers bool) QuizQuestionResponse {
	resp := QuizQuestionResponse{
		QuizQuestionID:       m.QuizQuestionID,
		QuizQuestionText:     m.QuizQuestionText,
		QuizQuestionType:     m.QuizQuestionType,
		QuizQuestionPoints:   m.QuizQuestionPoints,
		QuizQuestionPosition: m.QuizQuestionPosition,
	}
	for _, o := range m.QuizQuestionOptions.Data() {
		item := QuizOptionResponse{Text: o.Text}
		if includeAnswers {
			v := o.IsCorrect
			item.IsCorrect = &v
		}
		resp.QuizQuestionOptions = append(resp.QuizQuestionOptions, item)
	}
	if includeAnswers {
		resp.QuizQuestionCorrectAnswer = m.QuizQuestionCorrectAnswer
		resp.QuizQuestionExplanation = m.QuizQuestionExplanation
	}
	return resp
}

func ToQuizResponse(m *model.QuizModel, includeAnswers bool) QuizResponse {
	resp := QuizResponse{
		QuizID:           m.QuizID,
		QuizCourseID:     m.QuizCourseID,
		QuizLectureID:    m.QuizLectureID,
		QuizTitle:        m.QuizTitle,
		QuizDescription:  m.QuizDescription,
		QuizTimeLimit:    m.QuizTimeLimit,
		QuizPassingScore: m.QuizPassingScore,
		QuizMaxAttempts:  m.QuizMaxAttempts,
		QuizIsActive:     m.QuizIsActive,
		QuizOrder:        m.QuizOrder,
		QuizCreatedAt:    m.QuizCreatedAt,
		QuizUpdatedAt:    m.QuizUpdatedAt,
	}
	for i := range m.Questions {
		resp.Questions = append(resp.Questions, ToQuizQuestionResponse(&m.Questions[i], includeAnswers))
	}
	return resp
}

func ToQuizListItem(m *model.QuizModel) QuizListItem {
	return QuizListItem{
		QuizID:           m.QuizID,
		QuizLectureID:    m.QuizLectureID,
		QuizTitle:        m.QuizTitle,
		QuizTimeLimit:    m.QuizTimeLimit,
		QuizPassingScore: m.QuizPassingScore,
		QuizMaxAttempts:  m.QuizMaxAttempts,
		QuizIsActive:     m.QuizIsActive,
		QuizOrder:        m.QuizOrder,
		TotalQuestions:   len(m.Questions),
	}
}
