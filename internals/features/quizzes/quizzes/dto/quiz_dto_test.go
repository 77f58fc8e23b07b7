package dto

import (
	"testing"

	"github.com/google/uuid"

	model "kursusku_backend/internals/features/quizzes/quizzes/model"
)

func TestQuestionValidate(t *testing.T) {
	tests := []struct {
		name    string
		q       QuizQuestionCreateRequest
		wantMsg bool
	}{
		{
			name: "pilihan ganda valid",
			q: QuizQuestionCreateRequest{
				QuizQuestionType: model.QuestionTypeMultipleChoice,
				QuizQuestionOptions: []QuizOptionInput{
					{Text: "A", IsCorrect: true},
					{Text: "B"},
				},
			},
		},
		{
			name: "pilihan ganda tanpa opsi benar",
			q: QuizQuestionCreateRequest{
				QuizQuestionType: model.QuestionTypeMultipleChoice,
				QuizQuestionOptions: []QuizOptionInput{
					{Text: "A"}, {Text: "B"},
				},
			},
			wantMsg: true,
		},
		{
			name: "true false harus 2 opsi",
			q: QuizQuestionCreateRequest{
				QuizQuestionType: model.QuestionTypeTrueFalse,
				QuizQuestionOptions: []QuizOptionInput{
					{Text: "True", IsCorrect: true},
				},
			},
			wantMsg: true,
		},
		{
			name: "true false valid",
			q: QuizQuestionCreateRequest{
				QuizQuestionType: model.QuestionTypeTrueFalse,
				QuizQuestionOptions: []QuizOptionInput{
					{Text: "True", IsCorrect: true},
					{Text: "False"},
				},
			},
		},
		{
			name: "isian singkat tanpa kunci",
			q: QuizQuestionCreateRequest{
				QuizQuestionType: model.QuestionTypeShortAnswer,
			},
			wantMsg: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.q.Validate()
			if (msg != "") != tt.wantMsg {
				t.Errorf("Validate() = %q, wantMsg=%v", msg, tt.wantMsg)
			}
		})
	}
}

// Snapshot kunci jawaban ikut tersimpan di kolom text[] saat mapping.
func TestQuestionToModelSnapshotsCorrectOptions(t *testing.T) {
	req := QuizQuestionCreateRequest{
		QuizQuestionText: "Pilih yang benar",
		QuizQuestionType: model.QuestionTypeMultipleChoice,
		QuizQuestionOptions: []QuizOptionInput{
			{Text: "A", IsCorrect: true},
			{Text: "B"},
			{Text: "C", IsCorrect: true},
		},
	}

	m := req.ToModel(uuid.New(), 1)
	if len(m.QuizQuestionCorrectOptions) != 2 ||
		m.QuizQuestionCorrectOptions[0] != "A" ||
		m.QuizQuestionCorrectOptions[1] != "C" {
		t.Errorf("correct options snapshot = %v, want [A C]", m.QuizQuestionCorrectOptions)
	}
	if m.QuizQuestionPoints != 1 {
		t.Errorf("default points = %d, want 1", m.QuizQuestionPoints)
	}
	if m.QuizQuestionPosition != 1 {
		t.Errorf("position = %d, want 1", m.QuizQuestionPosition)
	}
}
