package service

import (
	"testing"

	"github.com/google/uuid"

	quizModel "kursusku_backend/internals/features/quizzes/quizzes/model"
	"gorm.io/datatypes"
)

func mcQuestion(id uuid.UUID, points int, correct []string, wrong []string) quizModel.QuizQuestionModel {
	opts := make([]quizModel.QuizOption, 0, len(correct)+len(wrong))
	for _, t := range correct {
		opts = append(opts, quizModel.QuizOption{Text: t, IsCorrect: true})
	}
	for _, t := range wrong {
		opts = append(opts, quizModel.QuizOption{Text: t, IsCorrect: false})
	}
	return quizModel.QuizQuestionModel{
		QuizQuestionID:      id,
		QuizQuestionType:    quizModel.QuestionTypeMultipleChoice,
		QuizQuestionOptions: datatypes.NewJSONType(opts),
		QuizQuestionPoints:  points,
	}
}

func saQuestion(id uuid.UUID, points int, key string) quizModel.QuizQuestionModel {
	return quizModel.QuizQuestionModel{
		QuizQuestionID:            id,
		QuizQuestionType:          quizModel.QuestionTypeShortAnswer,
		QuizQuestionCorrectAnswer: key,
		QuizQuestionPoints:        points,
	}
}

func tfQuestion(id uuid.UUID, points int, correctText, wrongText string) quizModel.QuizQuestionModel {
	return quizModel.QuizQuestionModel{
		QuizQuestionID:   id,
		QuizQuestionType: quizModel.QuestionTypeTrueFalse,
		QuizQuestionOptions: datatypes.NewJSONType([]quizModel.QuizOption{
			{Text: correctText, IsCorrect: true},
			{Text: wrongText, IsCorrect: false},
		}),
		QuizQuestionPoints: points,
	}
}

func TestGradeQuizAggregate(t *testing.T) {
	q1, q2, q3 := uuid.New(), uuid.New(), uuid.New()
	questions := []quizModel.QuizQuestionModel{
		mcQuestion(q1, 1, []string{"Go"}, []string{"Java", "PHP"}),
		mcQuestion(q2, 2, []string{"A", "B"}, []string{"C"}),
		saQuestion(q3, 1, "goroutine"),
	}

	tests := []struct {
		name      string
		submitted []SubmittedAnswer
		wantScore int
		wantTotal int
		wantPct   int
		wantPass  bool
	}{
		{
			name: "correct correct wrong -> 75 passed",
			submitted: []SubmittedAnswer{
				{QuestionID: q1, SelectedOptions: []string{"Go"}},
				{QuestionID: q2, SelectedOptions: []string{"B", "A"}}, // urutan bebas
				{QuestionID: q3, TextAnswer: "channel"},
			},
			wantScore: 3, wantTotal: 4, wantPct: 75, wantPass: true,
		},
		{
			name: "correct wrong correct -> 50 failed",
			submitted: []SubmittedAnswer{
				{QuestionID: q1, SelectedOptions: []string{"Go"}},
				{QuestionID: q2, SelectedOptions: []string{"A"}}, // subset != benar
				{QuestionID: q3, TextAnswer: "  GoRoutine "},
			},
			wantScore: 2, wantTotal: 4, wantPct: 50, wantPass: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := GradeQuiz(questions, tt.submitted, 70)
			if res.Score != tt.wantScore {
				t.Errorf("score = %d, want %d", res.Score, tt.wantScore)
			}
			if res.TotalPoints != tt.wantTotal {
				t.Errorf("totalPoints = %d, want %d", res.TotalPoints, tt.wantTotal)
			}
			if res.Percentage != tt.wantPct {
				t.Errorf("percentage = %d, want %d", res.Percentage, tt.wantPct)
			}
			if res.Passed != tt.wantPass {
				t.Errorf("passed = %v, want %v", res.Passed, tt.wantPass)
			}
			if res.Percentage < 0 || res.Percentage > 100 {
				t.Errorf("percentage %d out of [0,100]", res.Percentage)
			}
		})
	}
}

func TestGradeQuizMultipleChoiceAllOrNothing(t *testing.T) {
	q := uuid.New()
	questions := []quizModel.QuizQuestionModel{
		mcQuestion(q, 3, []string{"A", "B"}, []string{"C", "D"}),
	}

	cases := []struct {
		selected []string
		want     int
	}{
		{[]string{"A", "B"}, 3},
		{[]string{"B", "A"}, 3},
		{[]string{"A"}, 0},          // tidak ada partial credit
		{[]string{"A", "B", "C"}, 0},
		{[]string{"C", "D"}, 0},
		{nil, 0},
	}

	for _, c := range cases {
		res := GradeQuiz(questions, []SubmittedAnswer{{QuestionID: q, SelectedOptions: c.selected}}, 70)
		if res.Score != c.want {
			t.Errorf("selected %v: score = %d, want %d", c.selected, res.Score, c.want)
		}
	}
}

func TestGradeQuizShortAnswerNormalization(t *testing.T) {
	q := uuid.New()
	questions := []quizModel.QuizQuestionModel{saQuestion(q, 1, " Paris ")}

	for _, answer := range []string{"paris", "PARIS", "  Paris  "} {
		res := GradeQuiz(questions, []SubmittedAnswer{{QuestionID: q, TextAnswer: answer}}, 70)
		if res.Score != 1 {
			t.Errorf("answer %q: score = %d, want 1", answer, res.Score)
		}
	}

	res := GradeQuiz(questions, []SubmittedAnswer{{QuestionID: q, TextAnswer: "Par is"}}, 70)
	if res.Score != 0 {
		t.Errorf("fuzzy match tidak boleh lolos: score = %d", res.Score)
	}
}

func TestGradeQuizTrueFalse(t *testing.T) {
	q := uuid.New()
	questions := []quizModel.QuizQuestionModel{tfQuestion(q, 2, "True", "False")}

	if res := GradeQuiz(questions, []SubmittedAnswer{{QuestionID: q, SelectedOptions: []string{"True"}}}, 70); res.Score != 2 {
		t.Errorf("true_false benar: score = %d, want 2", res.Score)
	}
	if res := GradeQuiz(questions, []SubmittedAnswer{{QuestionID: q, SelectedOptions: []string{"False"}}}, 70); res.Score != 0 {
		t.Errorf("true_false salah: score = %d, want 0", res.Score)
	}
}

// Mendokumentasikan perilaku soft-skip: jawaban dengan question id tak dikenal
// diabaikan, dan soal yang tidak dijawab keluar dari penyebut sehingga
// submission parsial dinilai atas subset soal saja.
func TestGradeQuizSoftSkipDenominator(t *testing.T) {
	q1, q2 := uuid.New(), uuid.New()
	questions := []quizModel.QuizQuestionModel{
		mcQuestion(q1, 1, []string{"X"}, []string{"Y"}),
		mcQuestion(q2, 9, []string{"Z"}, []string{"W"}),
	}

	// Hanya q1 dijawab: penyebut jadi 1, persentase 100 walau q2 tak disentuh.
	res := GradeQuiz(questions, []SubmittedAnswer{{QuestionID: q1, SelectedOptions: []string{"X"}}}, 70)
	if res.TotalPoints != 1 || res.Percentage != 100 || !res.Passed {
		t.Errorf("partial submission: total=%d pct=%d passed=%v, want 1/100/true", res.TotalPoints, res.Percentage, res.Passed)
	}

	// Question id asing di-skip tanpa error dan tanpa menyumbang apa pun.
	res = GradeQuiz(questions, []SubmittedAnswer{
		{QuestionID: uuid.New(), SelectedOptions: []string{"X"}},
	}, 70)
	if res.TotalPoints != 0 || res.Percentage != 0 || len(res.Answers) != 0 {
		t.Errorf("unknown question id harus di-skip: total=%d pct=%d answers=%d", res.TotalPoints, res.Percentage, len(res.Answers))
	}
	if res.Passed {
		t.Error("submission kosong tidak boleh lulus dengan passing score 70")
	}
}

func TestRoundPercentage(t *testing.T) {
	cases := []struct {
		score, total, want int
	}{
		{0, 0, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 2, 50},
		{3, 4, 75},
		{5, 8, 63}, // 62.5 dibulatkan ke atas
		{4, 4, 100},
	}
	for _, c := range cases {
		if got := RoundPercentage(c.score, c.total); got != c.want {
			t.Errorf("RoundPercentage(%d, %d) = %d, want %d", c.score, c.total, got, c.want)
		}
	}
}
