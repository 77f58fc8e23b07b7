package service

import (
	"math"
	"strings"

	"github.com/google/uuid"

	attemptModel "kursusku_backend/internals/features/quizzes/attempts/model"
	quizModel "kursusku_backend/internals/features/quizzes/quizzes/model"
)

// SubmittedAnswer adalah jawaban mentah satu soal dari request submit.
type SubmittedAnswer struct {
	QuestionID      uuid.UUID `json:"question_id" validate:"required"`
	SelectedOptions []string  `json:"selected_options"`
	TextAnswer      string    `json:"text_answer"`
}

// GradeResult adalah agregat hasil penilaian satu submission.
type GradeResult struct {
	Answers     []attemptModel.GradedAnswer
	Score       int
	TotalPoints int
	Percentage  int
	Passed      bool
}

// GradeQuiz menilai submission terhadap daftar soal. Murni terhadap inputnya.
//
// Jawaban yang menunjuk soal tak dikenal di-skip diam-diam. TotalPoints hanya
// menghitung soal yang ada jawabannya — soal yang tidak dijawab tidak masuk
// penyebut, jadi submission parsial menghasilkan persentase atas subset soal.
// Perilaku ini disengaja dipertahankan; lihat properti di grader_test.go.
func GradeQuiz(questions []quizModel.QuizQuestionModel, submitted []SubmittedAnswer, passingScore int) GradeResult {
	byID := make(map[uuid.UUID]quizModel.QuizQuestionModel, len(questions))
	for _, q := range questions {
		byID[q.QuizQuestionID] = q
	}

	res := GradeResult{Answers: make([]attemptModel.GradedAnswer, 0, len(submitted))}

	for _, ans := range submitted {
		q, ok := byID[ans.QuestionID]
		if !ok {
			continue
		}

		res.TotalPoints += q.QuizQuestionPoints

		correct := false
		switch q.QuizQuestionType {
		case quizModel.QuestionTypeMultipleChoice:
			correct = gradeMultipleChoice(ans.SelectedOptions, q.CorrectOptionTexts())
		case quizModel.QuestionTypeTrueFalse:
			correct = gradeTrueFalse(ans.SelectedOptions, q.CorrectOptionTexts())
		case quizModel.QuestionTypeShortAnswer:
			correct = gradeShortAnswer(ans.TextAnswer, q.QuizQuestionCorrectAnswer)
		}

		earned := 0
		if correct {
			earned = q.QuizQuestionPoints
			res.Score += earned
		}

		res.Answers = append(res.Answers, attemptModel.GradedAnswer{
			QuestionID:      ans.QuestionID,
			SelectedOptions: ans.SelectedOptions,
			TextAnswer:      ans.TextAnswer,
			IsCorrect:       correct,
			Points:          earned,
		})
	}

	res.Percentage = RoundPercentage(res.Score, res.TotalPoints)
	res.Passed = res.Percentage >= passingScore
	return res
}

// gradeMultipleChoice: benar iff himpunan teks terpilih sama persis dengan
// himpunan teks opsi benar (ukuran + anggota, urutan bebas). All-or-nothing.
func gradeMultipleChoice(selected, correct []string) bool {
	if len(selected) != len(correct) {
		return false
	}
	set := make(map[string]struct{}, len(correct))
	for _, t := range correct {
		set[t] = struct{}{}
	}
	for _, t := range selected {
		if _, ok := set[t]; !ok {
			return false
		}
	}
	return true
}

// gradeTrueFalse: benar iff pilihan memuat teks opsi yang benar.
func gradeTrueFalse(selected, correct []string) bool {
	if len(correct) == 0 {
		return false
	}
	for _, t := range selected {
		if t == correct[0] {
			return true
		}
	}
	return false
}

// gradeShortAnswer: trim + case-insensitive equality. Tanpa fuzzy matching.
func gradeShortAnswer(answer, key string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(key))
}

// RoundPercentage: round(score/total*100) half-up; 0 kalau total 0.
func RoundPercentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(total) * 100))
}
