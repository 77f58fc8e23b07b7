// internals/features/progress/course_progress/dto/progress_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "kursusku_backend/internals/features/progress/course_progress/model"
)

/* =========================
   REQUEST
   ========================= */

type UpdateLectureProgressRequest struct {
	Completed        *bool `json:"completed,omitempty"`
	WatchTimeSeconds *int  `json:"watch_time_seconds,omitempty" validate:"omitempty,min=0"`
}

/* =========================
   RESPONSE
   ========================= */

// LectureQuizStats dihitung saat baca: snapshot attempt user pada quiz
// lecture ini, tidak disimpan di tabel progress.
type LectureQuizStats struct {
	QuizID       uuid.UUID `json:"quiz_id"`
	MaxAttempts  int       `json:"max_attempts"`
	AttemptsUsed int       `json:"attempts_used"`
	BestScore    int       `json:"best_score"`
	Passed       bool      `json:"passed"`
}

type LectureProgressResponse struct {
	LectureProgressID uuid.UUID  `json:"lecture_progress_id"`
	LectureID         uuid.UUID  `json:"lecture_id"`
	Watched           bool       `json:"watched"`
	WatchTimeSeconds  int        `json:"watch_time_seconds"`
	QuizCompleted     bool       `json:"quiz_completed"`
	QuizScore         int        `json:"quiz_score"`
	QuizAttempts      int        `json:"quiz_attempts"`
	BestQuizScore     int        `json:"best_quiz_score"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`

	Quiz *LectureQuizStats `json:"quiz,omitempty"`
}

// CourseQuizStats: ringkasan attempt user se-kursus, dihitung saat baca.
type CourseQuizStats struct {
	TotalQuizzes      int `json:"total_quizzes"`
	TotalAttempts     int `json:"total_attempts"`
	CompletedAttempts int `json:"completed_attempts"`
	AverageScore      int `json:"average_score"`
}

type CourseProgressResponse struct {
	CourseProgressID    uuid.UUID  `json:"course_progress_id"`
	UserID              uuid.UUID  `json:"user_id"`
	CourseID            uuid.UUID  `json:"course_id"`
	TotalLectures       int        `json:"total_lectures"`
	CompletedLectures   int        `json:"completed_lectures"`
	TotalQuizzes        int        `json:"total_quizzes"`
	CompletedQuizzes    int        `json:"completed_quizzes"`
	CourseProgress      int        `json:"course_progress"`
	AverageQuizScore    int        `json:"average_quiz_score"`
	CompletedAt         *time.Time `json:"completed_at,omitempty"`
	CertificateEarned   bool       `json:"certificate_earned"`
	CertificateIssuedAt *time.Time `json:"certificate_issued_at,omitempty"`
	LastAccessedAt      time.Time  `json:"last_accessed_at"`

	QuizStats *CourseQuizStats          `json:"quiz_stats,omitempty"`
	Lectures  []LectureProgressResponse `json:"lectures,omitempty"`
}

// UserProgressItem: satu baris di daftar progres lintas kursus milik user.
type UserProgressItem struct {
	CourseID          uuid.UUID `json:"course_id"`
	CourseTitle       string    `json:"course_title"`
	CourseProgress    int       `json:"course_progress"`
	CompletedLectures int       `json:"completed_lectures"`
	TotalLectures     int       `json:"total_lectures"`
	CertificateEarned bool      `json:"certificate_earned"`
	LastAccessedAt    time.Time `json:"last_accessed_at"`
}

/* =========================
   MAPPER
   ========================= */

func ToLectureProgressResponse(m *model.LectureProgressModel, quiz *LectureQuizStats) LectureProgressResponse {
	return LectureProgressResponse{
		LectureProgressID: m.LectureProgressID,
		LectureID:         m.LectureProgressLectureID,
		Watched:           m.LectureProgressWatched,
		WatchTimeSeconds:  m.LectureProgressWatchTimeSeconds,
		QuizCompleted:     m.LectureProgressQuizCompleted,
		QuizScore:         m.LectureProgressQuizScore,
		QuizAttempts:      m.LectureProgressQuizAttempts,
		BestQuizScore:     m.LectureProgressBestQuizScore,
		CompletedAt:       m.LectureProgressCompletedAt,
		Quiz:              quiz,
	}
}

func ToCourseProgressResponse(m *model.CourseProgressModel, quizStats map[uuid.UUID]*LectureQuizStats) CourseProgressResponse {
	resp := CourseProgressResponse{
		CourseProgressID:    m.CourseProgressID,
		UserID:              m.CourseProgressUserID,
		CourseID:            m.CourseProgressCourseID,
		TotalLectures:       m.CourseProgressTotalLectures,
		CompletedLectures:   m.CourseProgressCompletedLectures,
		TotalQuizzes:        m.CourseProgressTotalQuizzes,
		CompletedQuizzes:    m.CourseProgressCompletedQuizzes,
		CourseProgress:      m.CourseProgressPercent,
		AverageQuizScore:    m.CourseProgressAverageQuizScore,
		CompletedAt:         m.CourseProgressCompletedAt,
		CertificateEarned:   m.CourseProgressCertificateEarned,
		CertificateIssuedAt: m.CourseProgressCertificateIssuedAt,
		LastAccessedAt:      m.CourseProgressLastAccessedAt,
	}
	for i := range m.Lectures {
		var stats *LectureQuizStats
		if quizStats != nil {
			stats = quizStats[m.Lectures[i].LectureProgressLectureID]
		}
		resp.Lectures = append(resp.Lectures, ToLectureProgressResponse(&m.Lectures[i], stats))
	}
	return resp
}
