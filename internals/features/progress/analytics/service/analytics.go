// internals/features/progress/analytics/service/analytics.go
package service

import (
	"math"
	"time"

	"github.com/google/uuid"

	courseModel "kursusku_backend/internals/features/courses/courses/model"
	progressModel "kursusku_backend/internals/features/progress/course_progress/model"
	attemptModel "kursusku_backend/internals/features/quizzes/attempts/model"
)

// Siswa dihitung aktif kalau terakhir mengakses kursus dalam 7 hari.
const activeWindow = 7 * 24 * time.Hour

type LectureAnalytics struct {
	LectureID          uuid.UUID `json:"lecture_id"`
	LectureTitle       string    `json:"lecture_title"`
	WatchedCount       int       `json:"watched_count"`
	AvgWatchTime       int       `json:"avg_watch_time_seconds"`
	QuizCompletionRate int       `json:"quiz_completion_rate"`
}

type CourseAnalytics struct {
	CourseID           uuid.UUID          `json:"course_id"`
	TotalEnrollments   int                `json:"total_enrollments"`
	ActiveStudents     int                `json:"active_students"`
	AverageProgress    int                `json:"average_progress"`
	CompletionRate     int                `json:"completion_rate"`
	AverageQuizScore   int                `json:"average_quiz_score"`
	TotalQuizAttempts  int                `json:"total_quiz_attempts"`
	CertificatesIssued int                `json:"certificates_issued"`
	Lectures           []LectureAnalytics `json:"lectures"`
}

func roundRatio(num, den int) int {
	if den <= 0 {
		return 0
	}
	return int(math.Round(float64(num) / float64(den) * 100))
}

// BuildCourseAnalytics merangkum rollup instruktur dari baris yang sudah
// dimuat. Murni di memori supaya formulanya gampang diuji tanpa DB.
func BuildCourseAnalytics(
	courseID uuid.UUID,
	lectures []courseModel.LectureModel,
	enrollments []progressModel.CourseProgressModel,
	lectureRows []progressModel.LectureProgressModel,
	attempts []attemptModel.QuizAttemptModel,
	now time.Time,
) CourseAnalytics {
	out := CourseAnalytics{
		CourseID:         courseID,
		TotalEnrollments: len(enrollments),
	}

	progressSum := 0
	atHundred := 0
	for i := range enrollments {
		cp := &enrollments[i]
		progressSum += cp.CourseProgressPercent
		if now.Sub(cp.CourseProgressLastAccessedAt) <= activeWindow {
			out.ActiveStudents++
		}
		if cp.CourseProgressCertificateEarned {
			out.CertificatesIssued++
		}
		if cp.CourseProgressPercent == 100 {
			atHundred++
		}
	}
	if len(enrollments) > 0 {
		out.AverageProgress = int(math.Round(float64(progressSum) / float64(len(enrollments))))
	}
	// Completion rate mengikuti persentase saat ini, bukan sertifikat:
	// keduanya bisa beda kalau lecture baru menurunkan progres lama.
	out.CompletionRate = roundRatio(atHundred, len(enrollments))

	// Penyebut rata-rata = SEMUA attempt: yang in_progress menyumbang
	// persentase default 0, persis perhitungan aslinya.
	scoreSum := 0
	for i := range attempts {
		out.TotalQuizAttempts++
		scoreSum += attempts[i].QuizAttemptPercentage
	}
	if len(attempts) > 0 {
		out.AverageQuizScore = int(math.Round(float64(scoreSum) / float64(len(attempts))))
	}

	type lectureAgg struct {
		watched       int
		watchTimeSum  int
		watchTimeRows int
		quizDone      int
	}
	aggs := make(map[uuid.UUID]*lectureAgg, len(lectures))
	for i := range lectures {
		aggs[lectures[i].LectureID] = &lectureAgg{}
	}
	for i := range lectureRows {
		agg := aggs[lectureRows[i].LectureProgressLectureID]
		if agg == nil {
			continue
		}
		agg.watchTimeSum += lectureRows[i].LectureProgressWatchTimeSeconds
		agg.watchTimeRows++
		if lectureRows[i].LectureProgressWatched {
			agg.watched++
		}
		if lectureRows[i].LectureProgressQuizCompleted {
			agg.quizDone++
		}
	}

	out.Lectures = make([]LectureAnalytics, 0, len(lectures))
	for i := range lectures {
		agg := aggs[lectures[i].LectureID]
		item := LectureAnalytics{
			LectureID:    lectures[i].LectureID,
			LectureTitle: lectures[i].LectureTitle,
			WatchedCount: agg.watched,
		}
		if agg.watchTimeRows > 0 {
			item.AvgWatchTime = int(math.Round(float64(agg.watchTimeSum) / float64(agg.watchTimeRows)))
		}
		item.QuizCompletionRate = roundRatio(agg.quizDone, len(enrollments))
		out.Lectures = append(out.Lectures, item)
	}

	return out
}
