package service

import (
	"testing"
	"time"

	"github.com/google/uuid"

	courseModel "kursusku_backend/internals/features/courses/courses/model"
	progressModel "kursusku_backend/internals/features/progress/course_progress/model"
	attemptModel "kursusku_backend/internals/features/quizzes/attempts/model"
)

func TestBuildCourseAnalytics(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	courseID := uuid.New()
	lec1, lec2 := uuid.New(), uuid.New()

	lectures := []courseModel.LectureModel{
		{LectureID: lec1, LectureTitle: "Pengenalan"},
		{LectureID: lec2, LectureTitle: "Praktik"},
	}

	cpActive := progressModel.CourseProgressModel{
		CourseProgressID:             uuid.New(),
		CourseProgressPercent:        100,
		CourseProgressCertificateEarned: true,
		CourseProgressLastAccessedAt: now.Add(-2 * 24 * time.Hour),
	}
	cpIdle := progressModel.CourseProgressModel{
		CourseProgressID:             uuid.New(),
		CourseProgressPercent:        50,
		CourseProgressLastAccessedAt: now.Add(-10 * 24 * time.Hour),
	}
	cpFresh := progressModel.CourseProgressModel{
		CourseProgressID:             uuid.New(),
		CourseProgressPercent:        25,
		CourseProgressLastAccessedAt: now.Add(-6 * 24 * time.Hour),
	}
	enrollments := []progressModel.CourseProgressModel{cpActive, cpIdle, cpFresh}

	lectureRows := []progressModel.LectureProgressModel{
		{LectureProgressCourseProgressID: cpActive.CourseProgressID, LectureProgressLectureID: lec1, LectureProgressWatched: true, LectureProgressWatchTimeSeconds: 300, LectureProgressQuizCompleted: true},
		{LectureProgressCourseProgressID: cpActive.CourseProgressID, LectureProgressLectureID: lec2, LectureProgressWatched: true, LectureProgressWatchTimeSeconds: 500},
		{LectureProgressCourseProgressID: cpIdle.CourseProgressID, LectureProgressLectureID: lec1, LectureProgressWatched: true, LectureProgressWatchTimeSeconds: 100},
		{LectureProgressCourseProgressID: cpFresh.CourseProgressID, LectureProgressLectureID: lec1, LectureProgressWatchTimeSeconds: 50},
	}

	attempts := []attemptModel.QuizAttemptModel{
		{QuizAttemptStatus: attemptModel.AttemptStatusCompleted, QuizAttemptPercentage: 80},
		{QuizAttemptStatus: attemptModel.AttemptStatusCompleted, QuizAttemptPercentage: 50},
		{QuizAttemptStatus: attemptModel.AttemptStatusInProgress},
	}

	got := BuildCourseAnalytics(courseID, lectures, enrollments, lectureRows, attempts, now)

	if got.TotalEnrollments != 3 {
		t.Errorf("enrollments = %d, want 3", got.TotalEnrollments)
	}
	// Aktif: diakses <= 7 hari (cpActive & cpFresh).
	if got.ActiveStudents != 2 {
		t.Errorf("activeStudents = %d, want 2", got.ActiveStudents)
	}
	// (100+50+25)/3 = 58.33 -> 58
	if got.AverageProgress != 58 {
		t.Errorf("averageProgress = %d, want 58", got.AverageProgress)
	}
	// 1 sertifikat dari 3 -> 33%
	if got.CertificatesIssued != 1 || got.CompletionRate != 33 {
		t.Errorf("certificates = %d completionRate = %d, want 1 / 33", got.CertificatesIssued, got.CompletionRate)
	}
	if got.TotalQuizAttempts != 3 {
		t.Errorf("totalQuizAttempts = %d, want 3", got.TotalQuizAttempts)
	}
	// Attempt in_progress menyumbang 0: (80+50+0)/3 = 43.33 -> 43.
	if got.AverageQuizScore != 43 {
		t.Errorf("averageQuizScore = %d, want 43", got.AverageQuizScore)
	}

	if len(got.Lectures) != 2 {
		t.Fatalf("lectures = %d, want 2", len(got.Lectures))
	}
	l1 := got.Lectures[0]
	if l1.WatchedCount != 2 {
		t.Errorf("lecture1 watched = %d, want 2", l1.WatchedCount)
	}
	// (300+100+50)/3 = 150
	if l1.AvgWatchTime != 150 {
		t.Errorf("lecture1 avgWatchTime = %d, want 150", l1.AvgWatchTime)
	}
	// 1 dari 3 siswa menuntaskan quiz lecture1 -> 33%
	if l1.QuizCompletionRate != 33 {
		t.Errorf("lecture1 quizCompletionRate = %d, want 33", l1.QuizCompletionRate)
	}

	l2 := got.Lectures[1]
	if l2.WatchedCount != 1 || l2.AvgWatchTime != 500 || l2.QuizCompletionRate != 0 {
		t.Errorf("lecture2 = %+v", l2)
	}
}

func TestBuildCourseAnalyticsEmptyCourse(t *testing.T) {
	got := BuildCourseAnalytics(uuid.New(), nil, nil, nil, nil, time.Now())
	if got.TotalEnrollments != 0 || got.AverageProgress != 0 || got.CompletionRate != 0 || got.AverageQuizScore != 0 {
		t.Errorf("kursus kosong harus serba nol: %+v", got)
	}
	if len(got.Lectures) != 0 {
		t.Errorf("lectures = %d, want 0", len(got.Lectures))
	}
}
