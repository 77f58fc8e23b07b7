package service

import (
	"testing"
	"time"

	"github.com/google/uuid"

	model "kursusku_backend/internals/features/progress/course_progress/model"
)

func lectureRows(watched, total int) []model.LectureProgressModel {
	rows := make([]model.LectureProgressModel, total)
	for i := 0; i < total; i++ {
		rows[i] = model.LectureProgressModel{
			LectureProgressLectureID: uuid.New(),
			LectureProgressWatched:   i < watched,
		}
	}
	return rows
}

func TestRoundPercent(t *testing.T) {
	cases := []struct {
		completed, total, want int
	}{
		{0, 0, 0}, // kursus tanpa lecture
		{0, 4, 0},
		{1, 4, 25},
		{2, 4, 50},
		{3, 4, 75},
		{4, 4, 100},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13}, // 12.5 half-up
	}
	for _, c := range cases {
		if got := RoundPercent(c.completed, c.total); got != c.want {
			t.Errorf("RoundPercent(%d, %d) = %d, want %d", c.completed, c.total, got, c.want)
		}
	}
}

func TestRecomputeCourseProgressWalk(t *testing.T) {
	now := time.Now()
	cp := &model.CourseProgressModel{CourseProgressTotalLectures: 4}

	for _, step := range []struct {
		watched  int
		wantPct  int
		wantCert bool
	}{
		{1, 25, false},
		{2, 50, false},
		{3, 75, false},
		{4, 100, true},
	} {
		RecomputeCourseProgress(cp, lectureRows(step.watched, 4), now)
		if cp.CourseProgressPercent != step.wantPct {
			t.Fatalf("watched=%d: percent = %d, want %d", step.watched, cp.CourseProgressPercent, step.wantPct)
		}
		if cp.CourseProgressCompletedLectures != step.watched {
			t.Fatalf("watched=%d: completed = %d", step.watched, cp.CourseProgressCompletedLectures)
		}
		if cp.CourseProgressCertificateEarned != step.wantCert {
			t.Fatalf("watched=%d: certificate = %v, want %v", step.watched, cp.CourseProgressCertificateEarned, step.wantCert)
		}
	}

	if cp.CourseProgressCompletedAt == nil || cp.CourseProgressCertificateIssuedAt == nil {
		t.Fatal("completed_at / certificate_issued_at harus terisi di 100%")
	}
}

// Transisi 100% hanya sekali: lecture baru menurunkan persentase tapi
// sertifikat dan stempel waktunya tidak berubah.
func TestRecomputeCertificateTransitionIsOneShot(t *testing.T) {
	first := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	later := first.Add(48 * time.Hour)

	cp := &model.CourseProgressModel{CourseProgressTotalLectures: 2}
	RecomputeCourseProgress(cp, lectureRows(2, 2), first)

	if !cp.CourseProgressCertificateEarned {
		t.Fatal("sertifikat harus terbit di 100%")
	}
	issuedAt := *cp.CourseProgressCertificateIssuedAt
	completedAt := *cp.CourseProgressCompletedAt

	// Instruktur menambah lecture ketiga; progres turun ke 67%.
	cp.CourseProgressTotalLectures = 3
	RecomputeCourseProgress(cp, lectureRows(2, 3), later)

	if cp.CourseProgressPercent != 67 {
		t.Errorf("percent = %d, want 67", cp.CourseProgressPercent)
	}
	if !cp.CourseProgressCertificateEarned {
		t.Error("sertifikat tidak boleh dicabut")
	}
	if !cp.CourseProgressCertificateIssuedAt.Equal(issuedAt) {
		t.Error("certificate_issued_at tidak boleh berubah")
	}
	if !cp.CourseProgressCompletedAt.Equal(completedAt) {
		t.Error("completed_at tidak boleh berubah")
	}

	// Menonton ulang sampai 100% lagi juga tidak menggeser stempel.
	RecomputeCourseProgress(cp, lectureRows(3, 3), later.Add(time.Hour))
	if !cp.CourseProgressCertificateIssuedAt.Equal(issuedAt) {
		t.Error("kembali ke 100% tidak boleh menerbitkan ulang sertifikat")
	}
}

// completed_quizzes adalah counter per submit, bukan turunan dari baris
// lecture: recompute tidak boleh menyentuhnya.
func TestRecomputePreservesCompletedQuizzesCounter(t *testing.T) {
	rows := lectureRows(1, 3)
	rows[0].LectureProgressQuizCompleted = true

	cp := &model.CourseProgressModel{
		CourseProgressTotalLectures:    3,
		CourseProgressTotalQuizzes:     3,
		CourseProgressCompletedQuizzes: 5,
	}
	RecomputeCourseProgress(cp, rows, time.Now())

	if cp.CourseProgressCompletedQuizzes != 5 {
		t.Errorf("completedQuizzes = %d, want 5", cp.CourseProgressCompletedQuizzes)
	}
}

// Dua submit untuk lecture yang sama tetap menaikkan counter dua kali;
// counter boleh melewati total_quizzes.
func TestApplyQuizOutcomeIncrementsPerSubmit(t *testing.T) {
	cp := &model.CourseProgressModel{CourseProgressTotalQuizzes: 1}
	row := &model.LectureProgressModel{LectureProgressLectureID: uuid.New()}

	applyQuizOutcome(cp, row, 40, 1)
	applyQuizOutcome(cp, row, 90, 2)

	if cp.CourseProgressCompletedQuizzes != 2 {
		t.Errorf("completedQuizzes = %d, want 2", cp.CourseProgressCompletedQuizzes)
	}
	if !row.LectureProgressQuizCompleted {
		t.Error("quiz_completed harus true setelah submit")
	}
	if row.LectureProgressQuizScore != 90 {
		t.Errorf("quizScore = %d, want skor terakhir 90", row.LectureProgressQuizScore)
	}
	if row.LectureProgressBestQuizScore != 90 || row.LectureProgressQuizAttempts != 2 {
		t.Errorf("best = %d attempts = %d, want 90 / 2", row.LectureProgressBestQuizScore, row.LectureProgressQuizAttempts)
	}

	// Skor turun: best bertahan, skor terakhir mengikuti submit baru.
	applyQuizOutcome(cp, row, 30, 3)
	if row.LectureProgressBestQuizScore != 90 || row.LectureProgressQuizScore != 30 {
		t.Errorf("best = %d latest = %d, want 90 / 30", row.LectureProgressBestQuizScore, row.LectureProgressQuizScore)
	}
	if cp.CourseProgressCompletedQuizzes != 3 {
		t.Errorf("completedQuizzes = %d, want 3", cp.CourseProgressCompletedQuizzes)
	}
}

// completed=true mencap ulang completed_at tiap panggilan; watched tidak
// pernah turun dan watch time mengikuti nilai terakhir.
func TestApplyLectureUpdateRestampsCompletedAt(t *testing.T) {
	first := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	later := first.Add(3 * time.Hour)
	yes := true
	seconds := 120

	target := &model.LectureProgressModel{LectureProgressLectureID: uuid.New()}

	applyLectureUpdate(target, &yes, &seconds, first)
	if !target.LectureProgressWatched || target.LectureProgressCompletedAt == nil {
		t.Fatal("panggilan pertama harus menandai watched + completed_at")
	}
	if !target.LectureProgressCompletedAt.Equal(first) {
		t.Errorf("completed_at = %v, want %v", target.LectureProgressCompletedAt, first)
	}

	newSeconds := 45
	applyLectureUpdate(target, &yes, &newSeconds, later)
	if !target.LectureProgressCompletedAt.Equal(later) {
		t.Errorf("completed_at = %v, want dicap ulang ke %v", target.LectureProgressCompletedAt, later)
	}
	if target.LectureProgressWatchTimeSeconds != 45 {
		t.Errorf("watchTime = %d, want last-write 45", target.LectureProgressWatchTimeSeconds)
	}

	// Tanpa completed, stempel lama bertahan.
	applyLectureUpdate(target, nil, &seconds, later.Add(time.Hour))
	if !target.LectureProgressCompletedAt.Equal(later) {
		t.Error("panggilan tanpa completed tidak boleh menggeser completed_at")
	}
}

func TestMissingLectureIDs(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	existing := []model.LectureProgressModel{
		{LectureProgressLectureID: a},
		{LectureProgressLectureID: b},
	}

	missing := MissingLectureIDs(existing, []uuid.UUID{a, b, c})
	if len(missing) != 1 || missing[0] != c {
		t.Errorf("missing = %v, want [%s]", missing, c)
	}

	if got := MissingLectureIDs(existing, []uuid.UUID{a, b}); got != nil {
		t.Errorf("tidak ada yang hilang, got %v", got)
	}
}

func TestAverageScore(t *testing.T) {
	cases := []struct {
		in   []int
		want int
	}{
		{nil, 0},
		{[]int{80}, 80},
		{[]int{50, 75}, 63}, // 62.5 half-up
		{[]int{100, 100, 70}, 90},
	}
	for _, c := range cases {
		if got := AverageScore(c.in); got != c.want {
			t.Errorf("AverageScore(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}
