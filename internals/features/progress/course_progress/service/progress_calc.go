// internals/features/progress/course_progress/service/progress_calc.go
package service

import (
	"math"
	"time"

	"github.com/google/uuid"

	model "kursusku_backend/internals/features/progress/course_progress/model"
)

// RoundPercent membulatkan completed/total ke persen terdekat (half-up).
// total <= 0 menghasilkan 0, bukan error: kursus tanpa lecture dianggap
// belum ada progres.
func RoundPercent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// RecomputeCourseProgress menghitung ulang agregat lecture dari baris
// lecture progress (bukan increment), lalu menerapkan transisi
// sertifikat. completed_quizzes TIDAK dihitung ulang di sini: itu
// counter yang naik setiap submit (bisa melewati total quiz) dan harus
// selamat dari recompute. Transisi 100% hanya terjadi sekali:
// completed_at, certificate_earned, dan certificate_issued_at tidak
// pernah berubah setelah terisi, walau persentase turun lagi karena
// lecture baru ditambahkan.
func RecomputeCourseProgress(cp *model.CourseProgressModel, lectures []model.LectureProgressModel, now time.Time) {
	completedLectures := 0
	for i := range lectures {
		if lectures[i].LectureProgressWatched {
			completedLectures++
		}
	}

	cp.CourseProgressCompletedLectures = completedLectures
	cp.CourseProgressPercent = RoundPercent(completedLectures, cp.CourseProgressTotalLectures)
	cp.CourseProgressLastAccessedAt = now

	if cp.CourseProgressPercent == 100 && !cp.CourseProgressCertificateEarned {
		cp.CourseProgressCompletedAt = &now
		cp.CourseProgressCertificateEarned = true
		cp.CourseProgressCertificateIssuedAt = &now
	}
}

// applyLectureUpdate menerapkan payload update ke satu baris lecture
// progress. completed=true selalu menandai watched dan mencap ulang
// completed_at dengan waktu panggilan terakhir; watch time
// last-write-wins mengikuti posisi tonton terakhir dari klien.
func applyLectureUpdate(target *model.LectureProgressModel, completed *bool, watchTimeSeconds *int, now time.Time) {
	if completed != nil && *completed {
		target.LectureProgressWatched = true
		target.LectureProgressCompletedAt = &now
	}
	if watchTimeSeconds != nil {
		target.LectureProgressWatchTimeSeconds = *watchTimeSeconds
	}
}

// applyQuizOutcome mencatat hasil satu submit quiz: baris lecture
// menyimpan skor terakhir, skor terbaik, dan nomor attempt, sementara
// completed_quizzes agregat naik satu SETIAP submit. Counter itu
// menghitung submit, bukan lecture unik, jadi bisa melewati
// total_quizzes kalau user mengulang quiz yang sama.
func applyQuizOutcome(cp *model.CourseProgressModel, row *model.LectureProgressModel, percentage, attemptNumber int) {
	row.LectureProgressQuizCompleted = true
	row.LectureProgressQuizScore = percentage
	row.LectureProgressQuizAttempts = attemptNumber
	if percentage > row.LectureProgressBestQuizScore {
		row.LectureProgressBestQuizScore = percentage
	}
	cp.CourseProgressCompletedQuizzes++
}

// MissingLectureIDs mengembalikan id lecture kursus yang belum punya
// baris progress (lecture ditambahkan setelah user enroll).
func MissingLectureIDs(existing []model.LectureProgressModel, lectureIDs []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(existing))
	for i := range existing {
		seen[existing[i].LectureProgressLectureID] = struct{}{}
	}
	var missing []uuid.UUID
	for _, id := range lectureIDs {
		if _, ok := seen[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

// AverageScore merata-ratakan persentase attempt, dibulatkan half-up.
// Tanpa attempt hasilnya 0.
func AverageScore(percentages []int) int {
	if len(percentages) == 0 {
		return 0
	}
	sum := 0
	for _, p := range percentages {
		sum += p
	}
	return int(math.Round(float64(sum) / float64(len(percentages))))
}
