// internals/features/progress/course_progress/model/course_progress_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// CourseProgressModel adalah agregat progres satu user pada satu kursus.
// Baris ini dibuat saat enroll (initialize) dan menjadi satu-satunya
// sumber kebenaran progres; angka turunannya dihitung ulang dari awal
// setiap kali ada perubahan, bukan di-increment buta.
type CourseProgressModel struct {
	CourseProgressID       uuid.UUID  `gorm:"column:course_progress_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"course_progress_id"`
	CourseProgressUserID   uuid.UUID  `gorm:"column:course_progress_user_id;type:uuid;not null;uniqueIndex:uq_course_progress_user_course,priority:1" json:"course_progress_user_id"`
	CourseProgressCourseID uuid.UUID  `gorm:"column:course_progress_course_id;type:uuid;not null;uniqueIndex:uq_course_progress_user_course,priority:2" json:"course_progress_course_id"`

	CourseProgressTotalLectures     int `gorm:"column:course_progress_total_lectures;not null;default:0" json:"course_progress_total_lectures"`
	CourseProgressCompletedLectures int `gorm:"column:course_progress_completed_lectures;not null;default:0" json:"course_progress_completed_lectures"`
	CourseProgressTotalQuizzes      int `gorm:"column:course_progress_total_quizzes;not null;default:0" json:"course_progress_total_quizzes"`
	CourseProgressCompletedQuizzes  int `gorm:"column:course_progress_completed_quizzes;not null;default:0" json:"course_progress_completed_quizzes"`

	// Persentase 0..100, dihitung dari jumlah lecture selesai.
	CourseProgressPercent int `gorm:"column:course_progress_percent;not null;default:0" json:"course_progress_percent"`

	// Rata-rata persentase attempt quiz yang sudah selesai di kursus ini.
	CourseProgressAverageQuizScore int `gorm:"column:course_progress_average_quiz_score;not null;default:0" json:"course_progress_average_quiz_score"`

	// Transisi 100% terjadi tepat sekali; ketiga kolom ini tidak pernah
	// di-reset walau progres turun lagi (mis. lecture baru ditambahkan).
	CourseProgressCompletedAt         *time.Time `gorm:"column:course_progress_completed_at" json:"course_progress_completed_at,omitempty"`
	CourseProgressCertificateEarned   bool       `gorm:"column:course_progress_certificate_earned;not null;default:false" json:"course_progress_certificate_earned"`
	CourseProgressCertificateIssuedAt *time.Time `gorm:"column:course_progress_certificate_issued_at" json:"course_progress_certificate_issued_at,omitempty"`

	CourseProgressLastAccessedAt time.Time `gorm:"column:course_progress_last_accessed_at;not null;autoCreateTime" json:"course_progress_last_accessed_at"`
	CourseProgressCreatedAt      time.Time `gorm:"column:course_progress_created_at;autoCreateTime" json:"course_progress_created_at"`
	CourseProgressUpdatedAt      time.Time `gorm:"column:course_progress_updated_at;autoUpdateTime" json:"course_progress_updated_at"`

	Lectures []LectureProgressModel `gorm:"foreignKey:LectureProgressCourseProgressID;references:CourseProgressID" json:"lectures,omitempty"`
}

func (CourseProgressModel) TableName() string {
	return "course_progress"
}
