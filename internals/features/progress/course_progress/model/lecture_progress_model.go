// internals/features/progress/course_progress/model/lecture_progress_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// LectureProgressModel adalah detail per-lecture di bawah satu
// CourseProgressModel. Baris dibuat saat initialize, atau lazy saat
// lecture baru muncul setelah user enroll.
type LectureProgressModel struct {
	LectureProgressID               uuid.UUID `gorm:"column:lecture_progress_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"lecture_progress_id"`
	LectureProgressCourseProgressID uuid.UUID `gorm:"column:lecture_progress_course_progress_id;type:uuid;not null;uniqueIndex:uq_lecture_progress_lecture,priority:1" json:"lecture_progress_course_progress_id"`
	LectureProgressLectureID        uuid.UUID `gorm:"column:lecture_progress_lecture_id;type:uuid;not null;uniqueIndex:uq_lecture_progress_lecture,priority:2" json:"lecture_progress_lecture_id"`

	// watch_time last-write-wins: klien yang tahu posisi tonton terakhir.
	LectureProgressWatched          bool `gorm:"column:lecture_progress_watched;not null;default:false" json:"lecture_progress_watched"`
	LectureProgressWatchTimeSeconds int  `gorm:"column:lecture_progress_watch_time_seconds;not null;default:0" json:"lecture_progress_watch_time_seconds"`

	// Jejak quiz lecture ini: quiz_score = persentase attempt terakhir,
	// best_quiz_score hanya naik (max), quiz_attempts = nomor attempt
	// terakhir yang disubmit.
	LectureProgressQuizCompleted bool `gorm:"column:lecture_progress_quiz_completed;not null;default:false" json:"lecture_progress_quiz_completed"`
	LectureProgressQuizScore     int  `gorm:"column:lecture_progress_quiz_score;not null;default:0" json:"lecture_progress_quiz_score"`
	LectureProgressQuizAttempts  int  `gorm:"column:lecture_progress_quiz_attempts;not null;default:0" json:"lecture_progress_quiz_attempts"`
	LectureProgressBestQuizScore int  `gorm:"column:lecture_progress_best_quiz_score;not null;default:0" json:"lecture_progress_best_quiz_score"`

	LectureProgressCompletedAt *time.Time `gorm:"column:lecture_progress_completed_at" json:"lecture_progress_completed_at,omitempty"`
	LectureProgressCreatedAt   time.Time  `gorm:"column:lecture_progress_created_at;autoCreateTime" json:"lecture_progress_created_at"`
	LectureProgressUpdatedAt   time.Time  `gorm:"column:lecture_progress_updated_at;autoUpdateTime" json:"lecture_progress_updated_at"`
}

func (LectureProgressModel) TableName() string {
	return "lecture_progress"
}
