package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CourseModel adalah proyeksi minimal dari tabel courses milik layanan katalog.
// Engine progress/quiz hanya butuh identitas, creator, dan daftar lecture.
type CourseModel struct {
	CourseID        uuid.UUID `gorm:"column:course_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"course_id"`
	CourseTitle     string    `gorm:"column:course_title;type:varchar(255);not null" json:"course_title"`
	CourseCreatorID uuid.UUID `gorm:"column:course_creator_id;type:uuid;not null;index" json:"course_creator_id"`
	CourseIsActive  bool      `gorm:"column:course_is_active;default:true" json:"course_is_active"`

	CourseCreatedAt time.Time      `gorm:"column:course_created_at;autoCreateTime" json:"course_created_at"`
	CourseUpdatedAt time.Time      `gorm:"column:course_updated_at;autoUpdateTime" json:"course_updated_at"`
	CourseDeletedAt gorm.DeletedAt `gorm:"column:course_deleted_at;index" json:"course_deleted_at,omitempty"`

	// Relations (opsional dipakai saat Preload)
	Lectures []LectureModel `gorm:"foreignKey:LectureCourseID;references:CourseID" json:"lectures,omitempty"`
}

func (CourseModel) TableName() string {
	return "courses"
}
