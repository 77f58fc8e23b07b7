package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LectureModel struct {
	LectureID       uuid.UUID `gorm:"column:lecture_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"lecture_id"`
	LectureCourseID uuid.UUID `gorm:"column:lecture_course_id;type:uuid;not null;index" json:"lecture_course_id"`
	LectureTitle    string    `gorm:"column:lecture_title;type:varchar(255);not null" json:"lecture_title"`
	LecturePosition int       `gorm:"column:lecture_position;default:0" json:"lecture_position"`

	LectureCreatedAt time.Time      `gorm:"column:lecture_created_at;autoCreateTime" json:"lecture_created_at"`
	LectureUpdatedAt time.Time      `gorm:"column:lecture_updated_at;autoUpdateTime" json:"lecture_updated_at"`
	LectureDeletedAt gorm.DeletedAt `gorm:"column:lecture_deleted_at;index" json:"lecture_deleted_at,omitempty"`
}

func (LectureModel) TableName() string {
	return "lectures"
}
