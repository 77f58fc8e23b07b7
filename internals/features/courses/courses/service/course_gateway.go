package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	courseModel "kursusku_backend/internals/features/courses/courses/model"
)

var ErrCourseNotFound = errors.New("course not found")

// CourseGateway adalah batas kolaborator ke data katalog (course + lecture).
// CRUD katalog diurus subsistem lain; engine hanya membaca lewat gateway ini.
type CourseGateway struct {
	DB *gorm.DB
}

func NewCourseGateway(db *gorm.DB) *CourseGateway {
	return &CourseGateway{DB: db}
}

// GetCourseWithLectures mengambil course + daftar lecture terurut posisi.
func (g *CourseGateway) GetCourseWithLectures(courseID uuid.UUID) (*courseModel.CourseModel, []courseModel.LectureModel, error) {
	var course courseModel.CourseModel
	if err := g.DB.
		Where("course_id = ?", courseID).
		First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrCourseNotFound
		}
		return nil, nil, err
	}

	var lectures []courseModel.LectureModel
	if err := g.DB.
		Where("lecture_course_id = ?", courseID).
		Order("lecture_position ASC, lecture_created_at ASC").
		Find(&lectures).Error; err != nil {
		return nil, nil, err
	}

	return &course, lectures, nil
}

// IsCourseOwner: capability check — apakah user adalah creator course.
// Dipakai untuk visibilitas kunci jawaban quiz dan otorisasi analytics.
func (g *CourseGateway) IsCourseOwner(courseID, userID uuid.UUID) (bool, error) {
	var count int64
	if err := g.DB.Model(&courseModel.CourseModel{}).
		Where("course_id = ? AND course_creator_id = ?", courseID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
