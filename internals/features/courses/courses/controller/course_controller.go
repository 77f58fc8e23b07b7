// internals/features/courses/courses/controller/course_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kursusku_backend/internals/features/courses/courses/model"
	courseService "kursusku_backend/internals/features/courses/courses/service"
	helper "kursusku_backend/internals/helpers"
)

type CourseController struct {
	DB      *gorm.DB
	Courses *courseService.CourseGateway
}

func NewCourseController(db *gorm.DB) *CourseController {
	return &CourseController{
		DB:      db,
		Courses: courseService.NewCourseGateway(db),
	}
}

// GET /api/u/courses/:courseId
// Detail kursus + daftar lecture urut posisi. Katalog/CRUD kursus
// dikelola layanan lain; di sini hanya baca.
func (ctrl *CourseController) GetCourseWithLectures(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID kursus tidak valid")
	}

	course, lectures, err := ctrl.Courses.GetCourseWithLectures(courseID)
	if err != nil {
		if errors.Is(err, courseService.ErrCourseNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Kursus tidak ditemukan")
		}
		log.Println("[ERROR] Gagal mengambil kursus:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil kursus")
	}

	course.Lectures = lectures
	return helper.JsonOK(c, "OK", course)
}

// GET /api/u/courses/mine
// Kursus yang dibuat user (untuk dashboard instruktur).
func (ctrl *CourseController) GetMyCourses(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var courses []model.CourseModel
	if err := ctrl.DB.
		Where("course_creator_id = ?", userID).
		Order("course_created_at DESC").
		Find(&courses).Error; err != nil {
		log.Println("[ERROR] Gagal mengambil kursus milik user:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil kursus")
	}

	return helper.JsonOK(c, "OK", courses)
}
