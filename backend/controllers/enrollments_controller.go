package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"learnhub/backend/config"
	"learnhub/backend/middleware"
	"learnhub/backend/models"
	"learnhub/backend/utils"
)

type EnrollmentsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewEnrollmentsController(db *gorm.DB, cfg *config.Config) *EnrollmentsController {
	return &EnrollmentsController{DB: db, Cfg: cfg}
}

func (ec *EnrollmentsController) Enroll(c *fiber.Ctx) error {
	var input struct {
		CourseID uint `json:"courseId"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.Message(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	if input.CourseID == 0 {
		return utils.FieldError(c, "Please provide courseId", "courseId")
	}

	var course models.Course
	if err := ec.DB.First(&course, input.CourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Message(c, fiber.StatusNotFound, "Course not found")
		}
		return utils.Message(c, fiber.StatusInternalServerError, "Could not query database")
	}

	enrollment := models.Enrollment{
		UserID:   middleware.UserID(c),
		CourseID: input.CourseID,
	}

	// The (user, course) unique index turns a double enrollment into a
	// conflict here instead of a second row.
	if err := ec.DB.Create(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.Message(c, fiber.StatusBadRequest, "Already enrolled in this course")
		}
		return utils.Message(c, fiber.StatusInternalServerError, "Could not create enrollment")
	}

	return c.Status(fiber.StatusCreated).JSON(enrollment)
}

func (ec *EnrollmentsController) GetMyEnrollments(c *fiber.Ctx) error {
	var enrollments []models.Enrollment
	if err := ec.DB.Preload("Course").Preload("Course.CreatedBy").
		Where("user_id = ?", middleware.UserID(c)).
		Order("created_at DESC").
		Find(&enrollments).Error; err != nil {
		return utils.Message(c, fiber.StatusInternalServerError, "Could not query database")
	}

	return c.JSON(enrollments)
}

func (ec *EnrollmentsController) UpdateProgress(c *fiber.Ctx) error {
	enrollmentID, err := parseID(c, "id")
	if err != nil {
		return utils.Message(c, fiber.StatusBadRequest, "Invalid enrollment ID")
	}

	var input struct {
		Progress *int `json:"progress"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.Message(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	if input.Progress == nil {
		return utils.FieldError(c, "Please provide progress", "progress")
	}
	if *input.Progress < 0 || *input.Progress > 100 {
		return utils.FieldError(c, "Progress must be between 0 and 100", "progress")
	}

	var enrollment models.Enrollment
	if err := ec.DB.First(&enrollment, enrollmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Message(c, fiber.StatusNotFound, "Enrollment not found")
		}
		return utils.Message(c, fiber.StatusInternalServerError, "Could not query database")
	}

	if enrollment.UserID != middleware.UserID(c) {
		return utils.Message(c, fiber.StatusForbidden, "Not authorized to update this enrollment")
	}

	enrollment.Progress = *input.Progress
	enrollment.Completed = enrollment.Progress == 100

	if err := ec.DB.Save(&enrollment).Error; err != nil {
		return utils.Message(c, fiber.StatusInternalServerError, "Could not update enrollment")
	}

	return c.JSON(enrollment)
}
