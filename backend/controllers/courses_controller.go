package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"learnhub/backend/config"
	"learnhub/backend/middleware"
	"learnhub/backend/models"
	"learnhub/backend/stats"
	"learnhub/backend/utils"
)

type CoursesController struct {
	DB    *gorm.DB
	Cfg   *config.Config
	Stats *stats.Reconciler
}

func NewCoursesController(db *gorm.DB, cfg *config.Config, reconciler *stats.Reconciler) *CoursesController {
	return &CoursesController{DB: db, Cfg: cfg, Stats: reconciler}
}

func parseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.Atoi(c.Params(name))
	if err != nil || id < 1 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

func (cc *CoursesController) GetAllCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := cc.DB.Preload("CreatedBy").Order("created_at DESC").Find(&courses).Error; err != nil {
		return utils.Message(c, fiber.StatusInternalServerError, "Could not query database")
	}

	// Correct stale denormalized stats before the list goes out. A
	// failed recalculation returns that course with its stored values.
	cc.Stats.ReconcileList(courses)

	return c.JSON(courses)
}

func (cc *CoursesController) GetCourseByID(c *fiber.Ctx) error {
	courseID, err := parseID(c, "id")
	if err != nil {
		return utils.Message(c, fiber.StatusBadRequest, "Invalid course ID")
	}

	var course models.Course
	if err := cc.DB.Preload("CreatedBy").First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Message(c, fiber.StatusNotFound, "Course not found")
		}
		return utils.Message(c, fiber.StatusInternalServerError, "Could not query database")
	}

	if err := cc.Stats.Reconcile(&course); err != nil {
		return utils.Message(c, fiber.StatusInternalServerError, "Could not recalculate course stats")
	}

	return c.JSON(course)
}

func (cc *CoursesController) CreateCourse(c *fiber.Ctx) error {
	var input struct {
		Title          string                `json:"title"`
		Description    string                `json:"description"`
		Category       string                `json:"category"`
		Level          string                `json:"level"`
		Duration       string                `json:"duration"`
		Image          string                `json:"image"`
		Curriculum     []models.CourseModule `json:"curriculum"`
		LearningPoints []string              `json:"learningPoints"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.Message(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	if input.Title == "" || input.Description == "" || input.Category == "" ||
		input.Level == "" || input.Duration == "" {
		return utils.Message(c, fiber.StatusBadRequest,
			"Please provide title, description, category, level, and duration")
	}

	var user models.User
	if err := cc.DB.First(&user, middleware.UserID(c)).Error; err != nil {
		return utils.Message(c, fiber.StatusNotFound, "User not found")
	}

	// Rating and students start at zero; the review and enrollment
	// systems own them from here on.
	course := models.Course{
		Title:          input.Title,
		Description:    input.Description,
		Category:       input.Category,
		Level:          input.Level,
		Duration:       input.Duration,
		Image:          input.Image,
		Curriculum:     input.Curriculum,
		LearningPoints: input.LearningPoints,
		Instructor:     user.Name,
		CreatedByID:    user.ID,
		Rating:         0,
		Students:       0,
	}

	if err := cc.DB.Create(&course).Error; err != nil {
		return utils.Message(c, fiber.StatusInternalServerError, "Could not create course")
	}

	cc.DB.Preload("CreatedBy").First(&course, course.ID)

	return c.Status(fiber.StatusCreated).JSON(course)
}

func (cc *CoursesController) UpdateCourse(c *fiber.Ctx) error {
	courseID, err := parseID(c, "id")
	if err != nil {
		return utils.Message(c, fiber.StatusBadRequest, "Invalid course ID")
	}

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Message(c, fiber.StatusNotFound, "Course not found")
		}
		return utils.Message(c, fiber.StatusInternalServerError, "Could not query database")
	}

	if course.CreatedByID != middleware.UserID(c) {
		return utils.Message(c, fiber.StatusForbidden, "Not authorized to update this course")
	}

	var user models.User
	if err := cc.DB.First(&user, middleware.UserID(c)).Error; err != nil {
		return utils.Message(c, fiber.StatusNotFound, "User not found")
	}

	var input struct {
		Title          string                 `json:"title"`
		Description    string                 `json:"description"`
		Category       string                 `json:"category"`
		Level          string                 `json:"level"`
		Duration       string                 `json:"duration"`
		Image          *string                `json:"image"`
		Curriculum     *[]models.CourseModule `json:"curriculum"`
		LearningPoints *[]string              `json:"learningPoints"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.Message(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	if input.Title != "" {
		course.Title = input.Title
	}
	if input.Description != "" {
		course.Description = input.Description
	}
	if input.Category != "" {
		course.Category = input.Category
	}
	if input.Level != "" {
		course.Level = input.Level
	}
	if input.Duration != "" {
		course.Duration = input.Duration
	}
	if input.Image != nil {
		course.Image = *input.Image
	}
	if input.Curriculum != nil {
		course.Curriculum = *input.Curriculum
	}
	if input.LearningPoints != nil {
		course.LearningPoints = *input.LearningPoints
	}
	// Rating and students are not settable here; they are derived.
	course.Instructor = user.Name

	if err := cc.DB.Save(&course).Error; err != nil {
		return utils.Message(c, fiber.StatusInternalServerError, "Could not update course")
	}

	cc.DB.Preload("CreatedBy").First(&course, course.ID)

	return c.JSON(course)
}

func (cc *CoursesController) DeleteCourse(c *fiber.Ctx) error {
	courseID, err := parseID(c, "id")
	if err != nil {
		return utils.Message(c, fiber.StatusBadRequest, "Invalid course ID")
	}

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Message(c, fiber.StatusNotFound, "Course not found")
		}
		return utils.Message(c, fiber.StatusInternalServerError, "Could not query database")
	}

	if course.CreatedByID != middleware.UserID(c) {
		return utils.Message(c, fiber.StatusForbidden, "Not authorized to delete this course")
	}

	// Dependent enrollments and reviews go with the course; orphaned
	// rows would keep counting toward instructor student totals.
	err = cc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", courseID).Delete(&models.Enrollment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", courseID).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Course{}, courseID).Error
	})
	if err != nil {
		return utils.Message(c, fiber.StatusInternalServerError, "Could not delete course")
	}

	return utils.Message(c, fiber.StatusOK, "Course deleted successfully")
}

// GetInstructorUniqueStudents counts distinct students across all of an
// instructor's courses, so one student on two courses counts once.
func (cc *CoursesController) GetInstructorUniqueStudents(c *fiber.Ctx) error {
	instructorID, err := parseID(c, "id")
	if err != nil {
		return utils.Message(c, fiber.StatusBadRequest, "Invalid instructor ID format")
	}

	var courseIDs []uint
	if err := cc.DB.Model(&models.Course{}).Where("created_by_id = ?", instructorID).
		Pluck("id", &courseIDs).Error; err != nil {
		return utils.Message(c, fiber.StatusInternalServerError, "Could not query database")
	}

	if len(courseIDs) == 0 {
		return c.JSON(fiber.Map{"uniqueStudents": 0})
	}

	var studentIDs []uint
	if err := cc.DB.Model(&models.Enrollment{}).Distinct("user_id").
		Where("course_id IN ?", courseIDs).
		Pluck("user_id", &studentIDs).Error; err != nil {
		return utils.Message(c, fiber.StatusInternalServerError, "Could not query database")
	}

	return c.JSON(fiber.Map{"uniqueStudents": len(studentIDs)})
}
