package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"learnhub/backend/config"
	"learnhub/backend/middleware"
	"learnhub/backend/models"
	"learnhub/backend/stats"
	"learnhub/backend/utils"
)

type ReviewsController struct {
	DB    *gorm.DB
	Cfg   *config.Config
	Stats *stats.Reconciler
}

func NewReviewsController(db *gorm.DB, cfg *config.Config, reconciler *stats.Reconciler) *ReviewsController {
	return &ReviewsController{DB: db, Cfg: cfg, Stats: reconciler}
}

// CreateOrUpdateReview upserts the caller's review keyed on the
// (course, user) unique index, then recomputes the course rating so the
// response reflects the mutation.
func (rc *ReviewsController) CreateOrUpdateReview(c *fiber.Ctx) error {
	var input struct {
		CourseID uint   `json:"courseId"`
		Rating   int    `json:"rating"`
		Comment  string `json:"comment"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.Message(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	if input.CourseID == 0 || input.Rating == 0 {
		return utils.Message(c, fiber.StatusBadRequest, "Please provide courseId and rating")
	}

	if input.Rating < 1 || input.Rating > 5 {
		return utils.FieldError(c, "Rating must be between 1 and 5", "rating")
	}

	if len(input.Comment) > 1000 {
		return utils.FieldError(c, "Comment must be at most 1000 characters", "comment")
	}

	var course models.Course
	if err := rc.DB.First(&course, input.CourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Message(c, fiber.StatusNotFound, "Course not found")
		}
		return utils.Message(c, fiber.StatusInternalServerError, "Could not query database")
	}

	userID := middleware.UserID(c)
	review := models.Review{
		CourseID: input.CourseID,
		UserID:   userID,
		Rating:   input.Rating,
		Comment:  input.Comment,
	}

	if err := rc.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "course_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "comment", "updated_at"}),
	}).Create(&review).Error; err != nil {
		return utils.Message(c, fiber.StatusInternalServerError, "Could not save review")
	}

	// Reload through the unique key; the conflict path does not fill in
	// the row ID.
	if err := rc.DB.Preload("User").
		Where("course_id = ? AND user_id = ?", input.CourseID, userID).
		First(&review).Error; err != nil {
		return utils.Message(c, fiber.StatusInternalServerError, "Could not query database")
	}

	if err := rc.Stats.ReconcileRating(input.CourseID); err != nil {
		return utils.Message(c, fiber.StatusInternalServerError, "Could not update course rating")
	}

	return c.Status(fiber.StatusCreated).JSON(review)
}

func (rc *ReviewsController) GetCourseReviews(c *fiber.Ctx) error {
	courseID, err := parseID(c, "courseId")
	if err != nil {
		return utils.Message(c, fiber.StatusBadRequest, "Invalid course ID")
	}

	var reviews []models.Review
	if err := rc.DB.Preload("User").
		Where("course_id = ?", courseID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return utils.Message(c, fiber.StatusInternalServerError, "Could not query database")
	}

	return c.JSON(reviews)
}

func (rc *ReviewsController) GetUserReview(c *fiber.Ctx) error {
	courseID, err := parseID(c, "courseId")
	if err != nil {
		return utils.Message(c, fiber.StatusBadRequest, "Invalid course ID")
	}

	var review models.Review
	if err := rc.DB.Preload("User").
		Where("course_id = ? AND user_id = ?", courseID, middleware.UserID(c)).
		First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Message(c, fiber.StatusNotFound, "Review not found")
		}
		return utils.Message(c, fiber.StatusInternalServerError, "Could not query database")
	}

	return c.JSON(review)
}

func (rc *ReviewsController) DeleteReview(c *fiber.Ctx) error {
	reviewID, err := parseID(c, "id")
	if err != nil {
		return utils.Message(c, fiber.StatusBadRequest, "Invalid review ID")
	}

	var review models.Review
	if err := rc.DB.First(&review, reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Message(c, fiber.StatusNotFound, "Review not found")
		}
		return utils.Message(c, fiber.StatusInternalServerError, "Could not query database")
	}

	if review.UserID != middleware.UserID(c) {
		return utils.Message(c, fiber.StatusForbidden, "Not authorized to delete this review")
	}

	if err := rc.DB.Delete(&models.Review{}, reviewID).Error; err != nil {
		return utils.Message(c, fiber.StatusInternalServerError, "Could not delete review")
	}

	if err := rc.Stats.ReconcileRating(review.CourseID); err != nil {
		return utils.Message(c, fiber.StatusInternalServerError, "Could not update course rating")
	}

	return utils.Message(c, fiber.StatusOK, "Review deleted successfully")
}
