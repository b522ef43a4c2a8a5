package stats

import (
	"math"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"learnhub/backend/models"
)

// Reconciler keeps a course's denormalized rating and students fields in
// sync with the Enrollment and Review tables, which are the source of
// truth for them. There is no locking around the read-then-write
// sequence: concurrent corrections compute the same value from the same
// rows and converge on their own.
type Reconciler struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewReconciler(db *gorm.DB, log *zap.Logger) *Reconciler {
	return &Reconciler{DB: db, Log: log}
}

// RoundRating rounds to one decimal place, half up on the scaled value.
func RoundRating(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}

// AverageRating computes the rounded mean over a course's current
// reviews, 0 when there are none.
func (r *Reconciler) AverageRating(courseID uint) (float64, error) {
	var reviews []models.Review
	if err := r.DB.Where("course_id = ?", courseID).Find(&reviews).Error; err != nil {
		return 0, err
	}

	if len(reviews) == 0 {
		return 0, nil
	}

	sum := 0
	for _, review := range reviews {
		sum += review.Rating
	}
	return RoundRating(float64(sum) / float64(len(reviews))), nil
}

// Reconcile recomputes both derived fields for an already-fetched course
// and persists whichever ones have drifted, updating the in-memory copy
// so the caller returns corrected values.
func (r *Reconciler) Reconcile(course *models.Course) error {
	var enrollments int64
	if err := r.DB.Model(&models.Enrollment{}).Where("course_id = ?", course.ID).Count(&enrollments).Error; err != nil {
		return err
	}

	if int(enrollments) != course.Students {
		if err := r.DB.Model(&models.Course{}).Where("id = ?", course.ID).
			Update("students", int(enrollments)).Error; err != nil {
			return err
		}
		r.Log.Info("corrected student count",
			zap.Uint("courseId", course.ID),
			zap.Int("from", course.Students),
			zap.Int64("to", enrollments),
		)
		course.Students = int(enrollments)
	}

	rating, err := r.AverageRating(course.ID)
	if err != nil {
		return err
	}

	if rating != course.Rating {
		if err := r.DB.Model(&models.Course{}).Where("id = ?", course.ID).
			Update("rating", rating).Error; err != nil {
			return err
		}
		r.Log.Info("corrected rating",
			zap.Uint("courseId", course.ID),
			zap.Float64("from", course.Rating),
			zap.Float64("to", rating),
		)
		course.Rating = rating
	}

	return nil
}

// ReconcileList reconciles each course independently. A failure for one
// course is logged and that course keeps its last stored values; the
// rest of the list is unaffected.
func (r *Reconciler) ReconcileList(courses []models.Course) {
	for i := range courses {
		if err := r.Reconcile(&courses[i]); err != nil {
			r.Log.Error("course stats reconciliation failed",
				zap.Uint("courseId", courses[i].ID),
				zap.Error(err),
			)
		}
	}
}

// ReconcileRating recomputes a course's rating after a review mutation
// and persists it unconditionally. The enrollment count is untouched;
// reviews cannot change it.
func (r *Reconciler) ReconcileRating(courseID uint) error {
	rating, err := r.AverageRating(courseID)
	if err != nil {
		return err
	}
	return r.DB.Model(&models.Course{}).Where("id = ?", courseID).
		Update("rating", rating).Error
}

// ReconcileAll corrects every course's stats and reports how many rows
// were touched. Used by the maintenance recalculation mode.
func (r *Reconciler) ReconcileAll() (int, error) {
	var courses []models.Course
	if err := r.DB.Find(&courses).Error; err != nil {
		return 0, err
	}

	updated := 0
	for i := range courses {
		before := courses[i]
		if err := r.Reconcile(&courses[i]); err != nil {
			return updated, err
		}
		if courses[i].Students != before.Students || courses[i].Rating != before.Rating {
			updated++
		}
	}

	return updated, nil
}
