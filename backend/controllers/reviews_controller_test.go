package controllers_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnhub/backend/models"
)

func TestSubmitReviewUpdatesCourseRating(t *testing.T) {
	instructor := registerUser(t, "Rated Instructor", "ratedinst@example.com", "instructor")
	u1 := registerUser(t, "Rater One", "rater1@example.com", "student")
	u2 := registerUser(t, "Rater Two", "rater2@example.com", "student")
	u3 := registerUser(t, "Rater Three", "rater3@example.com", "student")
	course := createCourse(t, instructor, "Rated Course")

	submitReview(t, u1, course.ID, 4, "good")
	submitReview(t, u2, course.ID, 5, "great")

	fetched := getCourse(t, course.ID)
	assert.Equal(t, 4.5, fetched.Rating)

	// Third rating of 3: mean (4+5+3)/3 = 4.0.
	submitReview(t, u3, course.ID, 3, "fine")

	fetched = getCourse(t, course.ID)
	assert.Equal(t, 4.0, fetched.Rating)
}

func TestResubmitReviewReplaces(t *testing.T) {
	instructor := registerUser(t, "Replace Instructor", "replaceinst@example.com", "instructor")
	student := registerUser(t, "Fickle Student", "fickle@example.com", "student")
	course := createCourse(t, instructor, "Replaceable Course")

	first := submitReview(t, student, course.ID, 2, "meh")
	second := submitReview(t, student, course.ID, 5, "changed my mind")

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Rating)
	assert.Equal(t, "changed my mind", second.Comment)

	var count int64
	db.Model(&models.Review{}).Where("course_id = ?", course.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	// Rating reflects only the latest value from this user.
	fetched := getCourse(t, course.ID)
	assert.Equal(t, 5.0, fetched.Rating)
}

func TestReviewRatingRange(t *testing.T) {
	instructor := registerUser(t, "Range Rating Instructor", "rangerating@example.com", "instructor")
	student := registerUser(t, "Extreme Student", "extreme@example.com", "student")
	course := createCourse(t, instructor, "Range Rating Course")

	for _, rating := range []int{-1, 0, 6} {
		resp := doRequest(t, "POST", "/api/reviews", map[string]interface{}{
			"courseId": course.ID,
			"rating":   rating,
		}, student)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	}
}

func TestReviewRequiresStudentRole(t *testing.T) {
	instructor := registerUser(t, "Self Rating Instructor", "selfrating@example.com", "instructor")
	course := createCourse(t, instructor, "Self Rated Course")

	resp := doRequest(t, "POST", "/api/reviews", map[string]interface{}{
		"courseId": course.ID,
		"rating":   5,
	}, instructor)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestGetCourseReviews(t *testing.T) {
	instructor := registerUser(t, "Reviewed Instructor", "reviewedinst@example.com", "instructor")
	u1 := registerUser(t, "Listing Rater", "listrater1@example.com", "student")
	u2 := registerUser(t, "Other Rater", "listrater2@example.com", "student")
	course := createCourse(t, instructor, "Reviewed Course")

	submitReview(t, u1, course.ID, 4, "solid")
	submitReview(t, u2, course.ID, 5, "superb")

	resp := doRequest(t, "GET", "/api/reviews/course/"+itoa(course.ID), nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var reviews []models.Review
	decode(t, resp, &reviews)
	require.Len(t, reviews, 2)
	require.NotNil(t, reviews[0].User)
	assert.NotEmpty(t, reviews[0].User.Name)
}

func TestGetUserReview(t *testing.T) {
	instructor := registerUser(t, "Own Review Instructor", "ownreviewinst@example.com", "instructor")
	student := registerUser(t, "Own Review Student", "ownreview@example.com", "student")
	course := createCourse(t, instructor, "Own Review Course")

	resp := doRequest(t, "GET", "/api/reviews/user/"+itoa(course.ID), nil, student)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	submitReview(t, student, course.ID, 3, "mine")

	resp = doRequest(t, "GET", "/api/reviews/user/"+itoa(course.ID), nil, student)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var review models.Review
	decode(t, resp, &review)
	assert.Equal(t, 3, review.Rating)
	assert.Equal(t, "mine", review.Comment)
}

func TestDeleteReviewResetsRating(t *testing.T) {
	instructor := registerUser(t, "Reset Instructor", "resetinst@example.com", "instructor")
	student := registerUser(t, "Reset Student", "reset@example.com", "student")
	course := createCourse(t, instructor, "Reset Course")

	review := submitReview(t, student, course.ID, 5, "only review")

	fetched := getCourse(t, course.ID)
	assert.Equal(t, 5.0, fetched.Rating)

	resp := doRequest(t, "DELETE", "/api/reviews/"+itoa(review.ID), nil, student)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	fetched = getCourse(t, course.ID)
	assert.Equal(t, 0.0, fetched.Rating)
}

func TestDeleteReviewOnlyOwner(t *testing.T) {
	instructor := registerUser(t, "Guard Instructor", "guardinst@example.com", "instructor")
	owner := registerUser(t, "Review Owner", "reviewowner@example.com", "student")
	other := registerUser(t, "Review Thief", "reviewthief@example.com", "student")
	course := createCourse(t, instructor, "Guarded Course")

	review := submitReview(t, owner, course.ID, 4, "mine to delete")

	resp := doRequest(t, "DELETE", "/api/reviews/"+itoa(review.ID), nil, other)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	var count int64
	db.Model(&models.Review{}).Where("id = ?", review.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}
