package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"learnhub/backend/config"
	"learnhub/backend/models"
	"learnhub/backend/routes"
	"learnhub/backend/utils"
)

var (
	app *fiber.App
	db  *gorm.DB
	cfg *config.Config
)

func TestMain(m *testing.M) {
	cfg = &config.Config{
		JWTSecret:  "testsecret",
		ServerPort: "5000",
		Env:        "test",
	}

	var err error
	db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		panic(err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := utils.Migrate(db); err != nil {
		panic(err)
	}

	app = fiber.New()
	routes.SetupRoutes(app, db, zap.NewNop(), cfg)

	os.Exit(m.Run())
}

func doRequest(t *testing.T, method, path string, body interface{}, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf := &bytes.Buffer{}
		require.NoError(t, json.NewEncoder(buf).Encode(body))
		reader = buf
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

const testPassword = "Str0ng&Pass"

func registerUser(t *testing.T, name, email, role string) string {
	t.Helper()

	resp := doRequest(t, "POST", "/api/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": testPassword,
		"role":     role,
	}, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var result map[string]interface{}
	decode(t, resp, &result)
	return result["token"].(string)
}

func createCourse(t *testing.T, token, title string) models.Course {
	t.Helper()

	resp := doRequest(t, "POST", "/api/courses", map[string]interface{}{
		"title":       title,
		"description": "A course used in tests",
		"category":    "programming",
		"level":       "beginner",
		"duration":    "6 weeks",
	}, token)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var course models.Course
	decode(t, resp, &course)
	return course
}

func enroll(t *testing.T, token string, courseID uint) models.Enrollment {
	t.Helper()

	resp := doRequest(t, "POST", "/api/enrollments", map[string]interface{}{
		"courseId": courseID,
	}, token)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var enrollment models.Enrollment
	decode(t, resp, &enrollment)
	return enrollment
}

func submitReview(t *testing.T, token string, courseID uint, rating int, comment string) models.Review {
	t.Helper()

	resp := doRequest(t, "POST", "/api/reviews", map[string]interface{}{
		"courseId": courseID,
		"rating":   rating,
		"comment":  comment,
	}, token)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var review models.Review
	decode(t, resp, &review)
	return review
}

func getCourse(t *testing.T, courseID uint) models.Course {
	t.Helper()

	resp := doRequest(t, "GET", "/api/courses/"+itoa(courseID), nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var course models.Course
	decode(t, resp, &course)
	return course
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
