package routes

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"learnhub/backend/config"
	"learnhub/backend/controllers"
	"learnhub/backend/middleware"
	"learnhub/backend/models"
	"learnhub/backend/stats"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, logger *zap.Logger, cfg *config.Config) {
	reconciler := stats.NewReconciler(db, logger)

	authMiddleware := middleware.AuthMiddleware(cfg)
	requireStudent := middleware.RequireRole(models.RoleStudent)
	requireInstructor := middleware.RequireRole(models.RoleInstructor)

	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)
	app.Get("/api/auth/me", authMiddleware, authController.Me)

	// User routes
	usersController := controllers.NewUsersController(db, cfg)
	app.Put("/api/users/profile", authMiddleware, usersController.UpdateProfile)
	app.Put("/api/users/password", authMiddleware, usersController.ChangePassword)

	// Course routes
	coursesController := controllers.NewCoursesController(db, cfg, reconciler)
	courses := app.Group("/api/courses")
	courses.Get("/", coursesController.GetAllCourses)
	courses.Get("/instructor/:id/students", coursesController.GetInstructorUniqueStudents)
	courses.Get("/:id", coursesController.GetCourseByID)
	courses.Post("/", authMiddleware, requireInstructor, coursesController.CreateCourse)
	courses.Put("/:id", authMiddleware, requireInstructor, coursesController.UpdateCourse)
	courses.Delete("/:id", authMiddleware, requireInstructor, coursesController.DeleteCourse)

	// Enrollment routes
	enrollmentsController := controllers.NewEnrollmentsController(db, cfg)
	enrollments := app.Group("/api/enrollments", authMiddleware, requireStudent)
	enrollments.Post("/", enrollmentsController.Enroll)
	enrollments.Get("/me", enrollmentsController.GetMyEnrollments)
	enrollments.Put("/:id/progress", enrollmentsController.UpdateProgress)

	// Review routes
	reviewsController := controllers.NewReviewsController(db, cfg, reconciler)
	reviews := app.Group("/api/reviews")
	reviews.Get("/course/:courseId", reviewsController.GetCourseReviews)
	reviews.Post("/", authMiddleware, requireStudent, reviewsController.CreateOrUpdateReview)
	reviews.Get("/user/:courseId", authMiddleware, requireStudent, reviewsController.GetUserReview)
	reviews.Delete("/:id", authMiddleware, requireStudent, reviewsController.DeleteReview)
}
