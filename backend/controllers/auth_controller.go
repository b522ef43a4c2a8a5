package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"learnhub/backend/config"
	"learnhub/backend/middleware"
	"learnhub/backend/models"
	"learnhub/backend/utils"
)

type AuthController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAuthController(db *gorm.DB, cfg *config.Config) *AuthController {
	return &AuthController{DB: db, Cfg: cfg}
}

func userPayload(user *models.User) fiber.Map {
	return fiber.Map{
		"id":        user.ID,
		"name":      user.Name,
		"email":     user.Email,
		"role":      user.Role,
		"createdAt": user.CreatedAt,
	}
}

func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.Message(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	if input.Name == "" || input.Email == "" || input.Password == "" {
		missing := fiber.Map{}
		if input.Name == "" {
			missing["name"] = "Name is required"
		}
		if input.Email == "" {
			missing["email"] = "Email is required"
		}
		if input.Password == "" {
			missing["password"] = "Password is required"
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Please provide name, email, and password",
			"errors":  missing,
		})
	}

	name, msg := utils.ValidateName(input.Name)
	if msg != "" {
		return utils.FieldError(c, msg, "name")
	}

	email := utils.NormalizeEmail(input.Email)
	if !utils.ValidateEmail(email) {
		return utils.FieldError(c, "Please provide a valid email address", "email")
	}

	if passwordErrors := utils.ValidatePassword(input.Password); len(passwordErrors) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Password does not meet complexity requirements",
			"errors":  passwordErrors,
			"field":   "password",
		})
	}

	role := input.Role
	if role == "" {
		role = models.RoleStudent
	}
	if role != models.RoleStudent && role != models.RoleInstructor {
		return utils.FieldError(c, `Invalid role. Must be either "student" or "instructor"`, "role")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), 12)
	if err != nil {
		return utils.Message(c, fiber.StatusInternalServerError, "Could not hash password")
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
		Role:     role,
	}

	if err := ac.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.FieldError(c, "User with this email already exists", "email")
		}
		return utils.Message(c, fiber.StatusInternalServerError, "Could not create user")
	}

	token, err := utils.GenerateJWTToken(&user, ac.Cfg)
	if err != nil {
		return utils.Message(c, fiber.StatusInternalServerError, "Could not generate token")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Registration successful",
		"token":   token,
		"user":    userPayload(&user),
	})
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.Message(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	if input.Email == "" || input.Password == "" {
		missing := fiber.Map{}
		if input.Email == "" {
			missing["email"] = "Email is required"
		}
		if input.Password == "" {
			missing["password"] = "Password is required"
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Please provide email and password",
			"errors":  missing,
		})
	}

	email := utils.NormalizeEmail(input.Email)
	if !utils.ValidateEmail(email) {
		return utils.FieldError(c, "Please provide a valid email address", "email")
	}

	// One message for both failure modes; do not reveal which field
	// was wrong.
	var user models.User
	if err := ac.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Message(c, fiber.StatusUnauthorized, "Invalid email or password")
		}
		return utils.Message(c, fiber.StatusInternalServerError, "Could not query database")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return utils.Message(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	token, err := utils.GenerateJWTToken(&user, ac.Cfg)
	if err != nil {
		return utils.Message(c, fiber.StatusInternalServerError, "Could not generate token")
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"user":    userPayload(&user),
	})
}

func (ac *AuthController) Me(c *fiber.Ctx) error {
	var user models.User
	if err := ac.DB.First(&user, middleware.UserID(c)).Error; err != nil {
		return utils.Message(c, fiber.StatusNotFound, "User not found")
	}

	return c.JSON(userPayload(&user))
}
