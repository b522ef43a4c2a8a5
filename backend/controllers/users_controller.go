package controllers

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"learnhub/backend/config"
	"learnhub/backend/middleware"
	"learnhub/backend/models"
	"learnhub/backend/utils"
)

type UsersController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewUsersController(db *gorm.DB, cfg *config.Config) *UsersController {
	return &UsersController{DB: db, Cfg: cfg}
}

func (uc *UsersController) UpdateProfile(c *fiber.Ctx) error {
	var input struct {
		Name string `json:"name"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.Message(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	var user models.User
	if err := uc.DB.First(&user, middleware.UserID(c)).Error; err != nil {
		return utils.Message(c, fiber.StatusNotFound, "User not found")
	}

	if input.Name != "" {
		name, msg := utils.ValidateName(input.Name)
		if msg != "" {
			return utils.FieldError(c, msg, "name")
		}
		user.Name = name
	}

	if err := uc.DB.Save(&user).Error; err != nil {
		return utils.Message(c, fiber.StatusInternalServerError, "Could not update user")
	}

	// Courses carry the instructor name denormalized; keep them in step
	// with the rename.
	if user.Role == models.RoleInstructor {
		uc.DB.Model(&models.Course{}).Where("created_by_id = ?", user.ID).
			Update("instructor", user.Name)
	}

	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"user":    userPayload(&user),
	})
}

func (uc *UsersController) ChangePassword(c *fiber.Ctx) error {
	var input struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.Message(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	if input.OldPassword == "" || input.NewPassword == "" {
		return utils.Message(c, fiber.StatusBadRequest, "Please provide oldPassword and newPassword")
	}

	var user models.User
	if err := uc.DB.First(&user, middleware.UserID(c)).Error; err != nil {
		return utils.Message(c, fiber.StatusNotFound, "User not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.OldPassword)); err != nil {
		return utils.Message(c, fiber.StatusUnauthorized, "Invalid old password")
	}

	if passwordErrors := utils.ValidatePassword(input.NewPassword); len(passwordErrors) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Password does not meet complexity requirements",
			"errors":  passwordErrors,
			"field":   "newPassword",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), 12)
	if err != nil {
		return utils.Message(c, fiber.StatusInternalServerError, "Could not hash password")
	}
	user.Password = string(hashedPassword)

	if err := uc.DB.Save(&user).Error; err != nil {
		return utils.Message(c, fiber.StatusInternalServerError, "Could not update password")
	}

	return utils.Message(c, fiber.StatusOK, "Password changed successfully")
}
