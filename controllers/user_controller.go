package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mahboube89/Training-Platform-Backend/config"
	"github.com/mahboube89/Training-Platform-Backend/middleware"
	"github.com/mahboube89/Training-Platform-Backend/models"
	"github.com/mahboube89/Training-Platform-Backend/utils"
)

type UserController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewUserController(db *gorm.DB, cfg *config.Config) *UserController {
	return &UserController{DB: db, Cfg: cfg}
}

type UpdateProfileRequest struct {
	Username    string `json:"username" validate:"omitempty,min=4,max=30"`
	Email       string `json:"email" validate:"omitempty,email"`
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password" validate:"omitempty,min=8"`
}

type BanUserRequest struct {
	Reason      string     `json:"reason" validate:"required,min=3"`
	IsPermanent bool       `json:"is_permanent"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

// GetAllUsers returns every account without password hashes.
func (uc *UserController) GetAllUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := uc.DB.Find(&users).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return c.JSON(fiber.Map{"message": "Users retrieved successfully.", "users": users})
}

// UpdateProfile updates the acting user's own username, email or password.
func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	user := middleware.UserFromContext(c)
	if user == nil {
		return utils.Unauthorized(c, "Access denied. No user found.")
	}

	var input UpdateProfileRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON.")
	}

	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationErrors(c, errs)
	}

	if input.Username != "" && input.Username != user.Username {
		var existing models.User
		err := uc.DB.Where("username = ?", input.Username).First(&existing).Error
		if err == nil && existing.ID != user.ID {
			return utils.Conflict(c, "Username is already taken.")
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.InternalServerError(c)
		}
		user.Username = input.Username
	}

	if input.Email != "" && input.Email != user.Email {
		var existing models.User
		err := uc.DB.Where("email = ?", input.Email).First(&existing).Error
		if err == nil && existing.ID != user.ID {
			return utils.Conflict(c, "Email is already taken.")
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.InternalServerError(c)
		}
		user.Email = input.Email
	}

	if input.NewPassword != "" {
		if input.OldPassword == "" {
			return utils.BadRequest(c, "Old password is required to set a new password.")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.OldPassword)); err != nil {
			return utils.Unauthorized(c, "Invalid old password.")
		}
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), 12)
		if err != nil {
			return utils.InternalServerError(c)
		}
		user.Password = string(hashedPassword)
	}

	if err := uc.DB.Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.Conflict(c, "Username or email is already taken.")
		}
		return utils.InternalServerError(c)
	}

	return c.JSON(fiber.Map{"message": "Profile updated successfully.", "user": user})
}

// BanUser flips the account status to BANNED and records a BanRecord. The
// two writes span collections without a transaction: if the ban record
// insert fails, the status flip is rolled back with a compensating write.
func (uc *UserController) BanUser(c *fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.Message(c, fiber.StatusUnprocessableEntity, "Invalid user ID.")
	}

	var input BanUserRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON.")
	}

	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationErrors(c, errs)
	}

	var target models.User
	if err := uc.DB.First(&target, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "User not found.")
		}
		return utils.InternalServerError(c)
	}

	var alreadyBanned models.BanRecord
	if err := uc.DB.Where("email = ?", target.Email).First(&alreadyBanned).Error; err == nil {
		return utils.Conflict(c, "User is already banned.")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.InternalServerError(c)
	}

	admin := middleware.UserFromContext(c)

	previousStatus := target.Status
	if err := uc.DB.Model(&target).Update("status", models.StatusBanned).Error; err != nil {
		return utils.InternalServerError(c)
	}

	record := models.BanRecord{
		Email:       target.Email,
		Reason:      input.Reason,
		BannedBy:    admin.ID,
		IsPermanent: input.IsPermanent,
		ExpiresAt:   input.ExpiresAt,
	}
	if err := uc.DB.Create(&record).Error; err != nil {
		// Compensating write: undo the status flip so the account is not
		// left banned without a record.
		uc.DB.Model(&target).Update("status", previousStatus)

		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.Conflict(c, "User is already banned.")
		}
		return utils.InternalServerError(c)
	}

	return c.JSON(fiber.Map{"message": "User banned successfully."})
}

// UnbanUser removes the ban record and reactivates the account.
func (uc *UserController) UnbanUser(c *fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.Message(c, fiber.StatusUnprocessableEntity, "Invalid user ID.")
	}

	var target models.User
	if err := uc.DB.First(&target, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "User not found.")
		}
		return utils.InternalServerError(c)
	}

	result := uc.DB.Unscoped().Where("email = ?", target.Email).Delete(&models.BanRecord{})
	if result.Error != nil {
		return utils.InternalServerError(c)
	}
	if result.RowsAffected == 0 {
		return utils.NotFound(c, "User is not banned.")
	}

	if err := uc.DB.Model(&target).Update("status", models.StatusActive).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return c.JSON(fiber.Map{"message": "User unbanned successfully."})
}
