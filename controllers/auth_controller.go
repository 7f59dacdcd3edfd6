package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mahboube89/Training-Platform-Backend/config"
	"github.com/mahboube89/Training-Platform-Backend/middleware"
	"github.com/mahboube89/Training-Platform-Backend/models"
	"github.com/mahboube89/Training-Platform-Backend/utils"
)

type AuthController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAuthController(db *gorm.DB, cfg *config.Config) *AuthController {
	return &AuthController{DB: db, Cfg: cfg}
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"omitempty,min=3,max=50"`
	Username string `json:"username" validate:"required,min=4,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// Register creates a new account. The very first account in the store
// becomes ADMIN; everyone after that starts as USER.
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input RegisterRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON.")
	}

	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationErrors(c, errs)
	}

	// Check if a user with the same username or email already exists. A
	// banned account gets its own error so the frontend can explain why
	// re-registration is refused.
	var existing models.User
	err := ac.DB.Where("username = ? OR email = ?", input.Username, input.Email).First(&existing).Error
	if err == nil {
		if existing.Status == models.StatusBanned {
			return utils.Forbidden(c, "This account is banned.")
		}
		return utils.Conflict(c, "Username or email is already taken.")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.InternalServerError(c)
	}

	var countOfUsers int64
	if err := ac.DB.Model(&models.User{}).Count(&countOfUsers).Error; err != nil {
		return utils.InternalServerError(c)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), 12)
	if err != nil {
		return utils.InternalServerError(c)
	}

	role := models.RoleUser
	if countOfUsers == 0 {
		role = models.RoleAdmin
	}

	user := models.User{
		Name:     input.Name,
		Username: input.Username,
		Email:    input.Email,
		Password: string(hashedPassword),
		Role:     role,
		Status:   models.StatusActive,
	}

	if err := ac.DB.Create(&user).Error; err != nil {
		// The unique indexes are the real guarantee; a concurrent
		// registration can slip past the check above.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.Conflict(c, "Username or email is already taken.")
		}
		return utils.InternalServerError(c)
	}

	accessToken, err := utils.GenerateJWTToken(user.ID, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":        user,
		"accessToken": accessToken,
	})
}

// Login authenticates by username or email. A banned account is rejected
// with 403 regardless of password correctness.
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input LoginRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON.")
	}

	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationErrors(c, errs)
	}

	var user models.User
	err := ac.DB.Where("username = ? OR email = ?", input.Identifier, input.Identifier).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Unauthorized(c, "User not found.")
		}
		return utils.InternalServerError(c)
	}

	if user.Status == models.StatusBanned {
		return utils.Forbidden(c, "Access denied. User is banned.")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return utils.Unauthorized(c, "Incorrect password.")
	}

	accessToken, err := utils.GenerateJWTToken(user.ID, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c)
	}

	return c.JSON(fiber.Map{
		"user":        user,
		"accessToken": accessToken,
	})
}

// GetMe returns the authenticated user's own account.
func (ac *AuthController) GetMe(c *fiber.Ctx) error {
	user := middleware.UserFromContext(c)
	if user == nil {
		return utils.Unauthorized(c, "Access denied. No user found.")
	}
	return c.JSON(fiber.Map{"user": user})
}
