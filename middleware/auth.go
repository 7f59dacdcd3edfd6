package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/mahboube89/Training-Platform-Backend/config"
	"github.com/mahboube89/Training-Platform-Backend/models"
	"github.com/mahboube89/Training-Platform-Backend/utils"
)

const userLocalsKey = "currentUser"

// Protected verifies the bearer token, resolves the acting user and stores
// it in the request locals so downstream role checks and handlers do not
// need a second lookup. Banned accounts are rejected here, which makes every
// authenticated route ban-gated.
func Protected(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := utils.ExtractUserIDFromToken(c, cfg)
		if err != nil {
			if errors.Is(err, utils.ErrNoToken) {
				return utils.Unauthorized(c, "Access denied. No token provided.")
			}
			return utils.Unauthorized(c, "Invalid or expired token.")
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFound(c, "User not found.")
			}
			return utils.InternalServerError(c)
		}

		if user.Status == models.StatusBanned {
			return utils.Forbidden(c, "Access denied. User is banned.")
		}

		c.Locals(userLocalsKey, &user)
		return c.Next()
	}
}

// UserFromContext returns the user loaded by Protected. It is nil on routes
// that are not behind the auth middleware.
func UserFromContext(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userLocalsKey).(*models.User)
	return user
}

// RequireRoles allows the request through only when the authenticated user's
// role is one of the given roles. Must run after Protected.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := UserFromContext(c)
		if user == nil {
			return utils.Unauthorized(c, "Access denied. No user found.")
		}

		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}
		return utils.Forbidden(c, "Access denied. Insufficient role.")
	}
}

// RequireAdmin restricts a route to ADMIN accounts.
func RequireAdmin() fiber.Handler {
	return RequireRoles(models.RoleAdmin)
}
