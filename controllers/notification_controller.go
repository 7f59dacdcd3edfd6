package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/mahboube89/Training-Platform-Backend/config"
	"github.com/mahboube89/Training-Platform-Backend/middleware"
	"github.com/mahboube89/Training-Platform-Backend/models"
	"github.com/mahboube89/Training-Platform-Backend/utils"
)

type NotificationController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewNotificationController(db *gorm.DB, cfg *config.Config) *NotificationController {
	return &NotificationController{DB: db, Cfg: cfg}
}

type SendNotificationRequest struct {
	RecipientID uint   `json:"recipient_id" validate:"required"`
	Title       string `json:"title" validate:"required,max=100"`
	Message     string `json:"message" validate:"required"`
	Type        string `json:"type" validate:"omitempty,oneof=SYSTEM ANNOUNCEMENT ALERT REMINDER"`
}

// SendNotification creates a notification from the acting admin to one
// recipient. The role field is copied from the recipient at send time and is
// not kept in sync with later role changes.
func (nc *NotificationController) SendNotification(c *fiber.Ctx) error {
	var input SendNotificationRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON.")
	}

	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationErrors(c, errs)
	}

	var recipient models.User
	if err := nc.DB.First(&recipient, input.RecipientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "No user found.")
		}
		return utils.InternalServerError(c)
	}

	sender := middleware.UserFromContext(c)

	notificationType := input.Type
	if notificationType == "" {
		notificationType = models.NotificationSystem
	}

	notification := models.Notification{
		SenderID:    sender.ID,
		RecipientID: recipient.ID,
		Role:        recipient.Role,
		Title:       input.Title,
		Message:     input.Message,
		Type:        notificationType,
		IsRead:      false,
	}

	if err := nc.DB.Create(&notification).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":      "Notification sent successfully.",
		"notification": notification,
	})
}

// GetAllNotification returns every notification in the system.
func (nc *NotificationController) GetAllNotification(c *fiber.Ctx) error {
	var notifications []models.Notification
	if err := nc.DB.Find(&notifications).Error; err != nil {
		return utils.InternalServerError(c)
	}

	if len(notifications) == 0 {
		return utils.NotFound(c, "No notifications found.")
	}

	return c.JSON(fiber.Map{
		"message":       "All notifications retrieved successfully.",
		"notifications": notifications,
	})
}

// GetUserNotifications returns the acting user's own notifications.
func (nc *NotificationController) GetUserNotifications(c *fiber.Ctx) error {
	user := middleware.UserFromContext(c)

	var notifications []models.Notification
	if err := nc.DB.Where("recipient_id = ?", user.ID).
		Order("created_at DESC").Find(&notifications).Error; err != nil {
		return utils.InternalServerError(c)
	}

	if len(notifications) == 0 {
		return utils.NotFound(c, "No notifications found.")
	}

	return c.JSON(fiber.Map{
		"message":       "Notifications retrieved successfully.",
		"notifications": notifications,
	})
}

// MarkNotificationAsRead flips the isRead flag on one of the acting user's
// notifications.
func (nc *NotificationController) MarkNotificationAsRead(c *fiber.Ctx) error {
	notificationID, err := strconv.Atoi(c.Params("notificationId"))
	if err != nil {
		return utils.Message(c, fiber.StatusUnprocessableEntity, "Invalid notification ID.")
	}

	user := middleware.UserFromContext(c)

	result := nc.DB.Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", notificationID, user.ID).
		Update("is_read", true)
	if result.Error != nil {
		return utils.InternalServerError(c)
	}
	if result.RowsAffected == 0 {
		return utils.NotFound(c, "Notification not found.")
	}

	return c.JSON(fiber.Map{"message": "Notification marked as read."})
}
