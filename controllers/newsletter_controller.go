package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/mahboube89/Training-Platform-Backend/config"
	"github.com/mahboube89/Training-Platform-Backend/models"
	"github.com/mahboube89/Training-Platform-Backend/utils"
)

type NewsletterController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewNewsletterController(db *gorm.DB, cfg *config.Config) *NewsletterController {
	return &NewsletterController{DB: db, Cfg: cfg}
}

type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// GetAllNewsletter lists every subscriber.
func (nc *NewsletterController) GetAllNewsletter(c *fiber.Ctx) error {
	var subscribers []models.NewsletterSubscriber
	if err := nc.DB.Find(&subscribers).Error; err != nil {
		return utils.InternalServerError(c)
	}

	if len(subscribers) == 0 {
		return utils.NotFound(c, "No newsletter subscribers found.")
	}

	return c.JSON(fiber.Map{
		"message":     "All newsletter subscribers retrieved successfully.",
		"subscribers": subscribers,
	})
}

// AddNewsletter subscribes an email address.
func (nc *NewsletterController) AddNewsletter(c *fiber.Ctx) error {
	var input SubscribeRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON.")
	}

	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationErrors(c, errs)
	}

	subscriber := models.NewsletterSubscriber{Email: input.Email}
	if err := nc.DB.Create(&subscriber).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.Conflict(c, "Email is already subscribed to the newsletter.")
		}
		return utils.InternalServerError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Successfully subscribed to the newsletter.",
		"subscriber": subscriber,
	})
}
