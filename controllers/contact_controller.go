package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/mahboube89/Training-Platform-Backend/config"
	"github.com/mahboube89/Training-Platform-Backend/models"
	"github.com/mahboube89/Training-Platform-Backend/utils"
)

type ContactController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Mailer *utils.Mailer
}

func NewContactController(db *gorm.DB, cfg *config.Config, mailer *utils.Mailer) *ContactController {
	return &ContactController{DB: db, Cfg: cfg, Mailer: mailer}
}

type AddTicketRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=50"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"omitempty,phone"`
	Body  string `json:"body" validate:"required,min=5,max=500"`
}

type AnswerTicketRequest struct {
	TicketID uint   `json:"ticket_id" validate:"required"`
	Subject  string `json:"subject" validate:"required,max=100"`
	Body     string `json:"body" validate:"required"`
}

// GetAllTickets returns every contact ticket.
func (cc *ContactController) GetAllTickets(c *fiber.Ctx) error {
	var tickets []models.ContactTicket
	if err := cc.DB.Find(&tickets).Error; err != nil {
		return utils.InternalServerError(c)
	}

	if len(tickets) == 0 {
		return utils.NotFound(c, "No tickets found.")
	}

	return c.JSON(fiber.Map{"message": "All tickets retrieved successfully.", "tickets": tickets})
}

// AddTicket stores a new contact ticket from the public form.
func (cc *ContactController) AddTicket(c *fiber.Ctx) error {
	var input AddTicketRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON.")
	}

	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationErrors(c, errs)
	}

	ticket := models.ContactTicket{
		Name:        input.Name,
		Email:       input.Email,
		Phone:       input.Phone,
		Body:        input.Body,
		HasResponse: false,
	}

	if err := cc.DB.Create(&ticket).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "New ticket added successfully.",
		"ticket":  ticket,
	})
}

// DeleteOneTicket removes a ticket by id.
func (cc *ContactController) DeleteOneTicket(c *fiber.Ctx) error {
	ticketID, err := strconv.Atoi(c.Params("ticketId"))
	if err != nil {
		return utils.Message(c, fiber.StatusUnprocessableEntity, "Invalid ticket ID.")
	}

	result := cc.DB.Delete(&models.ContactTicket{}, ticketID)
	if result.Error != nil {
		return utils.InternalServerError(c)
	}
	if result.RowsAffected == 0 {
		return utils.NotFound(c, "No ticket found.")
	}

	return c.JSON(fiber.Map{"message": "Ticket removed successfully."})
}

// AnswerTicket emails a reply to the ticket's sender. The send is
// synchronous and the answered flag is only set after it succeeds, so a
// failed send leaves the ticket unanswered and the admin can retry.
func (cc *ContactController) AnswerTicket(c *fiber.Ctx) error {
	var input AnswerTicketRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON.")
	}

	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationErrors(c, errs)
	}

	var ticket models.ContactTicket
	if err := cc.DB.First(&ticket, input.TicketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "No ticket found.")
		}
		return utils.InternalServerError(c)
	}

	if err := cc.Mailer.Send(ticket.Email, input.Subject, input.Body); err != nil {
		return utils.Message(c, fiber.StatusInternalServerError, "Failed to send the answer email.")
	}

	if err := cc.DB.Model(&ticket).Update("has_response", true).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return c.JSON(fiber.Map{"message": "Answer sent successfully."})
}
