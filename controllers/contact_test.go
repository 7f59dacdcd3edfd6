package controllers_test

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/mahboube89/Training-Platform-Backend/models"
)

func TestAddTicket(t *testing.T) {
	requireApp(t)
	resetTables(t)

	resp := doJSON(t, "POST", "/v1/contact", map[string]string{
		"name":  "Visitor",
		"email": "visitor@example.com",
		"phone": "+4915112345678",
		"body":  "How do I reset my password?",
	}, "")
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var ticket models.ContactTicket
	testDB.Where("email = ?", "visitor@example.com").First(&ticket)
	assert.False(t, ticket.HasResponse)
}

func TestAddTicketRejectsBadPhone(t *testing.T) {
	requireApp(t)
	resetTables(t)

	resp := doJSON(t, "POST", "/v1/contact", map[string]string{
		"name":  "Visitor",
		"email": "visitor@example.com",
		"phone": "not-a-phone",
		"body":  "How do I reset my password?",
	}, "")
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	result := decodeBody(t, resp)
	assert.Contains(t, result["errors"], "phone has an invalid format")
}

// With no reachable SMTP server the send fails, and the ticket must stay
// unanswered so the admin can retry.
func TestAnswerTicketFailedSendLeavesTicketOpen(t *testing.T) {
	requireApp(t)
	resetTables(t)

	_, adminToken := createTestUser(t, models.RoleAdmin)

	ticket := models.ContactTicket{
		Name:  "Visitor",
		Email: "visitor@example.com",
		Body:  "How do I reset my password?",
	}
	testDB.Create(&ticket)

	resp := doJSON(t, "POST", "/v1/contact/answer", map[string]interface{}{
		"ticket_id": ticket.ID,
		"subject":   "Password reset",
		"body":      "Use the reset link on the login page.",
	}, adminToken)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var after models.ContactTicket
	testDB.First(&after, ticket.ID)
	assert.False(t, after.HasResponse)
}

func TestDeleteTicket(t *testing.T) {
	requireApp(t)
	resetTables(t)

	_, adminToken := createTestUser(t, models.RoleAdmin)

	ticket := models.ContactTicket{Name: "Visitor", Email: "v@example.com", Body: "Hello there"}
	testDB.Create(&ticket)

	resp := doJSON(t, "DELETE", fmt.Sprintf("/v1/contact/%d", ticket.ID), nil, adminToken)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, "DELETE", fmt.Sprintf("/v1/contact/%d", ticket.ID), nil, adminToken)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
