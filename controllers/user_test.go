package controllers_test

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/mahboube89/Training-Platform-Backend/models"
)

func TestBanAndUnbanUser(t *testing.T) {
	requireApp(t)
	resetTables(t)

	_, adminToken := createTestUser(t, models.RoleAdmin)
	target, _ := createTestUser(t, models.RoleUser)

	resp := doJSON(t, "POST", fmt.Sprintf("/v1/users/ban/%d", target.ID), map[string]interface{}{
		"reason":       "spamming the comment sections",
		"is_permanent": true,
	}, adminToken)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var banned models.User
	testDB.First(&banned, target.ID)
	assert.Equal(t, models.StatusBanned, banned.Status)

	var record models.BanRecord
	err := testDB.Where("email = ?", target.Email).First(&record).Error
	assert.NoError(t, err)
	assert.True(t, record.IsPermanent)

	// Banning twice is a conflict.
	resp = doJSON(t, "POST", fmt.Sprintf("/v1/users/ban/%d", target.ID), map[string]interface{}{
		"reason": "still spamming",
	}, adminToken)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = doJSON(t, "POST", fmt.Sprintf("/v1/users/unban/%d", target.ID), nil, adminToken)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var restored models.User
	testDB.First(&restored, target.ID)
	assert.Equal(t, models.StatusActive, restored.Status)

	var recordCount int64
	testDB.Unscoped().Model(&models.BanRecord{}).Where("email = ?", target.Email).Count(&recordCount)
	assert.Zero(t, recordCount)
}

func TestBanRequiresAdmin(t *testing.T) {
	requireApp(t)
	resetTables(t)

	_, userToken := createTestUser(t, models.RoleUser)
	target, _ := createTestUser(t, models.RoleUser)

	resp := doJSON(t, "POST", fmt.Sprintf("/v1/users/ban/%d", target.ID), map[string]interface{}{
		"reason": "no reason at all",
	}, userToken)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestUpdateProfileUniqueness(t *testing.T) {
	requireApp(t)
	resetTables(t)

	other, _ := createTestUser(t, models.RoleUser)
	_, token := createTestUser(t, models.RoleUser)

	// Claiming another account's username is a conflict.
	resp := doJSON(t, "POST", "/v1/users", map[string]string{
		"username": other.Username,
	}, token)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = doJSON(t, "POST", "/v1/users", map[string]string{
		"email": other.Email,
	}, token)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// A free username goes through.
	resp = doJSON(t, "POST", "/v1/users", map[string]string{
		"username": "brandnewname",
	}, token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decodeBody(t, resp)
	user := result["user"].(map[string]interface{})
	assert.Equal(t, "brandnewname", user["username"])
}

func TestGetAllUsersRequiresAdmin(t *testing.T) {
	requireApp(t)
	resetTables(t)

	_, adminToken := createTestUser(t, models.RoleAdmin)
	_, userToken := createTestUser(t, models.RoleUser)

	resp := doJSON(t, "GET", "/v1/users", nil, userToken)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, "GET", "/v1/users", nil, adminToken)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
