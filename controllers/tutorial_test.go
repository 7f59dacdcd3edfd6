package controllers_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/mahboube89/Training-Platform-Backend/models"
	"github.com/mahboube89/Training-Platform-Backend/utils"
)

func TestEnrollForcesZeroPriceOnFreeTutorials(t *testing.T) {
	requireApp(t)
	resetTables(t)

	instructor, _ := createTestUser(t, models.RoleInstructor)
	_, token := createTestUser(t, models.RoleUser)
	category := createTestCategory(t, "Programming")

	// Free tutorial with a leftover non-zero price.
	tutorial := createTestTutorial(t, instructor.ID, category.ID, "Go Basics", true)

	resp := doJSON(t, "POST", fmt.Sprintf("/v1/tutorial/%d/enroll", tutorial.ID), nil, token)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var enrollment models.Enrollment
	testDB.Where("tutorial_id = ?", tutorial.ID).First(&enrollment)
	assert.Zero(t, enrollment.Price)
}

func TestEnrollTwiceConflict(t *testing.T) {
	requireApp(t)
	resetTables(t)

	instructor, _ := createTestUser(t, models.RoleInstructor)
	_, token := createTestUser(t, models.RoleUser)
	category := createTestCategory(t, "Programming")
	tutorial := createTestTutorial(t, instructor.ID, category.ID, "Go Basics", false)

	resp := doJSON(t, "POST", fmt.Sprintf("/v1/tutorial/%d/enroll", tutorial.ID), nil, token)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, "POST", fmt.Sprintf("/v1/tutorial/%d/enroll", tutorial.ID), nil, token)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	result := decodeBody(t, resp)
	assert.Equal(t, "You are already enrolled in this tutorial.", result["message"])
}

func TestPaidSectionVideoHiddenWithoutEnrollment(t *testing.T) {
	requireApp(t)
	resetTables(t)

	instructor, _ := createTestUser(t, models.RoleInstructor)
	_, token := createTestUser(t, models.RoleUser)
	category := createTestCategory(t, "Programming")
	tutorial := createTestTutorial(t, instructor.ID, category.ID, "Go Basics", false)

	section := models.Section{
		Title:      "Goroutines",
		Video:      "goroutines.mp4",
		Duration:   12,
		IsFree:     false,
		TutorialID: tutorial.ID,
	}
	if err := testDB.Create(&section).Error; err != nil {
		t.Fatalf("create section: %v", err)
	}

	resp := doJSON(t, "GET", "/v1/tutorial/details/"+tutorial.Slug, nil, token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decodeBody(t, resp)
	assert.Equal(t, false, result["isEnrolled"])
	sections := result["sections"].([]interface{})
	first := sections[0].(map[string]interface{})
	assert.Empty(t, first["video"])

	// Direct section access is refused as well.
	resp = doJSON(t, "GET", fmt.Sprintf("/v1/tutorial/%s/sections/%d", tutorial.Slug, section.ID), nil, token)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// After enrolling, the video is visible again.
	resp = doJSON(t, "POST", fmt.Sprintf("/v1/tutorial/%d/enroll", tutorial.ID), nil, token)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, "GET", "/v1/tutorial/details/"+tutorial.Slug, nil, token)
	result = decodeBody(t, resp)
	sections = result["sections"].([]interface{})
	first = sections[0].(map[string]interface{})
	assert.Equal(t, "goroutines.mp4", first["video"])
}

func tutorialForm(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		writer.WriteField(key, value)
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="cover"; filename="cover.png"`)
	header.Set("Content-Type", "image/png")
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create form part: %v", err)
	}
	part.Write([]byte("fake png bytes"))
	writer.Close()

	return body, writer.FormDataContentType()
}

func coverCount(t *testing.T) int {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(testCfg.StoragePath, utils.TutorialCoverDir))
	if os.IsNotExist(err) {
		return 0
	}
	if err != nil {
		t.Fatalf("read cover dir: %v", err)
	}
	return len(entries)
}

func TestCreateTutorialDuplicateTitleRemovesCover(t *testing.T) {
	requireApp(t)
	resetTables(t)

	instructor, token := createTestUser(t, models.RoleInstructor)
	category := createTestCategory(t, "Programming")
	createTestTutorial(t, instructor.ID, category.ID, "Go Basics", true)

	before := coverCount(t)

	body, contentType := tutorialForm(t, map[string]string{
		"title":         "Go Basics",
		"description":   "Duplicate of an existing tutorial.",
		"instructor_id": fmt.Sprint(instructor.ID),
		"category_id":   fmt.Sprint(category.ID),
		"is_free":       "true",
		"status":        models.TutorialIncomplete,
	})

	req := httptest.NewRequest("POST", "/v1/tutorial/create", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := testApp.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// The uploaded cover must not be left behind after the conflict.
	assert.Equal(t, before, coverCount(t))
}

func TestCreateTutorialRequiresInstructorRole(t *testing.T) {
	requireApp(t)
	resetTables(t)

	_, userToken := createTestUser(t, models.RoleUser)

	resp := doJSON(t, "POST", "/v1/tutorial/create", map[string]interface{}{}, userToken)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
