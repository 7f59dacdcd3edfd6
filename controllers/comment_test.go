package controllers_test

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/mahboube89/Training-Platform-Backend/models"
)

func createTestTutorial(t *testing.T, instructorID, categoryID uint, title string, free bool) models.Tutorial {
	t.Helper()
	tutorial := models.Tutorial{
		Title:        title,
		Description:  "A tutorial used by the test suite.",
		Cover:        "cover.jpg",
		InstructorID: instructorID,
		CategoryID:   categoryID,
		Slug:         fmt.Sprintf("slug-%s", title),
		IsFree:       free,
		Price:        49.99,
		Status:       models.TutorialIncomplete,
	}
	if err := testDB.Create(&tutorial).Error; err != nil {
		t.Fatalf("create tutorial: %v", err)
	}
	return tutorial
}

func createTestComment(t *testing.T, userID, refID uint, parentID *uint, accepted bool) models.Comment {
	t.Helper()
	comment := models.Comment{
		Body:            "comment body text",
		ReferenceType:   models.ReferenceTutorial,
		ReferenceID:     refID,
		UserID:          userID,
		IsAccepted:      accepted,
		ParentCommentID: parentID,
	}
	if err := testDB.Create(&comment).Error; err != nil {
		t.Fatalf("create comment: %v", err)
	}
	return comment
}

func TestAddCommentAndReply(t *testing.T) {
	requireApp(t)
	resetTables(t)

	instructor, _ := createTestUser(t, models.RoleInstructor)
	_, token := createTestUser(t, models.RoleUser)
	category := createTestCategory(t, "Programming")
	tutorial := createTestTutorial(t, instructor.ID, category.ID, "Go Basics", true)

	resp := doJSON(t, "POST", fmt.Sprintf("/v1/comments/%d/tutorial/comments", tutorial.ID), map[string]interface{}{
		"body":   "Really enjoyed this one.",
		"review": 5,
	}, token)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	result := decodeBody(t, resp)
	comment := result["comment"].(map[string]interface{})
	assert.False(t, comment["is_accepted"].(bool))
	parentID := uint(comment["ID"].(float64))

	resp = doJSON(t, "POST", fmt.Sprintf("/v1/comments/%d/tutorial/comments", tutorial.ID), map[string]interface{}{
		"body":              "Same here, great pacing.",
		"parent_comment_id": parentID,
	}, token)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// Reply to a comment on different content is rejected.
	other := createTestTutorial(t, instructor.ID, category.ID, "Go Advanced", true)
	resp = doJSON(t, "POST", fmt.Sprintf("/v1/comments/%d/tutorial/comments", other.ID), map[string]interface{}{
		"body":              "Cross-content reply.",
		"parent_comment_id": parentID,
	}, token)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDeleteCommentCascadesOneLevel(t *testing.T) {
	requireApp(t)
	resetTables(t)

	_, adminToken := createTestUser(t, models.RoleAdmin)
	instructor, _ := createTestUser(t, models.RoleInstructor)
	user, _ := createTestUser(t, models.RoleUser)
	category := createTestCategory(t, "Programming")
	tutorial := createTestTutorial(t, instructor.ID, category.ID, "Go Basics", true)

	top := createTestComment(t, user.ID, tutorial.ID, nil, true)
	reply := createTestComment(t, user.ID, tutorial.ID, &top.ID, true)
	grandchild := createTestComment(t, user.ID, tutorial.ID, &reply.ID, true)

	resp := doJSON(t, "DELETE", fmt.Sprintf("/v1/comments/%d", top.ID), nil, adminToken)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var count int64
	testDB.Model(&models.Comment{}).Where("id IN ?", []uint{top.ID, reply.ID}).Count(&count)
	assert.Zero(t, count)

	// The cascade is one level deep: the reply-to-reply is left behind.
	var orphan models.Comment
	assert.NoError(t, testDB.First(&orphan, grandchild.ID).Error)
}

func TestAcceptCommentControlsVisibility(t *testing.T) {
	requireApp(t)
	resetTables(t)

	_, adminToken := createTestUser(t, models.RoleAdmin)
	instructor, _ := createTestUser(t, models.RoleInstructor)
	user, userToken := createTestUser(t, models.RoleUser)
	category := createTestCategory(t, "Programming")
	tutorial := createTestTutorial(t, instructor.ID, category.ID, "Go Basics", true)

	comment := createTestComment(t, user.ID, tutorial.ID, nil, false)

	// Pending comments are invisible on the public detail page.
	resp := doJSON(t, "GET", "/v1/tutorial/details/"+tutorial.Slug, nil, userToken)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	result := decodeBody(t, resp)
	assert.Empty(t, result["comments"])

	resp = doJSON(t, "PATCH", fmt.Sprintf("/v1/comments/%d/accept", comment.ID), nil, adminToken)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, "GET", "/v1/tutorial/details/"+tutorial.Slug, nil, userToken)
	result = decodeBody(t, resp)
	assert.Len(t, result["comments"], 1)
}
