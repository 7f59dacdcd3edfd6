package controllers_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/mahboube89/Training-Platform-Backend/config"
	"github.com/mahboube89/Training-Platform-Backend/controllers"
	"github.com/mahboube89/Training-Platform-Backend/models"
)

// Short keywords are rejected before any query runs, so this needs no
// database at all. The length check counts runes, not bytes: a two-character
// multibyte keyword is just as short as "go".
func TestSearchRejectsShortKeyword(t *testing.T) {
	app := fiber.New()
	searchController := controllers.NewSearchController(nil, &config.Config{})
	app.Get("/v1/search/:keyword", searchController.FindKeywordGlobal)

	for _, target := range []string{
		"/v1/search/go",
		"/v1/search/%E6%97%A5%E6%9C%AC", // 日本: two runes, six bytes
	} {
		resp, err := app.Test(httptest.NewRequest("GET", target, nil))
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "target %s", target)
	}
}

func TestSearchDecodesEncodedKeyword(t *testing.T) {
	requireApp(t)
	resetTables(t)

	instructor, _ := createTestUser(t, models.RoleInstructor)
	category := createTestCategory(t, "Programming")
	createTestTutorial(t, instructor.ID, category.ID, "Clean Architecture", true)

	// A browser sends the space percent-encoded; it must match the stored
	// title, not the literal "%20" byte sequence.
	resp := doJSON(t, "GET", "/v1/search/clean%20arch", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decodeBody(t, resp)
	assert.Len(t, result["results"], 1)
}

func TestSearchMatchesTitleAndDescription(t *testing.T) {
	requireApp(t)
	resetTables(t)

	instructor, _ := createTestUser(t, models.RoleInstructor)
	category := createTestCategory(t, "Programming")
	createTestTutorial(t, instructor.ID, category.ID, "Goroutines Deep Dive", true)

	tutorial := createTestTutorial(t, instructor.ID, category.ID, "Web APIs", true)
	testDB.Model(&tutorial).Update("description", "Building services with goroutines under the hood.")

	resp := doJSON(t, "GET", "/v1/search/goroutines", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decodeBody(t, resp)
	assert.Len(t, result["results"], 2)
}

func TestSearchEmptyResultIsOK(t *testing.T) {
	requireApp(t)
	resetTables(t)

	resp := doJSON(t, "GET", "/v1/search/nonexistent", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decodeBody(t, resp)
	assert.Empty(t, result["results"])
}

func TestSearchTreatsWildcardsLiterally(t *testing.T) {
	requireApp(t)
	resetTables(t)

	instructor, _ := createTestUser(t, models.RoleInstructor)
	category := createTestCategory(t, "Programming")
	createTestTutorial(t, instructor.ID, category.ID, "Go Basics", true)

	// "___" would match any three characters if passed through unescaped.
	resp := doJSON(t, "GET", "/v1/search/___", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decodeBody(t, resp)
	assert.Empty(t, result["results"])
}
