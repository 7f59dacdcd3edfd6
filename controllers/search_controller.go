package controllers

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/mahboube89/Training-Platform-Backend/config"
	"github.com/mahboube89/Training-Platform-Backend/models"
	"github.com/mahboube89/Training-Platform-Backend/utils"
)

type SearchController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewSearchController(db *gorm.DB, cfg *config.Config) *SearchController {
	return &SearchController{DB: db, Cfg: cfg}
}

// escapeLike neutralizes LIKE wildcards in user input so the keyword is
// matched literally.
func escapeLike(keyword string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(keyword)
}

// FindKeywordGlobal does a case-insensitive substring search over tutorial
// titles and descriptions. Keywords shorter than three characters are
// rejected before any query runs; an empty result set is a 200, not a 404.
func (sc *SearchController) FindKeywordGlobal(c *fiber.Ctx) error {
	// Route params arrive percent-encoded; decode before measuring and
	// matching so multibyte keywords behave like ASCII ones.
	keyword, err := url.PathUnescape(c.Params("keyword"))
	if err != nil {
		keyword = c.Params("keyword")
	}

	if utf8.RuneCountInString(keyword) < 3 {
		return utils.BadRequest(c, "Search keyword must be at least 3 characters long.")
	}

	pattern := "%" + escapeLike(keyword) + "%"

	var results []models.Tutorial
	err = sc.DB.Select("id", "title", "description", "slug").
		Where("title ILIKE ? OR description ILIKE ?", pattern, pattern).
		Find(&results).Error
	if err != nil {
		return utils.InternalServerError(c)
	}

	if results == nil {
		results = []models.Tutorial{}
	}

	return c.JSON(fiber.Map{
		"message": "Search results retrieved successfully.",
		"results": results,
	})
}
