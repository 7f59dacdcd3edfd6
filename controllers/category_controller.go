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

type CategoryController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCategoryController(db *gorm.DB, cfg *config.Config) *CategoryController {
	return &CategoryController{DB: db, Cfg: cfg}
}

type CreateCategoryRequest struct {
	Title string `json:"title" validate:"required,min=3,max=30"`
}

type UpdateCategoryRequest struct {
	Title string `json:"title" validate:"required,min=3,max=30"`
}

// CreateCategory creates a category with a slug derived from its title. The
// slug is generated once and never changes afterwards.
func (cc *CategoryController) CreateCategory(c *fiber.Ctx) error {
	var input CreateCategoryRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON.")
	}

	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationErrors(c, errs)
	}

	slug, err := utils.UniqueSlug(cc.DB, "categories", "slug", utils.Slugify(input.Title))
	if err != nil {
		return utils.InternalServerError(c)
	}

	category := models.Category{Title: input.Title, Slug: slug}
	if err := cc.DB.Create(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.Conflict(c, "Category with this title already exists.")
		}
		return utils.InternalServerError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Category created successfully.",
		"category": category,
	})
}

// GetAllCategory returns every category; 404 when none exist yet.
func (cc *CategoryController) GetAllCategory(c *fiber.Ctx) error {
	var categories []models.Category
	if err := cc.DB.Find(&categories).Error; err != nil {
		return utils.InternalServerError(c)
	}

	if len(categories) == 0 {
		return utils.NotFound(c, "No categories found.")
	}

	return c.JSON(fiber.Map{
		"message":    "All categories retrieved successfully.",
		"categories": categories,
	})
}

// UpdateCategory renames a category. The slug never changes after creation,
// so only the title is touched.
func (cc *CategoryController) UpdateCategory(c *fiber.Ctx) error {
	categoryID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.Message(c, fiber.StatusUnprocessableEntity, "Invalid category ID.")
	}

	var input UpdateCategoryRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON.")
	}

	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationErrors(c, errs)
	}

	var category models.Category
	if err := cc.DB.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Category not found.")
		}
		return utils.InternalServerError(c)
	}

	category.Title = input.Title
	if err := cc.DB.Save(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.Conflict(c, "Category with this title already exists.")
		}
		return utils.InternalServerError(c)
	}

	return c.JSON(fiber.Map{"message": "Category updated successfully.", "category": category})
}

// RemoveCategory deletes a category by id.
func (cc *CategoryController) RemoveCategory(c *fiber.Ctx) error {
	categoryID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.Message(c, fiber.StatusUnprocessableEntity, "Invalid category ID.")
	}

	result := cc.DB.Delete(&models.Category{}, categoryID)
	if result.Error != nil {
		return utils.InternalServerError(c)
	}
	if result.RowsAffected == 0 {
		return utils.NotFound(c, "Category not found.")
	}

	return c.JSON(fiber.Map{"message": "Category removed successfully."})
}
