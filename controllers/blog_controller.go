package controllers

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mahboube89/Training-Platform-Backend/config"
	"github.com/mahboube89/Training-Platform-Backend/middleware"
	"github.com/mahboube89/Training-Platform-Backend/models"
	"github.com/mahboube89/Training-Platform-Backend/utils"
)

const defaultBlogCover = "cover.png"

type BlogController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewBlogController(db *gorm.DB, cfg *config.Config) *BlogController {
	return &BlogController{DB: db, Cfg: cfg}
}

type CreateBlogRequest struct {
	Title       string   `json:"title" form:"title" validate:"required,max=150"`
	Description string   `json:"description" form:"description" validate:"required,max=500"`
	Content     string   `json:"content" form:"content" validate:"required"`
	CategoryID  uint     `json:"category_id" form:"category_id" validate:"required"`
	Tags        []string `json:"tags" form:"tags" validate:"omitempty,dive,max=50"`
	IsPublished bool     `json:"is_published" form:"is_published"`
}

type UpdateBlogRequest struct {
	Description string   `json:"description" validate:"omitempty,max=500"`
	Content     string   `json:"content"`
	CategoryID  uint     `json:"category_id"`
	Tags        []string `json:"tags" validate:"omitempty,dive,max=50"`
	IsPublished *bool    `json:"is_published"`
}

// CreateBlogPost creates a post with a slug derived from the title,
// de-duplicated with a numeric suffix. The cover image is optional; when one
// was uploaded it is removed again on every failure path.
func (bc *BlogController) CreateBlogPost(c *fiber.Ctx) error {
	coverName := ""
	if coverFile, err := c.FormFile("cover"); err == nil {
		coverName, err = utils.SaveUpload(c, coverFile, bc.Cfg.StoragePath, utils.BlogCoverDir, utils.MaxCoverSize, utils.ImageContentTypes)
		if err != nil {
			return utils.BadRequest(c, "Only image files up to 2 MB are allowed for the cover.")
		}
	}

	cleanup := func() {
		utils.RemoveAsset(bc.Cfg.StoragePath, utils.BlogCoverDir, coverName)
	}

	var input CreateBlogRequest
	if err := c.BodyParser(&input); err != nil {
		cleanup()
		return utils.BadRequest(c, "Cannot parse request body.")
	}

	if errs := utils.ValidateStruct(input); errs != nil {
		cleanup()
		return utils.ValidationErrors(c, errs)
	}

	var category models.Category
	if err := bc.DB.First(&category, input.CategoryID).Error; err != nil {
		cleanup()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Invalid category ID: category not found.")
		}
		return utils.InternalServerError(c)
	}

	var existing models.Blog
	err := bc.DB.Where("title = ?", input.Title).First(&existing).Error
	if err == nil {
		cleanup()
		return utils.Conflict(c, "A blog with this title already exists.")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		cleanup()
		return utils.InternalServerError(c)
	}

	slug, err := utils.UniqueSlug(bc.DB, "blogs", "slug", utils.Slugify(input.Title))
	if err != nil {
		cleanup()
		return utils.InternalServerError(c)
	}

	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		cleanup()
		return utils.InternalServerError(c)
	}

	author := middleware.UserFromContext(c)

	cover := coverName
	if cover == "" {
		cover = defaultBlogCover
	}

	blog := models.Blog{
		Title:       input.Title,
		Description: input.Description,
		Content:     input.Content,
		AuthorID:    author.ID,
		CategoryID:  input.CategoryID,
		Tags:        datatypes.JSON(tagsJSON),
		CoverImage:  cover,
		IsPublished: input.IsPublished,
		Slug:        slug,
	}

	if err := bc.DB.Create(&blog).Error; err != nil {
		cleanup()
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.Conflict(c, "A blog with this title already exists.")
		}
		return utils.InternalServerError(c)
	}

	bc.DB.Preload("Category").Preload("Author").First(&blog, blog.ID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Blog created successfully.",
		"blog":    blog,
	})
}

// GetAllBlogPosts lists published posts.
func (bc *BlogController) GetAllBlogPosts(c *fiber.Ctx) error {
	var blogs []models.Blog
	if err := bc.DB.Preload("Category").Preload("Author").
		Where("is_published = ?", true).
		Order("created_at DESC").Find(&blogs).Error; err != nil {
		return utils.InternalServerError(c)
	}

	if len(blogs) == 0 {
		return c.JSON(fiber.Map{"message": "No blog posts to display.", "blogs": []models.Blog{}})
	}

	return c.JSON(fiber.Map{"message": "Blogs retrieved successfully.", "blogs": blogs})
}

// GetSingleBlogPost returns one post by slug, bumping its view counter and
// attaching the accepted comment thread.
func (bc *BlogController) GetSingleBlogPost(c *fiber.Ctx) error {
	var blog models.Blog
	err := bc.DB.Preload("Category").Preload("Author").
		Where("slug = ?", c.Params("slug")).First(&blog).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Blog not found.")
		}
		return utils.InternalServerError(c)
	}

	bc.DB.Model(&blog).UpdateColumn("views", gorm.Expr("views + 1"))
	blog.Views++

	comments, err := threadedComments(bc.DB, models.ReferenceBlog, blog.ID, true)
	if err != nil {
		return utils.InternalServerError(c)
	}

	return c.JSON(fiber.Map{
		"message":  "Blog retrieved successfully.",
		"blog":     blog,
		"comments": comments,
	})
}

// EditBlogPost updates post fields. The title and slug are immutable after
// creation so published URLs never break.
func (bc *BlogController) EditBlogPost(c *fiber.Ctx) error {
	blogID, err := strconv.Atoi(c.Params("blogId"))
	if err != nil {
		return utils.Message(c, fiber.StatusUnprocessableEntity, "Invalid blog ID.")
	}

	var input UpdateBlogRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON.")
	}

	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationErrors(c, errs)
	}

	var blog models.Blog
	if err := bc.DB.First(&blog, blogID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Blog not found.")
		}
		return utils.InternalServerError(c)
	}

	if input.Description != "" {
		blog.Description = input.Description
	}
	if input.Content != "" {
		blog.Content = input.Content
	}
	if input.CategoryID != 0 {
		var category models.Category
		if err := bc.DB.First(&category, input.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFound(c, "Invalid category ID: category not found.")
			}
			return utils.InternalServerError(c)
		}
		blog.CategoryID = input.CategoryID
	}
	if input.Tags != nil {
		tagsJSON, err := json.Marshal(input.Tags)
		if err != nil {
			return utils.InternalServerError(c)
		}
		blog.Tags = datatypes.JSON(tagsJSON)
	}
	if input.IsPublished != nil {
		blog.IsPublished = *input.IsPublished
	}

	if err := bc.DB.Save(&blog).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return c.JSON(fiber.Map{"message": "Blog updated successfully.", "blog": blog})
}
