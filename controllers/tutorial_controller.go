package controllers

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/mahboube89/Training-Platform-Backend/config"
	"github.com/mahboube89/Training-Platform-Backend/middleware"
	"github.com/mahboube89/Training-Platform-Backend/models"
	"github.com/mahboube89/Training-Platform-Backend/utils"
)

type TutorialController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewTutorialController(db *gorm.DB, cfg *config.Config) *TutorialController {
	return &TutorialController{DB: db, Cfg: cfg}
}

type CreateTutorialRequest struct {
	Title        string  `form:"title" validate:"required,min=5,max=100"`
	Description  string  `form:"description" validate:"required,max=500"`
	InstructorID uint    `form:"instructor_id" validate:"required"`
	CategoryID   uint    `form:"category_id" validate:"required"`
	Price        float64 `form:"price" validate:"gte=0"`
	IsFree       bool    `form:"is_free"`
	Status       string  `form:"status" validate:"required,oneof=COMPLETE INCOMPLETE"`
	OnSale       bool    `form:"on_sale"`
}

type AddSectionRequest struct {
	Title    string `form:"title" validate:"required,min=5,max=100"`
	Duration int    `form:"duration" validate:"required,gte=1"`
	IsFree   bool   `form:"is_free"`
}

// CreateTutorial creates a tutorial from a multipart form with a cover
// image. The cover lands on disk before the row is written, so every failure
// path after the save must remove the orphaned file.
func (tc *TutorialController) CreateTutorial(c *fiber.Ctx) error {
	coverFile, err := c.FormFile("cover")
	if err != nil {
		return utils.BadRequest(c, "Cover image is required.")
	}

	coverName, err := utils.SaveUpload(c, coverFile, tc.Cfg.StoragePath, utils.TutorialCoverDir, utils.MaxCoverSize, utils.ImageContentTypes)
	if err != nil {
		return utils.BadRequest(c, "Only image files up to 2 MB are allowed for the cover.")
	}

	cleanup := func() {
		utils.RemoveAsset(tc.Cfg.StoragePath, utils.TutorialCoverDir, coverName)
	}

	var input CreateTutorialRequest
	if err := c.BodyParser(&input); err != nil {
		cleanup()
		return utils.BadRequest(c, "Cannot parse form data.")
	}

	if errs := utils.ValidateStruct(input); errs != nil {
		cleanup()
		return utils.ValidationErrors(c, errs)
	}

	if !input.IsFree && input.Price <= 0 {
		cleanup()
		return utils.ValidationErrors(c, []string{"price is required unless the tutorial is free"})
	}

	// Check for a duplicate title in the same category.
	var duplicate models.Tutorial
	err = tc.DB.Where("title = ? AND category_id = ?", input.Title, input.CategoryID).First(&duplicate).Error
	if err == nil {
		cleanup()
		return utils.Conflict(c, "A tutorial with this title already exists in the selected category.")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		cleanup()
		return utils.InternalServerError(c)
	}

	var category models.Category
	if err := tc.DB.First(&category, input.CategoryID).Error; err != nil {
		cleanup()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Invalid category ID: category not found.")
		}
		return utils.InternalServerError(c)
	}

	var instructor models.User
	if err := tc.DB.First(&instructor, input.InstructorID).Error; err != nil {
		cleanup()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Invalid instructor ID: instructor not found.")
		}
		return utils.InternalServerError(c)
	}

	slug, err := utils.UniqueSlug(tc.DB, "tutorials", "slug", utils.Slugify(input.Title))
	if err != nil {
		cleanup()
		return utils.InternalServerError(c)
	}

	price := input.Price
	if input.IsFree {
		price = 0
	}

	creator := middleware.UserFromContext(c)

	tutorial := models.Tutorial{
		Title:        input.Title,
		Description:  input.Description,
		Cover:        coverName,
		InstructorID: input.InstructorID,
		CategoryID:   input.CategoryID,
		Slug:         slug,
		Price:        price,
		IsFree:       input.IsFree,
		Status:       input.Status,
		OnSale:       input.OnSale,
		CreatedBy:    creator.ID,
	}

	if err := tc.DB.Create(&tutorial).Error; err != nil {
		cleanup()
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.Conflict(c, "A tutorial with this title already exists in the selected category.")
		}
		return utils.InternalServerError(c)
	}

	tc.DB.Preload("Category").Preload("Instructor").First(&tutorial, tutorial.ID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Tutorial created successfully.",
		"tutorial": tutorial,
	})
}

// GetAllTutorials lists every tutorial with its instructor and category.
func (tc *TutorialController) GetAllTutorials(c *fiber.Ctx) error {
	var tutorials []models.Tutorial
	if err := tc.DB.Preload("Instructor").Preload("Category").Find(&tutorials).Error; err != nil {
		return utils.InternalServerError(c)
	}

	if len(tutorials) == 0 {
		return c.JSON(fiber.Map{"message": "No tutorial to display.", "tutorials": []models.Tutorial{}})
	}

	return c.JSON(fiber.Map{"message": "Tutorials retrieved successfully.", "tutorials": tutorials})
}

// GetTutorialDetails returns the full tutorial page: sections, accepted
// comments threaded with replies, and the acting user's enrollment state.
// Video filenames of paid sections are blanked for users who are not
// enrolled.
func (tc *TutorialController) GetTutorialDetails(c *fiber.Ctx) error {
	var tutorial models.Tutorial
	err := tc.DB.Preload("Instructor").Preload("Category").
		Where("slug = ?", c.Params("slug")).First(&tutorial).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Tutorial not found.")
		}
		return utils.InternalServerError(c)
	}

	var sections []models.Section
	if err := tc.DB.Where("tutorial_id = ?", tutorial.ID).Find(&sections).Error; err != nil {
		return utils.InternalServerError(c)
	}

	user := middleware.UserFromContext(c)
	enrolled := tc.isEnrolled(user.ID, tutorial.ID)

	if !enrolled {
		for i := range sections {
			if !sections[i].IsFree {
				sections[i].Video = ""
			}
		}
	}

	comments, err := threadedComments(tc.DB, models.ReferenceTutorial, tutorial.ID, true)
	if err != nil {
		return utils.InternalServerError(c)
	}

	return c.JSON(fiber.Map{
		"message":    "Tutorial retrieved successfully.",
		"tutorial":   tutorial,
		"sections":   sections,
		"comments":   comments,
		"isEnrolled": enrolled,
	})
}

// Enroll registers the acting user on a tutorial. The unique index on
// (user_id, tutorial_id) is the hard duplicate guarantee; the price is
// forced to 0 for free tutorials regardless of their stored price.
func (tc *TutorialController) Enroll(c *fiber.Ctx) error {
	tutorialID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.Message(c, fiber.StatusUnprocessableEntity, "Invalid tutorial ID.")
	}

	var tutorial models.Tutorial
	if err := tc.DB.First(&tutorial, tutorialID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Tutorial not found.")
		}
		return utils.InternalServerError(c)
	}

	user := middleware.UserFromContext(c)

	price := tutorial.Price
	if tutorial.IsFree {
		price = 0
	}

	enrollment := models.Enrollment{
		UserID:     user.ID,
		TutorialID: tutorial.ID,
		Price:      price,
	}

	if err := tc.DB.Create(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.Conflict(c, "You are already enrolled in this tutorial.")
		}
		return utils.InternalServerError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Enrolled successfully.",
		"enrollment": enrollment,
	})
}

// AddSection attaches a video section to a tutorial from a multipart form.
// Like CreateTutorial, the uploaded video must be removed on every failure
// path after it was stored.
func (tc *TutorialController) AddSection(c *fiber.Ctx) error {
	tutorialID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.Message(c, fiber.StatusUnprocessableEntity, "Invalid tutorial ID.")
	}

	var tutorial models.Tutorial
	if err := tc.DB.First(&tutorial, tutorialID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Tutorial not found.")
		}
		return utils.InternalServerError(c)
	}

	videoFile, err := c.FormFile("video")
	if err != nil {
		return utils.BadRequest(c, "Video is required.")
	}

	videoName, err := utils.SaveUpload(c, videoFile, tc.Cfg.StoragePath, utils.TutorialVideoDir, utils.MaxVideoSize, utils.VideoContentTypes)
	if err != nil {
		return utils.BadRequest(c, "Only video files up to 50 MB are allowed for sections.")
	}

	cleanup := func() {
		utils.RemoveAsset(tc.Cfg.StoragePath, utils.TutorialVideoDir, videoName)
	}

	var input AddSectionRequest
	if err := c.BodyParser(&input); err != nil {
		cleanup()
		return utils.BadRequest(c, "Cannot parse form data.")
	}

	if errs := utils.ValidateStruct(input); errs != nil {
		cleanup()
		return utils.ValidationErrors(c, errs)
	}

	var duplicate models.Section
	err = tc.DB.Where("title = ? AND tutorial_id = ?", input.Title, tutorial.ID).First(&duplicate).Error
	if err == nil {
		cleanup()
		return utils.Conflict(c, "A section with this title already exists for this tutorial.")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		cleanup()
		return utils.InternalServerError(c)
	}

	section := models.Section{
		Title:      input.Title,
		Video:      videoName,
		Duration:   input.Duration,
		IsFree:     input.IsFree,
		TutorialID: tutorial.ID,
	}

	if err := tc.DB.Create(&section).Error; err != nil {
		cleanup()
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.Conflict(c, "A section with this title already exists for this tutorial.")
		}
		return utils.InternalServerError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Section created successfully.",
		"section": section,
	})
}

// GetAllSections lists every section with its parent tutorial.
func (tc *TutorialController) GetAllSections(c *fiber.Ctx) error {
	var sections []models.Section
	if err := tc.DB.Preload("Tutorial").Find(&sections).Error; err != nil {
		return utils.InternalServerError(c)
	}

	if len(sections) == 0 {
		return c.JSON(fiber.Map{"message": "No sections available.", "sections": []models.Section{}})
	}

	return c.JSON(fiber.Map{"message": "Sections retrieved successfully.", "sections": sections})
}

// GetSectionInfo returns one section of a tutorial (looked up by slug)
// together with the sibling section list. Paid sections require enrollment.
func (tc *TutorialController) GetSectionInfo(c *fiber.Ctx) error {
	sectionID, err := strconv.Atoi(c.Params("sectionId"))
	if err != nil {
		return utils.Message(c, fiber.StatusUnprocessableEntity, "Invalid section ID.")
	}

	var tutorial models.Tutorial
	if err := tc.DB.Where("slug = ?", c.Params("slug")).First(&tutorial).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Tutorial not found.")
		}
		return utils.InternalServerError(c)
	}

	var selectedSection models.Section
	if err := tc.DB.Where("id = ? AND tutorial_id = ?", sectionID, tutorial.ID).First(&selectedSection).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Section not found.")
		}
		return utils.InternalServerError(c)
	}

	user := middleware.UserFromContext(c)
	if !selectedSection.IsFree && !tc.isEnrolled(user.ID, tutorial.ID) {
		return utils.Forbidden(c, "Enrollment required to access this section.")
	}

	var tutorialSections []models.Section
	if err := tc.DB.Where("tutorial_id = ?", tutorial.ID).Find(&tutorialSections).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return c.JSON(fiber.Map{
		"message":          "Section information retrieved successfully.",
		"selectedSection":  selectedSection,
		"tutorialSections": tutorialSections,
	})
}

// RemoveSection deletes a section and its stored video file.
func (tc *TutorialController) RemoveSection(c *fiber.Ctx) error {
	sectionID, err := strconv.Atoi(c.Params("sectionId"))
	if err != nil {
		return utils.Message(c, fiber.StatusUnprocessableEntity, "Invalid section ID.")
	}

	var section models.Section
	if err := tc.DB.First(&section, sectionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Section not found.")
		}
		return utils.InternalServerError(c)
	}

	if err := tc.DB.Delete(&section).Error; err != nil {
		return utils.InternalServerError(c)
	}

	if err := utils.RemoveAsset(tc.Cfg.StoragePath, utils.TutorialVideoDir, section.Video); err != nil {
		// The row is gone; a leftover file is only worth a log line.
		log.Printf("failed to delete video file %s: %v", section.Video, err)
	}

	return c.JSON(fiber.Map{"message": "Section deleted successfully.", "deletedSection": section})
}

func (tc *TutorialController) isEnrolled(userID, tutorialID uint) bool {
	var count int64
	tc.DB.Model(&models.Enrollment{}).
		Where("user_id = ? AND tutorial_id = ?", userID, tutorialID).
		Count(&count)
	return count > 0
}
