package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/mahboube89/Training-Platform-Backend/config"
	"github.com/mahboube89/Training-Platform-Backend/middleware"
	"github.com/mahboube89/Training-Platform-Backend/models"
	"github.com/mahboube89/Training-Platform-Backend/utils"
)

type CommentController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCommentController(db *gorm.DB, cfg *config.Config) *CommentController {
	return &CommentController{DB: db, Cfg: cfg}
}

type AddCommentRequest struct {
	Body            string `json:"body" validate:"required,min=5,max=100"`
	Review          *int   `json:"review" validate:"omitempty,gte=1,lte=5"`
	ParentCommentID *uint  `json:"parent_comment_id"`
}

// threadedComments materializes the comment tree for one reference: two
// queries (top-level, replies), replies grouped by parent id and attached.
// Parents with no replies get an empty slice, not null.
func threadedComments(db *gorm.DB, referenceType string, referenceID uint, acceptedOnly bool) ([]models.Comment, error) {
	base := db.Preload("User").
		Where("reference_type = ? AND reference_id = ?", referenceType, referenceID)
	if acceptedOnly {
		base = base.Where("is_accepted = ?", true)
	}

	var topLevel []models.Comment
	if err := base.Session(&gorm.Session{}).
		Where("parent_comment_id IS NULL").Find(&topLevel).Error; err != nil {
		return nil, err
	}

	var replies []models.Comment
	if err := base.Session(&gorm.Session{}).
		Where("parent_comment_id IS NOT NULL").Find(&replies).Error; err != nil {
		return nil, err
	}

	return attachReplies(topLevel, replies), nil
}

func attachReplies(topLevel, replies []models.Comment) []models.Comment {
	byParent := make(map[uint][]models.Comment)
	for _, reply := range replies {
		parentID := *reply.ParentCommentID
		byParent[parentID] = append(byParent[parentID], reply)
	}

	for i := range topLevel {
		children, ok := byParent[topLevel[i].ID]
		if !ok {
			children = []models.Comment{}
		}
		topLevel[i].Replies = children
	}

	if topLevel == nil {
		topLevel = []models.Comment{}
	}
	return topLevel
}

// GetAllComments returns every comment in the system, threaded.
func (cc *CommentController) GetAllComments(c *fiber.Ctx) error {
	var topLevel []models.Comment
	if err := cc.DB.Preload("User").
		Where("parent_comment_id IS NULL").Find(&topLevel).Error; err != nil {
		return utils.InternalServerError(c)
	}

	var replies []models.Comment
	if err := cc.DB.Preload("User").
		Where("parent_comment_id IS NOT NULL").Find(&replies).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return c.JSON(fiber.Map{
		"message":  "All comments retrieved successfully.",
		"comments": attachReplies(topLevel, replies),
	})
}

// AddCommentToTutorial adds a comment (or reply) to a tutorial.
func (cc *CommentController) AddCommentToTutorial(c *fiber.Ctx) error {
	return cc.addComment(c, models.ReferenceTutorial)
}

// AddCommentToBlog adds a comment (or reply) to a blog post.
func (cc *CommentController) AddCommentToBlog(c *fiber.Ctx) error {
	return cc.addComment(c, models.ReferenceBlog)
}

func (cc *CommentController) addComment(c *fiber.Ctx, referenceType string) error {
	contentID, err := strconv.Atoi(c.Params("contentId"))
	if err != nil {
		return utils.Message(c, fiber.StatusUnprocessableEntity, "Invalid content ID.")
	}

	var input AddCommentRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON.")
	}

	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationErrors(c, errs)
	}

	// The referenced content must exist.
	switch referenceType {
	case models.ReferenceTutorial:
		var tutorial models.Tutorial
		if err := cc.DB.First(&tutorial, contentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFound(c, "Tutorial not found.")
			}
			return utils.InternalServerError(c)
		}
	case models.ReferenceBlog:
		var blog models.Blog
		if err := cc.DB.First(&blog, contentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFound(c, "Blog not found.")
			}
			return utils.InternalServerError(c)
		}
	}

	// A reply's parent must exist and belong to the same content.
	if input.ParentCommentID != nil {
		var parent models.Comment
		err := cc.DB.Where("id = ? AND reference_type = ? AND reference_id = ?",
			*input.ParentCommentID, referenceType, contentID).First(&parent).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFound(c, "Parent comment not found.")
			}
			return utils.InternalServerError(c)
		}
	}

	user := middleware.UserFromContext(c)

	comment := models.Comment{
		Body:            input.Body,
		ReferenceType:   referenceType,
		ReferenceID:     uint(contentID),
		UserID:          user.ID,
		IsAccepted:      false,
		Review:          input.Review,
		ParentCommentID: input.ParentCommentID,
	}

	if err := cc.DB.Create(&comment).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Comment added successfully.",
		"comment": comment,
	})
}

// DeleteComment removes a comment and its direct replies. The cascade is a
// single level deep: replies-to-replies are left orphaned.
func (cc *CommentController) DeleteComment(c *fiber.Ctx) error {
	commentID, err := strconv.Atoi(c.Params("commentId"))
	if err != nil {
		return utils.Message(c, fiber.StatusUnprocessableEntity, "Invalid comment ID.")
	}

	var comment models.Comment
	if err := cc.DB.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Comment not found.")
		}
		return utils.InternalServerError(c)
	}

	if err := cc.DB.Where("parent_comment_id = ?", comment.ID).Delete(&models.Comment{}).Error; err != nil {
		return utils.InternalServerError(c)
	}

	if err := cc.DB.Delete(&comment).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return c.JSON(fiber.Map{"message": "Comment deleted successfully."})
}

// AcceptComment marks a comment as approved for public display.
func (cc *CommentController) AcceptComment(c *fiber.Ctx) error {
	return cc.setAccepted(c, true, "Comment accepted successfully.")
}

// RejectComment withdraws approval from a comment.
func (cc *CommentController) RejectComment(c *fiber.Ctx) error {
	return cc.setAccepted(c, false, "Comment rejected successfully.")
}

func (cc *CommentController) setAccepted(c *fiber.Ctx, accepted bool, message string) error {
	commentID, err := strconv.Atoi(c.Params("commentId"))
	if err != nil {
		return utils.Message(c, fiber.StatusUnprocessableEntity, "Invalid comment ID.")
	}

	result := cc.DB.Model(&models.Comment{}).
		Where("id = ?", commentID).
		Update("is_accepted", accepted)
	if result.Error != nil {
		return utils.InternalServerError(c)
	}
	if result.RowsAffected == 0 {
		return utils.NotFound(c, "Comment not found.")
	}

	return c.JSON(fiber.Map{"message": message})
}
