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

type MenuController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewMenuController(db *gorm.DB, cfg *config.Config) *MenuController {
	return &MenuController{DB: db, Cfg: cfg}
}

type CreateMenuRequest struct {
	Title      string `json:"title" validate:"required,min=5,max=20"`
	Order      int    `json:"order" validate:"omitempty,gte=0"`
	ParentID   *uint  `json:"parent_id"`
	CategoryID uint   `json:"category_id" validate:"required"`
}

// maxOrder returns the highest sibling order under the given parent (nil for
// main menu items), or 0 when there are no siblings yet.
func (mc *MenuController) maxOrder(parentID *uint) (int, error) {
	query := mc.DB.Model(&models.Menu{}).Select("COALESCE(MAX(item_order), 0)")
	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}

	var max int
	if err := query.Scan(&max).Error; err != nil {
		return 0, err
	}
	return max, nil
}

// shiftSiblings makes room at newOrder by incrementing every sibling at or
// above it. Ties between concurrent writers are not ordered further; the
// unique path index is the only hard guarantee around menu creation.
func (mc *MenuController) shiftSiblings(parentID uint, newOrder int) error {
	return mc.DB.Model(&models.Menu{}).
		Where("parent_id = ? AND item_order >= ?", parentID, newOrder).
		UpdateColumn("item_order", gorm.Expr("item_order + 1")).Error
}

// CreateMenu inserts a menu item. Main items are appended after the current
// highest order; submenu items may claim a specific slot, shifting existing
// siblings up by one (insert-with-shift). A caller-supplied order beyond the
// end of the list is clamped to maxOrder+1.
func (mc *MenuController) CreateMenu(c *fiber.Ctx) error {
	var input CreateMenuRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON.")
	}

	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationErrors(c, errs)
	}

	var category models.Category
	if err := mc.DB.First(&category, input.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Invalid category ID: category not found.")
		}
		return utils.InternalServerError(c)
	}

	if input.ParentID != nil {
		var parent models.Menu
		if err := mc.DB.First(&parent, *input.ParentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFound(c, "Parent menu not found.")
			}
			return utils.InternalServerError(c)
		}
	}

	var finalOrder int
	if input.ParentID == nil {
		max, err := mc.maxOrder(nil)
		if err != nil {
			return utils.InternalServerError(c)
		}
		finalOrder = max + 1
	} else {
		max, err := mc.maxOrder(input.ParentID)
		if err != nil {
			return utils.InternalServerError(c)
		}

		if input.Order == 0 || input.Order > max+1 {
			finalOrder = max + 1
		} else {
			finalOrder = input.Order
			if err := mc.shiftSiblings(*input.ParentID, finalOrder); err != nil {
				return utils.InternalServerError(c)
			}
		}
	}

	path, err := utils.UniqueSlug(mc.DB, "menus", "path", utils.Slugify(input.Title))
	if err != nil {
		return utils.InternalServerError(c)
	}

	menu := models.Menu{
		Title:      input.Title,
		Path:       path,
		Order:      finalOrder,
		ParentID:   input.ParentID,
		CategoryID: input.CategoryID,
	}

	if err := mc.DB.Create(&menu).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.Conflict(c, "A menu with this path already exists.")
		}
		return utils.InternalServerError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "New menu added successfully.",
		"menu":    menu,
	})
}

// GetAllMenus returns all main menu items with their submenus attached. The
// tree is flat in storage and materialized here with two queries and a
// group-by-parent map.
func (mc *MenuController) GetAllMenus(c *fiber.Ctx) error {
	var mains []models.Menu
	if err := mc.DB.Where("parent_id IS NULL").
		Order("item_order").Find(&mains).Error; err != nil {
		return utils.InternalServerError(c)
	}

	var submenus []models.Menu
	if err := mc.DB.Where("parent_id IS NOT NULL").
		Order("item_order").Find(&submenus).Error; err != nil {
		return utils.InternalServerError(c)
	}

	byParent := make(map[uint][]models.Menu)
	for _, submenu := range submenus {
		byParent[*submenu.ParentID] = append(byParent[*submenu.ParentID], submenu)
	}

	for i := range mains {
		children, ok := byParent[mains[i].ID]
		if !ok {
			children = []models.Menu{}
		}
		mains[i].Submenus = children
	}

	return c.JSON(fiber.Map{"message": "All menus retrieved successfully.", "menus": mains})
}

// GetSingleMenu returns one menu item with its submenus, if any.
func (mc *MenuController) GetSingleMenu(c *fiber.Ctx) error {
	menuID, err := strconv.Atoi(c.Params("menuId"))
	if err != nil {
		return utils.Message(c, fiber.StatusUnprocessableEntity, "Invalid menu ID.")
	}

	var menu models.Menu
	if err := mc.DB.First(&menu, menuID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Menu not found.")
		}
		return utils.InternalServerError(c)
	}

	var submenus []models.Menu
	if err := mc.DB.Where("parent_id = ?", menu.ID).
		Order("item_order").Find(&submenus).Error; err != nil {
		return utils.InternalServerError(c)
	}
	if submenus == nil {
		submenus = []models.Menu{}
	}
	menu.Submenus = submenus

	return c.JSON(fiber.Map{"message": "Menu retrieved successfully.", "menu": menu})
}
