package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"

	"github.com/mahboube89/Training-Platform-Backend/config"
	"github.com/mahboube89/Training-Platform-Backend/controllers"
	"github.com/mahboube89/Training-Platform-Backend/middleware"
	"github.com/mahboube89/Training-Platform-Backend/models"
	"github.com/mahboube89/Training-Platform-Backend/utils"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, mailer *utils.Mailer) {
	v1 := app.Group("/v1")

	// Middleware
	protected := middleware.Protected(db, cfg)
	admin := middleware.RequireAdmin()
	adminOrInstructor := middleware.RequireRoles(models.RoleAdmin, models.RoleInstructor)
	adminOrAuthor := middleware.RequireRoles(models.RoleAdmin, models.RoleAuthor)

	loginLimiter := limiter.New(limiter.Config{
		Max:        5,
		Expiration: 15 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return utils.Message(c, fiber.StatusTooManyRequests, "Too many login attempts. Try again later.")
		},
	})

	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	auth := v1.Group("/auth")
	auth.Post("/register", authController.Register)
	auth.Post("/login", loginLimiter, authController.Login)
	auth.Get("/me", protected, authController.GetMe)

	// User routes
	userController := controllers.NewUserController(db, cfg)
	users := v1.Group("/users", protected)
	users.Get("/", admin, userController.GetAllUsers)
	users.Post("/", userController.UpdateProfile)
	users.Post("/ban/:id", admin, userController.BanUser)
	users.Post("/unban/:id", admin, userController.UnbanUser)

	// Category routes
	categoryController := controllers.NewCategoryController(db, cfg)
	category := v1.Group("/category")
	category.Get("/", categoryController.GetAllCategory)
	category.Post("/", protected, admin, categoryController.CreateCategory)
	category.Put("/:id", protected, admin, categoryController.UpdateCategory)
	category.Delete("/:id", protected, admin, categoryController.RemoveCategory)

	// Tutorial routes
	tutorialController := controllers.NewTutorialController(db, cfg)
	tutorial := v1.Group("/tutorial", protected)
	tutorial.Post("/create", adminOrInstructor, tutorialController.CreateTutorial)
	tutorial.Get("/", admin, tutorialController.GetAllTutorials)
	tutorial.Get("/sections", admin, tutorialController.GetAllSections)
	tutorial.Delete("/sections/:sectionId", admin, tutorialController.RemoveSection)
	tutorial.Get("/details/:slug", tutorialController.GetTutorialDetails)
	tutorial.Post("/:id/enroll", tutorialController.Enroll)
	tutorial.Post("/:id/sections", adminOrInstructor, tutorialController.AddSection)
	tutorial.Get("/:slug/sections/:sectionId", tutorialController.GetSectionInfo)

	// Blog routes
	blogController := controllers.NewBlogController(db, cfg)
	blog := v1.Group("/blog")
	blog.Get("/", blogController.GetAllBlogPosts)
	blog.Post("/", protected, adminOrAuthor, blogController.CreateBlogPost)
	blog.Put("/:blogId", protected, adminOrAuthor, blogController.EditBlogPost)
	blog.Get("/:slug", blogController.GetSingleBlogPost)

	// Comment routes
	commentController := controllers.NewCommentController(db, cfg)
	comments := v1.Group("/comments", protected)
	comments.Get("/", admin, commentController.GetAllComments)
	comments.Post("/:contentId/tutorial/comments", commentController.AddCommentToTutorial)
	comments.Post("/:contentId/blog/comments", commentController.AddCommentToBlog)
	comments.Delete("/:commentId", admin, commentController.DeleteComment)
	comments.Patch("/:commentId/accept", admin, commentController.AcceptComment)
	comments.Patch("/:commentId/reject", admin, commentController.RejectComment)

	// Menu routes
	menuController := controllers.NewMenuController(db, cfg)
	menus := v1.Group("/menus", protected, admin)
	menus.Post("/", menuController.CreateMenu)
	menus.Get("/", menuController.GetAllMenus)
	menus.Get("/:menuId", menuController.GetSingleMenu)

	// Contact routes
	contactController := controllers.NewContactController(db, cfg, mailer)
	contact := v1.Group("/contact")
	contact.Post("/", contactController.AddTicket)
	contact.Get("/", protected, admin, contactController.GetAllTickets)
	contact.Post("/answer", protected, admin, contactController.AnswerTicket)
	contact.Delete("/:ticketId", protected, admin, contactController.DeleteOneTicket)

	// Newsletter routes
	newsletterController := controllers.NewNewsletterController(db, cfg)
	newsletter := v1.Group("/newsletter")
	newsletter.Post("/", newsletterController.AddNewsletter)
	newsletter.Get("/", protected, admin, newsletterController.GetAllNewsletter)

	// Notification routes
	notificationController := controllers.NewNotificationController(db, cfg)
	notification := v1.Group("/notification", protected)
	notification.Post("/send", admin, notificationController.SendNotification)
	notification.Get("/", admin, notificationController.GetAllNotification)
	notification.Get("/user", notificationController.GetUserNotifications)
	notification.Patch("/:notificationId/read", notificationController.MarkNotificationAsRead)

	// Search routes
	searchController := controllers.NewSearchController(db, cfg)
	v1.Get("/search/:keyword", searchController.FindKeywordGlobal)
}
