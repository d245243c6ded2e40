package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/nexpertia/marketplace-api/database"
	"github.com/nexpertia/marketplace-api/handlers"
	admin_handlers "github.com/nexpertia/marketplace-api/handlers/admin"
	auth_handlers "github.com/nexpertia/marketplace-api/handlers/auth"
	booking_handlers "github.com/nexpertia/marketplace-api/handlers/booking"
	course_handlers "github.com/nexpertia/marketplace-api/handlers/course"
	instructor_handlers "github.com/nexpertia/marketplace-api/handlers/instructor"
	invoice_handlers "github.com/nexpertia/marketplace-api/handlers/invoice"
	notification_handlers "github.com/nexpertia/marketplace-api/handlers/notification"
	subscription_handlers "github.com/nexpertia/marketplace-api/handlers/subscription"
	"github.com/nexpertia/marketplace-api/model"
	"github.com/nexpertia/marketplace-api/services"
	"github.com/nexpertia/marketplace-api/utils"
	"github.com/nexpertia/marketplace-api/utils/auth"
	"github.com/nexpertia/marketplace-api/utils/middleware"
)

// Dependencies are the collaborators the route table needs
type Dependencies struct {
	Store      database.Storage
	Services   *services.Services
	Tokens     auth.TokenIssuer
	BruteForce *middleware.BruteForceProtection // nil disables the login guard
	Security   middleware.SecurityConfig
	Log        zerolog.Logger

	// UploadsDir is served under UploadsPrefix when files are stored on local disk
	UploadsDir    string
	UploadsPrefix string
}

func SetupRoutes(app *fiber.App, deps Dependencies) {
	store := deps.Store
	svc := deps.Services

	// Apply security middleware
	middleware.SetupSecurity(app, deps.Security)

	authMiddleware := middleware.NewAuthMiddleware(deps.Tokens, store.Repos())

	authHandler := auth_handlers.NewAuthHandler(svc, deps.BruteForce)
	courseHandler := course_handlers.NewCourseHandler(svc)
	bookingHandler := booking_handlers.NewBookingHandler(svc.Bookings)
	notificationHandler := notification_handlers.NewNotificationHandler(svc.Notifications)
	subscriptionHandler := subscription_handlers.NewSubscriptionHandler(svc.Subscriptions)
	instructorHandler := instructor_handlers.NewInstructorHandler(svc.Instructors)
	invoiceHandler := invoice_handlers.NewInvoiceHandler(svc)
	adminHandler := admin_handlers.NewAdminHandler(svc.Admin)

	// Health check endpoint (public)
	app.Get("/ping", utils.MakeHTTPHandleFunc(handlers.HandleCheckHealth, store))

	if deps.UploadsDir != "" && deps.UploadsPrefix != "" {
		app.Static(deps.UploadsPrefix, deps.UploadsDir)
	}

	// API v1 group
	api := app.Group("/api/v1")

	// Auth routes
	api.Post("/register", authHandler.Register)
	if deps.BruteForce != nil {
		api.Post("/login", deps.BruteForce.CheckAndRecordAttempt(), authHandler.Login)
	} else {
		api.Post("/login", authHandler.Login)
	}
	api.Post("/refresh", authHandler.RefreshToken)
	api.Post("/logout", authMiddleware.Required(), authHandler.Logout)
	api.Post("/logout-all", authMiddleware.Required(), authHandler.LogoutAll)

	// Profile routes (protected)
	profile := api.Group("/profile", authMiddleware.Required())
	profile.Get("/", authHandler.GetProfile)
	profile.Post("/", authHandler.UpdateProfile)
	profile.Put("/", authHandler.UpdateProfile)
	api.Post("/upload_profile_picture", authMiddleware.Required(), authHandler.UploadProfilePicture)

	// Courses routes
	teaching := authMiddleware.RequireRole(model.RoleInstructor, model.RoleAdmin)
	courses := api.Group("/courses")
	courses.Get("/", courseHandler.ListCourses)
	courses.Get("/:id", courseHandler.GetCourse)
	courses.Post("/", authMiddleware.Required(), teaching, courseHandler.CreateCourse)
	courses.Post("/:id/add_resources", authMiddleware.Required(), teaching, courseHandler.AddResources)
	courses.Get("/:id/feedback", courseHandler.ListFeedback)
	api.Post("/feedback", authMiddleware.Required(), courseHandler.CreateFeedback)

	// Categories routes
	api.Get("/categories", courseHandler.ListCategories)
	api.Post("/categories", authMiddleware.RequireAdmin(), courseHandler.CreateCategory)

	// Booking routes (protected)
	api.Post("/book", authMiddleware.Required(), bookingHandler.BookCourse)
	api.Get("/bookings/:user_id", authMiddleware.Required(), bookingHandler.ListBookings)

	// Notification routes (protected)
	notifications := api.Group("/notifications", authMiddleware.Required())
	notifications.Get("/:user_id", notificationHandler.GetNotifications)
	notifications.Post("/:id/read", notificationHandler.MarkAsRead)
	notifications.Post("/:user_id/read-all", notificationHandler.MarkAllAsRead)

	// Subscription routes (protected)
	subscriptions := api.Group("/subscriptions", authMiddleware.Required())
	subscriptions.Post("/", subscriptionHandler.CreateSubscription)
	subscriptions.Get("/:user_id", subscriptionHandler.ListSubscriptions)
	subscriptions.Post("/:id/cancel", subscriptionHandler.CancelSubscription)

	// Invoice routes (protected)
	invoices := api.Group("/invoices", authMiddleware.Required())
	invoices.Post("/", invoiceHandler.CreateInvoice)
	invoices.Get("/:id", invoiceHandler.GetInvoice)
	invoices.Put("/:id", invoiceHandler.UpdateInvoice)
	invoices.Post("/:id/pdf", invoiceHandler.UploadInvoicePDF)
	api.Get("/users/:user_id/invoices", authMiddleware.Required(), invoiceHandler.ListUserInvoices)

	templates := api.Group("/invoice-template-settings", authMiddleware.Required())
	templates.Post("/", invoiceHandler.CreateTemplateSettings)
	templates.Get("/", invoiceHandler.GetTemplateSettings)
	templates.Put("/", invoiceHandler.UpdateTemplateSettings)

	// Instructor routes
	instructors := api.Group("/instructors")
	instructors.Get("/", instructorHandler.ListInstructors)
	instructors.Get("/:id", instructorHandler.GetInstructor)
	instructors.Get("/:id/courses", instructorHandler.ListInstructorCourses)
	instructors.Post("/", authMiddleware.RequireAdmin(), instructorHandler.CreateInstructor)
	instructors.Put("/:id", authMiddleware.Required(), instructorHandler.UpdateInstructor)
	instructors.Delete("/:id", authMiddleware.Required(), instructorHandler.DeleteInstructor)

	// Admin routes
	admin := api.Group("/admin", authMiddleware.RequireAdmin())
	admin.Get("/users", adminHandler.ListUsers)
	admin.Delete("/users/:id", middleware.AdminAuditLog(deps.Log, "user_delete", "users"), adminHandler.DeleteUser)
	admin.Post("/notifications", middleware.AdminAuditLog(deps.Log, "notification_create", "notifications"), notificationHandler.CreateNotification)
}
