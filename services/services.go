package services

import (
	"github.com/rs/zerolog"

	"github.com/nexpertia/marketplace-api/database"
	"github.com/nexpertia/marketplace-api/model"
	"github.com/nexpertia/marketplace-api/services/storage"
	"github.com/nexpertia/marketplace-api/utils/apperrors"
	"github.com/nexpertia/marketplace-api/utils/auth"
	"github.com/nexpertia/marketplace-api/utils/validation"
)

// Dependencies are the collaborators shared by all services
type Dependencies struct {
	Store  database.Storage
	Hasher auth.PasswordHasher
	Tokens auth.TokenIssuer
	Files  storage.FileStorage
	Log    zerolog.Logger
}

// Services bundles every domain service
type Services struct {
	Auth             *AuthService
	Bookings         *BookingService
	Profiles         *ProfileService
	Instructors      *InstructorService
	Courses          *CourseService
	Feedback         *FeedbackService
	Invoices         *InvoiceService
	InvoiceTemplates *InvoiceTemplateService
	Notifications    *NotificationService
	Subscriptions    *SubscriptionService
	Admin            *AdminService
	Uploads          *UploadService
}

// New wires every service against the same storage handle
func New(deps Dependencies) *Services {
	v := validation.NewValidator()
	blacklist := auth.NewBlacklistService(deps.Store.Repos())

	return &Services{
		Auth:             NewAuthService(deps.Store, deps.Hasher, deps.Tokens, blacklist, v, deps.Log),
		Bookings:         NewBookingService(deps.Store, v, deps.Log),
		Profiles:         NewProfileService(deps.Store, v),
		Instructors:      NewInstructorService(deps.Store, v),
		Courses:          NewCourseService(deps.Store, v, deps.Log),
		Feedback:         NewFeedbackService(deps.Store, v),
		Invoices:         NewInvoiceService(deps.Store, deps.Files, v, deps.Log),
		InvoiceTemplates: NewInvoiceTemplateService(deps.Store, v),
		Notifications:    NewNotificationService(deps.Store, v),
		Subscriptions:    NewSubscriptionService(deps.Store, v),
		Admin:            NewAdminService(deps.Store, deps.Log),
		Uploads:          NewUploadService(deps.Store, deps.Files, deps.Log),
	}
}

// authorizeOwner allows admins and the owning user
func authorizeOwner(actor *model.User, ownerID uint) error {
	if actor == nil {
		return apperrors.NewAuthorizationError("")
	}
	if actor.Role == model.RoleAdmin || actor.ID == ownerID {
		return nil
	}
	return apperrors.NewAuthorizationError("you can only access your own resources")
}
