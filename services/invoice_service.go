package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nexpertia/marketplace-api/database"
	"github.com/nexpertia/marketplace-api/model"
	"github.com/nexpertia/marketplace-api/repository"
	"github.com/nexpertia/marketplace-api/services/storage"
	"github.com/nexpertia/marketplace-api/utils/apperrors"
	"github.com/nexpertia/marketplace-api/utils/filevalidation"
	"github.com/nexpertia/marketplace-api/utils/validation"
)

// InvoiceService bills bookings
type InvoiceService struct {
	store     database.Storage
	files     storage.FileStorage
	validator *validation.Validator
	log       zerolog.Logger
	now       func() time.Time
}

func NewInvoiceService(store database.Storage, files storage.FileStorage, v *validation.Validator, log zerolog.Logger) *InvoiceService {
	return &InvoiceService{
		store:     store,
		files:     files,
		validator: v,
		log:       log.With().Str("service", "invoice").Logger(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// CreateInvoiceRequest represents the payload for billing a booking
type CreateInvoiceRequest struct {
	BookingID             uint                `json:"booking_id" validate:"required"`
	InvoiceNumber         string              `json:"invoice_number" validate:"omitempty,max=50"`
	Amount                *float64            `json:"amount" validate:"required,gte=0"`
	VATAmount             *float64            `json:"vat_amount" validate:"omitempty,gte=0"`
	Currency              string              `json:"currency" validate:"omitempty,max=10"`
	Status                model.InvoiceStatus `json:"status" validate:"omitempty,oneof=paid unpaid"`
	DueDate               *time.Time          `json:"due_date" validate:"required"`
	SellerTaxID           string              `json:"seller_tax_id" validate:"max=50"`
	CustomerTaxID         string              `json:"customer_tax_id" validate:"max=50"`
	PaymentMethod         string              `json:"payment_method" validate:"max=50"`
	Note                  string              `json:"note"`
	StripePaymentIntentID string              `json:"stripe_payment_intent_id" validate:"max=255"`
}

// GenerateInvoiceNumber builds INV-YYYYMMDD-XXXXXXXX from the date and a random suffix
func GenerateInvoiceNumber(at time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("INV-%s-%s", at.UTC().Format("20060102"), suffix)
}

// authorizeInvoice allows admins, the billed user and the instructor of the booked course
func authorizeInvoice(ctx context.Context, repos *repository.Repositories, actor *model.User, booking *model.Booking) error {
	if actor == nil {
		return apperrors.NewAuthorizationError("")
	}
	if err := authorizeOwner(actor, booking.UserID); err == nil {
		return nil
	}
	course, err := repos.Courses.GetByID(ctx, booking.CourseID)
	if err != nil {
		return err
	}
	if actor.ID == course.InstructorID {
		return nil
	}
	return apperrors.NewAuthorizationError("you can only access invoices of your own bookings or courses")
}

// Create bills a booking once. Unset fields fall back to the invoice template of the course instructor.
func (s *InvoiceService) Create(ctx context.Context, actor *model.User, req CreateInvoiceRequest) (*model.Invoice, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	invoice := &model.Invoice{
		BookingID:             req.BookingID,
		InvoiceNumber:         strings.TrimSpace(req.InvoiceNumber),
		Amount:                *req.Amount,
		Currency:              req.Currency,
		Status:                req.Status,
		DueDate:               req.DueDate.UTC(),
		SellerTaxID:           req.SellerTaxID,
		CustomerTaxID:         req.CustomerTaxID,
		PaymentMethod:         req.PaymentMethod,
		Note:                  req.Note,
		StripePaymentIntentID: req.StripePaymentIntentID,
	}
	if req.VATAmount != nil {
		invoice.VATAmount = *req.VATAmount
	}
	if invoice.Status == "" {
		invoice.Status = model.InvoiceStatusUnpaid
	}

	err := s.store.WithTransaction(ctx, func(repos *repository.Repositories) error {
		booking, err := repos.Bookings.GetByID(ctx, req.BookingID)
		if err != nil {
			return err
		}
		if err := authorizeInvoice(ctx, repos, actor, booking); err != nil {
			return err
		}
		invoice.UserID = booking.UserID

		if _, err := repos.Invoices.GetByBookingID(ctx, booking.ID); err == nil {
			return apperrors.NewConflictError("booking %d already has an invoice", booking.ID)
		} else if !isNotFound(err) {
			return err
		}

		if invoice.InvoiceNumber == "" {
			invoice.InvoiceNumber = GenerateInvoiceNumber(s.now())
		} else if _, err := repos.Invoices.GetByNumber(ctx, invoice.InvoiceNumber); err == nil {
			return apperrors.NewConflictError("invoice number %s already exists", invoice.InvoiceNumber)
		} else if !isNotFound(err) {
			return err
		}

		if err := s.applyTemplate(ctx, repos, booking, invoice, req.VATAmount == nil); err != nil {
			return err
		}
		if invoice.Currency == "" {
			invoice.Currency = "EUR"
		}

		return repos.Invoices.Create(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Uint("invoice_id", invoice.ID).Str("invoice_number", invoice.InvoiceNumber).Msg("invoice created")
	return invoice, nil
}

// applyTemplate fills seller defaults from the template of the instructor teaching the booked course
func (s *InvoiceService) applyTemplate(ctx context.Context, repos *repository.Repositories, booking *model.Booking, invoice *model.Invoice, deriveVAT bool) error {
	course, err := repos.Courses.GetByID(ctx, booking.CourseID)
	if err != nil {
		return err
	}
	tmpl, err := repos.InvoiceTemplates.GetByUserID(ctx, course.InstructorID)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return err
	}

	if invoice.Currency == "" {
		invoice.Currency = tmpl.Currency
	}
	if invoice.SellerTaxID == "" {
		invoice.SellerTaxID = tmpl.TaxID
	}
	if deriveVAT && tmpl.DefaultVATRate > 0 {
		invoice.VATAmount = math.Round(invoice.Amount*tmpl.DefaultVATRate) / 100
	}
	return nil
}

// Update merges the patch. Moving an invoice to paid notifies the billed user.
func (s *InvoiceService) Update(ctx context.Context, actor *model.User, id uint, patch model.InvoicePatch) (*model.Invoice, error) {
	if err := s.validator.Validate(patch); err != nil {
		return nil, err
	}

	var invoice *model.Invoice
	err := s.store.WithTransaction(ctx, func(repos *repository.Repositories) error {
		inv, err := repos.Invoices.GetByID(ctx, id)
		if err != nil {
			return err
		}
		booking, err := repos.Bookings.GetByID(ctx, inv.BookingID)
		if err != nil {
			return err
		}
		if err := authorizeInvoice(ctx, repos, actor, booking); err != nil {
			return err
		}

		wasPaid := inv.Status == model.InvoiceStatusPaid
		patch.Apply(inv)
		if err := repos.Invoices.Update(ctx, inv); err != nil {
			return err
		}

		if !wasPaid && inv.Status == model.InvoiceStatusPaid {
			err := repos.Notifications.Create(ctx, &model.Notification{
				UserID:    inv.UserID,
				Message:   fmt.Sprintf("Invoice %s has been paid", inv.InvoiceNumber),
				Type:      model.NotificationTypePayment,
				BookingID: &inv.BookingID,
			})
			if err != nil {
				return err
			}
		}
		invoice = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

func (s *InvoiceService) Get(ctx context.Context, actor *model.User, id uint) (*model.Invoice, error) {
	repos := s.store.Repos()
	invoice, err := repos.Invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	booking, err := repos.Bookings.GetByID(ctx, invoice.BookingID)
	if err != nil {
		return nil, err
	}
	if err := authorizeInvoice(ctx, repos, actor, booking); err != nil {
		return nil, err
	}
	return invoice, nil
}

// ListByUser returns the invoices billed to an existing user
func (s *InvoiceService) ListByUser(ctx context.Context, userID uint) ([]model.Invoice, error) {
	repos := s.store.Repos()
	if _, err := repos.Users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return repos.Invoices.ListByUser(ctx, userID)
}

// AttachPDF validates and stores the invoice document, then records its URL
func (s *InvoiceService) AttachPDF(ctx context.Context, actor *model.User, id uint, content []byte) (*model.Invoice, error) {
	result := filevalidation.ValidatePDFBytes(content, filevalidation.InvoiceLimits)
	if !result.Valid {
		return nil, apperrors.NewValidationError("%s", result.Error)
	}

	if _, err := s.Get(ctx, actor, id); err != nil {
		return nil, err
	}

	key := storage.GenerateKey(fmt.Sprintf("invoices/%d", id), "invoice.pdf")
	url, err := s.files.Save(ctx, key, content, result.ContentType)
	if err != nil {
		s.log.Error().Err(err).Uint("invoice_id", id).Msg("failed to store invoice pdf")
		return nil, apperrors.NewPersistenceError(err)
	}

	var invoice *model.Invoice
	err = s.store.WithTransaction(ctx, func(repos *repository.Repositories) error {
		inv, err := repos.Invoices.GetByID(ctx, id)
		if err != nil {
			return err
		}
		inv.PDFURL = url
		if err := repos.Invoices.Update(ctx, inv); err != nil {
			return err
		}
		invoice = inv
		return nil
	})
	if err != nil {
		if delErr := s.files.Delete(ctx, key); delErr != nil {
			s.log.Warn().Err(delErr).Str("key", key).Msg("failed to remove orphaned invoice pdf")
		}
		return nil, err
	}

	s.log.Info().Uint("invoice_id", id).Int("pages", result.PageCount).Msg("invoice pdf attached")
	return invoice, nil
}

// InvoiceTemplateService manages per-user invoice defaults
type InvoiceTemplateService struct {
	store     database.Storage
	validator *validation.Validator
}

func NewInvoiceTemplateService(store database.Storage, v *validation.Validator) *InvoiceTemplateService {
	return &InvoiceTemplateService{store: store, validator: v}
}

// CreateInvoiceTemplateRequest represents the payload for the first template of a user
type CreateInvoiceTemplateRequest struct {
	CompanyName    string  `json:"company_name" validate:"required,max=200"`
	CompanyAddress string  `json:"company_address" validate:"max=255"`
	TaxID          string  `json:"tax_id" validate:"max=50"`
	BankAccount    string  `json:"bank_account" validate:"max=100"`
	LogoURL        string  `json:"logo_url" validate:"omitempty,url,max=500"`
	FooterNote     string  `json:"footer_note"`
	DefaultVATRate float64 `json:"default_vat_rate" validate:"gte=0"`
	DefaultDueDays *int    `json:"default_due_days" validate:"omitempty,gte=0"`
	Currency       string  `json:"currency" validate:"omitempty,max=10"`
}

func (s *InvoiceTemplateService) Create(ctx context.Context, userID uint, req CreateInvoiceTemplateRequest) (*model.InvoiceTemplateSetting, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	settings := &model.InvoiceTemplateSetting{
		UserID:         userID,
		CompanyName:    req.CompanyName,
		CompanyAddress: req.CompanyAddress,
		TaxID:          req.TaxID,
		BankAccount:    req.BankAccount,
		LogoURL:        req.LogoURL,
		FooterNote:     req.FooterNote,
		DefaultVATRate: req.DefaultVATRate,
		DefaultDueDays: 14,
		Currency:       req.Currency,
	}
	if req.DefaultDueDays != nil {
		settings.DefaultDueDays = *req.DefaultDueDays
	}
	if settings.Currency == "" {
		settings.Currency = "EUR"
	}

	err := s.store.WithTransaction(ctx, func(repos *repository.Repositories) error {
		if _, err := repos.Users.GetByID(ctx, userID); err != nil {
			return err
		}
		if _, err := repos.InvoiceTemplates.GetByUserID(ctx, userID); err == nil {
			return apperrors.NewConflictError("invoice template settings already exist")
		} else if !isNotFound(err) {
			return err
		}
		return repos.InvoiceTemplates.Create(ctx, settings)
	})
	if err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *InvoiceTemplateService) Get(ctx context.Context, userID uint) (*model.InvoiceTemplateSetting, error) {
	return s.store.Repos().InvoiceTemplates.GetByUserID(ctx, userID)
}

func (s *InvoiceTemplateService) Update(ctx context.Context, userID uint, patch model.InvoiceTemplatePatch) (*model.InvoiceTemplateSetting, error) {
	if err := s.validator.Validate(patch); err != nil {
		return nil, err
	}

	var settings *model.InvoiceTemplateSetting
	err := s.store.WithTransaction(ctx, func(repos *repository.Repositories) error {
		st, err := repos.InvoiceTemplates.GetByUserID(ctx, userID)
		if err != nil {
			return err
		}
		patch.Apply(st)
		if err := repos.InvoiceTemplates.Update(ctx, st); err != nil {
			return err
		}
		settings = st
		return nil
	})
	if err != nil {
		return nil, err
	}
	return settings, nil
}
