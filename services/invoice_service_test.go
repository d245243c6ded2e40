package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexpertia/marketplace-api/database/dbtest"
	"github.com/nexpertia/marketplace-api/model"
	"github.com/nexpertia/marketplace-api/utils/apperrors"
)

type invoiceFixture struct {
	env     *testEnv
	student *model.User
	tutor   *model.User
	booking *model.Booking
}

func newInvoiceFixture(t *testing.T) *invoiceFixture {
	t.Helper()
	env := newTestEnv(t)
	student := dbtest.CreateUser(t, env.store, "olivia", model.RoleStudent)
	tutor := dbtest.CreateUser(t, env.store, "paul", model.RoleInstructor)
	course := dbtest.CreateCourse(t, env.store, "Photography", dbtest.CreateCategory(t, env.store, "Art"), tutor)

	booking, err := env.svc.Bookings.Create(context.Background(), CreateBookingRequest{UserID: student.ID, CourseID: course.ID})
	require.NoError(t, err)
	return &invoiceFixture{env: env, student: student, tutor: tutor, booking: booking}
}

func (f *invoiceFixture) request(amount float64) CreateInvoiceRequest {
	due := time.Now().UTC().AddDate(0, 0, 14)
	return CreateInvoiceRequest{
		BookingID: f.booking.ID,
		Amount:    &amount,
		DueDate:   &due,
	}
}

func TestGenerateInvoiceNumber(t *testing.T) {
	at := time.Date(2026, 10, 15, 23, 59, 0, 0, time.UTC)
	number := GenerateInvoiceNumber(at)
	assert.Regexp(t, `^INV-20261015-[0-9A-F]{8}$`, number)
	assert.NotEqual(t, number, GenerateInvoiceNumber(at))
}

func TestCreateInvoice(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()

	invoice, err := f.env.svc.Invoices.Create(ctx, f.tutor, f.request(100))
	require.NoError(t, err)
	assert.Equal(t, f.student.ID, invoice.UserID)
	assert.Equal(t, f.booking.ID, invoice.BookingID)
	assert.Equal(t, model.InvoiceStatusUnpaid, invoice.Status)
	assert.Equal(t, "EUR", invoice.Currency)
	assert.Regexp(t, `^INV-\d{8}-[0-9A-F]{8}$`, invoice.InvoiceNumber)

	_, err = f.env.svc.Invoices.Create(ctx, f.tutor, f.request(100))
	require.ErrorIs(t, err, apperrors.ErrConflict)

	invoices, err := f.env.svc.Invoices.ListByUser(ctx, f.student.ID)
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, invoice.ID, invoices[0].ID)
}

func TestCreateInvoiceUsesTemplate(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()

	settings, err := f.env.svc.InvoiceTemplates.Create(ctx, f.tutor.ID, CreateInvoiceTemplateRequest{
		CompanyName:    "Paul Photo GmbH",
		TaxID:          "DE123456789",
		DefaultVATRate: 19,
		Currency:       "CHF",
	})
	require.NoError(t, err)
	assert.Equal(t, 14, settings.DefaultDueDays)

	invoice, err := f.env.svc.Invoices.Create(ctx, f.tutor, f.request(200))
	require.NoError(t, err)
	assert.Equal(t, "CHF", invoice.Currency)
	assert.Equal(t, "DE123456789", invoice.SellerTaxID)
	assert.InDelta(t, 38.0, invoice.VATAmount, 0.001)

	_, err = f.env.svc.InvoiceTemplates.Create(ctx, f.tutor.ID, CreateInvoiceTemplateRequest{CompanyName: "again"})
	require.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestCreateInvoiceTemplateBelongsToInstructor(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()

	_, err := f.env.svc.InvoiceTemplates.Create(ctx, f.tutor.ID, CreateInvoiceTemplateRequest{
		CompanyName:    "Paul Photo GmbH",
		TaxID:          "DE123456789",
		DefaultVATRate: 19,
		Currency:       "CHF",
	})
	require.NoError(t, err)
	// the student's own settings never describe the seller
	_, err = f.env.svc.InvoiceTemplates.Create(ctx, f.student.ID, CreateInvoiceTemplateRequest{
		CompanyName: "Olivia",
		TaxID:       "GB000000000",
		Currency:    "GBP",
	})
	require.NoError(t, err)

	invoice, err := f.env.svc.Invoices.Create(ctx, f.student, f.request(200))
	require.NoError(t, err)
	assert.Equal(t, "CHF", invoice.Currency)
	assert.Equal(t, "DE123456789", invoice.SellerTaxID)
	assert.InDelta(t, 38.0, invoice.VATAmount, 0.001)
}

func TestCreateInvoiceByAdminUsesInstructorTemplate(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()
	admin := dbtest.CreateUser(t, f.env.store, "sven", model.RoleAdmin)

	_, err := f.env.svc.InvoiceTemplates.Create(ctx, f.tutor.ID, CreateInvoiceTemplateRequest{
		CompanyName: "Paul Photo GmbH",
		TaxID:       "DE123456789",
		Currency:    "CHF",
	})
	require.NoError(t, err)

	invoice, err := f.env.svc.Invoices.Create(ctx, admin, f.request(50))
	require.NoError(t, err)
	assert.Equal(t, "CHF", invoice.Currency)
	assert.Equal(t, "DE123456789", invoice.SellerTaxID)
	assert.Zero(t, invoice.VATAmount)
}

func TestCreateInvoiceValidation(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()

	missingAmount := f.request(0)
	missingAmount.Amount = nil
	_, err := f.env.svc.Invoices.Create(ctx, f.tutor, missingAmount)
	require.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = f.env.svc.Invoices.Create(ctx, f.tutor, f.request(-1))
	require.ErrorIs(t, err, apperrors.ErrValidation)

	unknownBooking := f.request(10)
	unknownBooking.BookingID = 9999
	_, err = f.env.svc.Invoices.Create(ctx, f.tutor, unknownBooking)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCreateInvoiceDuplicateNumber(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()

	req := f.request(10)
	req.InvoiceNumber = "INV-CUSTOM-1"
	_, err := f.env.svc.Invoices.Create(ctx, f.student, req)
	require.NoError(t, err)

	second, err := f.env.svc.Bookings.Create(ctx, CreateBookingRequest{UserID: f.student.ID, CourseID: f.booking.CourseID})
	require.NoError(t, err)
	req.BookingID = second.ID
	_, err = f.env.svc.Invoices.Create(ctx, f.student, req)
	require.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestInvoiceAccess(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()
	stranger := dbtest.CreateUser(t, f.env.store, "quentin", model.RoleStudent)
	admin := dbtest.CreateUser(t, f.env.store, "ruth", model.RoleAdmin)

	_, err := f.env.svc.Invoices.Create(ctx, stranger, f.request(10))
	require.ErrorIs(t, err, apperrors.ErrAuthorization)

	invoice, err := f.env.svc.Invoices.Create(ctx, f.student, f.request(10))
	require.NoError(t, err)

	for _, actor := range []*model.User{f.student, f.tutor, admin} {
		_, err := f.env.svc.Invoices.Get(ctx, actor, invoice.ID)
		require.NoError(t, err, actor.Username)
	}

	_, err = f.env.svc.Invoices.Get(ctx, stranger, invoice.ID)
	require.ErrorIs(t, err, apperrors.ErrAuthorization)

	_, err = f.env.svc.Invoices.Get(ctx, admin, 9999)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestInvoicePaidNotifiesOnce(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()

	invoice, err := f.env.svc.Invoices.Create(ctx, f.tutor, f.request(50))
	require.NoError(t, err)

	note := "paid by transfer"
	updated, err := f.env.svc.Invoices.Update(ctx, f.tutor, invoice.ID, model.InvoicePatch{Note: &note})
	require.NoError(t, err)
	assert.Equal(t, note, updated.Note)
	assert.Equal(t, 50.0, updated.Amount)

	paid := model.InvoiceStatusPaid
	for i := 0; i < 2; i++ {
		updated, err = f.env.svc.Invoices.Update(ctx, f.tutor, invoice.ID, model.InvoicePatch{Status: &paid})
		require.NoError(t, err)
		assert.Equal(t, model.InvoiceStatusPaid, updated.Status)
		assert.Equal(t, note, updated.Note)
	}

	notifications, err := f.env.svc.Notifications.ListByUser(ctx, f.student.ID)
	require.NoError(t, err)

	var payments []model.Notification
	for _, n := range notifications {
		if n.Type == model.NotificationTypePayment {
			payments = append(payments, n)
		}
	}
	require.Len(t, payments, 1)
	assert.Equal(t, "Invoice "+invoice.InvoiceNumber+" has been paid", payments[0].Message)

	_, err = f.env.svc.Invoices.Update(ctx, f.tutor, 9999, model.InvoicePatch{Status: &paid})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAttachInvoicePDFRejectsNonPDF(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()

	invoice, err := f.env.svc.Invoices.Create(ctx, f.tutor, f.request(50))
	require.NoError(t, err)

	_, err = f.env.svc.Invoices.AttachPDF(ctx, f.tutor, invoice.ID, []byte("plain text"))
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestInvoiceTemplateUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := dbtest.CreateUser(t, env.store, "sara", model.RoleInstructor)

	_, err := env.svc.InvoiceTemplates.Get(ctx, user.ID)
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = env.svc.InvoiceTemplates.Create(ctx, user.ID, CreateInvoiceTemplateRequest{})
	require.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = env.svc.InvoiceTemplates.Create(ctx, user.ID, CreateInvoiceTemplateRequest{CompanyName: "Sara Studio", TaxID: "AT1"})
	require.NoError(t, err)

	days := 30
	settings, err := env.svc.InvoiceTemplates.Update(ctx, user.ID, model.InvoiceTemplatePatch{DefaultDueDays: &days})
	require.NoError(t, err)
	assert.Equal(t, 30, settings.DefaultDueDays)
	assert.Equal(t, "Sara Studio", settings.CompanyName)
	assert.Equal(t, "AT1", settings.TaxID)
	assert.Equal(t, "EUR", settings.Currency)
}
