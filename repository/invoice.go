package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/nexpertia/marketplace-api/model"
)

type InvoiceRepository struct {
	db *gorm.DB
}

func (r *InvoiceRepository) Create(ctx context.Context, invoice *model.Invoice) error {
	return create(ctx, r.db, invoice, "invoice")
}

func (r *InvoiceRepository) Update(ctx context.Context, invoice *model.Invoice) error {
	return save(ctx, r.db, invoice, "invoice")
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id uint) (*model.Invoice, error) {
	return first[model.Invoice](ctx, r.db, "invoice", "id = ?", id)
}

func (r *InvoiceRepository) GetByNumber(ctx context.Context, number string) (*model.Invoice, error) {
	return first[model.Invoice](ctx, r.db, "invoice", "invoice_number = ?", number)
}

func (r *InvoiceRepository) GetByBookingID(ctx context.Context, bookingID uint) (*model.Invoice, error) {
	return first[model.Invoice](ctx, r.db, "invoice", "booking_id = ?", bookingID)
}

func (r *InvoiceRepository) ListByUser(ctx context.Context, userID uint) ([]model.Invoice, error) {
	return list[model.Invoice](ctx, r.db, "invoice", "user_id = ?", userID)
}

func (r *InvoiceRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID[model.Invoice](ctx, r.db, id, "invoice")
}

type InvoiceTemplateRepository struct {
	db *gorm.DB
}

func (r *InvoiceTemplateRepository) Create(ctx context.Context, settings *model.InvoiceTemplateSetting) error {
	return create(ctx, r.db, settings, "invoice template settings")
}

func (r *InvoiceTemplateRepository) Update(ctx context.Context, settings *model.InvoiceTemplateSetting) error {
	return save(ctx, r.db, settings, "invoice template settings")
}

func (r *InvoiceTemplateRepository) GetByUserID(ctx context.Context, userID uint) (*model.InvoiceTemplateSetting, error) {
	return first[model.InvoiceTemplateSetting](ctx, r.db, "invoice template settings", "user_id = ?", userID)
}
