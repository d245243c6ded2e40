package model

import (
	"time"

	"gorm.io/gorm"
)

// InvoiceStatus is set directly by callers; no transition rules apply
type InvoiceStatus string

const (
	InvoiceStatusPaid   InvoiceStatus = "paid"
	InvoiceStatusUnpaid InvoiceStatus = "unpaid"
)

func (s InvoiceStatus) Valid() bool {
	return s == InvoiceStatusPaid || s == InvoiceStatusUnpaid
}

// Invoice bills a single booking. The owning user is copied from the booking.
type Invoice struct {
	ID                    uint          `gorm:"primaryKey" json:"id"`
	CreatedAt             time.Time     `json:"created_at"`
	UpdatedAt             time.Time     `json:"updated_at"`
	BookingID             uint          `gorm:"uniqueIndex;not null" json:"booking_id"`
	UserID                uint          `gorm:"not null;index" json:"user_id"`
	InvoiceNumber         string        `gorm:"type:varchar(50);uniqueIndex;not null" json:"invoice_number"`
	Amount                float64       `gorm:"not null;check:amount >= 0" json:"amount"`
	VATAmount             float64       `gorm:"not null;default:0;check:vat_amount >= 0" json:"vat_amount"`
	Currency              string        `gorm:"type:varchar(10);default:'EUR'" json:"currency"`
	Status                InvoiceStatus `gorm:"type:varchar(20);not null;default:'unpaid'" json:"status"`
	DueDate               time.Time     `gorm:"not null" json:"due_date"`
	SellerTaxID           string        `gorm:"type:varchar(50)" json:"seller_tax_id"`
	CustomerTaxID         string        `gorm:"type:varchar(50)" json:"customer_tax_id"`
	PaymentMethod         string        `gorm:"type:varchar(50)" json:"payment_method"`
	Note                  string        `gorm:"type:text" json:"note"`
	PDFURL                string        `gorm:"type:varchar(500)" json:"pdf_url"`
	StripePaymentIntentID string        `gorm:"type:varchar(255)" json:"stripe_payment_intent_id,omitempty"`
}

func (i *Invoice) BeforeSave(tx *gorm.DB) error {
	if i.InvoiceNumber == "" {
		return notNull("invoices", "invoice_number")
	}
	if i.Status == "" {
		i.Status = InvoiceStatusUnpaid
	}
	if !i.Status.Valid() {
		return checkFailed("invoices", "status", "status must be paid or unpaid")
	}
	if err := nonNegative("invoices", "amount", i.Amount); err != nil {
		return err
	}
	return nonNegative("invoices", "vat_amount", i.VATAmount)
}

// InvoicePatch is a partial update of an invoice; nil fields keep the stored value
type InvoicePatch struct {
	Amount                *float64       `json:"amount" validate:"omitempty,gte=0"`
	VATAmount             *float64       `json:"vat_amount" validate:"omitempty,gte=0"`
	Currency              *string        `json:"currency" validate:"omitempty,max=10"`
	Status                *InvoiceStatus `json:"status" validate:"omitempty,oneof=paid unpaid"`
	DueDate               *time.Time     `json:"due_date"`
	SellerTaxID           *string        `json:"seller_tax_id"`
	CustomerTaxID         *string        `json:"customer_tax_id"`
	PaymentMethod         *string        `json:"payment_method"`
	Note                  *string        `json:"note"`
	StripePaymentIntentID *string        `json:"stripe_payment_intent_id"`
}

func (p InvoicePatch) Apply(i *Invoice) {
	if p.Amount != nil {
		i.Amount = *p.Amount
	}
	if p.VATAmount != nil {
		i.VATAmount = *p.VATAmount
	}
	if p.Status != nil {
		i.Status = *p.Status
	}
	if p.DueDate != nil {
		i.DueDate = p.DueDate.UTC()
	}
	mergeString(&i.Currency, p.Currency)
	mergeString(&i.SellerTaxID, p.SellerTaxID)
	mergeString(&i.CustomerTaxID, p.CustomerTaxID)
	mergeString(&i.PaymentMethod, p.PaymentMethod)
	mergeString(&i.Note, p.Note)
	mergeString(&i.StripePaymentIntentID, p.StripePaymentIntentID)
}

// InvoiceTemplateSetting stores a user's invoice defaults
type InvoiceTemplateSetting struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	UserID         uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	CompanyName    string    `gorm:"type:varchar(200);not null" json:"company_name"`
	CompanyAddress string    `gorm:"type:varchar(255)" json:"company_address"`
	TaxID          string    `gorm:"type:varchar(50)" json:"tax_id"`
	BankAccount    string    `gorm:"type:varchar(100)" json:"bank_account"`
	LogoURL        string    `gorm:"type:varchar(500)" json:"logo_url"`
	FooterNote     string    `gorm:"type:text" json:"footer_note"`
	DefaultVATRate float64   `gorm:"not null;default:0;check:default_vat_rate >= 0" json:"default_vat_rate"`
	DefaultDueDays int       `gorm:"not null;default:14;check:default_due_days >= 0" json:"default_due_days"`
	Currency       string    `gorm:"type:varchar(10);default:'EUR'" json:"currency"`
}

func (s *InvoiceTemplateSetting) BeforeSave(tx *gorm.DB) error {
	if s.CompanyName == "" {
		return notNull("invoice_template_settings", "company_name")
	}
	if s.DefaultDueDays < 0 {
		return checkFailed("invoice_template_settings", "default_due_days", "default_due_days must not be negative")
	}
	return nonNegative("invoice_template_settings", "default_vat_rate", s.DefaultVATRate)
}

// InvoiceTemplatePatch is a partial update of template settings
type InvoiceTemplatePatch struct {
	CompanyName    *string  `json:"company_name" validate:"omitempty,min=1,max=200"`
	CompanyAddress *string  `json:"company_address"`
	TaxID          *string  `json:"tax_id"`
	BankAccount    *string  `json:"bank_account"`
	LogoURL        *string  `json:"logo_url" validate:"omitempty,url"`
	FooterNote     *string  `json:"footer_note"`
	DefaultVATRate *float64 `json:"default_vat_rate" validate:"omitempty,gte=0"`
	DefaultDueDays *int     `json:"default_due_days" validate:"omitempty,gte=0"`
	Currency       *string  `json:"currency" validate:"omitempty,max=10"`
}

func (p InvoiceTemplatePatch) Apply(s *InvoiceTemplateSetting) {
	mergeString(&s.CompanyName, p.CompanyName)
	mergeString(&s.CompanyAddress, p.CompanyAddress)
	mergeString(&s.TaxID, p.TaxID)
	mergeString(&s.BankAccount, p.BankAccount)
	mergeString(&s.LogoURL, p.LogoURL)
	mergeString(&s.FooterNote, p.FooterNote)
	mergeString(&s.Currency, p.Currency)
	if p.DefaultVATRate != nil {
		s.DefaultVATRate = *p.DefaultVATRate
	}
	if p.DefaultDueDays != nil {
		s.DefaultDueDays = *p.DefaultDueDays
	}
}
