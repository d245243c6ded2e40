package invoice

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/nexpertia/marketplace-api/model"
	"github.com/nexpertia/marketplace-api/services"
	"github.com/nexpertia/marketplace-api/utils"
	"github.com/nexpertia/marketplace-api/utils/middleware"
	"github.com/nexpertia/marketplace-api/utils/response"
)

// InvoiceHandler handles invoices and invoice template settings
type InvoiceHandler struct {
	invoiceService  *services.InvoiceService
	templateService *services.InvoiceTemplateService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(svc *services.Services) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService:  svc.Invoices,
		templateService: svc.InvoiceTemplates,
	}
}

// CreateInvoice handles POST /api/v1/invoices
func (h *InvoiceHandler) CreateInvoice(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok || user == nil {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req services.CreateInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	invoice, err := h.invoiceService.Create(c.UserContext(), user, req)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, "Invoice created successfully", invoice)
}

// UpdateInvoice handles PUT /api/v1/invoices/:id
func (h *InvoiceHandler) UpdateInvoice(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok || user == nil {
		return response.Unauthorized(c, "User not authenticated")
	}

	id, err := utils.ParseID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}

	var patch model.InvoicePatch
	if err := c.BodyParser(&patch); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	invoice, err := h.invoiceService.Update(c.UserContext(), user, id, patch)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "Invoice updated successfully", invoice)
}

// GetInvoice handles GET /api/v1/invoices/:id
func (h *InvoiceHandler) GetInvoice(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok || user == nil {
		return response.Unauthorized(c, "User not authenticated")
	}

	id, err := utils.ParseID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}

	invoice, err := h.invoiceService.Get(c.UserContext(), user, id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, invoice)
}

// ListUserInvoices handles GET /api/v1/users/:user_id/invoices
func (h *InvoiceHandler) ListUserInvoices(c *fiber.Ctx) error {
	requested, err := utils.ParseID(c, "user_id")
	if err != nil {
		return response.FromError(c, err)
	}
	userID, err := utils.TargetUser(c, requested)
	if err != nil {
		return response.FromError(c, err)
	}

	invoices, err := h.invoiceService.ListByUser(c.UserContext(), userID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, invoices)
}

// UploadInvoicePDF handles POST /api/v1/invoices/:id/pdf with a multipart "file" field
func (h *InvoiceHandler) UploadInvoicePDF(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok || user == nil {
		return response.Unauthorized(c, "User not authenticated")
	}

	id, err := utils.ParseID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "No file part")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return response.BadRequest(c, "Failed to read uploaded file")
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return response.BadRequest(c, "Failed to read uploaded file")
	}

	invoice, err := h.invoiceService.AttachPDF(c.UserContext(), user, id, content)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "Invoice PDF uploaded successfully", invoice)
}
