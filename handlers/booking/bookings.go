package booking

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nexpertia/marketplace-api/model"
	"github.com/nexpertia/marketplace-api/services"
	"github.com/nexpertia/marketplace-api/utils"
	"github.com/nexpertia/marketplace-api/utils/response"
)

// BookingHandler handles booking-related requests
type BookingHandler struct {
	bookingService *services.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *services.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// BookCourse handles POST /api/v1/book. user_id defaults to the caller; only admins may book for others.
func (h *BookingHandler) BookCourse(c *fiber.Ctx) error {
	var req services.CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	userID, err := utils.TargetUser(c, req.UserID)
	if err != nil {
		return response.FromError(c, err)
	}
	req.UserID = userID

	booking, err := h.bookingService.Create(c.UserContext(), req)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, "Course booked successfully", booking.ToResponse())
}

// ListBookings handles GET /api/v1/bookings/:user_id
func (h *BookingHandler) ListBookings(c *fiber.Ctx) error {
	requested, err := utils.ParseID(c, "user_id")
	if err != nil {
		return response.FromError(c, err)
	}
	userID, err := utils.TargetUser(c, requested)
	if err != nil {
		return response.FromError(c, err)
	}

	bookings, err := h.bookingService.ListByUser(c.UserContext(), userID)
	if err != nil {
		return response.FromError(c, err)
	}

	out := make([]model.BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, bookings[i].ToResponse())
	}
	return response.Success(c, out)
}
