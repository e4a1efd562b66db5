package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/enuri14/EcoTour-Enuri/internal/domain"
	"github.com/enuri14/EcoTour-Enuri/internal/dto"
	"github.com/enuri14/EcoTour-Enuri/internal/service"
	"github.com/enuri14/EcoTour-Enuri/pkg/response"
)

// BookingHandler handles booking HTTP requests
type BookingHandler struct {
	bookingService service.BookingService
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(bookingService service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// Create handles POST /bookings.
//
// Status mapping: 400 for malformed or invalid input, 404 for an unknown
// tour, 409 with the remaining seat count when the request does not fit,
// 500 for store failures (safe to retry, nothing was written).
func (h *BookingHandler) Create(c *gin.Context) {
	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	booking, availability, err := h.bookingService.CreateBooking(c.Request.Context(), &req)
	if err != nil {
		if capErr, ok := domain.IsCapacityExceeded(err); ok {
			response.Conflict(c, "CAPACITY_EXCEEDED", capErr.Error())
			return
		}
		if errors.Is(err, domain.ErrTourNotFound) {
			response.NotFound(c, "Tour not found")
			return
		}
		if domain.IsValidationError(err) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}

	response.Created(c, &dto.CreateBookingResponse{
		Booking:      dto.ToBookingResponse(booking),
		Availability: availability,
	})
}

// Get handles GET /bookings/:id (admin)
func (h *BookingHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "Invalid booking ID")
		return
	}

	booking, err := h.bookingService.GetBooking(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrBookingNotFound) {
			response.NotFound(c, "Booking not found")
			return
		}
		response.InternalError(c, err)
		return
	}

	response.Success(c, dto.ToBookingResponse(booking))
}

// List handles GET /bookings (admin)
func (h *BookingHandler) List(c *gin.Context) {
	var filter dto.BookingListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	bookings, total, err := h.bookingService.ListBookings(c.Request.Context(), &filter)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	bookingResponses := make([]*dto.BookingResponse, len(bookings))
	for i, booking := range bookings {
		bookingResponses[i] = dto.ToBookingResponse(booking)
	}

	filter.SetDefaults()
	response.Paginated(c, bookingResponses, filter.Offset/filter.Limit+1, filter.Limit, int64(total))
}
