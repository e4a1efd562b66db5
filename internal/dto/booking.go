package dto

import (
	"strings"
	"time"

	"github.com/enuri14/EcoTour-Enuri/internal/domain"
)

// CreateBookingRequest represents the request to book seats on a tour.
type CreateBookingRequest struct {
	TourID          int64  `json:"tourId" binding:"required,gt=0"`
	Seats           int    `json:"seats" binding:"required,gt=0"`
	CustomerName    string `json:"customerName" binding:"required,min=1,max=100"`
	CustomerEmail   string `json:"customerEmail" binding:"required,email,max=150"`
	CustomerPhone   string `json:"customerPhone" binding:"required,min=3,max=30"`
	CustomerAddress string `json:"customerAddress" binding:"required,min=1,max=300"`
}

// Validate validates the CreateBookingRequest
func (r *CreateBookingRequest) Validate() (bool, string) {
	if r.TourID <= 0 {
		return false, "Tour ID is required"
	}
	if r.Seats <= 0 {
		return false, "Seats must be greater than 0"
	}
	if r.CustomerName == "" {
		return false, "Customer name is required"
	}
	if !strings.Contains(r.CustomerEmail, "@") {
		return false, "A valid customer email is required"
	}
	if r.CustomerPhone == "" {
		return false, "Customer phone is required"
	}
	if r.CustomerAddress == "" {
		return false, "Customer address is required"
	}
	return true, ""
}

// BookingResponse represents the response for a booking
type BookingResponse struct {
	ID              int64  `json:"id"`
	Reference       string `json:"reference"`
	TourID          int64  `json:"tourId"`
	Seats           int    `json:"seats"`
	CustomerName    string `json:"customerName"`
	CustomerEmail   string `json:"customerEmail"`
	CustomerPhone   string `json:"customerPhone"`
	CustomerAddress string `json:"customerAddress"`
	CreatedAt       string `json:"createdAt"`
}

// CreateBookingResponse is the created booking together with the recomputed
// availability so the storefront can refresh its seat counter in one round
// trip.
type CreateBookingResponse struct {
	Booking      *BookingResponse     `json:"booking"`
	Availability *domain.Availability `json:"availability"`
}

// ToBookingResponse maps a domain booking to its response shape
func ToBookingResponse(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:              b.ID,
		Reference:       b.Reference,
		TourID:          b.TourID,
		Seats:           b.Seats,
		CustomerName:    b.CustomerName,
		CustomerEmail:   b.CustomerEmail,
		CustomerPhone:   b.CustomerPhone,
		CustomerAddress: b.CustomerAddress,
		CreatedAt:       b.CreatedAt.Format(time.RFC3339),
	}
}

// BookingListFilter represents filters for the admin booking list
type BookingListFilter struct {
	TourID int64 `form:"tour_id"`
	Limit  int   `form:"limit"`
	Offset int   `form:"offset"`
}

// SetDefaults sets default values for pagination
func (f *BookingListFilter) SetDefaults() {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}
