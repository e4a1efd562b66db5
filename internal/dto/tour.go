package dto

import (
	"time"

	"github.com/enuri14/EcoTour-Enuri/internal/domain"
)

// CreateTourRequest represents the request to create a new tour. The schema
// is deliberately strict: unknown or alternately named fields are rejected
// rather than coalesced.
type CreateTourRequest struct {
	Category    string `json:"category" binding:"required,min=1,max=50"`
	Name        string `json:"name" binding:"required,min=1,max=150"`
	Description string `json:"description" binding:"required,min=1"`
	Capacity    *int   `json:"capacity" binding:"required,gte=0"`
	Image       string `json:"image" binding:"omitempty,url"`
}

// Validate validates the CreateTourRequest
func (r *CreateTourRequest) Validate() (bool, string) {
	if r.Category == "" {
		return false, "Category is required"
	}
	if r.Name == "" {
		return false, "Tour name is required"
	}
	if r.Description == "" {
		return false, "Description is required"
	}
	if r.Capacity == nil || *r.Capacity < 0 {
		return false, "Capacity must be zero or greater"
	}
	return true, ""
}

// UpdateTourRequest represents the request to update a tour
type UpdateTourRequest struct {
	Category    string  `json:"category" binding:"omitempty,min=1,max=50"`
	Name        string  `json:"name" binding:"omitempty,min=1,max=150"`
	Description string  `json:"description" binding:"omitempty,min=1"`
	Capacity    *int    `json:"capacity" binding:"omitempty,gte=0"`
	Image       *string `json:"image" binding:"omitempty"`
}

// Validate validates the UpdateTourRequest
func (r *UpdateTourRequest) Validate() (bool, string) {
	if r.Category == "" && r.Name == "" && r.Description == "" && r.Capacity == nil && r.Image == nil {
		return false, "At least one field must be provided for update"
	}
	if r.Capacity != nil && *r.Capacity < 0 {
		return false, "Capacity must be zero or greater"
	}
	return true, ""
}

// TourResponse represents the response for a tour
type TourResponse struct {
	ID          int64  `json:"id"`
	Category    string `json:"category"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Capacity    int    `json:"capacity"`
	Image       string `json:"image,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// TourWithAvailabilityResponse is a tour plus its current seat picture,
// returned from admin mutations so a client can warn when capacity drops
// below the booked total.
type TourWithAvailabilityResponse struct {
	Tour         *TourResponse        `json:"tour"`
	Availability *domain.Availability `json:"availability"`
}

// ToTourResponse maps a domain tour to its response shape
func ToTourResponse(t *domain.Tour) *TourResponse {
	return &TourResponse{
		ID:          t.ID,
		Category:    t.Category,
		Name:        t.Name,
		Description: t.Description,
		Capacity:    t.Capacity,
		Image:       t.Image,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339),
	}
}

// TourListFilter represents filters for listing tours
type TourListFilter struct {
	Category string `form:"category"`
	Search   string `form:"search"`
	Limit    int    `form:"limit"`
	Offset   int    `form:"offset"`
}

// SetDefaults sets default values for pagination
func (f *TourListFilter) SetDefaults() {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}
