package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/enuri14/EcoTour-Enuri/internal/domain"
	"github.com/enuri14/EcoTour-Enuri/internal/dto"
	"github.com/enuri14/EcoTour-Enuri/internal/repository"
	"github.com/enuri14/EcoTour-Enuri/pkg/telemetry"
)

// tourService implements TourService
type tourService struct {
	tourRepo    repository.TourRepository
	bookingRepo repository.BookingRepository
}

// NewTourService creates a new TourService
func NewTourService(tourRepo repository.TourRepository, bookingRepo repository.BookingRepository) TourService {
	return &tourService{
		tourRepo:    tourRepo,
		bookingRepo: bookingRepo,
	}
}

// CreateTour creates a new tour
func (s *tourService) CreateTour(ctx context.Context, req *dto.CreateTourRequest) (*domain.Tour, *domain.Availability, error) {
	if valid, msg := req.Validate(); !valid {
		return nil, nil, domain.NewValidationError(msg)
	}

	now := time.Now()
	tour := &domain.Tour{
		Category:    req.Category,
		Name:        req.Name,
		Description: req.Description,
		Capacity:    *req.Capacity,
		Image:       req.Image,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.tourRepo.Create(ctx, tour); err != nil {
		return nil, nil, err
	}

	availability := domain.ComputeAvailability(tour.ID, tour.Capacity, 0)
	return tour, &availability, nil
}

// GetTour retrieves a tour by ID
func (s *tourService) GetTour(ctx context.Context, id int64) (*domain.Tour, error) {
	tour, err := s.tourRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tour == nil {
		return nil, domain.ErrTourNotFound
	}
	return tour, nil
}

// GetAvailability returns the current seat picture for a tour. The snapshot
// is a consistent read, not a reservation: only CreateBooking can claim
// seats.
func (s *tourService) GetAvailability(ctx context.Context, tourID int64) (*domain.Availability, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.tour.get_availability")
	defer span.End()
	span.SetAttributes(attribute.Int64("tour_id", tourID))

	tour, err := s.tourRepo.GetByID(ctx, tourID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if tour == nil {
		span.SetStatus(codes.Error, "tour not found")
		return nil, domain.ErrTourNotFound
	}

	booked, err := s.bookingRepo.BookedSeats(ctx, tourID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	availability := domain.ComputeAvailability(tourID, tour.Capacity, booked)
	return &availability, nil
}

// ListTours lists tours with filters and pagination
func (s *tourService) ListTours(ctx context.Context, filter *dto.TourListFilter) ([]*domain.Tour, int, error) {
	filter.SetDefaults()

	repoFilter := &repository.TourFilter{
		Category: filter.Category,
		Search:   filter.Search,
	}

	return s.tourRepo.List(ctx, repoFilter, filter.Limit, filter.Offset)
}

// UpdateTour updates a tour. Lowering capacity below the booked total is
// allowed: existing bookings stay valid and availability clamps to zero, so
// the tour simply stops accepting new bookings.
func (s *tourService) UpdateTour(ctx context.Context, id int64, req *dto.UpdateTourRequest) (*domain.Tour, *domain.Availability, error) {
	if valid, msg := req.Validate(); !valid {
		return nil, nil, domain.NewValidationError(msg)
	}

	tour, err := s.tourRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if tour == nil {
		return nil, nil, domain.ErrTourNotFound
	}

	if req.Category != "" {
		tour.Category = req.Category
	}
	if req.Name != "" {
		tour.Name = req.Name
	}
	if req.Description != "" {
		tour.Description = req.Description
	}
	if req.Capacity != nil {
		tour.Capacity = *req.Capacity
	}
	if req.Image != nil {
		tour.Image = *req.Image
	}

	if err := s.tourRepo.Update(ctx, tour); err != nil {
		return nil, nil, err
	}

	booked, err := s.bookingRepo.BookedSeats(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	availability := domain.ComputeAvailability(id, tour.Capacity, booked)
	return tour, &availability, nil
}

// DeleteTour soft deletes a tour
func (s *tourService) DeleteTour(ctx context.Context, id int64) error {
	tour, err := s.tourRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if tour == nil {
		return domain.ErrTourNotFound
	}

	return s.tourRepo.Delete(ctx, id)
}
