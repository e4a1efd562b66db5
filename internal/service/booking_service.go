package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/enuri14/EcoTour-Enuri/internal/domain"
	"github.com/enuri14/EcoTour-Enuri/internal/dto"
	"github.com/enuri14/EcoTour-Enuri/internal/repository"
	"github.com/enuri14/EcoTour-Enuri/pkg/logger"
	"github.com/enuri14/EcoTour-Enuri/pkg/telemetry"
)

// bookingService implements BookingService
type bookingService struct {
	bookingRepo repository.BookingRepository
	publisher   EventPublisher
}

// NewBookingService creates a new BookingService
func NewBookingService(bookingRepo repository.BookingRepository, publisher EventPublisher) BookingService {
	if publisher == nil {
		publisher = NewNoOpEventPublisher()
	}
	return &bookingService{
		bookingRepo: bookingRepo,
		publisher:   publisher,
	}
}

// CreateBooking books seats on a tour.
//
// Validation failures surface before the store is touched. Tour existence
// and the capacity check happen inside the repository's atomic append, so
// the decision is made against the ledger as it is at commit time, not
// against a possibly stale earlier read.
func (s *bookingService) CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*domain.Booking, *domain.Availability, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.booking.create")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("tour_id", req.TourID),
		attribute.Int("seats", req.Seats),
	)

	if req.Seats <= 0 {
		span.SetStatus(codes.Error, "invalid seats")
		return nil, nil, domain.ErrInvalidSeats
	}
	if valid, _ := req.Validate(); !valid {
		span.SetStatus(codes.Error, "invalid customer details")
		return nil, nil, domain.ErrInvalidCustomer
	}

	booking := &domain.Booking{
		Reference:       uuid.New().String(),
		TourID:          req.TourID,
		Seats:           req.Seats,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		CreatedAt:       time.Now(),
	}

	availability, err := s.bookingRepo.CreateWithCapacityCheck(ctx, booking)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, nil, err
	}

	// The booking is committed; a publish failure must not fail the request.
	if err := s.publisher.PublishBookingCreated(ctx, booking, availability); err != nil {
		logger.Get().Warn("failed to publish booking created event",
			zap.String("reference", booking.Reference),
			zap.Int64("tour_id", booking.TourID),
			zap.Error(err),
		)
	}

	span.SetStatus(codes.Ok, "")
	return booking, availability, nil
}

// GetBooking retrieves a booking by ID
func (s *bookingService) GetBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, domain.ErrBookingNotFound
	}
	return booking, nil
}

// ListBookings lists bookings for the admin view
func (s *bookingService) ListBookings(ctx context.Context, filter *dto.BookingListFilter) ([]*domain.Booking, int, error) {
	filter.SetDefaults()
	return s.bookingRepo.List(ctx, filter.TourID, filter.Limit, filter.Offset)
}
