package repository

import (
	"context"

	"github.com/enuri14/EcoTour-Enuri/internal/domain"
)

// TourFilter contains filter options for listing tours
type TourFilter struct {
	Category string
	Search   string
}

// TourRepository defines the interface for tour catalog data access
type TourRepository interface {
	// Create creates a new tour and assigns its ID
	Create(ctx context.Context, tour *domain.Tour) error
	// GetByID retrieves a tour by ID, nil when it does not exist
	GetByID(ctx context.Context, id int64) (*domain.Tour, error)
	// List lists tours with filters and pagination
	List(ctx context.Context, filter *TourFilter, limit, offset int) ([]*domain.Tour, int, error)
	// Update updates a tour's catalog fields
	Update(ctx context.Context, tour *domain.Tour) error
	// Delete soft deletes a tour by ID
	Delete(ctx context.Context, id int64) error
}

// BookingRepository defines the interface for the booking ledger.
//
// CreateWithCapacityCheck is the one write path: the capacity check and the
// append are a single atomic unit serialized per tour, so no interleaving of
// concurrent calls can push a tour's booked sum past its capacity. Bookings
// for different tours do not contend.
type BookingRepository interface {
	// CreateWithCapacityCheck validates remaining capacity and appends the
	// booking atomically, returning the availability after the append. It
	// returns domain.ErrTourNotFound for unknown tours and a
	// *domain.CapacityError when seats exceed the remaining availability; in
	// both cases the ledger is untouched.
	CreateWithCapacityCheck(ctx context.Context, booking *domain.Booking) (*domain.Availability, error)
	// GetByID retrieves a booking by ID, nil when it does not exist
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	// List lists bookings, optionally filtered to one tour, newest first
	List(ctx context.Context, tourID int64, limit, offset int) ([]*domain.Booking, int, error)
	// BookedSeats returns the sum of seats across a tour's bookings, zero
	// when it has none
	BookedSeats(ctx context.Context, tourID int64) (int, error)
}

// UserRepository defines the interface for storefront account data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *domain.User) error
	// GetByEmail retrieves a user by email, nil when it does not exist
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// GetByID retrieves a user by ID, nil when it does not exist
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// ExistsByEmail checks whether an account already uses the email
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
