package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/enuri14/EcoTour-Enuri/internal/domain"
)

// MemoryBookingRepository implements BookingRepository using in-memory
// storage. This is useful for testing and development.
//
// The capacity check and the append are serialized per tour: each tour gets
// its own mutex, held across the whole check-then-append, so two concurrent
// bookings against the same tour can never both pass a stale availability
// read. Bookings against different tours take different locks and do not
// contend.
type MemoryBookingRepository struct {
	tours    TourRepository
	bookings map[int64]*domain.Booking
	byTour   map[int64][]int64 // tourID -> []bookingID
	nextID   int64
	mu       sync.RWMutex

	tourLocks   map[int64]*sync.Mutex
	tourLocksMu sync.Mutex
}

// NewMemoryBookingRepository creates a new in-memory booking repository
// reading capacities from the given tour repository.
func NewMemoryBookingRepository(tours TourRepository) *MemoryBookingRepository {
	return &MemoryBookingRepository{
		tours:     tours,
		bookings:  make(map[int64]*domain.Booking),
		byTour:    make(map[int64][]int64),
		nextID:    1,
		tourLocks: make(map[int64]*sync.Mutex),
	}
}

// tourLock returns the mutex dedicated to one tour, creating it on first use.
func (r *MemoryBookingRepository) tourLock(tourID int64) *sync.Mutex {
	r.tourLocksMu.Lock()
	defer r.tourLocksMu.Unlock()

	lock, exists := r.tourLocks[tourID]
	if !exists {
		lock = &sync.Mutex{}
		r.tourLocks[tourID] = lock
	}
	return lock
}

// CreateWithCapacityCheck validates remaining capacity and appends the
// booking under the tour's lock.
func (r *MemoryBookingRepository) CreateWithCapacityCheck(ctx context.Context, booking *domain.Booking) (*domain.Availability, error) {
	lock := r.tourLock(booking.TourID)
	lock.Lock()
	defer lock.Unlock()

	tour, err := r.tours.GetByID(ctx, booking.TourID)
	if err != nil {
		return nil, err
	}
	if tour == nil {
		return nil, domain.ErrTourNotFound
	}

	booked, err := r.BookedSeats(ctx, booking.TourID)
	if err != nil {
		return nil, err
	}

	available := tour.Capacity - booked
	if available < 0 {
		available = 0
	}
	if booking.Seats > available {
		return nil, &domain.CapacityError{
			TourID:    booking.TourID,
			Requested: booking.Seats,
			Available: available,
		}
	}

	r.mu.Lock()
	booking.ID = r.nextID
	r.nextID++
	b := *booking
	r.bookings[booking.ID] = &b
	r.byTour[booking.TourID] = append(r.byTour[booking.TourID], booking.ID)
	r.mu.Unlock()

	availability := domain.ComputeAvailability(booking.TourID, tour.Capacity, booked+booking.Seats)
	return &availability, nil
}

// GetByID retrieves a booking by ID
func (r *MemoryBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	booking, exists := r.bookings[id]
	if !exists {
		return nil, nil
	}
	b := *booking
	return &b, nil
}

// List lists bookings, optionally filtered to one tour, newest first
func (r *MemoryBookingRepository) List(ctx context.Context, tourID int64, limit, offset int) ([]*domain.Booking, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*domain.Booking
	for _, booking := range r.bookings {
		if tourID > 0 && booking.TourID != tourID {
			continue
		}
		b := *booking
		matched = append(matched, &b)
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	total := len(matched)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

// BookedSeats returns the sum of seats across a tour's bookings
func (r *MemoryBookingRepository) BookedSeats(ctx context.Context, tourID int64) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	booked := 0
	for _, id := range r.byTour[tourID] {
		if booking, exists := r.bookings[id]; exists {
			booked += booking.Seats
		}
	}
	return booked, nil
}
