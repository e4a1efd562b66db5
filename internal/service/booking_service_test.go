package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/enuri14/EcoTour-Enuri/internal/domain"
	"github.com/enuri14/EcoTour-Enuri/internal/dto"
	"github.com/enuri14/EcoTour-Enuri/internal/repository"
)

// MockEventPublisher captures published events for assertions
type MockEventPublisher struct {
	mu          sync.Mutex
	created     []*domain.BookingEvent
	publishErr  error
	closeCalled bool
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

func (m *MockEventPublisher) PublishBookingCreated(ctx context.Context, booking *domain.Booking, availability *domain.Availability) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.publishErr != nil {
		return m.publishErr
	}
	m.created = append(m.created, domain.NewBookingEvent(domain.BookingEventCreated, booking, availability, "test-event"))
	return nil
}

func (m *MockEventPublisher) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeCalled = true
	return nil
}

func (m *MockEventPublisher) CreatedEvents() []*domain.BookingEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.created
}

func newBookingFixture(t *testing.T, capacity int) (BookingService, *repository.MemoryTourRepository, *repository.MemoryBookingRepository, *MockEventPublisher, int64) {
	t.Helper()

	tourRepo := repository.NewMemoryTourRepository()
	tour := &domain.Tour{
		Category:    "hiking",
		Name:        "Rainforest Canopy Walk",
		Description: "Guided walk through old-growth canopy bridges",
		Capacity:    capacity,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := tourRepo.Create(context.Background(), tour); err != nil {
		t.Fatalf("failed to seed tour: %v", err)
	}

	bookingRepo := repository.NewMemoryBookingRepository(tourRepo)
	publisher := NewMockEventPublisher()
	svc := NewBookingService(bookingRepo, publisher)
	return svc, tourRepo, bookingRepo, publisher, tour.ID
}

func validBookingRequest(tourID int64, seats int) *dto.CreateBookingRequest {
	return &dto.CreateBookingRequest{
		TourID:          tourID,
		Seats:           seats,
		CustomerName:    "Ada Lovelace",
		CustomerEmail:   "ada@example.com",
		CustomerPhone:   "+44 20 7946 0321",
		CustomerAddress: "12 St James's Square, London",
	}
}

func TestBookingService_CreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("books seats and echoes availability", func(t *testing.T) {
		svc, _, _, publisher, tourID := newBookingFixture(t, 10)

		booking, availability, err := svc.CreateBooking(ctx, validBookingRequest(tourID, 3))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if booking.ID == 0 {
			t.Error("expected booking to be assigned an ID")
		}
		if booking.Reference == "" {
			t.Error("expected booking to be assigned a reference")
		}
		if availability.Booked != 3 {
			t.Errorf("expected 3 booked, got %d", availability.Booked)
		}
		if availability.Available != 7 {
			t.Errorf("expected 7 available, got %d", availability.Available)
		}
		if len(publisher.CreatedEvents()) != 1 {
			t.Errorf("expected 1 published event, got %d", len(publisher.CreatedEvents()))
		}
	})

	t.Run("unknown tour returns not found", func(t *testing.T) {
		svc, _, _, _, _ := newBookingFixture(t, 10)

		_, _, err := svc.CreateBooking(ctx, validBookingRequest(999, 2))
		if !errors.Is(err, domain.ErrTourNotFound) {
			t.Errorf("expected ErrTourNotFound, got %v", err)
		}
	})

	t.Run("zero seats rejected before the store is touched", func(t *testing.T) {
		svc, _, bookingRepo, _, tourID := newBookingFixture(t, 10)

		_, _, err := svc.CreateBooking(ctx, validBookingRequest(tourID, 0))
		if !errors.Is(err, domain.ErrInvalidSeats) {
			t.Errorf("expected ErrInvalidSeats, got %v", err)
		}

		booked, _ := bookingRepo.BookedSeats(ctx, tourID)
		if booked != 0 {
			t.Errorf("expected ledger untouched, got %d booked", booked)
		}
	})

	t.Run("negative seats rejected", func(t *testing.T) {
		svc, _, _, _, tourID := newBookingFixture(t, 10)

		_, _, err := svc.CreateBooking(ctx, validBookingRequest(tourID, -4))
		if !errors.Is(err, domain.ErrInvalidSeats) {
			t.Errorf("expected ErrInvalidSeats, got %v", err)
		}
	})

	t.Run("incomplete customer details rejected", func(t *testing.T) {
		svc, _, _, _, tourID := newBookingFixture(t, 10)

		req := validBookingRequest(tourID, 2)
		req.CustomerEmail = "not-an-email"
		_, _, err := svc.CreateBooking(ctx, req)
		if !errors.Is(err, domain.ErrInvalidCustomer) {
			t.Errorf("expected ErrInvalidCustomer, got %v", err)
		}
	})

	t.Run("booking exactly the remaining seats succeeds", func(t *testing.T) {
		svc, _, _, _, tourID := newBookingFixture(t, 5)

		if _, _, err := svc.CreateBooking(ctx, validBookingRequest(tourID, 3)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, availability, err := svc.CreateBooking(ctx, validBookingRequest(tourID, 2))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if availability.Available != 0 {
			t.Errorf("expected 0 available, got %d", availability.Available)
		}
	})

	t.Run("overbooking rejected with remaining count", func(t *testing.T) {
		svc, _, _, _, tourID := newBookingFixture(t, 5)

		if _, _, err := svc.CreateBooking(ctx, validBookingRequest(tourID, 3)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, _, err := svc.CreateBooking(ctx, validBookingRequest(tourID, 3))
		capErr, ok := domain.IsCapacityExceeded(err)
		if !ok {
			t.Fatalf("expected CapacityError, got %v", err)
		}
		if capErr.Available != 2 {
			t.Errorf("expected 2 available in error, got %d", capErr.Available)
		}
		if capErr.Error() != "Only 2 seat(s) left" {
			t.Errorf("unexpected message: %q", capErr.Error())
		}
	})

	t.Run("full tour rejects even one seat", func(t *testing.T) {
		svc, _, _, _, tourID := newBookingFixture(t, 2)

		if _, _, err := svc.CreateBooking(ctx, validBookingRequest(tourID, 2)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, _, err := svc.CreateBooking(ctx, validBookingRequest(tourID, 1))
		capErr, ok := domain.IsCapacityExceeded(err)
		if !ok {
			t.Fatalf("expected CapacityError, got %v", err)
		}
		if capErr.Available != 0 {
			t.Errorf("expected 0 available, got %d", capErr.Available)
		}
	})

	t.Run("zero capacity tour rejects all bookings", func(t *testing.T) {
		svc, _, _, _, tourID := newBookingFixture(t, 0)

		_, _, err := svc.CreateBooking(ctx, validBookingRequest(tourID, 1))
		if _, ok := domain.IsCapacityExceeded(err); !ok {
			t.Errorf("expected CapacityError, got %v", err)
		}
	})

	t.Run("publish failure does not fail the booking", func(t *testing.T) {
		svc, _, _, publisher, tourID := newBookingFixture(t, 10)
		publisher.publishErr = errors.New("broker down")

		booking, _, err := svc.CreateBooking(ctx, validBookingRequest(tourID, 2))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if booking == nil || booking.ID == 0 {
			t.Error("expected committed booking despite publish failure")
		}
	})
}

func TestBookingService_CreateBooking_ConcurrentSameTour(t *testing.T) {
	ctx := context.Background()
	svc, _, bookingRepo, _, tourID := newBookingFixture(t, 5)

	// Two concurrent requests for 3 seats each against 5 remaining: exactly
	// one may win, never both.
	start := make(chan struct{})
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			<-start
			_, _, err := svc.CreateBooking(ctx, validBookingRequest(tourID, 3))
			results <- err
		}()
	}
	close(start)

	var successes, conflicts int
	for i := 0; i < 2; i++ {
		err := <-results
		switch {
		case err == nil:
			successes++
		default:
			if _, ok := domain.IsCapacityExceeded(err); !ok {
				t.Fatalf("unexpected error: %v", err)
			}
			conflicts++
		}
	}

	if successes != 1 || conflicts != 1 {
		t.Errorf("expected exactly one winner, got %d successes and %d conflicts", successes, conflicts)
	}

	booked, err := bookingRepo.BookedSeats(ctx, tourID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booked != 3 {
		t.Errorf("expected 3 booked seats, got %d", booked)
	}
}

func TestBookingService_CreateBooking_ConcurrentHammer(t *testing.T) {
	ctx := context.Background()
	const capacity = 20
	svc, _, bookingRepo, _, tourID := newBookingFixture(t, capacity)

	// 50 goroutines each trying for 1-3 seats. Whatever interleaving the
	// scheduler picks, the booked sum must never pass capacity.
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		seats := i%3 + 1
		wg.Add(1)
		go func(seats int) {
			defer wg.Done()
			_, _, err := svc.CreateBooking(ctx, validBookingRequest(tourID, seats))
			if err != nil {
				if _, ok := domain.IsCapacityExceeded(err); !ok {
					t.Errorf("unexpected error: %v", err)
				}
			}
		}(seats)
	}
	wg.Wait()

	booked, err := bookingRepo.BookedSeats(ctx, tourID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booked > capacity {
		t.Errorf("booked %d seats, capacity is %d", booked, capacity)
	}
}

func TestBookingService_CreateBooking_ConcurrentDifferentTours(t *testing.T) {
	ctx := context.Background()

	tourRepo := repository.NewMemoryTourRepository()
	var tourIDs []int64
	for i := 0; i < 4; i++ {
		tour := &domain.Tour{
			Category:    "kayaking",
			Name:        "Mangrove Paddle",
			Description: "Half-day paddle through the mangrove channels",
			Capacity:    10,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}
		if err := tourRepo.Create(ctx, tour); err != nil {
			t.Fatalf("failed to seed tour: %v", err)
		}
		tourIDs = append(tourIDs, tour.ID)
	}

	bookingRepo := repository.NewMemoryBookingRepository(tourRepo)
	svc := NewBookingService(bookingRepo, NewNoOpEventPublisher())

	// Bookings against different tours must not block each other and each
	// tour keeps its own invariant.
	var wg sync.WaitGroup
	for _, id := range tourIDs {
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(tourID int64) {
				defer wg.Done()
				_, _, err := svc.CreateBooking(ctx, validBookingRequest(tourID, 2))
				if err != nil {
					if _, ok := domain.IsCapacityExceeded(err); !ok {
						t.Errorf("unexpected error: %v", err)
					}
				}
			}(id)
		}
	}
	wg.Wait()

	for _, id := range tourIDs {
		booked, err := bookingRepo.BookedSeats(ctx, id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if booked > 10 {
			t.Errorf("tour %d booked %d seats, capacity is 10", id, booked)
		}
	}
}

func TestBookingService_GetBooking(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _, tourID := newBookingFixture(t, 10)

	created, _, err := svc.CreateBooking(ctx, validBookingRequest(tourID, 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("existing booking", func(t *testing.T) {
		booking, err := svc.GetBooking(ctx, created.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if booking.Reference != created.Reference {
			t.Errorf("expected reference %q, got %q", created.Reference, booking.Reference)
		}
	})

	t.Run("missing booking", func(t *testing.T) {
		_, err := svc.GetBooking(ctx, 9999)
		if !errors.Is(err, domain.ErrBookingNotFound) {
			t.Errorf("expected ErrBookingNotFound, got %v", err)
		}
	})
}

func TestBookingService_ListBookings(t *testing.T) {
	ctx := context.Background()
	svc, tourRepo, _, _, tourID := newBookingFixture(t, 50)

	other := &domain.Tour{
		Category:    "diving",
		Name:        "Reef Discovery",
		Description: "Two-tank reef dive",
		Capacity:    8,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := tourRepo.Create(ctx, other); err != nil {
		t.Fatalf("failed to seed tour: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, _, err := svc.CreateBooking(ctx, validBookingRequest(tourID, 1)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if _, _, err := svc.CreateBooking(ctx, validBookingRequest(other.ID, 2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("all bookings", func(t *testing.T) {
		bookings, total, err := svc.ListBookings(ctx, &dto.BookingListFilter{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if total != 4 || len(bookings) != 4 {
			t.Errorf("expected 4 bookings, got %d (total %d)", len(bookings), total)
		}
	})

	t.Run("filtered by tour", func(t *testing.T) {
		bookings, total, err := svc.ListBookings(ctx, &dto.BookingListFilter{TourID: tourID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if total != 3 {
			t.Errorf("expected total 3, got %d", total)
		}
		for _, b := range bookings {
			if b.TourID != tourID {
				t.Errorf("expected tour %d, got %d", tourID, b.TourID)
			}
		}
	})

	t.Run("pagination", func(t *testing.T) {
		bookings, total, err := svc.ListBookings(ctx, &dto.BookingListFilter{Limit: 2, Offset: 0})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if total != 4 {
			t.Errorf("expected total 4, got %d", total)
		}
		if len(bookings) != 2 {
			t.Errorf("expected page of 2, got %d", len(bookings))
		}
	})
}
