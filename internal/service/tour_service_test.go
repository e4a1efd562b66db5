package service

import (
	"context"
	"errors"
	"testing"

	"github.com/enuri14/EcoTour-Enuri/internal/domain"
	"github.com/enuri14/EcoTour-Enuri/internal/dto"
	"github.com/enuri14/EcoTour-Enuri/internal/repository"
)

func intPtr(v int) *int { return &v }

func newTourFixture(t *testing.T) (TourService, BookingService, *repository.MemoryTourRepository) {
	t.Helper()
	tourRepo := repository.NewMemoryTourRepository()
	bookingRepo := repository.NewMemoryBookingRepository(tourRepo)
	return NewTourService(tourRepo, bookingRepo),
		NewBookingService(bookingRepo, NewNoOpEventPublisher()),
		tourRepo
}

func validTourRequest() *dto.CreateTourRequest {
	return &dto.CreateTourRequest{
		Category:    "wildlife",
		Name:        "Turtle Nesting Watch",
		Description: "Night beach walk during nesting season",
		Capacity:    intPtr(12),
	}
}

func TestTourService_CreateTour(t *testing.T) {
	ctx := context.Background()

	t.Run("creates tour with full availability", func(t *testing.T) {
		svc, _, _ := newTourFixture(t)

		tour, availability, err := svc.CreateTour(ctx, validTourRequest())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tour.ID == 0 {
			t.Error("expected tour to be assigned an ID")
		}
		if availability.Capacity != 12 || availability.Booked != 0 || availability.Available != 12 {
			t.Errorf("unexpected availability: %+v", availability)
		}
	})

	t.Run("zero capacity is allowed", func(t *testing.T) {
		svc, _, _ := newTourFixture(t)

		req := validTourRequest()
		req.Capacity = intPtr(0)
		_, availability, err := svc.CreateTour(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if availability.Available != 0 {
			t.Errorf("expected 0 available, got %d", availability.Available)
		}
	})

	t.Run("negative capacity rejected", func(t *testing.T) {
		svc, _, _ := newTourFixture(t)

		req := validTourRequest()
		req.Capacity = intPtr(-1)
		_, _, err := svc.CreateTour(ctx, req)
		if err == nil {
			t.Fatal("expected validation error")
		}
		if !domain.IsValidationError(err) {
			t.Errorf("expected a validation error, got %v", err)
		}
	})

	t.Run("missing name rejected", func(t *testing.T) {
		svc, _, _ := newTourFixture(t)

		req := validTourRequest()
		req.Name = ""
		if _, _, err := svc.CreateTour(ctx, req); err == nil {
			t.Error("expected validation error")
		}
	})
}

func TestTourService_GetTour(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTourFixture(t)

	created, _, err := svc.CreateTour(ctx, validTourRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("existing tour", func(t *testing.T) {
		tour, err := svc.GetTour(ctx, created.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tour.Name != created.Name {
			t.Errorf("expected name %q, got %q", created.Name, tour.Name)
		}
	})

	t.Run("missing tour", func(t *testing.T) {
		_, err := svc.GetTour(ctx, 9999)
		if !errors.Is(err, domain.ErrTourNotFound) {
			t.Errorf("expected ErrTourNotFound, got %v", err)
		}
	})
}

func TestTourService_GetAvailability(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown tour returns not found", func(t *testing.T) {
		svc, _, _ := newTourFixture(t)

		_, err := svc.GetAvailability(ctx, 42)
		if !errors.Is(err, domain.ErrTourNotFound) {
			t.Errorf("expected ErrTourNotFound, got %v", err)
		}
	})

	t.Run("no bookings means full availability", func(t *testing.T) {
		svc, _, _ := newTourFixture(t)

		tour, _, err := svc.CreateTour(ctx, validTourRequest())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		availability, err := svc.GetAvailability(ctx, tour.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if availability.TourID != tour.ID {
			t.Errorf("expected tour %d, got %d", tour.ID, availability.TourID)
		}
		if availability.Booked != 0 || availability.Available != 12 {
			t.Errorf("unexpected availability: %+v", availability)
		}
	})

	t.Run("reflects booked seats", func(t *testing.T) {
		tourSvc, bookingSvc, _ := newTourFixture(t)

		tour, _, err := tourSvc.CreateTour(ctx, validTourRequest())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, _, err := bookingSvc.CreateBooking(ctx, validBookingRequest(tour.ID, 5)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		availability, err := tourSvc.GetAvailability(ctx, tour.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if availability.Booked != 5 || availability.Available != 7 {
			t.Errorf("unexpected availability: %+v", availability)
		}
	})
}

func TestTourService_UpdateTour(t *testing.T) {
	ctx := context.Background()

	t.Run("updates catalog fields", func(t *testing.T) {
		svc, _, _ := newTourFixture(t)

		tour, _, err := svc.CreateTour(ctx, validTourRequest())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		updated, availability, err := svc.UpdateTour(ctx, tour.ID, &dto.UpdateTourRequest{
			Name:     "Turtle Nesting Watch (extended)",
			Capacity: intPtr(20),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Name != "Turtle Nesting Watch (extended)" {
			t.Errorf("unexpected name: %q", updated.Name)
		}
		if updated.Description != tour.Description {
			t.Error("expected untouched fields to survive")
		}
		if availability.Capacity != 20 || availability.Available != 20 {
			t.Errorf("unexpected availability: %+v", availability)
		}
	})

	t.Run("missing tour", func(t *testing.T) {
		svc, _, _ := newTourFixture(t)

		_, _, err := svc.UpdateTour(ctx, 9999, &dto.UpdateTourRequest{Name: "x"})
		if !errors.Is(err, domain.ErrTourNotFound) {
			t.Errorf("expected ErrTourNotFound, got %v", err)
		}
	})

	t.Run("empty update rejected", func(t *testing.T) {
		svc, _, _ := newTourFixture(t)

		tour, _, err := svc.CreateTour(ctx, validTourRequest())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, _, err = svc.UpdateTour(ctx, tour.ID, &dto.UpdateTourRequest{})
		if err == nil {
			t.Fatal("expected validation error")
		}
		if !domain.IsValidationError(err) {
			t.Errorf("expected a validation error, got %v", err)
		}
	})

	t.Run("capacity below booked clamps availability to zero", func(t *testing.T) {
		tourSvc, bookingSvc, _ := newTourFixture(t)

		tour, _, err := tourSvc.CreateTour(ctx, validTourRequest())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, _, err := bookingSvc.CreateBooking(ctx, validBookingRequest(tour.ID, 8)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, availability, err := tourSvc.UpdateTour(ctx, tour.ID, &dto.UpdateTourRequest{Capacity: intPtr(5)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if availability.Capacity != 5 || availability.Booked != 8 {
			t.Errorf("unexpected availability: %+v", availability)
		}
		if availability.Available != 0 {
			t.Errorf("expected available clamped to 0, got %d", availability.Available)
		}

		// The tour is simply closed to new bookings.
		_, _, err = bookingSvc.CreateBooking(ctx, validBookingRequest(tour.ID, 1))
		capErr, ok := domain.IsCapacityExceeded(err)
		if !ok {
			t.Fatalf("expected CapacityError, got %v", err)
		}
		if capErr.Available != 0 {
			t.Errorf("expected 0 available, got %d", capErr.Available)
		}
	})
}

func TestTourService_DeleteTour(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTourFixture(t)

	tour, _, err := svc.CreateTour(ctx, validTourRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("deletes existing tour", func(t *testing.T) {
		if err := svc.DeleteTour(ctx, tour.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := svc.GetTour(ctx, tour.ID); !errors.Is(err, domain.ErrTourNotFound) {
			t.Errorf("expected ErrTourNotFound after delete, got %v", err)
		}
	})

	t.Run("missing tour", func(t *testing.T) {
		if err := svc.DeleteTour(ctx, 9999); !errors.Is(err, domain.ErrTourNotFound) {
			t.Errorf("expected ErrTourNotFound, got %v", err)
		}
	})
}

func TestTourService_ListTours(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTourFixture(t)

	seed := []struct {
		category string
		name     string
	}{
		{"wildlife", "Turtle Nesting Watch"},
		{"wildlife", "Dawn Bird Census"},
		{"hiking", "Cloud Forest Ridge"},
	}
	for _, s := range seed {
		req := validTourRequest()
		req.Category = s.category
		req.Name = s.name
		if _, _, err := svc.CreateTour(ctx, req); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	t.Run("all tours", func(t *testing.T) {
		tours, total, err := svc.ListTours(ctx, &dto.TourListFilter{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if total != 3 || len(tours) != 3 {
			t.Errorf("expected 3 tours, got %d (total %d)", len(tours), total)
		}
	})

	t.Run("filter by category", func(t *testing.T) {
		tours, total, err := svc.ListTours(ctx, &dto.TourListFilter{Category: "wildlife"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if total != 2 {
			t.Errorf("expected total 2, got %d", total)
		}
		for _, tour := range tours {
			if tour.Category != "wildlife" {
				t.Errorf("unexpected category %q", tour.Category)
			}
		}
	})

	t.Run("search by name", func(t *testing.T) {
		_, total, err := svc.ListTours(ctx, &dto.TourListFilter{Search: "bird"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if total != 1 {
			t.Errorf("expected total 1, got %d", total)
		}
	})

	t.Run("deleted tours are hidden", func(t *testing.T) {
		tours, _, err := svc.ListTours(ctx, &dto.TourListFilter{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := svc.DeleteTour(ctx, tours[0].ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, total, err := svc.ListTours(ctx, &dto.TourListFilter{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if total != 2 {
			t.Errorf("expected total 2 after delete, got %d", total)
		}
	})
}
