package service

import (
	"context"

	"github.com/enuri14/EcoTour-Enuri/internal/domain"
	"github.com/enuri14/EcoTour-Enuri/internal/dto"
)

// TourService defines the interface for tour catalog business logic
type TourService interface {
	// CreateTour creates a new tour
	CreateTour(ctx context.Context, req *dto.CreateTourRequest) (*domain.Tour, *domain.Availability, error)
	// GetTour retrieves a tour by ID
	GetTour(ctx context.Context, id int64) (*domain.Tour, error)
	// GetAvailability returns the current seat picture for a tour
	GetAvailability(ctx context.Context, tourID int64) (*domain.Availability, error)
	// ListTours lists tours with filters and pagination
	ListTours(ctx context.Context, filter *dto.TourListFilter) ([]*domain.Tour, int, error)
	// UpdateTour updates a tour's catalog fields
	UpdateTour(ctx context.Context, id int64, req *dto.UpdateTourRequest) (*domain.Tour, *domain.Availability, error)
	// DeleteTour soft deletes a tour
	DeleteTour(ctx context.Context, id int64) error
}

// BookingService defines the interface for booking business logic
type BookingService interface {
	// CreateBooking books seats on a tour, returning the booking together
	// with the availability recomputed after the append
	CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*domain.Booking, *domain.Availability, error)
	// GetBooking retrieves a booking by ID
	GetBooking(ctx context.Context, id int64) (*domain.Booking, error)
	// ListBookings lists bookings for the admin view
	ListBookings(ctx context.Context, filter *dto.BookingListFilter) ([]*domain.Booking, int, error)
}

// AuthService defines the interface for storefront account logic
type AuthService interface {
	// Register creates an account and issues an access token
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	// Login verifies credentials and issues an access token
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	// GetUser retrieves a user by ID
	GetUser(ctx context.Context, id string) (*domain.User, error)
}

// WeatherService defines the interface for the destination forecast lookup
type WeatherService interface {
	// GetCurrentWeather fetches the current forecast for the coordinates
	GetCurrentWeather(ctx context.Context, query *dto.WeatherQuery) (*dto.WeatherResponse, error)
}
