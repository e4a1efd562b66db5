package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/enuri14/EcoTour-Enuri/internal/domain"
	"github.com/enuri14/EcoTour-Enuri/pkg/telemetry"
)

// bookingColumns defines columns for the bookings table
const bookingColumns = `id, reference, tour_id, seats, customer_name,
	customer_email, customer_phone, customer_address, created_at`

// PostgresBookingRepository implements BookingRepository using PostgreSQL
type PostgresBookingRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresBookingRepository creates a new PostgresBookingRepository
func NewPostgresBookingRepository(pool *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{pool: pool}
}

// CreateWithCapacityCheck appends a booking if the tour still has the seats.
//
// The tour row is locked FOR UPDATE for the duration of the transaction, so
// the capacity read, the ledger sum, and the insert behave as one atomic
// unit per tour. Locking the single tour row keeps contention scoped to that
// tour; bookings against other tours proceed in parallel.
func (r *PostgresBookingRepository) CreateWithCapacityCheck(ctx context.Context, booking *domain.Booking) (*domain.Availability, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.booking.create_with_capacity_check")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("tour_id", booking.TourID),
		attribute.Int("seats", booking.Seats),
	)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var capacity int
	err = tx.QueryRow(ctx,
		`SELECT capacity FROM tours WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`,
		booking.TourID,
	).Scan(&capacity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "tour not found")
			return nil, domain.ErrTourNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to lock tour: %w", err)
	}

	var booked int
	err = tx.QueryRow(ctx,
		`SELECT COALESCE(SUM(seats), 0) FROM bookings WHERE tour_id = $1`,
		booking.TourID,
	).Scan(&booked)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to sum booked seats: %w", err)
	}

	available := capacity - booked
	if available < 0 {
		available = 0
	}
	if booking.Seats > available {
		span.SetStatus(codes.Error, "capacity exceeded")
		return nil, &domain.CapacityError{
			TourID:    booking.TourID,
			Requested: booking.Seats,
			Available: available,
		}
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO bookings (reference, tour_id, seats, customer_name,
			customer_email, customer_phone, customer_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`,
		booking.Reference,
		booking.TourID,
		booking.Seats,
		booking.CustomerName,
		booking.CustomerEmail,
		booking.CustomerPhone,
		booking.CustomerAddress,
		booking.CreatedAt,
	).Scan(&booking.ID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to insert booking: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to commit booking: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	availability := domain.ComputeAvailability(booking.TourID, capacity, booked+booking.Seats)
	return &availability, nil
}

// GetByID retrieves a booking by ID
func (r *PostgresBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	booking := &domain.Booking{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.Reference,
		&booking.TourID,
		&booking.Seats,
		&booking.CustomerName,
		&booking.CustomerEmail,
		&booking.CustomerPhone,
		&booking.CustomerAddress,
		&booking.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

// List lists bookings, optionally filtered to one tour, newest first
func (r *PostgresBookingRepository) List(ctx context.Context, tourID int64, limit, offset int) ([]*domain.Booking, int, error) {
	whereClause := "TRUE"
	args := []interface{}{}
	argIndex := 1

	if tourID > 0 {
		whereClause = fmt.Sprintf("tour_id = $%d", argIndex)
		args = append(args, tourID)
		argIndex++
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM bookings WHERE %s`, whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM bookings
		WHERE %s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d`, bookingColumns, whereClause, argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bookings []*domain.Booking
	for rows.Next() {
		booking := &domain.Booking{}
		err := rows.Scan(
			&booking.ID,
			&booking.Reference,
			&booking.TourID,
			&booking.Seats,
			&booking.CustomerName,
			&booking.CustomerEmail,
			&booking.CustomerPhone,
			&booking.CustomerAddress,
			&booking.CreatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, booking)
	}
	return bookings, total, nil
}

// BookedSeats returns the sum of seats across a tour's bookings
func (r *PostgresBookingRepository) BookedSeats(ctx context.Context, tourID int64) (int, error) {
	var booked int
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(seats), 0) FROM bookings WHERE tour_id = $1`,
		tourID,
	).Scan(&booked)
	if err != nil {
		return 0, fmt.Errorf("failed to sum booked seats: %w", err)
	}
	return booked, nil
}
