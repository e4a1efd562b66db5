package repository

import (
	"errors"
	"fmt"
	"time"

	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/enuri14/EcoTour-Enuri/internal/domain"
)

// tourColumns defines columns for the tours table
const tourColumns = `id, category, name, description, capacity,
	COALESCE(image, '') as image, created_at, updated_at, deleted_at`

// PostgresTourRepository implements TourRepository using PostgreSQL
type PostgresTourRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresTourRepository creates a new PostgresTourRepository
func NewPostgresTourRepository(pool *pgxpool.Pool) *PostgresTourRepository {
	return &PostgresTourRepository{pool: pool}
}

// scanTour scans a row into a Tour struct
func (r *PostgresTourRepository) scanTour(row pgx.Row) (*domain.Tour, error) {
	tour := &domain.Tour{}
	err := row.Scan(
		&tour.ID,
		&tour.Category,
		&tour.Name,
		&tour.Description,
		&tour.Capacity,
		&tour.Image,
		&tour.CreatedAt,
		&tour.UpdatedAt,
		&tour.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return tour, nil
}

// Create creates a new tour
func (r *PostgresTourRepository) Create(ctx context.Context, tour *domain.Tour) error {
	query := `
		INSERT INTO tours (category, name, description, capacity, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)
		RETURNING id
	`
	err := r.pool.QueryRow(ctx, query,
		tour.Category,
		tour.Name,
		tour.Description,
		tour.Capacity,
		tour.Image,
		tour.CreatedAt,
		tour.UpdatedAt,
	).Scan(&tour.ID)
	if err != nil {
		return fmt.Errorf("failed to create tour: %w", err)
	}
	return nil
}

// GetByID retrieves a tour by ID
func (r *PostgresTourRepository) GetByID(ctx context.Context, id int64) (*domain.Tour, error) {
	query := `SELECT ` + tourColumns + ` FROM tours WHERE id = $1 AND deleted_at IS NULL`
	return r.scanTour(r.pool.QueryRow(ctx, query, id))
}

// List lists tours with filters and pagination
func (r *PostgresTourRepository) List(ctx context.Context, filter *TourFilter, limit, offset int) ([]*domain.Tour, int, error) {
	whereClause := "deleted_at IS NULL"
	args := []interface{}{}
	argIndex := 1

	if filter != nil && filter.Category != "" {
		whereClause += fmt.Sprintf(" AND category = $%d", argIndex)
		args = append(args, filter.Category)
		argIndex++
	}
	if filter != nil && filter.Search != "" {
		whereClause += fmt.Sprintf(" AND (name ILIKE $%d OR description ILIKE $%d)", argIndex, argIndex)
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM tours WHERE %s`, whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM tours
		WHERE %s
		ORDER BY id ASC
		LIMIT $%d OFFSET $%d`, tourColumns, whereClause, argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var tours []*domain.Tour
	for rows.Next() {
		tour := &domain.Tour{}
		err := rows.Scan(
			&tour.ID,
			&tour.Category,
			&tour.Name,
			&tour.Description,
			&tour.Capacity,
			&tour.Image,
			&tour.CreatedAt,
			&tour.UpdatedAt,
			&tour.DeletedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		tours = append(tours, tour)
	}
	return tours, total, nil
}

// Update updates a tour's catalog fields
func (r *PostgresTourRepository) Update(ctx context.Context, tour *domain.Tour) error {
	query := `
		UPDATE tours
		SET category = $2, name = $3, description = $4, capacity = $5,
			image = NULLIF($6, ''), updated_at = $7
		WHERE id = $1 AND deleted_at IS NULL
	`
	tour.UpdatedAt = time.Now()
	result, err := r.pool.Exec(ctx, query,
		tour.ID,
		tour.Category,
		tour.Name,
		tour.Description,
		tour.Capacity,
		tour.Image,
		tour.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update tour: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrTourNotFound
	}
	return nil
}

// Delete soft deletes a tour by ID
func (r *PostgresTourRepository) Delete(ctx context.Context, id int64) error {
	query := `
		UPDATE tours
		SET deleted_at = $2, updated_at = $2
		WHERE id = $1 AND deleted_at IS NULL
	`
	now := time.Now()
	result, err := r.pool.Exec(ctx, query, id, now)
	if err != nil {
		return fmt.Errorf("failed to delete tour: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrTourNotFound
	}
	return nil
}
