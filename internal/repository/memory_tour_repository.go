package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/enuri14/EcoTour-Enuri/internal/domain"
)

// MemoryTourRepository implements TourRepository using in-memory storage.
// This is useful for testing and development.
type MemoryTourRepository struct {
	tours  map[int64]*domain.Tour
	nextID int64
	mu     sync.RWMutex
}

// NewMemoryTourRepository creates a new in-memory tour repository
func NewMemoryTourRepository() *MemoryTourRepository {
	return &MemoryTourRepository{
		tours:  make(map[int64]*domain.Tour),
		nextID: 1,
	}
}

// Create creates a new tour and assigns its ID
func (r *MemoryTourRepository) Create(ctx context.Context, tour *domain.Tour) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tour.ID = r.nextID
	r.nextID++

	t := *tour
	r.tours[tour.ID] = &t
	return nil
}

// GetByID retrieves a tour by ID
func (r *MemoryTourRepository) GetByID(ctx context.Context, id int64) (*domain.Tour, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tour, exists := r.tours[id]
	if !exists || tour.DeletedAt != nil {
		return nil, nil
	}

	t := *tour
	return &t, nil
}

// List lists tours with filters and pagination
func (r *MemoryTourRepository) List(ctx context.Context, filter *TourFilter, limit, offset int) ([]*domain.Tour, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*domain.Tour
	for _, tour := range r.tours {
		if tour.DeletedAt != nil {
			continue
		}
		if filter != nil && filter.Category != "" && tour.Category != filter.Category {
			continue
		}
		if filter != nil && filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(tour.Name), needle) &&
				!strings.Contains(strings.ToLower(tour.Description), needle) {
				continue
			}
		}
		t := *tour
		matched = append(matched, &t)
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

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

// Update updates a tour's catalog fields
func (r *MemoryTourRepository) Update(ctx context.Context, tour *domain.Tour) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.tours[tour.ID]
	if !exists || existing.DeletedAt != nil {
		return domain.ErrTourNotFound
	}

	tour.UpdatedAt = time.Now()
	t := *tour
	r.tours[tour.ID] = &t
	return nil
}

// Delete soft deletes a tour by ID
func (r *MemoryTourRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tour, exists := r.tours[id]
	if !exists || tour.DeletedAt != nil {
		return domain.ErrTourNotFound
	}

	now := time.Now()
	tour.DeletedAt = &now
	tour.UpdatedAt = now
	return nil
}
