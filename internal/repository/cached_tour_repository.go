package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/enuri14/EcoTour-Enuri/internal/domain"
	"github.com/enuri14/EcoTour-Enuri/pkg/redis"
)

const tourCacheKeyPrefix = "tour:"

// CachedTourRepository decorates a TourRepository with a Redis read-through
// cache for single-tour lookups. Mutations invalidate the cached entry;
// list queries always go to the store. Cache failures degrade to the
// underlying repository, never to an error.
type CachedTourRepository struct {
	inner TourRepository
	redis *redis.Client
	ttl   time.Duration
}

// NewCachedTourRepository creates a new CachedTourRepository
func NewCachedTourRepository(inner TourRepository, client *redis.Client, ttl time.Duration) *CachedTourRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedTourRepository{
		inner: inner,
		redis: client,
		ttl:   ttl,
	}
}

func tourCacheKey(id int64) string {
	return fmt.Sprintf("%s%d", tourCacheKeyPrefix, id)
}

// Create creates a new tour
func (r *CachedTourRepository) Create(ctx context.Context, tour *domain.Tour) error {
	return r.inner.Create(ctx, tour)
}

// GetByID retrieves a tour, serving from cache when possible
func (r *CachedTourRepository) GetByID(ctx context.Context, id int64) (*domain.Tour, error) {
	key := tourCacheKey(id)

	cached, err := r.redis.Client().Get(ctx, key).Result()
	if err == nil {
		tour := &domain.Tour{}
		if jsonErr := json.Unmarshal([]byte(cached), tour); jsonErr == nil {
			return tour, nil
		}
		// corrupt entry, fall through to the store
		r.redis.Client().Del(ctx, key)
	} else if err != goredis.Nil {
		// redis unavailable, serve from the store
		return r.inner.GetByID(ctx, id)
	}

	tour, err := r.inner.GetByID(ctx, id)
	if err != nil || tour == nil {
		return tour, err
	}

	if encoded, jsonErr := json.Marshal(tour); jsonErr == nil {
		r.redis.Client().Set(ctx, key, encoded, r.ttl)
	}
	return tour, nil
}

// List lists tours; list queries bypass the cache
func (r *CachedTourRepository) List(ctx context.Context, filter *TourFilter, limit, offset int) ([]*domain.Tour, int, error) {
	return r.inner.List(ctx, filter, limit, offset)
}

// Update updates a tour and invalidates its cache entry
func (r *CachedTourRepository) Update(ctx context.Context, tour *domain.Tour) error {
	if err := r.inner.Update(ctx, tour); err != nil {
		return err
	}
	r.redis.Client().Del(ctx, tourCacheKey(tour.ID))
	return nil
}

// Delete soft deletes a tour and invalidates its cache entry
func (r *CachedTourRepository) Delete(ctx context.Context, id int64) error {
	if err := r.inner.Delete(ctx, id); err != nil {
		return err
	}
	r.redis.Client().Del(ctx, tourCacheKey(id))
	return nil
}
