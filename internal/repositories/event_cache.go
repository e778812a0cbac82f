package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/campusops/college-events/internal/logger"
	"github.com/campusops/college-events/internal/models"
)

// eventListCacheKey holds the upcoming-events listing, already ordered
// by event date.
const eventListCacheKey = "events:upcoming"

// EventListCacheRepository caches the event listing in Redis.
type EventListCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration for the cached listing
}

// NewEventListCacheRepository creates a new cache repository with the given TTL.
func NewEventListCacheRepository(client *redis.Client, expiration time.Duration) *EventListCacheRepository {
	return &EventListCacheRepository{
		client: client,
		exp:    expiration,
	}
}

// Get fetches the cached event listing. Returns (nil, nil) on a miss.
func (r *EventListCacheRepository) Get(ctx context.Context) ([]models.Event, error) {
	val, err := r.client.Get(ctx, eventListCacheKey).Result()
	if err != nil {
		logger.Log.Infow("cache read",
			"key", eventListCacheKey,
			"hit", false,
			"error", err,
		)
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var events []models.Event
	if err := json.Unmarshal([]byte(val), &events); err != nil {
		logger.Log.Errorw("failed to decode cached events", "key", eventListCacheKey, "error", err)
		return nil, err
	}

	logger.Log.Infow("cache read",
		"key", eventListCacheKey,
		"hit", true,
		"count", len(events),
	)

	return events, nil
}

// Set caches the event listing with the configured expiration.
func (r *EventListCacheRepository) Set(ctx context.Context, events []models.Event) error {
	data, err := json.Marshal(events)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, eventListCacheKey, data, r.exp).Err()

	logger.Log.Infow("cache write",
		"key", eventListCacheKey,
		"count", len(events),
		"error", err,
	)

	return err
}

// Invalidate drops the cached listing; called after any event mutation.
func (r *EventListCacheRepository) Invalidate(ctx context.Context) error {
	err := r.client.Del(ctx, eventListCacheKey).Err()

	logger.Log.Infow("cache invalidate",
		"key", eventListCacheKey,
		"error", err,
	)

	return err
}
