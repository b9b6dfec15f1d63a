package activities

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/2beens/stravastats/internal/telemetry/tracing"
)

const activitiesKeyPrefix = "activities::"

var _ Store = (*RedisStore)(nil)

type RedisStore struct {
	redisClient *redis.Client
	ttl         time.Duration
}

// NewRedisStore creates a redis backed store; a zero ttl keeps the activities forever.
func NewRedisStore(redisClient *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		redisClient: redisClient,
		ttl:         ttl,
	}
}

func activitiesKey(athleteID int64) string {
	return activitiesKeyPrefix + strconv.FormatInt(athleteID, 10)
}

func (s *RedisStore) Save(ctx context.Context, athleteID int64, collection Collection) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "activities.redisStore.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	data, err := json.Marshal(collection)
	if err != nil {
		return fmt.Errorf("marshal activities: %w", err)
	}

	if err := s.redisClient.Set(ctx, activitiesKey(athleteID), string(data), s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set activities: %w", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, athleteID int64) (_ Collection, _ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "activities.redisStore.load")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	data, err := s.redisClient.Get(ctx, activitiesKey(athleteID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get activities: %w", err)
	}

	var collection Collection
	if err := json.Unmarshal([]byte(data), &collection); err != nil {
		return nil, false, fmt.Errorf("unmarshal activities: %w", err)
	}
	if collection == nil {
		collection = Collection{}
	}
	return collection, true, nil
}

func (s *RedisStore) Delete(ctx context.Context, athleteID int64) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "activities.redisStore.delete")
	defer span.End()

	if err := s.redisClient.Del(ctx, activitiesKey(athleteID)).Err(); err != nil {
		return fmt.Errorf("redis del activities: %w", err)
	}
	return nil
}
