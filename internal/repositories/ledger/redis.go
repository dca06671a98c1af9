package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/tabletop-ledger/internal/domain/events"
	apperr "github.com/KirkDiggler/tabletop-ledger/internal/errors"
)

const (
	eventKeyPrefix = "ledger:event:"
	worldKeyPrefix = "ledger:world:"

	// ids fetched per MGET when listing
	fetchBatchSize = 100
)

// RedisStoreConfig holds configuration for the Redis ledger
type RedisStoreConfig struct {
	Client redis.UniversalClient
}

type redisStore struct {
	client redis.UniversalClient
}

// NewRedisStore creates a Redis-backed ledger
func NewRedisStore(cfg *RedisStoreConfig) Store {
	if cfg == nil || cfg.Client == nil {
		panic("redis client is required")
	}

	return &redisStore{client: cfg.Client}
}

// NewRedis creates a Redis-backed ledger with default configuration
func NewRedis(client redis.UniversalClient) Store {
	return NewRedisStore(&RedisStoreConfig{Client: client})
}

// EventKey is the key holding the JSON of one event
func EventKey(id string) string {
	return eventKeyPrefix + id
}

// WorldKey is the list of event ids of a world in append order
func WorldKey(worldID string) string {
	return worldKeyPrefix + worldID
}

// QueueAppend adds the commands storing event to pipe. Other repositories use
// it to append to the ledger inside their own transaction.
func QueueAppend(ctx context.Context, pipe redis.Pipeliner, event *events.WorldEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to serialize event: %w", err)
	}

	pipe.Set(ctx, EventKey(event.ID), data, 0)
	pipe.RPush(ctx, WorldKey(event.WorldID), event.ID)

	return nil
}

func (s *redisStore) Append(ctx context.Context, event *events.WorldEvent) error {
	if event == nil || event.ID == "" {
		return apperr.InvalidArgument("event and event ID are required")
	}

	exists, err := s.client.Exists(ctx, EventKey(event.ID)).Result()
	if err != nil {
		return apperr.Persistence(err, "failed to check event")
	}
	if exists > 0 {
		return apperr.Conflictf("event %s already exists", event.ID)
	}

	pipe := s.client.TxPipeline()
	if err := QueueAppend(ctx, pipe, event); err != nil {
		return apperr.Persistence(err, "failed to append event")
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return apperr.Persistence(err, "failed to append event")
	}

	return nil
}

func (s *redisStore) Get(ctx context.Context, id string) (*events.WorldEvent, error) {
	data, err := s.client.Get(ctx, EventKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFoundf("event %s not found", id)
		}
		return nil, apperr.Persistence(err, "failed to get event")
	}

	var event events.WorldEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, apperr.Persistence(err, "failed to deserialize event")
	}

	return &event, nil
}

func (s *redisStore) ListByWorld(ctx context.Context, worldID string, limit int) ([]*events.WorldEvent, error) {
	start := int64(0)
	if limit > 0 {
		start = int64(-limit)
	}

	ids, err := s.client.LRange(ctx, WorldKey(worldID), start, -1).Result()
	if err != nil {
		return nil, apperr.Persistence(err, "failed to list world events")
	}
	if len(ids) == 0 {
		return []*events.WorldEvent{}, nil
	}

	result := make([]*events.WorldEvent, len(ids))
	g, gctx := errgroup.WithContext(ctx)

	for lo := 0; lo < len(ids); lo += fetchBatchSize {
		lo := lo
		hi := lo + fetchBatchSize
		if hi > len(ids) {
			hi = len(ids)
		}

		g.Go(func() error {
			keys := make([]string, 0, hi-lo)
			for _, id := range ids[lo:hi] {
				keys = append(keys, EventKey(id))
			}

			values, err := s.client.MGet(gctx, keys...).Result()
			if err != nil {
				return apperr.Persistence(err, "failed to fetch world events")
			}

			for i, v := range values {
				raw, ok := v.(string)
				if !ok {
					return apperr.Newf(apperr.CodePersistence, "event %s missing from ledger", ids[lo+i])
				}
				var event events.WorldEvent
				if err := json.Unmarshal([]byte(raw), &event); err != nil {
					return apperr.Persistence(err, "failed to deserialize event")
				}
				result[lo+i] = &event
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}
