package combats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/tabletop-ledger/internal/domain/combat"
	apperr "github.com/KirkDiggler/tabletop-ledger/internal/errors"
	"github.com/KirkDiggler/tabletop-ledger/internal/repositories/ledger"
)

const (
	combatKeyPrefix     = "combat:"
	campaignCombatKey   = "campaign:%s:combat"
	combatEventsKey     = "combat:%s:events"
	combatConditionsKey = "combat:%s:conditions"
)

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client redis.UniversalClient
}

type redisRepository struct {
	client redis.UniversalClient
}

// NewRedisRepository creates a Redis-backed combat repository. Commits run
// under WATCH on the combat and campaign keys and append the world event to
// the ledger keys in the same MULTI.
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil || cfg.Client == nil {
		panic("redis client is required")
	}

	return &redisRepository{client: cfg.Client}
}

// NewRedis creates a Redis-backed combat repository with default configuration
func NewRedis(client redis.UniversalClient) Repository {
	return NewRedisRepository(&RedisRepoConfig{Client: client})
}

func combatKey(id string) string {
	return combatKeyPrefix + id
}

func (r *redisRepository) GetByCampaign(ctx context.Context, campaignID string) (*combat.Combat, error) {
	id, err := r.client.Get(ctx, fmt.Sprintf(campaignCombatKey, campaignID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFoundf("no combat for campaign %s", campaignID)
		}
		return nil, apperr.Persistence(err, "failed to get campaign combat")
	}

	return r.GetByID(ctx, id)
}

func (r *redisRepository) GetByID(ctx context.Context, id string) (*combat.Combat, error) {
	data, err := r.client.Get(ctx, combatKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFoundf("combat %s not found", id)
		}
		return nil, apperr.Persistence(err, "failed to get combat")
	}

	var c combat.Combat
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, apperr.Persistence(err, "failed to deserialize combat")
	}

	return &c, nil
}

func (r *redisRepository) Commit(ctx context.Context, commit *Commit) error {
	if err := validateCommit(commit); err != nil {
		return err
	}

	next := commit.Combat.Clone()
	next.Version = commit.ExpectedVersion + 1

	combatData, err := json.Marshal(next)
	if err != nil {
		return apperr.Persistence(err, "failed to serialize combat")
	}
	eventData, err := json.Marshal(commit.Event)
	if err != nil {
		return apperr.Persistence(err, "failed to serialize combat event")
	}
	var appliedData []byte
	if commit.Applied != nil {
		if appliedData, err = json.Marshal(commit.Applied); err != nil {
			return apperr.Persistence(err, "failed to serialize applied condition")
		}
	}

	cKey := combatKey(next.ID)
	campaignKey := fmt.Sprintf(campaignCombatKey, next.CampaignID)

	txf := func(tx *redis.Tx) error {
		if err := r.checkVersion(ctx, tx, cKey, commit.ExpectedVersion); err != nil {
			return err
		}

		owner, err := tx.Get(ctx, campaignKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return apperr.Persistence(err, "failed to read campaign combat")
		}
		if owner != "" && owner != next.ID {
			return apperr.Conflictf("campaign %s already has combat %s", next.CampaignID, owner)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, cKey, combatData, 0)
			pipe.Set(ctx, campaignKey, next.ID, 0)
			pipe.RPush(ctx, fmt.Sprintf(combatEventsKey, next.ID), eventData)
			if appliedData != nil {
				pipe.RPush(ctx, fmt.Sprintf(combatConditionsKey, next.ID), appliedData)
			}
			return ledger.QueueAppend(ctx, pipe, commit.WorldEvent)
		})
		return err
	}

	if err := r.client.Watch(ctx, txf, cKey, campaignKey); err != nil {
		if errors.Is(err, redis.TxFailedErr) {
			return apperr.Conflictf("combat %s changed during commit", next.ID)
		}
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			return err
		}
		return apperr.Persistence(err, "failed to commit combat")
	}

	commit.Combat.Version = next.Version
	return nil
}

func (r *redisRepository) checkVersion(ctx context.Context, tx *redis.Tx, key string, expected int64) error {
	data, err := tx.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		if expected != 0 {
			return apperr.Conflictf("combat at %s no longer exists", key)
		}
		return nil
	}
	if err != nil {
		return apperr.Persistence(err, "failed to read combat")
	}

	var current struct {
		Version int64 `json:"version"`
	}
	if err := json.Unmarshal(data, &current); err != nil {
		return apperr.Persistence(err, "failed to deserialize combat")
	}
	if current.Version != expected {
		return apperr.Conflictf("combat changed: expected version %d, found %d", expected, current.Version)
	}
	return nil
}

func (r *redisRepository) ListEvents(ctx context.Context, combatID string) ([]*combat.Event, error) {
	raw, err := r.client.LRange(ctx, fmt.Sprintf(combatEventsKey, combatID), 0, -1).Result()
	if err != nil {
		return nil, apperr.Persistence(err, "failed to list combat events")
	}

	result := make([]*combat.Event, 0, len(raw))
	for _, item := range raw {
		var ev combat.Event
		if err := json.Unmarshal([]byte(item), &ev); err != nil {
			return nil, apperr.Persistence(err, "failed to deserialize combat event")
		}
		result = append(result, &ev)
	}
	return result, nil
}

func (r *redisRepository) ListAppliedConditions(ctx context.Context, combatID string) ([]*combat.AppliedCondition, error) {
	raw, err := r.client.LRange(ctx, fmt.Sprintf(combatConditionsKey, combatID), 0, -1).Result()
	if err != nil {
		return nil, apperr.Persistence(err, "failed to list applied conditions")
	}

	result := make([]*combat.AppliedCondition, 0, len(raw))
	for _, item := range raw {
		var a combat.AppliedCondition
		if err := json.Unmarshal([]byte(item), &a); err != nil {
			return nil, apperr.Persistence(err, "failed to deserialize applied condition")
		}
		result = append(result, &a)
	}
	return result, nil
}
