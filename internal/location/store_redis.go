package location

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	id "trackwatch/pkg/domain"
	"trackwatch/pkg/platform/sentinel"
)

const (
	// Redis key prefix for per-user location state.
	stateKeyPrefix = "loc:state:"
	// SCAN page size for snapshot reads.
	snapshotScanCount = 256
)

// RedisStore is the production Store. Each user's latest state lives under a
// single key as JSON; the sweep snapshots the set with SCAN + MGET so it never
// blocks the server with a KEYS call.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, userID id.UserID) (*State, error) {
	raw, err := s.client.Get(ctx, stateKeyPrefix+userID.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get location state: %w", err)
	}
	var state State
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("decode location state: %w", err)
	}
	return &state, nil
}

func (s *RedisStore) Put(ctx context.Context, state State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode location state: %w", err)
	}
	if err := s.client.Set(ctx, stateKeyPrefix+state.UserID.String(), raw, 0).Err(); err != nil {
		return fmt.Errorf("put location state: %w", err)
	}
	return nil
}

func (s *RedisStore) Snapshot(ctx context.Context) ([]State, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, stateKeyPrefix+"*", snapshotScanCount).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan location states: %w", err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("fetch location states: %w", err)
	}

	states := make([]State, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			// Key deleted between SCAN and MGET.
			continue
		}
		var state State
		if err := json.Unmarshal([]byte(raw), &state); err != nil {
			return nil, fmt.Errorf("decode location state: %w", err)
		}
		states = append(states, state)
	}
	return states, nil
}
