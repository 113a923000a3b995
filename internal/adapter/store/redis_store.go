package store

import (
	"context"
	"encoding/json"
	"fmt"

	"rokufun-core/internal/domain/entity"

	"github.com/redis/go-redis/v9"
)

// Fixed keys, one JSON blob each. The journal is loaded once at startup and
// rewritten in full on every mutation, mirroring the original client-local
// store.
const (
	keyLogs     = "journal:logs"
	keyStats    = "journal:stats"
	keySettings = "journal:settings"
)

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) LoadLogs(ctx context.Context) (map[string]entity.DailyLog, error) {
	logs := map[string]entity.DailyLog{}
	if err := s.loadJSON(ctx, keyLogs, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (s *RedisStore) SaveLogs(ctx context.Context, logs map[string]entity.DailyLog) error {
	return s.saveJSON(ctx, keyLogs, logs)
}

func (s *RedisStore) LoadStats(ctx context.Context) (entity.UserStats, error) {
	var stats entity.UserStats
	if err := s.loadJSON(ctx, keyStats, &stats); err != nil {
		return entity.UserStats{}, err
	}
	return stats, nil
}

func (s *RedisStore) SaveStats(ctx context.Context, stats entity.UserStats) error {
	return s.saveJSON(ctx, keyStats, stats)
}

func (s *RedisStore) LoadSettings(ctx context.Context) (entity.UserSettings, error) {
	settings := entity.UserSettings{Personality: entity.PersonalityPhilosopher}
	if err := s.loadJSON(ctx, keySettings, &settings); err != nil {
		return entity.UserSettings{}, err
	}
	return settings, nil
}

func (s *RedisStore) SaveSettings(ctx context.Context, settings entity.UserSettings) error {
	return s.saveJSON(ctx, keySettings, settings)
}

// loadJSON leaves dst untouched when the key is absent.
func (s *RedisStore) loadJSON(ctx context.Context, key string, dst any) error {
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(val), dst); err != nil {
		return fmt.Errorf("decoding %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) saveJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}
