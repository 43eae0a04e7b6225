package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/connectn-go/internal/model"
	"github.com/mcoot/connectn-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SavePreset(ctx context.Context, preset *model.Preset) error {
	data, err := json.Marshal(preset)
	if err != nil {
		return err
	}

	key := presetKey(preset.Name)

	// Use pipeline for atomic save + index update
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, key, data, s.cfg.PresetTTL)
	pipe.SAdd(ctx, presetIndexKey(), key)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPreset(ctx context.Context, name string) (*model.Preset, error) {
	data, err := s.client.Get(ctx, presetKey(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPresetNotFound
		}
		return nil, err
	}

	var preset model.Preset
	if err := json.Unmarshal(data, &preset); err != nil {
		return nil, err
	}
	return &preset, nil
}

func (s *Storage) ListPresets(ctx context.Context) ([]*model.Preset, error) {
	keys, err := s.client.SMembers(ctx, presetIndexKey()).Result()
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return []*model.Preset{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	presets := make([]*model.Preset, 0, len(values))
	var expired []any
	for i, v := range values {
		if v == nil {
			// Expired since it was indexed
			expired = append(expired, keys[i])
			continue
		}
		str, ok := v.(string)
		if !ok {
			continue
		}
		var preset model.Preset
		if err := json.Unmarshal([]byte(str), &preset); err != nil {
			return nil, err
		}
		presets = append(presets, &preset)
	}

	if len(expired) > 0 {
		if err := s.client.SRem(ctx, presetIndexKey(), expired...).Err(); err != nil {
			return nil, err
		}
	}

	sort.Slice(presets, func(i, j int) bool { return presets[i].Name < presets[j].Name })
	return presets, nil
}

func (s *Storage) DeletePreset(ctx context.Context, name string) error {
	key := presetKey(name)

	pipe := s.client.TxPipeline()
	del := pipe.Del(ctx, key)
	pipe.SRem(ctx, presetIndexKey(), key)
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}
	if del.Val() == 0 {
		return model.ErrPresetNotFound
	}
	return nil
}
