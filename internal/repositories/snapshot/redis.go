package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/coachbox/courtclock/internal/models"
)

const (
	// Key prefix for Redis
	snapshotKeyPrefix = "snapshot:"

	// defaultSessionID is used when the caller does not name a session
	defaultSessionID = "current"
)

// ErrSnapshotNotFound is returned when no snapshot has been stored
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Config holds configuration for the Redis snapshot repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed snapshot repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// SaveSnapshot persists the session snapshot to Redis
func (r *redisRepository) SaveSnapshot(ctx context.Context, input *SaveSnapshotInput) error {
	if input == nil || input.Snapshot == nil {
		return errors.New("input and snapshot cannot be nil")
	}

	snapshotJSON, err := json.Marshal(input.Snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	key := snapshotKey(input.SessionID)
	if err := r.client.Set(ctx, key, snapshotJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

// GetSnapshot retrieves the session snapshot from Redis
func (r *redisRepository) GetSnapshot(ctx context.Context, input *GetSnapshotInput) (*models.Snapshot, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	key := snapshotKey(input.SessionID)
	snapshotJSON, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var snapshot models.Snapshot
	if err := json.Unmarshal([]byte(snapshotJSON), &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return &snapshot, nil
}

func snapshotKey(sessionID string) string {
	if sessionID == "" {
		sessionID = defaultSessionID
	}
	return fmt.Sprintf("%s%s", snapshotKeyPrefix, sessionID)
}
