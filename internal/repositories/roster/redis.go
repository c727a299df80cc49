package roster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/coachbox/courtclock/internal/models"
)

const (
	// Key prefixes for Redis
	rosterKeyPrefix = "roster:"
	rosterNamesKey  = "roster_names"
)

// ErrRosterNotFound is returned when a roster is not found
var ErrRosterNotFound = errors.New("roster not found")

// Config holds configuration for the Redis roster repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed roster repository
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

// SaveRoster persists a roster to Redis
func (r *redisRepository) SaveRoster(ctx context.Context, input *SaveRosterInput) error {
	if input == nil || input.Roster == nil {
		return errors.New("input and roster cannot be nil")
	}

	roster := input.Roster
	if roster.Name == "" {
		return errors.New("roster name cannot be empty")
	}

	rosterJSON, err := json.Marshal(roster)
	if err != nil {
		return fmt.Errorf("failed to marshal roster: %w", err)
	}

	// Save the roster and register its name in one transaction
	pipe := r.client.Pipeline()
	pipe.Set(ctx, rosterKey(roster.Name), rosterJSON, 0)
	pipe.SAdd(ctx, rosterNamesKey, roster.Name)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save roster: %w", err)
	}

	return nil
}

// GetRoster retrieves a roster by name from Redis
func (r *redisRepository) GetRoster(ctx context.Context, input *GetRosterInput) (*models.Roster, error) {
	if input == nil || input.Name == "" {
		return nil, errors.New("input and roster name cannot be empty")
	}

	rosterJSON, err := r.client.Get(ctx, rosterKey(input.Name)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrRosterNotFound
		}
		return nil, fmt.Errorf("failed to get roster: %w", err)
	}

	var roster models.Roster
	if err := json.Unmarshal([]byte(rosterJSON), &roster); err != nil {
		return nil, fmt.Errorf("failed to unmarshal roster: %w", err)
	}

	return &roster, nil
}

// DeleteRoster removes a roster by name from Redis
func (r *redisRepository) DeleteRoster(ctx context.Context, input *DeleteRosterInput) error {
	if input == nil || input.Name == "" {
		return errors.New("input and roster name cannot be empty")
	}

	// Remove the roster and unregister its name in one transaction
	pipe := r.client.Pipeline()
	pipe.Del(ctx, rosterKey(input.Name))
	pipe.SRem(ctx, rosterNamesKey, input.Name)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete roster: %w", err)
	}

	return nil
}

// ListRosters returns the names of all saved rosters, sorted
func (r *redisRepository) ListRosters(ctx context.Context, input *ListRostersInput) (*ListRostersOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	names, err := r.client.SMembers(ctx, rosterNamesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list rosters: %w", err)
	}

	sort.Strings(names)

	return &ListRostersOutput{
		Names: names,
	}, nil
}

func rosterKey(name string) string {
	return fmt.Sprintf("%s%s", rosterKeyPrefix, name)
}
