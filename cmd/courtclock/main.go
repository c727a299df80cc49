package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coachbox/courtclock/internal/repositories/roster"
	"github.com/coachbox/courtclock/internal/repositories/snapshot"
	"github.com/coachbox/courtclock/internal/services/session"
)

func main() {
	// Load .env if present; real environment wins
	_ = godotenv.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if level, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       0,
	})

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}

	// Initialize repositories
	snapshotRepo, err := snapshot.NewRedis(&snapshot.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create snapshot repository")
	}

	rosterRepo, err := roster.NewRedis(&roster.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create roster repository")
	}

	// Initialize session service
	svc, err := session.New(context.Background(), &session.Config{
		SnapshotRepo: snapshotRepo,
		RosterRepo:   rosterRepo,
		PollInterval: time.Duration(getEnvAsInt("POLL_INTERVAL_MS", 250)) * time.Millisecond,
		BaseTimeouts: getEnvAsInt("BASE_TIMEOUTS", 4),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create session service")
	}

	state, err := svc.GetGameState(context.Background(), &session.GetGameStateInput{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read session state")
	}

	log.Info().
		Int("num_players", state.Config.NumPlayers).
		Int("on_court", state.Config.OnCourt).
		Str("format", string(state.Config.Format)).
		Int("period_minutes", state.Config.PeriodMinutes).
		Msg("court clock ready")

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	// Stop the clocks before exiting
	if _, err := svc.PauseClock(context.Background(), &session.PauseClockInput{}); err != nil {
		log.Warn().Err(err).Msg("failed to pause game clock")
	}
	if _, err := svc.PauseOvertime(context.Background(), &session.PauseOvertimeInput{}); err != nil {
		log.Warn().Err(err).Msg("failed to pause overtime clock")
	}

	log.Info().Msg("court clock shut down")
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt gets an integer environment variable or returns a default
// value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
