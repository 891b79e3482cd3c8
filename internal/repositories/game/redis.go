package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/ludo/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	gameKeyPrefix  = "ludo:game:"
	activeGamesKey = "ludo:active_games"

	// DefaultTTL is how long an untouched session survives
	DefaultTTL = 24 * time.Hour
)

// Config holds configuration for the Redis game repository
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// TTL is refreshed on every save, DefaultTTL when zero
	TTL time.Duration
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a new Redis-backed game repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if cfg.TTL < 0 {
		return nil, errors.New("ttl cannot be negative")
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
		ttl:    ttl,
	}, nil
}

func gameKey(id string) string {
	return gameKeyPrefix + id
}

// SaveGame persists a game to Redis and refreshes its expiry
func (r *redisRepository) SaveGame(ctx context.Context, input *SaveGameInput) error {
	if input == nil || input.Game == nil {
		return errors.New("input and game cannot be nil")
	}
	if input.Game.ID == "" {
		return errors.New("game ID cannot be empty")
	}

	gameJSON, err := json.Marshal(input.Game)
	if err != nil {
		return fmt.Errorf("failed to marshal game: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, gameKey(input.Game.ID), gameJSON, r.ttl)

	if isActive(input.Game) {
		pipe.SAdd(ctx, activeGamesKey, input.Game.ID)
	} else {
		pipe.SRem(ctx, activeGamesKey, input.Game.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}

	return nil
}

// GetGame retrieves a game by ID from Redis
func (r *redisRepository) GetGame(ctx context.Context, input *GetGameInput) (*models.Game, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	gameJSON, err := r.client.Get(ctx, gameKey(input.GameID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	var game models.Game
	if err := json.Unmarshal([]byte(gameJSON), &game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &game, nil
}

// DeleteGame removes a game from Redis
func (r *redisRepository) DeleteGame(ctx context.Context, input *DeleteGameInput) error {
	if input == nil || input.GameID == "" {
		return errors.New("input and game ID cannot be empty")
	}

	pipe := r.client.TxPipeline()
	del := pipe.Del(ctx, gameKey(input.GameID))
	pipe.SRem(ctx, activeGamesKey, input.GameID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	if del.Val() == 0 {
		return ErrGameNotFound
	}
	return nil
}

// GetActiveGames retrieves all unfinished games from Redis.
// IDs whose session expired are dropped from the index.
func (r *redisRepository) GetActiveGames(ctx context.Context, input *GetActiveGamesInput) (*GetActiveGamesOutput, error) {
	gameIDs, err := r.client.SMembers(ctx, activeGamesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get active game IDs: %w", err)
	}

	if len(gameIDs) == 0 {
		return &GetActiveGamesOutput{
			Games: []*models.Game{},
		}, nil
	}

	pipe := r.client.Pipeline()
	gameCommands := make(map[string]*redis.StringCmd, len(gameIDs))
	for _, gameID := range gameIDs {
		gameCommands[gameID] = pipe.Get(ctx, gameKey(gameID))
	}

	// redis.Nil for expired games is handled per command below
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get active games: %w", err)
	}

	games := make([]*models.Game, 0, len(gameIDs))
	var expired []any
	for gameID, cmd := range gameCommands {
		gameJSON, err := cmd.Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				expired = append(expired, gameID)
				continue
			}
			return nil, fmt.Errorf("failed to get game %s: %w", gameID, err)
		}

		var game models.Game
		if err := json.Unmarshal([]byte(gameJSON), &game); err != nil {
			return nil, fmt.Errorf("failed to unmarshal game %s: %w", gameID, err)
		}

		games = append(games, &game)
	}

	if len(expired) > 0 {
		if err := r.client.SRem(ctx, activeGamesKey, expired...).Err(); err != nil {
			return nil, fmt.Errorf("failed to prune expired games: %w", err)
		}
	}

	return &GetActiveGamesOutput{
		Games: games,
	}, nil
}
