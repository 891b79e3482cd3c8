package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/KirkDiggler/ludo/internal/models"
)

// memoryRepository keeps encoded games in a map so callers never share
// state with the store, the same as the Redis repository.
type memoryRepository struct {
	mu    sync.RWMutex
	games map[string][]byte
}

// NewMemory creates an in-process game repository
func NewMemory() *memoryRepository {
	return &memoryRepository{
		games: make(map[string][]byte),
	}
}

// SaveGame stores a snapshot of the game
func (r *memoryRepository) SaveGame(ctx context.Context, input *SaveGameInput) error {
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

	r.mu.Lock()
	defer r.mu.Unlock()
	r.games[input.Game.ID] = gameJSON

	return nil
}

// GetGame returns a copy of the stored game
func (r *memoryRepository) GetGame(ctx context.Context, input *GetGameInput) (*models.Game, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	r.mu.RLock()
	gameJSON, ok := r.games[input.GameID]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrGameNotFound
	}

	return decode(gameJSON)
}

// DeleteGame removes a game
func (r *memoryRepository) DeleteGame(ctx context.Context, input *DeleteGameInput) error {
	if input == nil || input.GameID == "" {
		return errors.New("input and game ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.games[input.GameID]; !ok {
		return ErrGameNotFound
	}
	delete(r.games, input.GameID)

	return nil
}

// GetActiveGames returns every stored game that has not finished
func (r *memoryRepository) GetActiveGames(ctx context.Context, input *GetActiveGamesInput) (*GetActiveGamesOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	games := make([]*models.Game, 0, len(r.games))
	for id, gameJSON := range r.games {
		game, err := decode(gameJSON)
		if err != nil {
			return nil, fmt.Errorf("game %s: %w", id, err)
		}
		if isActive(game) {
			games = append(games, game)
		}
	}

	return &GetActiveGamesOutput{
		Games: games,
	}, nil
}

func decode(gameJSON []byte) (*models.Game, error) {
	var game models.Game
	if err := json.Unmarshal(gameJSON, &game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}
	return &game, nil
}
