package game

import (
	"errors"

	"github.com/KirkDiggler/ludo/internal/models"
)

// ErrGameNotFound is returned when a game is not found
var ErrGameNotFound = errors.New("game not found")

type SaveGameInput struct {
	Game *models.Game
}

type GetGameInput struct {
	GameID string
}

type DeleteGameInput struct {
	GameID string
}

type GetActiveGamesInput struct {
}

type GetActiveGamesOutput struct {
	Games []*models.Game
}

// isActive reports whether a game belongs in the active index
func isActive(game *models.Game) bool {
	return game.Status == models.GameStatusWaiting || game.Status == models.GameStatusActive
}
