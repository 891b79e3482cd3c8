package engine

import (
	"fmt"
	"time"

	"github.com/KirkDiggler/ludo/internal/board"
	"github.com/KirkDiggler/ludo/internal/models"
)

// MoveResult is the outcome of advancing a token
type MoveResult struct {
	// Token is the token that moved
	Token *models.Token

	// From is the cell the token started on
	From models.Coordinate

	// Path lists every cell entered, one per step, ending at FinalCoord
	Path []models.Coordinate

	// FinalCoord is the cell the token stopped on
	FinalCoord models.Coordinate

	// ReachedHome is true when FinalCoord is the colour's home cell
	ReachedHome bool

	// PlayerWon is true when this move brought the player's last token home
	PlayerWon bool

	// GameEnded is true when the win left a single player in the game
	GameEnded bool

	// TokensHome counts the owner's tokens home once this move is done
	TokensHome int
}

// CaptureResult lists the tokens sent back to base by a move
type CaptureResult struct {
	CapturedTokens []*models.Token
}

// Advance walks the token the given number of cells along its path.
// The token must be movable; see IsMovable.
func Advance(game *models.Game, t *models.Token, steps int, now time.Time) (*MoveResult, error) {
	if steps < 0 {
		return nil, fmt.Errorf("%w: %d steps", ErrInsufficientSteps, steps)
	}
	if t.HasReachedHome {
		return nil, fmt.Errorf("%w: %s", ErrTokenAlreadyHome, t.Key())
	}
	if t.IsLocked {
		return nil, fmt.Errorf("%w: %s", ErrTokenLocked, t.Key())
	}
	if available := StepsAvailable(t); available < steps {
		return nil, fmt.Errorf("%w: %s has %d steps left, rolled %d", ErrInsufficientSteps, t.Key(), available, steps)
	}

	result := &MoveResult{
		Token: t,
		From:  t.Coordinates,
		Path:  make([]models.Coordinate, 0, steps),
	}

	for i := 0; i < steps; i++ {
		next, ok := board.CoordinateAfter(t.Colour, t.Coordinates, 1)
		if !ok {
			return nil, fmt.Errorf("%w: %s stepped off its path at %v", ErrInsufficientSteps, t.Key(), t.Coordinates)
		}
		t.Coordinates = next
		result.Path = append(result.Path, next)
	}
	result.FinalCoord = t.Coordinates

	if t.Coordinates.Equal(board.HomeCoordinate(t.Colour)) {
		result.ReachedHome = true
		won, err := markReachedHome(game, t, now)
		if err != nil {
			return nil, err
		}
		result.PlayerWon = won
		result.GameEnded = game.IsEnded()
	}
	if player := game.Player(t.Colour); player != nil {
		result.TokensHome = player.TokensHome()
	}

	return result, nil
}

// markReachedHome retires the token and, if it was the player's last one,
// moves the player from the turn sequence to the finish order.
func markReachedHome(game *models.Game, t *models.Token, now time.Time) (bool, error) {
	t.HasReachedHome = true
	t.IsLocked = true
	t.IsActive = false

	player, err := Player(game, t.Colour)
	if err != nil {
		return false, err
	}
	if !player.HasWon() {
		return false, nil
	}

	finished := now
	player.FinishTime = &finished
	player.ConsecutiveSixCount = 0
	finishPlayer(game, player)
	return true, nil
}

// finishPlayer removes the player from the sequence and ends the game when one is left
func finishPlayer(game *models.Game, player *models.Player) {
	next := nextColour(game.PlayerSequence, player.Colour)

	remaining := make([]models.Colour, 0, len(game.PlayerSequence))
	for _, c := range game.PlayerSequence {
		if c != player.Colour {
			remaining = append(remaining, c)
		}
	}
	game.PlayerSequence = remaining
	game.FinishOrder = append(game.FinishOrder, models.FinishEntry{Name: player.Name, Colour: player.Colour})

	if len(remaining) == 1 {
		last := game.Player(remaining[0])
		game.FinishOrder = append(game.FinishOrder, models.FinishEntry{Name: last.Name, Colour: last.Colour})
		game.Status = models.GameStatusCompleted
		game.Phase = models.TurnPhaseEnded
		game.DiceValue = 0
		return
	}

	if game.CurrentPlayerColour == player.Colour {
		game.CurrentPlayerColour = next
		game.Phase = models.TurnPhaseWaitingForRoll
		game.DiceValue = 0
	}
}

// ResolveCapture sends every token of another colour on dest back to its base.
// Nothing is captured on a safe spot.
func ResolveCapture(game *models.Game, mover *models.Token, dest models.Coordinate) (*CaptureResult, error) {
	if mover.IsLocked && !mover.HasReachedHome {
		return nil, fmt.Errorf("%w: %s", ErrTokenLocked, mover.Key())
	}

	// home cells belong to one colour
	result := &CaptureResult{CapturedTokens: []*models.Token{}}
	if mover.HasReachedHome || board.IsSafeSpot(dest) {
		return result, nil
	}

	for _, t := range TokensAt(game, dest) {
		if t.Colour == mover.Colour || t.IsLocked {
			continue
		}
		t.IsLocked = true
		t.IsActive = false
		t.Coordinates = t.InitialCoords
		result.CapturedTokens = append(result.CapturedTokens, t)
	}

	return result, nil
}
