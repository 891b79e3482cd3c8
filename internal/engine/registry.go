// Package engine applies the rules of Ludo to a *models.Game: it creates the
// token and player registry, moves and captures tokens, and drives the turn
// state machine. Every function works on the game passed in; the package
// holds no state of its own.
package engine

import (
	"fmt"
	"time"

	"github.com/KirkDiggler/ludo/internal/board"
	"github.com/KirkDiggler/ludo/internal/models"
)

// UnlockDiceValue is the roll that unlocks tokens and grants another roll
const UnlockDiceValue = 6

// MaxConsecutiveSixes is the number of sixes in a row that forfeits the turn
const MaxConsecutiveSixes = 3

// PlayerSetup describes a player joining a new game
type PlayerSetup struct {
	Name  string
	IsBot bool
}

var playerSequences = map[int][]models.Colour{
	2: {models.ColourBlue, models.ColourGreen},
	3: {models.ColourBlue, models.ColourRed, models.ColourGreen},
	4: {models.ColourBlue, models.ColourRed, models.ColourGreen, models.ColourYellow},
}

// PlayerSequence returns the seating order for the given number of players
func PlayerSequence(count int) ([]models.Colour, error) {
	sequence, ok := playerSequences[count]
	if !ok {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPlayerCount, count)
	}
	out := make([]models.Colour, len(sequence))
	copy(out, sequence)
	return out, nil
}

// NewLockedTokens creates the four tokens of a colour on their base slots
func NewLockedTokens(colour models.Colour) []*models.Token {
	slots := board.BaseSlots(colour)
	tokens := make([]*models.Token, 0, len(slots))
	for i, slot := range slots {
		tokens = append(tokens, &models.Token{
			ID:            i,
			Colour:        colour,
			Coordinates:   slot,
			InitialCoords: slot,
			IsLocked:      true,
		})
	}
	return tokens
}

// NewGame registers the players in seating order with all tokens locked.
// No turn is given yet; call ChangeTurn to hand the first roll out.
func NewGame(id string, players []PlayerSetup, now time.Time) (*models.Game, error) {
	sequence, err := PlayerSequence(len(players))
	if err != nil {
		return nil, err
	}

	game := &models.Game{
		ID:             id,
		Status:         models.GameStatusWaiting,
		Players:        make([]*models.Player, 0, len(players)),
		PlayerSequence: sequence,
		Phase:          models.TurnPhaseWaitingForRoll,
		FinishOrder:    []models.FinishEntry{},
		RollBags:       map[models.Colour][]int{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	for i, setup := range players {
		colour := sequence[i]
		name := setup.Name
		if name == "" {
			name = fmt.Sprintf("Player %d", i+1)
		}
		game.Players = append(game.Players, &models.Player{
			Name:   name,
			Colour: colour,
			IsBot:  setup.IsBot,
			Tokens: NewLockedTokens(colour),
		})
	}

	return game, nil
}

// Player looks up a registered player
func Player(game *models.Game, colour models.Colour) (*models.Player, error) {
	player := game.Player(colour)
	if player == nil {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, colour)
	}
	return player, nil
}

// Token looks up a token by colour and ID
func Token(game *models.Game, colour models.Colour, id int) (*models.Token, error) {
	player, err := Player(game, colour)
	if err != nil {
		return nil, err
	}
	token := player.Token(id)
	if token == nil {
		return nil, fmt.Errorf("%w: %s token %d", ErrTokenNotFound, colour, id)
	}
	return token, nil
}

// TokensAt returns every token standing on coord
func TokensAt(game *models.Game, coord models.Coordinate) []*models.Token {
	var tokens []*models.Token
	for _, t := range game.AllTokens() {
		if t.Coordinates.Equal(coord) {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// StepsAvailable is the distance between the token and its home cell,
// board.NotFound when the token is off its path.
func StepsAvailable(t *models.Token) int {
	return board.DistanceAlongPath(t.Colour, t.Coordinates, board.HomeCoordinate(t.Colour))
}

// IsMovable reports whether the token can legally advance the given number of steps
func IsMovable(t *models.Token, steps int) bool {
	if t.IsLocked || t.HasReachedHome {
		return false
	}
	return StepsAvailable(t) >= steps
}

// MovableTokens returns the player's tokens that can advance the given number of steps
func MovableTokens(player *models.Player, steps int) []*models.Token {
	var tokens []*models.Token
	for _, t := range player.Tokens {
		if IsMovable(t, steps) {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// UnlockableTokens returns the player's tokens still waiting on their base slot
func UnlockableTokens(player *models.Player) []*models.Token {
	var tokens []*models.Token
	for _, t := range player.Tokens {
		if t.IsInBase() {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

func activateTokens(player *models.Player, diceValue int) {
	for _, t := range player.Tokens {
		t.IsActive = IsMovable(t, diceValue) || (diceValue == UnlockDiceValue && t.IsInBase())
	}
}

func deactivateTokens(player *models.Player) {
	for _, t := range player.Tokens {
		t.IsActive = false
	}
}
