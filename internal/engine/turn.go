package engine

import (
	"fmt"
	"time"

	"github.com/KirkDiggler/ludo/internal/board"
	"github.com/KirkDiggler/ludo/internal/models"
)

// RollOutcome describes what the turn controller did with a roll
type RollOutcome string

const (
	// RollOutcomeForfeited means a third six in a row passed the turn
	RollOutcomeForfeited RollOutcome = "forfeited"

	// RollOutcomeAwaitingChoice means the player must unlock or pick a token
	RollOutcomeAwaitingChoice RollOutcome = "awaiting_choice"

	// RollOutcomeAutoMoved means the only possible move was made for the player
	RollOutcomeAutoMoved RollOutcome = "auto_moved"

	// RollOutcomeNoMove means nothing could move and the turn passed
	RollOutcomeNoMove RollOutcome = "no_move"
)

// RollResult is the outcome of applying a dice roll
type RollResult struct {
	// Colour is the player who rolled
	Colour models.Colour

	// DiceValue is the rolled value
	DiceValue int

	// Outcome tells the caller what happens next
	Outcome RollOutcome

	// CanUnlock is true when a six was rolled and a token waits on its base slot
	CanUnlock bool

	// MovableTokens are the tokens that may advance by DiceValue
	MovableTokens []*models.Token

	// Move is set when the roll was resolved by an automatic move
	Move *MoveOutcome

	// NextColour is the player expected to act next
	NextColour models.Colour
}

// MoveOutcome is a completed move with its captures and turn consequence
type MoveOutcome struct {
	*MoveResult

	// CapturedTokens are the opposing tokens sent back to base
	CapturedTokens []*models.Token

	// ExtraTurn is true when the mover rolls again
	ExtraTurn bool

	// NextColour is the player expected to roll next
	NextColour models.Colour
}

// UnlockResult is the outcome of bringing a token onto the board
type UnlockResult struct {
	Token      *models.Token
	NextColour models.Colour
}

// nextColour returns the colour seated after current, wrapping to the start.
// A colour missing from the sequence is followed by the first colour.
func nextColour(sequence []models.Colour, current models.Colour) models.Colour {
	if len(sequence) == 0 {
		return ""
	}
	for i, c := range sequence {
		if c == current {
			return sequence[(i+1)%len(sequence)]
		}
	}
	return sequence[0]
}

// ChangeTurn hands the dice to the next player in the sequence.
// The first call on a new game gives the turn to the first player.
func ChangeTurn(game *models.Game) (models.Colour, error) {
	if game.IsEnded() {
		return "", ErrGameEnded
	}
	if len(game.PlayerSequence) == 0 {
		return "", fmt.Errorf("%w: empty player sequence", ErrPlayerNotFound)
	}

	if current := game.Player(game.CurrentPlayerColour); current != nil {
		deactivateTokens(current)
		current.ConsecutiveSixCount = 0
	}

	if game.CurrentPlayerColour == "" {
		game.CurrentPlayerColour = game.PlayerSequence[0]
		game.Status = models.GameStatusActive
	} else {
		game.CurrentPlayerColour = nextColour(game.PlayerSequence, game.CurrentPlayerColour)
	}
	game.Phase = models.TurnPhaseWaitingForRoll
	game.DiceValue = 0

	return game.CurrentPlayerColour, nil
}

func checkTurn(game *models.Game, colour models.Colour) (*models.Player, error) {
	if game.IsEnded() {
		return nil, ErrGameEnded
	}
	if game.CurrentPlayerColour == "" {
		return nil, ErrGameNotStarted
	}
	if game.CurrentPlayerColour != colour {
		return nil, fmt.Errorf("%w: %s tried to act during %s's turn", ErrNotYourTurn, colour, game.CurrentPlayerColour)
	}
	return Player(game, colour)
}

// CanRoll reports why the colour may not roll right now, nil when it may
func CanRoll(game *models.Game, colour models.Colour) error {
	if _, err := checkTurn(game, colour); err != nil {
		return err
	}
	if game.Phase != models.TurnPhaseWaitingForRoll {
		return fmt.Errorf("%w: %s must resolve %d first", ErrRollPending, colour, game.DiceValue)
	}
	return nil
}

// ApplyRoll feeds a dice roll for the current player into the turn state machine
func ApplyRoll(game *models.Game, colour models.Colour, value int, now time.Time) (*RollResult, error) {
	if value < 1 || value > 6 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDiceValue, value)
	}
	if err := CanRoll(game, colour); err != nil {
		return nil, err
	}
	player, err := Player(game, colour)
	if err != nil {
		return nil, err
	}

	result := &RollResult{
		Colour:    colour,
		DiceValue: value,
	}

	if value == UnlockDiceValue {
		player.ConsecutiveSixCount++
	} else {
		player.ConsecutiveSixCount = 0
	}

	if player.ConsecutiveSixCount >= MaxConsecutiveSixes {
		player.ConsecutiveSixCount = 0
		next, err := ChangeTurn(game)
		if err != nil {
			return nil, err
		}
		result.Outcome = RollOutcomeForfeited
		result.NextColour = next
		return result, nil
	}

	game.Phase = models.TurnPhaseResolving
	game.DiceValue = value
	activateTokens(player, value)

	result.MovableTokens = MovableTokens(player, value)
	result.CanUnlock = value == UnlockDiceValue && len(UnlockableTokens(player)) > 0

	if result.CanUnlock {
		result.Outcome = RollOutcomeAwaitingChoice
		result.NextColour = colour
		return result, nil
	}

	if len(result.MovableTokens) == 0 {
		next, err := ChangeTurn(game)
		if err != nil {
			return nil, err
		}
		result.Outcome = RollOutcomeNoMove
		result.NextColour = next
		return result, nil
	}

	if auto := onlyChoice(result.MovableTokens); auto != nil {
		move, err := Move(game, colour, auto.ID, now)
		if err != nil {
			return nil, err
		}
		result.Outcome = RollOutcomeAutoMoved
		result.Move = move
		result.NextColour = move.NextColour
		return result, nil
	}

	result.Outcome = RollOutcomeAwaitingChoice
	result.NextColour = colour
	return result, nil
}

// onlyChoice returns the token to move when the choice collapses to one cell
func onlyChoice(movable []*models.Token) *models.Token {
	if len(movable) == 0 {
		return nil
	}
	first := movable[0]
	for _, t := range movable[1:] {
		if !t.Coordinates.Equal(first.Coordinates) {
			return nil
		}
	}
	return first
}

// Unlock places a base token on its start cell using a pending six.
// The player rolls again afterwards.
func Unlock(game *models.Game, colour models.Colour, id int) (*UnlockResult, error) {
	player, err := checkTurn(game, colour)
	if err != nil {
		return nil, err
	}
	if game.Phase != models.TurnPhaseResolving {
		return nil, ErrNoRollPending
	}
	if game.DiceValue != UnlockDiceValue {
		return nil, fmt.Errorf("%w: rolled %d", ErrUnlockNotAllowed, game.DiceValue)
	}

	t := player.Token(id)
	if t == nil {
		return nil, fmt.Errorf("%w: %s token %d", ErrTokenNotFound, colour, id)
	}
	if t.HasReachedHome {
		return nil, fmt.Errorf("%w: %s", ErrTokenAlreadyHome, t.Key())
	}
	if !t.IsLocked {
		return nil, fmt.Errorf("%w: %s", ErrTokenAlreadyUnlocked, t.Key())
	}

	t.IsLocked = false
	t.Coordinates = board.StartCoordinate(colour)
	deactivateTokens(player)

	game.Phase = models.TurnPhaseWaitingForRoll
	game.DiceValue = 0

	return &UnlockResult{Token: t, NextColour: colour}, nil
}

// Move advances one of the current player's tokens by the pending roll and
// resolves captures on the cell it lands on. The player keeps the turn after a
// six, a capture or a token reaching home, unless that move won the game for them.
func Move(game *models.Game, colour models.Colour, id int, now time.Time) (*MoveOutcome, error) {
	player, err := checkTurn(game, colour)
	if err != nil {
		return nil, err
	}
	if game.Phase != models.TurnPhaseResolving {
		return nil, ErrNoRollPending
	}

	t := player.Token(id)
	if t == nil {
		return nil, fmt.Errorf("%w: %s token %d", ErrTokenNotFound, colour, id)
	}

	diceValue := game.DiceValue
	deactivateTokens(player)

	moved, err := Advance(game, t, diceValue, now)
	if err != nil {
		activateTokens(player, diceValue)
		return nil, err
	}

	capture := &CaptureResult{CapturedTokens: []*models.Token{}}
	if !moved.ReachedHome {
		capture, err = ResolveCapture(game, t, moved.FinalCoord)
		if err != nil {
			return nil, err
		}
	}

	outcome := &MoveOutcome{
		MoveResult:     moved,
		CapturedTokens: capture.CapturedTokens,
	}

	switch {
	case moved.GameEnded:
		outcome.NextColour = ""
	case moved.PlayerWon:
		// finishing already handed the dice to the next seat
		outcome.NextColour = game.CurrentPlayerColour
	case diceValue == UnlockDiceValue || len(capture.CapturedTokens) > 0 || moved.ReachedHome:
		outcome.ExtraTurn = true
		outcome.NextColour = colour
		game.Phase = models.TurnPhaseWaitingForRoll
		game.DiceValue = 0
	default:
		next, err := ChangeTurn(game)
		if err != nil {
			return nil, err
		}
		outcome.NextColour = next
	}

	return outcome, nil
}
