package game

// GameError is a custom error type for game-related errors
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrGameNotFound     GameError = "game not found"
	ErrInvalidGameState GameError = "invalid game state"
	ErrGameNotWaiting   GameError = "game has already started"
	ErrNotBotTurn       GameError = "current player is not a bot"
	ErrBotStuck         GameError = "bot could not finish its turn"
	ErrInvalidInput     GameError = "invalid input"
	ErrNilConfig        GameError = "config cannot be nil"
	ErrNilGameRepo      GameError = "game repository cannot be nil"
	ErrNilDiceRoller    GameError = "dice roller cannot be nil"
	ErrNilClock         GameError = "clock cannot be nil"
	ErrNilUUIDGenerator GameError = "UUID generator cannot be nil"
	ErrNilBot           GameError = "bot strategy cannot be nil"
	ErrInvalidBagCopies GameError = "roll bag copies cannot be negative"
)
