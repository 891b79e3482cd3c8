package engine

// Error is a rule violation caused by an illegal call sequence.
// Callers are expected to filter actions with the predicates in this package
// before calling, so these indicate a bug in the caller.
type Error string

// Error implements the error interface
func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidPlayerCount   Error = "number of players can only be two, three or four"
	ErrInvalidDiceValue     Error = "dice value must be between 1 and 6"
	ErrPlayerNotFound       Error = "player does not exist"
	ErrTokenNotFound        Error = "token does not exist"
	ErrGameEnded            Error = "game has already ended"
	ErrGameNotStarted       Error = "game has not started"
	ErrNotYourTurn          Error = "it is not this player's turn"
	ErrRollPending          Error = "a dice roll is waiting to be resolved"
	ErrNoRollPending        Error = "no dice roll is waiting to be resolved"
	ErrTokenLocked          Error = "token is locked"
	ErrTokenAlreadyHome     Error = "token has already reached home"
	ErrTokenAlreadyUnlocked Error = "token is already unlocked"
	ErrInsufficientSteps    Error = "token cannot move that many steps"
	ErrUnlockNotAllowed     Error = "tokens can only be unlocked with a six"
	ErrTooManyTokens        Error = "one cell cannot hold more than 16 tokens"
)
