package game

import (
	"time"

	"github.com/KirkDiggler/ludo/internal/bot"
	"github.com/KirkDiggler/ludo/internal/common/clock"
	"github.com/KirkDiggler/ludo/internal/common/uuid"
	"github.com/KirkDiggler/ludo/internal/dice"
	"github.com/KirkDiggler/ludo/internal/engine"
	"github.com/KirkDiggler/ludo/internal/models"
	gameRepo "github.com/KirkDiggler/ludo/internal/repositories/game"
	"github.com/sirupsen/logrus"
)

// DefaultMaxBotSteps bounds a single bot turn
const DefaultMaxBotSteps = 64

// BotStrategy chooses what a bot does with a roll
type BotStrategy interface {
	SelectBestToken(colour models.Colour, dice int, tokens []*models.Token) bot.Decision
}

// Config holds configuration for the game service
type Config struct {
	// Repository dependencies
	GameRepo gameRepo.Repository

	// Service dependencies
	DiceRoller    dice.Roller
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
	Bot           BotStrategy

	// Logger defaults to the logrus standard logger
	Logger logrus.FieldLogger

	// RollBagCopies switches to bag rolling with this many copies of each
	// face per colour. Zero rolls the die freely.
	RollBagCopies int

	// MaxBotSteps caps the rolls and moves of one bot turn, DefaultMaxBotSteps when zero
	MaxBotSteps int
}

// PlayerInput describes a seat in a new game
type PlayerInput struct {
	Name  string
	IsBot bool
}

// CreateGameInput contains parameters for creating a new game
type CreateGameInput struct {
	// Players in seating order, two to four
	Players []PlayerInput
}

// CreateGameOutput contains the result of creating a new game
type CreateGameOutput struct {
	Game *models.Game
}

// StartGameInput contains parameters for starting a game
type StartGameInput struct {
	GameID string
}

// StartGameOutput contains the result of starting a game
type StartGameOutput struct {
	Game *models.Game

	// CurrentPlayerColour is the colour holding the first roll
	CurrentPlayerColour models.Colour
}

type GetGameInput struct {
	GameID string
}

type GetGameOutput struct {
	Game *models.Game
}

// RollDiceInput contains parameters for a dice roll
type RollDiceInput struct {
	GameID string
	Colour models.Colour
}

// RollDiceOutput contains the result of a dice roll
type RollDiceOutput struct {
	Roll *engine.RollResult
	Game *models.Game
}

// UnlockTokenInput contains parameters for unlocking a token
type UnlockTokenInput struct {
	GameID  string
	Colour  models.Colour
	TokenID int
}

// UnlockTokenOutput contains the result of unlocking a token
type UnlockTokenOutput struct {
	Unlock *engine.UnlockResult
	Game   *models.Game
}

// MoveTokenInput contains parameters for moving a token
type MoveTokenInput struct {
	GameID  string
	Colour  models.Colour
	TokenID int
}

// MoveTokenOutput contains the result of moving a token
type MoveTokenOutput struct {
	Move *engine.MoveOutcome
	Game *models.Game
}

// PlayBotTurnInput contains parameters for playing a bot's turn
type PlayBotTurnInput struct {
	GameID string
}

// BotStep is one roll of a bot turn and what the bot did with it
type BotStep struct {
	Colour    models.Colour
	DiceValue int

	// Roll is nil when the step resolved a roll made before the bot took over
	Roll *engine.RollResult

	// Decision is empty when the roll resolved itself
	Decision bot.DecisionKind
	Unlock   *engine.UnlockResult
	Move     *engine.MoveOutcome
}

// PlayBotTurnOutput contains every step of the bot's turn in order.
// The caller decides how to pace them.
type PlayBotTurnOutput struct {
	Steps      []*BotStep
	NextColour models.Colour
	Game       *models.Game
}

type GetBoardInput struct {
	GameID string
}

// GetBoardOutput is the render model of the board
type GetBoardOutput struct {
	Cells               []engine.Cell
	Status              models.GameStatus
	Phase               models.TurnPhase
	CurrentPlayerColour models.Colour
	DiceValue           int

	// ActiveTokens are the tokens the current player may pick
	ActiveTokens []*models.Token
}

type AddInactiveTimeInput struct {
	GameID   string
	Duration time.Duration
}

type AddInactiveTimeOutput struct {
	InactiveDuration time.Duration
}

type GetResultsInput struct {
	GameID string
}

// PlayerResult is one line of the standings
type PlayerResult struct {
	Position int
	Name     string
	Colour   models.Colour
	IsBot    bool

	// Finished is false for the player left over when the game ended
	Finished bool

	// PlayDuration is finish time minus start time minus inactive time
	PlayDuration time.Duration
}

type GetResultsOutput struct {
	Results   []*PlayerResult
	Completed bool

	// StillPlaying lists colours that have not finished yet
	StillPlaying []models.Colour
}

type EndGameInput struct {
	GameID string
}

type EndGameOutput struct {
	Game *models.Game
}

type ListActiveGamesInput struct {
}

type ListActiveGamesOutput struct {
	Games []*models.Game
}
