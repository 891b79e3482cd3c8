package game

import (
	"context"
	"errors"
	"fmt"
	"sort"
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

// service implements the Service interface
type service struct {
	gameRepo      gameRepo.Repository
	diceRoller    dice.Roller
	clock         clock.Clock
	uuidGenerator uuid.UUID
	bot           BotStrategy
	log           logrus.FieldLogger
	bagCopies     int
	maxBotSteps   int
}

// New creates a new game service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.GameRepo == nil {
		return nil, ErrNilGameRepo
	}
	if cfg.DiceRoller == nil {
		return nil, ErrNilDiceRoller
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}
	if cfg.Bot == nil {
		return nil, ErrNilBot
	}
	if cfg.RollBagCopies < 0 {
		return nil, ErrInvalidBagCopies
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	maxBotSteps := cfg.MaxBotSteps
	if maxBotSteps <= 0 {
		maxBotSteps = DefaultMaxBotSteps
	}

	return &service{
		gameRepo:      cfg.GameRepo,
		diceRoller:    cfg.DiceRoller,
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
		bot:           cfg.Bot,
		log:           logger,
		bagCopies:     cfg.RollBagCopies,
		maxBotSteps:   maxBotSteps,
	}, nil
}

func (s *service) loadGame(ctx context.Context, gameID string) (*models.Game, error) {
	if gameID == "" {
		return nil, fmt.Errorf("%w: game ID cannot be empty", ErrInvalidInput)
	}

	game, err := s.gameRepo.GetGame(ctx, &gameRepo.GetGameInput{GameID: gameID})
	if err != nil {
		if errors.Is(err, gameRepo.ErrGameNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	return game, nil
}

func (s *service) saveGame(ctx context.Context, game *models.Game, now time.Time) error {
	game.UpdatedAt = now
	if err := s.gameRepo.SaveGame(ctx, &gameRepo.SaveGameInput{Game: game}); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}
	return nil
}

// roll draws the next face for the colour, from its bag when bag rolling is on
func (s *service) roll(game *models.Game, colour models.Colour) (int, error) {
	if s.bagCopies == 0 {
		return s.diceRoller.Roll(dice.Sides), nil
	}

	if game.RollBags == nil {
		game.RollBags = map[models.Colour][]int{}
	}
	face, rest, err := dice.Draw(s.diceRoller, game.RollBags[colour], s.bagCopies)
	if err != nil {
		return 0, err
	}
	game.RollBags[colour] = rest
	return face, nil
}

func (s *service) gameLogger(game *models.Game) logrus.FieldLogger {
	return s.log.WithField("game_id", game.ID)
}

// CreateGame registers players and creates a game waiting to start
func (s *service) CreateGame(ctx context.Context, input *CreateGameInput) (*CreateGameOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input cannot be nil", ErrInvalidInput)
	}

	setups := make([]engine.PlayerSetup, 0, len(input.Players))
	for _, p := range input.Players {
		setups = append(setups, engine.PlayerSetup{Name: p.Name, IsBot: p.IsBot})
	}

	now := s.clock.Now()
	game, err := engine.NewGame(s.uuidGenerator.NewUUID(), setups, now)
	if err != nil {
		return nil, err
	}

	if err := s.saveGame(ctx, game, now); err != nil {
		return nil, err
	}

	s.gameLogger(game).WithField("players", len(game.Players)).Info("Game created")

	return &CreateGameOutput{Game: game}, nil
}

// StartGame hands the first roll to the first player
func (s *service) StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input cannot be nil", ErrInvalidInput)
	}

	game, err := s.loadGame(ctx, input.GameID)
	if err != nil {
		return nil, err
	}
	if game.Status != models.GameStatusWaiting {
		return nil, ErrGameNotWaiting
	}

	colour, err := engine.ChangeTurn(game)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	game.StartedAt = &now
	if err := s.saveGame(ctx, game, now); err != nil {
		return nil, err
	}

	s.gameLogger(game).WithField("colour", colour).Info("Game started")

	return &StartGameOutput{
		Game:                game,
		CurrentPlayerColour: colour,
	}, nil
}

// GetGame returns the current session state
func (s *service) GetGame(ctx context.Context, input *GetGameInput) (*GetGameOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input cannot be nil", ErrInvalidInput)
	}

	game, err := s.loadGame(ctx, input.GameID)
	if err != nil {
		return nil, err
	}
	return &GetGameOutput{Game: game}, nil
}

// RollDice rolls for the current player and applies the roll
func (s *service) RollDice(ctx context.Context, input *RollDiceInput) (*RollDiceOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input cannot be nil", ErrInvalidInput)
	}

	game, err := s.loadGame(ctx, input.GameID)
	if err != nil {
		return nil, err
	}
	if err := engine.CanRoll(game, input.Colour); err != nil {
		return nil, err
	}

	value, err := s.roll(game, input.Colour)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	result, err := engine.ApplyRoll(game, input.Colour, value, now)
	if err != nil {
		return nil, err
	}

	if err := s.saveGame(ctx, game, now); err != nil {
		return nil, err
	}

	s.logRoll(game, result)

	return &RollDiceOutput{
		Roll: result,
		Game: game,
	}, nil
}

func (s *service) logRoll(game *models.Game, result *engine.RollResult) {
	s.gameLogger(game).WithFields(logrus.Fields{
		"colour":  result.Colour,
		"dice":    result.DiceValue,
		"outcome": result.Outcome,
		"next":    result.NextColour,
	}).Info("Dice rolled")

	if result.Move != nil {
		s.logMove(game, result.Move)
	}
}

func (s *service) logMove(game *models.Game, move *engine.MoveOutcome) {
	logger := s.gameLogger(game).WithFields(logrus.Fields{
		"colour": move.Token.Colour,
		"token":  move.Token.ID,
		"from":   move.From.String(),
		"to":     move.FinalCoord.String(),
	})
	logger.Debug("Token moved")

	if len(move.CapturedTokens) > 0 {
		logger.WithField("captured", len(move.CapturedTokens)).Info("Tokens captured")
	}
	if move.PlayerWon {
		logger.Info("Player finished")
	}
	if move.GameEnded {
		s.gameLogger(game).WithField("finish_order", len(game.FinishOrder)).Info("Game over")
	}
}

// UnlockToken brings a base token onto the board with a pending six
func (s *service) UnlockToken(ctx context.Context, input *UnlockTokenInput) (*UnlockTokenOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input cannot be nil", ErrInvalidInput)
	}

	game, err := s.loadGame(ctx, input.GameID)
	if err != nil {
		return nil, err
	}

	result, err := engine.Unlock(game, input.Colour, input.TokenID)
	if err != nil {
		return nil, err
	}

	if err := s.saveGame(ctx, game, s.clock.Now()); err != nil {
		return nil, err
	}

	s.gameLogger(game).WithFields(logrus.Fields{
		"colour": input.Colour,
		"token":  input.TokenID,
	}).Debug("Token unlocked")

	return &UnlockTokenOutput{
		Unlock: result,
		Game:   game,
	}, nil
}

// MoveToken advances a token by the pending roll
func (s *service) MoveToken(ctx context.Context, input *MoveTokenInput) (*MoveTokenOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input cannot be nil", ErrInvalidInput)
	}

	game, err := s.loadGame(ctx, input.GameID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	result, err := engine.Move(game, input.Colour, input.TokenID, now)
	if err != nil {
		return nil, err
	}

	if err := s.saveGame(ctx, game, now); err != nil {
		return nil, err
	}

	s.logMove(game, result)

	return &MoveTokenOutput{
		Move: result,
		Game: game,
	}, nil
}

// PlayBotTurn rolls and plays for the current bot until the dice pass to
// another colour or the game ends. Nothing is slept; the steps are returned
// for the caller to replay at its own pace.
func (s *service) PlayBotTurn(ctx context.Context, input *PlayBotTurnInput) (*PlayBotTurnOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input cannot be nil", ErrInvalidInput)
	}

	game, err := s.loadGame(ctx, input.GameID)
	if err != nil {
		return nil, err
	}
	if game.IsEnded() {
		return nil, engine.ErrGameEnded
	}

	colour := game.CurrentPlayerColour
	player := game.Player(colour)
	if player == nil {
		return nil, engine.ErrGameNotStarted
	}
	if !player.IsBot {
		return nil, fmt.Errorf("%w: %s", ErrNotBotTurn, colour)
	}

	now := s.clock.Now()
	var steps []*BotStep
	for len(steps) < s.maxBotSteps {
		step, err := s.botStep(game, colour, now)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)

		if game.IsEnded() || game.CurrentPlayerColour != colour {
			break
		}
	}
	if !game.IsEnded() && game.CurrentPlayerColour == colour {
		return nil, fmt.Errorf("%w: %d steps", ErrBotStuck, len(steps))
	}

	if err := s.saveGame(ctx, game, now); err != nil {
		return nil, err
	}

	s.gameLogger(game).WithFields(logrus.Fields{
		"colour": colour,
		"steps":  len(steps),
		"next":   game.CurrentPlayerColour,
	}).Info("Bot turn played")

	return &PlayBotTurnOutput{
		Steps:      steps,
		NextColour: game.CurrentPlayerColour,
		Game:       game,
	}, nil
}

// botStep rolls when needed and resolves the roll with the bot's decision
func (s *service) botStep(game *models.Game, colour models.Colour, now time.Time) (*BotStep, error) {
	step := &BotStep{Colour: colour}

	if game.Phase == models.TurnPhaseWaitingForRoll {
		value, err := s.roll(game, colour)
		if err != nil {
			return nil, err
		}
		result, err := engine.ApplyRoll(game, colour, value, now)
		if err != nil {
			return nil, err
		}
		s.logRoll(game, result)

		step.Roll = result
		step.DiceValue = value
		if result.Outcome != engine.RollOutcomeAwaitingChoice {
			return step, nil
		}
	} else {
		step.DiceValue = game.DiceValue
	}

	decision := s.bot.SelectBestToken(colour, step.DiceValue, game.AllTokens())
	step.Decision = decision.Kind

	switch decision.Kind {
	case bot.DecisionUnlock:
		result, err := engine.Unlock(game, colour, decision.Token.ID)
		if err != nil {
			return nil, err
		}
		step.Unlock = result
	case bot.DecisionMove:
		result, err := engine.Move(game, colour, decision.Token.ID, now)
		if err != nil {
			return nil, err
		}
		s.logMove(game, result)
		step.Move = result
	default:
		return nil, fmt.Errorf("%w: no token to play with %d", ErrBotStuck, step.DiceValue)
	}

	return step, nil
}

// GetBoard returns the occupied cells for rendering
func (s *service) GetBoard(ctx context.Context, input *GetBoardInput) (*GetBoardOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input cannot be nil", ErrInvalidInput)
	}

	game, err := s.loadGame(ctx, input.GameID)
	if err != nil {
		return nil, err
	}

	cells, err := engine.Occupancy(game)
	if err != nil {
		return nil, err
	}

	var active []*models.Token
	if player := game.Player(game.CurrentPlayerColour); player != nil {
		for _, t := range player.Tokens {
			if t.IsActive {
				active = append(active, t)
			}
		}
	}

	return &GetBoardOutput{
		Cells:               cells,
		Status:              game.Status,
		Phase:               game.Phase,
		CurrentPlayerColour: game.CurrentPlayerColour,
		DiceValue:           game.DiceValue,
		ActiveTokens:        active,
	}, nil
}

// AddInactiveTime records time the session spent in the background so it
// does not count towards play durations
func (s *service) AddInactiveTime(ctx context.Context, input *AddInactiveTimeInput) (*AddInactiveTimeOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input cannot be nil", ErrInvalidInput)
	}
	if input.Duration < 0 {
		return nil, fmt.Errorf("%w: negative duration %s", ErrInvalidInput, input.Duration)
	}

	game, err := s.loadGame(ctx, input.GameID)
	if err != nil {
		return nil, err
	}
	if game.IsEnded() {
		return nil, engine.ErrGameEnded
	}

	game.InactiveDuration += input.Duration
	if err := s.saveGame(ctx, game, s.clock.Now()); err != nil {
		return nil, err
	}

	return &AddInactiveTimeOutput{InactiveDuration: game.InactiveDuration}, nil
}

// GetResults returns the finish order with play durations
func (s *service) GetResults(ctx context.Context, input *GetResultsInput) (*GetResultsOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input cannot be nil", ErrInvalidInput)
	}

	game, err := s.loadGame(ctx, input.GameID)
	if err != nil {
		return nil, err
	}

	results := make([]*PlayerResult, 0, len(game.FinishOrder))
	for i, entry := range game.FinishOrder {
		player := game.Player(entry.Colour)
		if player == nil {
			return nil, fmt.Errorf("%w: finish order names unknown colour %s", ErrInvalidGameState, entry.Colour)
		}

		result := &PlayerResult{
			Position: i + 1,
			Name:     entry.Name,
			Colour:   entry.Colour,
			IsBot:    player.IsBot,
			Finished: player.FinishTime != nil,
		}
		if result.Finished && game.StartedAt != nil {
			result.PlayDuration = max(player.FinishTime.Sub(*game.StartedAt)-game.InactiveDuration, 0)
		}
		results = append(results, result)
	}

	output := &GetResultsOutput{
		Results:   results,
		Completed: game.IsEnded(),
	}
	if !game.IsEnded() {
		output.StillPlaying = append([]models.Colour{}, game.PlayerSequence...)
	}
	return output, nil
}

// EndGame abandons a game, leaving the finish order as it stands
func (s *service) EndGame(ctx context.Context, input *EndGameInput) (*EndGameOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input cannot be nil", ErrInvalidInput)
	}

	game, err := s.loadGame(ctx, input.GameID)
	if err != nil {
		return nil, err
	}
	if game.IsEnded() {
		return &EndGameOutput{Game: game}, nil
	}

	for _, p := range game.Players {
		for _, t := range p.Tokens {
			t.IsActive = false
		}
	}
	game.Status = models.GameStatusCompleted
	game.Phase = models.TurnPhaseEnded
	game.DiceValue = 0

	if err := s.saveGame(ctx, game, s.clock.Now()); err != nil {
		return nil, err
	}

	s.gameLogger(game).Info("Game ended early")

	return &EndGameOutput{Game: game}, nil
}

// ListActiveGames returns every unfinished game, oldest first
func (s *service) ListActiveGames(ctx context.Context, input *ListActiveGamesInput) (*ListActiveGamesOutput, error) {
	output, err := s.gameRepo.GetActiveGames(ctx, &gameRepo.GetActiveGamesInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	games := output.Games
	sort.Slice(games, func(i, j int) bool {
		return games[i].CreatedAt.Before(games[j].CreatedAt)
	})

	return &ListActiveGamesOutput{Games: games}, nil
}
