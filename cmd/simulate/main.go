package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/ludo/internal/bot"
	"github.com/KirkDiggler/ludo/internal/common/clock"
	"github.com/KirkDiggler/ludo/internal/common/uuid"
	"github.com/KirkDiggler/ludo/internal/config"
	"github.com/KirkDiggler/ludo/internal/dice"
	"github.com/KirkDiggler/ludo/internal/engine"
	"github.com/KirkDiggler/ludo/internal/models"
	"github.com/KirkDiggler/ludo/internal/repositories/game"
	gameService "github.com/KirkDiggler/ludo/internal/services/game"
	"github.com/KirkDiggler/ludo/internal/services/messaging"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// maxTurns stops a simulation that never finishes
const maxTurns = 10000

var seatNames = []string{"Ronnie", "Blair", "Casey", "Devon"}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}

	level, err := cfg.Level()
	if err != nil {
		return err
	}
	log.SetLevel(level)
	logger := log.StandardLogger()

	gameRepo, closeRepo, err := newRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	weights := bot.DefaultWeights()
	if cfg.BotWeights != "" {
		weights, err = bot.LoadWeightsFile(cfg.BotWeights)
		if err != nil {
			return err
		}
	}

	diceRoller := dice.New(&dice.Config{Seed: cfg.DiceSeed})

	heuristic, err := bot.New(&bot.Config{
		Weights: weights,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create bot: %w", err)
	}

	gameSvc, err := gameService.New(&gameService.Config{
		GameRepo:      gameRepo,
		DiceRoller:    diceRoller,
		Clock:         clock.New(),
		UUIDGenerator: uuid.New(),
		Bot:           heuristic,
		Logger:        logger,
		RollBagCopies: cfg.RollBagCopies,
	})
	if err != nil {
		return fmt.Errorf("failed to create game service: %w", err)
	}

	narrator, err := messaging.NewService(&messaging.ServiceConfig{})
	if err != nil {
		return fmt.Errorf("failed to create messaging service: %w", err)
	}

	sim := &simulation{
		games:    gameSvc,
		narrator: narrator,
	}
	return sim.play(ctx, cfg.Players, cfg.Bots)
}

// newRepository builds the configured session store
func newRepository(ctx context.Context, cfg *config.Config) (game.Repository, func(), error) {
	if cfg.Store == config.StoreMemory {
		return game.NewMemory(), func() {}, nil
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// Test Redis connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		_ = redisClient.Close()
		return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	repo, err := game.NewRedis(&game.Config{
		RedisClient: redisClient,
		TTL:         cfg.SessionTTL,
	})
	if err != nil {
		_ = redisClient.Close()
		return nil, nil, fmt.Errorf("failed to create game repository: %w", err)
	}

	return repo, func() {
		if err := redisClient.Close(); err != nil {
			log.Warnf("Error closing redis client: %v", err)
		}
	}, nil
}

type simulation struct {
	games    gameService.Service
	narrator messaging.Service
}

func (s *simulation) play(ctx context.Context, players, bots int) error {
	seats := make([]gameService.PlayerInput, players)
	for i := range seats {
		// bots take the last seats
		seats[i] = gameService.PlayerInput{
			Name:  seatNames[i],
			IsBot: i >= players-bots,
		}
	}

	created, err := s.games.CreateGame(ctx, &gameService.CreateGameInput{Players: seats})
	if err != nil {
		return err
	}
	gameID := created.Game.ID

	started, err := s.games.StartGame(ctx, &gameService.StartGameInput{GameID: gameID})
	if err != nil {
		return err
	}

	current := started.Game
	for turn := 0; !current.IsEnded(); turn++ {
		if turn >= maxTurns {
			return fmt.Errorf("game %s did not finish after %d turns", gameID, maxTurns)
		}
		if err := ctx.Err(); err != nil {
			if _, endErr := s.games.EndGame(context.Background(), &gameService.EndGameInput{GameID: gameID}); endErr != nil {
				log.Warnf("Error ending game: %v", endErr)
			}
			return err
		}

		player := current.Player(current.CurrentPlayerColour)
		if player.IsBot {
			current, err = s.botTurn(ctx, gameID, player)
		} else {
			current, err = s.seatTurn(ctx, gameID, player)
		}
		if err != nil {
			return err
		}
	}

	return s.announceResults(ctx, gameID)
}

func (s *simulation) botTurn(ctx context.Context, gameID string, player *models.Player) (*models.Game, error) {
	output, err := s.games.PlayBotTurn(ctx, &gameService.PlayBotTurnInput{GameID: gameID})
	if err != nil {
		return nil, err
	}

	for _, step := range output.Steps {
		if step.Roll != nil {
			s.narrateRoll(ctx, player.Name, step.Roll)
			if step.Roll.Move != nil {
				s.narrateMove(ctx, output.Game, step.Roll.Move)
			}
		}
		if step.Move != nil {
			s.narrateMove(ctx, output.Game, step.Move)
		}
	}
	return output.Game, nil
}

// seatTurn plays one roll for a seat without a bot, always taking the first
// legal option
func (s *simulation) seatTurn(ctx context.Context, gameID string, player *models.Player) (*models.Game, error) {
	rolled, err := s.games.RollDice(ctx, &gameService.RollDiceInput{GameID: gameID, Colour: player.Colour})
	if err != nil {
		return nil, err
	}
	s.narrateRoll(ctx, player.Name, rolled.Roll)
	if rolled.Roll.Move != nil {
		s.narrateMove(ctx, rolled.Game, rolled.Roll.Move)
	}

	if rolled.Roll.Outcome != engine.RollOutcomeAwaitingChoice {
		return rolled.Game, nil
	}

	board, err := s.games.GetBoard(ctx, &gameService.GetBoardInput{GameID: gameID})
	if err != nil {
		return nil, err
	}
	if len(board.ActiveTokens) == 0 {
		return nil, errors.New("roll is waiting but no token is active")
	}

	token := board.ActiveTokens[0]
	if token.IsInBase() {
		unlocked, err := s.games.UnlockToken(ctx, &gameService.UnlockTokenInput{
			GameID:  gameID,
			Colour:  player.Colour,
			TokenID: token.ID,
		})
		if err != nil {
			return nil, err
		}
		return unlocked.Game, nil
	}

	moved, err := s.games.MoveToken(ctx, &gameService.MoveTokenInput{
		GameID:  gameID,
		Colour:  player.Colour,
		TokenID: token.ID,
	})
	if err != nil {
		return nil, err
	}
	s.narrateMove(ctx, moved.Game, moved.Move)
	return moved.Game, nil
}

func (s *simulation) narrateRoll(ctx context.Context, name string, roll *engine.RollResult) {
	kind := messaging.RollKindNormal
	switch {
	case roll.Outcome == engine.RollOutcomeForfeited:
		kind = messaging.RollKindForfeited
	case roll.Outcome == engine.RollOutcomeNoMove:
		kind = messaging.RollKindNoMove
	case roll.DiceValue == engine.UnlockDiceValue:
		kind = messaging.RollKindSix
	}

	msg, err := s.narrator.GetRollMessage(ctx, &messaging.GetRollMessageInput{
		PlayerName: name,
		DiceValue:  roll.DiceValue,
		Kind:       kind,
	})
	if err != nil {
		log.Warnf("Error getting roll message: %v", err)
		return
	}
	fmt.Println(msg.Message)
}

func (s *simulation) narrateMove(ctx context.Context, current *models.Game, move *engine.MoveOutcome) {
	mover := current.Player(move.Token.Colour)

	if len(move.CapturedTokens) > 0 {
		victims := make([]string, 0, len(move.CapturedTokens))
		for _, t := range move.CapturedTokens {
			victims = append(victims, current.Player(t.Colour).Name)
		}
		msg, err := s.narrator.GetCaptureMessage(ctx, &messaging.GetCaptureMessageInput{
			AttackerName: mover.Name,
			VictimNames:  victims,
		})
		if err != nil {
			log.Warnf("Error getting capture message: %v", err)
		} else {
			fmt.Println(msg.Message)
		}
	}

	if move.ReachedHome {
		msg, err := s.narrator.GetHomeMessage(ctx, &messaging.GetHomeMessageInput{
			PlayerName: mover.Name,
			TokensHome: move.TokensHome,
		})
		if err != nil {
			log.Warnf("Error getting home message: %v", err)
		} else {
			fmt.Println(msg.Message)
		}
	}

	if move.PlayerWon {
		msg, err := s.narrator.GetFinishMessage(ctx, &messaging.GetFinishMessageInput{
			PlayerName: mover.Name,
			Position:   finishPosition(current, mover.Colour),
		})
		if err != nil {
			log.Warnf("Error getting finish message: %v", err)
		} else {
			fmt.Println(msg.Message)
		}
	}
}

func (s *simulation) announceResults(ctx context.Context, gameID string) error {
	results, err := s.games.GetResults(ctx, &gameService.GetResultsInput{GameID: gameID})
	if err != nil {
		return err
	}

	standings := make([]string, 0, len(results.Results))
	for _, r := range results.Results {
		standings = append(standings, r.Name)
		log.WithFields(log.Fields{
			"position": r.Position,
			"name":     r.Name,
			"colour":   r.Colour,
			"bot":      r.IsBot,
			"duration": r.PlayDuration,
		}).Info("Result")
	}

	msg, err := s.narrator.GetGameOverMessage(ctx, &messaging.GetGameOverMessageInput{Standings: standings})
	if err != nil {
		return err
	}
	fmt.Println(msg.Title)
	fmt.Println(msg.Message)
	return nil
}

// finishPosition returns the 1-based place of the colour in the finish order
func finishPosition(current *models.Game, colour models.Colour) int {
	for i, entry := range current.FinishOrder {
		if entry.Colour == colour {
			return i + 1
		}
	}
	return 0
}
