package game

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/KirkDiggler/ludo/internal/board"
	"github.com/KirkDiggler/ludo/internal/bot"
	"github.com/KirkDiggler/ludo/internal/common/clock/mocks"
	uuidMocks "github.com/KirkDiggler/ludo/internal/common/uuid/mocks"
	"github.com/KirkDiggler/ludo/internal/dice"
	diceMocks "github.com/KirkDiggler/ludo/internal/dice/mocks"
	"github.com/KirkDiggler/ludo/internal/engine"
	"github.com/KirkDiggler/ludo/internal/models"
	gameRepo "github.com/KirkDiggler/ludo/internal/repositories/game"
	gameMocks "github.com/KirkDiggler/ludo/internal/repositories/game/mocks"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type GameServiceTestSuite struct {
	suite.Suite
	mockCtrl       *gomock.Controller
	mockGameRepo   *gameMocks.MockRepository
	mockDiceRoller *diceMocks.MockRoller
	mockClock      *mocks.MockClock
	mockUUID       *uuidMocks.MockUUID
	logHook        *test.Hook
	config         *Config
	gameService    Service
	ctx            context.Context

	// Test data
	testTime   time.Time
	testGameID string
}

func (s *GameServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockGameRepo = gameMocks.NewMockRepository(s.mockCtrl)
	s.mockDiceRoller = diceMocks.NewMockRoller(s.mockCtrl)
	s.mockClock = mocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)

	s.ctx = context.Background()
	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.testGameID = "test-game-id"

	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	s.logHook = hook

	heuristic, err := bot.New(&bot.Config{
		Rand:   rand.New(rand.NewSource(1)),
		Logger: logger,
	})
	s.Require().NoError(err)

	s.config = &Config{
		GameRepo:      s.mockGameRepo,
		DiceRoller:    s.mockDiceRoller,
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
		Bot:           heuristic,
		Logger:        logger,
	}

	svc, err := New(s.config)
	s.Require().NoError(err)
	s.gameService = svc
}

func (s *GameServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

// newGame builds a game as the repository would return it
func (s *GameServiceTestSuite) newGame(players []engine.PlayerSetup, started bool) *models.Game {
	game, err := engine.NewGame(s.testGameID, players, s.testTime)
	s.Require().NoError(err)
	if started {
		_, err := engine.ChangeTurn(game)
		s.Require().NoError(err)
		startedAt := s.testTime
		game.StartedAt = &startedAt
	}
	return game
}

func (s *GameServiceTestSuite) expectGet(game *models.Game) {
	s.mockGameRepo.EXPECT().
		GetGame(gomock.Any(), &gameRepo.GetGameInput{GameID: s.testGameID}).
		Return(game, nil)
}

func (s *GameServiceTestSuite) expectSave() {
	s.mockGameRepo.EXPECT().
		SaveGame(gomock.Any(), gomock.Any()).
		Return(nil)
}

func (s *GameServiceTestSuite) TestNew_Validation() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	cfg := *s.config
	cfg.GameRepo = nil
	_, err = New(&cfg)
	s.ErrorIs(err, ErrNilGameRepo)

	cfg = *s.config
	cfg.DiceRoller = nil
	_, err = New(&cfg)
	s.ErrorIs(err, ErrNilDiceRoller)

	cfg = *s.config
	cfg.Clock = nil
	_, err = New(&cfg)
	s.ErrorIs(err, ErrNilClock)

	cfg = *s.config
	cfg.UUIDGenerator = nil
	_, err = New(&cfg)
	s.ErrorIs(err, ErrNilUUIDGenerator)

	cfg = *s.config
	cfg.Bot = nil
	_, err = New(&cfg)
	s.ErrorIs(err, ErrNilBot)

	cfg = *s.config
	cfg.RollBagCopies = -1
	_, err = New(&cfg)
	s.ErrorIs(err, ErrInvalidBagCopies)
}

func (s *GameServiceTestSuite) TestCreateGame_HappyPath() {
	s.mockUUID.EXPECT().NewUUID().Return(s.testGameID)
	s.mockGameRepo.EXPECT().
		SaveGame(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *gameRepo.SaveGameInput) error {
			s.Equal(s.testGameID, input.Game.ID)
			s.Equal(models.GameStatusWaiting, input.Game.Status)
			return nil
		})

	output, err := s.gameService.CreateGame(s.ctx, &CreateGameInput{
		Players: []PlayerInput{{Name: "Ana"}, {Name: "Bot", IsBot: true}},
	})
	s.Require().NoError(err)

	s.Equal(s.testGameID, output.Game.ID)
	s.Equal([]models.Colour{models.ColourBlue, models.ColourGreen}, output.Game.PlayerSequence)
	s.True(output.Game.Player(models.ColourGreen).IsBot)
	s.Equal(s.testTime, output.Game.CreatedAt)
}

func (s *GameServiceTestSuite) TestCreateGame_InvalidPlayerCount() {
	s.mockUUID.EXPECT().NewUUID().Return(s.testGameID)

	_, err := s.gameService.CreateGame(s.ctx, &CreateGameInput{Players: []PlayerInput{{Name: "Solo"}}})
	s.ErrorIs(err, engine.ErrInvalidPlayerCount)
}

func (s *GameServiceTestSuite) TestStartGame_HappyPath() {
	s.expectGet(s.newGame(make([]engine.PlayerSetup, 3), false))
	s.expectSave()

	output, err := s.gameService.StartGame(s.ctx, &StartGameInput{GameID: s.testGameID})
	s.Require().NoError(err)

	s.Equal(models.ColourBlue, output.CurrentPlayerColour)
	s.Equal(models.GameStatusActive, output.Game.Status)
	s.Require().NotNil(output.Game.StartedAt)
	s.Equal(s.testTime, *output.Game.StartedAt)
}

func (s *GameServiceTestSuite) TestStartGame_AlreadyStarted() {
	s.expectGet(s.newGame(make([]engine.PlayerSetup, 2), true))

	_, err := s.gameService.StartGame(s.ctx, &StartGameInput{GameID: s.testGameID})
	s.ErrorIs(err, ErrGameNotWaiting)
}

func (s *GameServiceTestSuite) TestGetGame_NotFound() {
	s.mockGameRepo.EXPECT().
		GetGame(gomock.Any(), &gameRepo.GetGameInput{GameID: s.testGameID}).
		Return(nil, gameRepo.ErrGameNotFound)

	_, err := s.gameService.GetGame(s.ctx, &GetGameInput{GameID: s.testGameID})
	s.ErrorIs(err, ErrGameNotFound)

	_, err = s.gameService.GetGame(s.ctx, &GetGameInput{})
	s.ErrorIs(err, ErrInvalidInput)
}

func (s *GameServiceTestSuite) TestGetGame_RepositoryError() {
	boom := errors.New("connection refused")
	s.mockGameRepo.EXPECT().GetGame(gomock.Any(), gomock.Any()).Return(nil, boom)

	_, err := s.gameService.GetGame(s.ctx, &GetGameInput{GameID: s.testGameID})
	s.ErrorIs(err, boom)
	s.NotErrorIs(err, ErrGameNotFound)
}

func (s *GameServiceTestSuite) TestRollDice_NothingMovablePassesTurn() {
	s.expectGet(s.newGame(make([]engine.PlayerSetup, 2), true))
	s.mockDiceRoller.EXPECT().Roll(6).Return(3)
	s.expectSave()

	output, err := s.gameService.RollDice(s.ctx, &RollDiceInput{GameID: s.testGameID, Colour: models.ColourBlue})
	s.Require().NoError(err)

	s.Equal(engine.RollOutcomeNoMove, output.Roll.Outcome)
	s.Equal(models.ColourGreen, output.Game.CurrentPlayerColour)
}

func (s *GameServiceTestSuite) TestRollDice_NotYourTurn() {
	s.expectGet(s.newGame(make([]engine.PlayerSetup, 2), true))

	_, err := s.gameService.RollDice(s.ctx, &RollDiceInput{GameID: s.testGameID, Colour: models.ColourGreen})
	s.ErrorIs(err, engine.ErrNotYourTurn)
}

func (s *GameServiceTestSuite) TestRollDice_SaveFails() {
	s.expectGet(s.newGame(make([]engine.PlayerSetup, 2), true))
	s.mockDiceRoller.EXPECT().Roll(6).Return(3)
	s.mockGameRepo.EXPECT().SaveGame(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	_, err := s.gameService.RollDice(s.ctx, &RollDiceInput{GameID: s.testGameID, Colour: models.ColourBlue})
	s.ErrorContains(err, "failed to save game")
}

func (s *GameServiceTestSuite) TestRollDice_FromBag() {
	cfg := *s.config
	cfg.RollBagCopies = 1
	svc, err := New(&cfg)
	s.Require().NoError(err)

	s.expectGet(s.newGame(make([]engine.PlayerSetup, 2), true))
	s.mockDiceRoller.EXPECT().Roll(6).Return(6)
	s.expectSave()

	output, err := svc.RollDice(s.ctx, &RollDiceInput{GameID: s.testGameID, Colour: models.ColourBlue})
	s.Require().NoError(err)

	s.Equal(6, output.Roll.DiceValue)
	s.Equal([]int{1, 2, 3, 4, 5}, output.Game.RollBags[models.ColourBlue])
}

func (s *GameServiceTestSuite) TestUnlockThenMove() {
	game := s.newGame(make([]engine.PlayerSetup, 2), true)
	game.Phase = models.TurnPhaseResolving
	game.DiceValue = 6

	s.expectGet(game)
	s.expectSave()

	unlocked, err := s.gameService.UnlockToken(s.ctx, &UnlockTokenInput{GameID: s.testGameID, Colour: models.ColourBlue, TokenID: 2})
	s.Require().NoError(err)
	s.Equal(board.StartCoordinate(models.ColourBlue), unlocked.Unlock.Token.Coordinates)
	s.Equal(models.TurnPhaseWaitingForRoll, unlocked.Game.Phase)

	game.Phase = models.TurnPhaseResolving
	game.DiceValue = 4
	s.expectGet(game)
	s.expectSave()

	moved, err := s.gameService.MoveToken(s.ctx, &MoveTokenInput{GameID: s.testGameID, Colour: models.ColourBlue, TokenID: 2})
	s.Require().NoError(err)
	s.Equal(board.TokenPath(models.ColourBlue)[4], moved.Move.FinalCoord)
	s.Equal(models.ColourGreen, moved.Game.CurrentPlayerColour)
}

func (s *GameServiceTestSuite) TestMoveToken_LockedToken() {
	game := s.newGame(make([]engine.PlayerSetup, 2), true)
	game.Phase = models.TurnPhaseResolving
	game.DiceValue = 3
	s.expectGet(game)

	_, err := s.gameService.MoveToken(s.ctx, &MoveTokenInput{GameID: s.testGameID, Colour: models.ColourBlue, TokenID: 0})
	s.ErrorIs(err, engine.ErrTokenLocked)
}

func (s *GameServiceTestSuite) TestPlayBotTurn_NothingToDo() {
	s.expectGet(s.newGame([]engine.PlayerSetup{{IsBot: true}, {}}, true))
	s.mockDiceRoller.EXPECT().Roll(6).Return(2)
	s.expectSave()

	output, err := s.gameService.PlayBotTurn(s.ctx, &PlayBotTurnInput{GameID: s.testGameID})
	s.Require().NoError(err)

	s.Require().Len(output.Steps, 1)
	s.Equal(engine.RollOutcomeNoMove, output.Steps[0].Roll.Outcome)
	s.Equal(models.ColourGreen, output.NextColour)
}

func (s *GameServiceTestSuite) TestPlayBotTurn_UnlocksThenMoves() {
	s.expectGet(s.newGame([]engine.PlayerSetup{{IsBot: true}, {}}, true))
	gomock.InOrder(
		s.mockDiceRoller.EXPECT().Roll(6).Return(6),
		s.mockDiceRoller.EXPECT().Roll(6).Return(2),
	)
	s.expectSave()

	output, err := s.gameService.PlayBotTurn(s.ctx, &PlayBotTurnInput{GameID: s.testGameID})
	s.Require().NoError(err)

	s.Require().Len(output.Steps, 2)
	s.Equal(bot.DecisionUnlock, output.Steps[0].Decision)
	s.Require().NotNil(output.Steps[0].Unlock)

	s.Equal(engine.RollOutcomeAutoMoved, output.Steps[1].Roll.Outcome)
	s.Equal(board.TokenPath(models.ColourBlue)[2], output.Steps[1].Roll.Move.FinalCoord)
	s.Equal(models.ColourGreen, output.NextColour)
}

func (s *GameServiceTestSuite) TestPlayBotTurn_ChoosesBetweenTokens() {
	game := s.newGame([]engine.PlayerSetup{{IsBot: true}, {}}, true)
	blue := game.Player(models.ColourBlue)
	for id := 0; id < 2; id++ {
		blue.Tokens[id].IsLocked = false
	}
	blue.Tokens[0].Coordinates = board.TokenPath(models.ColourBlue)[53]
	blue.Tokens[1].Coordinates = board.TokenPath(models.ColourBlue)[10]

	s.expectGet(game)
	gomock.InOrder(
		s.mockDiceRoller.EXPECT().Roll(6).Return(3),
		s.mockDiceRoller.EXPECT().Roll(6).Return(1),
	)
	s.expectSave()

	output, err := s.gameService.PlayBotTurn(s.ctx, &PlayBotTurnInput{GameID: s.testGameID})
	s.Require().NoError(err)

	s.Require().Len(output.Steps, 2)
	s.Equal(bot.DecisionMove, output.Steps[0].Decision)
	s.True(output.Steps[0].Move.ReachedHome)
	s.True(output.Steps[0].Move.ExtraTurn)
	s.Equal(engine.RollOutcomeAutoMoved, output.Steps[1].Roll.Outcome)
	s.Equal(models.ColourGreen, output.NextColour)
}

func (s *GameServiceTestSuite) TestPlayBotTurn_NotBot() {
	s.expectGet(s.newGame(make([]engine.PlayerSetup, 2), true))

	_, err := s.gameService.PlayBotTurn(s.ctx, &PlayBotTurnInput{GameID: s.testGameID})
	s.ErrorIs(err, ErrNotBotTurn)
}

func (s *GameServiceTestSuite) TestPlayBotTurn_NotStarted() {
	s.expectGet(s.newGame([]engine.PlayerSetup{{IsBot: true}, {}}, false))

	_, err := s.gameService.PlayBotTurn(s.ctx, &PlayBotTurnInput{GameID: s.testGameID})
	s.ErrorIs(err, engine.ErrGameNotStarted)
}

func (s *GameServiceTestSuite) TestGetBoard() {
	game := s.newGame(make([]engine.PlayerSetup, 2), true)
	game.Phase = models.TurnPhaseResolving
	game.DiceValue = 6
	for _, t := range game.Player(models.ColourBlue).Tokens {
		t.IsActive = true
	}
	s.expectGet(game)

	output, err := s.gameService.GetBoard(s.ctx, &GetBoardInput{GameID: s.testGameID})
	s.Require().NoError(err)

	s.Len(output.Cells, 8)
	s.Len(output.ActiveTokens, 4)
	s.Equal(6, output.DiceValue)
	s.Equal(models.ColourBlue, output.CurrentPlayerColour)
}

func (s *GameServiceTestSuite) TestAddInactiveTime() {
	game := s.newGame(make([]engine.PlayerSetup, 2), true)
	game.InactiveDuration = time.Minute
	s.expectGet(game)
	s.expectSave()

	output, err := s.gameService.AddInactiveTime(s.ctx, &AddInactiveTimeInput{GameID: s.testGameID, Duration: 30 * time.Second})
	s.Require().NoError(err)
	s.Equal(90*time.Second, output.InactiveDuration)

	_, err = s.gameService.AddInactiveTime(s.ctx, &AddInactiveTimeInput{GameID: s.testGameID, Duration: -time.Second})
	s.ErrorIs(err, ErrInvalidInput)
}

func (s *GameServiceTestSuite) TestGetResults() {
	game := s.newGame([]engine.PlayerSetup{{Name: "Ana"}, {Name: "Bo", IsBot: true}}, true)
	finished := s.testTime.Add(20 * time.Minute)
	game.Player(models.ColourGreen).FinishTime = &finished
	game.InactiveDuration = 5 * time.Minute
	game.Status = models.GameStatusCompleted
	game.Phase = models.TurnPhaseEnded
	game.PlayerSequence = []models.Colour{models.ColourBlue}
	game.FinishOrder = []models.FinishEntry{
		{Name: "Bo", Colour: models.ColourGreen},
		{Name: "Ana", Colour: models.ColourBlue},
	}
	s.expectGet(game)

	output, err := s.gameService.GetResults(s.ctx, &GetResultsInput{GameID: s.testGameID})
	s.Require().NoError(err)

	s.True(output.Completed)
	s.Empty(output.StillPlaying)
	s.Require().Len(output.Results, 2)

	s.Equal(1, output.Results[0].Position)
	s.Equal("Bo", output.Results[0].Name)
	s.True(output.Results[0].IsBot)
	s.True(output.Results[0].Finished)
	s.Equal(15*time.Minute, output.Results[0].PlayDuration)

	s.Equal(2, output.Results[1].Position)
	s.False(output.Results[1].Finished)
	s.Zero(output.Results[1].PlayDuration)
}

func (s *GameServiceTestSuite) TestGetResults_InProgress() {
	s.expectGet(s.newGame(make([]engine.PlayerSetup, 3), true))

	output, err := s.gameService.GetResults(s.ctx, &GetResultsInput{GameID: s.testGameID})
	s.Require().NoError(err)

	s.False(output.Completed)
	s.Empty(output.Results)
	s.Len(output.StillPlaying, 3)
}

func (s *GameServiceTestSuite) TestEndGame() {
	s.expectGet(s.newGame(make([]engine.PlayerSetup, 2), true))
	s.expectSave()

	output, err := s.gameService.EndGame(s.ctx, &EndGameInput{GameID: s.testGameID})
	s.Require().NoError(err)
	s.True(output.Game.IsEnded())
	s.Equal(models.TurnPhaseEnded, output.Game.Phase)

	// ending twice is a no-op
	s.expectGet(output.Game)
	_, err = s.gameService.EndGame(s.ctx, &EndGameInput{GameID: s.testGameID})
	s.NoError(err)
}

func (s *GameServiceTestSuite) TestListActiveGames() {
	older := &models.Game{ID: "older", CreatedAt: s.testTime.Add(-time.Hour)}
	newer := &models.Game{ID: "newer", CreatedAt: s.testTime}
	s.mockGameRepo.EXPECT().
		GetActiveGames(gomock.Any(), &gameRepo.GetActiveGamesInput{}).
		Return(&gameRepo.GetActiveGamesOutput{Games: []*models.Game{newer, older}}, nil)

	output, err := s.gameService.ListActiveGames(s.ctx, &ListActiveGamesInput{})
	s.Require().NoError(err)
	s.Equal([]*models.Game{older, newer}, output.Games)
}

func (s *GameServiceTestSuite) TestAllBotGamePlaysToTheEnd() {
	logger, _ := test.NewNullLogger()
	heuristic, err := bot.New(&bot.Config{
		Rand:   rand.New(rand.NewSource(7)),
		Logger: logger,
	})
	s.Require().NoError(err)

	s.mockUUID.EXPECT().NewUUID().Return(s.testGameID)

	svc, err := New(&Config{
		GameRepo:      gameRepo.NewMemory(),
		DiceRoller:    dice.New(&dice.Config{Seed: 42}),
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
		Bot:           heuristic,
		Logger:        logger,
	})
	s.Require().NoError(err)

	players := []PlayerInput{
		{Name: "Ana", IsBot: true},
		{Name: "Bo", IsBot: true},
		{Name: "Cy", IsBot: true},
		{Name: "Di", IsBot: true},
	}
	_, err = svc.CreateGame(s.ctx, &CreateGameInput{Players: players})
	s.Require().NoError(err)
	started, err := svc.StartGame(s.ctx, &StartGameInput{GameID: s.testGameID})
	s.Require().NoError(err)

	sequence := started.Game.PlayerSequence
	current := started.Game
	for turns := 0; !current.IsEnded(); turns++ {
		s.Require().Less(turns, 5000, "game did not finish")

		output, err := svc.PlayBotTurn(s.ctx, &PlayBotTurnInput{GameID: s.testGameID})
		s.Require().NoError(err)
		current = output.Game

		s.Subset(sequence, current.PlayerSequence)
		s.LessOrEqual(len(current.PlayerSequence), len(sequence))
		sequence = current.PlayerSequence

		for _, token := range current.AllTokens() {
			switch {
			case token.HasReachedHome:
				s.Equal(board.HomeCoordinate(token.Colour), token.Coordinates)
			case token.IsLocked:
				s.Equal(token.InitialCoords, token.Coordinates)
			default:
				s.NotEqual(board.NotFound, board.IndexInPath(token.Colour, token.Coordinates),
					"%s is off its path at %v", token.Key(), token.Coordinates)
			}
		}
	}

	s.Len(current.FinishOrder, len(players))
	s.Len(current.PlayerSequence, 1)
	s.Equal(models.TurnPhaseEnded, current.Phase)

	results, err := svc.GetResults(s.ctx, &GetResultsInput{GameID: s.testGameID})
	s.Require().NoError(err)
	s.True(results.Completed)
	s.Len(results.Results, len(players))
}

func TestGameServiceSuite(t *testing.T) {
	suite.Run(t, new(GameServiceTestSuite))
}
