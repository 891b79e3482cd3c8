package game

import "context"

// Service defines the interface for game operations
type Service interface {
	// CreateGame registers players and creates a game waiting to start
	CreateGame(ctx context.Context, input *CreateGameInput) (*CreateGameOutput, error)

	// StartGame hands the first roll to the first player
	StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error)

	// GetGame returns the current session state
	GetGame(ctx context.Context, input *GetGameInput) (*GetGameOutput, error)

	// RollDice rolls for the current player and applies the roll
	RollDice(ctx context.Context, input *RollDiceInput) (*RollDiceOutput, error)

	// UnlockToken brings a base token onto the board with a pending six
	UnlockToken(ctx context.Context, input *UnlockTokenInput) (*UnlockTokenOutput, error)

	// MoveToken advances a token by the pending roll
	MoveToken(ctx context.Context, input *MoveTokenInput) (*MoveTokenOutput, error)

	// PlayBotTurn plays the current bot's whole turn
	PlayBotTurn(ctx context.Context, input *PlayBotTurnInput) (*PlayBotTurnOutput, error)

	// GetBoard returns the occupied cells for rendering
	GetBoard(ctx context.Context, input *GetBoardInput) (*GetBoardOutput, error)

	// AddInactiveTime records time the session spent in the background
	AddInactiveTime(ctx context.Context, input *AddInactiveTimeInput) (*AddInactiveTimeOutput, error)

	// GetResults returns the finish order with play durations
	GetResults(ctx context.Context, input *GetResultsInput) (*GetResultsOutput, error)

	// EndGame abandons a game
	EndGame(ctx context.Context, input *EndGameInput) (*EndGameOutput, error)

	// ListActiveGames returns every game that has not finished
	ListActiveGames(ctx context.Context, input *ListActiveGamesInput) (*ListActiveGamesOutput, error)
}
