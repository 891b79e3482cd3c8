package engine

import (
	"testing"

	"github.com/KirkDiggler/ludo/internal/board"
	"github.com/KirkDiggler/ludo/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sendHome parks the token on its home cell as if it had finished
func sendHome(t *testing.T, game *models.Game, colour models.Colour, id int) {
	t.Helper()
	token, err := Token(game, colour, id)
	require.NoError(t, err)
	token.IsLocked = true
	token.HasReachedHome = true
	token.Coordinates = board.HomeCoordinate(colour)
}

func TestAdvanceRecordsEveryCell(t *testing.T) {
	game := newTestGame(t, 2)
	token := place(t, game, models.ColourBlue, 0, 3)

	result, err := Advance(game, token, 5, testTime)
	require.NoError(t, err)

	path := board.TokenPath(models.ColourBlue)
	assert.Equal(t, path[3], result.From)
	assert.Equal(t, path[4:9], result.Path)
	assert.Equal(t, path[8], result.FinalCoord)
	assert.Equal(t, path[8], token.Coordinates)
	assert.False(t, result.ReachedHome)
}

func TestAdvanceRejectsIllegalMoves(t *testing.T) {
	game := newTestGame(t, 2)

	locked, err := Token(game, models.ColourBlue, 1)
	require.NoError(t, err)
	_, err = Advance(game, locked, 1, testTime)
	assert.ErrorIs(t, err, ErrTokenLocked)

	near := place(t, game, models.ColourBlue, 0, 54)
	_, err = Advance(game, near, 3, testTime)
	assert.ErrorIs(t, err, ErrInsufficientSteps)
	assert.Equal(t, board.TokenPath(models.ColourBlue)[54], near.Coordinates, "failed move must not change the token")

	sendHome(t, game, models.ColourGreen, 0)
	home, err := Token(game, models.ColourGreen, 0)
	require.NoError(t, err)
	_, err = Advance(game, home, 1, testTime)
	assert.ErrorIs(t, err, ErrTokenAlreadyHome)
}

func TestAdvanceReachesHome(t *testing.T) {
	game := newTestGame(t, 4)
	token := place(t, game, models.ColourBlue, 0, 53)

	result, err := Advance(game, token, 3, testTime)
	require.NoError(t, err)

	assert.True(t, result.ReachedHome)
	assert.False(t, result.PlayerWon)
	assert.True(t, token.HasReachedHome)
	assert.True(t, token.IsLocked)
	assert.Equal(t, 1, result.TokensHome)
	assert.Len(t, game.PlayerSequence, 4)
}

func TestAdvanceLastTokenWins(t *testing.T) {
	game := newTestGame(t, 4)
	for id := 1; id < models.TokensPerPlayer; id++ {
		sendHome(t, game, models.ColourBlue, id)
	}
	token := place(t, game, models.ColourBlue, 0, 53)

	result, err := Advance(game, token, 3, testTime)
	require.NoError(t, err)

	assert.True(t, result.PlayerWon)
	assert.False(t, result.GameEnded)
	assert.False(t, game.IsPlaying(models.ColourBlue))
	assert.Equal(t, []models.Colour{models.ColourRed, models.ColourGreen, models.ColourYellow}, game.PlayerSequence)
	assert.Equal(t, []models.FinishEntry{{Name: "Player 1", Colour: models.ColourBlue}}, game.FinishOrder)

	blue := game.Player(models.ColourBlue)
	require.NotNil(t, blue.FinishTime)
	assert.Equal(t, testTime, *blue.FinishTime)
}

func TestAdvanceEndsGameWhenOneColourRemains(t *testing.T) {
	game := newTestGame(t, 2)
	for id := 1; id < models.TokensPerPlayer; id++ {
		sendHome(t, game, models.ColourBlue, id)
	}
	token := place(t, game, models.ColourBlue, 0, 53)

	result, err := Advance(game, token, 3, testTime)
	require.NoError(t, err)

	assert.True(t, result.PlayerWon)
	assert.True(t, result.GameEnded)
	assert.True(t, game.IsEnded())
	assert.Equal(t, models.TurnPhaseEnded, game.Phase)
	assert.Equal(t, []models.Colour{models.ColourGreen}, game.PlayerSequence)
	require.Len(t, game.FinishOrder, 2)
	assert.Equal(t, models.ColourBlue, game.FinishOrder[0].Colour)
	assert.Equal(t, models.ColourGreen, game.FinishOrder[1].Colour)
}

func TestResolveCaptureTakesWholeStack(t *testing.T) {
	game := newTestGame(t, 4)
	dest := models.Coordinate{X: 5, Y: 8}
	require.False(t, board.IsSafeSpot(dest))

	red := place(t, game, models.ColourRed, 0, board.IndexInPath(models.ColourRed, dest)-2)
	greenA := place(t, game, models.ColourGreen, 0, board.IndexInPath(models.ColourGreen, dest))
	greenB := place(t, game, models.ColourGreen, 1, board.IndexInPath(models.ColourGreen, dest))

	moved, err := Advance(game, red, 2, testTime)
	require.NoError(t, err)
	require.Equal(t, dest, moved.FinalCoord)

	result, err := ResolveCapture(game, red, moved.FinalCoord)
	require.NoError(t, err)

	assert.Len(t, result.CapturedTokens, 2)
	for _, g := range []*models.Token{greenA, greenB} {
		assert.True(t, g.IsLocked)
		assert.Equal(t, g.InitialCoords, g.Coordinates)
	}
	assert.False(t, red.IsLocked)
	assert.Equal(t, dest, red.Coordinates)
}

func TestResolveCaptureSparesSafeSpotsAndOwnTokens(t *testing.T) {
	game := newTestGame(t, 4)
	star := models.Coordinate{X: 2, Y: 6}
	require.True(t, board.IsSafeSpot(star))

	red := place(t, game, models.ColourRed, 0, board.IndexInPath(models.ColourRed, star))
	green := place(t, game, models.ColourGreen, 0, board.IndexInPath(models.ColourGreen, star))

	result, err := ResolveCapture(game, red, star)
	require.NoError(t, err)
	assert.Empty(t, result.CapturedTokens)
	assert.False(t, green.IsLocked)

	plain := models.Coordinate{X: 6, Y: 10}
	require.False(t, board.IsSafeSpot(plain))
	mover := place(t, game, models.ColourRed, 1, board.IndexInPath(models.ColourRed, plain))
	friend := place(t, game, models.ColourRed, 2, board.IndexInPath(models.ColourRed, plain))

	result, err = ResolveCapture(game, mover, plain)
	require.NoError(t, err)
	assert.Empty(t, result.CapturedTokens)
	assert.False(t, friend.IsLocked)
}

func TestResolveCaptureAfterReachingHome(t *testing.T) {
	game := newTestGame(t, 2)
	token := place(t, game, models.ColourBlue, 0, 54)

	moved, err := Advance(game, token, 2, testTime)
	require.NoError(t, err)
	require.True(t, token.IsLocked)

	result, err := ResolveCapture(game, token, moved.FinalCoord)
	require.NoError(t, err)
	assert.Empty(t, result.CapturedTokens)
}

func TestResolveCaptureRejectsLockedMover(t *testing.T) {
	game := newTestGame(t, 2)
	locked, err := Token(game, models.ColourBlue, 0)
	require.NoError(t, err)

	_, err = ResolveCapture(game, locked, models.Coordinate{X: 6, Y: 3})
	assert.ErrorIs(t, err, ErrTokenLocked)
}
