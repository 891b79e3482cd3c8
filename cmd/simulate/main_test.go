package main

import (
	"context"
	"testing"
	"time"

	"github.com/KirkDiggler/ludo/internal/engine"
	"github.com/KirkDiggler/ludo/internal/models"
	"github.com/KirkDiggler/ludo/internal/services/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingNarrator keeps the home inputs it was asked for
type recordingNarrator struct {
	messaging.Service
	homes []*messaging.GetHomeMessageInput
}

func (r *recordingNarrator) GetHomeMessage(_ context.Context, input *messaging.GetHomeMessageInput) (*messaging.GetHomeMessageOutput, error) {
	r.homes = append(r.homes, input)
	return &messaging.GetHomeMessageOutput{Message: input.PlayerName}, nil
}

func TestNarrateMoveUsesCountFromTheStep(t *testing.T) {
	game, err := engine.NewGame("sim", []engine.PlayerSetup{{Name: "Ronnie"}, {Name: "Blair"}}, time.Now())
	require.NoError(t, err)

	// by the end of the turn two blue tokens are home
	blue := game.Player(models.ColourBlue)
	for _, token := range blue.Tokens[:2] {
		token.HasReachedHome = true
	}

	narrator := &recordingNarrator{}
	sim := &simulation{narrator: narrator}

	first := &engine.MoveOutcome{
		MoveResult: &engine.MoveResult{
			Token:       blue.Tokens[0],
			ReachedHome: true,
			TokensHome:  1,
		},
	}
	sim.narrateMove(context.Background(), game, first)

	require.Len(t, narrator.homes, 1)
	assert.Equal(t, "Ronnie", narrator.homes[0].PlayerName)
	assert.Equal(t, 1, narrator.homes[0].TokensHome)
}

func TestFinishPosition(t *testing.T) {
	game := &models.Game{FinishOrder: []models.FinishEntry{
		{Name: "Blair", Colour: models.ColourGreen},
		{Name: "Ronnie", Colour: models.ColourBlue},
	}}

	assert.Equal(t, 2, finishPosition(game, models.ColourBlue))
	assert.Equal(t, 0, finishPosition(game, models.ColourRed))
}
