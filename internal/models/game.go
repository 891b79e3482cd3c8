package models

import (
	"time"
)

// GameStatus represents the current state of a game
type GameStatus string

const (
	// GameStatusWaiting indicates a game was created but no turn was given yet
	GameStatusWaiting GameStatus = "waiting"

	// GameStatusActive indicates a game is in progress
	GameStatusActive GameStatus = "active"

	// GameStatusCompleted indicates only one player is left
	GameStatusCompleted GameStatus = "completed"
)

// TurnPhase is the step of the turn state machine the current player is in
type TurnPhase string

const (
	// TurnPhaseWaitingForRoll means the current player must roll the dice
	TurnPhaseWaitingForRoll TurnPhase = "waiting_for_roll"

	// TurnPhaseResolving means a roll is pending and the player must pick a token
	TurnPhaseResolving TurnPhase = "resolving"

	// TurnPhaseEnded means the game is over
	TurnPhaseEnded TurnPhase = "ended"
)

// FinishEntry records a player in the order they finished
type FinishEntry struct {
	Name   string
	Colour Colour
}

// Game is the full session state of one Ludo game
type Game struct {
	// ID is the unique identifier for the game
	ID string

	// Status is the current state of the game
	Status GameStatus

	// Players holds every registered player, finished or not
	Players []*Player

	// PlayerSequence is the turn order of players still playing
	PlayerSequence []Colour

	// CurrentPlayerColour is the colour whose turn it is, empty before the first turn
	CurrentPlayerColour Colour

	// Phase is the current turn phase
	Phase TurnPhase

	// DiceValue is the roll being resolved, 0 when none is pending
	DiceValue int

	// FinishOrder lists players in the order they finished
	FinishOrder []FinishEntry

	// RollBags holds the remaining dice faces per colour when bag rolling is enabled
	RollBags map[Colour][]int

	// CreatedAt is when the game was created
	CreatedAt time.Time

	// UpdatedAt is when the game was last updated
	UpdatedAt time.Time

	// StartedAt is when the first turn was given
	StartedAt *time.Time

	// InactiveDuration is time the session spent in the background
	InactiveDuration time.Duration
}

// Player returns the player with the given colour or nil
func (g *Game) Player(colour Colour) *Player {
	for _, p := range g.Players {
		if p.Colour == colour {
			return p
		}
	}
	return nil
}

// AllTokens returns every token of every player
func (g *Game) AllTokens() []*Token {
	tokens := make([]*Token, 0, len(g.Players)*TokensPerPlayer)
	for _, p := range g.Players {
		tokens = append(tokens, p.Tokens...)
	}
	return tokens
}

// IsEnded reports whether the game reached its terminal state
func (g *Game) IsEnded() bool {
	return g.Status == GameStatusCompleted
}

// IsPlaying reports whether the colour is still in the turn sequence
func (g *Game) IsPlaying(colour Colour) bool {
	for _, c := range g.PlayerSequence {
		if c == colour {
			return true
		}
	}
	return false
}
