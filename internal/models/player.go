package models

import (
	"time"
)

// TokensPerPlayer is the number of tokens every player owns
const TokensPerPlayer = 4

// Player represents a participant in a game
type Player struct {
	// Name is the display name of the player
	Name string

	// Colour is the colour the player plays with
	Colour Colour

	// IsBot is true when moves are chosen by the bot heuristic
	IsBot bool

	// Tokens are the player's four tokens
	Tokens []*Token

	// ConsecutiveSixCount is the number of sixes rolled in a row this turn
	ConsecutiveSixCount int

	// FinishTime is when the player's last token reached home
	FinishTime *time.Time
}

// Token returns the token with the given ID or nil
func (p *Player) Token(id int) *Token {
	for _, t := range p.Tokens {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// TokensHome counts the tokens that reached home
func (p *Player) TokensHome() int {
	count := 0
	for _, t := range p.Tokens {
		if t.HasReachedHome {
			count++
		}
	}
	return count
}

// HasWon reports whether all of the player's tokens reached home
func (p *Player) HasWon() bool {
	return len(p.Tokens) > 0 && p.TokensHome() == len(p.Tokens)
}
