package models

import "fmt"

// Token represents one of a player's four pieces
type Token struct {
	// ID is the index of the token within its player, 0 to 3
	ID int

	// Colour is the colour of the owning player
	Colour Colour

	// Coordinates is the cell the token currently occupies
	Coordinates Coordinate

	// InitialCoords is the base slot the token returns to when captured
	InitialCoords Coordinate

	// IsLocked is true while the token sits in its base or after it reached home
	IsLocked bool

	// IsActive marks the token as selectable for the pending dice roll
	IsActive bool

	// HasReachedHome is true once the token entered its home cell
	HasReachedHome bool
}

// IsInBase reports whether the token is locked on its base slot
func (t *Token) IsInBase() bool {
	return t.IsLocked && !t.HasReachedHome && t.Coordinates.Equal(t.InitialCoords)
}

// Key identifies the token across all players
func (t *Token) Key() string {
	return fmt.Sprintf("%s_%d", t.Colour, t.ID)
}
