package models

// Colour identifies a player and the tokens it owns
type Colour string

const (
	// ColourBlue starts at the top arm of the board
	ColourBlue Colour = "blue"

	// ColourRed starts at the left arm of the board
	ColourRed Colour = "red"

	// ColourGreen starts at the bottom arm of the board
	ColourGreen Colour = "green"

	// ColourYellow starts at the right arm of the board
	ColourYellow Colour = "yellow"
)

// Colours lists every colour in seating order
var Colours = []Colour{ColourBlue, ColourRed, ColourGreen, ColourYellow}

// IsValid reports whether the colour is one of the four board colours
func (c Colour) IsValid() bool {
	switch c {
	case ColourBlue, ColourRed, ColourGreen, ColourYellow:
		return true
	}
	return false
}

func (c Colour) String() string {
	return string(c)
}
