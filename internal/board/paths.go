// Package board holds the fixed geometry of the Ludo board: the route every
// colour travels from its start cell to its home cell, and pure queries over
// those routes. Nothing in this package mutates state after initialisation.
package board

import (
	"fmt"

	"github.com/KirkDiggler/ludo/internal/models"
)

// Segment is a straight horizontal or vertical run of cells, inclusive at both ends
type Segment struct {
	Start models.Coordinate
	End   models.Coordinate
}

var (
	generalPath    []models.Coordinate
	homeEntryPaths map[models.Colour][]models.Coordinate
	tokenPaths     map[models.Colour][]models.Coordinate
	safeSpots      []models.Coordinate
)

func init() {
	generalPath = ExpandSegments(generalTrack)

	homeEntryPaths = make(map[models.Colour][]models.Coordinate, len(homeLanes))
	for colour, lane := range homeLanes {
		homeEntryPaths[colour] = ExpandSegment(lane)
	}

	tokenPaths = make(map[models.Colour][]models.Coordinate, len(models.Colours))
	for _, colour := range models.Colours {
		tokenPaths[colour] = buildTokenPath(colour)
	}

	for _, colour := range models.Colours {
		safeSpots = append(safeSpots, startCoordinates[colour])
	}
	safeSpots = append(safeSpots, starCoordinates...)
}

// ExpandSegment lists every cell of the segment from Start to End.
// Expanding (a→b) gives the reverse of expanding (b→a).
func ExpandSegment(s Segment) []models.Coordinate {
	vertical := s.Start.X == s.End.X
	if !vertical && s.Start.Y != s.End.Y {
		panic(fmt.Sprintf("board: segment %v→%v is not straight", s.Start, s.End))
	}

	from, to := s.Start.X, s.End.X
	if vertical {
		from, to = s.Start.Y, s.End.Y
	}

	step := 1
	if to < from {
		step = -1
	}

	cells := make([]models.Coordinate, 0, abs(to-from)+1)
	for v := from; ; v += step {
		if vertical {
			cells = append(cells, models.Coordinate{X: s.Start.X, Y: v})
		} else {
			cells = append(cells, models.Coordinate{X: v, Y: s.Start.Y})
		}
		if v == to {
			break
		}
	}
	return cells
}

// ExpandSegments concatenates the expansion of each segment in order
func ExpandSegments(segments []Segment) []models.Coordinate {
	var cells []models.Coordinate
	for _, s := range segments {
		cells = append(cells, ExpandSegment(s)...)
	}
	return cells
}

func buildTokenPath(colour models.Colour) []models.Coordinate {
	start, ok := startCoordinates[colour]
	if !ok {
		panic(fmt.Sprintf("board: no start coordinate for %s", colour))
	}

	offset := -1
	for i, s := range generalTrack {
		if s.Start.Equal(start) {
			offset = i
			break
		}
	}
	if offset == -1 {
		panic(fmt.Sprintf("board: no track segment begins at %s start %v", colour, start))
	}

	rotated := make([]Segment, 0, len(generalTrack))
	rotated = append(rotated, generalTrack[offset:]...)
	rotated = append(rotated, generalTrack[:offset]...)

	shared := ExpandSegments(rotated)
	// the last shared cell lies past the turn into the home lane
	shared = shared[:len(shared)-1]

	path := make([]models.Coordinate, 0, len(shared)+len(homeEntryPaths[colour]))
	path = append(path, shared...)
	path = append(path, homeEntryPaths[colour]...)
	return path
}

// TokenPath returns the full route of a colour, from its start cell to its home cell
func TokenPath(colour models.Colour) []models.Coordinate {
	return clone(tokenPaths[colour])
}

// GeneralPath returns the shared track in travel order
func GeneralPath() []models.Coordinate {
	return clone(generalPath)
}

// HomeEntryPath returns the private lane of a colour, ending at its home cell
func HomeEntryPath(colour models.Colour) []models.Coordinate {
	return clone(homeEntryPaths[colour])
}

// HomeCoordinate is the last cell of the colour's token path
func HomeCoordinate(colour models.Colour) models.Coordinate {
	path := tokenPaths[colour]
	return path[len(path)-1]
}

// StartCoordinate is the cell a token is placed on when unlocked
func StartCoordinate(colour models.Colour) models.Coordinate {
	return startCoordinates[colour]
}

// BaseSlots returns the yard cells of a colour, one per token ID
func BaseSlots(colour models.Colour) []models.Coordinate {
	return clone(baseSlots[colour])
}

// SafeSpots returns every cell where tokens cannot be captured
func SafeSpots() []models.Coordinate {
	return clone(safeSpots)
}

func clone(cells []models.Coordinate) []models.Coordinate {
	if cells == nil {
		return nil
	}
	out := make([]models.Coordinate, len(cells))
	copy(out, cells)
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
