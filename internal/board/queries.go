package board

import (
	"github.com/KirkDiggler/ludo/internal/models"
)

// NotFound is returned by index and distance queries when a cell is not on the path
const NotFound = -1

func indexOf(path []models.Coordinate, coord models.Coordinate) int {
	for i, c := range path {
		if c.Equal(coord) {
			return i
		}
	}
	return NotFound
}

// IndexInPath returns the position of coord in the colour's token path
func IndexInPath(colour models.Colour, coord models.Coordinate) int {
	return indexOf(tokenPaths[colour], coord)
}

// DistanceAlongPath counts the steps between two cells of the colour's token path.
// It returns NotFound when either cell is off the path.
func DistanceAlongPath(colour models.Colour, from, to models.Coordinate) int {
	fromIndex := IndexInPath(colour, from)
	toIndex := IndexInPath(colour, to)
	if fromIndex == NotFound || toIndex == NotFound {
		return NotFound
	}
	return abs(fromIndex - toIndex)
}

// CoordinateAfter returns the cell reached by walking steps cells forward from
// the given cell. ok is false when from is off the path or the walk overshoots home.
func CoordinateAfter(colour models.Colour, from models.Coordinate, steps int) (models.Coordinate, bool) {
	path := tokenPaths[colour]
	index := indexOf(path, from)
	if index == NotFound || steps < 0 || index+steps >= len(path) {
		return models.Coordinate{}, false
	}
	return path[index+steps], true
}

// remainingPathContains reports whether coord lies between the token and its home
func remainingPathContains(t models.Token, coord models.Coordinate) bool {
	path := tokenPaths[t.Colour]
	index := indexOf(path, t.Coordinates)
	if index == NotFound {
		return false
	}
	return indexOf(path[index:], coord) != NotFound
}

// OverlappingPaths reports whether either token can still reach the other's cell.
// A token inside its own home lane never overlaps a token of another colour.
func OverlappingPaths(a, b models.Token) bool {
	return remainingPathContains(a, b.Coordinates) || remainingPathContains(b, a.Coordinates)
}

// DistanceBetweenTokens is the shortest way around the shared track between two
// tokens. It returns NotFound when their paths no longer overlap.
func DistanceBetweenTokens(a, b models.Token) int {
	if !OverlappingPaths(a, b) {
		return NotFound
	}

	indexA := indexOf(generalPath, a.Coordinates)
	indexB := indexOf(generalPath, b.Coordinates)
	if indexA == NotFound || indexB == NotFound {
		return NotFound
	}

	n := len(generalPath)
	forward := (indexB - indexA + n) % n
	backward := (indexA - indexB + n) % n
	return min(forward, backward)
}

// IsAhead reports whether a sits in front of b, that is a is reached by moving b
// forward along its own path within the distance separating them.
func IsAhead(a, b models.Token) bool {
	if a.Coordinates.Equal(b.Coordinates) {
		return false
	}

	distance := DistanceBetweenTokens(a, b)
	if distance == NotFound {
		return false
	}

	path := tokenPaths[b.Colour]
	index := indexOf(path, b.Coordinates)
	if index == NotFound {
		return false
	}

	for i := index; i < len(path) && i-index <= distance; i++ {
		if path[i].Equal(a.Coordinates) {
			return true
		}
	}
	return false
}

// IsSafeSpot reports whether tokens on coord are immune to capture
func IsSafeSpot(coord models.Coordinate) bool {
	return indexOf(safeSpots, coord) != NotFound
}

// IsInHomeEntryLane reports whether coord is in the colour's private lane, home included
func IsInHomeEntryLane(coord models.Coordinate, colour models.Colour) bool {
	return indexOf(homeEntryPaths[colour], coord) != NotFound
}

// IsOnGeneralPath reports whether coord is a cell of the shared track
func IsOnGeneralPath(coord models.Coordinate) bool {
	return indexOf(generalPath, coord) != NotFound
}
