package engine

import (
	"fmt"
	"sort"

	"github.com/KirkDiggler/ludo/internal/models"
)

// MaxTokensPerCell is the largest stack the alignment grid can lay out
const MaxTokensPerCell = 16

// Alignment positions a token inside its cell, offsets are fractions of the cell size
type Alignment struct {
	XOffset     float64
	YOffset     float64
	ScaleFactor float64
}

// DefaultAlignment centres a lone token at full size
var DefaultAlignment = Alignment{ScaleFactor: 1}

// Cell is one occupied board cell
type Cell struct {
	Coordinates models.Coordinate
	Tokens      []*models.Token
	Alignments  []Alignment
}

// stackLayout is rows x columns and token scale for a stack size
var stackLayout = map[int]struct {
	rows, cols int
	scale      float64
}{
	1: {1, 1, 1}, 2: {1, 2, 0.8}, 3: {1, 3, 0.6}, 4: {2, 2, 0.55},
	5: {2, 3, 0.5}, 6: {2, 3, 0.5}, 7: {2, 4, 0.4}, 8: {2, 4, 0.4},
	9: {3, 4, 0.35}, 10: {3, 4, 0.35}, 11: {3, 4, 0.35}, 12: {3, 4, 0.35},
	13: {4, 4, 0.35}, 14: {4, 4, 0.35}, 15: {4, 4, 0.35}, 16: {4, 4, 0.35},
}

// AlignmentFor lays out n tokens sharing one cell, filling rows bottom up
func AlignmentFor(n int) ([]Alignment, error) {
	if n < 1 {
		return nil, nil
	}
	layout, ok := stackLayout[n]
	if !ok {
		return nil, fmt.Errorf("%w: got %d", ErrTooManyTokens, n)
	}
	if n == 1 {
		return []Alignment{DefaultAlignment}, nil
	}

	out := make([]Alignment, 0, n)
	for i := 0; i < n; i++ {
		row, col := i/layout.cols, i%layout.cols
		inRow := min(layout.cols, n-row*layout.cols)
		out = append(out, Alignment{
			XOffset:     spread(col, inRow, 0.35),
			YOffset:     spread(layout.rows-1-row, layout.rows, 0.3),
			ScaleFactor: layout.scale,
		})
	}
	return out, nil
}

// spread places index i of n evenly in [-limit, limit]
func spread(i, n int, limit float64) float64 {
	if n <= 1 {
		return 0
	}
	return -limit + 2*limit*float64(i)/float64(n-1)
}

// Occupancy groups tokens by cell for rendering, ordered by row then column
func Occupancy(game *models.Game) ([]Cell, error) {
	byCoord := map[models.Coordinate][]*models.Token{}
	for _, t := range game.AllTokens() {
		byCoord[t.Coordinates] = append(byCoord[t.Coordinates], t)
	}

	cells := make([]Cell, 0, len(byCoord))
	for coord, tokens := range byCoord {
		alignments, err := AlignmentFor(len(tokens))
		if err != nil {
			return nil, fmt.Errorf("cell %v: %w", coord, err)
		}
		cells = append(cells, Cell{
			Coordinates: coord,
			Tokens:      tokens,
			Alignments:  alignments,
		})
	}

	sort.Slice(cells, func(i, j int) bool {
		a, b := cells[i].Coordinates, cells[j].Coordinates
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
	return cells, nil
}
