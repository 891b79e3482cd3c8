package dice

import (
	"math/rand"
	"time"
)

// Sides is the number of faces on a Ludo die
const Sides = 6

// Roller rolls a die
//
//go:generate mockgen -package=mocks -destination=mocks/mock_roller.go github.com/KirkDiggler/ludo/internal/dice Roller
type Roller interface {
	// Roll returns a value between 1 and sides
	Roll(sides int) int
}

// Random rolls with a seeded pseudo random source
type Random struct {
	random *rand.Rand
}

// Config for dice roller
type Config struct {
	// Optional seed for reproducible games
	Seed int64
}

// New creates a new dice roller
func New(cfg *Config) *Random {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &Random{
		random: rand.New(rand.NewSource(seed)),
	}
}

// Roll generates a random dice roll with the specified number of sides
func (r *Random) Roll(sides int) int {
	if sides < 1 {
		sides = Sides
	}
	return r.random.Intn(sides) + 1
}
