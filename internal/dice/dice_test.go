package dice

import (
	"testing"

	"github.com/KirkDiggler/ludo/internal/dice/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRollStaysInRange(t *testing.T) {
	roller := New(&Config{Seed: 42})
	for i := 0; i < 1000; i++ {
		v := roller.Roll(Sides)
		require.GreaterOrEqual(t, v, 1)
		require.LessOrEqual(t, v, Sides)
	}
	v := roller.Roll(0)
	assert.True(t, v >= 1 && v <= Sides, "non positive sides fall back to a six sided die")
}

func TestSeedIsReproducible(t *testing.T) {
	a := New(&Config{Seed: 7})
	b := New(&Config{Seed: 7})
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Roll(Sides), b.Roll(Sides))
	}
}

func TestNewBag(t *testing.T) {
	bag, err := NewBag(2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6}, bag)

	_, err = NewBag(0)
	assert.ErrorIs(t, err, ErrInvalidBag)
}

func TestDrawEmptiesBagBeforeRefill(t *testing.T) {
	roller := New(&Config{Seed: 3})
	counts := map[int]int{}

	var bag []int
	for i := 0; i < 3*Sides; i++ {
		var face int
		var err error
		face, bag, err = Draw(roller, bag, 3)
		require.NoError(t, err)
		counts[face]++
	}

	assert.Empty(t, bag)
	for face := 1; face <= Sides; face++ {
		assert.Equal(t, 3, counts[face], "face %d", face)
	}
}

func TestDrawUsesRoller(t *testing.T) {
	ctrl := gomock.NewController(t)
	roller := mocks.NewMockRoller(ctrl)
	roller.EXPECT().Roll(4).Return(2)

	face, rest, err := Draw(roller, []int{6, 5, 1, 3}, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, face)
	assert.Equal(t, []int{6, 1, 3}, rest)
}

func TestDrawRefillsEmptyBag(t *testing.T) {
	ctrl := gomock.NewController(t)
	roller := mocks.NewMockRoller(ctrl)
	roller.EXPECT().Roll(Sides).Return(Sides)

	face, rest, err := Draw(roller, nil, 1)
	require.NoError(t, err)
	assert.Equal(t, 6, face)
	assert.Len(t, rest, Sides-1)
}
