package dice

import "errors"

// ErrInvalidBag is returned when a bag is asked for zero copies of each face
var ErrInvalidBag = errors.New("roll bag needs at least one copy of each face")

// NewBag returns a full bag holding copies of every face of a six sided die
func NewBag(copies int) ([]int, error) {
	if copies < 1 {
		return nil, ErrInvalidBag
	}
	bag := make([]int, 0, copies*Sides)
	for face := 1; face <= Sides; face++ {
		for i := 0; i < copies; i++ {
			bag = append(bag, face)
		}
	}
	return bag, nil
}

// Draw takes a random face out of the bag, refilling it with copies of each
// face first when it is empty. It returns the face and the remaining bag.
func Draw(roller Roller, bag []int, copies int) (int, []int, error) {
	if len(bag) == 0 {
		full, err := NewBag(copies)
		if err != nil {
			return 0, nil, err
		}
		bag = full
	}

	i := roller.Roll(len(bag)) - 1
	face := bag[i]

	remaining := make([]int, 0, len(bag)-1)
	remaining = append(remaining, bag[:i]...)
	remaining = append(remaining, bag[i+1:]...)
	return face, remaining, nil
}
