package board

import "github.com/KirkDiggler/ludo/internal/models"

// generalTrack is the shared track in travel order, starting at blue's start cell
var generalTrack = []Segment{
	{Start: models.Coordinate{X: 6, Y: 1}, End: models.Coordinate{X: 6, Y: 5}},
	{Start: models.Coordinate{X: 5, Y: 6}, End: models.Coordinate{X: 1, Y: 6}},
	{Start: models.Coordinate{X: 0, Y: 6}, End: models.Coordinate{X: 0, Y: 8}},
	{Start: models.Coordinate{X: 1, Y: 8}, End: models.Coordinate{X: 5, Y: 8}},
	{Start: models.Coordinate{X: 6, Y: 9}, End: models.Coordinate{X: 6, Y: 13}},
	{Start: models.Coordinate{X: 6, Y: 14}, End: models.Coordinate{X: 8, Y: 14}},
	{Start: models.Coordinate{X: 8, Y: 13}, End: models.Coordinate{X: 8, Y: 9}},
	{Start: models.Coordinate{X: 9, Y: 8}, End: models.Coordinate{X: 13, Y: 8}},
	{Start: models.Coordinate{X: 14, Y: 8}, End: models.Coordinate{X: 14, Y: 6}},
	{Start: models.Coordinate{X: 13, Y: 6}, End: models.Coordinate{X: 9, Y: 6}},
	{Start: models.Coordinate{X: 8, Y: 5}, End: models.Coordinate{X: 8, Y: 1}},
	{Start: models.Coordinate{X: 8, Y: 0}, End: models.Coordinate{X: 6, Y: 0}},
}

// homeLanes are the private lanes leading to each colour's home cell.
// The end of each lane is the home cell.
var homeLanes = map[models.Colour]Segment{
	models.ColourBlue:   {Start: models.Coordinate{X: 7, Y: 1}, End: models.Coordinate{X: 7, Y: 6}},
	models.ColourRed:    {Start: models.Coordinate{X: 1, Y: 7}, End: models.Coordinate{X: 6, Y: 7}},
	models.ColourGreen:  {Start: models.Coordinate{X: 7, Y: 13}, End: models.Coordinate{X: 7, Y: 8}},
	models.ColourYellow: {Start: models.Coordinate{X: 13, Y: 7}, End: models.Coordinate{X: 8, Y: 7}},
}

var startCoordinates = map[models.Colour]models.Coordinate{
	models.ColourBlue:   {X: 6, Y: 1},
	models.ColourRed:    {X: 1, Y: 8},
	models.ColourGreen:  {X: 8, Y: 13},
	models.ColourYellow: {X: 13, Y: 6},
}

var starCoordinates = []models.Coordinate{
	{X: 8, Y: 2},
	{X: 2, Y: 6},
	{X: 6, Y: 12},
	{X: 12, Y: 8},
}

// baseSlots are the yard cells tokens wait on while locked
var baseSlots = map[models.Colour][]models.Coordinate{
	models.ColourBlue:   {{X: 1, Y: 1}, {X: 3, Y: 1}, {X: 3, Y: 3}, {X: 1, Y: 3}},
	models.ColourRed:    {{X: 1, Y: 12}, {X: 3, Y: 12}, {X: 1, Y: 10}, {X: 3, Y: 10}},
	models.ColourGreen:  {{X: 10, Y: 12}, {X: 12, Y: 12}, {X: 10, Y: 10}, {X: 12, Y: 10}},
	models.ColourYellow: {{X: 10, Y: 3}, {X: 12, Y: 3}, {X: 10, Y: 1}, {X: 12, Y: 1}},
}
