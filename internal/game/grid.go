package game

import "math/rand"

// Cell is one grid square. The origin is the top-left corner.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Direction string

const (
	DirUp    Direction = "up"
	DirDown  Direction = "down"
	DirLeft  Direction = "left"
	DirRight Direction = "right"
)

func ParseDirection(s string) (Direction, bool) {
	switch Direction(s) {
	case DirUp, DirDown, DirLeft, DirRight:
		return Direction(s), true
	}
	return "", false
}

func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	}
	return ""
}

func (c Cell) Step(d Direction) Cell {
	switch d {
	case DirUp:
		return Cell{c.X, c.Y - 1}
	case DirDown:
		return Cell{c.X, c.Y + 1}
	case DirLeft:
		return Cell{c.X - 1, c.Y}
	case DirRight:
		return Cell{c.X + 1, c.Y}
	}
	return c
}

func inBounds(c Cell, width, height int) bool {
	return c.X >= 0 && c.X < width && c.Y >= 0 && c.Y < height
}

func bodyContains(body []Cell, c Cell) bool {
	for _, b := range body {
		if b == c {
			return true
		}
	}
	return false
}

// spawnFood picks a uniformly random free cell, i.e. one not covered by
// any of the given bodies. The grid is assumed to have at least one
// free cell.
func spawnFood(rng *rand.Rand, width, height int, bodies ...[]Cell) Cell {
	occupied := make(map[Cell]bool)
	for _, body := range bodies {
		for _, c := range body {
			occupied[c] = true
		}
	}

	free := make([]Cell, 0, width*height-len(occupied))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := Cell{x, y}
			if !occupied[c] {
				free = append(free, c)
			}
		}
	}
	if len(free) == 0 {
		return Cell{}
	}
	return free[rng.Intn(len(free))]
}
