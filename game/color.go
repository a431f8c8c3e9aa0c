package game

import (
	"blokus/meta"
	"fmt"
)

// Color identifies a player. Empty marks an unclaimed grid cell.
type Color int8

const (
	Blue Color = iota
	Red
	Green
	Yellow
	Empty Color = -1
)

var colorNames = []string{"BLUE", "RED", "GREEN", "YELLOW"}

// Colors lists the players in turn order.
func Colors() []Color {
	return []Color{Blue, Red, Green, Yellow}
}

func (c Color) String() string {
	if c == Empty {
		return "BLANK"
	}
	if c < 0 || int(c) >= len(colorNames) {
		return fmt.Sprintf("Color(%d)", int8(c))
	}
	return colorNames[c]
}

// Next returns the color seated after c.
func (c Color) Next() Color {
	return Color((int(c) + 1) % meta.NUM_PLAYERS)
}
