// meta/meta.go
package meta

// NUM_PLAYERS defines the number of colors seated at the board.
const NUM_PLAYERS = 4

// BOARD_WIDTH and BOARD_HEIGHT define the reference grid size.
const BOARD_WIDTH = 20
const BOARD_HEIGHT = 20

// ALL_PIECES_BONUS is awarded to a player who placed every piece.
const ALL_PIECES_BONUS = 15

// LAST_PLACER_BONUS is awarded on top of ALL_PIECES_BONUS when that player
// also placed the last piece of the game.
const LAST_PLACER_BONUS = 5

// Feature divisors for the placement heuristic.
const (
	SIZE_DIVISOR         = 5.0
	CORNER_GAIN_DIVISOR  = 8.0
	CORNER_BLOCK_DIVISOR = 5.0
	MOBILITY_SCALE       = 0.5
)

// MAX_TURNS bounds a single game. 84 commits with three failures between
// each and a final failed round can never exceed it.
const MAX_TURNS = 400

// MOBILITY_FROM_TURN is the default turn from which the heuristic pays for a
// full move count per candidate.
const MOBILITY_FROM_TURN = 40
