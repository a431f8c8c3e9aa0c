package game

import "blokus/meta"

// Scores returns each color's final tally: claimed cells, plus a bonus for
// placing every piece, plus a further bonus when that color also placed the
// game's last piece.
func Scores(board *Board, inventories [meta.NUM_PLAYERS]*Inventory) [meta.NUM_PLAYERS]int {
	var scores [meta.NUM_PLAYERS]int
	last := board.LastPlacement()
	for _, c := range Colors() {
		scores[c] = board.Claimed(c)
		if inventories[c] != nil && inventories[c].IsEmpty() {
			scores[c] += meta.ALL_PIECES_BONUS
			if last != nil && last.Color == c {
				scores[c] += meta.LAST_PLACER_BONUS
			}
		}
	}
	return scores
}
