package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsLegal(t *testing.T) {
	pieces := StandardPieces()
	mono, domino := pieces[0], pieces[1]

	t.Run("first move must cover a physical corner", func(t *testing.T) {
		b := NewStandardBoard()
		require.True(t, b.IsLegal(mono, 0, 0, 0, Blue))
		require.True(t, b.IsLegal(mono, 0, 19, 0, Blue))
		require.True(t, b.IsLegal(domino, 0, 18, 19, Blue))
		require.False(t, b.IsLegal(mono, 0, 1, 0, Blue))
		require.False(t, b.IsLegal(mono, 0, 10, 10, Blue))
	})

	t.Run("solids outside the grid are rejected", func(t *testing.T) {
		b := NewStandardBoard()
		require.False(t, b.IsLegal(domino, 0, 19, 0, Blue), "Expected half the domino off the board")
		require.False(t, b.IsLegal(domino, 1, 0, 19, Blue))
		require.False(t, b.IsLegal(mono, 0, -1, 0, Blue))
	})

	t.Run("edge contact rejected and corner contact accepted", func(t *testing.T) {
		b := NewStandardBoard()
		place(t, b, mono, 0, 0, 0, Blue)
		place(t, b, mono, 0, 1, 1, Blue)

		require.False(t, b.IsLegal(mono, 0, 1, 0, Blue), "Expected (1,0) edge-adjacent to BLUE")
		require.False(t, b.IsLegal(mono, 0, 0, 1, Blue), "Expected (0,1) edge-adjacent to BLUE")
		require.True(t, b.IsLegal(mono, 0, 2, 2, Blue), "Expected (2,2) corner-adjacent to (1,1)")
	})

	t.Run("later moves ignore physical corners", func(t *testing.T) {
		b := NewStandardBoard()
		place(t, b, mono, 0, 0, 0, Blue)
		require.False(t, b.IsLegal(mono, 0, 19, 19, Blue), "Expected no second corner start")
	})

	t.Run("other colors may touch edges", func(t *testing.T) {
		b := NewBoard(4, 4)
		place(t, b, mono, 0, 0, 0, Blue)
		place(t, b, mono, 0, 3, 0, Red)
		place(t, b, domino, 1, 2, 1, Red)

		require.True(t, b.IsLegal(mono, 0, 1, 0, Red), "Expected red to touch a blue edge")
		require.False(t, b.IsLegal(mono, 0, 1, 0, Blue))
		require.False(t, b.IsLegal(mono, 0, 2, 0, Red), "Expected red to avoid its own edge")
	})

	t.Run("no double placement", func(t *testing.T) {
		b := NewStandardBoard()
		p := place(t, b, pieces[6], 0, 0, 0, Green)
		require.False(t, b.IsLegalPlacement(p), "Expected a committed placement to be illegal")
	})

	t.Run("does not mutate", func(t *testing.T) {
		b := NewStandardBoard()
		place(t, b, mono, 0, 0, 0, Blue)
		reference := b.Clone()
		b.IsLegal(domino, 1, 1, 1, Blue)
		b.IsLegal(domino, 0, 5, 5, Red)
		require.True(t, reference.Equal(b))
	})

	t.Run("rejects bad placements", func(t *testing.T) {
		b := NewStandardBoard()
		require.False(t, b.IsLegalPlacement(Placement{X: 0, Y: 0, Color: Blue}), "Expected nil piece")
		require.False(t, b.IsLegalPlacement(Placement{Piece: mono, Color: Empty}), "Expected empty color")
		require.False(t, b.IsLegalPlacement(Placement{Piece: mono, Rotation: 1, Color: Blue}), "Expected unknown rotation")
	})
}
