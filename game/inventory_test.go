package game

import (
	"blokus/meta"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInventory(t *testing.T) {
	pieces := StandardPieces()

	t.Run("consume", func(t *testing.T) {
		inv := NewInventory(pieces)
		require.Equal(t, 21, inv.Len())
		require.True(t, inv.Available(4))

		require.NoError(t, inv.Consume(4))
		require.False(t, inv.Available(4))
		require.Nil(t, inv.Slot(4), "Expected an empty slot")
		require.Len(t, inv.Remaining(), 20)
		require.Error(t, inv.Consume(4), "Expected a consumed piece to be unavailable")
	})

	t.Run("empty", func(t *testing.T) {
		inv := NewInventory(pieces[:2])
		require.False(t, inv.IsEmpty())
		require.NoError(t, inv.Consume(0))
		require.NoError(t, inv.Consume(1))
		require.True(t, inv.IsEmpty())
		require.Empty(t, inv.Remaining())
	})

	t.Run("holds only the template", func(t *testing.T) {
		inv := NewInventory(pieces)
		require.True(t, inv.Holds(pieces[3]))
		impostor := *pieces[3]
		require.False(t, inv.Holds(&impostor), "Expected a copy with the same ID to be rejected")
		require.False(t, inv.Holds(nil))
		require.NoError(t, inv.Consume(3))
		require.False(t, inv.Holds(pieces[3]))
	})

	t.Run("clone is independent", func(t *testing.T) {
		inv := NewInventory(pieces)
		clone := inv.Clone()
		require.NoError(t, clone.Consume(0))
		require.True(t, inv.Available(0))
	})
}

func TestScores(t *testing.T) {
	pieces := StandardPieces()
	b := NewStandardBoard()
	var inventories [meta.NUM_PLAYERS]*Inventory
	for _, c := range Colors() {
		inventories[c] = NewInventory(pieces[:2])
	}

	b.Commit(Placement{Piece: pieces[0], X: 0, Y: 0, Color: Blue})
	b.Commit(Placement{Piece: pieces[1], X: 1, Y: 1, Color: Blue})
	require.NoError(t, inventories[Blue].Consume(0))
	require.NoError(t, inventories[Blue].Consume(1))

	b.Commit(Placement{Piece: pieces[1], X: 18, Y: 0, Color: Red})
	require.NoError(t, inventories[Red].Consume(1))

	b.Commit(Placement{Piece: pieces[0], X: 19, Y: 19, Color: Green})
	b.Commit(Placement{Piece: pieces[1], X: 17, Y: 18, Color: Green})
	require.NoError(t, inventories[Green].Consume(0))
	require.NoError(t, inventories[Green].Consume(1))

	scores := Scores(b, inventories)
	require.Equal(t, 3+meta.ALL_PIECES_BONUS, scores[Blue], "Expected the all-pieces bonus")
	require.Equal(t, 2, scores[Red])
	require.Equal(t, 3+meta.ALL_PIECES_BONUS+meta.LAST_PLACER_BONUS, scores[Green], "Expected the last placer bonus")
	require.Equal(t, 0, scores[Yellow])
}
