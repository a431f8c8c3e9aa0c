package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func newGenerator(seed uint64, opts ...GeneratorOption) *MoveGenerator {
	return NewMoveGenerator(rand.New(rand.NewSource(seed)), opts...)
}

func TestEnumerate(t *testing.T) {
	pieces := StandardPieces()

	t.Run("single cell piece on an empty board", func(t *testing.T) {
		b := NewStandardBoard()
		inv := NewInventory(pieces[:1])
		moves := newGenerator(1).Enumerate(inv, Blue, b, 0)

		cells := make(map[Point]bool)
		for _, m := range moves {
			cells[Point{m.X, m.Y}] = true
		}
		require.Len(t, moves, 4, "Expected exactly the four corners")
		require.Equal(t, map[Point]bool{{0, 0}: true, {19, 0}: true, {0, 19}: true, {19, 19}: true}, cells)
	})

	t.Run("every first move covers a physical corner", func(t *testing.T) {
		b := NewStandardBoard()
		moves := newGenerator(2).Enumerate(NewInventory(pieces), Red, b, 0)
		require.NotEmpty(t, moves)
		for _, m := range moves {
			covers := false
			for _, s := range m.Piece.Solids[m.Rotation] {
				covers = covers || b.IsPhysicalCorner(m.X+s.X, m.Y+s.Y)
			}
			require.True(t, covers, "Expected %s to cover a corner", m)
		}
	})

	t.Run("consumed pieces are skipped", func(t *testing.T) {
		b := NewStandardBoard()
		inv := NewInventory(pieces[:3])
		require.NoError(t, inv.Consume(1))
		for _, m := range newGenerator(3).Enumerate(inv, Blue, b, 0) {
			require.NotEqual(t, 1, m.Piece.ID)
		}
	})

	t.Run("deterministic under a fixed seed", func(t *testing.T) {
		b := playout(t, 12, 4)
		inv := NewInventory(pieces)
		first := newGenerator(42).Enumerate(inv, Green, b, 12)
		second := newGenerator(42).Enumerate(inv, Green, b, 12)
		require.NotEmpty(t, first)
		require.Equal(t, first, second, "Expected the same ordered sequence")
	})

	t.Run("order varies between calls", func(t *testing.T) {
		b := NewStandardBoard()
		g := newGenerator(7)
		inv := NewInventory(pieces)
		first := g.Enumerate(inv, Blue, b, 0)
		second := g.Enumerate(inv, Blue, b, 0)
		require.ElementsMatch(t, first, second)
		require.NotEqual(t, first, second, "Expected a fresh permutation per call")
	})

	t.Run("count matches enumeration", func(t *testing.T) {
		b := playout(t, 8, 5)
		inv := NewInventory(pieces)
		for _, c := range Colors() {
			moves := newGenerator(9).Enumerate(inv, c, b, 8)
			require.Equal(t, len(moves), newGenerator(9).Count(inv, c, b, 8), "color %s", c)
		}
	})
}

func TestCornerAnchors(t *testing.T) {
	pieces := StandardPieces()
	inv := NewInventory(pieces)

	for _, turns := range []int{0, 4, 16, 40} {
		b := playout(t, turns, 11)
		for _, c := range Colors() {
			full := newGenerator(5).Enumerate(inv, c, b, turns)
			fast := newGenerator(5, WithCornerAnchors()).Enumerate(inv, c, b, turns)
			require.Equal(t, full, fast, "Expected identical sequences after %d turns for %s", turns, c)
		}
	}
}

func TestPruning(t *testing.T) {
	pieces := StandardPieces()
	inv := NewInventory(pieces)
	b := playout(t, 16, 13)

	t.Run("inactive before the threshold", func(t *testing.T) {
		full := newGenerator(3).Enumerate(inv, Blue, b, 10)
		pruned := newGenerator(3, WithPruning(20, 0)).Enumerate(inv, Blue, b, 10)
		require.Equal(t, full, pruned)
	})

	t.Run("anchors stay near the claimed region", func(t *testing.T) {
		radius := 1
		full := newGenerator(3).Enumerate(inv, Blue, b, 20)
		pruned := newGenerator(3, WithPruning(20, radius)).Enumerate(inv, Blue, b, 20)
		min, max, ok := b.ClaimedBounds(Blue)
		require.True(t, ok)
		for _, m := range pruned {
			require.True(t, m.X >= min.X-radius && m.X <= max.X+radius, "Expected %s inside the bound", m)
			require.True(t, m.Y >= min.Y-radius && m.Y <= max.Y+radius, "Expected %s inside the bound", m)
			require.Contains(t, full, m, "Expected pruning to only remove placements")
		}
		require.LessOrEqual(t, len(pruned), len(full))
	})
}

func TestCornerConnectivity(t *testing.T) {
	pieces := StandardPieces()
	b := NewStandardBoard()
	g := newGenerator(21)
	var inventories [4]*Inventory
	for _, c := range Colors() {
		inventories[c] = NewInventory(pieces)
	}
	owner := make(map[Point]int)
	start := make(map[Color]Point)

	color := Blue
	for turn := 0; turn < 80; turn++ {
		moves := g.Enumerate(inventories[color], color, b, turn)
		if len(moves) > 0 {
			m := moves[0]
			b.Commit(m)
			require.NoError(t, b.CheckInvariants())
			require.NoError(t, inventories[color].Consume(m.Piece.ID))
			for _, s := range m.Piece.Solids[m.Rotation] {
				p := Point{m.X + s.X, m.Y + s.Y}
				owner[p] = turn
				if b.IsPhysicalCorner(p.X, p.Y) {
					if _, ok := start[color]; !ok {
						start[color] = p
					}
				}
			}
			require.False(t, b.IsLegalPlacement(m), "Expected no double placement")
			requireConnected(t, b, color, start[color])
			requireNoSameColorEdges(t, b, owner)
		}
		color = color.Next()
	}
}

// requireConnected walks the color's cells from its start corner through
// edge and corner contact and expects to reach all of them.
func requireConnected(t *testing.T, b *Board, color Color, from Point) {
	t.Helper()
	require.Equal(t, color, b.At(from.X, from.Y), "Expected %s to own its start corner", color)
	seen := map[Point]bool{from: true}
	queue := []Point{from}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range append(append([]Point{}, orthogonal...), diagonal...) {
			n := Point{p.X + d.X, p.Y + d.Y}
			if b.InGrid(n.X, n.Y) && !seen[n] && b.At(n.X, n.Y) == color {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	require.Len(t, seen, b.Claimed(color), "Expected every %s cell reachable from %v", color, from)
}

// requireNoSameColorEdges expects orthogonal neighbours of one color to
// belong to the same placement.
func requireNoSameColorEdges(t *testing.T, b *Board, owner map[Point]int) {
	t.Helper()
	for p, turn := range owner {
		for _, d := range orthogonal {
			n := Point{p.X + d.X, p.Y + d.Y}
			other, ok := owner[n]
			if ok && b.At(n.X, n.Y) == b.At(p.X, p.Y) {
				require.Equal(t, turn, other, "Expected %v and %v not to share an edge", p, n)
			}
		}
	}
}

// playout commits the first enumerated move for each color in turn.
func playout(t *testing.T, turns int, seed uint64) *Board {
	t.Helper()
	pieces := StandardPieces()
	b := NewStandardBoard()
	g := newGenerator(seed)
	var inventories [4]*Inventory
	for _, c := range Colors() {
		inventories[c] = NewInventory(pieces)
	}
	color := Blue
	for turn := 0; turn < turns; turn++ {
		moves := g.Enumerate(inventories[color], color, b, turn)
		if len(moves) > 0 {
			b.Commit(moves[0])
			require.NoError(t, inventories[color].Consume(moves[0].Piece.ID))
		}
		color = color.Next()
	}
	return b
}
