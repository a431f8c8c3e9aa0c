package game

import (
	"golang.org/x/exp/rand"
)

// GeneratorOption configures a MoveGenerator.
type GeneratorOption func(*MoveGenerator)

// WithPruning skips anchors farther than radius cells outside the color's
// claimed bounding box, from turn fromTurn onward. Distant legal placements
// can be missed once it applies.
func WithPruning(fromTurn, radius int) GeneratorOption {
	return func(g *MoveGenerator) {
		g.pruneFrom = fromTurn
		g.pruneRadius = radius
	}
}

// WithCornerAnchors restricts the scan to anchors that put a solid on one of
// the color's corner-available cells, or on a physical corner for the first
// move. The result is the same sequence as the full scan.
func WithCornerAnchors() GeneratorOption {
	return func(g *MoveGenerator) {
		g.cornerAnchors = true
	}
}

// MoveGenerator lists legal placements. Enumeration order is drawn from the
// injected source so a fixed seed reproduces it.
type MoveGenerator struct {
	rng           *rand.Rand
	pruneFrom     int
	pruneRadius   int
	cornerAnchors bool
}

func NewMoveGenerator(rng *rand.Rand, opts ...GeneratorOption) *MoveGenerator {
	g := &MoveGenerator{rng: rng, pruneFrom: -1}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Enumerate returns every legal placement of the color's remaining pieces.
// Piece, x and y orders are independent permutations drawn per call.
func (g *MoveGenerator) Enumerate(inv *Inventory, color Color, board *Board, turn int) []Placement {
	pieces := inv.Remaining()
	pieceOrder := g.rng.Perm(len(pieces))
	xs := g.rng.Perm(board.Width)
	ys := g.rng.Perm(board.Height)

	var moves []Placement
	g.scan(pieces, pieceOrder, xs, ys, color, board, turn, func(p Placement) {
		moves = append(moves, p)
	})
	return moves
}

// Count returns the number of legal placements without drawing from the
// source.
func (g *MoveGenerator) Count(inv *Inventory, color Color, board *Board, turn int) int {
	pieces := inv.Remaining()
	n := 0
	g.scan(pieces, identity(len(pieces)), identity(board.Width), identity(board.Height), color, board, turn, func(Placement) {
		n++
	})
	return n
}

func (g *MoveGenerator) scan(pieces []*Piece, pieceOrder, xs, ys []int, color Color, board *Board, turn int, visit func(Placement)) {
	inBounds := g.bounds(color, board, turn)
	var anchors *anchorSet
	if g.cornerAnchors {
		anchors = newAnchorSet(board, color)
	}
	for _, pi := range pieceOrder {
		piece := pieces[pi]
		if anchors != nil {
			anchors.load(piece)
		}
		for _, x := range xs {
			for _, y := range ys {
				if !inBounds(x, y) {
					continue
				}
				for r := 0; r < piece.Rotations; r++ {
					if anchors != nil && !anchors.has(r, x, y) {
						continue
					}
					if board.IsLegal(piece, r, x, y, color) {
						visit(Placement{Piece: piece, Rotation: r, X: x, Y: y, Color: color})
					}
				}
			}
		}
	}
}

// bounds returns the pruning filter for this call.
func (g *MoveGenerator) bounds(color Color, board *Board, turn int) func(x, y int) bool {
	all := func(int, int) bool { return true }
	if g.pruneFrom < 0 || turn < g.pruneFrom || !board.HasPlaced(color) {
		return all
	}
	min, max, ok := board.ClaimedBounds(color)
	if !ok {
		return all
	}
	r := g.pruneRadius
	return func(x, y int) bool {
		return x >= min.X-r && x <= max.X+r && y >= min.Y-r && y <= max.Y+r
	}
}

// anchorSet marks, per rotation of one piece, the anchors that put a solid on
// a target cell.
type anchorSet struct {
	board   *Board
	targets []Point
	marks   [][]bool
}

func newAnchorSet(board *Board, color Color) *anchorSet {
	a := &anchorSet{board: board}
	if board.HasPlaced(color) {
		for y := 0; y < board.Height; y++ {
			for x := 0; x < board.Width; x++ {
				if board.StatusAt(color, x, y) == CornerAvailable {
					a.targets = append(a.targets, Point{X: x, Y: y})
				}
			}
		}
	} else {
		w, h := board.Width-1, board.Height-1
		a.targets = []Point{{0, 0}, {w, 0}, {0, h}, {w, h}}
	}
	return a
}

func (a *anchorSet) load(piece *Piece) {
	size := a.board.Width * a.board.Height
	for len(a.marks) < piece.Rotations {
		a.marks = append(a.marks, make([]bool, size))
	}
	for r := 0; r < piece.Rotations; r++ {
		marks := a.marks[r]
		for i := range marks {
			marks[i] = false
		}
		for _, t := range a.targets {
			for _, s := range piece.Solids[r] {
				x, y := t.X-s.X, t.Y-s.Y
				if a.board.InGrid(x, y) {
					marks[y*a.board.Width+x] = true
				}
			}
		}
	}
}

func (a *anchorSet) has(rotation, x, y int) bool {
	return a.marks[rotation][y*a.board.Width+x]
}

func identity(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}
