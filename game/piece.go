package game

import "fmt"

// CellKind classifies a grid cell relative to a placed piece. The values
// match the status grid convention so a classification can be written
// straight into a Status.
type CellKind int8

const (
	None   CellKind = -1
	Solid  CellKind = 0
	Edge   CellKind = 1
	Corner CellKind = 2
)

func (k CellKind) String() string {
	switch k {
	case Solid:
		return "solid"
	case Edge:
		return "edge"
	case Corner:
		return "corner"
	default:
		return "none"
	}
}

// Point is an integer grid offset or coordinate.
type Point struct {
	X, Y int
}

// layout is the classification window of one rotation, anchored at min.
type layout struct {
	min   Point
	w, h  int
	kinds []CellKind
}

func (l *layout) at(dx, dy int) CellKind {
	lx := dx - l.min.X
	ly := dy - l.min.Y
	if lx < 0 || ly < 0 || lx >= l.w || ly >= l.h {
		return None
	}
	return l.kinds[ly*l.w+lx]
}

// Piece is an immutable polyomino template. Each rotation decomposes into
// the cells the piece occupies (Solids), the cells orthogonally adjacent to
// them (Edges) and the cells touching them only diagonally (Corners), all
// relative to the rotation's anchor cell.
type Piece struct {
	ID        int
	Rotations int
	Solids    [][]Point
	Edges     [][]Point
	Corners   [][]Point
	layouts   []layout
}

// Size is the number of solid cells, identical for every rotation.
func (p *Piece) Size() int {
	return len(p.Solids[0])
}

// Classify reports what the offset (dx, dy) from the anchor is for the given
// rotation.
func (p *Piece) Classify(rotation, dx, dy int) CellKind {
	return p.layouts[rotation].at(dx, dy)
}

// BoundingBox returns the extreme offsets of the rotation's layout, margin
// included.
func (p *Piece) BoundingBox(rotation int) (min, max Point) {
	min = Point{X: 1 << 30, Y: 1 << 30}
	max = Point{X: -1 << 30, Y: -1 << 30}
	for _, set := range [][]Point{p.Solids[rotation], p.Edges[rotation], p.Corners[rotation]} {
		for _, o := range set {
			min.X = minInt(min.X, o.X)
			min.Y = minInt(min.Y, o.Y)
			max.X = maxInt(max.X, o.X)
			max.Y = maxInt(max.Y, o.Y)
		}
	}
	return min, max
}

// Dimensions returns the layout's width and height in cells.
func (p *Piece) Dimensions(rotation int) Point {
	min, max := p.BoundingBox(rotation)
	return Point{X: max.X - min.X + 1, Y: max.Y - min.Y + 1}
}

func (p *Piece) String() string {
	return fmt.Sprintf("piece %d (%d cells, %d rotations)", p.ID, p.Size(), p.Rotations)
}

// newPiece builds a template from the marker rows of each rotation. The
// anchor of each block is its cell at column 1, row 1.
func newPiece(id int, blocks [][]string) (*Piece, error) {
	if len(blocks) == 0 {
		return nil, fmt.Errorf("piece %d: %w: no rotations", id, ErrMalformedShape)
	}
	p := &Piece{
		ID:        id,
		Rotations: len(blocks),
		Solids:    make([][]Point, len(blocks)),
		Edges:     make([][]Point, len(blocks)),
		Corners:   make([][]Point, len(blocks)),
		layouts:   make([]layout, len(blocks)),
	}
	for r, rows := range blocks {
		l := layout{min: Point{X: -1, Y: -1}, h: len(rows)}
		for _, row := range rows {
			l.w = maxInt(l.w, len(row))
		}
		l.kinds = make([]CellKind, l.w*l.h)
		for i := range l.kinds {
			l.kinds[i] = None
		}
		for y, row := range rows {
			for x, c := range row {
				o := Point{X: x - 1, Y: y - 1}
				var kind CellKind
				switch c {
				case 'S':
					kind = Solid
					p.Solids[r] = append(p.Solids[r], o)
				case 'E':
					kind = Edge
					p.Edges[r] = append(p.Edges[r], o)
				case 'C':
					kind = Corner
					p.Corners[r] = append(p.Corners[r], o)
				case '.':
					kind = None
				default:
					return nil, fmt.Errorf("piece %d rotation %d: %w: unknown marker %q", id, r, ErrMalformedShape, c)
				}
				l.kinds[y*l.w+x] = kind
			}
		}
		p.layouts[r] = l
		if len(p.Solids[r]) == 0 {
			return nil, fmt.Errorf("piece %d rotation %d: %w: no solid cells", id, r, ErrMalformedShape)
		}
		if len(p.Solids[r]) != len(p.Solids[0]) {
			return nil, fmt.Errorf("piece %d rotation %d: %w: %d solid cells, rotation 0 has %d",
				id, r, ErrMalformedShape, len(p.Solids[r]), len(p.Solids[0]))
		}
		if err := checkMarkers(&l, p.Solids[r]); err != nil {
			return nil, fmt.Errorf("piece %d rotation %d: %w", id, r, err)
		}
	}
	return p, nil
}

var (
	orthogonal = []Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	diagonal   = []Point{{1, 1}, {-1, 1}, {1, -1}, {-1, -1}}
)

// checkMarkers verifies the edge and corner markers are exactly the ones the
// solids imply.
func checkMarkers(l *layout, solids []Point) error {
	solid := make(map[Point]bool, len(solids))
	for _, s := range solids {
		solid[s] = true
	}
	want := make(map[Point]CellKind)
	for _, s := range solids {
		for _, d := range diagonal {
			n := Point{s.X + d.X, s.Y + d.Y}
			if !solid[n] {
				if _, ok := want[n]; !ok {
					want[n] = Corner
				}
			}
		}
	}
	for _, s := range solids {
		for _, d := range orthogonal {
			n := Point{s.X + d.X, s.Y + d.Y}
			if !solid[n] {
				want[n] = Edge
			}
		}
	}
	for y := 0; y < l.h; y++ {
		for x := 0; x < l.w; x++ {
			o := Point{X: x + l.min.X, Y: y + l.min.Y}
			got := l.kinds[y*l.w+x]
			if got == Solid {
				continue
			}
			exp, ok := want[o]
			if !ok {
				exp = None
			}
			if got != exp {
				return fmt.Errorf("%w: cell (%d,%d) marked %s, solids imply %s", ErrMalformedShape, o.X, o.Y, got, exp)
			}
			delete(want, o)
		}
	}
	for o, k := range want {
		return fmt.Errorf("%w: %s cell (%d,%d) falls outside the layout", ErrMalformedShape, k, o.X, o.Y)
	}
	return nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
