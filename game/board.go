package game

import (
	"blokus/meta"
	"fmt"
)

// Status is a cell's legality classification relative to one color's pieces.
type Status int8

const (
	Unclaimed       Status = -1 // no piece of the color touches the cell
	Occupied        Status = 0  // a solid of any color; never changes again
	EdgeAdjacent    Status = 1  // forbidden for the color's future solids
	CornerAvailable Status = 2  // a future solid of the color may connect here
)

// Placement is a piece instance: template, rotation, anchor cell and owner.
type Placement struct {
	Piece    *Piece
	Rotation int
	X, Y     int
	Color    Color
}

func (p Placement) String() string {
	return fmt.Sprintf("%s piece %d rot %d at (%d,%d)", p.Color, p.Piece.ID, p.Rotation, p.X, p.Y)
}

// Board holds the shared occupancy grid and one status grid per color. Grids
// are row-major slices indexed y*Width+x.
type Board struct {
	Width, Height int

	grid    []Color
	status  [meta.NUM_PLAYERS][]Status
	claimed [meta.NUM_PLAYERS]int
	last    *Placement

	originX, originY int
	tileSize         int
}

// Snapshot is a deep copy of the mutable board state.
type Snapshot struct {
	grid    []Color
	status  [meta.NUM_PLAYERS][]Status
	claimed [meta.NUM_PLAYERS]int
	last    *Placement
}

// NewBoard returns an empty board of the given size.
func NewBoard(width, height int) *Board {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("invalid board size %dx%d", width, height))
	}
	b := &Board{
		Width:    width,
		Height:   height,
		grid:     make([]Color, width*height),
		tileSize: 1,
	}
	for c := range b.status {
		b.status[c] = make([]Status, width*height)
	}
	b.Reset()
	return b
}

// NewStandardBoard returns an empty board of the reference size.
func NewStandardBoard() *Board {
	return NewBoard(meta.BOARD_WIDTH, meta.BOARD_HEIGHT)
}

// Reset clears the board for a new game.
func (b *Board) Reset() {
	for i := range b.grid {
		b.grid[i] = Empty
	}
	for c := range b.status {
		for i := range b.status[c] {
			b.status[c][i] = Unclaimed
		}
	}
	b.claimed = [meta.NUM_PLAYERS]int{}
	b.last = nil
}

// InGrid reports whether (x, y) is a cell of the board.
func (b *Board) InGrid(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.Width && y < b.Height
}

// IsPhysicalCorner reports whether (x, y) is one of the four board corners.
func (b *Board) IsPhysicalCorner(x, y int) bool {
	return (x == 0 || x == b.Width-1) && (y == 0 || y == b.Height-1)
}

// At returns the color occupying (x, y), or Empty.
func (b *Board) At(x, y int) Color {
	return b.grid[y*b.Width+x]
}

// StatusAt returns the color's status for (x, y).
func (b *Board) StatusAt(color Color, x, y int) Status {
	return b.status[color][y*b.Width+x]
}

// Claimed returns the number of cells occupied by the color.
func (b *Board) Claimed(color Color) int {
	return b.claimed[color]
}

// LastPlacement returns the most recent placement that claimed cells, or nil.
func (b *Board) LastPlacement() *Placement {
	return b.last
}

// HasPlaced reports whether the color has any piece on the board.
func (b *Board) HasPlaced(color Color) bool {
	return b.claimed[color] > 0
}

// CornerCount returns the number of corner-available cells for the color.
func (b *Board) CornerCount(color Color) int {
	count := 0
	for _, s := range b.status[color] {
		if s == CornerAvailable {
			count++
		}
	}
	return count
}

// ClaimedBounds returns the bounding box of the color's occupied cells; ok is
// false when the color has none.
func (b *Board) ClaimedBounds(color Color) (min, max Point, ok bool) {
	min = Point{X: b.Width, Y: b.Height}
	max = Point{X: -1, Y: -1}
	for i, owner := range b.grid {
		if owner != color {
			continue
		}
		x, y := i%b.Width, i/b.Width
		min.X, min.Y = minInt(min.X, x), minInt(min.Y, y)
		max.X, max.Y = maxInt(max.X, x), maxInt(max.Y, y)
		ok = true
	}
	return min, max, ok
}

// Grid returns a copy of the occupancy grid indexed [y][x].
func (b *Board) Grid() [][]Color {
	rows := make([][]Color, b.Height)
	for y := range rows {
		rows[y] = make([]Color, b.Width)
		copy(rows[y], b.grid[y*b.Width:(y+1)*b.Width])
	}
	return rows
}

// Commit writes a placement onto the board. Solid cells the owner may still
// claim become occupied for every color; edge and corner cells strengthen the
// owner's status. Committing the same placement twice changes nothing.
func (b *Board) Commit(p Placement) {
	l := &p.Piece.layouts[p.Rotation]
	owner := b.status[p.Color]
	placed := false
	for ly := 0; ly < l.h; ly++ {
		y := p.Y + l.min.Y + ly
		for lx := 0; lx < l.w; lx++ {
			x := p.X + l.min.X + lx
			if !b.InGrid(x, y) {
				continue
			}
			kind := l.kinds[ly*l.w+lx]
			i := y*b.Width + x
			switch kind {
			case Solid:
				if owner[i] == CornerAvailable || owner[i] == Unclaimed {
					b.grid[i] = p.Color
					for c := range b.status {
						b.status[c][i] = Occupied
					}
					b.claimed[p.Color]++
					placed = true
				}
			case Edge, Corner:
				owner[i] = strengthen(owner[i], kind)
			}
		}
	}
	if placed {
		b.last = &p
	}
}

// strengthen orders statuses occupied > edge > corner > unclaimed.
func strengthen(cur Status, kind CellKind) Status {
	switch {
	case cur == Occupied:
		return cur
	case kind == Edge:
		return EdgeAdjacent
	case kind == Corner && cur == Unclaimed:
		return CornerAvailable
	}
	return cur
}

// Snapshot returns a deep copy of the occupancy and status grids.
func (b *Board) Snapshot() *Snapshot {
	s := &Snapshot{
		grid:    make([]Color, len(b.grid)),
		claimed: b.claimed,
		last:    b.last,
	}
	copy(s.grid, b.grid)
	for c := range b.status {
		s.status[c] = make([]Status, len(b.status[c]))
		copy(s.status[c], b.status[c])
	}
	return s
}

// Restore replaces the board state with a snapshot taken from this board.
func (b *Board) Restore(s *Snapshot) {
	if len(s.grid) != len(b.grid) {
		panic("snapshot does not match board dimensions")
	}
	copy(b.grid, s.grid)
	for c := range b.status {
		copy(b.status[c], s.status[c])
	}
	b.claimed = s.claimed
	b.last = s.last
}

// Speculate runs fn against the board and restores the prior state on every
// exit path, panics included.
func (b *Board) Speculate(fn func(b *Board)) {
	s := b.Snapshot()
	defer b.Restore(s)
	fn(b)
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	clone := *b
	clone.grid = make([]Color, len(b.grid))
	copy(clone.grid, b.grid)
	for c := range b.status {
		clone.status[c] = make([]Status, len(b.status[c]))
		copy(clone.status[c], b.status[c])
	}
	return &clone
}

// Equal reports whether two boards hold identical grids.
func (b *Board) Equal(other *Board) bool {
	if b.Width != other.Width || b.Height != other.Height || b.claimed != other.claimed {
		return false
	}
	for i := range b.grid {
		if b.grid[i] != other.grid[i] {
			return false
		}
	}
	for c := range b.status {
		for i := range b.status[c] {
			if b.status[c][i] != other.status[c][i] {
				return false
			}
		}
	}
	return true
}

// CheckInvariants reports the first disagreement between the occupancy grid
// and the status grids.
func (b *Board) CheckInvariants() error {
	var counts [meta.NUM_PLAYERS]int
	for i, owner := range b.grid {
		x, y := i%b.Width, i/b.Width
		if owner != Empty {
			counts[owner]++
		}
		for c := range b.status {
			s := b.status[c][i]
			if owner != Empty && s != Occupied {
				return fmt.Errorf("cell (%d,%d) owned by %s has status %d for %s", x, y, owner, s, Color(c))
			}
			if owner == Empty && s == Occupied {
				return fmt.Errorf("empty cell (%d,%d) is occupied for %s", x, y, Color(c))
			}
		}
	}
	if counts != b.claimed {
		return fmt.Errorf("claimed counts %v do not match grid %v", b.claimed, counts)
	}
	return nil
}

// SetDisplay maps cells onto display space: cell (0,0) starts at
// (originX, originY) and every cell is tileSize wide.
func (b *Board) SetDisplay(originX, originY, tileSize int) {
	if tileSize <= 0 {
		panic("tile size must be positive")
	}
	b.originX, b.originY, b.tileSize = originX, originY, tileSize
}

// BoardToScreen returns the display position of a cell's top-left corner.
func (b *Board) BoardToScreen(x, y int) Point {
	return Point{X: b.originX + x*b.tileSize, Y: b.originY + y*b.tileSize}
}

// ScreenToBoard returns the cell under a display position.
func (b *Board) ScreenToBoard(sx, sy int) (x, y int, ok bool) {
	dx, dy := sx-b.originX, sy-b.originY
	if dx < 0 || dy < 0 {
		return 0, 0, false
	}
	x, y = dx/b.tileSize, dy/b.tileSize
	return x, y, b.InGrid(x, y)
}
