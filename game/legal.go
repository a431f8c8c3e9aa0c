package game

// IsLegal reports whether color may place the piece's rotation anchored at
// (x, y). Every solid must land inside the grid on a cell the color may claim,
// and one of the placement's corner cells must hold a piece of the same
// color, unless the color has no piece yet and a solid covers a physical
// board corner. Cells outside the rotation's layout classify as None, so only
// the layout window is scanned.
//
// A physical corner only counts for the first piece: a later placement on a
// free physical corner still needs a corner touch.
func (b *Board) IsLegal(piece *Piece, rotation, x, y int, color Color) bool {
	if rotation < 0 || rotation >= piece.Rotations {
		return false
	}
	l := &piece.layouts[rotation]
	status := b.status[color]
	first := !b.HasPlaced(color)
	solids, touch, cornerBonus := 0, 0, 0
	for ly := 0; ly < l.h; ly++ {
		cy := y + l.min.Y + ly
		for lx := 0; lx < l.w; lx++ {
			cx := x + l.min.X + lx
			kind := l.kinds[ly*l.w+lx]
			if kind == None || !b.InGrid(cx, cy) {
				continue
			}
			i := cy*b.Width + cx
			switch kind {
			case Solid:
				if s := status[i]; s == Occupied || s == EdgeAdjacent {
					return false
				}
				if first && b.IsPhysicalCorner(cx, cy) {
					cornerBonus++
				}
				solids++
			case Corner:
				if b.grid[i] == color {
					touch++
				}
			}
		}
	}
	return (touch > 0 || cornerBonus > 0) && solids == piece.Size()
}

// IsLegalPlacement is IsLegal for a Placement value.
func (b *Board) IsLegalPlacement(p Placement) bool {
	if p.Piece == nil || p.Color < 0 || int(p.Color) >= len(b.status) {
		return false
	}
	return b.IsLegal(p.Piece, p.Rotation, p.X, p.Y, p.Color)
}
