package game

import "fmt"

// Inventory holds one slot per piece template; a consumed slot is nil.
type Inventory struct {
	slots []*Piece
}

// NewInventory returns an inventory holding every given piece.
func NewInventory(pieces []*Piece) *Inventory {
	slots := make([]*Piece, len(pieces))
	copy(slots, pieces)
	return &Inventory{slots: slots}
}

// Len is the number of slots, consumed ones included.
func (inv *Inventory) Len() int {
	return len(inv.slots)
}

// Slot returns the piece in slot i, or nil once consumed.
func (inv *Inventory) Slot(i int) *Piece {
	return inv.slots[i]
}

// Available reports whether the piece with the given ID is still unplaced.
func (inv *Inventory) Available(id int) bool {
	return inv.indexOf(id) >= 0
}

// Holds reports whether piece is one of the unplaced templates. Only the
// template itself matches, not another piece carrying its ID.
func (inv *Inventory) Holds(piece *Piece) bool {
	if piece == nil {
		return false
	}
	i := inv.indexOf(piece.ID)
	return i >= 0 && inv.slots[i] == piece
}

// Consume empties the slot of the piece with the given ID.
func (inv *Inventory) Consume(id int) error {
	i := inv.indexOf(id)
	if i < 0 {
		return fmt.Errorf("piece %d is not available", id)
	}
	inv.slots[i] = nil
	return nil
}

// Remaining returns the unplaced pieces in slot order.
func (inv *Inventory) Remaining() []*Piece {
	var pieces []*Piece
	for _, p := range inv.slots {
		if p != nil {
			pieces = append(pieces, p)
		}
	}
	return pieces
}

// IsEmpty reports whether every piece has been placed.
func (inv *Inventory) IsEmpty() bool {
	for _, p := range inv.slots {
		if p != nil {
			return false
		}
	}
	return true
}

// Clone returns an independent copy sharing the immutable templates.
func (inv *Inventory) Clone() *Inventory {
	return NewInventory(inv.slots)
}

func (inv *Inventory) indexOf(id int) int {
	for i, p := range inv.slots {
		if p != nil && p.ID == id {
			return i
		}
	}
	return -1
}
