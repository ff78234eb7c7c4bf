package snake

// Body is the snake itself: an ordered run of cells from head (index 0) to tail.
//
// Cells live in a ring buffer so prepending a head and dropping the tail are
// both O(1), and an occupancy set answers membership in O(1). Every mutation
// goes through Advance, which keeps the two in sync.
type Body struct {
	ring     []Cell
	start    int // ring index of the head
	length   int
	occupied map[Cell]struct{}
}

// NewBody builds a body from cells ordered head first.
// The caller guarantees the cells are distinct and adjacent.
func NewBody(cells ...Cell) *Body {
	b := &Body{
		ring:     make([]Cell, max(len(cells), 4)),
		occupied: make(map[Cell]struct{}, len(cells)),
	}
	for i, c := range cells {
		b.ring[i] = c
		b.occupied[c] = struct{}{}
	}
	b.length = len(cells)
	return b
}

// Len returns the number of cells in the body.
func (b *Body) Len() int {
	return b.length
}

// At returns the i-th cell counted from the head.
func (b *Body) At(i int) Cell {
	return b.ring[(b.start+i)%len(b.ring)]
}

// Head returns the first cell.
func (b *Body) Head() Cell {
	return b.At(0)
}

// Tail returns the last cell.
func (b *Body) Tail() Cell {
	return b.At(b.length - 1)
}

// Contains reports whether any part of the body occupies c.
func (b *Body) Contains(c Cell) bool {
	_, ok := b.occupied[c]
	return ok
}

// CollidesWithSelf reports whether moving the head onto c would hit the body.
// The tail is left out: on a normal move it vacates its cell in the same step.
// On a growth move the target is the food cell, which is never on the body,
// so the exclusion cannot hide a real hit.
func (b *Body) CollidesWithSelf(c Cell) bool {
	if !b.Contains(c) {
		return false
	}
	return c != b.Tail()
}

// Advance prepends head and, unless grow is set, drops the tail.
// The tail is released before the head is claimed so a head moving onto the
// vacating tail cell stays marked as occupied.
func (b *Body) Advance(head Cell, grow bool) {
	if !grow {
		tail := b.Tail()
		delete(b.occupied, tail)
		b.length--
	}

	if b.length == len(b.ring) {
		b.grow()
	}
	b.start = (b.start - 1 + len(b.ring)) % len(b.ring)
	b.ring[b.start] = head
	b.length++
	b.occupied[head] = struct{}{}
}

// grow doubles the ring, unrolling it so the head sits at index 0.
func (b *Body) grow() {
	next := make([]Cell, len(b.ring)*2)
	for i := range b.length {
		next[i] = b.At(i)
	}
	b.ring = next
	b.start = 0
}

// Cells returns a copy of the body, head first.
func (b *Body) Cells() []Cell {
	out := make([]Cell, b.length)
	for i := range out {
		out[i] = b.At(i)
	}
	return out
}
