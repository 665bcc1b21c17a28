package gotable

import "math"

// Position is a zero-based offset into the filtered and sorted collection.
//
// Both addressing schemes accepted from clients (absolute offset and 1-based
// page number) are normalized into a Position before use.
type Position struct {
	offset int
}

func NewPosition(offset int) Position {
	return Position{offset: offset}
}

// PositionFromPage converts a 1-based page number into a Position:
// offset = (page-1) * size.
func PositionFromPage(page, size int) Position {
	if size <= 0 {
		return Position{}
	}

	// Pages past math.MaxInt/size would overflow; Clamp moves them to the
	// last record anyway.
	page = min(page, math.MaxInt/size)

	return Position{offset: (page - 1) * size}
}

// GetOffset returns the raw, possibly unclamped, offset.
func (p Position) GetOffset() int {
	return p.offset
}

// Clamp returns the position moved into [0, total-1], or 0 for an empty
// collection.
func (p Position) Clamp(total int) Position {
	if total <= 0 {
		return Position{}
	}

	return Position{offset: min(max(0, p.offset), total-1)}
}

// Page returns the 1-based page number holding the position:
// floor(offset/size) + 1.
func (p Position) Page(size int) int {
	if size <= 0 || p.offset <= 0 {
		return 1
	}

	return p.offset/size + 1
}

// PageStart returns the offset of the first record on the given 1-based page.
func PageStart(page, size int) int {
	if page <= 1 || size <= 0 {
		return 0
	}

	return (page - 1) * size
}
