package grid

// LineIterator implements the Bresenham line algorithm over integer cells.
// Steps through cells along a line from start to end, both included;
// a step may move both axes at once.
type LineIterator struct {
	currentX, currentY int
	targetX, targetY   int
	deltaX, deltaY     int
	stepX, stepY       int
	err                int
	xDominant          bool
	started            bool
}

// NewLineIterator creates a line iterator from (sx,sy) to (ex,ey).
func NewLineIterator(sx, sy, ex, ey int) *LineIterator {
	it := &LineIterator{
		currentX: sx, currentY: sy,
		targetX: ex, targetY: ey,
		deltaX: absInt(ex - sx),
		deltaY: absInt(ey - sy),
		stepX:  1,
		stepY:  1,
	}
	if ex < sx {
		it.stepX = -1
	}
	if ey < sy {
		it.stepY = -1
	}

	// Dominant axis owns the error term.
	it.xDominant = it.deltaX >= it.deltaY
	if it.xDominant {
		it.err = it.deltaX / 2
	} else {
		it.err = it.deltaY / 2
	}
	return it
}

// Next advances the iterator to the next cell.
// Returns false when the target has already been returned.
func (it *LineIterator) Next() bool {
	if !it.started {
		it.started = true
		return true // start cell
	}

	if it.currentX == it.targetX && it.currentY == it.targetY {
		return false
	}

	if it.xDominant {
		it.currentX += it.stepX
		it.err += it.deltaY
		if it.err >= it.deltaX {
			it.currentY += it.stepY
			it.err -= it.deltaX
		}
	} else {
		it.currentY += it.stepY
		it.err += it.deltaX
		if it.err >= it.deltaY {
			it.currentX += it.stepX
			it.err -= it.deltaY
		}
	}
	return true
}

// Cell returns the current position.
func (it *LineIterator) Cell() (int, int) { return it.currentX, it.currentY }
