// Package distance measures physical distance between 3D grid locations:
// straight Euclidean distance on gridless scenes, and grid-step counting
// with diagonal rules and elevation folding on square and hex grids.
package distance

import (
	"github.com/udisondev/elevationruler/internal/grid"
)

// StepKind classifies the move between two adjacent 3D cells.
type StepKind uint8

const (
	None StepKind = iota
	Horizontal
	Vertical
	Diagonal
	Elevation
)

func (k StepKind) String() string {
	switch k {
	case Horizontal:
		return "H"
	case Vertical:
		return "V"
	case Diagonal:
		return "D"
	case Elevation:
		return "E"
	default:
		return "none"
	}
}

// Moves tallies step kinds along a path.
type Moves struct {
	H, V, D, E int
}

// Add counts one step of kind k.
func (m Moves) Add(k StepKind) Moves {
	switch k {
	case Horizontal:
		m.H++
	case Vertical:
		m.V++
	case Diagonal:
		m.D++
	case Elevation:
		m.E++
	}
	return m
}

// Classify returns the kind of move from prev to curr.
// Any canvas move combined with an elevation change is a diagonal.
func Classify(g *grid.Grid, prev, curr grid.Offset3) StepKind {
	rowChanged := prev.I != curr.I
	colChanged := prev.J != curr.J
	canvas := rowChanged || colChanged
	elev := prev.K != curr.K

	switch {
	case !canvas && !elev:
		return None
	case !canvas:
		return Elevation
	case elev:
		return Diagonal
	}

	switch {
	case g.Type.IsHexRow():
		if rowChanged {
			return Vertical
		}
		return Horizontal
	case g.Type.IsHex():
		if colChanged {
			return Horizontal
		}
		return Vertical
	case rowChanged && colChanged:
		return Diagonal
	case colChanged:
		return Horizontal
	default:
		return Vertical
	}
}

// Under3dLine returns the 3D cells along the straight line from a to b.
//
// The 2D cell path is walked in lockstep with a second line traversal
// over an auxiliary plane whose axes are "2D steps taken" and "elevation
// steps taken" (swapped on hex-row grids). An elevation-only projected
// step stays in the cell and moves K; a canvas-only step advances along
// the 2D path; a projected diagonal does both at once when the diagonal
// rule allows combined moves, otherwise canvas first, then elevation.
func Under3dLine(g *grid.Grid, a, b grid.Offset3) []grid.Offset3 {
	path2d := g.DirectPath(a.Offset(), b.Offset())
	if len(path2d) == 0 {
		return nil
	}

	n2d := len(path2d) - 1
	dk := b.K - a.K
	nE := absInt(dk)
	kStep := signInt(dk)

	out := make([]grid.Offset3, 0, n2d+nE+1)
	out = append(out, path2d[0].At(a.K))
	if n2d == 0 && nE == 0 {
		return out
	}

	hexRow := g.Type.IsHexRow()
	var it *grid.LineIterator
	if hexRow {
		it = grid.NewLineIterator(0, 0, nE, n2d)
	} else {
		it = grid.NewLineIterator(0, 0, n2d, nE)
	}
	it.Next() // origin

	idx, k := 0, a.K
	prevS, prevE := 0, 0
	for it.Next() {
		x, y := it.Cell()
		s, e := x, y
		if hexRow {
			s, e = y, x
		}
		canvas := s != prevS
		elev := e != prevE
		prevS, prevE = s, e

		switch {
		case canvas && elev:
			idx++
			k += kStep
			if !g.Diagonals.AllowsCombined() {
				out = append(out, path2d[idx].At(k-kStep))
			}
			out = append(out, path2d[idx].At(k))
		case canvas:
			idx++
			out = append(out, path2d[idx].At(k))
		case elev:
			k += kStep
			out = append(out, path2d[idx].At(k))
		}
	}
	return out
}

// SumMoves tallies step kinds along the 3D line from a to b.
// The tally is the sufficient statistic for distance under any rule.
func SumMoves(g *grid.Grid, a, b grid.Offset3) Moves {
	var m Moves
	cells := Under3dLine(g, a, b)
	if len(cells) == 0 {
		return m
	}
	prev := cells[0]
	for _, curr := range cells[1:] {
		m = m.Add(Classify(g, prev, curr))
		prev = curr
	}
	return m
}

// FoldElevation converts elevation steps into lateral cost categories:
// each pairs with a horizontal step into a diagonal, then with a vertical
// step, and anything left over counts as horizontal. Under the Illegal
// rule no diagonal may be formed, so every elevation step is horizontal.
func FoldElevation(m Moves, rule grid.DiagonalRule) Moves {
	if !rule.AllowsCombined() {
		m.H += m.E
		m.E = 0
		return m
	}

	n := min(m.E, m.H)
	m.H -= n
	m.D += n
	m.E -= n

	n = min(m.E, m.V)
	m.V -= n
	m.D += n
	m.E -= n

	m.H += m.E
	m.E = 0
	return m
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func signInt(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
