package grid

import "math"

// Type is the grid topology.
type Type uint8

const (
	Gridless Type = iota
	Square
	HexOddR  // pointy-top, odd rows shifted right
	HexEvenR // pointy-top, even rows shifted right
	HexOddQ  // flat-top, odd columns shifted down
	HexEvenQ // flat-top, even columns shifted down
)

var typeNames = [...]string{
	Gridless: "gridless",
	Square:   "square",
	HexOddR:  "hex_odd_r",
	HexEvenR: "hex_even_r",
	HexOddQ:  "hex_odd_q",
	HexEvenQ: "hex_even_q",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

// IsHex returns true for all four hex layouts.
func (t Type) IsHex() bool { return t >= HexOddR && t <= HexEvenQ }

// IsHexRow returns true for the row-offset (pointy-top) hex layouts.
func (t Type) IsHexRow() bool { return t == HexOddR || t == HexEvenR }

// DiagonalRule prices a diagonal move relative to an orthogonal one.
type DiagonalRule uint8

const (
	Equidistant     DiagonalRule = iota // ×1
	Exact                               // ×√2
	Approximate                         // ×1.5
	Rectilinear                         // ×2
	AlternatingOdd                      // 1, 2, 1, 2, ...
	AlternatingEven                     // 2, 1, 2, 1, ...
	Illegal                             // decomposed into an orthogonal pair
)

var ruleNames = [...]string{
	Equidistant:     "equidistant",
	Exact:           "exact",
	Approximate:     "approximate",
	Rectilinear:     "rectilinear",
	AlternatingOdd:  "alternating_odd",
	AlternatingEven: "alternating_even",
	Illegal:         "illegal",
}

func (r DiagonalRule) String() string {
	if int(r) < len(ruleNames) {
		return ruleNames[r]
	}
	return "unknown"
}

// AllowsCombined reports whether a canvas move and an elevation change
// may be taken as one diagonal step.
func (r DiagonalRule) AllowsCombined() bool { return r != Illegal }

// Offset is a row/column cell address.
type Offset struct {
	I, J int
}

// Offset3 is a cell address plus an integer elevation step.
type Offset3 struct {
	I, J, K int
}

// Offset drops the elevation step.
func (o Offset3) Offset() Offset { return Offset{I: o.I, J: o.J} }

// At attaches an elevation step to a cell.
func (o Offset) At(k int) Offset3 { return Offset3{I: o.I, J: o.J, K: k} }

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

var sqrt3 = math.Sqrt(3)
