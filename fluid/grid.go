package fluid

// Kind tags how a field is used in a boundary-aware call. It selects the
// sign convention applied on the domain edges.
type Kind int

const (
	// Scalar fields (density, pressure, divergence) copy edge values unchanged.
	Scalar Kind = iota
	// XVelocity fields are negated on the left and right walls.
	XVelocity
	// YVelocity fields are negated on the top and bottom walls.
	YVelocity
)

func (k Kind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case XVelocity:
		return "x-velocity"
	case YVelocity:
		return "y-velocity"
	}
	return "unknown"
}

// Field is a row-major N*N buffer of cell values.
type Field []float32

// Grid stores the simulation buffers for a square N*N domain.
type Grid struct {
	n int

	density  Field
	u        Field
	v        Field
	uPrev    Field
	vPrev    Field
	densPrev Field
}

// newGrid allocates a Grid with zeroed buffers.
func newGrid(n int) *Grid {
	size := n * n
	return &Grid{
		n:        n,
		density:  make(Field, size),
		u:        make(Field, size),
		v:        make(Field, size),
		uPrev:    make(Field, size),
		vPrev:    make(Field, size),
		densPrev: make(Field, size),
	}
}

// Size returns the grid resolution N.
func (g *Grid) Size() int { return g.n }

// Index maps a cell coordinate to its buffer offset. Coordinates outside the
// grid saturate to the nearest edge cell.
func (g *Grid) Index(x, y int) int {
	return clampCoord(x, 0, g.n-1) + clampCoord(y, 0, g.n-1)*g.n
}

// clampCoord constrains v to lie within the inclusive [min, max] range.
func clampCoord(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// reset zeroes every buffer without reallocating.
func (g *Grid) reset() {
	for _, f := range g.fields() {
		clear(f)
	}
}

func (g *Grid) fields() []Field {
	return []Field{g.density, g.u, g.v, g.uPrev, g.vPrev, g.densPrev}
}

// release drops the buffers so a closed session cannot touch them.
func (g *Grid) release() {
	g.density, g.u, g.v = nil, nil, nil
	g.uPrev, g.vPrev, g.densPrev = nil, nil, nil
}
