package lut

import (
	"math"

	"github.com/df07/go-optical-depth/pkg/core"
)

// Table holds optical depth per cell. Column i samples D, row j samples H,
// both at texel centers: x = (i+0.5)/Width, y = (j+0.5)/Height.
type Table struct {
	Width  int
	Height int
	Data   []float64 // row-major, Data[j*Width+i]
	mapper Mapper
}

// NewTable allocates a zeroed table
func NewTable(width, height int, mapper Mapper) *Table {
	return &Table{
		Width:  width,
		Height: height,
		Data:   make([]float64, width*height),
		mapper: mapper,
	}
}

// CellCoord returns the normalized coordinate sampled by cell (i, j)
func (t *Table) CellCoord(i, j int) (x, y float64) {
	return (float64(i) + 0.5) / float64(t.Width), (float64(j) + 0.5) / float64(t.Height)
}

// At returns the value of cell (i, j)
func (t *Table) At(i, j int) float64 {
	return t.Data[j*t.Width+i]
}

// Set stores the value of cell (i, j)
func (t *Table) Set(i, j int, v float64) {
	t.Data[j*t.Width+i] = v
}

// Max returns the largest value in the table
func (t *Table) Max() float64 {
	m := 0.0
	for _, v := range t.Data {
		m = math.Max(m, v)
	}
	return m
}

// Sample bilinearly interpolates the table at normalized coordinates.
// Coordinates outside the table clamp to the edge cells.
func (t *Table) Sample(x, y float64) float64 {
	u := clamp(x*float64(t.Width)-0.5, 0, float64(t.Width-1))
	v := clamp(y*float64(t.Height)-0.5, 0, float64(t.Height-1))

	i0, j0 := int(u), int(v)
	i1, j1 := min(i0+1, t.Width-1), min(j0+1, t.Height-1)
	fu, fv := u-float64(i0), v-float64(j0)

	top := t.At(i0, j0)*(1-fu) + t.At(i1, j0)*fu
	bottom := t.At(i0, j1)*(1-fu) + t.At(i1, j1)*fu
	return top*(1-fv) + bottom*fv
}

// Lookup returns the tabulated optical depth for a ray. dir must be unit length.
func (t *Table) Lookup(pos, dir core.Vec3) float64 {
	c := t.mapper.To2D(pos, dir)
	return t.Sample(c.D, c.H)
}

// clamp maps NaN to lo so it can always be used as an index
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
