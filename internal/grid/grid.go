// Package grid provides the occupancy grid that tables are placed on.
// Reads outside the grid always report an empty cell, so neighbour checks
// at the room edges need no special casing.
package grid

import (
	"errors"
	"fmt"
)

// TableLength is the number of cells a table covers along its long axis.
const TableLength = 3

var (
	// ErrInvalidDimension is returned when a grid is requested with a
	// non-positive width or height.
	ErrInvalidDimension = errors.New("invalid room dimension")
	// ErrOutOfBounds is returned when a run does not fit inside the grid.
	ErrOutOfBounds = errors.New("run out of bounds")
)

// Cell is the state of one grid position: Empty or the id of the table
// occupying it.
type Cell int

// Empty marks an unoccupied cell.
const Empty Cell = 0

// Occupied reports whether a table covers the cell.
func (c Cell) Occupied() bool {
	return c != Empty
}

// Orientation is the axis a table's long side runs along.
type Orientation int

const (
	Horizontal Orientation = iota // same row, consecutive columns
	Vertical                      // same column, consecutive rows
)

func (o Orientation) String() string {
	if o == Vertical {
		return "Vertical"
	}
	return "Horizontal"
}

// Tile is a placed table as recovered from the grid.
type Tile struct {
	ID          Cell        `json:"id"`
	Row         int         `json:"row"`
	Col         int         `json:"col"`
	Orientation Orientation `json:"orientation"`
}

// Cells returns the three (row, col) positions the tile covers.
func (t Tile) Cells() [TableLength][2]int {
	var out [TableLength][2]int
	for k := 0; k < TableLength; k++ {
		if t.Orientation == Vertical {
			out[k] = [2]int{t.Row + k, t.Col}
		} else {
			out[k] = [2]int{t.Row, t.Col + k}
		}
	}
	return out
}

// Grid is a height x width matrix of cells stored row-major.
type Grid struct {
	width  int
	height int
	cells  []Cell
}

// New allocates an all-empty grid.
func New(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, width, height)
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (row, col) lies inside the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.height && col >= 0 && col < g.width
}

// Get returns the cell at (row, col), or Empty for positions outside the grid.
func (g *Grid) Get(row, col int) Cell {
	if !g.InBounds(row, col) {
		return Empty
	}
	return g.cells[row*g.width+col]
}

// IsEmpty is shorthand for Get(row, col) == Empty.
func (g *Grid) IsEmpty(row, col int) bool {
	return g.Get(row, col) == Empty
}

// Clear marks an in-bounds cell empty and returns the state it held before.
// Positions outside the grid are ignored.
func (g *Grid) Clear(row, col int) Cell {
	if !g.InBounds(row, col) {
		return Empty
	}
	prev := g.cells[row*g.width+col]
	g.cells[row*g.width+col] = Empty
	return prev
}

// runFits reports whether a full run starting at (row, col) lies inside the grid.
func (g *Grid) runFits(row, col int, o Orientation) bool {
	if o == Vertical {
		return g.InBounds(row, col) && row+TableLength-1 < g.height
	}
	return g.InBounds(row, col) && col+TableLength-1 < g.width
}

// IsRunEmpty reports whether a run of TableLength cells starting at
// (row, col) fits in the grid and is completely unoccupied.
func (g *Grid) IsRunEmpty(row, col int, o Orientation) bool {
	if !g.runFits(row, col, o) {
		return false
	}
	for k := 0; k < TableLength; k++ {
		r, c := row, col+k
		if o == Vertical {
			r, c = row+k, col
		}
		if g.cells[r*g.width+c] != Empty {
			return false
		}
	}
	return true
}

// IsRegionEmpty reports whether every cell of the inclusive rectangle
// rows r0..r1, columns c0..c1 is empty. Parts of the rectangle outside the
// grid count as empty.
func (g *Grid) IsRegionEmpty(r0, c0, r1, c1 int) bool {
	for r := r0; r <= r1; r++ {
		for c := c0; c <= c1; c++ {
			if g.Get(r, c) != Empty {
				return false
			}
		}
	}
	return true
}

// PlaceHorizontal marks (row, col), (row, col+1), (row, col+2) with id.
// Overlap and spacing are the caller's responsibility.
func (g *Grid) PlaceHorizontal(row, col int, id Cell) error {
	return g.place(row, col, id, Horizontal)
}

// PlaceVertical marks (row, col), (row+1, col), (row+2, col) with id.
// Overlap and spacing are the caller's responsibility.
func (g *Grid) PlaceVertical(row, col int, id Cell) error {
	return g.place(row, col, id, Vertical)
}

func (g *Grid) place(row, col int, id Cell, o Orientation) error {
	if !g.runFits(row, col, o) {
		return fmt.Errorf("%w: %s run at (%d,%d) in %dx%d grid", ErrOutOfBounds, o, row, col, g.width, g.height)
	}
	for k := 0; k < TableLength; k++ {
		if o == Vertical {
			g.cells[(row+k)*g.width+col] = id
		} else {
			g.cells[row*g.width+col+k] = id
		}
	}
	return nil
}

// Rows returns a copy of the grid as a slice of rows.
func (g *Grid) Rows() [][]Cell {
	rows := make([][]Cell, g.height)
	for r := range rows {
		rows[r] = make([]Cell, g.width)
		copy(rows[r], g.cells[r*g.width:(r+1)*g.width])
	}
	return rows
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	cp := &Grid{width: g.width, height: g.height, cells: make([]Cell, len(g.cells))}
	copy(cp.cells, g.cells)
	return cp
}

// Occupied returns the number of occupied cells.
func (g *Grid) Occupied() int {
	n := 0
	for _, c := range g.cells {
		if c != Empty {
			n++
		}
	}
	return n
}

// Tiles recovers the placed tables in order of their first cell (row-major).
// A tile's orientation is inferred from its second cell; ids whose cells
// do not form a proper run are still reported once, at their first cell.
func (g *Grid) Tiles() []Tile {
	seen := make(map[Cell]bool)
	var tiles []Tile
	for r := 0; r < g.height; r++ {
		for c := 0; c < g.width; c++ {
			id := g.cells[r*g.width+c]
			if id == Empty || seen[id] {
				continue
			}
			seen[id] = true
			o := Horizontal
			if g.Get(r, c+1) != id && g.Get(r+1, c) == id {
				o = Vertical
			}
			tiles = append(tiles, Tile{ID: id, Row: r, Col: c, Orientation: o})
		}
	}
	return tiles
}

// Count returns the number of distinct tables on the grid.
func (g *Grid) Count() int {
	return len(g.Tiles())
}

// FromRows builds a grid from a row-major cell matrix. All rows must have
// the same non-zero length.
func FromRows(rows [][]Cell) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidDimension)
	}
	g, err := New(len(rows[0]), len(rows))
	if err != nil {
		return nil, err
	}
	for r, row := range rows {
		if len(row) != g.width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidDimension, r, len(row), g.width)
		}
		copy(g.cells[r*g.width:], row)
	}
	return g, nil
}
