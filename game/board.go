package game

import "fmt"

// Coord addresses a cell by row and column.
type Coord struct {
	Row int
	Col int
}

// Neighbor offsets in traversal order: up, down, left, right.
var directions = [4]Coord{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Board is a rectangular grid of cell colors. Its dimensions never change.
type Board struct {
	Rows  int
	Cols  int
	cells []Color // row-major
}

// NewBoard copies grid into a new board. The grid must be non-empty and rectangular.
func NewBoard(grid [][]Color) (*Board, error) {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return nil, fmt.Errorf("board must have at least one row and one column")
	}
	rows, cols := len(grid), len(grid[0])
	b := &Board{Rows: rows, Cols: cols, cells: make([]Color, 0, rows*cols)}
	for r, row := range grid {
		if len(row) != cols {
			return nil, fmt.Errorf("board row %d has %d cells, expected %d", r, len(row), cols)
		}
		b.cells = append(b.cells, row...)
	}
	return b, nil
}

// Size returns the total number of cells.
func (b *Board) Size() int {
	return len(b.cells)
}

func (b *Board) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < b.Rows && c.Col >= 0 && c.Col < b.Cols
}

func (b *Board) At(c Coord) Color {
	return b.cells[b.index(c)]
}

func (b *Board) set(c Coord, color Color) {
	b.cells[b.index(c)] = color
}

func (b *Board) index(c Coord) int {
	return c.Row*b.Cols + c.Col
}

// Grid returns the board as a fresh row-major grid.
func (b *Board) Grid() [][]Color {
	grid := make([][]Color, b.Rows)
	for r := range grid {
		grid[r] = make([]Color, b.Cols)
		copy(grid[r], b.cells[r*b.Cols:(r+1)*b.Cols])
	}
	return grid
}

// Copy of the board.
func (b *Board) Copy() *Board {
	cells := make([]Color, len(b.cells))
	copy(cells, b.cells)
	return &Board{Rows: b.Rows, Cols: b.Cols, cells: cells}
}

// neighbors calls visit for every in-bounds 4-neighbor of c, in traversal order.
func (b *Board) neighbors(c Coord, visit func(n Coord)) {
	for _, d := range directions {
		n := Coord{Row: c.Row + d.Row, Col: c.Col + d.Col}
		if b.InBounds(n) {
			visit(n)
		}
	}
}
