package model

import (
	"fmt"
	"strings"
)

// Position identifies a cell on the grid
type Position struct {
	Row int `json:"row"` // 0-indexed from top
	Col int `json:"col"` // 0-indexed from left
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

// Direction is a unit step between neighbouring cells
type Direction struct {
	DRow int
	DCol int
}

// Scan directions
var (
	East      = Direction{DRow: 0, DCol: 1}
	South     = Direction{DRow: 1, DCol: 0}
	SouthEast = Direction{DRow: 1, DCol: 1}
	NorthEast = Direction{DRow: -1, DCol: 1}
)

// Next returns the position one step away in direction d
func (p Position) Next(d Direction) Position {
	return Position{Row: p.Row + d.DRow, Col: p.Col + d.DCol}
}

// Grid holds the occupancy of every cell of a rectangular board.
// Cells are stored row-major; a cell never returns to Empty once occupied.
type Grid struct {
	rows  int
	cols  int
	cells []CellState
}

// MaxGridCells bounds rows*columns for a single grid
const MaxGridCells = 1 << 24

// NewGrid creates a grid with every cell Empty
func NewGrid(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 || rows > MaxGridCells/cols {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, rows, cols)
	}
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]CellState, rows*cols),
	}, nil
}

// Rows returns the number of rows
func (g *Grid) Rows() int {
	return g.rows
}

// Columns returns the number of columns
func (g *Grid) Columns() int {
	return g.cols
}

// InBounds returns true if the position is within the grid
func (g *Grid) InBounds(pos Position) bool {
	return pos.Row >= 0 && pos.Row < g.rows && pos.Col >= 0 && pos.Col < g.cols
}

func (g *Grid) index(pos Position) (int, error) {
	if !g.InBounds(pos) {
		return 0, fmt.Errorf("%w: %s on a %dx%d grid", ErrOutOfBounds, pos, g.rows, g.cols)
	}
	return pos.Row*g.cols + pos.Col, nil
}

// Cell returns the state of the cell at pos.
// An out-of-bounds position is a caller bug and yields ErrOutOfBounds.
func (g *Grid) Cell(pos Position) (CellState, error) {
	i, err := g.index(pos)
	if err != nil {
		return Empty, err
	}
	return g.cells[i], nil
}

// SetCell claims an Empty cell for player and returns true. If the cell is
// already occupied the grid is left unchanged and false is returned.
// Out-of-bounds positions and invalid players are reported as errors.
func (g *Grid) SetCell(pos Position, player PlayerID) (bool, error) {
	if !player.Valid() {
		return false, ErrInvalidPlayer
	}
	i, err := g.index(pos)
	if err != nil {
		return false, err
	}
	if !g.cells[i].IsEmpty() {
		return false, nil
	}
	g.cells[i] = Occupied(player)
	return true, nil
}

// HasCellWithState returns true if at least one cell is in the given state
func (g *Grid) HasCellWithState(state CellState) bool {
	for _, c := range g.cells {
		if c == state {
			return true
		}
	}
	return false
}

// CellsWithState returns every position in the given state, row-major
func (g *Grid) CellsWithState(state CellState) []Position {
	var result []Position
	for i, c := range g.cells {
		if c == state {
			result = append(result, Position{Row: i / g.cols, Col: i % g.cols})
		}
	}
	return result
}

// EmptyCount returns the number of empty cells
func (g *Grid) EmptyCount() int {
	count := 0
	for _, c := range g.cells {
		if c.IsEmpty() {
			count++
		}
	}
	return count
}

// IsFull returns true if all cells are occupied
func (g *Grid) IsFull() bool {
	return !g.HasCellWithState(Empty)
}

// Line returns the cells from start walking in direction d until the walk
// leaves the grid. A start outside the grid yields nil.
func (g *Grid) Line(start Position, d Direction) []CellState {
	var result []CellState
	for pos := start; g.InBounds(pos); pos = pos.Next(d) {
		result = append(result, g.cells[pos.Row*g.cols+pos.Col])
		if d == (Direction{}) {
			break
		}
	}
	return result
}

// Clone returns an independent copy of the grid
func (g *Grid) Clone() *Grid {
	cells := make([]CellState, len(g.cells))
	copy(cells, g.cells)
	return &Grid{rows: g.rows, cols: g.cols, cells: cells}
}

// Render returns one line per row in the form |_|1|2|
func (g *Grid) Render() []string {
	lines := make([]string, g.rows)
	var sb strings.Builder
	for row := 0; row < g.rows; row++ {
		sb.Reset()
		for _, c := range g.cells[row*g.cols : (row+1)*g.cols] {
			sb.WriteByte('|')
			sb.WriteString(c.String())
		}
		sb.WriteByte('|')
		lines[row] = sb.String()
	}
	return lines
}

func (g *Grid) String() string {
	return strings.Join(g.Render(), "\n")
}
