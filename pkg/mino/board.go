package mino

import (
	"fmt"
	"strings"
)

// Board is the playing field. M is indexed [row][col]; row 0 is the top.
type Board struct {
	W int
	H int

	M [][]Block
}

func NewBoard(w int, h int) *Board {
	b := &Board{W: w, H: h, M: make([][]Block, h)}
	for y := range b.M {
		b.M[y] = make([]Block, w)
	}

	return b
}

func (b *Board) inside(row int, col int) bool {
	return row >= 0 && row < b.H && col >= 0 && col < b.W
}

// Block returns the cell at row, col, or BlockNone outside the board.
func (b *Board) Block(row int, col int) Block {
	if !b.inside(row, col) {
		return BlockNone
	}

	return b.M[row][col]
}

func (b *Board) SetBlock(row int, col int, block Block) bool {
	if !b.inside(row, col) || !block.Valid() {
		return false
	}

	b.M[row][col] = block
	return true
}

// IsOccupied reports whether a cell is filled. Cells outside the board are
// treated as occupied.
func (b *Board) IsOccupied(row int, col int) bool {
	if !b.inside(row, col) {
		return true
	}

	return b.M[row][col] != BlockNone
}

// WouldCollide reports whether p overlaps a wall, the floor or a filled cell.
// Cells above row 0 are never checked.
func (b *Board) WouldCollide(p *Piece) bool {
	for _, c := range p.Cells() {
		if c.Y > b.H-1 || c.X < 0 || c.X > b.W-1 {
			return true
		} else if c.Y < 0 {
			continue
		}

		if b.M[c.Y][c.X] != BlockNone {
			return true
		}
	}

	return false
}

// Freeze writes the piece color into every board cell it covers. Cells above
// the board are dropped.
func (b *Board) Freeze(p *Piece) {
	for _, c := range p.Cells() {
		if !b.inside(c.Y, c.X) {
			continue
		}

		b.M[c.Y][c.X] = p.Color
	}
}

func (b *Board) LineFilled(row int) bool {
	for col := 0; col < b.W; col++ {
		if b.M[row][col] == BlockNone {
			return false
		}
	}

	return true
}

// ClearFullLines removes every filled row, shifting the rows above it down
// and inserting empty rows at the top. It returns the number of rows removed.
func (b *Board) ClearFullLines() int {
	cleared := 0

	for y := b.H - 1; y >= 0; {
		if !b.LineFilled(y) {
			y--
			continue
		}

		copy(b.M[1:y+1], b.M[:y])
		b.M[0] = make([]Block, b.W)

		cleared++
	}

	return cleared
}

func (b *Board) Clear() {
	for y := range b.M {
		for x := range b.M[y] {
			b.M[y][x] = BlockNone
		}
	}
}

func (b *Board) Copy() *Board {
	c := NewBoard(b.W, b.H)
	for y := range b.M {
		copy(c.M[y], b.M[y])
	}

	return c
}

// Cells flattens the grid row by row.
func (b *Board) Cells() []Block {
	cells := make([]Block, 0, b.W*b.H)
	for y := range b.M {
		cells = append(cells, b.M[y]...)
	}

	return cells
}

// BoardFromCells rebuilds a board from a row-major cell list.
func BoardFromCells(w int, h int, cells []Block) (*Board, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid board size %dx%d", w, h)
	} else if len(cells) != w*h {
		return nil, fmt.Errorf("expected %d cells for a %dx%d board, got %d", w*h, w, h, len(cells))
	}

	b := NewBoard(w, h)
	for i, block := range cells {
		if !block.Valid() {
			return nil, fmt.Errorf("cell %d holds unknown color %d", i, block)
		}

		b.M[i/w][i%w] = block
	}

	return b, nil
}

func (b *Board) Render() string {
	var s strings.Builder

	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			s.WriteRune(b.M[y][x].Rune())
		}

		if y < b.H-1 {
			s.WriteRune('\n')
		}
	}

	return s.String()
}
