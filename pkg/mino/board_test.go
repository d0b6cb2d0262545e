package mino

import (
	"testing"
)

func fillRow(b *Board, row int, block Block) {
	for x := 0; x < b.W; x++ {
		b.M[row][x] = block
	}
}

func TestBoardCollision(t *testing.T) {
	b := NewBoard(10, 20)

	p := NewPiece(ShapeO, 1, b.W)
	if b.WouldCollide(p) {
		t.Fatalf("spawned piece %s collides on an empty board", p)
	}

	p.X = -1
	if !b.WouldCollide(p) {
		t.Error("failed to detect left wall")
	}

	p.X = b.W - 2
	if !b.WouldCollide(p) {
		t.Errorf("failed to detect right wall at x=%d", p.X)
	}

	p.X = b.W - 3
	if b.WouldCollide(p) {
		t.Errorf("unexpected collision against right wall at x=%d", p.X)
	}

	p.Y = b.H - 1
	if !b.WouldCollide(p) {
		t.Error("failed to detect floor")
	}

	p.Y = b.H - 2
	if b.WouldCollide(p) {
		t.Error("unexpected collision with floor")
	}

	b.M[b.H-1][p.X+1] = 3
	if !b.WouldCollide(p) {
		t.Error("failed to detect occupied cell")
	}
}

func TestBoardAboveTopNotChecked(t *testing.T) {
	b := NewBoard(10, 20)
	fillRow(b, 0, 2)

	p := NewPiece(ShapeI, 1, b.W)
	p.Y = -4
	if b.WouldCollide(p) {
		t.Error("cells above the board must not collide")
	}

	p.Y = -3
	if !b.WouldCollide(p) {
		t.Error("failed to detect filled top row")
	}
}

func TestBoardIsOccupied(t *testing.T) {
	b := NewBoard(4, 4)
	b.M[2][1] = 5

	for _, d := range []struct {
		row, col int
		want     bool
	}{
		{0, 0, false},
		{2, 1, true},
		{-1, 0, true},
		{0, -1, true},
		{4, 0, true},
		{0, 4, true},
	} {
		if got := b.IsOccupied(d.row, d.col); got != d.want {
			t.Errorf("IsOccupied(%d, %d) = %v, want %v", d.row, d.col, got, d.want)
		}
	}
}

func TestBoardFreeze(t *testing.T) {
	b := NewBoard(10, 20)

	p := NewPiece(ShapeT, 4, b.W)
	p.Y = 5
	b.Freeze(p)

	for _, c := range p.Cells() {
		if b.M[c.Y][c.X] != 4 {
			t.Errorf("cell %s not frozen", c)
		}
	}

	filled := 0
	for _, block := range b.Cells() {
		if block != BlockNone {
			filled++
		}
	}
	if filled != 4 {
		t.Errorf("expected 4 frozen cells, got %d", filled)
	}

	p = NewPiece(ShapeI, 2, b.W)
	p.Y = -2
	b.Freeze(p)
	if b.M[0][p.X+1] != 2 || b.M[1][p.X+1] != 2 {
		t.Error("visible part of a partially hidden piece was not frozen")
	}
}

func TestBoardClearFullLines(t *testing.T) {
	b := NewBoard(4, 6)
	b.M[1][0] = 1
	fillRow(b, 2, 2)
	b.M[3][3] = 3
	fillRow(b, 4, 4)
	fillRow(b, 5, 5)

	cleared := b.ClearFullLines()
	if cleared != 3 {
		t.Fatalf("failed to clear lines, wanted 3 got %d", cleared)
	}

	if len(b.M) != 6 {
		t.Fatalf("row count changed to %d", len(b.M))
	}

	want := "    \n    \n    \n    \n█   \n   █"
	if got := b.Render(); got != want {
		t.Errorf("unexpected board after clear:\n%s\nwant:\n%s", got, want)
	}
	if b.M[4][0] != 1 || b.M[5][3] != 3 {
		t.Error("remaining rows lost their colors or order")
	}
}

func TestBoardClearNothing(t *testing.T) {
	b := NewBoard(10, 20)
	b.M[19][0] = 1

	if cleared := b.ClearFullLines(); cleared != 0 {
		t.Errorf("cleared %d lines on a board without full rows", cleared)
	}
	if b.M[19][0] != 1 {
		t.Error("board changed without clearing")
	}
}

func TestBoardFromCells(t *testing.T) {
	b := NewBoard(3, 2)
	b.M[1][2] = 6

	c, err := BoardFromCells(b.W, b.H, b.Cells())
	if err != nil {
		t.Fatal(err)
	}
	if c.Render() != b.Render() || c.M[1][2] != 6 {
		t.Error("board did not survive flattening")
	}

	if _, err := BoardFromCells(3, 2, make([]Block, 5)); err == nil {
		t.Error("failed to reject short cell list")
	}
	if _, err := BoardFromCells(1, 1, []Block{PaletteSize}); err == nil {
		t.Error("failed to reject unknown color")
	}
}

func BenchmarkClearFullLines(b *testing.B) {
	b.ReportAllocs()

	board := NewBoard(10, 20)
	for n := 0; n < b.N; n++ {
		for y := 16; y < 20; y++ {
			fillRow(board, y, 1)
		}
		board.ClearFullLines()
	}
}
