package gui

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/qnkhuat/gestris/pkg"
	"github.com/qnkhuat/gestris/pkg/game"
	"github.com/qnkhuat/gestris/pkg/mino"
)

const (
	leftMargin = 2
	topMargin  = 2
	cellWidth  = 2
	panelGap   = 4
)

// View is everything Render needs for one frame.
type View struct {
	Snapshot pkg.Snapshot
	Theme    Theme
	Texts    Texts
	Message  string
}

// drawText places text at the specified coordinates with the provided style
func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) int {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
	return x
}

// drawSquare fills two columns so board cells look square.
func drawSquare(s tcell.Screen, x, y int, style tcell.Style) {
	s.SetContent(x, y, ' ', nil, style)
	s.SetContent(x+1, y, ' ', nil, style)
}

func fill(s tcell.Screen, x, y, w, h int, style tcell.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			s.SetContent(col, row, ' ', nil, style)
		}
	}
}

// BoardOrigin is the screen position of board cell (0, 0).
func BoardOrigin(x, y int) (int, int) {
	return x + leftMargin + 1, y + topMargin + 1
}

func drawFrame(s tcell.Screen, x, y, w, h int, style tcell.Style) {
	s.SetContent(x, y, '┌', nil, style)
	s.SetContent(x+w-1, y, '┐', nil, style)
	s.SetContent(x, y+h-1, '└', nil, style)
	s.SetContent(x+w-1, y+h-1, '┘', nil, style)
	for col := x + 1; col < x+w-1; col++ {
		s.SetContent(col, y, '─', nil, style)
		s.SetContent(col, y+h-1, '─', nil, style)
	}
	for row := y + 1; row < y+h-1; row++ {
		s.SetContent(x, row, '│', nil, style)
		s.SetContent(x+w-1, row, '│', nil, style)
	}
}

// drawBoard draws the frozen cells and the falling piece.
func drawBoard(s tcell.Screen, x, y int, st game.State, t Theme) {
	b := st.Board
	ox, oy := BoardOrigin(x, y)
	frame := t.TextStyle().Foreground(t.Gray.Color())
	drawFrame(s, ox-1, oy-1, b.W*cellWidth+2, b.H+2, frame)

	for row := 0; row < b.H; row++ {
		for col := 0; col < b.W; col++ {
			drawSquare(s, ox+col*cellWidth, oy+row, t.Style(b.Block(row, col)))
		}
	}

	if st.Current == nil {
		return
	}
	for _, p := range st.Current.Cells() {
		if p.Y < 0 || p.Y >= b.H || p.X < 0 || p.X >= b.W {
			continue
		}
		drawSquare(s, ox+p.X*cellWidth, oy+p.Y, t.Style(st.Current.Color))
	}
}

// drawNext draws the buffered piece in a 4x4 box.
func drawNext(s tcell.Screen, x, y int, p *mino.Piece, t Theme) {
	empty := t.Style(mino.BlockNone)
	for row := 0; row < mino.FrameSize; row++ {
		for col := 0; col < mino.FrameSize; col++ {
			drawSquare(s, x+col*cellWidth, y+row, empty)
		}
	}

	if p == nil {
		return
	}
	for _, pt := range p.Image().Points() {
		drawSquare(s, x+pt.X*cellWidth, y+pt.Y, t.Style(p.Color))
	}
}

func drawPanel(s tcell.Screen, x, y int, v View) {
	style := v.Theme.TextStyle()
	st := v.Snapshot.State

	drawText(s, x, y, style, v.Texts.Next)
	drawNext(s, x, y+1, st.Next, v.Theme)

	y += mino.FrameSize + 2
	drawText(s, x, y, style, v.Texts.Score+strconv.Itoa(st.Score))
	drawText(s, x, y+1, style, v.Texts.Player+v.Snapshot.Player)
	drawText(s, x, y+2, style, v.Texts.Time+v.Snapshot.Elapsed)
}

func drawStatus(s tcell.Screen, x, y int, v View) {
	st := v.Snapshot.State
	alert := v.Theme.TextStyle().Foreground(v.Theme.Blocks[5].Color()).Bold(true)

	switch {
	case st.Phase == game.PhaseGameOver:
		drawText(s, x, y, alert, v.Texts.GameOver)
		drawText(s, x, y+1, v.Theme.TextStyle(), v.Texts.PressEsc)
	case st.Paused:
		drawText(s, x, y, alert, v.Texts.Paused)
	}

	if v.Message != "" {
		drawText(s, x, y+2, v.Theme.TextStyle(), v.Message)
	}
}

// Render draws one frame of the game screen inside the given rectangle.
func Render(s tcell.Screen, x, y, w, h int, v View) {
	fill(s, x, y, w, h, v.Theme.TextStyle())

	if !v.Snapshot.HasGame || v.Snapshot.State.Board == nil {
		drawText(s, x+leftMargin, y+topMargin, v.Theme.TextStyle(), v.Texts.NoGame)
		return
	}

	st := v.Snapshot.State
	drawBoard(s, x, y, st, v.Theme)

	px := x + leftMargin + st.Board.W*cellWidth + 2 + panelGap
	drawPanel(s, px, y+topMargin, v)
	drawStatus(s, px, y+topMargin+mino.FrameSize+6, v)

	drawText(s, x+leftMargin, y+topMargin+st.Board.H+3, v.Theme.TextStyle().Foreground(v.Theme.Gray.Color()), v.Texts.Controls)
}

// Size is the screen area Render needs for a board.
func Size(w, h int) (int, int) {
	return leftMargin + w*cellWidth + 2 + panelGap + 24, topMargin + h + 4
}

func scoreLine(rank int, score int, name string) string {
	return fmt.Sprintf("%d. %-10s %6d", rank, name, score)
}
