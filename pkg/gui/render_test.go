package gui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/qnkhuat/gestris/pkg"
	"github.com/qnkhuat/gestris/pkg/game"
	"github.com/qnkhuat/gestris/pkg/mino"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScreen(t *testing.T) tcell.Screen {
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(80, 30)
	t.Cleanup(s.Fini)

	return s
}

func rowText(s tcell.Screen, x, y, n int) string {
	var b strings.Builder
	for col := x; col < x+n; col++ {
		r, _, _, _ := s.GetContent(col, y)
		b.WriteRune(r)
	}
	return b.String()
}

func styleAt(s tcell.Screen, x, y int) tcell.Style {
	_, _, style, _ := s.GetContent(x, y)
	return style
}

func testView(t *testing.T) View {
	board := mino.NewBoard(10, 20)
	board.SetBlock(19, 0, 2)

	return View{
		Snapshot: pkg.Snapshot{
			Player:  "alice",
			HasGame: true,
			Elapsed: "1:05",
			State: game.State{
				Board:   board,
				Current: &mino.Piece{Point: mino.Point{X: 4, Y: 5}, Shape: mino.ShapeO, Color: 4},
				Next:    &mino.Piece{Shape: mino.ShapeI, Color: 1},
				Score:   130,
				Level:   1,
			},
		},
		Theme: ThemeLight,
		Texts: TextsFor("en"),
	}
}

func TestRenderBoard(t *testing.T) {
	s := newScreen(t)
	v := testView(t)
	Render(s, 0, 0, 80, 30, v)

	ox, oy := BoardOrigin(0, 0)
	assert.Equal(t, ThemeLight.Style(2), styleAt(s, ox, oy+19))
	assert.Equal(t, ThemeLight.Style(2), styleAt(s, ox+1, oy+19))
	assert.Equal(t, ThemeLight.Style(0), styleAt(s, ox+2, oy+19))

	for _, p := range v.Snapshot.State.Current.Cells() {
		assert.Equal(t, ThemeLight.Style(4), styleAt(s, ox+p.X*cellWidth, oy+p.Y), p)
	}

	r, _, _, _ := s.GetContent(ox-1, oy-1)
	assert.Equal(t, '┌', r)
}

func TestRenderPanel(t *testing.T) {
	s := newScreen(t)
	v := testView(t)
	Render(s, 0, 0, 80, 30, v)

	px := leftMargin + 10*cellWidth + 2 + panelGap
	assert.Equal(t, "Next", rowText(s, px, topMargin, 4))
	assert.Equal(t, "Score: 130", rowText(s, px, topMargin+mino.FrameSize+2, 10))
	assert.Equal(t, "Player: alice", rowText(s, px, topMargin+mino.FrameSize+3, 13))
	assert.Equal(t, "Time: 1:05", rowText(s, px, topMargin+mino.FrameSize+4, 10))

	// Vertical I preview occupies the second column of the 4x4 box.
	assert.Equal(t, ThemeLight.Style(1), styleAt(s, px+cellWidth, topMargin+1))
	assert.Equal(t, ThemeLight.Style(0), styleAt(s, px, topMargin+1))
}

func TestRenderStatus(t *testing.T) {
	s := newScreen(t)
	v := testView(t)
	v.Snapshot.State.Phase = game.PhaseGameOver
	v.Message = "Game saved!"
	Render(s, 0, 0, 80, 30, v)

	px := leftMargin + 10*cellWidth + 2 + panelGap
	y := topMargin + mino.FrameSize + 6
	assert.Equal(t, "Game Over", rowText(s, px, y, 9))
	assert.Equal(t, "Press ESC", rowText(s, px, y+1, 9))
	assert.Equal(t, "Game saved!", rowText(s, px, y+2, 11))
}

func TestRenderNoGame(t *testing.T) {
	s := newScreen(t)
	Render(s, 0, 0, 80, 30, View{Theme: ThemeDark, Texts: TextsFor("ru")})

	assert.Equal(t, "Нет активной игры", rowText(s, leftMargin, topMargin, 17))
}

func TestTheme(t *testing.T) {
	assert.Equal(t, ThemeDark, ThemeByName("dark"))
	assert.Equal(t, ThemeLight, ThemeByName("neon"))
	assert.Equal(t, "#7825b3", ThemeLight.Blocks[1].Hex())
	assert.Equal(t, ThemeLight.Gray, ThemeLight.Block(mino.Block(9)))
}
