package api

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/qnkhuat/gestris/pkg/game"
	"github.com/qnkhuat/gestris/pkg/gui"
	"github.com/qnkhuat/gestris/pkg/mino"
)

const (
	BlockSize = 16
	MaxScale  = 8
)

func setColor(dc *gg.Context, c gui.RGB) {
	dc.SetRGB255(int(c.R), int(c.G), int(c.B))
}

// RenderBoard draws the board and the falling piece, one BlockSize square
// per cell, with grid lines in the theme's gray.
func RenderBoard(st game.State, t gui.Theme) image.Image {
	b := st.Board
	dc := gg.NewContext(b.W*BlockSize, b.H*BlockSize)
	setColor(dc, t.Block(mino.BlockNone))
	dc.Clear()

	cell := func(row, col int, block mino.Block) {
		setColor(dc, t.Block(block))
		dc.DrawRectangle(float64(col*BlockSize), float64(row*BlockSize), BlockSize, BlockSize)
		dc.Fill()
	}

	for row := 0; row < b.H; row++ {
		for col := 0; col < b.W; col++ {
			if blk := b.Block(row, col); blk != mino.BlockNone {
				cell(row, col, blk)
			}
		}
	}

	if st.Current != nil {
		for _, p := range st.Current.Cells() {
			if p.Y >= 0 && p.Y < b.H && p.X >= 0 && p.X < b.W {
				cell(p.Y, p.X, st.Current.Color)
			}
		}
	}

	setColor(dc, t.Gray)
	dc.SetLineWidth(1)
	for x := 0; x <= b.W; x++ {
		dc.DrawLine(float64(x*BlockSize), 0, float64(x*BlockSize), float64(b.H*BlockSize))
		dc.Stroke()
	}
	for y := 0; y <= b.H; y++ {
		dc.DrawLine(0, float64(y*BlockSize), float64(b.W*BlockSize), float64(y*BlockSize))
		dc.Stroke()
	}

	return dc.Image()
}

// Scale enlarges img by an integer factor without smoothing.
func Scale(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}

	bounds := img.Bounds()
	return imaging.Resize(img, bounds.Dx()*factor, bounds.Dy()*factor, imaging.NearestNeighbor)
}
