package mino

import (
	"fmt"
)

// Piece is a falling instance of a shape. Point is the board position of the
// top-left corner of its local frame.
type Piece struct {
	Point
	Shape    Shape
	Color    Block
	Rotation int
}

// NewPiece places a piece centered horizontally on the top row of a board of
// the given width.
func NewPiece(shape Shape, color Block, width int) *Piece {
	return &Piece{Point: SpawnPoint(width), Shape: shape, Color: color}
}

// SpawnPoint is the anchor of a freshly spawned piece.
func SpawnPoint(width int) Point {
	return Point{width/2 - 2, 0}
}

func (p *Piece) String() string {
	return fmt.Sprintf("%s%s r%d c%d", p.Shape, p.Point, p.Rotation, p.Color)
}

// Image returns the current rotation variant.
func (p *Piece) Image() Variant {
	variants := p.Shape.Variants()
	if len(variants) == 0 {
		return nil
	}

	r := p.Rotation % len(variants)
	if r < 0 {
		r += len(variants)
	}

	return variants[r]
}

// Rotate advances the rotation index. It does not check for collisions.
func (p *Piece) Rotate() {
	if !p.Shape.Valid() {
		return
	}

	p.Rotation = (p.Rotation + 1) % len(p.Shape.Variants())
}

// Cells returns the board positions the piece occupies.
func (p *Piece) Cells() []Point {
	local := p.Image().Points()
	for i := range local {
		local[i] = local[i].Add(p.Point)
	}

	return local
}

func (p *Piece) Copy() *Piece {
	if p == nil {
		return nil
	}

	c := *p
	return &c
}
