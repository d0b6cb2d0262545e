package mino

import (
	"math/rand"
)

// Generator draws shapes and colors from a seeded source so spawn sequences
// are reproducible.
type Generator struct {
	r *rand.Rand
}

func NewGenerator(seed int64) *Generator {
	return &Generator{r: rand.New(rand.NewSource(seed))}
}

func NewGeneratorFrom(r *rand.Rand) *Generator {
	return &Generator{r: r}
}

// Spawn draws a shape and a color uniformly.
func (g *Generator) Spawn(width int) *Piece {
	return g.SpawnShape(Shape(g.r.Intn(ShapeCount)), width)
}

// SpawnShape draws only the color.
func (g *Generator) SpawnShape(shape Shape, width int) *Piece {
	return NewPiece(shape, g.Color(), width)
}

// Color draws a non-empty palette index.
func (g *Generator) Color() Block {
	return Block(1 + g.r.Intn(PaletteSize-1))
}
